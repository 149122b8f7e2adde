package frame

import (
	"testing"
	"time"

	"github.com/gonewx/ripple/pkg/platform/platformtest"
)

const frameStep = 16 * time.Millisecond

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from       State
		ev         Event
		wantState  State
		wantEffect Effect
	}{
		{Running, Pause, Suspended, Cancel},
		{Running, Resume, Running, None},
		{Suspended, Resume, Running, Schedule},
		{Suspended, Pause, Suspended, None},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.ev.String(), func(t *testing.T) {
			got, effect := Transition(tt.from, tt.ev)
			if got != tt.wantState || effect != tt.wantEffect {
				t.Errorf("Transition(%s, %s) = (%s, %s), want (%s, %s)",
					tt.from, tt.ev, got, effect, tt.wantState, tt.wantEffect)
			}
		})
	}
}

func TestDriverRunsOncePerFrame(t *testing.T) {
	fake := platformtest.New(800, 600, 1)
	var seen []time.Duration
	d := NewDriver(fake, func(now time.Duration) { seen = append(seen, now) }, false)
	d.Start()

	for i := 0; i < 5; i++ {
		fake.Frame(frameStep)
		if fake.Pending() != 1 {
			t.Fatalf("frame %d: pending = %d, want 1", i, fake.Pending())
		}
	}

	if len(seen) != 5 || d.Ticks() != 5 {
		t.Fatalf("ticks = %d (seen %d), want 5", d.Ticks(), len(seen))
	}
	if seen[4] != 5*frameStep {
		t.Errorf("last tick at %v, want %v", seen[4], 5*frameStep)
	}
}

func TestDriverStartsSuspendedWhenPaused(t *testing.T) {
	fake := platformtest.New(800, 600, 1)
	d := NewDriver(fake, func(time.Duration) {}, true)
	d.Start()

	if d.State() != Suspended || fake.Pending() != 0 {
		t.Fatalf("state = %s pending = %d, want SUSPENDED with nothing pending", d.State(), fake.Pending())
	}

	fake.Frame(frameStep)
	if d.Ticks() != 0 {
		t.Errorf("ticks = %d while suspended, want 0", d.Ticks())
	}

	d.Resume()
	fake.Frame(frameStep)
	if d.Ticks() != 1 {
		t.Errorf("ticks = %d after resume, want 1", d.Ticks())
	}
}

func TestDriverToggleIdempotent(t *testing.T) {
	fake := platformtest.New(800, 600, 1)
	d := NewDriver(fake, func(time.Duration) {}, false)
	d.Start()

	for i := 0; i < 3; i++ {
		d.Resume()
		if fake.Pending() != 1 {
			t.Fatalf("resume while running: pending = %d, want 1", fake.Pending())
		}
	}

	if effect := d.Pause(); effect != Cancel {
		t.Errorf("first pause effect = %s, want cancel", effect)
	}
	for i := 0; i < 3; i++ {
		if effect := d.Pause(); effect != None {
			t.Errorf("repeated pause effect = %s, want none", effect)
		}
	}
	if fake.Pending() != 0 || fake.Cancels() != 1 {
		t.Errorf("pending = %d cancels = %d, want 0 and 1", fake.Pending(), fake.Cancels())
	}

	d.Resume()
	d.Resume()
	if fake.Pending() != 1 {
		t.Errorf("pending = %d after double resume, want 1", fake.Pending())
	}
}

func TestDriverPauseStopsTicks(t *testing.T) {
	fake := platformtest.New(800, 600, 1)
	d := NewDriver(fake, func(time.Duration) {}, false)
	d.Start()

	fake.Frame(frameStep)
	fake.Frame(frameStep)
	d.Pause()
	for i := 0; i < 10; i++ {
		fake.Frame(frameStep)
	}
	if d.Ticks() != 2 {
		t.Errorf("ticks = %d, want 2", d.Ticks())
	}
}

func TestDriverStop(t *testing.T) {
	fake := platformtest.New(800, 600, 1)
	d := NewDriver(fake, func(time.Duration) {}, false)
	d.Start()
	fake.Frame(frameStep)

	d.Stop()
	if fake.Pending() != 0 {
		t.Fatalf("pending = %d after stop, want 0", fake.Pending())
	}

	d.Resume()
	d.Start()
	fake.Frame(frameStep)
	if d.Ticks() != 1 || fake.Pending() != 0 {
		t.Errorf("stopped driver ticked: ticks = %d pending = %d", d.Ticks(), fake.Pending())
	}
	if !d.Stopped() {
		t.Error("Stopped() = false")
	}
}

func TestDriverPauseInsideTick(t *testing.T) {
	fake := platformtest.New(800, 600, 1)
	var d *Driver
	d = NewDriver(fake, func(time.Duration) {
		if d.Ticks() == 2 {
			d.Pause()
		}
	}, false)
	d.Start()

	for i := 0; i < 5; i++ {
		fake.Frame(frameStep)
	}
	if d.Ticks() != 2 || fake.Pending() != 0 {
		t.Errorf("ticks = %d pending = %d, want 2 and 0", d.Ticks(), fake.Pending())
	}
}
