package shell

import (
	"testing"

	"github.com/gonewx/ripple/pkg/config"
	"github.com/gonewx/ripple/pkg/platform"
	"github.com/gonewx/ripple/pkg/platform/platformtest"
)

func newTestShell(t *testing.T, paused bool, onToggle ToggleFunc) *Shell {
	t.Helper()
	s, err := New(config.DefaultBackgroundConfig().Shell, paused, onToggle)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	s.Layout(800, 600)
	return s
}

func TestLabelFollowsState(t *testing.T) {
	tests := []struct {
		paused bool
		want   string
	}{
		{false, "Pause bg"},
		{true, "Play bg"},
	}
	for _, tt := range tests {
		s := newTestShell(t, tt.paused, nil)
		if got := s.Label(); got != tt.want {
			t.Errorf("paused=%v: Label() = %q, want %q", tt.paused, got, tt.want)
		}
	}
}

func TestToggleNotifies(t *testing.T) {
	var got []bool
	s := newTestShell(t, false, func(p bool) { got = append(got, p) })

	s.Toggle()
	s.Toggle()
	s.SetPaused(false)

	if len(got) != 2 || !got[0] || got[1] {
		t.Errorf("notifications = %v, want [true false]", got)
	}
}

func TestButtonAnchoredTopRight(t *testing.T) {
	s := newTestShell(t, false, nil)
	b := s.Button()

	if b.W <= 2*ButtonPaddingX || b.H <= 2*ButtonPaddingY {
		t.Errorf("button %+v smaller than its padding", b)
	}
	if got := b.X + b.W; got != 800-ButtonMargin {
		t.Errorf("right edge = %v, want %v", got, 800-ButtonMargin)
	}
	if b.Y != ButtonMargin {
		t.Errorf("top = %v, want %v", b.Y, ButtonMargin)
	}
}

func TestHandleClick(t *testing.T) {
	s := newTestShell(t, false, nil)
	b := s.Button()

	tests := []struct {
		name     string
		x, y     float64
		consumed bool
	}{
		{"inside", b.X + b.W/2, b.Y + b.H/2, true},
		{"outside", 10, 10, false},
		{"right edge excluded", b.X + b.W, b.Y + 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := s.Paused()
			got := s.HandleClick(platform.PointerEvent{ClientX: tt.x, ClientY: tt.y})
			if got != tt.consumed {
				t.Errorf("HandleClick() = %v, want %v", got, tt.consumed)
			}
			if toggled := s.Paused() != before; toggled != tt.consumed {
				t.Errorf("toggled = %v, want %v", toggled, tt.consumed)
			}
		})
	}
}

func TestHiddenToggleIgnoresClicks(t *testing.T) {
	cfg := config.DefaultBackgroundConfig().Shell
	cfg.ShowToggle = false
	s, err := New(cfg, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Layout(800, 600)
	b := s.Button()
	if s.HandleClick(platform.PointerEvent{ClientX: b.X + 1, ClientY: b.Y + 1}) {
		t.Error("hidden button consumed a click")
	}
}

func TestHoverTracking(t *testing.T) {
	p := platformtest.New(800, 600, 1)
	s := newTestShell(t, false, nil)
	s.Attach(p)
	b := s.Button()

	p.Move(b.X+1, b.Y+1)
	if !s.Hovered() {
		t.Error("Hovered() = false over the button")
	}
	p.Move(1, 500)
	if s.Hovered() {
		t.Error("Hovered() = true away from the button")
	}

	s.Detach()
	if _, move, _ := p.Listeners(); move != 0 {
		t.Errorf("move listeners after Detach = %d, want 0", move)
	}
}
