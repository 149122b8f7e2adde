package host

import (
	"errors"
	"testing"
	"time"

	"github.com/gonewx/ripple/pkg/platform"
)

func newTestHost(opts Options) (*Host, *time.Duration) {
	h := New(opts)
	now := new(time.Duration)
	h.clock = func() time.Duration { return *now }
	return h, now
}

func TestRequestFrameFiresOnce(t *testing.T) {
	h, now := newTestHost(Options{})
	*now = 16 * time.Millisecond

	var got []time.Duration
	h.RequestFrame(func(ts time.Duration) { got = append(got, ts) })

	if fired := h.RunFrames(); fired != 1 {
		t.Fatalf("RunFrames() = %d, want 1", fired)
	}
	if fired := h.RunFrames(); fired != 0 {
		t.Errorf("second RunFrames() = %d, want 0", fired)
	}
	if len(got) != 1 || got[0] != 16*time.Millisecond {
		t.Errorf("callback timestamps = %v, want [16ms]", got)
	}
}

func TestRescheduleRunsNextRefresh(t *testing.T) {
	h, _ := newTestHost(Options{})

	count := 0
	var loop platform.FrameCallback
	loop = func(time.Duration) {
		count++
		h.RequestFrame(loop)
	}
	h.RequestFrame(loop)

	for i := 0; i < 3; i++ {
		if fired := h.RunFrames(); fired != 1 {
			t.Fatalf("refresh %d fired %d callbacks, want 1", i, fired)
		}
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if h.PendingFrames() != 1 {
		t.Errorf("PendingFrames() = %d, want 1", h.PendingFrames())
	}
}

func TestCancelFrame(t *testing.T) {
	tests := []struct {
		name      string
		run       func(h *Host) int
		wantFired int
	}{
		{
			name: "cancel before refresh",
			run: func(h *Host) int {
				id := h.RequestFrame(func(time.Duration) {})
				h.CancelFrame(id)
				return h.RunFrames()
			},
			wantFired: 0,
		},
		{
			name: "cancel unknown handle",
			run: func(h *Host) int {
				h.RequestFrame(func(time.Duration) {})
				h.CancelFrame(999)
				return h.RunFrames()
			},
			wantFired: 1,
		},
		{
			name: "cancel sibling during refresh",
			run: func(h *Host) int {
				var second platform.FrameHandle
				h.RequestFrame(func(time.Duration) { h.CancelFrame(second) })
				second = h.RequestFrame(func(time.Duration) { t.Error("cancelled callback fired") })
				return h.RunFrames()
			},
			wantFired: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHost(Options{})
			if got := tt.run(h); got != tt.wantFired {
				t.Errorf("fired = %d, want %d", got, tt.wantFired)
			}
		})
	}
}

func TestLayoutCapsRatio(t *testing.T) {
	tests := []struct {
		name          string
		w, h          int
		ratio         float64
		max           float64
		wantW, wantH  int
		wantViewportW int
	}{
		{"standard", 800, 600, 1, 0, 800, 600, 800},
		{"retina", 800, 600, 2, 0, 1600, 1200, 800},
		{"capped", 800, 600, 3, 0, 1600, 1200, 800},
		{"fractional floors", 333, 101, 1.5, 0, 499, 151, 333},
		{"custom cap", 100, 100, 3, 1, 100, 100, 100},
		{"minimized", 0, 0, 1, 0, 1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHost(Options{MaxDevicePixelRatio: tt.max})
			w, hh := h.Layout(tt.w, tt.h, tt.ratio)
			if w != tt.wantW || hh != tt.wantH {
				t.Errorf("Layout() = %dx%d, want %dx%d", w, hh, tt.wantW, tt.wantH)
			}
			if vw, _ := h.ViewportSize(); vw != tt.wantViewportW {
				t.Errorf("ViewportSize() width = %d, want %d", vw, tt.wantViewportW)
			}
		})
	}
}

func TestLayoutSchedulesResize(t *testing.T) {
	h, _ := newTestHost(Options{})
	resizes := 0
	sub := h.OnResize(func() { resizes++ })

	h.Layout(800, 600, 1)
	h.Layout(800, 600, 1)
	if !h.FlushResize() {
		t.Fatal("first layout should schedule a resize")
	}
	if h.FlushResize() {
		t.Error("unchanged layout scheduled another resize")
	}

	// 只有像素比变化（窗口移动到另一块显示器）
	h.Layout(800, 600, 2)
	h.FlushResize()
	if resizes != 2 {
		t.Errorf("resizes = %d, want 2", resizes)
	}

	sub.Cancel()
	h.Layout(640, 480, 2)
	h.FlushResize()
	if resizes != 2 {
		t.Errorf("resize delivered after Cancel: %d", resizes)
	}
}

func TestPointerDispatch(t *testing.T) {
	h, _ := newTestHost(Options{})
	h.Layout(400, 300, 2)

	var moves, clicks []platform.PointerEvent
	h.OnPointerMove(func(ev platform.PointerEvent) { moves = append(moves, ev) })
	h.OnClick(func(ev platform.PointerEvent) { clicks = append(clicks, ev) })

	// 基准采样
	h.Pointer(0, 0, false)
	if len(moves) != 0 {
		t.Fatalf("baseline sample dispatched %d moves", len(moves))
	}

	h.Pointer(200, 100, false)
	h.Pointer(200, 100, false)
	h.Pointer(200, 100, true)

	if len(moves) != 1 {
		t.Fatalf("moves = %d, want 1 (unchanged position is not a move)", len(moves))
	}
	if moves[0].ClientX != 100 || moves[0].ClientY != 50 {
		t.Errorf("client = (%v, %v), want (100, 50)", moves[0].ClientX, moves[0].ClientY)
	}
	if moves[0].Surface.Width != 400 || moves[0].Surface.Height != 300 {
		t.Errorf("surface = %+v, want 400x300", moves[0].Surface)
	}
	if len(clicks) != 1 {
		t.Errorf("clicks = %d, want 1", len(clicks))
	}
}

func TestFirstTouchMovesPointer(t *testing.T) {
	h, _ := newTestHost(Options{})
	h.Layout(400, 300, 1)

	moves := 0
	h.OnPointerMove(func(platform.PointerEvent) { moves++ })
	h.Pointer(120, 80, true)
	if moves != 1 {
		t.Errorf("moves = %d, want 1 for a first press", moves)
	}
}

func TestClickInterceptor(t *testing.T) {
	h, _ := newTestHost(Options{})
	h.Layout(400, 300, 1)

	clicks := 0
	h.OnClick(func(platform.PointerEvent) { clicks++ })
	h.SetClickInterceptor(func(ev platform.PointerEvent) bool { return ev.ClientX > 300 })

	h.Pointer(350, 10, true)
	if clicks != 0 {
		t.Errorf("intercepted click reached the surface")
	}
	h.Pointer(50, 10, true)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestAcquireDeviceDisabled(t *testing.T) {
	h, _ := newTestHost(Options{DisableDevice: true})
	dev, err := h.AcquireDevice()
	if !errors.Is(err, platform.ErrContextUnavailable) {
		t.Errorf("err = %v, want ErrContextUnavailable", err)
	}
	if dev != nil {
		t.Error("device should be nil")
	}
	if h.Canvas() != nil {
		t.Error("Canvas() should be nil without a device")
	}
}

func TestSampleTouchRelease(t *testing.T) {
	tests := []struct {
		name      string
		mobile    bool
		samples   []InputState
		wantMoves int
		wantLast  [2]float64
	}{
		{
			name:   "mobile release keeps last touch",
			mobile: true,
			samples: []InputState{
				{JustPressed: true, X: 120, Y: 80, IsTouching: true},
				{X: 120, Y: 80, IsTouching: true},
				{X: 0, Y: 0},
				{X: 0, Y: 0},
			},
			wantMoves: 1,
			wantLast:  [2]float64{120, 80},
		},
		{
			name:   "mobile drag moves pointer",
			mobile: true,
			samples: []InputState{
				{JustPressed: true, X: 120, Y: 80, IsTouching: true},
				{X: 200, Y: 90, IsTouching: true},
				{X: 0, Y: 0},
			},
			wantMoves: 2,
			wantLast:  [2]float64{200, 90},
		},
		{
			name: "desktop release ignores stale cursor",
			samples: []InputState{
				{JustPressed: true, X: 120, Y: 80, IsTouching: true},
				{X: 0, Y: 0},
				{X: 0, Y: 0},
			},
			wantMoves: 1,
			wantLast:  [2]float64{120, 80},
		},
		{
			name: "desktop mouse resumes after moving",
			samples: []InputState{
				{JustPressed: true, X: 120, Y: 80, IsTouching: true},
				{X: 0, Y: 0},
				{X: 30, Y: 40},
			},
			wantMoves: 2,
			wantLast:  [2]float64{30, 40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHost(Options{})
			h.mobile = tt.mobile
			h.Layout(400, 300, 1)

			var moves []platform.PointerEvent
			h.OnPointerMove(func(ev platform.PointerEvent) { moves = append(moves, ev) })
			for _, s := range tt.samples {
				h.Sample(s)
			}

			if len(moves) != tt.wantMoves {
				t.Fatalf("moves = %d, want %d: %+v", len(moves), tt.wantMoves, moves)
			}
			last := moves[len(moves)-1]
			if last.ClientX != tt.wantLast[0] || last.ClientY != tt.wantLast[1] {
				t.Errorf("last move = (%v, %v), want %v", last.ClientX, last.ClientY, tt.wantLast)
			}
		})
	}
}

func TestAcquireDeviceReleasesPrevious(t *testing.T) {
	h, _ := newTestHost(Options{})
	first, err := h.AcquireDevice()
	if err != nil {
		t.Fatalf("AcquireDevice() error: %v", err)
	}
	second, err := h.AcquireDevice()
	if err != nil {
		t.Fatalf("second AcquireDevice() error: %v", err)
	}
	if first == second {
		t.Fatal("remount returned the same device")
	}
	if !first.(*Device).released {
		t.Error("previous device not released on remount")
	}
	if second.(*Device).released {
		t.Error("new device already released")
	}
}
