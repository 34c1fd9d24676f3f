package aurora

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"aurora/internal/palette"
)

func newTestRenderer(t *testing.T, h *fakeHost) (*Renderer, *recordingSurface) {
	t.Helper()
	s := &recordingSurface{}
	r := NewRenderer(h, acquireOK(s), WithLogger(zaptest.NewLogger(t)))
	if !r.Mount() {
		t.Fatal("Mount failed")
	}
	return r, s
}

func TestRendererThrottle(t *testing.T) {
	r, _ := newTestRenderer(t, &fakeHost{w: 100, h: 100, dpr: 1})

	// Tick 1 is forced by the mount measurement, then only even ticks render
	want := []bool{true, true, false, true, false, true}
	for i, w := range want {
		if got := r.Tick(); got != w {
			t.Fatalf("tick %d rendered=%v, want %v", i+1, got, w)
		}
	}
	if r.Ticks() != 6 || r.Rendered() != 4 {
		t.Errorf("ticks=%d rendered=%d", r.Ticks(), r.Rendered())
	}
}

func TestRendererResizeBypassesThrottleOnce(t *testing.T) {
	h := &fakeHost{w: 100, h: 100, dpr: 1}
	r, _ := newTestRenderer(t, h)
	r.Tick() // 1, forced
	r.Tick() // 2
	r.Tick() // 3, skipped

	h.setSize(200, 80)
	r.Resize()

	// 4 renders anyway, 5 is forced, 6 renders by parity, 7 is skipped
	if !r.Tick() {
		t.Fatal("tick 4 skipped")
	}
	r.Resize()
	if !r.Tick() {
		t.Fatal("forced tick 5 skipped")
	}
	if !r.Tick() {
		t.Fatal("tick 6 skipped; forced redraw reset parity")
	}
	if r.Tick() {
		t.Fatal("tick 7 rendered")
	}
	if w, hh, _ := r.Size(); w != 200 || hh != 80 {
		t.Errorf("size = %vx%v after resize", w, hh)
	}
}

func TestRendererClockAdvancesPerRenderedFrame(t *testing.T) {
	r, _ := newTestRenderer(t, &fakeHost{w: 50, h: 50, dpr: 1})
	for i := 0; i < 10; i++ {
		r.Tick()
	}
	want := float64(r.Rendered()) * TimeStep
	if math.Abs(r.Time()-want) > 1e-12 {
		t.Errorf("clock = %v, want %v after %d rendered frames", r.Time(), want, r.Rendered())
	}
}

func TestRendererReducedMotionFreezes(t *testing.T) {
	h := &fakeHost{w: 120, h: 90, dpr: 1, reduced: true}
	r, _ := newTestRenderer(t, h)

	if !r.Tick() {
		t.Fatal("first tick skipped")
	}
	first := r.Frame().Clone()
	if !r.Tick() {
		t.Fatal("second tick skipped")
	}
	second := r.Frame()

	if r.Time() != 0 {
		t.Errorf("clock advanced to %v under reduced motion", r.Time())
	}
	if !reflect.DeepEqual(first.Dots(), second.Dots()) {
		t.Error("consecutive frames differ under reduced motion")
	}
}

func TestRendererPollsThemeEachFrame(t *testing.T) {
	h := &fakeHost{w: 40, h: 40, dpr: 1}
	r, s := newTestRenderer(t, h)

	r.Tick()
	if got := s.clears[len(s.clears)-1]; got != palette.ThemeFor(false).Background {
		t.Errorf("light background = %v", got)
	}

	h.mu.Lock()
	h.dark = true
	h.mu.Unlock()
	r.Tick()
	if got := s.clears[len(s.clears)-1]; got != palette.ThemeFor(true).Background {
		t.Errorf("dark background = %v", got)
	}
	if s.fills[0].a != 0.45 {
		t.Errorf("dark alpha = %v", s.fills[0].a)
	}
}

func TestRendererBackingBuffer(t *testing.T) {
	tests := []struct {
		name  string
		dpr   float64
		scale float64
		w, h  int
	}{
		{"standard", 1, 1, 300, 150},
		{"retina", 2, 2, 600, 300},
		{"capped", 3, 2, 600, 300},
		{"fractional", 1.5, 1.5, 450, 225},
		{"unknown", 0, 1, 300, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, s := newTestRenderer(t, &fakeHost{w: 300, h: 150, dpr: tt.dpr})
			if got := s.resizes[0]; got != [2]int{tt.w, tt.h} {
				t.Errorf("backing = %v, want %dx%d", got, tt.w, tt.h)
			}
			if s.scale != tt.scale {
				t.Errorf("scale = %v, want %v", s.scale, tt.scale)
			}
		})
	}
}

func TestRendererAcquireFailureIsSilent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := NewRenderer(&fakeHost{w: 10, h: 10}, func() (Surface, error) {
		return nil, errors.New("no 2d context")
	}, WithLogger(zap.New(core)))

	if r.Mount() {
		t.Fatal("Mount succeeded without a surface")
	}
	if r.State() != StateDisabled {
		t.Errorf("state = %v", r.State())
	}
	for i := 0; i < 4; i++ {
		if r.Tick() {
			t.Fatal("disabled renderer rendered")
		}
	}
	r.Resize()
	r.Unmount()

	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.DebugLevel {
		t.Errorf("log entries = %v, want one debug entry", entries)
	}
}

func TestRendererUnmountStopsTicks(t *testing.T) {
	r, _ := newTestRenderer(t, &fakeHost{w: 20, h: 20, dpr: 1})
	r.Tick()
	r.Unmount()
	if r.State() != StateTornDown {
		t.Fatalf("state = %v", r.State())
	}
	for i := 0; i < 4; i++ {
		if r.Tick() {
			t.Fatal("tick after unmount rendered")
		}
	}
	if r.Mount() {
		t.Error("remount after teardown succeeded")
	}
}

func TestRenderStill(t *testing.T) {
	s := &recordingSurface{}
	f, err := RenderStill(s, constField(0), 100, 50, 2, true, 7)
	if err != nil {
		t.Fatal(err)
	}
	if f.Time != 7 || f.Count() != 11*6 {
		t.Errorf("frame time=%v count=%d", f.Time, f.Count())
	}
	if s.resizes[0] != [2]int{200, 100} || s.scale != 2 {
		t.Errorf("resize=%v scale=%v", s.resizes, s.scale)
	}
	if len(s.fills) != 1 {
		t.Errorf("fills = %d, want 1 for a constant field", len(s.fills))
	}
}

func TestStateString(t *testing.T) {
	if StateRunning.String() != "running" || State(99).String() != "unknown" {
		t.Error("unexpected state names")
	}
}

func TestEffectiveDPR(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1, 1},
		{1.5, 1.5},
		{3, MaxDevicePixelRatio},
		{0, 1},
		{-2, 1},
		{math.NaN(), 1},
	}
	for _, tt := range tests {
		if got := EffectiveDPR(tt.in); got != tt.want {
			t.Errorf("EffectiveDPR(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
