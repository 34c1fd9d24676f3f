package aurora

import (
	"errors"
	"sync"

	"aurora/internal/palette"
)

type fakeHost struct {
	mu      sync.Mutex
	w, h    float64
	dpr     float64
	dark    bool
	reduced bool
}

func (h *fakeHost) Size() (float64, float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.w, h.h
}

func (h *fakeHost) DevicePixelRatio() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dpr
}

func (h *fakeHost) DarkTheme() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dark
}

func (h *fakeHost) ReducedMotion() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reduced
}

func (h *fakeHost) setSize(w, hh float64) {
	h.mu.Lock()
	h.w, h.h = w, hh
	h.mu.Unlock()
}

type fillCall struct {
	r, g, b, a float64
	arcs       int
}

// recordingSurface records draw calls instead of rasterizing.
type recordingSurface struct {
	mu          sync.Mutex
	resizes     [][2]int
	scale       float64
	clears      []palette.RGB
	fills       []fillCall
	pending     fillCall
	pendingArcs int
	failFill    bool
}

func (s *recordingSurface) Resize(w, h int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resizes = append(s.resizes, [2]int{w, h})
	return nil
}

func (s *recordingSurface) SetScale(v float64) {
	s.mu.Lock()
	s.scale = v
	s.mu.Unlock()
}

func (s *recordingSurface) Clear(c palette.RGB) {
	s.mu.Lock()
	s.clears = append(s.clears, c)
	s.fills = s.fills[:0]
	s.mu.Unlock()
}

func (s *recordingSurface) SetFill(r, g, b, a float64) {
	s.pending = fillCall{r: r, g: g, b: b, a: a}
}

func (s *recordingSurface) Arc(x, y, radius float64) {
	s.pendingArcs++
}

func (s *recordingSurface) Fill() error {
	if s.failFill {
		return errors.New("fill failed")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.arcs = s.pendingArcs
	s.fills = append(s.fills, s.pending)
	s.pendingArcs = 0
	return nil
}

func (s *recordingSurface) resizeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.resizes)
}

func acquireOK(s Surface) Acquire {
	return func() (Surface, error) { return s, nil }
}

// constField returns the same value everywhere.
type constField float64

func (c constField) Noise2D(x, y float64) float64 { return float64(c) }
