package aurora

import (
	"go.uber.org/zap"

	"aurora/internal/noise"
	"aurora/internal/palette"
)

// State is the renderer lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateRunning
	StateDisabled // surface could not be acquired
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateDisabled:
		return "disabled"
	case StateTornDown:
		return "torn down"
	default:
		return "unknown"
	}
}

// Renderer owns the clock, frame counter and surface size cache of one
// mounted aurora. It is not safe for concurrent use; drive it from one
// goroutine.
type Renderer struct {
	host    Host
	acquire Acquire
	field   Field
	logger  *zap.Logger

	surface Surface
	state   State

	ticks    uint64
	rendered uint64
	clock    float64
	forced   bool

	width, height float64
	dpr           float64

	frame Frame
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithField replaces the default seeded noise field.
func WithField(f Field) Option {
	return func(r *Renderer) { r.field = f }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRenderer creates an unmounted renderer.
func NewRenderer(host Host, acquire Acquire, opts ...Option) *Renderer {
	r := &Renderer{
		host:    host,
		acquire: acquire,
		field:   noise.Default(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mount acquires the surface, sizes the backing buffer and forces the first
// tick to render. It reports whether the renderer is running. A surface that
// cannot be acquired leaves the renderer disabled without an error.
func (r *Renderer) Mount() bool {
	if r.state != StateUninitialized {
		return r.state == StateRunning
	}

	s, err := r.acquire()
	if err != nil || s == nil {
		r.state = StateDisabled
		r.logger.Debug("aurora disabled: no drawing surface", zap.Error(err))
		return false
	}

	r.surface = s
	r.state = StateRunning
	r.measure()
	return true
}

// Resize re-measures the host and forces the next tick to render.
func (r *Renderer) Resize() {
	if r.state != StateRunning {
		return
	}
	r.measure()
}

// Unmount tears the renderer down. Later ticks do nothing.
func (r *Renderer) Unmount() {
	if r.state == StateRunning || r.state == StateUninitialized {
		r.state = StateTornDown
	}
}

func (r *Renderer) measure() {
	w, h := r.host.Size()
	dpr := EffectiveDPR(r.host.DevicePixelRatio())
	r.width, r.height, r.dpr = w, h, dpr

	if err := r.surface.Resize(int(w*dpr), int(h*dpr)); err != nil {
		r.logger.Debug("resize backing buffer", zap.Float64("width", w), zap.Float64("height", h), zap.Error(err))
	}
	r.surface.SetScale(dpr)
	r.forced = true
}

// Tick is one display refresh callback. Only every ThrottleEvery-th tick
// renders, except that the first tick after a resize always renders. A forced
// render does not reset the parity of the counter. Tick reports whether a
// frame was painted.
func (r *Renderer) Tick() bool {
	if r.state != StateRunning {
		return false
	}

	r.ticks++
	if !r.forced && r.ticks%ThrottleEvery != 0 {
		return false
	}
	r.forced = false

	if !r.host.ReducedMotion() {
		r.clock += TimeStep
	}

	theme := palette.ThemeFor(r.host.DarkTheme())
	BuildFrame(r.field, r.width, r.height, r.clock, &r.frame)
	if err := Paint(r.surface, &r.frame, theme); err != nil {
		r.logger.Debug("paint frame", zap.Error(err))
	}
	r.rendered++
	return true
}

// State returns the lifecycle state.
func (r *Renderer) State() State { return r.state }

// Time returns the animation clock.
func (r *Renderer) Time() float64 { return r.clock }

// Ticks returns the raw number of ticks seen while running.
func (r *Renderer) Ticks() uint64 { return r.ticks }

// Rendered returns the number of painted frames.
func (r *Renderer) Rendered() uint64 { return r.rendered }

// Frame returns the last built frame. It is overwritten by the next
// rendered tick; use Clone to keep it.
func (r *Renderer) Frame() *Frame { return &r.frame }

// Size returns the cached logical size and the effective pixel ratio.
func (r *Renderer) Size() (w, h, dpr float64) { return r.width, r.height, r.dpr }

// EffectiveDPR is the pixel ratio the backing buffer is sized with: dpr
// capped at MaxDevicePixelRatio, or 1 when dpr is not positive.
func EffectiveDPR(dpr float64) float64 {
	if !(dpr > 0) {
		return 1
	}
	if dpr > MaxDevicePixelRatio {
		return MaxDevicePixelRatio
	}
	return dpr
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := *f
	for i, b := range f.Buckets {
		c.Buckets[i] = append([]Dot(nil), b...)
	}
	return &c
}

// RenderStill paints a single frame at clock t onto s, independent of any
// renderer state.
func RenderStill(s Surface, field Field, w, h, dpr float64, dark bool, t float64) (*Frame, error) {
	dpr = EffectiveDPR(dpr)
	if err := s.Resize(int(w*dpr), int(h*dpr)); err != nil {
		return nil, err
	}
	s.SetScale(dpr)

	f := BuildFrame(field, w, h, t, nil)
	if err := Paint(s, f, palette.ThemeFor(dark)); err != nil {
		return nil, err
	}
	return f, nil
}
