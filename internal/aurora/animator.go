package aurora

import (
	"context"
	"sync"
	"time"
)

// FrameFunc receives each rendered frame on the animator goroutine. A
// non-nil error stops the animator.
type FrameFunc func(f *Frame) error

// Animator stands in for the host display callback: it ticks a renderer at a
// fixed refresh rate from a single goroutine, so at most one tick is ever in
// flight. Ticks skipped by the throttle or missed by a slow consumer are
// dropped, never queued.
type Animator struct {
	r        *Renderer
	interval time.Duration
	onFrame  FrameFunc

	resizeCh chan struct{}
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
	err      error
}

// NewAnimator creates an animator for r. onFrame may be nil.
func NewAnimator(r *Renderer, refreshRate int, onFrame FrameFunc) *Animator {
	return &Animator{
		r:        r,
		interval: TickInterval(refreshRate),
		onFrame:  onFrame,
		resizeCh: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Start mounts the renderer and begins ticking until ctx is done or Stop is
// called. If the surface cannot be acquired nothing runs and Start returns
// false. Start and Stop must be called by the same owner.
func (a *Animator) Start(ctx context.Context) bool {
	if !a.r.Mount() {
		close(a.done)
		return false
	}
	ctx, a.cancel = context.WithCancel(ctx)
	go a.run(ctx)
	return true
}

// NotifyResize asks the loop to re-measure before its next tick. Bursts of
// notifications collapse into one.
func (a *Animator) NotifyResize() {
	select {
	case a.resizeCh <- struct{}{}:
	default:
	}
}

// Stop cancels the pending tick, waits for the loop to exit and unmounts the
// renderer. It is safe to call more than once.
func (a *Animator) Stop() {
	a.stopOnce.Do(func() {
		if a.cancel != nil {
			a.cancel()
		}
		<-a.done
		a.r.Unmount()
	})
}

// Done is closed when the loop exits.
func (a *Animator) Done() <-chan struct{} {
	return a.done
}

// Err returns the error that stopped the loop, if any. Valid after Done.
func (a *Animator) Err() error {
	return a.err
}

func (a *Animator) run(ctx context.Context) {
	defer close(a.done)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.resizeCh:
			a.r.Resize()
		case <-ticker.C:
			if !a.r.Tick() || a.onFrame == nil {
				continue
			}
			if err := a.onFrame(a.r.Frame()); err != nil {
				a.err = err
				return
			}
		}
	}
}
