package aurora

import "time"

const (
	// DefaultRefreshRate is the display callback rate hosts emulate, in Hz.
	DefaultRefreshRate = 60

	// ThrottleEvery renders one tick out of this many.
	ThrottleEvery = 2

	// TimeStep advances the clock per rendered frame.
	TimeStep = 0.006
)

// TickInterval converts a refresh rate to the period between callbacks.
func TickInterval(refreshRate int) time.Duration {
	if refreshRate < 1 {
		refreshRate = DefaultRefreshRate
	}
	return time.Second / time.Duration(refreshRate)
}

// RenderedFPS is the effective frame rate after throttling.
func RenderedFPS(refreshRate int) int {
	if refreshRate < 1 {
		refreshRate = DefaultRefreshRate
	}
	fps := refreshRate / ThrottleEvery
	if fps < 1 {
		fps = 1
	}
	return fps
}
