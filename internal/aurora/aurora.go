// Package aurora renders the ambient noise field: a grid of dots whose size
// and color follow two samples of a slowly drifting simplex noise field.
//
// A Renderer owns one drawing surface and one animation clock. Hosts supply
// the polled signals through Host and drive the loop either directly with
// Tick or through an Animator.
package aurora

import "aurora/internal/palette"

const (
	// Spacing is the distance between candidate dot centers in logical pixels.
	Spacing = 10.0

	// MaxRadiusRatio scales Spacing to the largest dot radius.
	MaxRadiusRatio = 0.48

	// MinRadius is the visibility floor; smaller dots are not painted.
	MinRadius = 0.5

	// Buckets is the number of color quantization bands.
	Buckets = 24

	// MaxDevicePixelRatio caps the backing buffer scale.
	MaxDevicePixelRatio = 2.0
)

// Host exposes the external signals the renderer polls once per tick.
type Host interface {
	// Size returns the logical (CSS pixel) size of the layout box.
	Size() (w, h float64)
	DevicePixelRatio() float64
	DarkTheme() bool
	ReducedMotion() bool
}

// Surface is the 2D drawing context the renderer paints into. Coordinates
// passed to Arc are logical pixels; SetScale maps them to the backing buffer.
type Surface interface {
	// Resize reallocates the backing buffer in device pixels.
	Resize(w, h int) error
	// SetScale resets the transform to a uniform scale.
	SetScale(s float64)
	Clear(c palette.RGB)
	// SetFill sets the fill color; channels are 0-255, alpha 0-1.
	SetFill(r, g, b, a float64)
	// Arc adds a full circle to the current path.
	Arc(x, y, radius float64)
	// Fill fills and clears the current path.
	Fill() error
}

// Acquire obtains the drawing surface. An error means the environment cannot
// draw and the renderer stays silent.
type Acquire func() (Surface, error)

// Field is a continuous 2D scalar field in roughly [-1, 1].
type Field interface {
	Noise2D(x, y float64) float64
}
