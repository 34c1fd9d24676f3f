// Package canvas adapts a gogpu/gg raster context to the aurora drawing surface.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"

	"aurora/internal/aurora"
	"aurora/internal/palette"
)

// ErrEmptySurface is returned when a surface would have no pixels.
var ErrEmptySurface = errors.New("canvas: surface has no pixels")

// Surface is a software-rasterized drawing surface.
type Surface struct {
	dc     *gg.Context
	width  int
	height int
}

var _ aurora.Surface = (*Surface)(nil)

// New creates a surface with a w x h backing buffer.
func New(w, h int) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptySurface, w, h)
	}
	return &Surface{dc: gg.NewContext(w, h), width: w, height: h}, nil
}

// Acquire returns an aurora.Acquire that creates a surface of the given
// initial size. The renderer resizes it on mount.
func Acquire(w, h int) aurora.Acquire {
	return func() (aurora.Surface, error) {
		s, err := New(w, h)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Resize reallocates the backing buffer. The transform is left for SetScale.
func (s *Surface) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptySurface, w, h)
	}
	if w == s.width && h == s.height {
		return nil
	}
	if err := s.dc.Resize(w, h); err != nil {
		return fmt.Errorf("resize canvas: %w", err)
	}
	s.width, s.height = w, h
	return nil
}

// SetScale resets the transform to a uniform scale.
func (s *Surface) SetScale(v float64) {
	s.dc.Identity()
	s.dc.Scale(v, v)
}

// Clear fills the whole buffer with an opaque color.
func (s *Surface) Clear(c palette.RGB) {
	s.dc.ClearWithColor(gg.RGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255))
}

// SetFill sets the fill color from 0-255 channels and a 0-1 alpha.
func (s *Surface) SetFill(r, g, b, a float64) {
	s.dc.SetRGBA(r/255, g/255, b/255, a)
}

// Arc adds a circle to the current path.
func (s *Surface) Arc(x, y, radius float64) {
	s.dc.DrawCircle(x, y, radius)
}

// Fill fills the accumulated path once and clears it.
func (s *Surface) Fill() error {
	return s.dc.Fill()
}

// Size returns the backing buffer size in device pixels.
func (s *Surface) Size() (w, h int) {
	return s.width, s.height
}

// Image returns the current pixels.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the current pixels as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Close releases the context.
func (s *Surface) Close() error {
	return s.dc.Close()
}
