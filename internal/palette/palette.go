// Package palette holds the two fixed aurora color ramps and their interpolator.
package palette

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Stops is the number of colors in a ramp.
const Stops = 9

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Palette is an ordered 9-stop color ramp.
type Palette [Stops]RGB

// Light and Dark are the only two ramps the renderer paints with.
var (
	Light = mustPalette(
		"#c7d2fe", "#a5b4fc", "#93c5fd", "#7dd3fc", "#67e8f9",
		"#5eead4", "#6ee7b7", "#a7f3d0", "#d9f99d",
	)
	Dark = mustPalette(
		"#1e1b4b", "#312e81", "#3730a3", "#1e40af", "#0e7490",
		"#0f766e", "#047857", "#15803d", "#4d7c0f",
	)
)

// ParseHex decodes a "#rrggbb" color.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

func mustPalette(hex ...string) Palette {
	if len(hex) != Stops {
		panic(fmt.Sprintf("palette: need %d stops, got %d", Stops, len(hex)))
	}
	var p Palette
	for i, h := range hex {
		c, err := ParseHex(h)
		if err != nil {
			panic(err)
		}
		p[i] = c
	}
	return p
}

// At linearly interpolates the ramp at t in [0, 1]. The channels are left
// unrounded so neighboring buckets blend smoothly.
func (p Palette) At(t float64) (r, g, b float64) {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	const last = Stops - 1
	idx := t * last
	lo := int(math.Floor(idx))
	if lo > last {
		lo = last
	}
	hi := lo + 1
	if hi > last {
		hi = last
	}
	f := idx - float64(lo)

	a, c := p[lo], p[hi]
	r = float64(a.R) + (float64(c.R)-float64(a.R))*f
	g = float64(a.G) + (float64(c.G)-float64(a.G))*f
	b = float64(a.B) + (float64(c.B)-float64(a.B))*f
	return r, g, b
}
