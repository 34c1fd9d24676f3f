package aurora

import "math"

// Dot is one painted circle in logical pixels.
type Dot struct {
	X, Y, Radius float64
}

// Frame is the dot grid of one rendered frame, grouped by color bucket.
type Frame struct {
	Width, Height float64
	Cols, Rows    int
	Time          float64
	Buckets       [Buckets][]Dot
}

// Count returns the number of dots across all buckets.
func (f *Frame) Count() int {
	n := 0
	for _, b := range f.Buckets {
		n += len(b)
	}
	return n
}

// Dots returns every dot in bucket order.
func (f *Frame) Dots() []Dot {
	out := make([]Dot, 0, f.Count())
	for _, b := range f.Buckets {
		out = append(out, b...)
	}
	return out
}

func (f *Frame) reset() {
	for i := range f.Buckets {
		f.Buckets[i] = f.Buckets[i][:0]
	}
}

// GridSize returns the candidate grid dimensions for a w x h surface. The
// extra column and row make the grid overflow the surface by a cell.
func GridSize(w, h, spacing float64) (cols, rows int) {
	if w <= 0 || h <= 0 || spacing <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(w/spacing)) + 1
	rows = int(math.Ceil(h/spacing)) + 1
	return cols, rows
}

// BuildFrame computes the dot grid for a w x h logical surface at clock t.
// dst's bucket slices are reused; pass nil to allocate a new frame.
func BuildFrame(field Field, w, h, t float64, dst *Frame) *Frame {
	if dst == nil {
		dst = &Frame{}
	}
	dst.reset()
	dst.Width, dst.Height, dst.Time = w, h, t
	dst.Cols, dst.Rows = GridSize(w, h, Spacing)

	const maxRadius = Spacing * MaxRadiusRatio

	for row := 0; row < dst.Rows; row++ {
		y := float64(row) * Spacing
		ny := y / h
		for col := 0; col < dst.Cols; col++ {
			x := float64(col) * Spacing
			nx := x / w

			n1 := field.Noise2D(nx*2.5+t*0.4, ny*2.5+t*0.25)
			// +50 moves the second sample into an unrelated region of the same field
			n2 := field.Noise2D(nx*4+t*0.2+50, ny*3-t*0.15+50)

			size := 0.35 + clamp01((n1*0.65+n2*0.35+1)/2)*0.65
			radius := size * maxRadius
			if radius < MinRadius {
				continue
			}

			// Color reuses the first sample instead of a third evaluation
			b := int(clamp01((n1+1)/2) * Buckets)
			if b >= Buckets {
				b = Buckets - 1
			}
			dst.Buckets[b] = append(dst.Buckets[b], Dot{X: x, Y: y, Radius: radius})
		}
	}
	return dst
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
