package aurora

import "aurora/internal/palette"

// BucketColor is the representative color of bucket b. Bucket 0 maps to the
// first stop and the last bucket to the last stop.
func BucketColor(p palette.Palette, b int) (r, g, bl float64) {
	return p.At(float64(b) / (Buckets - 1))
}

// Paint clears the surface to the theme background and fills each non-empty
// bucket with a single path and a single fill style.
func Paint(s Surface, f *Frame, theme palette.Theme) error {
	s.Clear(theme.Background)
	for b := range f.Buckets {
		dots := f.Buckets[b]
		if len(dots) == 0 {
			continue
		}
		r, g, bl := BucketColor(theme.Palette, b)
		s.SetFill(r, g, bl, theme.Alpha)
		for _, d := range dots {
			s.Arc(d.X, d.Y, d.Radius)
		}
		if err := s.Fill(); err != nil {
			return err
		}
	}
	return nil
}
