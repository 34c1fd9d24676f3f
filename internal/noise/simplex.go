// Package noise implements the fixed-seed 2D simplex noise field behind the aurora.
package noise

import (
	"math"
	"sync"
)

const (
	f2 = 0.3660254037844386  // (sqrt(3) - 1) / 2
	g2 = 0.21132486540518713 // (3 - sqrt(3)) / 6
)

// grad2 is the gradient set: the corners and edge midpoints of a square.
var grad2 = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// Simplex evaluates 2D simplex noise over a seed-shuffled permutation table.
type Simplex struct {
	perm [TableSize]uint8
}

// New creates a noise field from the given seed.
func New(seed int64) *Simplex {
	return &Simplex{perm: BuildPermutation(seed)}
}

var (
	defaultOnce  sync.Once
	defaultField *Simplex
)

// Default returns the process-wide field built from Seed. The table is built
// on first use and never mutated afterwards.
func Default() *Simplex {
	defaultOnce.Do(func() {
		defaultField = New(Seed)
	})
	return defaultField
}

// Perm returns a copy of the permutation table.
func (sn *Simplex) Perm() [TableSize]uint8 {
	return sn.perm
}

// Noise2D returns 2D simplex noise at (x, y), approximately in [-1, 1].
func (sn *Simplex) Noise2D(x, y float64) float64 {
	// Skew input space to find the simplex cell
	s := (x + y) * f2
	i := math.Floor(x + s)
	j := math.Floor(y + s)

	t := (i + j) * g2
	x0 := x - (i - t)
	y0 := y - (j - t)

	// Lower or upper triangle of the cell
	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1.0 + 2.0*g2
	y2 := y0 - 1.0 + 2.0*g2

	ii := int(i) & 255
	jj := int(j) & 255
	p := &sn.perm

	var n0, n1, n2 float64

	t0 := 0.5 - x0*x0 - y0*y0
	if t0 > 0 {
		g := grad2[p[ii+int(p[jj])]&7]
		t0 *= t0
		n0 = t0 * t0 * (g[0]*x0 + g[1]*y0)
	}

	t1 := 0.5 - x1*x1 - y1*y1
	if t1 > 0 {
		g := grad2[p[ii+i1+int(p[jj+j1])]&7]
		t1 *= t1
		n1 = t1 * t1 * (g[0]*x1 + g[1]*y1)
	}

	t2 := 0.5 - x2*x2 - y2*y2
	if t2 > 0 {
		g := grad2[p[ii+1+int(p[jj+1])]&7]
		t2 *= t2
		n2 = t2 * t2 * (g[0]*x2 + g[1]*y2)
	}

	return 70.0 * (n0 + n1 + n2)
}
