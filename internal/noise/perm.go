package noise

const (
	// Seed is the fixed seed the aurora permutation table is built from.
	Seed = 42

	// LCGModulus and LCGMultiplier are the Park-Miller minimal standard constants.
	LCGModulus    = 2147483647
	LCGMultiplier = 16807

	// TableSize is the length of the duplicated permutation table.
	TableSize = 512
)

// LCG is a Park-Miller linear congruential generator.
type LCG struct {
	state int64
}

// NewLCG creates a generator. Seeds outside (0, LCGModulus) are folded into range,
// since a zero state would make the generator emit zeros forever.
func NewLCG(seed int64) *LCG {
	s := seed % LCGModulus
	if s <= 0 {
		s += LCGModulus - 1
	}
	return &LCG{state: s}
}

// Next advances the generator and returns the new state in [1, LCGModulus).
func (g *LCG) Next() int64 {
	g.state = g.state * LCGMultiplier % LCGModulus
	return g.state
}

// Float64 advances the generator and returns the new state scaled into (0, 1).
func (g *LCG) Float64() float64 {
	return float64(g.Next()) / LCGModulus
}

// BuildPermutation returns a Fisher-Yates shuffle of 0..255 driven by an LCG
// seeded with seed, followed by a verbatim copy of itself so lookups of
// perm[i+k] never need to wrap.
func BuildPermutation(seed int64) [TableSize]uint8 {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}

	g := NewLCG(seed)
	for i := 255; i > 0; i-- {
		j := int(g.Float64() * float64(i+1))
		p[i], p[j] = p[j], p[i]
	}

	var perm [TableSize]uint8
	for i := 0; i < TableSize; i++ {
		perm[i] = p[i&255]
	}
	return perm
}
