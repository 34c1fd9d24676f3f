package noise

import "testing"

func TestLCGSequence(t *testing.T) {
	g := NewLCG(Seed)
	want := []int64{
		42 * LCGMultiplier % LCGModulus,
	}
	want = append(want, want[0]*LCGMultiplier%LCGModulus)
	for i, w := range want {
		if got := g.Next(); got != w {
			t.Fatalf("step %d: got %d, want %d", i, got, w)
		}
	}
}

func TestLCGZeroSeedNotStuck(t *testing.T) {
	g := NewLCG(0)
	if g.Next() == 0 {
		t.Fatal("zero seed produced a zero state")
	}
}

func TestLCGFloatRange(t *testing.T) {
	g := NewLCG(Seed)
	for i := 0; i < 10000; i++ {
		u := g.Float64()
		if u <= 0 || u >= 1 {
			t.Fatalf("value %d out of (0,1): %v", i, u)
		}
	}
}

func TestBuildPermutationDeterministic(t *testing.T) {
	a := BuildPermutation(Seed)
	b := BuildPermutation(Seed)
	if a != b {
		t.Fatal("two builds with the same seed differ")
	}
}

func TestBuildPermutationShape(t *testing.T) {
	perm := BuildPermutation(Seed)

	var seen [256]int
	for i := 0; i < 256; i++ {
		seen[perm[i]]++
		if perm[i] != perm[i+256] {
			t.Fatalf("perm[%d]=%d but perm[%d]=%d", i, perm[i], i+256, perm[i+256])
		}
	}
	for v, n := range seen {
		if n != 1 {
			t.Fatalf("value %d appears %d times in the first half", v, n)
		}
	}
}

// The sequence is locked: changing the seed handling or the shuffle breaks this.
func TestBuildPermutationSnapshot(t *testing.T) {
	perm := BuildPermutation(Seed)
	want := []uint8{226, 92, 114, 22, 194, 167, 6, 3}
	for i, w := range want {
		if perm[i] != w {
			t.Fatalf("perm[%d] = %d, want %d", i, perm[i], w)
		}
	}
	if perm[255] != 0 {
		t.Errorf("perm[255] = %d, want 0", perm[255])
	}
}

func TestBuildPermutationSeedsDiffer(t *testing.T) {
	if BuildPermutation(Seed) == BuildPermutation(Seed+1) {
		t.Fatal("different seeds produced the same table")
	}
}
