package benchmark

import "math/rand"

// SyntheticProvider generates deterministic tables without the
// competition data bundle: seeded shift vectors inside the search box,
// identity rotations and seeded shuffle permutations. The landscapes
// it produces keep every structural property of the real suites (the
// optimum of each sub-function sits exactly on its stored shift), so
// it serves development and tests where the published reference values
// are not needed.
type SyntheticProvider struct {
	// Seed offsets the per-problem derivation, so two providers with
	// different seeds produce different landscapes.
	Seed int64
}

// Tables generates exactly the requested record counts.
func (sp SyntheticProvider) Tables(req TableRequest) (*Tables, error) {
	rng := rand.New(rand.NewSource(sp.seedFor(req)))
	n := req.Dim

	t := &Tables{
		Shift:    make([]float64, req.Shifts*n),
		Rotation: make([]float64, req.Matrices*n*n),
		Shuffle:  make([]int, req.ShuffleBlocks*n),
	}
	for i := range t.Shift {
		t.Shift[i] = -80 + 160*rng.Float64()
	}
	for m := 0; m < req.Matrices; m++ {
		base := m * n * n
		for i := 0; i < n; i++ {
			t.Rotation[base+i*n+i] = 1
		}
	}
	for b := 0; b < req.ShuffleBlocks; b++ {
		copy(t.Shuffle[b*n:(b+1)*n], rng.Perm(n))
	}
	return t, nil
}

func (sp SyntheticProvider) seedFor(req TableRequest) int64 {
	seed := sp.Seed*1000003 + int64(req.Func)*131 + int64(req.Dim)
	for _, c := range req.Suite {
		seed = seed*31 + int64(c)
	}
	return seed
}
