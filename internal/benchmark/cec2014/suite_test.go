package cec2014

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/GAUNTLET/internal/benchmark"
)

// storedOptimum reproduces the first shift vector the provider hands
// the problem; the generator streams shifts first, so a one-record
// request yields the same values the problem saw.
func storedOptimum(t *testing.T, seed int64, id, dim int) []float64 {
	t.Helper()
	tables, err := benchmark.SyntheticProvider{Seed: seed}.Tables(benchmark.TableRequest{
		Suite: "cec2014", Func: id, Dim: dim, Shifts: 1,
	})
	require.NoError(t, err)
	return tables.Shift
}

func TestOptimumEqualsBias(t *testing.T) {
	const seed = 11
	provider := benchmark.SyntheticProvider{Seed: seed}

	for id := 1; id <= ProblemCount; id++ {
		for _, dim := range []int{10, 30} {
			p, err := New(id, dim, provider)
			require.NoError(t, err, "f%d dim %d", id, dim)

			got := p.Fitness(storedOptimum(t, seed, id, dim))
			assert.InDelta(t, Bias(id), got, 1e-6, "f%d dim %d", id, dim)
		}
	}
}

func TestEvaluationDeterministic(t *testing.T) {
	provider := benchmark.SyntheticProvider{Seed: 5}

	x := make([]float64, 10)
	for i := range x {
		x[i] = float64(i)*9.1 - 45
	}

	for _, id := range []int{1, 12, 17, 22, 23, 30} {
		a, err := New(id, 10, provider)
		require.NoError(t, err)
		b, err := New(id, 10, provider)
		require.NoError(t, err)

		va, vb := a.Fitness(x), b.Fitness(x)
		assert.Equal(t, va, vb, "f%d", id)
		assert.Equal(t, va, a.Fitness(x), "f%d repeat call", id)
	}
}

func TestBias(t *testing.T) {
	assert.Equal(t, 100.0, Bias(1))
	assert.Equal(t, 1700.0, Bias(17))
	assert.Equal(t, 3000.0, Bias(30))
}

func TestHybridPartitions(t *testing.T) {
	provider := benchmark.SyntheticProvider{Seed: 1}

	// f17 splits 30 coordinates 0.3/0.3/0.4.
	p, err := New(17, 30, provider)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 9, 12}, p.Partition())

	// f19 at dim 10: floors 2,2,3 and the last group absorbs the rest.
	p, err = New(19, 10, provider)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 3, 3}, p.Partition())

	// Base problems expose no partition.
	p, err = New(1, 10, provider)
	require.NoError(t, err)
	assert.Nil(t, p.Partition())
}

func TestConstructionValidation(t *testing.T) {
	provider := benchmark.SyntheticProvider{Seed: 1}

	t.Run("id out of range", func(t *testing.T) {
		for _, id := range []int{0, 31} {
			_, err := New(id, 10, provider)
			require.Error(t, err, "id %d", id)
			assert.True(t, benchmark.IsInvalidArgument(err))
		}
	})

	t.Run("unsupported dimension", func(t *testing.T) {
		_, err := New(1, 7, provider)
		require.Error(t, err)
		assert.True(t, benchmark.IsInvalidArgument(err))
	})

	t.Run("dimension 2 rejects shuffled problems", func(t *testing.T) {
		for _, id := range []int{17, 18, 19, 20, 21, 22, 29, 30} {
			_, err := New(id, 2, provider)
			require.Error(t, err, "f%d", id)
			assert.True(t, benchmark.IsInvalidArgument(err), "f%d", id)
		}
	})

	t.Run("dimension 2 accepts the rest", func(t *testing.T) {
		for _, id := range []int{1, 16, 23, 28} {
			_, err := New(id, 2, provider)
			assert.NoError(t, err, "f%d", id)
		}
	})
}

func TestCF01Descriptors(t *testing.T) {
	subs := cf01().Composition
	require.Len(t, subs, 5)

	shapes := make([]benchmark.Shape, len(subs))
	norms := make([]float64, len(subs))
	for i, s := range subs {
		shapes[i] = s.Pipeline.Shape
		norms[i] = s.Norm
	}
	assert.Equal(t, []benchmark.Shape{
		benchmark.Rosenbrock, benchmark.Ellipsoidal, benchmark.BentCigar,
		benchmark.Discus, benchmark.Ellipsoidal,
	}, shapes)
	assert.Equal(t, []float64{
		10000.0 / 1e4, 10000.0 / 1e10, 10000.0 / 1e30, 10000.0 / 1e10, 10000.0 / 1e10,
	}, norms)

	// The last elliptic stays in the original orientation.
	for _, step := range subs[4].Pipeline.Steps {
		assert.NotEqual(t, benchmark.StepRotate, step.Kind)
	}
}

func TestNames(t *testing.T) {
	provider := benchmark.SyntheticProvider{Seed: 1}

	p, err := New(4, 10, provider)
	require.NoError(t, err)
	assert.Equal(t, "CEC2014 - f4(rosenbrock)", p.Name())

	p, err = New(20, 10, provider)
	require.NoError(t, err)
	assert.Equal(t, "CEC2014 - f20(hf04)", p.Name())

	p, err = New(29, 10, provider)
	require.NoError(t, err)
	assert.Equal(t, "CEC2014 - f29(cf07)", p.Name())
}

func BenchmarkFitness(b *testing.B) {
	provider := benchmark.SyntheticProvider{Seed: 1}
	for _, id := range []int{4, 17, 30} {
		p, err := New(id, 30, provider)
		if err != nil {
			b.Fatal(err)
		}
		x := make([]float64, 30)
		for i := range x {
			x[i] = float64(i) - 15
		}
		b.Run(p.Name(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				p.Fitness(x)
			}
		})
	}
}
