package benchmark

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Fitness evaluates the problem at x and returns the scalar value,
// including the problem's f* bias. len(x) must equal Dimension(); this
// is a documented precondition, not a runtime-checked error.
//
// Evaluation is deterministic and safe for concurrent use.
func (p *Problem) Fitness(x []float64) float64 {
	s := p.pool.get()
	defer p.pool.put(s)

	var f float64
	switch p.strat {
	case evalPlain:
		f = p.runPipeline(p.plain, x, s)
	case evalLunacek:
		f = p.runLunacek(x, s)
	case evalHybrid:
		f = p.runHybrid(p.hybrid, x, s)
	case evalComposition:
		f = p.runComposition(x, s)
	}
	return f + p.bias
}

// runPipeline executes the transform chain into the scratch buffers and
// applies the base shape. Rotation steps ping-pong between the two
// buffers; every other step works in place.
func (p *Problem) runPipeline(pl Pipeline, x []float64, s *scratch) float64 {
	cur, other := s.a, s.b
	copy(cur, x)
	for _, st := range pl.Steps {
		switch st.Kind {
		case StepShift:
			Shift(cur, cur, p.shifts[st.Index])
		case StepScale:
			for i := range cur {
				cur[i] *= st.Value
			}
		case StepRotate:
			Rotate(other, cur, p.mats[st.Index])
			cur, other = other, cur
		case StepOscillate:
			Oscillation(cur, cur)
		case StepAsymmetry:
			Asymmetry(cur, cur, st.Value)
		case StepDiagonal:
			diagonalScale(cur, st.Value)
		case StepRound:
			roundHalf(cur)
		}
	}
	return pl.Shape.Func()(cur)
}

func (p *Problem) matrix(i int, rotate bool) mat.Matrix {
	if !rotate {
		return nil
	}
	return p.mats[i]
}

// runLunacek evaluates the Lunacek bi-Rastrigin landscape: two
// quadratic bowls of different depth selected by the smaller value,
// plus a Rastrigin-style cosine penalty on the rotated coordinates.
// The bowl coordinates depend on the signs of the stored origin, so the
// rotations interleave with the evaluation instead of forming a prefix.
func (p *Problem) runLunacek(x []float64, s *scratch) float64 {
	spec := p.lunacek
	origin := p.shifts[spec.ShiftIndex]
	n := p.dim
	nf := float64(n)

	const mu0, d = 2.5, 1.0
	sFac := 1.0 - 1.0/(2.0*math.Sqrt(nf+20.0)-8.2)
	mu1 := -math.Sqrt((mu0*mu0 - d) / sFac)

	y, z, hat := s.a, s.b, s.c
	Shift(y, x, origin)
	for i := range y {
		y[i] *= 10.0 / 100.0
	}
	// x̂ folds every coordinate onto the positive-origin orientation.
	for i := range hat {
		hat[i] = 2 * y[i]
		if origin[i] < 0 {
			hat[i] = -hat[i]
		}
	}
	for i := range z {
		z[i] = hat[i]
		hat[i] += mu0
	}

	var sum1, sum2 float64
	for i := range hat {
		t := hat[i] - mu0
		sum1 += t * t
		t = hat[i] - mu1
		sum2 += t * t
	}
	sum2 = sFac*sum2 + d*nf

	if spec.Rotate {
		Rotate(y, z, p.mats[spec.Matrix1])
	} else {
		copy(y, z)
	}
	diagonalScale(y, spec.Alpha)
	if spec.Rotate {
		Rotate(z, y, p.mats[spec.Matrix2])
	} else {
		copy(z, y)
	}

	var cosSum float64
	for _, v := range z {
		cosSum += math.Cos(2 * math.Pi * v)
	}

	f := math.Min(sum1, sum2)
	return f + 10*(nf-cosSum)
}
