// Package cec2013 describes the 28 problems of the CEC 2013 special
// session on real-parameter optimization as benchmark Specs: transform
// pipelines for f1-f20, the bi-Rastrigin landscape for f17/f18 and
// distance-weighted compositions for f21-f28.
package cec2013

import (
	"fmt"

	"github.com/copyleftdev/GAUNTLET/internal/benchmark"
)

// ProblemCount is the number of problems in the suite.
const ProblemCount = 28

// Dimensions lists the dimensions the suite's data bundle covers.
func Dimensions() []int {
	return []int{2, 5, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
}

// Bias returns the documented f* offset of problem id: -1400 through
// -100 for f1-f14, then 100 through 1400 for f15-f28.
func Bias(id int) float64 {
	if id <= 14 {
		return float64(-1400 + 100*(id-1))
	}
	return float64(100 * (id - 14))
}

// New builds problem id at dimension dim, resolving its tables through
// the provider. It fails with an invalid-argument error when id or dim
// falls outside the suite.
func New(id, dim int, provider benchmark.Provider) (*benchmark.Problem, error) {
	const op = "cec2013.New"

	if id < 1 || id > ProblemCount {
		return nil, benchmark.NewInvalidArgument("problem id must be in [1, %d], got %d", ProblemCount, id).WithOperation(op)
	}
	if !validDim(dim) {
		return nil, benchmark.NewInvalidArgument("dimension %d is not in the suite set %v", dim, Dimensions()).WithOperation(op)
	}

	spec := specs[id-1](dim)
	spec.Suite = "cec2013"
	spec.ID = id
	spec.Dim = dim
	spec.Bias = Bias(id)
	spec.Name = fmt.Sprintf("CEC2013 - f%d(%s)", id, names[id-1])

	p, err := benchmark.NewProblem(spec, provider)
	if err != nil {
		return nil, benchmark.WrapErrorf(err, "building f%d dim %d", id, dim).WithOperation(op)
	}
	return p, nil
}

func validDim(dim int) bool {
	for _, d := range Dimensions() {
		if d == dim {
			return true
		}
	}
	return false
}

var names = [ProblemCount]string{
	"sphere", "ellipsoidal", "bent_cigar", "discus", "dif_powers",
	"rosenbrock", "schaffer_F7", "ackley", "weierstrass", "griewank",
	"rastrigin", "rot_rastrigin", "step_rastrigin", "schwefel", "rot_schwefel",
	"katsuura", "lunacek_bi_rastrigin", "rot_lunacek_bi_rastrigin",
	"grie_rosen", "escaffer6",
	"cf01", "cf02", "cf03", "cf04", "cf05", "cf06", "cf07", "cf08",
}

// specBuilder produces the strategy part of a Spec; the suite fields
// (id, bias, name) are stamped on afterwards.
type specBuilder func(dim int) benchmark.Spec

func plain(shape benchmark.Shape, steps ...benchmark.Step) benchmark.Spec {
	return benchmark.Spec{Plain: &benchmark.Pipeline{Steps: steps, Shape: shape}}
}

// chain appends tail steps to the standard shift-rotate prefix.
func chain(prefix []benchmark.Step, tail ...benchmark.Step) []benchmark.Step {
	return append(prefix, tail...)
}

// The f1-f20 pipelines follow the 2013 definitions: every problem uses
// shift vector 0, and the double-rotation chains use matrices 0 and 1
// of the shared matrix table.
var specs = [ProblemCount]specBuilder{
	// f1: shifted sphere.
	func(int) benchmark.Spec {
		return plain(benchmark.Sphere, benchmark.SR(0, 1, 0, false)...)
	},
	// f2: rotated ellipsoidal with oscillation.
	func(int) benchmark.Spec {
		return plain(benchmark.Ellipsoidal,
			chain(benchmark.SR(0, 1, 0, true), benchmark.OscillateStep())...)
	},
	// f3: rotated bent cigar, asymmetry between the two rotations.
	func(int) benchmark.Spec {
		return plain(benchmark.BentCigar,
			chain(benchmark.SR(0, 1, 0, true),
				benchmark.AsymmetryStep(0.5),
				benchmark.RotateStep(1))...)
	},
	// f4: rotated discus with oscillation.
	func(int) benchmark.Spec {
		return plain(benchmark.Discus,
			chain(benchmark.SR(0, 1, 0, true), benchmark.OscillateStep())...)
	},
	// f5: shifted sum of different powers.
	func(int) benchmark.Spec {
		return plain(benchmark.DifferentPowers, benchmark.SR(0, 1, 0, false)...)
	},
	// f6: rotated Rosenbrock.
	func(int) benchmark.Spec {
		return plain(benchmark.Rosenbrock,
			benchmark.SR(0, benchmark.Rosenbrock.Rate(), 0, true)...)
	},
	// f7: rotated Schaffer F7.
	func(int) benchmark.Spec {
		return plain(benchmark.SchafferF7, schafferChain(0, 0, 1)...)
	},
	// f8: rotated Ackley, same chain as f7.
	func(int) benchmark.Spec {
		return plain(benchmark.Ackley, schafferChain(0, 0, 1)...)
	},
	// f9: rotated Weierstrass.
	func(int) benchmark.Spec {
		return plain(benchmark.Weierstrass, weierstrassChain(0, 0, 1)...)
	},
	// f10: rotated Griewank.
	func(int) benchmark.Spec {
		return plain(benchmark.Griewank, griewankChain(0, 0, true)...)
	},
	// f11: Rastrigin without rotation.
	func(int) benchmark.Spec {
		return plain(benchmark.Rastrigin, rastriginChain(0, 0, 1, false, false)...)
	},
	// f12: rotated Rastrigin.
	func(int) benchmark.Spec {
		return plain(benchmark.Rastrigin, rastriginChain(0, 0, 1, true, false)...)
	},
	// f13: non-continuous rotated Rastrigin, rounding after the prefix.
	func(int) benchmark.Spec {
		return plain(benchmark.Rastrigin, rastriginChain(0, 0, 1, true, true)...)
	},
	// f14: Schwefel without rotation.
	func(int) benchmark.Spec {
		return plain(benchmark.Schwefel, schwefelChain(0, 0, false)...)
	},
	// f15: rotated Schwefel.
	func(int) benchmark.Spec {
		return plain(benchmark.Schwefel, schwefelChain(0, 0, true)...)
	},
	// f16: rotated Katsuura.
	func(int) benchmark.Spec {
		return plain(benchmark.Katsuura,
			chain(benchmark.SR(0, benchmark.Katsuura.Rate(), 0, true),
				benchmark.DiagonalStep(100),
				benchmark.RotateStep(1))...)
	},
	// f17: Lunacek bi-Rastrigin without rotation.
	func(int) benchmark.Spec {
		return benchmark.Spec{Lunacek: &benchmark.LunacekSpec{Alpha: 100}}
	},
	// f18: rotated Lunacek bi-Rastrigin.
	func(int) benchmark.Spec {
		return benchmark.Spec{Lunacek: &benchmark.LunacekSpec{
			Matrix1: 0, Matrix2: 1, Rotate: true, Alpha: 100,
		}}
	},
	// f19: rotated expanded Griewank plus Rosenbrock.
	func(int) benchmark.Spec {
		return plain(benchmark.GriewankRosenbrock,
			benchmark.SR(0, benchmark.GriewankRosenbrock.Rate(), 0, true)...)
	},
	// f20: rotated expanded Schaffer F6.
	func(int) benchmark.Spec {
		return plain(benchmark.ExpandedSchafferF6, escafferChain(0, 0, 1)...)
	},
	cf01, cf02, cf03, cf04, cf05, cf06, cf07, cf08,
}

// schafferChain is the shared f7/f8 transform chain, also reused by
// the cf08 Schaffer F7 sub-function with shifted table slots.
func schafferChain(shift, m1, m2 int) []benchmark.Step {
	return chain(benchmark.SR(shift, 1, m1, true),
		benchmark.AsymmetryStep(0.5),
		benchmark.DiagonalStep(10),
		benchmark.RotateStep(m2))
}

func weierstrassChain(shift, m1, m2 int) []benchmark.Step {
	return chain(benchmark.SR(shift, benchmark.Weierstrass.Rate(), m1, true),
		benchmark.AsymmetryStep(0.5),
		benchmark.DiagonalStep(10),
		benchmark.RotateStep(m2))
}

func griewankChain(shift, m int, rotate bool) []benchmark.Step {
	return chain(benchmark.SR(shift, benchmark.Griewank.Rate(), m, rotate),
		benchmark.DiagonalStep(100))
}

// rastriginChain is the long f11-f13 warp stack. The rounding step of
// the non-continuous variant sits directly after the prefix; the second
// rotation slot m2 feeds the mid-chain rotation and the prefix matrix
// closes the chain.
func rastriginChain(shift, m1, m2 int, rotate, round bool) []benchmark.Step {
	steps := benchmark.SR(shift, benchmark.Rastrigin.Rate(), m1, rotate)
	if round {
		steps = append(steps, benchmark.RoundStep())
	}
	steps = append(steps,
		benchmark.OscillateStep(),
		benchmark.AsymmetryStep(0.2))
	if rotate {
		steps = append(steps, benchmark.RotateStep(m2))
	}
	steps = append(steps, benchmark.DiagonalStep(10))
	if rotate {
		steps = append(steps, benchmark.RotateStep(m1))
	}
	return steps
}

func schwefelChain(shift, m int, rotate bool) []benchmark.Step {
	return chain(benchmark.SR(shift, benchmark.Schwefel.Rate(), m, rotate),
		benchmark.DiagonalStep(10))
}

func escafferChain(shift, m1, m2 int) []benchmark.Step {
	return chain(benchmark.SR(shift, 1, m1, true),
		benchmark.AsymmetryStep(0.5),
		benchmark.RotateStep(m2))
}

// sub builds one composition descriptor. Sub-function i owns shift
// vector i; its rotation slots are passed in by the caller because the
// double-rotation chains spill into the neighbouring matrix slot.
func sub(pipe benchmark.Pipeline, shift int, delta, bias, norm float64) benchmark.SubFunction {
	return benchmark.SubFunction{
		Pipeline:   pipe,
		ShiftIndex: shift,
		Delta:      delta,
		Bias:       bias,
		Norm:       norm,
	}
}

func pipe(shape benchmark.Shape, steps []benchmark.Step) benchmark.Pipeline {
	return benchmark.Pipeline{Steps: steps, Shape: shape}
}

// cf01: five dissimilar unimodal-leaning landscapes with widening
// funnels. The raw values span thirty orders of magnitude, hence the
// aggressive normalization constants.
func cf01(int) benchmark.Spec {
	return benchmark.Spec{Composition: []benchmark.SubFunction{
		sub(pipe(benchmark.Rosenbrock, benchmark.SR(0, benchmark.Rosenbrock.Rate(), 0, true)), 0, 10, 0, 10000.0/1e4),
		sub(pipe(benchmark.DifferentPowers, benchmark.SR(1, 1, 1, true)), 1, 20, 100, 10000.0/1e10),
		sub(pipe(benchmark.BentCigar, chain(benchmark.SR(2, 1, 2, true),
			benchmark.AsymmetryStep(0.5), benchmark.RotateStep(3))), 2, 30, 200, 10000.0/1e30),
		sub(pipe(benchmark.Discus, chain(benchmark.SR(3, 1, 3, true),
			benchmark.OscillateStep())), 3, 40, 300, 10000.0/1e10),
		sub(pipe(benchmark.Sphere, benchmark.SR(4, 1, 0, false)), 4, 50, 400, 10000.0/1e5),
	}}
}

// cf02: three unrotated Schwefel basins.
func cf02(int) benchmark.Spec {
	return benchmark.Spec{Composition: []benchmark.SubFunction{
		sub(pipe(benchmark.Schwefel, schwefelChain(0, 0, false)), 0, 20, 0, 1),
		sub(pipe(benchmark.Schwefel, schwefelChain(1, 1, false)), 1, 20, 100, 1),
		sub(pipe(benchmark.Schwefel, schwefelChain(2, 2, false)), 2, 20, 200, 1),
	}}
}

// cf03: the rotated twin of cf02.
func cf03(int) benchmark.Spec {
	return benchmark.Spec{Composition: []benchmark.SubFunction{
		sub(pipe(benchmark.Schwefel, schwefelChain(0, 0, true)), 0, 20, 0, 1),
		sub(pipe(benchmark.Schwefel, schwefelChain(1, 1, true)), 1, 20, 100, 1),
		sub(pipe(benchmark.Schwefel, schwefelChain(2, 2, true)), 2, 20, 200, 1),
	}}
}

func cf04(int) benchmark.Spec {
	return benchmark.Spec{Composition: []benchmark.SubFunction{
		sub(pipe(benchmark.Schwefel, schwefelChain(0, 0, true)), 0, 20, 0, 1000.0/4e3),
		sub(pipe(benchmark.Rastrigin, rastriginChain(1, 1, 2, true, false)), 1, 30, 100, 1000.0/1e3),
		sub(pipe(benchmark.Weierstrass, weierstrassChain(2, 2, 3)), 2, 40, 200, 1000.0/400),
	}}
}

// cf05: cf04 with a different funnel-width profile.
func cf05(int) benchmark.Spec {
	return benchmark.Spec{Composition: []benchmark.SubFunction{
		sub(pipe(benchmark.Schwefel, schwefelChain(0, 0, true)), 0, 10, 0, 1000.0/4e3),
		sub(pipe(benchmark.Rastrigin, rastriginChain(1, 1, 2, true, false)), 1, 30, 100, 1000.0/1e3),
		sub(pipe(benchmark.Weierstrass, weierstrassChain(2, 2, 3)), 2, 50, 200, 1000.0/400),
	}}
}

func cf06(int) benchmark.Spec {
	return benchmark.Spec{Composition: []benchmark.SubFunction{
		sub(pipe(benchmark.Schwefel, schwefelChain(0, 0, true)), 0, 10, 0, 1000.0/4e3),
		sub(pipe(benchmark.Rastrigin, rastriginChain(1, 1, 2, true, false)), 1, 10, 100, 1000.0/1e3),
		sub(pipe(benchmark.Ellipsoidal, chain(benchmark.SR(2, 1, 2, true),
			benchmark.OscillateStep())), 2, 10, 200, 1000.0/1e10),
		sub(pipe(benchmark.Weierstrass, weierstrassChain(3, 3, 4)), 3, 10, 300, 1000.0/400),
		sub(pipe(benchmark.Griewank, griewankChain(4, 4, true)), 4, 10, 400, 1000.0/100),
	}}
}

func cf07(int) benchmark.Spec {
	return benchmark.Spec{Composition: []benchmark.SubFunction{
		sub(pipe(benchmark.Griewank, griewankChain(0, 0, true)), 0, 10, 0, 10000.0/100),
		sub(pipe(benchmark.Rastrigin, rastriginChain(1, 1, 2, true, false)), 1, 10, 100, 10000.0/1e3),
		sub(pipe(benchmark.Schwefel, schwefelChain(2, 2, true)), 2, 10, 200, 10000.0/4e3),
		sub(pipe(benchmark.Weierstrass, weierstrassChain(3, 3, 4)), 3, 20, 300, 10000.0/400),
		sub(pipe(benchmark.Sphere, benchmark.SR(4, 1, 0, false)), 4, 20, 400, 10000.0/1e5),
	}}
}

func cf08(int) benchmark.Spec {
	return benchmark.Spec{Composition: []benchmark.SubFunction{
		sub(pipe(benchmark.GriewankRosenbrock, benchmark.SR(0, benchmark.GriewankRosenbrock.Rate(), 0, true)), 0, 10, 0, 10000.0/4e3),
		sub(pipe(benchmark.SchafferF7, schafferChain(1, 1, 2)), 1, 20, 100, 10000.0/4e6),
		sub(pipe(benchmark.Schwefel, schwefelChain(2, 2, true)), 2, 30, 200, 10000.0/4e3),
		sub(pipe(benchmark.ExpandedSchafferF6, escafferChain(3, 3, 4)), 3, 40, 300, 10000.0/2e7),
		sub(pipe(benchmark.Sphere, benchmark.SR(4, 1, 0, false)), 4, 50, 400, 10000.0/1e5),
	}}
}
