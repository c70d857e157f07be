// Package cec2014 describes the 30 problems of the CEC 2014 special
// session on real-parameter optimization as benchmark Specs. The 2014
// construction is simpler than 2013's: every base problem is a single
// shift-rotate prefix in front of its shape, with the landscape
// difficulty moved into hybrid partitioning (f17-f22) and composition
// (f23-f30, the last two composing hybrids).
package cec2014

import (
	"fmt"

	"github.com/copyleftdev/GAUNTLET/internal/benchmark"
)

// ProblemCount is the number of problems in the suite.
const ProblemCount = 30

// Dimensions lists the dimensions the suite's data bundle covers.
func Dimensions() []int {
	return []int{2, 10, 20, 30, 50, 100}
}

// Bias returns the documented f* offset of problem id, 100·id.
func Bias(id int) float64 { return float64(100 * id) }

// New builds problem id at dimension dim, resolving its tables through
// the provider. The bundle ships no shuffle data at dimension 2, so the
// hybrid problems (f17-f22) and hybrid compositions (f29, f30) reject
// dim 2.
func New(id, dim int, provider benchmark.Provider) (*benchmark.Problem, error) {
	const op = "cec2014.New"

	if id < 1 || id > ProblemCount {
		return nil, benchmark.NewInvalidArgument("problem id must be in [1, %d], got %d", ProblemCount, id).WithOperation(op)
	}
	if !validDim(dim) {
		return nil, benchmark.NewInvalidArgument("dimension %d is not in the suite set %v", dim, Dimensions()).WithOperation(op)
	}
	if dim == 2 && usesShuffle(id) {
		return nil, benchmark.NewInvalidArgument("f%d needs shuffle data, which the suite does not define at dimension 2", id).WithOperation(op)
	}

	spec := specs[id-1]()
	spec.Suite = "cec2014"
	spec.ID = id
	spec.Dim = dim
	spec.Bias = Bias(id)
	spec.Name = fmt.Sprintf("CEC2014 - f%d(%s)", id, names[id-1])

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

func usesShuffle(id int) bool {
	return (id >= 17 && id <= 22) || id == 29 || id == 30
}

var names = [ProblemCount]string{
	"ellipsoidal", "bent_cigar", "discus", "rosenbrock", "ackley",
	"weierstrass", "griewank", "rastrigin", "rot_rastrigin", "schwefel",
	"rot_schwefel", "katsuura", "happycat", "hgbat", "grie_rosen", "escaffer6",
	"hf01", "hf02", "hf03", "hf04", "hf05", "hf06",
	"cf01", "cf02", "cf03", "cf04", "cf05", "cf06", "cf07", "cf08",
}

type specBuilder func() benchmark.Spec

// base is a single shift-rotate prefix in front of one shape, the
// construction shared by f1-f16. The shape's own rate supplies the
// scale factor.
func base(shape benchmark.Shape, rotate bool) specBuilder {
	return func() benchmark.Spec {
		return benchmark.Spec{Plain: &benchmark.Pipeline{
			Steps: benchmark.SR(0, shape.Rate(), 0, rotate),
			Shape: shape,
		}}
	}
}

func hybrid(groups ...benchmark.Group) *benchmark.HybridSpec {
	return &benchmark.HybridSpec{Rotate: true, Groups: groups}
}

func g(shape benchmark.Shape, prop float64) benchmark.Group {
	return benchmark.Group{Shape: shape, Proportion: prop}
}

// The six hybrid partitions. f29 and f30 re-use them as composition
// sub-functions with their own table slots.
func hf01() *benchmark.HybridSpec {
	return hybrid(g(benchmark.Schwefel, 0.3), g(benchmark.Rastrigin, 0.3), g(benchmark.Ellipsoidal, 0.4))
}

func hf02() *benchmark.HybridSpec {
	return hybrid(g(benchmark.BentCigar, 0.3), g(benchmark.HGBat, 0.3), g(benchmark.Rastrigin, 0.4))
}

func hf03() *benchmark.HybridSpec {
	return hybrid(g(benchmark.Griewank, 0.2), g(benchmark.Weierstrass, 0.2),
		g(benchmark.Rosenbrock, 0.3), g(benchmark.ExpandedSchafferF6, 0.3))
}

func hf04() *benchmark.HybridSpec {
	return hybrid(g(benchmark.HGBat, 0.2), g(benchmark.Discus, 0.2),
		g(benchmark.GriewankRosenbrock, 0.3), g(benchmark.Rastrigin, 0.3))
}

func hf05() *benchmark.HybridSpec {
	return hybrid(g(benchmark.ExpandedSchafferF6, 0.1), g(benchmark.HGBat, 0.2),
		g(benchmark.Rosenbrock, 0.2), g(benchmark.Schwefel, 0.2), g(benchmark.Ellipsoidal, 0.3))
}

func hf06() *benchmark.HybridSpec {
	return hybrid(g(benchmark.Katsuura, 0.1), g(benchmark.HappyCat, 0.2),
		g(benchmark.GriewankRosenbrock, 0.2), g(benchmark.Schwefel, 0.2), g(benchmark.Ackley, 0.3))
}

func hybridSpec(h func() *benchmark.HybridSpec) specBuilder {
	return func() benchmark.Spec { return benchmark.Spec{Hybrid: h()} }
}

var specs = [ProblemCount]specBuilder{
	base(benchmark.Ellipsoidal, true),        // f1
	base(benchmark.BentCigar, true),          // f2
	base(benchmark.Discus, true),             // f3
	base(benchmark.Rosenbrock, true),         // f4
	base(benchmark.Ackley, true),             // f5
	base(benchmark.Weierstrass, true),        // f6
	base(benchmark.Griewank, true),           // f7
	base(benchmark.Rastrigin, false),         // f8
	base(benchmark.Rastrigin, true),          // f9
	base(benchmark.Schwefel, false),          // f10
	base(benchmark.Schwefel, true),           // f11
	base(benchmark.Katsuura, true),           // f12
	base(benchmark.HappyCat, true),           // f13
	base(benchmark.HGBat, true),              // f14
	base(benchmark.GriewankRosenbrock, true), // f15
	base(benchmark.ExpandedSchafferF6, true), // f16
	hybridSpec(hf01),                         // f17
	hybridSpec(hf02),                         // f18
	hybridSpec(hf03),                         // f19
	hybridSpec(hf04),                         // f20
	hybridSpec(hf05),                         // f21
	hybridSpec(hf06),                         // f22
	cf01, cf02, cf03, cf04, cf05, cf06, cf07, cf08,
}

// sub builds one pipeline-backed composition descriptor. Sub-function i
// owns shift vector i and matrix i; the 2014 chains never spill into a
// second rotation slot.
func sub(shape benchmark.Shape, i int, rotate bool, delta, bias, norm float64) benchmark.SubFunction {
	return benchmark.SubFunction{
		Pipeline: benchmark.Pipeline{
			Steps: benchmark.SR(i, shape.Rate(), i, rotate),
			Shape: shape,
		},
		ShiftIndex: i,
		Delta:      delta,
		Bias:       bias,
		Norm:       norm,
	}
}

// hsub builds one hybrid-backed composition descriptor for cf07/cf08,
// binding the hybrid to slot i's shift, matrix and shuffle block.
func hsub(h *benchmark.HybridSpec, i int, delta, bias float64) benchmark.SubFunction {
	h.ShiftIndex = i
	h.MatrixIndex = i
	h.ShuffleBlock = i
	return benchmark.SubFunction{
		Hybrid:     h,
		ShiftIndex: i,
		Delta:      delta,
		Bias:       bias,
		Norm:       1,
	}
}

func cf01() benchmark.Spec {
	return benchmark.Spec{Composition: []benchmark.SubFunction{
		sub(benchmark.Rosenbrock, 0, true, 10, 0, 10000.0/1e4),
		sub(benchmark.Ellipsoidal, 1, true, 20, 100, 10000.0/1e10),
		sub(benchmark.BentCigar, 2, true, 30, 200, 10000.0/1e30),
		sub(benchmark.Discus, 3, true, 40, 300, 10000.0/1e10),
		sub(benchmark.Ellipsoidal, 4, false, 50, 400, 10000.0/1e10),
	}}
}

// cf02 blends its raw sub-function values without normalization.
func cf02() benchmark.Spec {
	return benchmark.Spec{Composition: []benchmark.SubFunction{
		sub(benchmark.Schwefel, 0, false, 20, 0, 1),
		sub(benchmark.Rastrigin, 1, true, 20, 100, 1),
		sub(benchmark.HGBat, 2, true, 20, 200, 1),
	}}
}

func cf03() benchmark.Spec {
	return benchmark.Spec{Composition: []benchmark.SubFunction{
		sub(benchmark.Schwefel, 0, true, 10, 0, 1000.0/4e3),
		sub(benchmark.Rastrigin, 1, true, 30, 100, 1000.0/1e3),
		sub(benchmark.Ellipsoidal, 2, true, 50, 200, 1000.0/1e10),
	}}
}

func cf04() benchmark.Spec {
	return benchmark.Spec{Composition: []benchmark.SubFunction{
		sub(benchmark.Schwefel, 0, true, 10, 0, 1000.0/4e3),
		sub(benchmark.HappyCat, 1, true, 10, 100, 1000.0/1e3),
		sub(benchmark.Ellipsoidal, 2, true, 10, 200, 1000.0/1e10),
		sub(benchmark.Weierstrass, 3, true, 10, 300, 1000.0/400),
		sub(benchmark.Griewank, 4, true, 10, 400, 1000.0/100),
	}}
}

func cf05() benchmark.Spec {
	return benchmark.Spec{Composition: []benchmark.SubFunction{
		sub(benchmark.HGBat, 0, true, 10, 0, 10000.0/1000),
		sub(benchmark.Rastrigin, 1, true, 10, 100, 10000.0/1e3),
		sub(benchmark.Schwefel, 2, true, 10, 200, 10000.0/4e3),
		sub(benchmark.Weierstrass, 3, true, 20, 300, 10000.0/400),
		sub(benchmark.ExpandedSchafferF6, 4, true, 20, 400, 10000.0/2e7),
	}}
}

func cf06() benchmark.Spec {
	return benchmark.Spec{Composition: []benchmark.SubFunction{
		sub(benchmark.ExpandedSchafferF6, 0, true, 10, 0, 10000.0/2e7),
		sub(benchmark.HappyCat, 1, true, 20, 100, 10000.0/1e3),
		sub(benchmark.GriewankRosenbrock, 2, true, 30, 200, 10000.0/4e3),
		sub(benchmark.Schwefel, 3, true, 40, 300, 10000.0/4e3),
		sub(benchmark.Ackley, 4, true, 50, 400, 10000.0/1e5),
	}}
}

// cf07 and cf08 compose hybrids: three funnels whose interiors are
// themselves partitioned landscapes.
func cf07() benchmark.Spec {
	return benchmark.Spec{Composition: []benchmark.SubFunction{
		hsub(hf01(), 0, 10, 0),
		hsub(hf02(), 1, 30, 100),
		hsub(hf03(), 2, 50, 200),
	}}
}

func cf08() benchmark.Spec {
	return benchmark.Spec{Composition: []benchmark.SubFunction{
		hsub(hf04(), 0, 10, 0),
		hsub(hf05(), 1, 30, 100),
		hsub(hf06(), 2, 50, 200),
	}}
}
