// Package benchmark implements the transform-and-compose evaluation
// pipeline behind the CEC single-objective benchmark suites: coordinate
// shift, rotation, nonlinear warps, hybrid partitioning and
// distance-weighted composition, together with the catalogue of base
// landscape shapes the suites draw from.
//
// Suite packages (cec2013, cec2014) describe each problem as a Spec of
// typed pipeline steps and sub-function descriptors; this package turns
// a Spec plus a table Provider into an immutable Problem that can be
// evaluated concurrently without external locking.
package benchmark

import (
	"gonum.org/v1/gonum/mat"
)

// StepKind enumerates the geometric transform steps a pipeline can
// chain in front of a base shape.
type StepKind int

const (
	// StepShift subtracts a stored origin vector.
	StepShift StepKind = iota
	// StepScale multiplies every coordinate by a constant.
	StepScale
	// StepRotate multiplies by a stored rotation matrix.
	StepRotate
	// StepOscillate applies the sign-preserving log-power warp.
	StepOscillate
	// StepAsymmetry applies the index-dependent power warp.
	StepAsymmetry
	// StepDiagonal applies the Λ^alpha ill-conditioning diagonal.
	StepDiagonal
	// StepRound rounds |x|>0.5 coordinates to the nearest 0.5.
	StepRound
)

// Step is one element of a transform pipeline. Index addresses a shift
// vector or rotation matrix in the problem's tables; Value carries the
// scalar parameter (scale factor, beta, alpha) where the kind needs one.
type Step struct {
	Kind  StepKind
	Index int
	Value float64
}

// ShiftStep subtracts shift vector i.
func ShiftStep(i int) Step { return Step{Kind: StepShift, Index: i} }

// ScaleStep multiplies by v.
func ScaleStep(v float64) Step { return Step{Kind: StepScale, Value: v} }

// RotateStep multiplies by rotation matrix i.
func RotateStep(i int) Step { return Step{Kind: StepRotate, Index: i} }

// OscillateStep applies the oscillation warp.
func OscillateStep() Step { return Step{Kind: StepOscillate} }

// AsymmetryStep applies the asymmetry warp with the given beta.
func AsymmetryStep(beta float64) Step { return Step{Kind: StepAsymmetry, Value: beta} }

// DiagonalStep applies the Λ^alpha diagonal.
func DiagonalStep(alpha float64) Step { return Step{Kind: StepDiagonal, Value: alpha} }

// RoundStep applies the non-continuous rounding step.
func RoundStep() Step { return Step{Kind: StepRound} }

/// SR builds the standard shift-rotate prefix: shift by vector
// shiftIdx, rotate by matrix matIdx when rotate is set, then scale.
// The order shift → rotate → scale is fixed.
func SR(shiftIdx int, scale float64, matIdx int, rotate bool) []Step {
	steps := []Step{ShiftStep(shiftIdx)}
	if rotate {
		steps = append(steps, RotateStep(matIdx))
	}
	if scale != 1 {
		steps = append(steps, ScaleStep(scale))
	}
	return steps
}

// Pipeline is a transform chain feeding one base shape.
type Pipeline struct {
	Steps []Step
	Shape Shape
}

// Group binds one base shape to a proportion of the dimension range
// inside a hybrid function. The shape's Rate is applied to the group's
// sub-vector before the formula.
type Group struct {
	Shape      Shape
	Proportion float64
}

// HybridSpec describes a hybrid function: one shared shift-rotate of
// the whole vector, a shuffle of the coordinates, then disjoint groups
// each evaluated under its own base shape.
type HybridSpec struct {
	ShiftIndex   int
	MatrixIndex  int
	Rotate       bool
	ShuffleBlock int
	Groups       []Group
}

// LunacekSpec describes the bi-Rastrigin landscape, which interleaves
// its rotations with the two-bowl selection and therefore cannot be
// expressed as a pipeline plus pure shape.
type LunacekSpec struct {
	ShiftIndex int
	Matrix1    int
	Matrix2    int
	Rotate     bool
	// Alpha is the ill-conditioning diagonal base (100 in the 2013
	// construction).
	Alpha float64
}

// SubFunction is one candidate landscape inside a composition.
// Exactly one of Pipeline or Hybrid is active; Hybrid is non-nil for
// the hybrid-composition problems.
type SubFunction struct {
	Pipeline Pipeline
	Hybrid   *HybridSpec
	// ShiftIndex selects the origin used for the distance weight.
	ShiftIndex int
	// Delta is the weight radius δ controlling the funnel width.
	Delta float64
	// Bias is the per-sub-function depth offset.
	Bias float64
	// Norm rescales the raw sub-function value to a comparable range.
	Norm float64
}

// Spec is a problem blueprint produced by a suite package. Exactly one
// of Plain, Lunacek, Hybrid, Composition must be set.
type Spec struct {
	Suite string
	ID    int
	Dim   int
	// Bias is the documented f* offset added to every evaluation.
	Bias float64
	Name string

	Plain       *Pipeline
	Lunacek     *LunacekSpec
	Hybrid      *HybridSpec
	Composition []SubFunction
}

type strategy int

const (
	evalPlain strategy = iota
	evalLunacek
	evalHybrid
	evalComposition
)

// hybridRT is a HybridSpec with the group partition resolved against a
// concrete dimension.
type hybridRT struct {
	shiftIdx   int
	matIdx     int
	rotate     bool
	shuffleOff int
	shapes     []Shape
	rates      []float64
	sizes      []int
}

// subRT is a SubFunction with typed indices resolved.
type subRT struct {
	pipe     Pipeline
	hybrid   *hybridRT
	shiftIdx int
	delta    float64
	bias     float64
	norm     float64
}

// Problem is an immutable benchmark instance. All tables are resolved
// and validated at construction; Fitness performs no per-call checks
// and is safe for concurrent use (scratch buffers come from an
// internal pool, never shared between calls).
type Problem struct {
	suite string
	id    int
	dim   int
	bias  float64
	name  string

	strat   strategy
	plain   Pipeline
	lunacek *LunacekSpec
	hybrid  *hybridRT
	comp    []subRT

	shifts  [][]float64
	mats    []*mat.Dense
	shuffle []int

	pool *scratchPool
}

// NewProblem resolves a Spec against the Provider's tables. It fails
// with an invalid-argument error when the Spec is malformed or the
// tables are inconsistent with (suite, id, dim); this is the only
// validation the problem ever performs.
func NewProblem(spec Spec, provider Provider) (*Problem, error) {
	const op = "NewProblem"

	n := spec.Dim
	if n < 1 {
		return nil, NewInvalidArgument("dimension must be positive, got %d", n).WithOperation(op)
	}
	if err := checkOneStrategy(spec); err != nil {
		return nil, err.WithOperation(op)
	}

	shifts, mats, blocks := tableCounts(spec)
	tables, err := provider.Tables(TableRequest{
		Suite:         spec.Suite,
		Func:          spec.ID,
		Dim:           n,
		Shifts:        shifts,
		Matrices:      mats,
		ShuffleBlocks: blocks,
	})
	if err != nil {
		return nil, WrapErrorf(err, "loading tables for %s f%d dim %d", spec.Suite, spec.ID, n).WithOperation(op)
	}

	p := &Problem{
		suite: spec.Suite,
		id:    spec.ID,
		dim:   n,
		bias:  spec.Bias,
		name:  spec.Name,
		pool:  newScratchPool(n),
	}

	if err := p.bindTables(tables, shifts, mats, blocks); err != nil {
		return nil, err.WithOperation(op)
	}

	switch {
	case spec.Plain != nil:
		p.strat = evalPlain
		p.plain = *spec.Plain
	case spec.Lunacek != nil:
		p.strat = evalLunacek
		p.lunacek = spec.Lunacek
	case spec.Hybrid != nil:
		p.strat = evalHybrid
		p.hybrid = resolveHybrid(spec.Hybrid, n)
	default:
		p.strat = evalComposition
		p.comp = make([]subRT, len(spec.Composition))
		for i, sub := range spec.Composition {
			rt := subRT{
				pipe:     sub.Pipeline,
				shiftIdx: sub.ShiftIndex,
				delta:    sub.Delta,
				bias:     sub.Bias,
				norm:     sub.Norm,
			}
			if sub.Hybrid != nil {
				rt.hybrid = resolveHybrid(sub.Hybrid, n)
			}
			p.comp[i] = rt
		}
	}

	return p, nil
}

func checkOneStrategy(spec Spec) *Error {
	count := 0
	if spec.Plain != nil {
		count++
	}
	if spec.Lunacek != nil {
		count++
	}
	if spec.Hybrid != nil {
		count++
	}
	if len(spec.Composition) > 0 {
		count++
	}
	if count != 1 {
		return NewInvalidArgument("spec for %s f%d must define exactly one evaluation strategy, got %d", spec.Suite, spec.ID, count)
	}
	if n := len(spec.Composition); n > maxSubFunctions {
		return NewInvalidArgument("spec for %s f%d composes %d sub-functions, at most %d supported", spec.Suite, spec.ID, n, maxSubFunctions)
	}
	return nil
}

// tableCounts walks a Spec once and returns how many shift vectors,
// rotation matrices and shuffle blocks the tables must contain. The
// indices become typed offsets; nothing recomputes them per evaluation.
func tableCounts(spec Spec) (shifts, mats, blocks int) {
	bumpShift := func(i int) {
		if i+1 > shifts {
			shifts = i + 1
		}
	}
	bumpMat := func(i int) {
		if i+1 > mats {
			mats = i + 1
		}
	}
	bumpBlock := func(i int) {
		if i+1 > blocks {
			blocks = i + 1
		}
	}
	walkPipe := func(pl Pipeline) {
		for _, st := range pl.Steps {
			switch st.Kind {
			case StepShift:
				bumpShift(st.Index)
			case StepRotate:
				bumpMat(st.Index)
			}
		}
	}
	walkHybrid := func(h *HybridSpec) {
		bumpShift(h.ShiftIndex)
		if h.Rotate {
			bumpMat(h.MatrixIndex)
		}
		bumpBlock(h.ShuffleBlock)
	}

	switch {
	case spec.Plain != nil:
		walkPipe(*spec.Plain)
	case spec.Lunacek != nil:
		bumpShift(spec.Lunacek.ShiftIndex)
		if spec.Lunacek.Rotate {
			bumpMat(spec.Lunacek.Matrix1)
			bumpMat(spec.Lunacek.Matrix2)
		}
	case spec.Hybrid != nil:
		walkHybrid(spec.Hybrid)
	default:
		for _, sub := range spec.Composition {
			bumpShift(sub.ShiftIndex)
			if sub.Hybrid != nil {
				walkHybrid(sub.Hybrid)
			} else {
				walkPipe(sub.Pipeline)
			}
		}
	}
	return shifts, mats, blocks
}

// bindTables validates table sizes against the computed requirements
// and builds the typed views (shift rows, matrix views, shuffle).
func (p *Problem) bindTables(t *Tables, shifts, mats, blocks int) *Error {
	n := p.dim

	if len(t.Shift) < shifts*n {
		return NewInvalidArgument("shift table has %d values, need %d", len(t.Shift), shifts*n)
	}
	p.shifts = make([][]float64, shifts)
	for i := 0; i < shifts; i++ {
		p.shifts[i] = t.Shift[i*n : (i+1)*n]
	}

	if len(t.Rotation) < mats*n*n {
		return NewInvalidArgument("rotation table has %d values, need %d", len(t.Rotation), mats*n*n)
	}
	p.mats = make([]*mat.Dense, mats)
	for i := 0; i < mats; i++ {
		p.mats[i] = mat.NewDense(n, n, t.Rotation[i*n*n:(i+1)*n*n])
	}

	if len(t.Shuffle) < blocks*n {
		return NewInvalidArgument("shuffle table has %d values, need %d", len(t.Shuffle), blocks*n)
	}
	p.shuffle = t.Shuffle[:blocks*n]
	for b := 0; b < blocks; b++ {
		if err := checkPermutation(p.shuffle[b*n : (b+1)*n]); err != nil {
			return WrapErrorf(err, "shuffle block %d", b)
		}
	}
	return nil
}

func checkPermutation(s []int) *Error {
	seen := make([]bool, len(s))
	for _, v := range s {
		if v < 0 || v >= len(s) || seen[v] {
			return NewInvalidArgument("not a permutation of 0..%d", len(s)-1)
		}
		seen[v] = true
	}
	return nil
}

// resolveHybrid derives the group partition for dimension n:
// floor(p_i·n) for every group but the last, which absorbs the
// remainder so the sizes always sum to exactly n.
func resolveHybrid(h *HybridSpec, n int) *hybridRT {
	k := len(h.Groups)
	rt := &hybridRT{
		shiftIdx:   h.ShiftIndex,
		matIdx:     h.MatrixIndex,
		rotate:     h.Rotate,
		shuffleOff: h.ShuffleBlock * n,
		shapes:     make([]Shape, k),
		rates:      make([]float64, k),
		sizes:      make([]int, k),
	}
	used := 0
	for i, g := range h.Groups {
		rt.shapes[i] = g.Shape
		rt.rates[i] = g.Shape.Rate()
		if i < k-1 {
			rt.sizes[i] = int(g.Proportion * float64(n))
			used += rt.sizes[i]
		}
	}
	rt.sizes[k-1] = n - used
	return rt
}

// Suite returns the suite tag ("cec2013" or "cec2014").
func (p *Problem) Suite() string { return p.suite }

// ID returns the problem id within its suite.
func (p *Problem) ID() int { return p.id }

// Dimension returns n.
func (p *Problem) Dimension() int { return p.dim }

// Name returns the human-readable problem name.
func (p *Problem) Name() string { return p.name }

// Bias returns the documented f* offset of the problem.
func (p *Problem) Bias() float64 { return p.bias }

// Bounds returns the box constraints, [-100, 100] per coordinate for
// every problem in both suites.
func (p *Problem) Bounds() (lo, hi []float64) {
	lo = make([]float64, p.dim)
	hi = make([]float64, p.dim)
	for i := range lo {
		lo[i] = -100
		hi[i] = 100
	}
	return lo, hi
}

// Partition returns a copy of the hybrid group sizes, or nil for
// non-hybrid problems.
func (p *Problem) Partition() []int {
	if p.hybrid == nil {
		return nil
	}
	out := make([]int, len(p.hybrid.sizes))
	copy(out, p.hybrid.sizes)
	return out
}
