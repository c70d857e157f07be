package benchmark

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// maxSubFunctions bounds the descriptor count of a composition; both
// suites use at most five.
const maxSubFunctions = 8

// runComposition blends the sub-function landscapes by distance-based
// weights:
//
//	w_i = exp(-d_i² / (2·n·δ_i²)),  d_i = ‖x - shift_i‖₂
//
// An exact hit on a sub-optimum (d_i == 0) short-circuits to that
// sub-function alone — the intentional "needle" discontinuity of the
// benchmark. When every weight underflows to zero the blend degrades
// to the uniform average. Otherwise weights are normalized to sum 1.
func (p *Problem) runComposition(x []float64, s *scratch) float64 {
	n := float64(p.dim)

	var w, fit [maxSubFunctions]float64
	exact := -1
	var wSum float64
	for i := range p.comp {
		sub := &p.comp[i]
		d := floats.Distance(x, p.shifts[sub.shiftIdx], 2)
		if d == 0 {
			if exact < 0 {
				exact = i
			}
			w[i] = math.Inf(1)
		} else {
			w[i] = math.Exp(-d * d / (2 * n * sub.delta * sub.delta))
			wSum += w[i]
		}

		if sub.hybrid != nil {
			fit[i] = p.runHybrid(sub.hybrid, x, s)
		} else {
			fit[i] = p.runPipeline(sub.pipe, x, s)
		}
		fit[i] = sub.norm*fit[i] + sub.bias
	}

	switch {
	case exact >= 0:
		for i := range p.comp {
			w[i] = 0
		}
		w[exact] = 1
	case wSum == 0:
		uniform := 1.0 / float64(len(p.comp))
		for i := range p.comp {
			w[i] = uniform
		}
	default:
		for i := range p.comp {
			w[i] /= wSum
		}
	}

	var f float64
	for i := range p.comp {
		f += w[i] * fit[i]
	}
	return f
}
