package benchmark

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Transform primitives shared by every landscape. All of them operate
// on fixed-length vectors and write into dst; dst may alias x for the
// per-coordinate transforms. Lengths are a caller contract and are not
// rechecked here: the tables are validated once at construction.

// Shift subtracts the origin vector from x, relocating the optimum.
func Shift(dst, x, origin []float64) {
	for i := range x {
		dst[i] = x[i] - origin[i]
	}
}

// Rotate computes dst = M·x. dst must not alias x.
//
// When a sub-function has rotation disabled the caller skips this step
// entirely; the skip is bit-identical to multiplying by an explicit
// identity matrix, since each row dot product then reduces to
// 1·x[i] plus exact zero terms.
func Rotate(dst, x []float64, m mat.Matrix) {
	n := len(x)
	dv := mat.NewVecDense(n, dst)
	dv.MulVec(m, mat.NewVecDense(n, x))
}

// Asymmetry applies the index-dependent power warp to positive
// coordinates:
//
//	y[i] = x[i]^(1 + beta·sqrt(x[i])·i/(n-1))  for x[i] > 0
//	y[i] = x[i]                                otherwise
//
// With n == 1 the index ratio is taken as 0.
func Asymmetry(dst, x []float64, beta float64) {
	n := len(x)
	for i, v := range x {
		if v > 0 {
			dst[i] = math.Pow(v, 1.0+beta*idxRatio(i, n)*math.Sqrt(v))
		} else {
			dst[i] = v
		}
	}
}

// Oscillation applies the sign-preserving log-power warp to every
// coordinate. Zero coordinates stay zero; the branch guards log(0).
func Oscillation(dst, x []float64) {
	for i, v := range x {
		if v == 0 {
			dst[i] = 0
			continue
		}
		var c1, c2, sign float64
		if v > 0 {
			c1, c2, sign = 10.0, 7.9, 1.0
		} else {
			c1, c2, sign = 5.5, 3.1, -1.0
		}
		lx := math.Log(math.Abs(v))
		dst[i] = sign * math.Exp(lx+0.049*(math.Sin(c1*lx)+math.Sin(c2*lx)))
	}
}

// ShiftRotate applies the fixed preprocessing order shift → rotate →
// scale. Disabling shift or rotation skips the step while keeping the
// vector length; dst must not alias x when rotation is enabled.
// tmp is scratch for the rotation input and must not alias dst.
func ShiftRotate(dst, tmp, x, origin []float64, m mat.Matrix, scale float64, doShift, doRotate bool) {
	src := x
	if doShift {
		Shift(tmp, x, origin)
		src = tmp
	}
	if doRotate {
		Rotate(dst, src, m)
	} else {
		copy(dst, src)
	}
	if scale != 1 {
		for i := range dst {
			dst[i] *= scale
		}
	}
}

// idxRatio returns i/(n-1) with the single-coordinate guard: for n == 1
// the ratio is defined as 0, avoiding a divide by zero in the
// index-dependent exponents.
func idxRatio(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// diagonalScale multiplies each coordinate by alpha^(i/(n-1)/2), the
// Λ^alpha ill-conditioning step of the 2013 construction.
func diagonalScale(x []float64, alpha float64) {
	n := len(x)
	for i := range x {
		x[i] *= math.Pow(alpha, idxRatio(i, n)/2)
	}
}

// roundHalf rounds coordinates with |x| > 0.5 to the nearest multiple
// of 0.5, the non-continuous step of the step-Rastrigin variant.
func roundHalf(x []float64) {
	for i, v := range x {
		if math.Abs(v) > 0.5 {
			x[i] = math.Floor(2*v+0.5) / 2
		}
	}
}
