package benchmark

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestShift(t *testing.T) {
	x := []float64{3, 5, -2}
	origin := []float64{1, 2, 3}
	dst := make([]float64, 3)

	Shift(dst, x, origin)
	want := []float64{2, 3, -5}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}

	// In-place aliasing must work for the per-coordinate transforms.
	Shift(x, x, origin)
	for i := range want {
		if x[i] != want[i] {
			t.Errorf("aliased dst[%d] = %v, want %v", i, x[i], want[i])
		}
	}
}

func TestRotateIdentity(t *testing.T) {
	// Skipping a disabled rotation must be bit-identical to multiplying
	// by an explicit identity matrix.
	x := []float64{0.1, -7.3, 1e-17, 123.456}
	n := len(x)
	id := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		id.Set(i, i, 1)
	}

	dst := make([]float64, n)
	Rotate(dst, x, id)
	for i := range x {
		if dst[i] != x[i] {
			t.Errorf("identity rotation changed coordinate %d: %v != %v", i, dst[i], x[i])
		}
	}
}

func TestRotate(t *testing.T) {
	// 90 degree rotation in the plane.
	m := mat.NewDense(2, 2, []float64{0, -1, 1, 0})
	dst := make([]float64, 2)
	Rotate(dst, []float64{1, 0}, m)
	if dst[0] != 0 || dst[1] != 1 {
		t.Errorf("got (%v, %v), want (0, 1)", dst[0], dst[1])
	}
}

func TestAsymmetry(t *testing.T) {
	t.Run("negative coordinates unchanged", func(t *testing.T) {
		x := []float64{-3, -0.5, 0}
		dst := make([]float64, 3)
		Asymmetry(dst, x, 0.5)
		for i := range x {
			if dst[i] != x[i] {
				t.Errorf("dst[%d] = %v, want %v", i, dst[i], x[i])
			}
		}
	})

	t.Run("first coordinate has exponent one", func(t *testing.T) {
		// i = 0 gives index ratio 0, so the exponent stays 1.
		x := []float64{4, 4}
		dst := make([]float64, 2)
		Asymmetry(dst, x, 0.5)
		if dst[0] != 4 {
			t.Errorf("dst[0] = %v, want 4", dst[0])
		}
		// Last coordinate: 4^(1 + 0.5*1*2) = 4^2 = 16.
		if math.Abs(dst[1]-16) > 1e-12 {
			t.Errorf("dst[1] = %v, want 16", dst[1])
		}
	})

	t.Run("single coordinate is identity for x=1", func(t *testing.T) {
		dst := make([]float64, 1)
		Asymmetry(dst, []float64{2}, 0.5)
		// n = 1 takes the index ratio as 0.
		if dst[0] != 2 {
			t.Errorf("dst[0] = %v, want 2", dst[0])
		}
	})
}

func TestOscillation(t *testing.T) {
	t.Run("zero stays zero", func(t *testing.T) {
		dst := []float64{99}
		Oscillation(dst, []float64{0})
		if dst[0] != 0 {
			t.Errorf("dst[0] = %v, want 0", dst[0])
		}
	})

	t.Run("unit magnitudes are fixed points", func(t *testing.T) {
		// log(1) = 0, so the warp reduces to exp(0) with both sine
		// terms vanishing.
		dst := make([]float64, 2)
		Oscillation(dst, []float64{1, -1})
		if dst[0] != 1 {
			t.Errorf("dst[0] = %v, want 1", dst[0])
		}
		if dst[1] != -1 {
			t.Errorf("dst[1] = %v, want -1", dst[1])
		}
	})

	t.Run("sign preserved", func(t *testing.T) {
		xs := []float64{0.01, 0.5, 2, 100, -0.01, -0.5, -2, -100}
		dst := make([]float64, len(xs))
		Oscillation(dst, xs)
		for i, v := range xs {
			if math.Signbit(dst[i]) != math.Signbit(v) {
				t.Errorf("oscillation flipped the sign of %v: got %v", v, dst[i])
			}
		}
	})
}

func TestShiftRotateOrder(t *testing.T) {
	// shift then rotate then scale: with the 90 degree rotation,
	// x=(2,1), origin=(1,1), scale=10 gives (0,10) and not any other
	// ordering of the three steps.
	m := mat.NewDense(2, 2, []float64{0, -1, 1, 0})
	dst := make([]float64, 2)
	tmp := make([]float64, 2)

	ShiftRotate(dst, tmp, []float64{2, 1}, []float64{1, 1}, m, 10, true, true)
	if math.Abs(dst[0]) > 1e-15 || math.Abs(dst[1]-10) > 1e-12 {
		t.Errorf("got (%v, %v), want (0, 10)", dst[0], dst[1])
	}

	// Rotation disabled: shift and scale only.
	ShiftRotate(dst, tmp, []float64{2, 1}, []float64{1, 1}, nil, 10, true, false)
	if dst[0] != 10 || dst[1] != 0 {
		t.Errorf("got (%v, %v), want (10, 0)", dst[0], dst[1])
	}

	// Shift disabled.
	ShiftRotate(dst, tmp, []float64{2, 1}, nil, nil, 1, false, false)
	if dst[0] != 2 || dst[1] != 1 {
		t.Errorf("got (%v, %v), want (2, 1)", dst[0], dst[1])
	}
}

func TestDiagonalScale(t *testing.T) {
	x := []float64{1, 1, 1}
	diagonalScale(x, 100)
	want := []float64{1, math.Sqrt(10), 10}
	for i := range want {
		if math.Abs(x[i]-want[i]) > 1e-12 {
			t.Errorf("x[%d] = %v, want %v", i, x[i], want[i])
		}
	}

	// Single coordinate: alpha^0 = 1.
	y := []float64{7}
	diagonalScale(y, 100)
	if y[0] != 7 {
		t.Errorf("y[0] = %v, want 7", y[0])
	}
}

func TestRoundHalf(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.3, 0.3},
		{0.5, 0.5},
		{-0.5, -0.5},
		{0.74, 0.5},
		{0.76, 1.0},
		{-0.76, -1.0},
		{2.6, 2.5},
		{-2.6, -2.5},
	}
	for _, tt := range tests {
		x := []float64{tt.in}
		roundHalf(x)
		if math.Abs(x[0]-tt.want) > 1e-12 {
			t.Errorf("roundHalf(%v) = %v, want %v", tt.in, x[0], tt.want)
		}
	}
}

func TestIdxRatio(t *testing.T) {
	if got := idxRatio(0, 1); got != 0 {
		t.Errorf("idxRatio(0, 1) = %v, want 0", got)
	}
	if got := idxRatio(0, 5); got != 0 {
		t.Errorf("idxRatio(0, 5) = %v, want 0", got)
	}
	if got := idxRatio(4, 5); got != 1 {
		t.Errorf("idxRatio(4, 5) = %v, want 1", got)
	}
	if got := idxRatio(2, 5); got != 0.5 {
		t.Errorf("idxRatio(2, 5) = %v, want 0.5", got)
	}
}
