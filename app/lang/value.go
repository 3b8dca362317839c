package lang

import (
	"math"
	"math/cmplx"
	"strconv"

	"gonum.org/v1/gonum/floats/scalar"
)

// imagTolerance is the relative size of an imaginary part that is still
// considered rounding noise from a real computation.
const imagTolerance = 1e-9

// EvalError represents a parse or evaluation error.
type EvalError struct {
	Msg string
}

func (e *EvalError) Error() string {
	return e.Msg
}

// Real collapses a complex result to a finite real number.
// It reports false for NaN, infinities and results whose imaginary part is
// not negligible against the real part.
func Real(c complex128) (float64, bool) {
	if cmplx.IsNaN(c) || cmplx.IsInf(c) {
		return 0, false
	}
	re, im := real(c), imag(c)
	if math.Abs(im) > imagTolerance*math.Max(1, math.Abs(re)) {
		return 0, false
	}
	return Finite(re)
}

// Finite reports whether v is an ordinary real number, normalizing -0 to 0.
func Finite(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v == 0 {
		return 0, true
	}
	return v, true
}

// FormatConstant renders a constant value rounded to 10 decimal digits,
// without trailing zeros.
func FormatConstant(v float64) string {
	r := scalar.Round(v, 10)
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
