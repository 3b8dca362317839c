package lang

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileConstant(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2+2", 4},
		{"2^3", 8},
		{"pi/2", math.Pi / 2},
		{"e", math.E},
		{"i*i", -1},
		{"integrate(t, t, 0, 2)", 2},
		{"5", 5},
	}

	for _, tt := range tests {
		f := Compile(Normalize(tt.input), Variable)
		require.True(t, f.Valid(), "Compile(%q): %v", tt.input, f.Err)
		assert.True(t, f.IsConstant, "Compile(%q) should be constant", tt.input)
		assert.InDelta(t, tt.want, f.Constant, 1e-9, "Compile(%q)", tt.input)

		// The evaluator ignores its argument.
		for _, x := range []float64{-3, 0, 17} {
			y, ok := f.Eval(x)
			assert.True(t, ok)
			assert.InDelta(t, tt.want, y, 1e-9)
		}
	}
}

func TestCompileFunction(t *testing.T) {
	tests := []struct {
		input string
		x     float64
		want  float64
	}{
		{"x^2", 3, 9},
		{"2x+1", 2, 5},
		{"sin(x)cos(x)", math.Pi / 4, 0.5},
		{"(x+1)(x-1)", 3, 8},
		{"e^x", 1, math.E},
		{"f(x) = 1/x", 4, 0.25},
		{"sqrt(x^2)", -2, 2},
		{"x*i*i", 2, -2},
	}

	for _, tt := range tests {
		f := Compile(Normalize(tt.input), Variable)
		require.True(t, f.Valid(), "Compile(%q): %v", tt.input, f.Err)
		assert.False(t, f.IsConstant)
		assert.Equal(t, 1, f.Tier)
		y, ok := f.Eval(tt.x)
		if assert.True(t, ok, "%q at %v undefined", tt.input, tt.x) {
			assert.InDelta(t, tt.want, y, 1e-9, "%q at %v", tt.input, tt.x)
		}
	}
}

func TestCompileDigitsAfterNames(t *testing.T) {
	tests := []struct {
		input string
		x     float64
		want  float64
	}{
		{"1e3", 0, 3 * math.E},
		{"i2*i", 0, -2},
		{"log10(x)", 100, 2},
		{"atan2(x,1)", 1, math.Pi / 4},
		{"2log10(x)", 1000, 6},
	}

	for _, tt := range tests {
		f := Compile(Normalize(tt.input), Variable)
		require.True(t, f.Valid(), "Compile(%q): %v", tt.input, f.Err)
		assert.Equal(t, 1, f.Tier, "Compile(%q)", tt.input)
		y, ok := f.Eval(tt.x)
		if assert.True(t, ok, "%q at %v undefined", tt.input, tt.x) {
			assert.InDelta(t, tt.want, y, 1e-9, "%q at %v", tt.input, tt.x)
		}
	}
}

func TestCompileInvalid(t *testing.T) {
	tests := []struct {
		input  string
		status Status
	}{
		{"", StatusEmpty},
		{"   ", StatusEmpty},
		{"x + y", StatusInvalid},
		{"y", StatusInvalid},
		{"sqrt(-1)", StatusInvalid},
		{"1/0", StatusInvalid},
		{"foo(x)", StatusInvalid},
		{"sin(x)))", StatusInvalid},
		{"1 +", StatusInvalid},
	}

	for _, tt := range tests {
		f := Compile(Normalize(tt.input), Variable)
		assert.Equal(t, tt.status, f.Status, "Compile(%q)", tt.input)
		assert.False(t, f.Valid())
		_, ok := f.Eval(1)
		assert.False(t, ok)
		if tt.status == StatusInvalid {
			assert.Error(t, f.Err)
		}
	}
}

func TestCompilePointwiseUndefined(t *testing.T) {
	f := Compile(Normalize("1/x"), Variable)
	require.True(t, f.Valid())

	_, ok := f.Eval(0)
	assert.False(t, ok)
	y, ok := f.Eval(2)
	assert.True(t, ok)
	assert.Equal(t, 0.5, y)

	f = Compile(Normalize("log(x)"), Variable)
	require.True(t, f.Valid())
	_, ok = f.Eval(-1)
	assert.False(t, ok)
}

func TestCompileFallback(t *testing.T) {
	f := Compile("x > 0 ? x : 0 - x", Variable)
	require.True(t, f.Valid(), "fallback: %v", f.Err)
	assert.Equal(t, 2, f.Tier)

	y, ok := f.Eval(-3)
	assert.True(t, ok)
	assert.Equal(t, 3.0, y)
	y, ok = f.Eval(2)
	assert.True(t, ok)
	assert.Equal(t, 2.0, y)

	f = Compile("7 % 4", Variable)
	require.True(t, f.Valid(), "fallback: %v", f.Err)
	assert.True(t, f.IsConstant)
	assert.Equal(t, 3.0, f.Constant)

	f = Compile("x % y", Variable)
	assert.Equal(t, StatusInvalid, f.Status)

	// Comparisons without a branch yield booleans, which are not plottable.
	f = Compile("x > 1", Variable)
	require.True(t, f.Valid())
	_, ok = f.Eval(2)
	assert.False(t, ok)
}

func TestCompileFreshIDs(t *testing.T) {
	a := Compile("x", Variable)
	b := Compile("x", Variable)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Greater(t, b.ID, a.ID)
}

func TestErrorFunction(t *testing.T) {
	f := ErrorFunction("x+1", &EvalError{Msg: "cycle"})
	assert.Equal(t, StatusError, f.Status)
	assert.False(t, f.Valid())
	_, ok := f.Eval(1)
	assert.False(t, ok)
	assert.Equal(t, "error", f.Status.String())
}

func TestEvalNeverPanics(t *testing.T) {
	inputs := []string{"1/x", "log(x)", "tan(x)", "x**x", "diff(1/x, x)", "integrate(1/t, t, x, 1)", "asin(x)"}
	xs := []float64{0, -1, 1, math.MaxFloat64, -math.MaxFloat64, 1e-300, math.SmallestNonzeroFloat64}
	for _, in := range inputs {
		f := Compile(Normalize(in), Variable)
		for _, x := range xs {
			assert.NotPanics(t, func() {
				y, ok := f.Eval(x)
				if ok {
					assert.False(t, math.IsNaN(y) || math.IsInf(y, 0), "%q at %v = %v", in, x, y)
				}
			})
		}
	}
}
