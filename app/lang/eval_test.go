package lang

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalReal(t *testing.T, input string, env Env) (float64, bool) {
	t.Helper()
	node, err := ParseLine(input)
	require.NoError(t, err, "ParseLine(%q)", input)
	c, err := Eval(node, env)
	if err != nil {
		return 0, false
	}
	return Real(c)
}

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2 + 3", 5},
		{"10 - 3", 7},
		{"4 * 5", 20},
		{"10 / 4", 2.5},
		{"-5", -5},
		{"(2 + 3) * 4", 20},
		{"2**3", 8},
		{"2^3", 8},
		{"2**3**2", 512},
		{"-2**2", -4},
		{"(-2)**2", 4},
		{"2**-1", 0.5},
		{".5 + 1.5", 2},
		{"pi", math.Pi},
		{"E", math.E},
		{"exp(1)", math.E},
		{"I*I", -1},
	}

	for _, tt := range tests {
		got, ok := evalReal(t, tt.input, Env{})
		if assert.True(t, ok, "Eval(%q) undefined", tt.input) {
			assert.InDelta(t, tt.want, got, 1e-12, "Eval(%q)", tt.input)
		}
	}
}

func TestEvalFunctions(t *testing.T) {
	tests := []struct {
		input string
		x     float64
		want  float64
	}{
		{"sin(x)", math.Pi / 2, 1},
		{"cos(x)", 0, 1},
		{"tan(x)", 0, 0},
		{"atan(x)", 1, math.Pi / 4},
		{"sqrt(x)", 9, 3},
		{"abs(x)", -3, 3},
		{"log(x)", math.E, 1},
		{"log(x, 2)", 8, 3},
		{"ln(x)", 1, 0},
		{"log10(x)", 1000, 3},
		{"floor(x)", 2.7, 2},
		{"ceil(x)", 2.1, 3},
		{"round(x)", 2.5, 3},
		{"sign(x)", -4, -1},
		{"min(x, 2)", 5, 2},
		{"max(x, 2)", 5, 5},
		{"pow(x, 3)", 2, 8},
		{"atan2(x, 1)", 1, math.Pi / 4},
		{"sinh(x)", 0, 0},
		{"cosh(x)", 0, 1},
	}

	for _, tt := range tests {
		got, ok := evalReal(t, tt.input, Env{"x": complex(tt.x, 0)})
		if assert.True(t, ok, "Eval(%q) at %v undefined", tt.input, tt.x) {
			assert.InDelta(t, tt.want, got, 1e-9, "Eval(%q) at %v", tt.input, tt.x)
		}
	}
}

func TestEvalUndefined(t *testing.T) {
	tests := []struct {
		input string
		x     float64
	}{
		{"1/x", 0},
		{"x**-1", 0},
		{"sqrt(x)", -1},
		{"log(x)", -1},
		{"log(x)", 0},
		{"log(x, 1)", 5},
		{"y + 1", 0},
	}

	for _, tt := range tests {
		_, ok := evalReal(t, tt.input, Env{"x": complex(tt.x, 0)})
		assert.False(t, ok, "Eval(%q) at %v should be undefined", tt.input, tt.x)
	}
}

func TestEvalComplexIntermediate(t *testing.T) {
	// (sqrt(-1))^2 passes through the imaginary axis and lands on -1.
	got, ok := evalReal(t, "((-1)**(1/2))**2 + x", Env{"x": 3})
	require.True(t, ok)
	assert.InDelta(t, 2, got, 1e-12)
}

func TestEvalCalculus(t *testing.T) {
	tests := []struct {
		input string
		x     float64
		want  float64
	}{
		{"diff(x**2, x)", 3, 6},
		{"diff(sin(x), x)", 0, 1},
		{"diff(x**3, x, 2)", 2, 12},
		{"integrate(2*x, x)", 3, 9},
		{"integrate(cos(x), x)", math.Pi / 2, 1},
		{"integrate(x, x, 0, 2)", 7, 2},
		{"integrate(x, x, 2, 0)", 7, -2},
		{"integrate(x, x, 1, 1)", 7, 0},
	}

	for _, tt := range tests {
		got, ok := evalReal(t, tt.input, Env{"x": complex(tt.x, 0)})
		if assert.True(t, ok, "Eval(%q) at %v undefined", tt.input, tt.x) {
			assert.InDelta(t, tt.want, got, 1e-5, "Eval(%q) at %v", tt.input, tt.x)
		}
	}
}

func TestEvalCalculusErrors(t *testing.T) {
	for _, input := range []string{"diff(x**2)", "diff(x**2, 2)", "diff(x, x, 3)", "integrate(x, x, 1)", "integrate(x, pi)"} {
		_, ok := evalReal(t, input, Env{"x": 1})
		assert.False(t, ok, "Eval(%q) should fail", input)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"1 +", "(1", "sin(x)))", "2 $ 3", "*", "f(x,", ")"} {
		_, err := ParseLine(input)
		assert.Error(t, err, "ParseLine(%q)", input)
		var evalErr *EvalError
		assert.ErrorAs(t, err, &evalErr)
	}
}

func TestEmptyLine(t *testing.T) {
	node, err := ParseLine("   ")
	assert.NoError(t, err)
	assert.Nil(t, node)
}

func TestCollectSymbols(t *testing.T) {
	tests := []struct {
		input string
		free  []string
		calls []string
	}{
		{"x + 1", []string{"x"}, nil},
		{"2 * pi", nil, nil},
		{"sin(x) + y", []string{"x", "y"}, []string{"sin"}},
		{"integrate(t**2, t, 0, x)", []string{"x"}, []string{"integrate"}},
		{"integrate(t**2, t, 0, 1)", nil, []string{"integrate"}},
		{"diff(x**2, x)", []string{"x"}, []string{"diff"}},
		{"foo(x)", []string{"x"}, []string{"foo"}},
	}

	for _, tt := range tests {
		node, err := ParseLine(tt.input)
		require.NoError(t, err)
		info := CollectSymbols(node)
		assert.Equal(t, tt.free, info.Free, "free symbols of %q", tt.input)
		assert.Equal(t, tt.calls, info.Calls, "calls of %q", tt.input)
	}
}

func TestFormatConstant(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{4, "4"},
		{0.5, "0.5"},
		{math.Pi, "3.1415926536"},
		{-1e-12, "0"},
		{1.0 / 3, "0.3333333333"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatConstant(tt.v), "FormatConstant(%v)", tt.v)
	}
}

func TestReal(t *testing.T) {
	_, ok := Real(complex(1, 1))
	assert.False(t, ok)
	_, ok = Real(complex(math.NaN(), 0))
	assert.False(t, ok)
	_, ok = Real(complex(math.Inf(1), 0))
	assert.False(t, ok)
	v, ok := Real(complex(2, 1e-12))
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
	v, ok = Real(complex(math.Copysign(0, -1), 0))
	assert.True(t, ok)
	assert.False(t, math.Signbit(v))
}

func TestParseErrorOffsets(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"x y", `unexpected token "y" at offset 2`},
		{"(x", "expected ')' at offset 2"},
		{"sin(x, 2", "expected ')' in call to sin at offset 8"},
		{"2 *", "unexpected end of expression"},
		{"x $", `unexpected token "$" at offset 2`},
	}
	for _, tt := range tests {
		_, err := ParseLine(tt.input)
		var evalErr *EvalError
		require.ErrorAs(t, err, &evalErr, "ParseLine(%q)", tt.input)
		assert.Equal(t, tt.msg, evalErr.Msg, "ParseLine(%q)", tt.input)
	}
}
