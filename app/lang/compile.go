package lang

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/Knetic/govaluate"
)

// Variable is the designated variable functions are plotted over.
const Variable = "x"

// Status classifies a compiled function.
type Status int

const (
	// StatusEmpty means there was no expression at all.
	StatusEmpty Status = iota
	// StatusValid means the function can be evaluated.
	StatusValid
	// StatusInvalid means the expression could not be compiled into a
	// univariate function.
	StatusInvalid
	// StatusError is the forced error state, e.g. for a dependency cycle.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Evaluator computes the value of a function at x; ok is false where the
// function is undefined.
type Evaluator func(x float64) (y float64, ok bool)

var lastFunctionID atomic.Uint64

// Function is the result of compiling one normalized expression.
// Every Function gets a fresh ID, so values cached under an older ID can
// never be confused with the current function. Tier is 1 when the AST
// evaluator compiled the expression and 2 when the govaluate fallback did.
type Function struct {
	ID         uint64
	Source     string
	Status     Status
	IsConstant bool
	Constant   float64
	Err        error
	Tier       int

	eval Evaluator
}

// Valid reports whether the function can be evaluated.
func (f *Function) Valid() bool {
	return f != nil && f.Status == StatusValid
}

// Eval evaluates the function at x. It never panics: any failure inside
// the evaluator reports the point as undefined.
func (f *Function) Eval(x float64) (y float64, ok bool) {
	if !f.Valid() || f.eval == nil {
		return 0, false
	}
	defer func() {
		if r := recover(); r != nil {
			y, ok = 0, false
		}
	}()
	y, ok = f.eval(x)
	if !ok {
		return 0, false
	}
	return Finite(y)
}

func newFunction(source string) *Function {
	return &Function{ID: lastFunctionID.Add(1), Source: source}
}

// ErrorFunction returns a function forced into the error state.
func ErrorFunction(source string, err error) *Function {
	f := newFunction(source)
	f.Status = StatusError
	f.Err = err
	return f
}

// Compile turns a normalized expression into a Function of variable.
// It never fails: problems are reported through Status and Err.
//
// The expression is first parsed into an AST. When that parse fails the
// text is handed to govaluate, which understands a wider operator set
// (comparisons, ternaries, modulo).
func Compile(source, variable string) *Function {
	f := newFunction(source)
	if strings.TrimSpace(source) == "" {
		f.Status = StatusEmpty
		return f
	}

	node, err := ParseLine(source)
	if err == nil {
		compileTree(f, node, variable)
		return f
	}
	if fallbackErr := compileFallback(f, source, variable); fallbackErr != nil {
		f.Status = StatusInvalid
		f.Err = &EvalError{Msg: fmt.Sprintf("%v; fallback: %v", err, fallbackErr)}
	}
	return f
}

func compileTree(f *Function, node Node, variable string) {
	f.Tier = 1
	info := CollectSymbols(node)
	for _, name := range info.Calls {
		if !IsBuiltin(name) {
			f.Status = StatusInvalid
			f.Err = &EvalError{Msg: "unknown function: " + name}
			return
		}
	}

	switch {
	case len(info.Free) == 0:
		v, err := evalConstant(node)
		if err != nil {
			f.Status = StatusInvalid
			f.Err = err
			return
		}
		f.setConstant(v)

	case len(info.Free) == 1 && info.Free[0] == variable:
		f.Status = StatusValid
		f.eval = func(x float64) (float64, bool) {
			c, err := Eval(node, Env{variable: complex(x, 0)})
			if err != nil {
				return 0, false
			}
			return Real(c)
		}

	default:
		f.Status = StatusInvalid
		f.Err = &EvalError{Msg: "not a function of " + variable + ": free symbols " + strings.Join(info.Free, ", ")}
	}
}

func evalConstant(node Node) (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &EvalError{Msg: fmt.Sprint("evaluation failed: ", r)}
		}
	}()
	c, err := Eval(node, Env{})
	if err != nil {
		return 0, err
	}
	r, ok := Real(c)
	if !ok {
		return 0, &EvalError{Msg: "not a real number"}
	}
	return r, nil
}

func (f *Function) setConstant(v float64) {
	f.Status = StatusValid
	f.IsConstant = true
	f.Constant = v
	f.eval = func(float64) (float64, bool) { return v, true }
}

// fallbackFunctions are the functions available to govaluate expressions.
var fallbackFunctions = map[string]govaluate.ExpressionFunction{
	"sin":   fallback1(math.Sin),
	"cos":   fallback1(math.Cos),
	"tan":   fallback1(math.Tan),
	"asin":  fallback1(math.Asin),
	"acos":  fallback1(math.Acos),
	"atan":  fallback1(math.Atan),
	"sinh":  fallback1(math.Sinh),
	"cosh":  fallback1(math.Cosh),
	"tanh":  fallback1(math.Tanh),
	"exp":   fallback1(math.Exp),
	"log":   fallback1(math.Log),
	"ln":    fallback1(math.Log),
	"log10": fallback1(math.Log10),
	"sqrt":  fallback1(math.Sqrt),
	"abs":   fallback1(math.Abs),
	"floor": fallback1(math.Floor),
	"ceil":  fallback1(math.Ceil),
	"round": fallback1(math.Round),
	"sign":  fallback1(sign),
	"pow":   fallback2(math.Pow),
	"atan2": fallback2(math.Atan2),
	"min":   fallback2(math.Min),
	"max":   fallback2(math.Max),
}

func fallback1(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, &EvalError{Msg: "expected 1 argument"}
		}
		a, ok := args[0].(float64)
		if !ok {
			return nil, &EvalError{Msg: "expected a number"}
		}
		return fn(a), nil
	}
}

func fallback2(fn func(float64, float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, &EvalError{Msg: "expected 2 arguments"}
		}
		a, aok := args[0].(float64)
		b, bok := args[1].(float64)
		if !aok || !bok {
			return nil, &EvalError{Msg: "expected numbers"}
		}
		return fn(a, b), nil
	}
}

// fallbackParams binds the designated variable and the named constants.
// It implements govaluate.Parameters without allocating a map per sample.
type fallbackParams struct {
	name  string
	value float64
	bound bool
}

func (p fallbackParams) Get(name string) (interface{}, error) {
	if p.bound && name == p.name {
		return p.value, nil
	}
	if c, ok := constants[name]; ok && imag(c) == 0 {
		return real(c), nil
	}
	return nil, &EvalError{Msg: "undefined variable: " + name}
}

func compileFallback(f *Function, source, variable string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &EvalError{Msg: fmt.Sprint("fallback panicked: ", r)}
		}
	}()
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(source, fallbackFunctions)
	if err != nil {
		return err
	}

	usesVariable := false
	for _, tok := range expr.Tokens() {
		if tok.Kind != govaluate.VARIABLE {
			continue
		}
		name, _ := tok.Value.(string)
		switch {
		case name == variable:
			usesVariable = true
		case IsConstantName(name):
		default:
			return &EvalError{Msg: "not a function of " + variable + ": free symbol " + name}
		}
	}

	f.Tier = 2
	if !usesVariable {
		v, ok := fallbackResult(expr.Eval(fallbackParams{}))
		if !ok {
			return &EvalError{Msg: "not a real number"}
		}
		f.setConstant(v)
		return nil
	}

	f.Status = StatusValid
	f.eval = func(x float64) (float64, bool) {
		return fallbackResult(expr.Eval(fallbackParams{name: variable, value: x, bound: true}))
	}
	return nil
}

func fallbackResult(v interface{}, err error) (float64, bool) {
	if err != nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return Finite(t)
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}
