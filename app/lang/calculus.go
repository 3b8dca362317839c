package lang

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/integrate/quad"
)

// quadraturePoints is the number of Gauss-Legendre nodes used by integrate().
const quadraturePoints = 64

// boundVariable extracts the variable name a calculus builtin works over.
func boundVariable(n *FuncCall) (string, error) {
	if len(n.Args) < 2 {
		return "", &EvalError{Msg: n.Name + "() requires an expression and a variable"}
	}
	v, ok := n.Args[1].(*VarRef)
	if !ok || IsConstantName(v.Name) {
		return "", &EvalError{Msg: n.Name + "() second argument must be a variable"}
	}
	return v.Name, nil
}

// realFunc turns body into a real function of name, evaluated in a copy of
// env. Undefined points become NaN, which the gonum routines propagate.
func realFunc(body Node, name string, env Env) func(float64) float64 {
	local := make(Env, len(env)+1)
	for k, v := range env {
		local[k] = v
	}
	return func(t float64) float64 {
		local[name] = complex(t, 0)
		c, err := Eval(body, local)
		if err != nil {
			return math.NaN()
		}
		r, ok := Real(c)
		if !ok {
			return math.NaN()
		}
		return r
	}
}

// evalDiff implements diff(expr, x) and diff(expr, x, n) for n in {1, 2}
// as a central finite difference at the current value of x.
func evalDiff(n *FuncCall, env Env) (complex128, error) {
	name, err := boundVariable(n)
	if err != nil {
		return 0, err
	}
	settings := &fd.Settings{Formula: fd.Central}
	if len(n.Args) == 3 {
		order, err := realArg(n.Name, n.Args[2], env)
		if err != nil {
			return 0, err
		}
		switch order {
		case 1:
		case 2:
			settings.Formula = fd.Central2nd
		default:
			return 0, &EvalError{Msg: "diff() supports order 1 or 2"}
		}
	} else if len(n.Args) != 2 {
		return 0, &EvalError{Msg: "diff() takes 2 or 3 arguments"}
	}
	at, ok := env[name]
	if !ok {
		return 0, &EvalError{Msg: "undefined variable: " + name}
	}
	x, ok := Real(at)
	if !ok {
		return 0, &EvalError{Msg: "diff() requires a real point"}
	}
	d := fd.Derivative(realFunc(n.Args[0], name, env), x, settings)
	return complex(d, 0), nil
}

// evalIntegrate implements integrate(expr, x), the integral from 0 to the
// current x, and integrate(expr, x, a, b), the definite integral over [a, b].
func evalIntegrate(n *FuncCall, env Env) (complex128, error) {
	name, err := boundVariable(n)
	if err != nil {
		return 0, err
	}
	var lo, hi float64
	switch len(n.Args) {
	case 2:
		at, ok := env[name]
		if !ok {
			return 0, &EvalError{Msg: "undefined variable: " + name}
		}
		if hi, ok = Real(at); !ok {
			return 0, &EvalError{Msg: "integrate() requires a real bound"}
		}
	case 4:
		if lo, err = realArg(n.Name, n.Args[2], env); err != nil {
			return 0, err
		}
		if hi, err = realArg(n.Name, n.Args[3], env); err != nil {
			return 0, err
		}
	default:
		return 0, &EvalError{Msg: "integrate() takes 2 or 4 arguments"}
	}
	return complex(definiteIntegral(realFunc(n.Args[0], name, env), lo, hi), 0), nil
}

func definiteIntegral(f func(float64) float64, lo, hi float64) float64 {
	switch {
	case lo == hi:
		return 0
	case lo > hi:
		return -quad.Fixed(f, hi, lo, quadraturePoints, quad.Legendre{}, 0)
	}
	return quad.Fixed(f, lo, hi, quadraturePoints, quad.Legendre{}, 0)
}
