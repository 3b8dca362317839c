package lang

import (
	"math"
	"math/cmplx"
)

// Env is the variable environment mapping symbol names to values.
type Env map[string]complex128

// constants are the named symbols that are never free.
var constants = map[string]complex128{
	"pi": complex(math.Pi, 0),
	"E":  complex(math.E, 0),
	"I":  complex(0, 1),
}

// IsConstantName reports whether name is a built-in constant.
func IsConstantName(name string) bool {
	_, ok := constants[name]
	return ok
}

// Eval evaluates an AST node in the given environment.
// Arithmetic is carried out over complex numbers so intermediate imaginary
// values (for example from the imaginary unit) can cancel out; callers
// collapse the result with Real.
func Eval(node Node, env Env) (complex128, error) {
	if node == nil {
		return 0, &EvalError{Msg: "empty expression"}
	}

	switch n := node.(type) {
	case *NumberLit:
		return complex(n.Value, 0), nil

	case *VarRef:
		if v, ok := env[n.Name]; ok {
			return v, nil
		}
		if v, ok := constants[n.Name]; ok {
			return v, nil
		}
		return 0, &EvalError{Msg: "undefined variable: " + n.Name}

	case *BinaryExpr:
		left, err := Eval(n.Left, env)
		if err != nil {
			return 0, err
		}
		right, err := Eval(n.Right, env)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case TOKEN_PLUS:
			return left + right, nil
		case TOKEN_MINUS:
			return left - right, nil
		case TOKEN_STAR:
			return left * right, nil
		case TOKEN_SLASH:
			if right == 0 {
				return 0, &EvalError{Msg: "division by zero"}
			}
			return left / right, nil
		case TOKEN_STARSTAR:
			return power(left, right)
		default:
			return 0, &EvalError{Msg: "unknown operator"}
		}

	case *UnaryExpr:
		operand, err := Eval(n.Operand, env)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case TOKEN_MINUS:
			return -operand, nil
		case TOKEN_PLUS:
			return operand, nil
		}
		return 0, &EvalError{Msg: "unknown unary operator"}

	case *FuncCall:
		return evalFuncCall(n, env)

	default:
		return 0, &EvalError{Msg: "unknown node type"}
	}
}

// power computes base**exp, staying on the real line whenever the real
// result exists so that (-2)**2 is exactly 4.
func power(base, exp complex128) (complex128, error) {
	if imag(base) == 0 && imag(exp) == 0 {
		b, e := real(base), real(exp)
		if b >= 0 || e == math.Trunc(e) {
			if b == 0 && e < 0 {
				return 0, &EvalError{Msg: "division by zero"}
			}
			return complex(math.Pow(b, e), 0), nil
		}
	}
	if base == 0 {
		if real(exp) > 0 {
			return 0, nil
		}
		return 0, &EvalError{Msg: "division by zero"}
	}
	return cmplx.Pow(base, exp), nil
}

// realArg evaluates node and requires a real result.
func realArg(name string, node Node, env Env) (float64, error) {
	v, err := Eval(node, env)
	if err != nil {
		return 0, err
	}
	r, ok := Real(v)
	if !ok {
		return 0, &EvalError{Msg: name + "() requires a real argument"}
	}
	return r, nil
}

func evalComplexFunc1(n *FuncCall, env Env, fn func(complex128) complex128) (complex128, error) {
	if len(n.Args) != 1 {
		return 0, &EvalError{Msg: n.Name + "() takes 1 argument"}
	}
	v, err := Eval(n.Args[0], env)
	if err != nil {
		return 0, err
	}
	return fn(v), nil
}

func evalRealFunc1(n *FuncCall, env Env, fn func(float64) float64) (complex128, error) {
	if len(n.Args) != 1 {
		return 0, &EvalError{Msg: n.Name + "() takes 1 argument"}
	}
	v, err := realArg(n.Name, n.Args[0], env)
	if err != nil {
		return 0, err
	}
	return complex(fn(v), 0), nil
}

func evalRealFunc2(n *FuncCall, env Env, fn func(float64, float64) float64) (complex128, error) {
	if len(n.Args) != 2 {
		return 0, &EvalError{Msg: n.Name + "() takes 2 arguments"}
	}
	a, err := realArg(n.Name, n.Args[0], env)
	if err != nil {
		return 0, err
	}
	b, err := realArg(n.Name, n.Args[1], env)
	if err != nil {
		return 0, err
	}
	return complex(fn(a, b), 0), nil
}

func evalLog(n *FuncCall, env Env) (complex128, error) {
	switch len(n.Args) {
	case 1:
		return evalComplexFunc1(n, env, logNatural)
	case 2:
		v, err := Eval(n.Args[0], env)
		if err != nil {
			return 0, err
		}
		b, err := Eval(n.Args[1], env)
		if err != nil {
			return 0, err
		}
		lb := logNatural(b)
		if lb == 0 {
			return 0, &EvalError{Msg: "log() base must not be 1"}
		}
		return logNatural(v) / lb, nil
	default:
		return 0, &EvalError{Msg: "log() takes 1 or 2 arguments"}
	}
}

// logNatural keeps log of a positive real exact instead of going through
// the complex branch.
func logNatural(v complex128) complex128 {
	if imag(v) == 0 && real(v) > 0 {
		return complex(math.Log(real(v)), 0)
	}
	return cmplx.Log(v)
}

func sqrtPrincipal(v complex128) complex128 {
	if imag(v) == 0 && real(v) >= 0 {
		return complex(math.Sqrt(real(v)), 0)
	}
	return cmplx.Sqrt(v)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// builtins lists every function name evalFuncCall understands.
var builtins = map[string]bool{
	"sin": true, "cos": true, "tan": true, "asin": true, "acos": true, "atan": true,
	"sinh": true, "cosh": true, "tanh": true, "exp": true, "log": true, "ln": true,
	"log10": true, "sqrt": true, "abs": true, "floor": true, "ceil": true,
	"round": true, "sign": true, "min": true, "max": true, "pow": true,
	"atan2": true, "diff": true, "integrate": true,
}

// IsBuiltin reports whether name is a callable built-in function.
func IsBuiltin(name string) bool {
	return builtins[name]
}

func evalFuncCall(n *FuncCall, env Env) (complex128, error) {
	switch n.Name {
	case "sin":
		return evalComplexFunc1(n, env, cmplx.Sin)
	case "cos":
		return evalComplexFunc1(n, env, cmplx.Cos)
	case "tan":
		return evalComplexFunc1(n, env, cmplx.Tan)
	case "asin":
		return evalComplexFunc1(n, env, cmplx.Asin)
	case "acos":
		return evalComplexFunc1(n, env, cmplx.Acos)
	case "atan":
		return evalComplexFunc1(n, env, cmplx.Atan)
	case "sinh":
		return evalComplexFunc1(n, env, cmplx.Sinh)
	case "cosh":
		return evalComplexFunc1(n, env, cmplx.Cosh)
	case "tanh":
		return evalComplexFunc1(n, env, cmplx.Tanh)
	case "exp":
		return evalComplexFunc1(n, env, cmplx.Exp)
	case "sqrt":
		return evalComplexFunc1(n, env, sqrtPrincipal)
	case "log":
		return evalLog(n, env)
	case "ln":
		return evalComplexFunc1(n, env, logNatural)
	case "log10":
		return evalComplexFunc1(n, env, func(v complex128) complex128 {
			return logNatural(v) / complex(math.Ln10, 0)
		})
	case "abs":
		return evalComplexFunc1(n, env, func(v complex128) complex128 {
			return complex(cmplx.Abs(v), 0)
		})

	case "floor":
		return evalRealFunc1(n, env, math.Floor)
	case "ceil":
		return evalRealFunc1(n, env, math.Ceil)
	case "round":
		return evalRealFunc1(n, env, math.Round)
	case "sign":
		return evalRealFunc1(n, env, sign)

	case "pow":
		if len(n.Args) != 2 {
			return 0, &EvalError{Msg: "pow() takes 2 arguments"}
		}
		return Eval(&BinaryExpr{Op: TOKEN_STARSTAR, Left: n.Args[0], Right: n.Args[1]}, env)
	case "atan2":
		return evalRealFunc2(n, env, math.Atan2)
	case "min":
		return evalRealFunc2(n, env, math.Min)
	case "max":
		return evalRealFunc2(n, env, math.Max)

	case "diff":
		return evalDiff(n, env)
	case "integrate":
		return evalIntegrate(n, env)

	default:
		return 0, &EvalError{Msg: "unknown function: " + n.Name}
	}
}
