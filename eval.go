package symdiff

import (
	"fmt"
	"math"
	"math/big"
)

// ============================================================
// Evaluation
// ============================================================

// Eval evaluates a tree of integer constants exactly. It fails on variables,
// functions, inexact or zero division, negative exponents and powers whose
// result would exceed MaxFoldBits bits.
func Eval(n *Node) (*big.Int, bool) {
	if n == nil {
		return nil, false
	}
	switch n.Tok.Kind {
	case IntegerConstant:
		return new(big.Int).Set(n.Tok.Num), true
	case Operator:
	default:
		return nil, false
	}
	a, ok := Eval(n.Left)
	if !ok {
		return nil, false
	}
	b, ok := Eval(n.Right)
	if !ok {
		return nil, false
	}
	switch n.Tok.Value {
	case '+':
		return a.Add(a, b), true
	case '-':
		return a.Sub(a, b), true
	case '*':
		return a.Mul(a, b), true
	case '/':
		return exactQuo(a, b)
	case '^':
		return boundedExp(a, b, MaxFoldBits)
	}
	return nil, false
}

// EvalFloat evaluates n numerically with variables bound by name in env.
// log(a,b) is the logarithm of b in base a.
func EvalFloat(n *Node, syms *SymbolTable, env map[string]float64) (float64, error) {
	if n == nil {
		return 0, ErrNilTree
	}
	switch n.Tok.Kind {
	case IntegerConstant:
		f, _ := new(big.Float).SetInt(n.Tok.Num).Float64()
		return f, nil
	case Variable:
		name := syms.Name(n.Tok.Value)
		v, ok := env[name]
		if !ok {
			return 0, fmt.Errorf("unbound variable %q", name)
		}
		return v, nil
	}

	a, err := EvalFloat(n.Left, syms, env)
	if err != nil {
		return 0, err
	}
	if n.Tok.Kind == UnaryFunction {
		switch Func1(n.Tok.Value) {
		case Ln:
			return math.Log(a), nil
		case Cos:
			return math.Cos(a), nil
		case Sin:
			return math.Sin(a), nil
		case Tan:
			return math.Tan(a), nil
		case Exp:
			return math.Exp(a), nil
		}
		return 0, fmt.Errorf("%w: unknown function %d", ErrMalformedTree, n.Tok.Value)
	}

	b, err := EvalFloat(n.Right, syms, env)
	if err != nil {
		return 0, err
	}
	if n.Tok.Kind == BinaryFunction {
		switch Func2(n.Tok.Value) {
		case Log:
			return math.Log(b) / math.Log(a), nil
		case PowFn:
			return math.Pow(a, b), nil
		}
		return 0, fmt.Errorf("%w: unknown function %d", ErrMalformedTree, n.Tok.Value)
	}
	switch n.Tok.Value {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	case '/':
		return a / b, nil
	case '^':
		return math.Pow(a, b), nil
	}
	return 0, fmt.Errorf("%w: %s cannot be evaluated", ErrMalformedTree, n.Tok.Kind)
}
