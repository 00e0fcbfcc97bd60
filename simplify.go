package symdiff

import "math/big"

// ============================================================
// Simplification
// ============================================================

// DefaultMaxExponent bounds constant exponentiation during folding.
const DefaultMaxExponent = 64

// MaxFoldBits bounds the size of any constant produced by exponentiation.
// Nested powers such as ((9^64)^64)^64 stay symbolic once the result would
// exceed it.
const MaxFoldBits = 1 << 16

// Simplifier runs one bottom-up rewrite pass: children first, then the
// identity table for the node's own kind applied to the simplified children.
// A rewrite that exposes a new pattern at the same node is not revisited.
type Simplifier struct {
	// MaxExponent is the largest exponent c in a^c folded to a constant.
	// Zero means DefaultMaxExponent.
	MaxExponent int64
}

// Simplify runs a single pass with the default Simplifier.
func Simplify(n *Node) *Node { return Simplifier{}.Simplify(n) }

// SimplifyUntilStable repeats Simplify until the tree stops changing.
func SimplifyUntilStable(n *Node) *Node { return Simplifier{}.UntilStable(n) }

// UntilStable repeats s.Simplify until the tree stops changing.
func (s Simplifier) UntilStable(n *Node) *Node {
	cur := s.Simplify(n)
	for i := 0; i < 64; i++ {
		next := s.Simplify(cur)
		if next.Equal(cur) {
			return next
		}
		cur = next
	}
	return cur
}

// Simplify returns a new simplified tree; n is left untouched.
func (s Simplifier) Simplify(n *Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Tok.Kind {
	case Operator, UnaryFunction, BinaryFunction:
	default:
		return n.Copy()
	}

	a := s.Simplify(n.Left)
	b := s.Simplify(n.Right)

	switch n.Tok.Kind {
	case Operator:
		return s.operator(n.Tok, a, b)
	case UnaryFunction:
		return unary(n.Tok, a)
	default:
		return s.binary(n.Tok, a, b)
	}
}

func (s Simplifier) operator(tok Token, a, b *Node) *Node {
	keep := &Node{Tok: Token{Kind: Operator, Value: tok.Value}, Left: a, Right: b}
	bothConst := a.isConst() && b.isConst()

	switch tok.Value {
	case '+':
		switch {
		case bothConst:
			return ConstBig(new(big.Int).Add(a.Tok.Num, b.Tok.Num))
		case a.IsConst(0):
			return b
		case b.IsConst(0):
			return a
		}

	case '-':
		switch {
		case bothConst:
			return ConstBig(new(big.Int).Sub(a.Tok.Num, b.Tok.Num))
		case a.IsConst(0):
			return Mul(Const(-1), b)
		case b.IsConst(0):
			return a
		}

	case '*':
		switch {
		case bothConst:
			return ConstBig(new(big.Int).Mul(a.Tok.Num, b.Tok.Num))
		case a.IsConst(0), b.IsConst(0):
			return Const(0)
		case a.IsConst(1):
			return b
		case b.IsConst(1):
			return a
		}

	case '/':
		if bothConst {
			if q, ok := exactQuo(a.Tok.Num, b.Tok.Num); ok {
				return ConstBig(q)
			}
			return keep
		}
		switch {
		case a.IsConst(0):
			return Const(0)
		case b.IsConst(1):
			return a
		case a.Equal(b):
			return Const(1)
		}

	case '^':
		// 0^f is 0 even for f = 0.
		if a.IsConst(0) {
			return Const(0)
		}
		return s.power(a, b, keep)
	}
	return keep
}

// power folds constant powers and applies f^0, 1^f and f^1. fallback is
// returned when nothing applies.
func (s Simplifier) power(a, b, fallback *Node) *Node {
	if a.isConst() && b.isConst() {
		if v, ok := s.foldPow(a.Tok.Num, b.Tok.Num); ok {
			return ConstBig(v)
		}
	}
	switch {
	case a.IsConst(0):
		return Const(0)
	case b.IsConst(0):
		return Const(1)
	case a.IsConst(1):
		return Const(1)
	case b.IsConst(1):
		return a
	}
	return fallback
}

func unary(tok Token, a *Node) *Node {
	switch Func1(tok.Value) {
	case Ln:
		if a.IsConst(1) {
			return Const(0)
		}
	case Cos, Exp:
		if a.IsConst(0) {
			return Const(1)
		}
	case Sin, Tan:
		if a.IsConst(0) {
			return Const(0)
		}
	}
	return &Node{Tok: Token{Kind: UnaryFunction, Value: tok.Value}, Left: a}
}

func (s Simplifier) binary(tok Token, a, b *Node) *Node {
	switch Func2(tok.Value) {
	case Log:
		switch {
		case a.Equal(b):
			return Const(1)
		case b.IsConst(1):
			return Const(0)
		}
	case PowFn:
		// Whatever survives becomes the canonical '^' operator node.
		return s.power(a, b, Power(a, b))
	}
	return &Node{Tok: Token{Kind: BinaryFunction, Value: tok.Value}, Left: a, Right: b}
}

func exactQuo(x, y *big.Int) (*big.Int, bool) {
	if y.Sign() == 0 {
		return nil, false
	}
	q, r := new(big.Int).QuoRem(x, y, new(big.Int))
	if r.Sign() != 0 {
		return nil, false
	}
	return q, true
}

func (s Simplifier) foldPow(base, exp *big.Int) (*big.Int, bool) {
	limit := s.MaxExponent
	if limit <= 0 {
		limit = DefaultMaxExponent
	}
	return boundedExp(base, exp, limit)
}

// boundedExp computes base^exp when 0 <= exp <= limit and the result fits in
// MaxFoldBits bits. base.BitLen()*exp is an upper bound of the result size.
func boundedExp(base, exp *big.Int, limit int64) (*big.Int, bool) {
	if exp.Sign() < 0 || !exp.IsInt64() || exp.Int64() > limit {
		return nil, false
	}
	if e := exp.Int64(); e > 0 && int64(base.BitLen()) > MaxFoldBits/e {
		return nil, false
	}
	return new(big.Int).Exp(base, exp, nil), true
}
