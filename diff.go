package symdiff

import "fmt"

// ============================================================
// Differentiation
// ============================================================

// RuleSet selects the derivative table used for one-argument functions.
type RuleSet int

const (
	// LegacyRules keeps the historical table: sin'=a'*(1/cos(a)),
	// tan'=a'*cos(a), ln'=a'*ln(a). The tan and ln entries are known to
	// disagree with calculus and are kept for output compatibility.
	LegacyRules RuleSet = iota
	// CalculusRules uses the textbook derivatives of ln, sin and tan.
	CalculusRules
)

func (r RuleSet) String() string {
	switch r {
	case LegacyRules:
		return "legacy"
	case CalculusRules:
		return "calculus"
	}
	return fmt.Sprintf("rules(%d)", int(r))
}

// ParseRuleSet maps a configuration name to a RuleSet.
func ParseRuleSet(name string) (RuleSet, error) {
	switch name {
	case "", "legacy":
		return LegacyRules, nil
	case "calculus":
		return CalculusRules, nil
	}
	return LegacyRules, fmt.Errorf("unknown rule set %q (want legacy or calculus)", name)
}

// Diff returns ∂n/∂x for the variable id x using LegacyRules.
func Diff(n *Node, x int) (*Node, error) { return LegacyRules.Diff(n, x) }

// Diff returns a new tree for ∂n/∂x. n is never modified and every reused
// subtree is a deep copy.
func (r RuleSet) Diff(n *Node, x int) (*Node, error) {
	if n == nil {
		return nil, ErrNilTree
	}
	if err := n.checkArity(); err != nil {
		return nil, err
	}

	switch n.Tok.Kind {
	case Variable:
		if n.Tok.Value == x {
			return Const(1), nil
		}
		return Const(0), nil
	case IntegerConstant:
		return Const(0), nil
	}

	da, err := r.Diff(n.Left, x)
	if err != nil {
		return nil, err
	}
	var db *Node
	if n.Right != nil {
		if db, err = r.Diff(n.Right, x); err != nil {
			return nil, err
		}
	}
	a, b := n.Left, n.Right

	switch n.Tok.Kind {
	case Operator:
		switch n.Tok.Value {
		case '+':
			return Add(da, db), nil
		case '-':
			return Sub(da, db), nil
		case '*':
			// a'*b + a*b'
			return Add(Mul(da, b.Copy()), Mul(a.Copy(), db)), nil
		case '/':
			// (a'*b - a*b') / b^2
			return Div(
				Sub(Mul(da, b.Copy()), Mul(a.Copy(), db)),
				Power(b.Copy(), Const(2)),
			), nil
		case '^':
			return powerRule(n, da, db), nil
		}

	case UnaryFunction:
		return r.chain(Func1(n.Tok.Value), a, da), nil

	case BinaryFunction:
		switch Func2(n.Tok.Value) {
		case Log:
			// log(a,b) = ln(b)/ln(a):
			// (b'*(ln(a)/b) - a'*(ln(b)/a)) / ln(a)^2
			return Div(
				Sub(
					Mul(db, Div(Call1(Ln, a.Copy()), b.Copy())),
					Mul(da, Div(Call1(Ln, b.Copy()), a.Copy())),
				),
				Power(Call1(Ln, a.Copy()), Const(2)),
			), nil
		case PowFn:
			return powerRule(n, da, db), nil
		}
	}
	return nil, fmt.Errorf("%w: no derivative rule for %s %d", ErrMalformedTree, n.Tok.Kind, n.Tok.Value)
}

// powerRule: (a^b)' = a^b * (a'*b/a + b'*ln(a)). Undefined for a <= 0.
func powerRule(n, da, db *Node) *Node {
	a, b := n.Left, n.Right
	return Mul(
		n.Copy(),
		Add(
			Mul(da, Div(b.Copy(), a.Copy())),
			Mul(db, Call1(Ln, a.Copy())),
		),
	)
}

func (r RuleSet) chain(f Func1, a, da *Node) *Node {
	switch f {
	case Cos:
		return Mul(Const(-1), Mul(da, Call1(Sin, a.Copy())))
	case Exp:
		return Mul(da, Call1(Exp, a.Copy()))
	}
	if r == CalculusRules {
		switch f {
		case Ln:
			return Mul(da, Div(Const(1), a.Copy()))
		case Sin:
			return Mul(da, Call1(Cos, a.Copy()))
		case Tan:
			return Div(da, Power(Call1(Cos, a.Copy()), Const(2)))
		}
	}
	switch f {
	case Ln:
		return Mul(da, Call1(Ln, a.Copy()))
	case Sin:
		return Mul(da, Div(Const(1), Call1(Cos, a.Copy())))
	default: // Tan
		return Mul(da, Call1(Cos, a.Copy()))
	}
}

// Gradient differentiates n with respect to every interned variable, in
// lexicographic order of their names.
func (r RuleSet) Gradient(n *Node, syms *SymbolTable) ([]*Node, error) {
	ids := syms.Sorted()
	out := make([]*Node, len(ids))
	for i, id := range ids {
		d, err := r.Diff(n, id)
		if err != nil {
			return nil, fmt.Errorf("d/d%s: %w", syms.Name(id), err)
		}
		out[i] = d
	}
	return out, nil
}
