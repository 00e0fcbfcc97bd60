package symdiff

import (
	"fmt"
	"math/big"
)

// ============================================================
// Token
// ============================================================

// Kind tags a token (and therefore a tree node).
type Kind int

const (
	Variable Kind = iota
	Operator
	UnaryFunction
	BinaryFunction
	IntegerConstant
	LeftParen
	RightParen
	Comma
	EndOfInput
)

var kindNames = [...]string{
	Variable:        "variable",
	Operator:        "operator",
	UnaryFunction:   "function1",
	BinaryFunction:  "function2",
	IntegerConstant: "constant",
	LeftParen:       "left_paren",
	RightParen:      "right_paren",
	Comma:           "comma",
	EndOfInput:      "eof",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Token is the smallest lexical unit. Value holds the operator byte, the
// function table index or the variable id depending on Kind; Num holds the
// literal of an IntegerConstant. Pos is the byte offset in the compacted input
// and takes no part in equality.
type Token struct {
	Kind  Kind
	Value int
	Num   *big.Int
	Pos   int
}

func (t Token) isOp(ops ...byte) bool {
	if t.Kind != Operator {
		return false
	}
	for _, op := range ops {
		if t.Value == int(op) {
			return true
		}
	}
	return false
}

func (t Token) samePayload(o Token) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind == IntegerConstant {
		if t.Num == nil || o.Num == nil {
			return t.Num == o.Num
		}
		return t.Num.Cmp(o.Num) == 0
	}
	return t.Value == o.Value
}

// ============================================================
// Function tables
// ============================================================

// Func1 indexes the one-argument function table.
type Func1 int

const (
	Ln Func1 = iota
	Cos
	Sin
	Tan
	Exp
)

// Func2 indexes the two-argument function table.
type Func2 int

const (
	Log Func2 = iota
	PowFn
)

var (
	func1Names = [...]string{"ln", "cos", "sin", "tan", "exp"}
	func2Names = [...]string{"log", "pow"}
)

func (f Func1) String() string {
	if f < 0 || int(f) >= len(func1Names) {
		return fmt.Sprintf("fun1(%d)", int(f))
	}
	return func1Names[f]
}

func (f Func2) String() string {
	if f < 0 || int(f) >= len(func2Names) {
		return fmt.Sprintf("fun2(%d)", int(f))
	}
	return func2Names[f]
}

// ============================================================
// Node
// ============================================================

// Node is one AST node. Child arity follows the token kind: none for
// constants and variables, Left only for one-argument functions, both for
// operators and two-argument functions. Every pass builds new nodes; no
// subtree is ever shared between two trees.
type Node struct {
	Tok   Token
	Left  *Node
	Right *Node
}

func Const(v int64) *Node { return ConstBig(big.NewInt(v)) }
func ConstBig(v *big.Int) *Node {
	return &Node{Tok: Token{Kind: IntegerConstant, Num: new(big.Int).Set(v)}}
}
func Var(id int) *Node { return &Node{Tok: Token{Kind: Variable, Value: id}} }
func Op(op byte, l, r *Node) *Node {
	return &Node{Tok: Token{Kind: Operator, Value: int(op)}, Left: l, Right: r}
}
func Add(l, r *Node) *Node   { return Op('+', l, r) }
func Sub(l, r *Node) *Node   { return Op('-', l, r) }
func Mul(l, r *Node) *Node   { return Op('*', l, r) }
func Div(l, r *Node) *Node   { return Op('/', l, r) }
func Power(l, r *Node) *Node { return Op('^', l, r) }
func Call1(f Func1, a *Node) *Node {
	return &Node{Tok: Token{Kind: UnaryFunction, Value: int(f)}, Left: a}
}
func Call2(f Func2, a, b *Node) *Node {
	return &Node{Tok: Token{Kind: BinaryFunction, Value: int(f)}, Left: a, Right: b}
}

func (n *Node) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// IsConst reports whether n is the integer constant v.
func (n *Node) IsConst(v int64) bool {
	return n != nil && n.Tok.Kind == IntegerConstant && n.Tok.Num.IsInt64() && n.Tok.Num.Int64() == v
}

func (n *Node) isConst() bool { return n != nil && n.Tok.Kind == IntegerConstant }

// IsOp reports whether n is an operator node for one of ops.
func (n *Node) IsOp(ops ...byte) bool { return n != nil && n.Tok.isOp(ops...) }

// ============================================================
// Tree utilities
// ============================================================

// Copy returns a fully independent deep copy of n.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	tok := n.Tok
	if tok.Num != nil {
		tok.Num = new(big.Int).Set(tok.Num)
	}
	return &Node{Tok: tok, Left: n.Left.Copy(), Right: n.Right.Copy()}
}

// Equal reports structural equality. '+' and '*' nodes also match with their
// operands swapped; '-', '/' and '^' need an exact positional match.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if !n.Tok.samePayload(o.Tok) {
		return false
	}
	if n.IsOp('+', '*') && n.Left != nil && n.Right != nil {
		return (n.Left.Equal(o.Left) && n.Right.Equal(o.Right)) ||
			(n.Left.Equal(o.Right) && n.Right.Equal(o.Left))
	}
	return n.Left.Equal(o.Left) && n.Right.Equal(o.Right)
}

// Release detaches every node of the tree post-order. Releasing nil or an
// already released tree does nothing.
func (n *Node) Release() {
	if n == nil {
		return
	}
	n.Left.Release()
	n.Right.Release()
	n.Left, n.Right = nil, nil
	n.Tok.Num = nil
}

// Size counts the nodes in the tree.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	return 1 + n.Left.Size() + n.Right.Size()
}

// checkArity verifies the child-arity invariant for n itself.
func (n *Node) checkArity() error {
	var want int
	switch n.Tok.Kind {
	case Variable, IntegerConstant:
		want = 0
	case UnaryFunction:
		want = 1
	case Operator, BinaryFunction:
		want = 2
	default:
		return fmt.Errorf("%w: %s token inside a tree", ErrMalformedTree, n.Tok.Kind)
	}
	got := 0
	if n.Left != nil {
		got++
	}
	if n.Right != nil {
		got++
	}
	if got != want || (want == 1 && n.Left == nil) {
		return fmt.Errorf("%w: %s node with %d children, want %d", ErrMalformedTree, n.Tok.Kind, got, want)
	}
	switch k, v := n.Tok.Kind, n.Tok.Value; {
	case k == IntegerConstant && n.Tok.Num == nil:
		return fmt.Errorf("%w: constant without a value", ErrMalformedTree)
	case k == Operator && !n.Tok.isOp('+', '-', '*', '/', '^'):
		return fmt.Errorf("%w: unknown operator %q", ErrMalformedTree, rune(v))
	case k == UnaryFunction && (v < 0 || v >= len(func1Names)):
		return fmt.Errorf("%w: unknown one-argument function %d", ErrMalformedTree, v)
	case k == BinaryFunction && (v < 0 || v >= len(func2Names)):
		return fmt.Errorf("%w: unknown two-argument function %d", ErrMalformedTree, v)
	}
	return nil
}
