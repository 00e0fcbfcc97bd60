package symdiff

import (
	"strconv"
	"strings"
)

// ============================================================
// Rendering
// ============================================================

// String renders n in infix form, resolving variable ids through syms.
//
// '+' and '-' are lowest and left-associative: only a '-' right operand of
// '-' is parenthesised. '*' and '/' parenthesise any '+', '-', '*' or '/'
// operand. '^' parenthesises every binary-operator operand. Negative
// constants and zero are always parenthesised.
func String(n *Node, syms *SymbolTable) string {
	var b strings.Builder
	writeInfix(&b, n, syms)
	return b.String()
}

func writeInfix(b *strings.Builder, n *Node, syms *SymbolTable) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	switch n.Tok.Kind {
	case Variable:
		b.WriteString(varName(n.Tok.Value, syms))
	case IntegerConstant:
		if n.Tok.Num.Sign() <= 0 {
			b.WriteString("(" + n.Tok.Num.String() + ")")
		} else {
			b.WriteString(n.Tok.Num.String())
		}
	case UnaryFunction:
		b.WriteString(Func1(n.Tok.Value).String() + "(")
		writeInfix(b, n.Left, syms)
		b.WriteByte(')')
	case BinaryFunction:
		b.WriteString(Func2(n.Tok.Value).String() + "(")
		writeInfix(b, n.Left, syms)
		b.WriteByte(',')
		writeInfix(b, n.Right, syms)
		b.WriteByte(')')
	case Operator:
		op := byte(n.Tok.Value)
		var wrapL, wrapR bool
		switch op {
		case '+', '-':
			wrapR = op == '-' && n.Right.IsOp('-')
		case '*', '/':
			wrapL = n.Left.IsOp('+', '-', '*', '/')
			wrapR = n.Right.IsOp('+', '-', '*', '/')
		case '^':
			wrapL = n.Left.IsOp('+', '-', '*', '/', '^')
			wrapR = n.Right.IsOp('+', '-', '*', '/', '^')
		}
		writeWrapped(b, n.Left, syms, wrapL)
		b.WriteByte(op)
		writeWrapped(b, n.Right, syms, wrapR)
	default:
		b.WriteString("<" + n.Tok.Kind.String() + ">")
	}
}

func writeWrapped(b *strings.Builder, n *Node, syms *SymbolTable, wrap bool) {
	if wrap {
		b.WriteByte('(')
	}
	writeInfix(b, n, syms)
	if wrap {
		b.WriteByte(')')
	}
}

func varName(id int, syms *SymbolTable) string {
	if name := syms.Name(id); name != "" {
		return name
	}
	return "v" + strconv.Itoa(id)
}

// LaTeX renders n as a LaTeX math fragment.
func LaTeX(n *Node, syms *SymbolTable) string {
	if n == nil {
		return ""
	}
	switch n.Tok.Kind {
	case Variable:
		return varName(n.Tok.Value, syms)
	case IntegerConstant:
		if n.Tok.Num.Sign() <= 0 {
			return "\\left(" + n.Tok.Num.String() + "\\right)"
		}
		return n.Tok.Num.String()
	case UnaryFunction:
		if Func1(n.Tok.Value) == Exp {
			return "e^{" + LaTeX(n.Left, syms) + "}"
		}
		return "\\" + Func1(n.Tok.Value).String() + "\\left(" + LaTeX(n.Left, syms) + "\\right)"
	case BinaryFunction:
		if Func2(n.Tok.Value) == Log {
			return "\\log_{" + LaTeX(n.Left, syms) + "}\\left(" + LaTeX(n.Right, syms) + "\\right)"
		}
		return "{" + latexOperand(n.Left, syms, true) + "}^{" + LaTeX(n.Right, syms) + "}"
	case Operator:
		l, r := n.Left, n.Right
		switch n.Tok.Value {
		case '+':
			return LaTeX(l, syms) + " + " + LaTeX(r, syms)
		case '-':
			rs := LaTeX(r, syms)
			if r.IsOp('+', '-') {
				rs = "\\left(" + rs + "\\right)"
			}
			return LaTeX(l, syms) + " - " + rs
		case '*':
			return latexOperand(l, syms, false) + " \\cdot " + latexOperand(r, syms, false)
		case '/':
			return "\\frac{" + LaTeX(l, syms) + "}{" + LaTeX(r, syms) + "}"
		case '^':
			return "{" + latexOperand(l, syms, true) + "}^{" + LaTeX(r, syms) + "}"
		}
	}
	return ""
}

func latexOperand(n *Node, syms *SymbolTable, base bool) string {
	s := LaTeX(n, syms)
	if n.IsOp('+', '-') || (base && n.IsOp('*', '/', '^')) {
		return "\\left(" + s + "\\right)"
	}
	return s
}
