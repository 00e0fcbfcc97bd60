package symdiff

// ============================================================
// Parser: range-splitting recursive descent
// ============================================================
//
//	expr   := term (('+'|'-') term)*
//	term   := ('+'|'-') term | pow (('*'|'/') pow)*
//	pow    := ('+'|'-') pow | factor ('^' pow)?
//	factor := INT | VAR | '(' expr ')' | FUN1 '(' expr ')'
//	        | FUN2 '(' expr ',' expr ')' | ('+'|'-') factor
//
// Every level works on an inclusive [start,end] range of one immutable token
// slice. A unary sign becomes a multiplication by the constant 1 or -1 and
// covers everything to its right at that level, so -x*y is (-1)*(x*y) and
// -2^2 is (-1)*(2^2).

type parser struct {
	toks []Token
}

// Parse lexes src, interning variables into syms, and builds the tree.
func Parse(src string, syms *SymbolTable) (*Node, error) {
	toks, err := Tokenize(src, syms)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens builds a tree from a materialised token sequence ending in
// EndOfInput.
func ParseTokens(toks []Token) (*Node, error) {
	end := len(toks) - 1
	if end >= 0 && toks[end].Kind == EndOfInput {
		end--
	}
	p := &parser{toks: toks}
	return p.expr(0, end)
}

func (p *parser) posOf(i int) int {
	switch {
	case i >= 0 && i < len(p.toks):
		return p.toks[i].Pos
	case len(p.toks) > 0:
		return p.toks[len(p.toks)-1].Pos
	}
	return 0
}

// balanced reports whether [start,end] is non-empty and its parentheses nest
// properly.
func (p *parser) balanced(start, end int) bool {
	if start > end {
		return false
	}
	depth := 0
	for i := start; i <= end; i++ {
		switch p.toks[i].Kind {
		case LeftParen:
			depth++
		case RightParen:
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// unarySign reports whether the '+'/'-' at i is a sign rather than a binary
// operator: it opens the range or follows another operator, '(' or ','.
func (p *parser) unarySign(start, i int) bool {
	if i == start {
		return true
	}
	switch prev := p.toks[i-1]; prev.Kind {
	case Operator, LeftParen, Comma:
		return true
	}
	return false
}

// leadingSign returns the constant for a '+'/'-' token at start.
func (p *parser) leadingSign(start int) (int64, bool) {
	switch t := p.toks[start]; {
	case t.isOp('+'):
		return 1, true
	case t.isOp('-'):
		return -1, true
	}
	return 0, false
}

func (p *parser) splits(start, end, i int) bool {
	return p.balanced(start, i-1) && p.balanced(i+1, end)
}

func (p *parser) expr(start, end int) (*Node, error) {
	if start > end {
		return nil, parseErr(p.posOf(start), "invalid expression: empty range")
	}
	for i := end; i >= start; i-- {
		t := p.toks[i]
		if !t.isOp('+', '-') || p.unarySign(start, i) || !p.splits(start, end, i) {
			continue
		}
		l, err := p.expr(start, i-1)
		if err != nil {
			return nil, err
		}
		r, err := p.term(i+1, end)
		if err != nil {
			return nil, err
		}
		return Op(byte(t.Value), l, r), nil
	}
	return p.term(start, end)
}

func (p *parser) term(start, end int) (*Node, error) {
	if start > end {
		return nil, parseErr(p.posOf(start), "invalid term: empty range")
	}
	if sign, ok := p.leadingSign(start); ok {
		r, err := p.term(start+1, end)
		if err != nil {
			return nil, err
		}
		return Mul(Const(sign), r), nil
	}
	for i := end; i >= start; i-- {
		t := p.toks[i]
		if !t.isOp('*', '/') || !p.splits(start, end, i) {
			continue
		}
		l, err := p.term(start, i-1)
		if err != nil {
			return nil, err
		}
		r, err := p.pow(i+1, end)
		if err != nil {
			return nil, err
		}
		return Op(byte(t.Value), l, r), nil
	}
	return p.pow(start, end)
}

func (p *parser) pow(start, end int) (*Node, error) {
	if start > end {
		return nil, parseErr(p.posOf(start), "invalid power: empty range")
	}
	if sign, ok := p.leadingSign(start); ok {
		r, err := p.pow(start+1, end)
		if err != nil {
			return nil, err
		}
		return Mul(Const(sign), r), nil
	}
	for i := start; i <= end; i++ {
		if !p.toks[i].isOp('^') || !p.splits(start, end, i) {
			continue
		}
		l, err := p.factor(start, i-1)
		if err != nil {
			return nil, err
		}
		r, err := p.pow(i+1, end)
		if err != nil {
			return nil, err
		}
		return Power(l, r), nil
	}
	return p.factor(start, end)
}

// closes reports whether the '(' at open is matched exactly by the ')' at end.
func (p *parser) closes(open, end int) bool {
	if p.toks[end].Kind != RightParen {
		return false
	}
	depth := 0
	for i := open; i <= end; i++ {
		switch p.toks[i].Kind {
		case LeftParen:
			depth++
		case RightParen:
			depth--
			if depth == 0 {
				return i == end
			}
		}
	}
	return false
}

func (p *parser) factor(start, end int) (*Node, error) {
	if start > end {
		return nil, parseErr(p.posOf(start), "invalid factor: empty range")
	}
	t := p.toks[start]
	switch t.Kind {
	case LeftParen:
		if !p.closes(start, end) {
			return nil, parseErr(t.Pos, "missing matching parenthesis")
		}
		return p.expr(start+1, end-1)

	case UnaryFunction:
		if start+1 > end || p.toks[start+1].Kind != LeftParen || !p.closes(start+1, end) {
			return nil, parseErr(t.Pos, "invalid call of %s: missing parentheses", Func1(t.Value))
		}
		a, err := p.expr(start+2, end-1)
		if err != nil {
			return nil, err
		}
		return Call1(Func1(t.Value), a), nil

	case BinaryFunction:
		if start+1 > end || p.toks[start+1].Kind != LeftParen || !p.closes(start+1, end) {
			return nil, parseErr(t.Pos, "invalid call of %s: missing parentheses", Func2(t.Value))
		}
		lo, hi := start+2, end-1
		for i := lo; i <= hi; i++ {
			if p.toks[i].Kind != Comma || !p.splits(lo, hi, i) {
				continue
			}
			a, err := p.expr(lo, i-1)
			if err != nil {
				return nil, err
			}
			b, err := p.expr(i+1, hi)
			if err != nil {
				return nil, err
			}
			return Call2(Func2(t.Value), a, b), nil
		}
		return nil, parseErr(t.Pos, "can't find a legal comma within %s", Func2(t.Value))

	case Operator:
		if !t.isOp('+', '-') {
			return nil, parseErr(t.Pos, "invalid operator %q at the beginning of a factor", rune(t.Value))
		}
		sign := int64(1)
		if t.Value == '-' {
			sign = -1
		}
		f, err := p.factor(start+1, end)
		if err != nil {
			return nil, err
		}
		return Mul(Const(sign), f), nil

	case IntegerConstant:
		if start != end {
			return nil, parseErr(t.Pos, "unexpected tokens after constant")
		}
		return ConstBig(t.Num), nil

	case Variable:
		if start != end {
			return nil, parseErr(t.Pos, "unexpected tokens after variable")
		}
		return Var(t.Value), nil
	}
	return nil, parseErr(t.Pos, "can't parse factor starting with %s", t.Kind)
}
