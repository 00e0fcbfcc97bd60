package symdiff

import (
	"math/big"
	"sort"
	"strings"
	"unicode"
)

// ============================================================
// Symbol table
// ============================================================

// SymbolTable interns variable names. Ids follow first appearance and never
// change; Sorted gives the lexicographic order used for output.
type SymbolTable struct {
	names []string
	ids   map[string]int
	order []int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{ids: map[string]int{}}
}

// Intern returns the id of name, assigning the next id on first sight.
func (s *SymbolTable) Intern(name string) int {
	if id, ok := s.ids[name]; ok {
		return id
	}
	id := len(s.names)
	s.names = append(s.names, name)
	s.ids[name] = id
	at := sort.Search(len(s.order), func(i int) bool { return s.names[s.order[i]] > name })
	s.order = append(s.order, 0)
	copy(s.order[at+1:], s.order[at:])
	s.order[at] = id
	return id
}

// Lookup returns the id of an already interned name.
func (s *SymbolTable) Lookup(name string) (int, bool) {
	id, ok := s.ids[name]
	return id, ok
}

// Name returns the name for id, or "" when id is unknown.
func (s *SymbolTable) Name(id int) string {
	if s == nil || id < 0 || id >= len(s.names) {
		return ""
	}
	return s.names[id]
}

func (s *SymbolTable) Len() int { return len(s.names) }

// Names returns the names in first-appearance order.
func (s *SymbolTable) Names() []string { return append([]string(nil), s.names...) }

// Sorted returns the ids in ascending lexicographic order of their names.
func (s *SymbolTable) Sorted() []int { return append([]int(nil), s.order...) }

// ============================================================
// Lexer
// ============================================================

// Lexer produces tokens on demand from a compacted input buffer.
type Lexer struct {
	src  string
	pos  int
	syms *SymbolTable
}

// NewLexer drops every whitespace character from src, so blanks inside a
// name or a number are ignored, and interns variables into syms.
func NewLexer(src string, syms *SymbolTable) *Lexer {
	return &Lexer{src: compact(src), syms: syms}
}

func compact(src string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, src)
}

// Input returns the compacted buffer the lexer works on.
func (l *Lexer) Input() string { return l.src }

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Next returns the next token, EndOfInput once the buffer is exhausted.
func (l *Lexer) Next() (Token, error) {
	if l.pos >= len(l.src) {
		return Token{Kind: EndOfInput, Pos: l.pos}, nil
	}
	start := l.pos
	c := l.src[start]
	switch c {
	case '(':
		l.pos++
		return Token{Kind: LeftParen, Pos: start}, nil
	case ')':
		l.pos++
		return Token{Kind: RightParen, Pos: start}, nil
	case ',':
		l.pos++
		return Token{Kind: Comma, Pos: start}, nil
	case '^', '*', '/', '+', '-':
		l.pos++
		return Token{Kind: Operator, Value: int(c), Pos: start}, nil
	}

	if isDigit(c) {
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		v, _ := new(big.Int).SetString(l.src[start:l.pos], 10)
		return Token{Kind: IntegerConstant, Num: v, Pos: start}, nil
	}

	if !isLower(c) {
		r := []rune(l.src[start:])[0]
		return Token{}, &LexError{Pos: start, Char: r}
	}

	rest := l.src[start:]
	for i, name := range func1Names {
		if l.matchWord(rest, name) {
			l.pos += len(name)
			return Token{Kind: UnaryFunction, Value: i, Pos: start}, nil
		}
	}
	for i, name := range func2Names {
		if l.matchWord(rest, name) {
			l.pos += len(name)
			return Token{Kind: BinaryFunction, Value: i, Pos: start}, nil
		}
	}

	for l.pos < len(l.src) && isLower(l.src[l.pos]) {
		l.pos++
	}
	id := l.syms.Intern(l.src[start:l.pos])
	return Token{Kind: Variable, Value: id, Pos: start}, nil
}

// matchWord is maximal munch with a word boundary: "lnx" is not "ln".
func (l *Lexer) matchWord(rest, name string) bool {
	if !strings.HasPrefix(rest, name) {
		return false
	}
	return len(rest) == len(name) || !isLower(rest[len(name)])
}

// Tokenize materialises the whole token sequence, trailing EndOfInput
// included.
func Tokenize(src string, syms *SymbolTable) ([]Token, error) {
	lx := NewLexer(src, syms)
	var toks []Token
	for {
		t, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.Kind == EndOfInput {
			return toks, nil
		}
	}
}
