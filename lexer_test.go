package symdiff_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symdiff"
)

// ============================================================
// Symbol table tests
// ============================================================

func TestSymbolTable_FirstAppearanceIds(t *testing.T) {
	syms := symdiff.NewSymbolTable()
	assert.Equal(t, 0, syms.Intern("zeta"))
	assert.Equal(t, 1, syms.Intern("alpha"))
	assert.Equal(t, 0, syms.Intern("zeta"))
	assert.Equal(t, 2, syms.Intern("mid"))

	assert.Equal(t, 3, syms.Len())
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, syms.Names())
	assert.Equal(t, []int{1, 2, 0}, syms.Sorted())
}

func TestSymbolTable_Lookup(t *testing.T) {
	syms := symdiff.NewSymbolTable()
	syms.Intern("x")
	id, ok := syms.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, 0, id)
	_, ok = syms.Lookup("y")
	assert.False(t, ok)
	assert.Equal(t, "", syms.Name(7))
}

// ============================================================
// Lexer tests
// ============================================================

func TestTokenize_Kinds(t *testing.T) {
	syms := symdiff.NewSymbolTable()
	toks, err := symdiff.Tokenize("x + 12*ln(y)", syms)
	require.NoError(t, err)

	want := []symdiff.Kind{
		symdiff.Variable, symdiff.Operator, symdiff.IntegerConstant, symdiff.Operator,
		symdiff.UnaryFunction, symdiff.LeftParen, symdiff.Variable, symdiff.RightParen,
		symdiff.EndOfInput,
	}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind, "token %d", i)
	}
	assert.Equal(t, int('+'), toks[1].Value)
	assert.Equal(t, "12", toks[2].Num.String())
	assert.Equal(t, int(symdiff.Ln), toks[4].Value)
	assert.Equal(t, []int{0, 1, 2, 4, 5, 7, 8, 9, 10}, positions(toks))
	assert.Equal(t, []string{"x", "y"}, syms.Names())
}

func positions(toks []symdiff.Token) []int {
	out := make([]int, len(toks))
	for i, t := range toks {
		out[i] = t.Pos
	}
	return out
}

func TestTokenize_WordBoundary(t *testing.T) {
	tests := []struct {
		src  string
		kind symdiff.Kind
		name string
	}{
		{"lnx", symdiff.Variable, "lnx"},
		{"cosine", symdiff.Variable, "cosine"},
		{"logx", symdiff.Variable, "logx"},
		{"power", symdiff.Variable, "power"},
		{"ln", symdiff.UnaryFunction, ""},
		{"exp", symdiff.UnaryFunction, ""},
		{"pow", symdiff.BinaryFunction, ""},
		{"sin2", symdiff.UnaryFunction, ""},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			syms := symdiff.NewSymbolTable()
			toks, err := symdiff.Tokenize(tt.src, syms)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, toks[0].Kind)
			if tt.name != "" {
				assert.Equal(t, tt.name, syms.Name(toks[0].Value))
			}
		})
	}
}

func TestTokenize_WhitespaceIgnoredEverywhere(t *testing.T) {
	syms := symdiff.NewSymbolTable()
	toks, err := symdiff.Tokenize(" x y +\t1 2\n", syms)
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, "xy", syms.Name(toks[0].Value))
	assert.Equal(t, "12", toks[2].Num.String())
}

func TestTokenize_BigConstant(t *testing.T) {
	toks, err := symdiff.Tokenize("123456789012345678901234567890", symdiff.NewSymbolTable())
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", toks[0].Num.String())
}

func TestTokenize_Empty(t *testing.T) {
	toks, err := symdiff.Tokenize("   ", symdiff.NewSymbolTable())
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, symdiff.EndOfInput, toks[0].Kind)
}

func TestTokenize_UndefinedCharacter(t *testing.T) {
	tests := []struct {
		src  string
		pos  int
		char rune
	}{
		{"x+X", 2, 'X'},
		{"x $ 1", 1, '$'},
		{"x_1", 1, '_'},
		{"2.5", 1, '.'},
		{"x+é", 2, 'é'},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := symdiff.Tokenize(tt.src, symdiff.NewSymbolTable())
			var lexErr *symdiff.LexError
			require.True(t, errors.As(err, &lexErr), "got %v", err)
			assert.Equal(t, tt.pos, lexErr.Pos)
			assert.Equal(t, tt.char, lexErr.Char)
		})
	}
}

func TestLexer_Incremental(t *testing.T) {
	lx := symdiff.NewLexer("a , b", symdiff.NewSymbolTable())
	assert.Equal(t, "a,b", lx.Input())
	var kinds []symdiff.Kind
	for {
		tok, err := lx.Next()
		require.NoError(t, err)
		kinds = append(kinds, tok.Kind)
		if tok.Kind == symdiff.EndOfInput {
			break
		}
	}
	assert.Equal(t, []symdiff.Kind{symdiff.Variable, symdiff.Comma, symdiff.Variable, symdiff.EndOfInput}, kinds)

	// EndOfInput repeats once the buffer is exhausted.
	tok, err := lx.Next()
	require.NoError(t, err)
	assert.Equal(t, symdiff.EndOfInput, tok.Kind)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "function2", symdiff.BinaryFunction.String())
	assert.Equal(t, "kind(42)", symdiff.Kind(42).String())
	assert.Equal(t, "tan", symdiff.Tan.String())
	assert.Equal(t, "pow", symdiff.PowFn.String())
}
