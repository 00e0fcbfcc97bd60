package symdiff_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symdiff"
)

func parsed(n *symdiff.Node, _ *symdiff.SymbolTable) *symdiff.Node { return n }

// ============================================================
// Parser tests
// ============================================================

func TestParse_Rendering(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x", "x"},
		{"42", "42"},
		{"1+2+3", "1+2+3"},
		{"1-2-3", "1-2-3"},
		{"1-(2-3)", "1-(2-3)"},
		{"x+y*z", "x+y*z"},
		{"x*y^2", "x*y^2"},
		{"x*y/z", "(x*y)/z"},
		{"2^3^2", "2^(3^2)"},
		{"(x+1)*(x-1)", "(x+1)*(x-1)"},
		{"((x))", "x"},
		{"ln((x+1))", "ln(x+1)"},
		{"log(x, y+1)", "log(x,y+1)"},
		{"pow((x),2)", "pow(x,2)"},
		{"-x", "(-1)*x"},
		{"+x", "1*x"},
		{"x*-y", "x*((-1)*y)"},
		{"x--y", "x-(-1)*y"},
		{"-x^2", "(-1)*x^2"},
		{"-x*y", "(-1)*(x*y)"},
		{"-x/y*z", "(-1)*((x/y)*z)"},
		{"x^-y^2", "x^((-1)*y^2)"},
		{"sin(x)^2", "sin(x)^2"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.src, parsed))
		})
	}
}

func TestParse_Associativity(t *testing.T) {
	syms := symdiff.NewSymbolTable()

	n := mustParse(t, "a-b-c", syms)
	require.True(t, n.IsOp('-'))
	assert.True(t, n.Left.IsOp('-'), "additive level is left-associative")

	n = mustParse(t, "a/b*c", syms)
	require.True(t, n.IsOp('*'))
	assert.True(t, n.Left.IsOp('/'), "multiplicative level is left-associative")

	n = mustParse(t, "a^b^c", syms)
	require.True(t, n.IsOp('^'))
	assert.True(t, n.Right.IsOp('^'), "power level is right-associative")
	assert.True(t, n.Left.IsLeaf())
}

func TestParse_NestedCommas(t *testing.T) {
	syms := symdiff.NewSymbolTable()
	n := mustParse(t, "log(pow(x,2),y)", syms)
	assert.Equal(t, symdiff.BinaryFunction, n.Tok.Kind)
	assert.Equal(t, int(symdiff.Log), n.Tok.Value)
	assert.Equal(t, symdiff.BinaryFunction, n.Left.Tok.Kind)
	assert.Equal(t, int(symdiff.PowFn), n.Left.Tok.Value)
	assert.Equal(t, "log(pow(x,2),y)", symdiff.String(n, syms))

	one := mustParse(t, "exp(ln(x))", syms)
	assert.Equal(t, symdiff.UnaryFunction, one.Tok.Kind)
	assert.Nil(t, one.Right)
	assert.Equal(t, symdiff.UnaryFunction, one.Left.Tok.Kind)
}

func TestParse_Errors(t *testing.T) {
	bad := []string{
		"",
		"x+",
		"*x",
		"x*/y",
		"(x",
		"x)",
		")(",
		"((x)",
		"()",
		"ln+x",
		"ln(x",
		"ln()",
		"log(x)",
		"log(x,)",
		"log(,y)",
		"pow",
		"log(x,(a,b))",
		"x,y",
		"x y(z)",
		"2x",
		"x^",
	}
	for _, src := range bad {
		t.Run(src, func(t *testing.T) {
			n, err := symdiff.Parse(src, symdiff.NewSymbolTable())
			assert.Nil(t, n)
			var perr *symdiff.ParseError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.GreaterOrEqual(t, perr.Pos, 0)
			assert.NotEmpty(t, perr.Reason)
		})
	}
}

func TestParse_LexErrorSurfaces(t *testing.T) {
	_, err := symdiff.Parse("x+Y", symdiff.NewSymbolTable())
	var lexErr *symdiff.LexError
	assert.True(t, errors.As(err, &lexErr))
}

func TestParseTokens_MatchesParse(t *testing.T) {
	for _, src := range []string{"x^2+3*y", "log(x,y)/z", "-(a-b)"} {
		syms := symdiff.NewSymbolTable()
		toks, err := symdiff.Tokenize(src, syms)
		require.NoError(t, err)
		fromToks, err := symdiff.ParseTokens(toks)
		require.NoError(t, err)
		assert.True(t, fromToks.Equal(mustParse(t, src, syms)), src)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	srcs := []string{
		"x+1",
		"a-b+c",
		"1-(2-3)",
		"x*y/z",
		"x/(y*z)",
		"2^3^2",
		"(x^y)^z",
		"ln(x)^2",
		"log(x+1,y*z)",
		"pow(x,y)-exp(sin(x)*cos(y))",
		"(a+b)*(c-d)/tan(e)",
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			syms := symdiff.NewSymbolTable()
			n := mustParse(t, src, syms)
			again := mustParse(t, symdiff.String(n, syms), syms)
			assert.True(t, n.Equal(again), "%s -> %s", src, symdiff.String(again, syms))
		})
	}
}
