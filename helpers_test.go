package symdiff_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symdiff"
)

func mustParse(t *testing.T, src string, syms *symdiff.SymbolTable) *symdiff.Node {
	t.Helper()
	n, err := symdiff.Parse(src, syms)
	require.NoError(t, err, "parse %q", src)
	return n
}

// render parses src, applies f and renders the result with the same table.
func render(t *testing.T, src string, f func(*symdiff.Node, *symdiff.SymbolTable) *symdiff.Node) string {
	t.Helper()
	syms := symdiff.NewSymbolTable()
	n := mustParse(t, src, syms)
	return symdiff.String(f(n, syms), syms)
}
