package symdiff_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symdiff"
)

// ============================================================
// Exact evaluation tests
// ============================================================

func TestEval(t *testing.T) {
	tests := []struct {
		src  string
		want string
		ok   bool
	}{
		{"1+2*3", "7", true},
		{"(1+2)*3", "9", true},
		{"10-4-3", "3", true},
		{"2*3^2", "18", true},
		{"84/7/2", "6", true},
		{"3^40", "12157665459056928801", true},
		{"100/7", "", false},
		{"1/0", "", false},
		{"2^(0-1)", "", false},
		{"x+1", "", false},
		{"ln(1)", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v, ok := symdiff.Eval(mustParse(t, tt.src, symdiff.NewSymbolTable()))
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, v.String())
			}
		})
	}

	_, ok := symdiff.Eval(nil)
	assert.False(t, ok)
}

func TestEval_DoesNotAliasConstants(t *testing.T) {
	n := symdiff.Const(5)
	v, ok := symdiff.Eval(n)
	require.True(t, ok)
	v.SetInt64(9)
	assert.True(t, n.IsConst(5))
}

// ============================================================
// Numeric evaluation tests
// ============================================================

func TestEvalFloat(t *testing.T) {
	env := map[string]float64{"x": 2, "y": 8}
	tests := []struct {
		src  string
		want float64
	}{
		{"x^2-4*x+4", 0},
		{"y/x", 4},
		{"log(x,y)", 3},
		{"pow(y,1/3)", 2},
		{"exp(ln(y))", 8},
		{"sin(x)^2+cos(x)^2", 1},
		{"tan(0*x)", 0},
		{"-x", -2},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			syms := symdiff.NewSymbolTable()
			got, err := symdiff.EvalFloat(mustParse(t, tt.src, syms), syms, env)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvalFloat_Errors(t *testing.T) {
	syms := symdiff.NewSymbolTable()
	_, err := symdiff.EvalFloat(mustParse(t, "x+z", syms), syms, map[string]float64{"x": 1})
	assert.ErrorContains(t, err, `unbound variable "z"`)

	_, err = symdiff.EvalFloat(nil, syms, nil)
	assert.True(t, errors.Is(err, symdiff.ErrNilTree))

	_, err = symdiff.EvalFloat(symdiff.Call1(symdiff.Func1(12), symdiff.Const(1)), syms, nil)
	assert.True(t, errors.Is(err, symdiff.ErrMalformedTree))

	v, err := symdiff.EvalFloat(mustParse(t, "1/0", syms), syms, nil)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))
}

func TestEval_PowerBitBudget(t *testing.T) {
	v, ok := symdiff.Eval(mustParse(t, "(9^64)^64", symdiff.NewSymbolTable()))
	require.True(t, ok)
	assert.LessOrEqual(t, v.BitLen(), symdiff.MaxFoldBits)

	_, ok = symdiff.Eval(mustParse(t, "((9^64)^64)^64", symdiff.NewSymbolTable()))
	assert.False(t, ok)
	_, ok = symdiff.Eval(mustParse(t, "3^60000", symdiff.NewSymbolTable()))
	assert.False(t, ok)
}
