// Package symdiff parses integer arithmetic expressions into binary trees,
// differentiates them symbolically with respect to each variable and
// simplifies the results.
//
// Design goals:
//   - Exact integer constants (math/big.Int), no floating point in the core
//   - Pure passes: parsing, differentiation and simplification never mutate
//     their input trees
//   - Fail fast: the first lexical or syntax error aborts the whole call
//   - Deterministic output ordered by variable name
package symdiff

import (
	"github.com/rs/zerolog"
)

// ============================================================
// Pipeline
// ============================================================

// Options tunes the Derive pipeline.
type Options struct {
	Rules       RuleSet
	MaxExponent int64
	// UntilStable re-runs simplification to a fixed point instead of the
	// single pass.
	UntilStable bool
	// Logger receives a debug trace of every intermediate tree. Nil is silent.
	Logger *zerolog.Logger
}

// Derivative is the simplified partial derivative for one variable.
type Derivative struct {
	Var  string
	Raw  *Node
	Tree *Node
}

// Result holds everything one Derive call produced.
type Result struct {
	Input       string
	Symbols     *SymbolTable
	Parsed      *Node
	Expr        *Node
	Derivatives []Derivative
}

// Derive runs text → tokens → tree → simplify → for each variable in
// lexicographic order: differentiate → simplify.
func Derive(src string, opts Options) (*Result, error) {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	simp := Simplifier{MaxExponent: opts.MaxExponent}
	simplify := simp.Simplify
	if opts.UntilStable {
		simplify = simp.UntilStable
	}

	syms := NewSymbolTable()
	parsed, err := Parse(src, syms)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("tree", String(parsed, syms)).Msg("analyzed expression")

	expr := simplify(parsed)
	log.Debug().Str("tree", String(expr, syms)).Msg("optimized expression")

	raws, err := opts.Rules.Gradient(expr, syms)
	if err != nil {
		return nil, err
	}
	res := &Result{Input: src, Symbols: syms, Parsed: parsed, Expr: expr}
	for i, id := range syms.Sorted() {
		name, raw := syms.Name(id), raws[i]
		d := simplify(raw)
		log.Debug().Str("var", name).Str("origin", String(raw, syms)).Str("optimized", String(d, syms)).Msg("derivative")
		res.Derivatives = append(res.Derivatives, Derivative{Var: name, Raw: raw, Tree: d})
	}
	return res, nil
}

// HasVariables reports whether the input mentioned any variable.
func (r *Result) HasVariables() bool { return r.Symbols.Len() > 0 }

// String renders a tree of this result.
func (r *Result) String(n *Node) string { return String(n, r.Symbols) }

// Warning is the line reported when the input has no variables.
func (r *Result) Warning() string {
	return "[warning] No variable in original expression: " + r.String(r.Expr)
}

// Lines returns the text report: "name: derivative" per variable, or the
// single warning line.
func (r *Result) Lines() []string {
	if !r.HasVariables() {
		return []string{r.Warning()}
	}
	out := make([]string, len(r.Derivatives))
	for i, d := range r.Derivatives {
		out[i] = d.Var + ": " + r.String(d.Tree)
	}
	return out
}

// Release frees every tree held by the result.
func (r *Result) Release() {
	r.Parsed.Release()
	r.Expr.Release()
	for _, d := range r.Derivatives {
		d.Raw.Release()
		d.Tree.Release()
	}
}
