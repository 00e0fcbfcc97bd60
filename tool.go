package symdiff

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================
// Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall dispatches one tool request with default engine options.
// Errors are reported in the response, never returned.
func HandleToolCall(req ToolRequest) ToolResponse {
	return HandleToolCallWith(req, Options{})
}

// HandleToolCallWith dispatches one tool request. opts supplies the rule set,
// the folding cap and the until_stable default for requests that leave them
// out.
func HandleToolCallWith(req ToolRequest, opts Options) ToolResponse {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getRules := func() (RuleSet, error) {
		v, ok := req.Params["rules"]
		if !ok {
			return opts.Rules, nil
		}
		s, ok := v.(string)
		if !ok {
			return opts.Rules, fmt.Errorf("param rules must be a string")
		}
		return ParseRuleSet(s)
	}
	getBool := func(key string, def bool) bool {
		b, ok := req.Params[key].(bool)
		if !ok {
			return def
		}
		return b
	}
	simp := Simplifier{MaxExponent: opts.MaxExponent}
	getExpr := func() (*Node, *SymbolTable, error) {
		src, err := getString("expr")
		if err != nil {
			return nil, nil, err
		}
		syms := NewSymbolTable()
		n, err := Parse(src, syms)
		return n, syms, err
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }
	respond := func(n *Node, syms *SymbolTable) ToolResponse {
		s := String(n, syms)
		return ToolResponse{Result: s, String: s, LaTeX: LaTeX(n, syms)}
	}

	switch req.Tool {
	case "parse":
		n, syms, err := getExpr()
		if err != nil {
			return fail(err)
		}
		m, err := TreeMap(n, syms)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: m, String: String(n, syms), LaTeX: LaTeX(n, syms)}

	case "simplify":
		n, syms, err := getExpr()
		if err != nil {
			return fail(err)
		}
		if getBool("until_stable", opts.UntilStable) {
			return respond(simp.UntilStable(n), syms)
		}
		return respond(simp.Simplify(n), syms)

	case "diff":
		n, syms, err := getExpr()
		if err != nil {
			return fail(err)
		}
		name, err := getString("var")
		if err != nil {
			return fail(err)
		}
		rules, err := getRules()
		if err != nil {
			return fail(err)
		}
		// A variable absent from the expression has derivative 0.
		id := syms.Intern(name)
		d, err := rules.Diff(simp.Simplify(n), id)
		if err != nil {
			return fail(err)
		}
		return respond(simp.Simplify(d), syms)

	case "derive":
		src, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		rules, err := getRules()
		if err != nil {
			return fail(err)
		}
		res, err := Derive(src, Options{
			Rules:       rules,
			MaxExponent: opts.MaxExponent,
			UntilStable: getBool("until_stable", opts.UntilStable),
			Logger:      opts.Logger,
		})
		if err != nil {
			return fail(err)
		}
		out := make([]map[string]string, len(res.Derivatives))
		for i, d := range res.Derivatives {
			out[i] = map[string]string{
				"var":        d.Var,
				"derivative": res.String(d.Tree),
				"latex":      LaTeX(d.Tree, res.Symbols),
			}
		}
		return ToolResponse{Result: out, String: strings.Join(res.Lines(), "\n"), LaTeX: LaTeX(res.Expr, res.Symbols)}

	case "to_latex":
		n, syms, err := getExpr()
		if err != nil {
			return fail(err)
		}
		l := LaTeX(n, syms)
		return ToolResponse{Result: l, LaTeX: l}

	case "to_json":
		n, syms, err := getExpr()
		if err != nil {
			return fail(err)
		}
		j, err := ToJSON(n, syms)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: j, String: String(n, syms)}

	case "from_json":
		v, ok := req.Params["tree"].(map[string]interface{})
		if !ok {
			return fail(fmt.Errorf("param tree must be an expression object"))
		}
		syms := NewSymbolTable()
		n, err := FromJSON(v, syms)
		if err != nil {
			return fail(err)
		}
		return respond(n, syms)

	case "tokens":
		src, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		syms := NewSymbolTable()
		toks, err := Tokenize(src, syms)
		if err != nil {
			return fail(err)
		}
		out := make([]string, len(toks))
		for i, t := range toks {
			out[i] = DescribeToken(t, syms)
		}
		return ToolResponse{Result: out, String: strings.Join(out, "\n")}

	case "tool_spec":
		return ToolResponse{Result: ToolSpec(), String: "tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// DescribeToken renders one token the way the token dump prints it.
func DescribeToken(t Token, syms *SymbolTable) string {
	switch t.Kind {
	case Variable:
		return "variable " + varName(t.Value, syms)
	case Operator:
		return "operator " + string(rune(t.Value))
	case UnaryFunction:
		return "function1 " + Func1(t.Value).String()
	case BinaryFunction:
		return "function2 " + Func2(t.Value).String()
	case IntegerConstant:
		return "constant " + t.Num.String()
	}
	return t.Kind.String()
}

// ToolSpec returns the JSON schema of every tool HandleToolCall accepts.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("parse", "Parse an infix expression into its tree", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("simplify", "Simplify an expression (one pass unless until_stable)", []string{"expr"}, map[string]string{"expr": "string", "until_stable": "boolean"}),
		ts("diff", "Simplified partial derivative with respect to var", []string{"expr", "var"}, map[string]string{"expr": "string", "var": "string", "rules": "string"}),
		ts("derive", "Partial derivatives for every variable, ordered by name", []string{"expr"}, map[string]string{"expr": "string", "rules": "string", "until_stable": "boolean"}),
		ts("to_latex", "Render an expression as LaTeX", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("to_json", "Encode an expression tree as a JSON string", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("from_json", "Render a JSON expression tree in infix form", []string{"tree"}, map[string]string{"tree": "object"}),
		ts("tokens", "Dump the token stream of an expression", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
