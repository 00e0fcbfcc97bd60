package symdiff

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// ============================================================
// JSON Serialization
// ============================================================

// ToJSON encodes a tree as nested objects:
//
//	{"type":"const","value":"5"}
//	{"type":"var","name":"x"}
//	{"type":"op","op":"+","left":{...},"right":{...}}
//	{"type":"func","name":"log","args":[{...},{...}]}
func ToJSON(n *Node, syms *SymbolTable) (string, error) {
	m, err := TreeMap(n, syms)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(m)
	return string(b), err
}

// TreeMap converts a tree to its generic map form, ready for any encoder.
func TreeMap(n *Node, syms *SymbolTable) (map[string]interface{}, error) {
	if n == nil {
		return nil, ErrNilTree
	}
	if err := n.checkArity(); err != nil {
		return nil, err
	}
	switch n.Tok.Kind {
	case IntegerConstant:
		return map[string]interface{}{"type": "const", "value": n.Tok.Num.String()}, nil
	case Variable:
		return map[string]interface{}{"type": "var", "name": varName(n.Tok.Value, syms)}, nil
	case Operator:
		l, err := TreeMap(n.Left, syms)
		if err != nil {
			return nil, err
		}
		r, err := TreeMap(n.Right, syms)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"type": "op", "op": string(rune(n.Tok.Value)), "left": l, "right": r}, nil
	}

	name := Func1(n.Tok.Value).String()
	kids := []*Node{n.Left}
	if n.Tok.Kind == BinaryFunction {
		name = Func2(n.Tok.Value).String()
		kids = append(kids, n.Right)
	}
	args := make([]interface{}, len(kids))
	for i, k := range kids {
		m, err := TreeMap(k, syms)
		if err != nil {
			return nil, err
		}
		args[i] = m
	}
	return map[string]interface{}{"type": "func", "name": name, "args": args}, nil
}

// FromJSON decodes the map form produced by TreeMap or by decoding ToJSON
// output, interning variable names into syms.
func FromJSON(data map[string]interface{}, syms *SymbolTable) (*Node, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typ, ok := data["type"].(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	subNode := func(field string, v interface{}) (*Node, error) {
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %s must be an object", typ, field)
		}
		n, err := FromJSON(m, syms)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return n, nil
	}

	switch typ {
	case "const":
		val, err := subString("value")
		if err != nil {
			return nil, err
		}
		v, ok := new(big.Int).SetString(val, 10)
		if !ok {
			return nil, fmt.Errorf("invalid const value: %s", val)
		}
		return ConstBig(v), nil

	case "var":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		for i := 0; i < len(name); i++ {
			if !isLower(name[i]) {
				return nil, fmt.Errorf("var: invalid name %q", name)
			}
		}
		if _, ok := lookupFunc1(name); ok {
			return nil, fmt.Errorf("var: %q is a function name", name)
		}
		if _, ok := lookupFunc2(name); ok {
			return nil, fmt.Errorf("var: %q is a function name", name)
		}
		return Var(syms.Intern(name)), nil

	case "op":
		op, err := subString("op")
		if err != nil {
			return nil, err
		}
		if len(op) != 1 || !(Token{Kind: Operator, Value: int(op[0])}).isOp('+', '-', '*', '/', '^') {
			return nil, fmt.Errorf("op: unknown operator %q", op)
		}
		l, err := subNode("left", data["left"])
		if err != nil {
			return nil, err
		}
		r, err := subNode("right", data["right"])
		if err != nil {
			return nil, err
		}
		return Op(op[0], l, r), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		raw, ok := data["args"].([]interface{})
		if !ok {
			return nil, fmt.Errorf("func: %q must be an array", "args")
		}
		args := make([]*Node, len(raw))
		for i, it := range raw {
			a, err := subNode(fmt.Sprintf("args[%d]", i), it)
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		if f, ok := lookupFunc1(name); ok && len(args) == 1 {
			return Call1(f, args[0]), nil
		}
		if f, ok := lookupFunc2(name); ok && len(args) == 2 {
			return Call2(f, args[0], args[1]), nil
		}
		return nil, fmt.Errorf("func: unknown function %s/%d", name, len(args))
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}

func lookupFunc1(name string) (Func1, bool) {
	for i, n := range func1Names {
		if n == name {
			return Func1(i), true
		}
	}
	return 0, false
}

func lookupFunc2(name string) (Func2, bool) {
	for i, n := range func2Names {
		if n == name {
			return Func2(i), true
		}
	}
	return 0, false
}
