package mathsolve

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// ============================================================
// JSON Serialization
// ============================================================

var opTags = [...]string{OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpPow: "pow"}

// ToJSON encodes e as tagged JSON, for example
// {"type":"add","left":{"type":"var","name":"x"},"right":{"type":"num","value":"1"}}.
func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(toJSON(e))
	return string(b), err
}

func toJSON(e Expr) map[string]interface{} {
	switch v := e.(type) {
	case *Num:
		return map[string]interface{}{"type": "num", "value": v.String()}
	case *Const:
		return map[string]interface{}{"type": "const", "name": v.String()}
	case *Var:
		return map[string]interface{}{"type": "var", "name": v.name}
	case *Neg:
		return map[string]interface{}{"type": "neg", "arg": toJSON(v.x)}
	case *Binary:
		return map[string]interface{}{"type": opTags[v.op], "left": toJSON(v.left), "right": toJSON(v.right)}
	case *Call:
		return map[string]interface{}{"type": "call", "func": fnNames[v.fn], "arg": toJSON(v.arg)}
	}
	return nil
}

// FromJSON decodes the tagged form produced by ToJSON.
func FromJSON(data map[string]interface{}) (Expr, error) {
	typ, _ := data["type"].(string)
	child := func(key string) (Expr, error) {
		raw, ok := data[key].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s node: missing %q", typ, key)
		}
		return FromJSON(raw)
	}
	name := func() (string, error) {
		s, ok := data["name"].(string)
		if !ok {
			return "", fmt.Errorf("%s node: missing \"name\"", typ)
		}
		return s, nil
	}
	switch typ {
	case "num":
		s, ok := data["value"].(string)
		if !ok {
			return nil, fmt.Errorf("num node: value must be a string")
		}
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return nil, fmt.Errorf("num node: invalid value %q", s)
		}
		return &Num{val: r}, nil
	case "const":
		s, err := name()
		if err != nil {
			return nil, err
		}
		kind, ok := constantNames[s]
		if !ok {
			return nil, fmt.Errorf("unknown constant %q", s)
		}
		return C(kind), nil
	case "var":
		s, err := name()
		if err != nil {
			return nil, err
		}
		return S(s), nil
	case "neg":
		x, err := child("arg")
		if err != nil {
			return nil, err
		}
		return NegOf(x), nil
	case "call":
		s, _ := data["func"].(string)
		fn, ok := functionsByName[s]
		if !ok {
			return nil, fmt.Errorf("unknown function %q", s)
		}
		x, err := child("arg")
		if err != nil {
			return nil, err
		}
		return CallOf(fn, x), nil
	}
	for op, tag := range opTags {
		if tag != typ {
			continue
		}
		l, err := child("left")
		if err != nil {
			return nil, err
		}
		r, err := child("right")
		if err != nil {
			return nil, err
		}
		return binary(Op(op), l, r), nil
	}
	return nil, fmt.Errorf("unknown node type %q", typ)
}
