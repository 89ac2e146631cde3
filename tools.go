package mathsolve

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================
// MCP Tool Interface
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

// HandleToolCall dispatches one tool request with the default engine.
func HandleToolCall(req ToolRequest) ToolResponse { return defaultEngine.HandleToolCall(req) }

// HandleToolCall dispatches one tool request. Text inputs are normalized
// before they reach the diagnostic tools.
func (e *Engine) HandleToolCall(req ToolRequest) ToolResponse {
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
	optString := func(key string) string {
		s, _ := req.Params[key].(string)
		return s
	}
	getExpr := func(key string) (Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		switch val := v.(type) {
		case string:
			return Parse(Normalize(val))
		case map[string]interface{}:
			return FromJSON(val)
		}
		return nil, fmt.Errorf("param %s must be a string or expression object", key)
	}
	respond := func(x Expr) ToolResponse {
		return ToolResponse{Result: toJSON(x), LaTeX: LaTeX(x), String: x.String()}
	}

	switch req.Tool {
	case "solve_text":
		input, err := getString("input")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		res := e.SolveText(input, optString("tier"))
		return ToolResponse{Result: res, String: res.Answer}

	case "normalize":
		input, err := getString("input")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		canonical := Normalize(input)
		return ToolResponse{Result: canonical, String: canonical}

	case "detect_mistakes":
		input, err := getString("input")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		hits := DetectMistakes(Normalize(input))
		ids := make([]string, len(hits))
		for i, h := range hits {
			ids[i] = h.ID
		}
		return ToolResponse{Result: hits, String: strings.Join(ids, ", ")}

	case "check_impossible":
		input, err := getString("input")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		imp := CheckImpossible(Normalize(input))
		if imp == nil {
			return ToolResponse{Result: map[string]interface{}{"is_impossible": false}, String: "possible"}
		}
		return ToolResponse{Result: imp, String: imp.Reason}

	case "parse":
		input, err := getString("input")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		canonical := Normalize(input)
		if strings.Contains(canonical, "=") {
			eq, err := ParseEquation(canonical)
			if err != nil {
				return ToolResponse{Error: err.Error()}
			}
			return ToolResponse{
				Result: map[string]interface{}{"left": toJSON(eq.Left), "right": toJSON(eq.Right)},
				LaTeX:  LaTeX(eq.Left) + " = " + LaTeX(eq.Right),
				String: eq.String(),
			}
		}
		x, err := Parse(canonical)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(x)

	case "simplify":
		x, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		s, err := simplify(x)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(s)

	case "to_latex":
		x, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: LaTeX(x), LaTeX: LaTeX(x), String: x.String()}

	case "explain":
		class, err := getString("equation_type")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		text := ComposeExplanation(EquationType(class), optString("answer"), ParseAudienceTier(optString("tier")))
		return ToolResponse{Result: text, String: text}

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec(), String: MCPToolSpec()}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ============================================================
// MCP spec
// ============================================================

func MCPToolSpec() string {
	tools := []map[string]interface{}{
		ts("solve_text", "Normalize, screen, solve and explain a math expression or equation", []string{"input"}, map[string]string{"input": "string", "tier": "string"}),
		ts("normalize", "Rewrite loosely formatted math text into canonical form", []string{"input"}, map[string]string{"input": "string"}),
		ts("detect_mistakes", "List common misconceptions the input touches", []string{"input"}, map[string]string{"input": "string"}),
		ts("check_impossible", "Check for range, logarithm and square root domain violations", []string{"input"}, map[string]string{"input": "string"}),
		ts("parse", "Parse text into an expression tree or equation", []string{"input"}, map[string]string{"input": "string"}),
		ts("simplify", "Simplify an expression given as text or expression object", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("to_latex", "Render an expression as LaTeX", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("explain", "Explanation text for an equation class and answer. tier: tier_a, tier_b, tier_c or standard", []string{"equation_type"}, map[string]string{"equation_type": "string", "answer": "string", "tier": "string"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
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
