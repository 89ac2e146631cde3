package mathsolve_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathsolve"
)

// ============================================================
// MCP tool tests
// ============================================================

func call(tool string, params map[string]interface{}) mathsolve.ToolResponse {
	return mathsolve.HandleToolCall(mathsolve.ToolRequest{Tool: tool, Params: params})
}

func TestHandleToolCall_SolveText(t *testing.T) {
	resp := call("solve_text", map[string]interface{}{"input": "2x + 3 = 7", "tier": "tier_b"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "x = 2", resp.String)
	res, ok := resp.Result.(mathsolve.SolveResult)
	require.True(t, ok)
	assert.Equal(t, mathsolve.TypeLinear, res.EquationType)
	assert.Contains(t, res.Explanation, "move all the variable terms")
}

func TestHandleToolCall_Normalize(t *testing.T) {
	resp := call("normalize", map[string]interface{}{"input": "x² + 2x"})
	assert.Equal(t, "x^2 + 2*x", resp.String)
}

func TestHandleToolCall_DetectMistakes(t *testing.T) {
	resp := call("detect_mistakes", map[string]interface{}{"input": "√(-4+1)"})
	assert.Equal(t, "sqrt_addition, negative_sqrt", resp.String)
}

func TestHandleToolCall_CheckImpossible(t *testing.T) {
	resp := call("check_impossible", map[string]interface{}{"input": "log(-5)"})
	imp, ok := resp.Result.(*mathsolve.ImpossibleResult)
	require.True(t, ok)
	assert.Equal(t, "log_domain", imp.Rule)

	resp = call("check_impossible", map[string]interface{}{"input": "log(5)"})
	assert.Equal(t, "possible", resp.String)
}

func TestHandleToolCall_Parse(t *testing.T) {
	resp := call("parse", map[string]interface{}{"input": "x/2 + 1"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "x/2 + 1", resp.String)
	assert.Equal(t, `\frac{x}{2} + 1`, resp.LaTeX)

	resp = call("parse", map[string]interface{}{"input": "2x = 4"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "2*x = 4", resp.String)
	assert.Equal(t, `2 \cdot x = 4`, resp.LaTeX)

	resp = call("parse", map[string]interface{}{"input": "2 +"})
	assert.Equal(t, "parse error at position 2: dangling operator '+'", resp.Error)
}

func TestHandleToolCall_Simplify(t *testing.T) {
	resp := call("simplify", map[string]interface{}{"expr": "x + x + 1"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "2*x + 1", resp.String)

	tree := map[string]interface{}{
		"type":  "mul",
		"left":  map[string]interface{}{"type": "num", "value": "3"},
		"right": map[string]interface{}{"type": "num", "value": "1/6"},
	}
	resp = call("simplify", map[string]interface{}{"expr": tree})
	require.Empty(t, resp.Error)
	assert.Equal(t, "1/2", resp.String)
}

func TestHandleToolCall_ToLaTeX(t *testing.T) {
	resp := call("to_latex", map[string]interface{}{"expr": "sqrt(x)"})
	assert.Equal(t, `\sqrt{x}`, resp.LaTeX)
}

func TestHandleToolCall_Explain(t *testing.T) {
	resp := call("explain", map[string]interface{}{"equation_type": "quadratic", "answer": "x = 2", "tier": "standard"})
	assert.Equal(t, "This is a quadratic equation. We can solve it using the quadratic formula or factoring to find the roots: x = 2.", resp.String)
}

func TestHandleToolCall_Errors(t *testing.T) {
	assert.Equal(t, "missing param: input", call("normalize", map[string]interface{}{}).Error)
	assert.Equal(t, "param input must be a string", call("normalize", map[string]interface{}{"input": 3.0}).Error)
	assert.Equal(t, "unknown tool: nope", call("nope", nil).Error)
	assert.NotEmpty(t, call("simplify", map[string]interface{}{"expr": 1.0}).Error)
}

func TestMCPToolSpec(t *testing.T) {
	var spec struct {
		Tools []struct {
			Name        string                 `json:"name"`
			InputSchema map[string]interface{} `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(mathsolve.MCPToolSpec()), &spec))
	names := make([]string, 0, len(spec.Tools))
	for _, tool := range spec.Tools {
		names = append(names, tool.Name)
		assert.Equal(t, "object", tool.InputSchema["type"])
	}
	assert.ElementsMatch(t, []string{
		"solve_text", "normalize", "detect_mistakes", "check_impossible",
		"parse", "simplify", "to_latex", "explain", "mcp_spec",
	}, names)
}
