package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathsolve"
	"github.com/njchilds90/mathsolve/internal/config"
)

func testApp(t *testing.T, mutate func(*config.Config)) *fiber.App {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	return newApp(cfg, mathsolve.NewEngine(), zerolog.Nop())
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	status, body := doJSON(t, testApp(t, nil), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["time"])
}

func TestSchema(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/schema", nil)
	resp, err := testApp(t, nil).Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, fiber.MIMEApplicationJSON, resp.Header.Get("Content-Type"))
	var spec struct {
		Tools []map[string]interface{} `json:"tools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&spec))
	assert.Len(t, spec.Tools, 9)
}

func TestSolveText_Success(t *testing.T) {
	status, body := doJSON(t, testApp(t, nil), http.MethodPost, "/solve-text", `{"equation":"2x + 3 = 7"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "2x + 3 = 7", body["original_equation"])
	assert.Equal(t, "2*x + 3 = 7", body["cleaned_equation"])
	assert.Equal(t, "x = 2", body["solution"])
	assert.Equal(t, "linear", body["equation_type"])
	assert.Equal(t, false, body["is_impossible"])
	assert.Equal(t, []interface{}{}, body["common_mistakes"])
	assert.NotContains(t, body, "impossible_reason")

	id, _ := body["request_id"].(string)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestSolveText_Impossible(t *testing.T) {
	status, body := doJSON(t, testApp(t, nil), http.MethodPost, "/solve-text", `{"equation":"sin(x) = 2","tier":"tier_c"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["is_impossible"])
	assert.Equal(t, "No real solution", body["solution"])
	assert.Contains(t, body["impossible_reason"], "range violation")
	assert.NotEmpty(t, body["suggestion"])
}

func TestSolveText_DefaultTierFromConfig(t *testing.T) {
	app := testApp(t, func(c *config.Config) { c.Solver.DefaultTier = "tier_a" })
	_, body := doJSON(t, app, http.MethodPost, "/solve-text", `{"equation":"2x + 3 = 7"}`)
	assert.Contains(t, body["explanation"], "balance scale")
}

func TestSolveText_BadRequests(t *testing.T) {
	app := testApp(t, func(c *config.Config) { c.Solver.MaxInputLength = 8 })
	tests := []struct {
		name   string
		body   string
		status int
		errMsg string
	}{
		{"missing equation", `{}`, http.StatusBadRequest, "No equation provided"},
		{"malformed json", `{"equation":`, http.StatusBadRequest, "invalid request body"},
		{"too long", `{"equation":"x + 1 = 2 + 3"}`, http.StatusRequestEntityTooLarge, "equation is too long"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doJSON(t, app, http.MethodPost, "/solve-text", tc.body)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.errMsg, body["error"])
		})
	}
}

func TestTool(t *testing.T) {
	app := testApp(t, nil)

	status, body := doJSON(t, app, http.MethodPost, "/tool", `{"tool":"normalize","params":{"input":"2x²"}}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2*x^2", body["string"])

	status, body = doJSON(t, app, http.MethodPost, "/tool", `{"tool":"nope"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "unknown tool: nope", body["error"])

	status, _ = doJSON(t, app, http.MethodPost, "/tool", `{"tool":"normalize","extra":true}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = doJSON(t, app, http.MethodPost, "/tool", `{"tool":"normalize"} {}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid JSON: trailing data", body["error"])
}
