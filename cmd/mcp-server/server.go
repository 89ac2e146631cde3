package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/njchilds90/mathsolve"
	"github.com/njchilds90/mathsolve/internal/config"
)

type solveTextRequest struct {
	Equation *string `json:"equation"`
	Tier     string  `json:"tier"`
}

type solveTextResponse struct {
	Success          bool                   `json:"success"`
	OriginalEquation string                 `json:"original_equation"`
	CleanedEquation  string                 `json:"cleaned_equation"`
	Solution         string                 `json:"solution"`
	Steps            []string               `json:"steps"`
	Explanation      string                 `json:"explanation"`
	EquationType     mathsolve.EquationType `json:"equation_type"`
	IsImpossible     bool                   `json:"is_impossible"`
	ImpossibleReason string                 `json:"impossible_reason,omitempty"`
	Suggestion       string                 `json:"suggestion,omitempty"`
	CommonMistakes   []mathsolve.MistakeHit `json:"common_mistakes"`
	RequestID        string                 `json:"request_id"`
}

type handler struct {
	cfg    *config.Config
	engine *mathsolve.Engine
	log    zerolog.Logger
}

// newApp builds the fiber application with every route registered.
func newApp(cfg *config.Config, engine *mathsolve.Engine, log zerolog.Logger) *fiber.App {
	h := &handler{cfg: cfg, engine: engine, log: log}

	app := fiber.New(fiber.Config{
		AppName:               "mathsolve",
		DisableStartupMessage: true,
		BodyLimit:             cfg.Server.BodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "UTC",
		Output:     log,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Server.AllowOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	app.Get("/health", h.health)
	app.Get("/schema", h.schema)
	app.Post("/tool", h.tool)
	app.Post("/solve-text", h.solveText)

	return app
}

func (h *handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handler) schema(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(mathsolve.MCPToolSpec())
}

func (h *handler) tool(c *fiber.Ctx) error {
	var req mathsolve.ToolRequest
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if dec.More() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON: trailing data")
	}
	resp := h.engine.HandleToolCall(req)
	if resp.Error != "" {
		h.log.Debug().Str("tool", req.Tool).Str("error", resp.Error).Msg("tool call failed")
	}
	return c.JSON(resp)
}

func (h *handler) solveText(c *fiber.Ctx) error {
	requestID := uuid.NewString()
	log := h.log.With().Str("request_id", requestID).Logger()

	var req solveTextRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Equation == nil {
		return fiber.NewError(fiber.StatusBadRequest, "No equation provided")
	}
	if n := utf8.RuneCountInString(*req.Equation); n > h.cfg.Solver.MaxInputLength {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "equation is too long")
	}
	tier := req.Tier
	if tier == "" {
		tier = h.cfg.Solver.DefaultTier
	}

	res := h.engine.SolveText(*req.Equation, tier)
	log.Info().
		Str("equation_type", string(res.EquationType)).
		Bool("is_impossible", res.IsImpossible).
		Msg("solve-text")

	return c.JSON(solveTextResponse{
		Success:          true,
		OriginalEquation: *req.Equation,
		CleanedEquation:  mathsolve.Normalize(*req.Equation),
		Solution:         res.Answer,
		Steps:            res.Steps,
		Explanation:      res.Explanation,
		EquationType:     res.EquationType,
		IsImpossible:     res.IsImpossible,
		ImpossibleReason: res.ImpossibleReason,
		Suggestion:       res.Suggestion,
		CommonMistakes:   res.CommonMistakes,
		RequestID:        requestID,
	})
}
