// Command mcp-server exposes the mathsolve pipeline and tools over HTTP.
//
// Usage:
//
//	mcp-server -config mathsolve.yaml
//
// Endpoints:
//
//	POST /solve-text  solve one equation or expression
//	POST /tool        execute a tool call
//	GET  /schema      tool schema for agent registration
//	GET  /health      liveness check
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/njchilds90/mathsolve"
	"github.com/njchilds90/mathsolve/internal/config"
	"github.com/njchilds90/mathsolve/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	port := flag.Int("port", 0, "port to listen on (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if err := logging.SetupLogger(cfg.Logging); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logger")
	}

	logger := logging.GetLogger("mcp-server")
	engine := mathsolve.NewEngine(mathsolve.WithLogger(logging.GetLogger("engine")))
	app := newApp(cfg, engine, logger)

	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("mathsolve server listening")
		if err := app.Listen(cfg.Addr()); err != nil {
			logger.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
}
