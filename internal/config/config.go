// Package config loads settings for the mathsolve server and CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/mathsolve"
	"github.com/njchilds90/mathsolve/internal/logging"
)

type Config struct {
	Server  ServerConfig       `yaml:"server"`
	Logging *logging.LogConfig `yaml:"logging"`
	Solver  SolverConfig       `yaml:"solver"`
}

// ServerConfig holds HTTP settings
type ServerConfig struct {
	Host         string   `yaml:"host"`
	Port         int      `yaml:"port"`
	BodyLimit    int      `yaml:"body_limit"` // bytes
	AllowOrigins []string `yaml:"allow_origins"`
}

// SolverConfig holds pipeline settings
type SolverConfig struct {
	DefaultTier    string `yaml:"default_tier"`
	MaxInputLength int    `yaml:"max_input_length"` // runes
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			BodyLimit:    1 << 20,
			AllowOrigins: []string{"*"},
		},
		Logging: logging.DefaultLogConfig(),
		Solver: SolverConfig{
			DefaultTier:    string(mathsolve.TierStandard),
			MaxInputLength: 500,
		},
	}
}

// Load reads an optional .env file, then the YAML file at path on top of
// the defaults, then applies MATHSOLVE_* environment overrides. An empty
// path skips the YAML step.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if cfg.Logging == nil {
			cfg.Logging = logging.DefaultLogConfig()
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("MATHSOLVE_PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("MATHSOLVE_PORT: %w", err)
		}
		c.Server.Port = n
	}
	if level := os.Getenv("MATHSOLVE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if tier := os.Getenv("MATHSOLVE_DEFAULT_TIER"); tier != "" {
		c.Solver.DefaultTier = tier
	}
	if origins := os.Getenv("MATHSOLVE_CORS_ORIGINS"); origins != "" {
		c.Server.AllowOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.Server.AllowOrigins = append(c.Server.AllowOrigins, o)
			}
		}
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.BodyLimit <= 0 {
		return fmt.Errorf("server.body_limit must be positive")
	}
	if c.Solver.MaxInputLength <= 0 {
		return fmt.Errorf("solver.max_input_length must be positive")
	}
	if c.Solver.DefaultTier != "" && string(mathsolve.ParseAudienceTier(c.Solver.DefaultTier)) != strings.ToLower(strings.TrimSpace(c.Solver.DefaultTier)) {
		return fmt.Errorf("solver.default_tier: unknown tier %q", c.Solver.DefaultTier)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
