package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pickpulse/internal/config"
	"github.com/yourusername/pickpulse/internal/decision"
	"github.com/yourusername/pickpulse/internal/logger"
)

// loadConfig reads the configuration file, falling back to defaults when it
// is missing, overlays AWS secrets when AWS_SECRETS_ENABLED=true and
// validates the result.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return nil, fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newEngine builds the decision engine from the decision section
func newEngine(cfg *config.Config) (*decision.Engine, error) {
	engineCfg, err := decision.FromConfig(&cfg.Decision)
	if err != nil {
		return nil, fmt.Errorf("invalid decision configuration: %w", err)
	}
	return decision.NewEngine(engineCfg), nil
}

// cliLogger logs to stderr at warn unless debug was asked for
func cliLogger(cfg *config.Config) *logrus.Logger {
	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	log.SetOutput(os.Stderr)
	if log.GetLevel() > logrus.WarnLevel && log.GetLevel() < logrus.DebugLevel {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// openInput opens path, or stdin for "-"
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
