// Package logging builds the zap loggers used across the engine.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls logger construction. It is deliberately small and
// independent of the extraction config so logging can be wired before any
// document configuration is known.
type Config struct {
	Environment string // "development" or "production"
	Level       string // debug, info, warn, error
	Format      string // "json" or "console"
}

// New builds a zap.Logger from cfg, following the production/development
// split the teacher's logger used, generalized away from a global package
// variable into an explicit constructor suitable for wire injection.
func New(cfg Config) (*zap.Logger, error) {
	var loggerConfig zap.Config

	if cfg.Environment == "production" {
		loggerConfig = zap.NewProductionConfig()
		loggerConfig.Sampling = nil
	} else {
		loggerConfig = zap.NewDevelopmentConfig()
		loggerConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	parsedLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	loggerConfig.Level = zap.NewAtomicLevelAt(parsedLevel)

	loggerConfig.EncoderConfig.TimeKey = "timestamp"
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch cfg.Format {
	case "json":
		loggerConfig.Encoding = "json"
	case "", "console":
		loggerConfig.Encoding = "console"
	default:
		loggerConfig.Encoding = cfg.Format
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// Nop returns a no-op logger, useful for tests and as a safe default.
func Nop() *zap.Logger {
	return zap.NewNop()
}
