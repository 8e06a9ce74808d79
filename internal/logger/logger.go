// Package logger configures the application's structured logging.
//
// It uses zerolog: human-friendly console output in the local
// environment, JSON everywhere else.
package logger

import (
	"os"
	"strings"

	"github.com/chislo/manuscripthub/internal/config"
	"github.com/rs/zerolog"
)

// New builds the application logger from config.
//
// The returned logger carries the service and env fields so both apps'
// log streams can be told apart when they share a terminal.
func New(cfg *config.Config, service string) *zerolog.Logger {
	level := parseLevel(cfg.Primary.LogLevel)

	var logger zerolog.Logger
	if cfg.Primary.Env == "local" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	logger = logger.Level(level).With().
		Timestamp().
		Str("service", service).
		Str("env", cfg.Primary.Env).
		Logger()

	return &logger
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
