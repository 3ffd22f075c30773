// Package logging sets up the process-wide structured logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"cubefield/internal/config"
)

// Environment overrides honoured when LoggerConfig.AllowEnvOverride is set.
const (
	EnvLevel = "CUBEFIELD_LOG_LEVEL"
	EnvFile  = "CUBEFIELD_LOG_FILE"
)

// Prefix tags every log line written by the game.
const Prefix = "cubefield"

// Start builds the logger described by cfg and installs it as the default
// logger. The returned function closes the log file, if any.
func Start(cfg config.LoggerConfig) (*log.Logger, func() error, error) {
	return start(cfg, os.Getenv, os.Stdout, os.Stderr)
}

func start(cfg config.LoggerConfig, getenv func(string) string, stdout, stderr io.Writer) (*log.Logger, func() error, error) {
	if cfg.AllowEnvOverride {
		if v := getenv(EnvLevel); v != "" {
			cfg.Level = v
		}
		if v := getenv(EnvFile); v != "" {
			cfg.File = v
		}
	}

	level, err := log.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, nil, fmt.Errorf("logger level %q: %w", cfg.Level, err)
	}
	formatter, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = stderr
	if cfg.Stdout {
		out = stdout
	}
	closer := func() error { return nil }
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(out, f)
		closer = f.Close
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		Prefix:          Prefix,
	})
	log.SetDefault(logger)
	return logger, closer, nil
}

func parseFormat(name string) (log.Formatter, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("unknown logger format %q", name)
	}
}
