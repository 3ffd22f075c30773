package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"cubefield/internal/config"
)

func noEnv(string) string { return "" }

func TestStartWritesToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := config.Default().Logger

	logger, closeLog, err := start(cfg, noEnv, &stdout, &stderr)
	if err != nil {
		t.Fatalf("start() failed: %v", err)
	}
	defer closeLog()

	logger.Info("window opened", "title", "Cubefield")
	if !strings.Contains(stdout.String(), "window opened") {
		t.Errorf("stdout = %q, expected the message", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, expected nothing", stderr.String())
	}
	if log.Default() != logger {
		t.Error("logger was not installed as the default")
	}
}

func TestStartLevelFilter(t *testing.T) {
	var stdout bytes.Buffer
	cfg := config.Default().Logger
	cfg.Level = "warn"

	logger, _, err := start(cfg, noEnv, &stdout, &stdout)
	if err != nil {
		t.Fatalf("start() failed: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(stdout.String(), "hidden") || !strings.Contains(stdout.String(), "shown") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestStartEnvOverride(t *testing.T) {
	file := filepath.Join(t.TempDir(), "game.log")
	env := map[string]string{EnvLevel: "debug", EnvFile: file}
	getenv := func(k string) string { return env[k] }

	tests := []struct {
		name      string
		allow     bool
		wantDebug bool
	}{
		{"allowed", true, true},
		{"ignored", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout bytes.Buffer
			cfg := config.Default().Logger
			cfg.AllowEnvOverride = tc.allow

			logger, closeLog, err := start(cfg, getenv, &stdout, &stdout)
			if err != nil {
				t.Fatalf("start() failed: %v", err)
			}
			logger.Debug("probe")
			if err := closeLog(); err != nil {
				t.Fatalf("close failed: %v", err)
			}

			if got := strings.Contains(stdout.String(), "probe"); got != tc.wantDebug {
				t.Errorf("debug line written = %v, expected %v", got, tc.wantDebug)
			}
			if tc.allow {
				data, err := os.ReadFile(file)
				if err != nil || !strings.Contains(string(data), "probe") {
					t.Errorf("log file = %q (%v), expected the debug line", data, err)
				}
			}
		})
	}
}

func TestStartJSONFormat(t *testing.T) {
	var stdout bytes.Buffer
	cfg := config.Default().Logger
	cfg.Format = "json"

	logger, _, err := start(cfg, noEnv, &stdout, &stdout)
	if err != nil {
		t.Fatalf("start() failed: %v", err)
	}
	logger.Info("hello", "frame", 1)
	if !strings.HasPrefix(strings.TrimSpace(stdout.String()), "{") {
		t.Errorf("output = %q, expected JSON", stdout.String())
	}
}

func TestStartRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.LoggerConfig)
	}{
		{"level", func(c *config.LoggerConfig) { c.Level = "loud" }},
		{"format", func(c *config.LoggerConfig) { c.Format = "xml" }},
		{"file", func(c *config.LoggerConfig) { c.File = filepath.Join(t.TempDir(), "missing", "x.log") }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default().Logger
			tc.mutate(&cfg)
			if _, _, err := start(cfg, noEnv, &bytes.Buffer{}, &bytes.Buffer{}); err == nil {
				t.Error("start() succeeded, expected an error")
			}
		})
	}
}
