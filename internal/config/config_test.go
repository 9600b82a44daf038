package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{Threads: 4, TimeScale: 1, LogLevel: "info"}
}

func TestValidate_NoTargets(t *testing.T) {
	err := Validate(validConfig(), []string{})
	if err == nil {
		t.Fatal("expected error for no targets")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate_URLNormalization(t *testing.T) {
	targets := []string{"example.com", "https://secure.com", "http://plain.com", "  spaced.org  ", "HTTP://Upper.com"}
	if err := Validate(validConfig(), targets); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"https://example.com", "https://secure.com", "http://plain.com", "https://spaced.org", "HTTP://Upper.com"}
	for i := range want {
		if targets[i] != want[i] {
			t.Errorf("target %d: expected %s, got %s", i, want[i], targets[i])
		}
	}
}

func TestValidate_InvalidTarget(t *testing.T) {
	for _, target := range []string{"", "exa mple.com", "https://"} {
		err := Validate(validConfig(), []string{target})
		if !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("%q: expected ErrInvalidTarget, got %v", target, err)
		}
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(validConfig(), []string{"http://example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "verbose"
	err := Validate(cfg, []string{"http://example.com"})
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
	if !strings.Contains(err.Error(), "verbose") {
		t.Errorf("expected error to mention the level, got %v", err)
	}
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero threads", func(c *Config) { c.Threads = 0 }},
		{"negative threads", func(c *Config) { c.Threads = -1 }},
		{"negative rate", func(c *Config) { c.RateLimit = -5 }},
		{"negative time scale", func(c *Config) { c.TimeScale = -0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := Validate(cfg, []string{"http://example.com"}); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidate_ZeroTimeScaleAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.TimeScale = 0
	if err := Validate(cfg, []string{"example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseArgs_Defaults(t *testing.T) {
	cfg, err := ParseArgs([]string{"-u", "example.com"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TargetURL != "example.com" {
		t.Errorf("expected target example.com, got %s", cfg.TargetURL)
	}
	if cfg.Threads != 4 {
		t.Errorf("expected 4 threads, got %d", cfg.Threads)
	}
	if cfg.TimeScale != 1 {
		t.Errorf("expected time scale 1, got %g", cfg.TimeScale)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info log level, got %s", cfg.LogLevel)
	}
}

func TestParseArgs_EnvOverride(t *testing.T) {
	t.Setenv("MOCKSCAN_THREADS", "12")
	t.Setenv("MOCKSCAN_TIME_SCALE", "0.25")
	t.Setenv("MOCKSCAN_LOG_LEVEL", "debug")

	cfg, err := ParseArgs(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Threads != 12 {
		t.Errorf("expected 12 threads from env, got %d", cfg.Threads)
	}
	if cfg.TimeScale != 0.25 {
		t.Errorf("expected time scale 0.25 from env, got %g", cfg.TimeScale)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug from env, got %s", cfg.LogLevel)
	}
}

func TestParseArgs_InvalidEnvIgnored(t *testing.T) {
	t.Setenv("MOCKSCAN_THREADS", "lots")
	cfg, err := ParseArgs(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Threads != 4 {
		t.Errorf("expected default threads, got %d", cfg.Threads)
	}
}

func TestParseArgs_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockscan.yaml")
	content := "target: http://from-file.test\nthreads: 9\ntime_scale: 0.1\noutput: out.json\nverbose: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseArgs([]string{"-config", path, "-t", "2"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TargetURL != "http://from-file.test" {
		t.Errorf("expected target from file, got %s", cfg.TargetURL)
	}
	if cfg.Threads != 2 {
		t.Errorf("expected flag to win over file, got %d", cfg.Threads)
	}
	if cfg.TimeScale != 0.1 {
		t.Errorf("expected time scale from file, got %g", cfg.TimeScale)
	}
	if cfg.OutputFile != "out.json" || !cfg.Verbose {
		t.Errorf("expected output and verbose from file, got %q %v", cfg.OutputFile, cfg.Verbose)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile("/nonexistent/mockscan.yaml"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for missing file, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("threads: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for bad YAML, got %v", err)
	}
}

func TestParseArgs_UnknownFlag(t *testing.T) {
	if _, err := ParseArgs([]string{"--wordlist", "x"}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("warn", &buf)
	logger.Info("hidden")
	logger.Warn("shown", slog.String("k", "v"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "k=v") {
		t.Errorf("expected warn record, got %q", out)
	}
}
