package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `
backend:
  base_url: "https://plans.example.com/api"
  api_key: "test-key-123"
  timeout_seconds: 10
trainer:
  id: "42"
log:
  level: "debug"
  file: "/tmp/planview.log"
tailscale:
  enabled: true
  hostname: "plans"
  state_dir: "/var/lib/planview"
stub:
  port: 9000
  fixtures: "fixtures.yaml"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend.BaseURL != "https://plans.example.com/api" {
		t.Errorf("backend.base_url = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.APIKey != "test-key-123" {
		t.Errorf("backend.api_key = %q, want %q", cfg.Backend.APIKey, "test-key-123")
	}
	if got := cfg.Backend.Timeout(); got != 10*time.Second {
		t.Errorf("backend timeout = %v, want 10s", got)
	}
	if cfg.Trainer.ID != "42" {
		t.Errorf("trainer.id = %q, want %q", cfg.Trainer.ID, "42")
	}
	if cfg.Log.SlogLevel() != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", cfg.Log.SlogLevel())
	}
	if !cfg.Tailscale.Enabled || cfg.Tailscale.Hostname != "plans" {
		t.Errorf("tailscale = %+v", cfg.Tailscale)
	}
	if cfg.Stub.Addr() != "127.0.0.1:9000" {
		t.Errorf("stub addr = %q, want 127.0.0.1:9000", cfg.Stub.Addr())
	}
}

// TestDefaults verifies unset optional fields get their defaults.
func TestDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, "backend:\n  base_url: http://localhost:8090\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.Backend.Timeout(); got != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", got)
	}
	if cfg.Log.File != "planview.log" {
		t.Errorf("log.file = %q, want planview.log", cfg.Log.File)
	}
	if cfg.Log.SlogLevel() != slog.LevelInfo {
		t.Errorf("log level = %v, want info", cfg.Log.SlogLevel())
	}
	if cfg.Tailscale.Enabled {
		t.Error("tailscale enabled by default")
	}
	if cfg.Tailscale.Hostname != "planview" {
		t.Errorf("tailscale.hostname = %q, want planview", cfg.Tailscale.Hostname)
	}
	if cfg.Stub.Port != 8090 {
		t.Errorf("stub.port = %d, want 8090", cfg.Stub.Port)
	}
}

// TestEnvOverride verifies that PLANVIEW_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("PLANVIEW_BACKEND_URL", "http://override:9999")
	t.Setenv("PLANVIEW_BACKEND_TIMEOUT", "5")
	t.Setenv("PLANVIEW_TRAINER_ID", "7")
	t.Setenv("PLANVIEW_TAILSCALE_ENABLED", "false")
	t.Setenv("PLANVIEW_STUB_PORT", "9100")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend.BaseURL != "http://override:9999" {
		t.Errorf("backend.base_url = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout() != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", cfg.Backend.Timeout())
	}
	if cfg.Trainer.ID != "7" {
		t.Errorf("trainer.id = %q, want 7", cfg.Trainer.ID)
	}
	if cfg.Tailscale.Enabled {
		t.Error("tailscale.enabled = true, want env override false")
	}
	if cfg.Stub.Port != 9100 {
		t.Errorf("stub.port = %d, want 9100", cfg.Stub.Port)
	}
	// Unchanged fields should keep YAML values
	if cfg.Backend.APIKey != "test-key-123" {
		t.Errorf("backend.api_key = %q", cfg.Backend.APIKey)
	}
}

// TestLoadEnvOnly verifies an empty path configures from the environment alone.
func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("PLANVIEW_BACKEND_URL", "http://localhost:8090")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend.BaseURL != "http://localhost:8090" {
		t.Errorf("backend.base_url = %q", cfg.Backend.BaseURL)
	}
}

// TestLoadMissingFile verifies an unreadable path is an error, not an empty config.
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

// TestValidationBaseURL verifies the backend URL must be an absolute http(s) URL.
func TestValidationBaseURL(t *testing.T) {
	for _, raw := range []string{"", "plans.example.com", "ftp://plans.example.com", "http://"} {
		_, err := Load(writeTemp(t, "backend:\n  base_url: \""+raw+"\"\n"))
		if err == nil {
			t.Errorf("base_url %q: expected validation error", raw)
		}
	}
}

// TestValidationNegativeTimeout verifies a negative timeout is rejected.
func TestValidationNegativeTimeout(t *testing.T) {
	yaml := `
backend:
  base_url: "http://localhost:8090"
  timeout_seconds: -1
`
	if _, err := Load(writeTemp(t, yaml)); err == nil {
		t.Fatal("expected validation error for negative timeout")
	}
}

// TestLoadStub verifies the stub loader ignores backend settings but needs fixtures.
func TestLoadStub(t *testing.T) {
	t.Setenv("PLANVIEW_STUB_API_KEY", "stub-key")

	cfg, err := LoadStub(writeTemp(t, "stub:\n  fixtures: fixtures.yaml\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Stub.Fixtures != "fixtures.yaml" {
		t.Errorf("stub.fixtures = %q", cfg.Stub.Fixtures)
	}
	if cfg.Stub.APIKey != "stub-key" {
		t.Errorf("stub.api_key = %q, want stub-key", cfg.Stub.APIKey)
	}

	if _, err := LoadStub(writeTemp(t, "stub:\n  port: 9000\n")); err == nil {
		t.Fatal("expected validation error for missing fixtures")
	}
}

// TestSlogLevelUnknown verifies an unknown level falls back to info.
func TestSlogLevelUnknown(t *testing.T) {
	if got := (LogConfig{Level: "verbose"}).SlogLevel(); got != slog.LevelInfo {
		t.Errorf("level = %v, want info", got)
	}
	if got := (LogConfig{Level: "WARN"}).SlogLevel(); got != slog.LevelWarn {
		t.Errorf("level = %v, want warn", got)
	}
}
