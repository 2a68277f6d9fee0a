package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultLogFile  = "planview.log"
	defaultHostname = "planview"
	defaultStubHost = "127.0.0.1"
	defaultStubPort = 8090
)

type Config struct {
	Backend   BackendConfig   `yaml:"backend"`
	Trainer   TrainerConfig   `yaml:"trainer"`
	Log       LogConfig       `yaml:"log"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Stub      StubConfig      `yaml:"stub"`
}

type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type TrainerConfig struct {
	ID string `yaml:"id"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type StubConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Fixtures string `yaml:"fixtures"`
	APIKey   string `yaml:"api_key"`
}

// Timeout returns the backend request timeout, defaulting to 30s.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return defaultTimeout
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// SlogLevel parses the configured level. Unknown or empty levels mean info.
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Addr returns the stub server listen address.
func (s StubConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads config from a YAML file, then applies environment variable overrides
// and validates the backend settings. An empty path skips the file so the
// client can be configured from the environment alone.
// Env vars use the prefix PLANVIEW_:
//
//	PLANVIEW_BACKEND_URL, PLANVIEW_BACKEND_API_KEY, PLANVIEW_BACKEND_TIMEOUT,
//	PLANVIEW_TRAINER_ID, PLANVIEW_LOG_LEVEL, PLANVIEW_LOG_FILE,
//	PLANVIEW_TAILSCALE_ENABLED, PLANVIEW_STUB_PORT, PLANVIEW_STUB_API_KEY
func Load(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// LoadStub is Load for the fixture server: only the stub section is validated.
func LoadStub(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateStub(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func read(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PLANVIEW_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("PLANVIEW_BACKEND_API_KEY"); v != "" {
		cfg.Backend.APIKey = v
	}
	if v := os.Getenv("PLANVIEW_BACKEND_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Backend.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("PLANVIEW_TRAINER_ID"); v != "" {
		cfg.Trainer.ID = v
	}
	if v := os.Getenv("PLANVIEW_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PLANVIEW_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("PLANVIEW_TAILSCALE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("PLANVIEW_STUB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Stub.Port = port
		}
	}
	if v := os.Getenv("PLANVIEW_STUB_API_KEY"); v != "" {
		cfg.Stub.APIKey = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile
	}
	if cfg.Tailscale.Hostname == "" {
		cfg.Tailscale.Hostname = defaultHostname
	}
	if cfg.Stub.Host == "" {
		cfg.Stub.Host = defaultStubHost
	}
	if cfg.Stub.Port == 0 {
		cfg.Stub.Port = defaultStubPort
	}
}

func (c *Config) validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("backend.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.base_url must be an http or https URL, got %q", c.Backend.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend.base_url has no host")
	}
	if c.Backend.TimeoutSeconds < 0 {
		return fmt.Errorf("backend.timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateStub() error {
	if c.Stub.Fixtures == "" {
		return fmt.Errorf("stub.fixtures is required")
	}
	if c.Stub.Port < 0 || c.Stub.Port > 65535 {
		return fmt.Errorf("stub.port %d out of range", c.Stub.Port)
	}
	return nil
}
