package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"tailscale.com/tsnet"

	"github.com/meltforce/planview/internal/config"
	"github.com/meltforce/planview/internal/planclient"
)

var errNoTrainer = errors.New("no trainer id: pass --trainer or set trainer.id")

// loadConfig reads the config named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveTrainer returns the --trainer flag, falling back to the configured trainer.
func resolveTrainer(cfg *config.Config) string {
	if trainerID != "" {
		return trainerID
	}
	return cfg.Trainer.ID
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
}

// newSource builds the backend client. With tailscale enabled, requests go
// over a tsnet node; the returned close func shuts it down.
func newSource(cfg *config.Config, log *slog.Logger) (planclient.Source, func(), error) {
	opts := []planclient.Option{
		planclient.WithTimeout(cfg.Backend.Timeout()),
		planclient.WithAPIKey(cfg.Backend.APIKey),
	}

	if !cfg.Tailscale.Enabled {
		return planclient.New(cfg.Backend.BaseURL, opts...), func() {}, nil
	}

	tsServer := &tsnet.Server{
		Hostname: cfg.Tailscale.Hostname,
		Dir:      cfg.Tailscale.StateDir,
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...), "component", "tsnet")
		},
	}
	if err := tsServer.Start(); err != nil {
		return nil, nil, fmt.Errorf("tsnet start: %w", err)
	}
	log.Info("tsnet client started", "hostname", cfg.Tailscale.Hostname)

	httpClient := tsServer.HTTPClient()
	httpClient.Timeout = cfg.Backend.Timeout()
	opts = append(opts, planclient.WithHTTPClient(httpClient))

	closeFn := func() {
		if err := tsServer.Close(); err != nil {
			log.Warn("tsnet close failed", "error", err)
		}
	}
	return planclient.New(cfg.Backend.BaseURL, opts...), closeFn, nil
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
