package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tasks/internal/config"
	"github.com/Makepad-fr/tasks/internal/logging"
	"github.com/Makepad-fr/tasks/internal/store"
	"github.com/Makepad-fr/tasks/internal/store/seed"
	"github.com/Makepad-fr/tasks/internal/ui"
)

// Env is what both front-ends need to start.
type Env struct {
	Store  *store.Store
	Logger *log.Logger
	Close  func() error
}

// Bootstrap validates cfg, applies the theme, opens the logger and builds
// the store, seeding it when cfg.Seed is set. logFallback receives logs
// when no log file is configured.
func Bootstrap(cfg config.Config, logFallback io.Writer) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := ui.SetTheme(cfg.Theme); err != nil {
		return nil, err
	}
	logger, closer, err := logging.New(logging.Options{
		Level:    cfg.LogLevel,
		File:     cfg.LogFile,
		Fallback: logFallback,
	})
	if err != nil {
		return nil, err
	}

	s := store.New(store.WithLogger(logger))
	if cfg.Seed != "" {
		entries, err := seed.Load(cfg.Seed)
		if err != nil {
			_ = closer()
			return nil, fmt.Errorf("load seed: %w", err)
		}
		n := seed.Apply(s, entries, logger)
		logger.Info("seeded", "file", cfg.Seed, "tasks", n)
	}
	return &Env{Store: s, Logger: logger, Close: closer}, nil
}
