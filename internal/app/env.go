package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/churrascode/churrasco/internal/config"
	"github.com/churrascode/churrasco/internal/itemstore"
	"github.com/churrascode/churrasco/internal/payments"
	"github.com/churrascode/churrasco/internal/state"
)

// Environment bundles the data sources shared by the TUI and the CLI.
type Environment struct {
	Config config.Config
	Source payments.Source
	Items  *itemstore.Store
	Store  *state.Store
	Logger *slog.Logger
}

// Open prepares the payment source and the item store described by cfg.
// The item file's directory is created so the store and the watcher can use it.
func Open(cfg config.Config, logger *slog.Logger) (*Environment, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.ItemsPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	source, err := payments.OpenSQLite(cfg.DatabasePath, cfg.Table, cfg.PaymentMonths)
	if err != nil {
		return nil, fmt.Errorf("open payment roster: %w", err)
	}

	items := itemstore.New(cfg.ItemsPath,
		itemstore.WithSeedPath(cfg.SeedPath),
		itemstore.WithLogger(logger),
	)

	return &Environment{
		Config: cfg,
		Source: source,
		Items:  items,
		Store:  &state.Store{},
		Logger: logger,
	}, nil
}

// Loader returns a Loader over this environment.
func (e *Environment) Loader() *Loader {
	return NewLoader(e.Source, e.Items, e.Store, e.Logger)
}

// Close releases the payment source.
func (e *Environment) Close() error {
	if e == nil || e.Source == nil {
		return nil
	}
	if err := e.Source.Close(); err != nil {
		return fmt.Errorf("close payment roster: %w", err)
	}
	return nil
}
