package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/churrascode/churrasco/internal/config"
	"github.com/churrascode/churrasco/internal/logging"
	"github.com/churrascode/churrasco/internal/prefs"
	"github.com/churrascode/churrasco/internal/refresh"
	"github.com/churrascode/churrasco/internal/ui"
	"github.com/churrascode/churrasco/internal/watch"
)

// Options configure the churrasco dashboard.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/churrasco/prefs.toml
	PollEvery  int    // seconds; zero uses the configured refresh interval
}

// Run boots the dashboard until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("preferences ignored, using defaults", "path", prefsPath, "error", err)
	}

	ev, err := cfg.Event()
	if err != nil {
		return fmt.Errorf("event: %w", err)
	}

	env, err := Open(cfg, logger)
	if err != nil {
		return err
	}
	defer env.Close()

	interval := cfg.RefreshInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	var changes <-chan struct{}
	if w, err := watch.New(cfg.ItemsPath, logger); err != nil {
		logger.Warn("item file watcher disabled", "error", err)
	} else {
		changes = w.Run(ctx)
	}

	logger.Info("dashboard starting",
		"database", cfg.DatabasePath,
		"items", cfg.ItemsPath,
		"refresh", interval,
	)

	return ui.Run(ui.Options{
		Context:   ctx,
		Loader:    env.Loader(),
		Items:     env.Items,
		Store:     env.Store,
		Scheduler: refresh.New(interval, nil),
		Event:     ev,
		Months:    env.Source.Months(),
		Fee:       cfg.PaymentValue,
		Changes:   changes,
		LogPath:   cfg.LogFile,
		ThemeName: userPrefs.Theme,
		Filter:    userPrefs.Filter,
		PrefsPath: prefsPath,
		Logger:    logger,
	})
}

// openLog sends logs to the configured file; the terminal belongs to the UI.
func openLog(cfg config.Config) (*slog.Logger, func() error, error) {
	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.LogFile == "" {
		logger := logging.New(io.Discard, level)
		slog.SetDefault(logger)
		return logger, func() error { return nil }, nil
	}
	logger, closeFn, err := logging.SetupFile(cfg.LogFile, level)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logger, closeFn, nil
}
