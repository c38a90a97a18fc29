package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/ShayCichocki/todolist/internal/config"
	"github.com/ShayCichocki/todolist/internal/logging"
	"github.com/ShayCichocki/todolist/internal/persist"
	"github.com/ShayCichocki/todolist/internal/screen"
	"github.com/ShayCichocki/todolist/internal/state"
	"github.com/ShayCichocki/todolist/internal/store"
	"github.com/ShayCichocki/todolist/internal/tui"
)

// openKV opens the storage backend named by cfg.Storage.Driver.
func openKV(cfg *config.Config) (store.KV, error) {
	switch cfg.Storage.Driver {
	case config.DriverFile:
		kv, err := store.OpenFileKV(cfg.FilesDir())
		if err != nil {
			return nil, fmt.Errorf("open list files: %w", err)
		}
		return kv, nil
	case config.DriverSQLite, config.DriverSQLite3:
		db, err := state.OpenWithDriver(cfg.Storage.Driver, state.DefaultDBPath(cfg.DataDir()))
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// openStore opens the backend and wraps it in a validating Store.
func openStore(cfg *config.Config, logger *log.Logger) (*store.Store, error) {
	kv, err := openKV(cfg)
	if err != nil {
		return nil, err
	}
	validator, err := store.NewValidator()
	if err != nil {
		kv.Close()
		return nil, err
	}
	return store.New(kv, validator, logger), nil
}

// runTUI opens storage, runs the todo screen and drains pending writes on exit.
func runTUI(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logFile, err := logging.Open(logging.Options{
		Path:      cfg.LogPath(),
		Level:     cfg.Log.Level,
		Formatter: cfg.Log.Format,
	})
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logFile.Logger

	st, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	w := persist.NewWriter(st, cfg.Persist.QueueSize, logger)
	app := tui.NewApp(screen.New(st, w, logger), logger, tui.Options{
		SkipLanding: cfg.TUI.SkipLanding,
	})

	_, runErr := tui.NewProgram(app, cfg.TUI.AltScreen).Run()

	drainCtx, cancel := context.WithTimeout(ctx, cfg.Persist.DrainTimeout)
	defer cancel()
	if err := w.Close(drainCtx); err != nil {
		logger.Error("pending saves abandoned", "err", err, "stats", w.Stats())
	}

	if runErr != nil {
		return fmt.Errorf("run todo screen: %w", runErr)
	}
	return nil
}
