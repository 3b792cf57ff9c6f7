package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dori/larder/internal/config"
	"github.com/dori/larder/internal/db"
	"github.com/dori/larder/internal/notify"
	"github.com/dori/larder/internal/store"
	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

// App holds the application state and dependencies
type App struct {
	DB       *db.DB
	Store    *store.Store
	Notifier *notify.Notifier
	Log      *zap.Logger
	DataDir  string
	lockFile *flock.Flock
}

// New creates a new application instance: it locks the data directory,
// opens the database, and loads the item collection into the session store.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	notifier := notify.NewNotifier()
	notifier.SetEnabled(cfg.Notifications)

	app := &App{
		DataDir:  cfg.DataDir,
		Notifier: notifier,
		Log:      newLogger(cfg.DataDir),
	}

	// Acquire lock to ensure single instance
	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.DBPath())
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database

	app.Store = store.New(database)
	if err := app.Store.Load(); err != nil {
		database.Close()
		app.releaseLock()
		return nil, fmt.Errorf("failed to load items: %w", err)
	}

	return app, nil
}

// newLogger builds a file-backed debug logger when LARDER_DEBUG=1; logging
// to stdout would corrupt the TUI, so everything else gets a nop logger.
func newLogger(dataDir string) *zap.Logger {
	if os.Getenv("LARDER_DEBUG") != "1" {
		return zap.NewNop()
	}

	cfg := zap.NewDevelopmentConfig()
	logPath := filepath.Join(dataDir, "debug.log")
	cfg.OutputPaths = []string{logPath}
	cfg.ErrorOutputPaths = []string{logPath}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "larder.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of larder is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.Log.Sync()
	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
