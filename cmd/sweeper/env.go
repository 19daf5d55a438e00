package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/platform/tui"
	"github.com/vovakirdan/tui-sweeper/internal/stats"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

// env is what every command needs: config, logger and the stats store.
type env struct {
	cfg     config.Config
	logger  *log.Logger
	store   *stats.Store
	db      *storage.Store // nil unless the sqlite backend is open
	logFile *os.File
}

// loadEnv reads the config, applies flag overrides and opens statistics.
// A stats location that cannot be opened falls back to memory.
func loadEnv() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagStatsBackend != "" {
		cfg.Stats.Backend = flagStatsBackend
	}
	if flagDBPath != "" {
		cfg.Stats.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagFPS > 0 {
		cfg.UI.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sweeper",
	})
	level, _ := log.ParseLevel(cfg.Log.Level) // checked by Validate
	logger.SetLevel(level)

	e := &env{cfg: cfg, logger: logger}
	e.openStats()
	return e, nil
}

func (e *env) openStats() {
	path := e.cfg.StatsPath()

	switch e.cfg.Stats.Backend {
	case config.BackendSQLite:
		db, err := storage.Open(path)
		if err != nil {
			e.logger.Warn("could not open stats database, keeping stats in memory", "path", path, "error", err)
			break
		}
		e.db = db
		e.store = stats.NewStore(db, e.logger)
		return
	case config.BackendYAML:
		f, err := stats.NewYAMLFile(path)
		if err != nil {
			e.logger.Warn("could not resolve stats file, keeping stats in memory", "path", path, "error", err)
			break
		}
		e.store = stats.NewStore(f, e.logger)
		return
	}

	e.store = stats.NewStore(stats.NewMemory(), e.logger)
}

// journal returns the best-times source, or nil without one.
func (e *env) journal() tui.BestTimesSource {
	if e.db == nil {
		return nil
	}
	return e.db
}

// logToFile redirects logging to the configured file while a TUI owns the
// terminal. Logging is discarded if the file cannot be opened.
func (e *env) logToFile() {
	path, err := stats.ExpandHome(e.cfg.Log.File)
	if err == nil && path != "" {
		if err = os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			e.logFile, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		}
	}
	if err != nil || e.logFile == nil {
		e.logger.SetOutput(io.Discard)
		return
	}
	e.logger.SetOutput(e.logFile)
}

// runtimeConfig builds the platform config from the terminal size.
func (e *env) runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = e.cfg.UI.TickRate
	cfg.Seed = flagSeed
	return cfg
}

func (e *env) Close() {
	if e.db != nil {
		if err := e.db.Close(); err != nil {
			e.logger.Warn("closing stats database", "error", err)
		}
	}
	if e.logFile != nil {
		e.logger.SetOutput(os.Stderr)
		e.logFile.Close()
	}
}
