package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-solitaire/internal/config"
	"github.com/vovakirdan/tui-solitaire/internal/core"
	"github.com/vovakirdan/tui-solitaire/internal/games/freecell"
	"github.com/vovakirdan/tui-solitaire/internal/games/klondike"
	"github.com/vovakirdan/tui-solitaire/internal/games/spider"
	"github.com/vovakirdan/tui-solitaire/internal/sessions"
	"github.com/vovakirdan/tui-solitaire/internal/solitaire"
	"github.com/vovakirdan/tui-solitaire/internal/stats"
	"github.com/vovakirdan/tui-solitaire/internal/storage"
)

// app is everything a command needs: configuration, the settings backend,
// the score table and the session manager.
type app struct {
	cfg    config.Config
	kv     stats.KV
	scores *storage.Store
	mgr    *sessions.Manager
	logger *log.Logger

	closers []io.Closer
}

// loadConfig reads solitaire.yaml and applies the global flags on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagKV != "" {
		cfg.Storage.KV = flagKV
	}

	klondike.SetConfig(cfg.Klondike)
	spider.SetConfig(cfg.Spider)
	freecell.SetConfig(cfg.FreeCell)
	return cfg, nil
}

// newLogger returns the command logger. Interactive commands own the
// terminal, so they log to --log or nowhere.
func newLogger(interactive bool) (*log.Logger, io.Closer) {
	opts := log.Options{ReportTimestamp: true, Prefix: "solitaire"}
	if !interactive {
		return log.NewWithOptions(os.Stderr, opts), nil
	}
	if flagLogFile == "" {
		return log.NewWithOptions(io.Discard, opts), nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return log.NewWithOptions(io.Discard, opts), nil
	}
	return log.NewWithOptions(f, opts), f
}

// newApp opens storage and builds the manager. reg may be nil.
func newApp(interactive bool, reg prometheus.Registerer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, logCloser := newLogger(interactive)
	a := &app{cfg: cfg, logger: logger}
	if logCloser != nil {
		a.closers = append(a.closers, logCloser)
	}

	backend, err := storage.OpenBackend(cfg.Storage)
	if err != nil {
		logger.Warn("settings backend unavailable, using memory", "kv", cfg.Storage.KV, "err", err)
		a.kv = stats.NewMemoryKV()
	} else {
		a.kv = backend
		a.closers = append(a.closers, backend)
	}

	// Scores always live in SQLite; reuse the handle when it is also the KV.
	if store, ok := backend.(*storage.Store); ok && err == nil {
		a.scores = store
	} else if store, err := storage.Open(cfg.Storage.DBPath); err == nil {
		a.scores = store
		a.closers = append(a.closers, store)
	} else {
		logger.Warn("could not open scores database", "path", cfg.Storage.DBPath, "err", err)
	}

	a.mgr = sessions.NewManager(sessions.ConfigFrom(cfg), a.kv, sessions.NewMetrics(reg), logger)
	if a.scores != nil {
		a.mgr.SetOnWin(func(r solitaire.Result) {
			if _, err := a.scores.SaveResult(r); err != nil {
				logger.Error("cannot save win", "variant", r.Variant, "err", err)
			}
		})
	}
	return a, nil
}

// Close releases storage in reverse order of opening.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("close failed", "err", err)
		}
	}
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
