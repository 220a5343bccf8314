// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/devconsole/internal/commands"
	"github.com/jeranaias/devconsole/internal/config"
	"github.com/jeranaias/devconsole/internal/demo"
	"github.com/jeranaias/devconsole/internal/history"
	"github.com/jeranaias/devconsole/internal/ui/styles"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	theme      string
	visible    bool
}

// app is everything a front end needs: configuration, logging and the
// command engine wired to the arena.
type app struct {
	cfg        *config.Config
	configPath string
	logger     *log.Logger
	logFile    io.Closer

	world    *demo.World
	history  *history.Ring
	registry *commands.Registry
	theme    *styles.Theme
}

// newApp loads configuration and builds the engine. logOut receives logs
// when no log file is configured.
func newApp(flags *globalFlags, logOut io.Writer) (*app, error) {
	cfg, path, err := loadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.theme != "" {
		cfg.UI.Theme = flags.theme
	}
	if flags.visible {
		cfg.Console.StartVisible = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	a := &app{cfg: cfg, configPath: path}
	if err := a.setupLogger(logOut); err != nil {
		return nil, err
	}

	a.world = demo.NewWorld()
	a.history = history.New(cfg.Console.MaxHistory)
	a.registry = commands.NewRegistry(
		commands.WithLogger(a.logger.WithPrefix("commands")),
		commands.WithSources(commands.Builtins(a.history), a.world.Commands()),
	)
	a.theme = styles.NewTheme(cfg.UI.Theme)

	a.logger.Debug("app ready", "config", path, "commands", a.registry.Len())
	return a, nil
}

// loadConfig reads the --config file, or the default location when it
// exists. path is empty when running on defaults.
func loadConfig(explicit string) (*config.Config, string, error) {
	if explicit != "" {
		cfg, err := config.LoadFromPath(explicit)
		return cfg, explicit, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	path, err := config.ConfigPath()
	if err != nil {
		return cfg, "", nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, "", nil
	}
	return cfg, path, nil
}

func (a *app) setupLogger(out io.Writer) error {
	level, err := log.ParseLevel(strings.ToLower(a.cfg.Log.Level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", a.cfg.Log.Level, err)
	}

	if a.cfg.Log.File != "" {
		f, err := os.OpenFile(a.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		a.logFile = f
	}

	a.logger = log.NewWithOptions(out, log.Options{
		Prefix:          "devconsole",
		Level:           level,
		ReportTimestamp: true,
	})
	return nil
}

// watchConfig starts a watcher on the config file, if there is one. onReload
// runs on the watcher goroutine.
func (a *app) watchConfig(ctx context.Context, onReload func(*config.Config)) (func(), error) {
	if a.configPath == "" {
		return func() {}, nil
	}
	w, err := config.NewWatcher(a.configPath, 0, func(cfg *config.Config, err error) {
		if err != nil {
			a.logger.Warn("config reload failed", "path", a.configPath, "err", err)
			return
		}
		a.logger.Info("config reloaded", "path", a.configPath)
		onReload(cfg)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to watch config: %w", err)
	}
	go w.Run(ctx)
	return func() { w.Close() }, nil
}

func (a *app) Close() {
	if a.logFile != nil {
		a.logFile.Close()
	}
}
