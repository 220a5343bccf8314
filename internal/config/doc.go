// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the console's TOML configuration, applies defaults and
// environment overrides, validates it, and watches the file for changes.
//
// # Example
//
//	cfg, err := config.LoadFromPath("console.toml")
//	if err != nil {
//	    return err
//	}
//	w, err := config.NewWatcher("console.toml", 0, func(cfg *config.Config, err error) {
//	    // apply cfg
//	})
//	go w.Run(ctx)
package config
