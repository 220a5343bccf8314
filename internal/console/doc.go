// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console provides the developer console shell: a toggleable text
// field with live autocomplete hints over a command registry.
//
// Console holds the state and works without any UI framework. Model wraps it
// for bubbletea hosts, which forward messages and draw Model.View over their
// own screen:
//
//	c := console.New(registry, history.New(cfg.Console.MaxHistory))
//	m := console.NewModel(c, cfg, theme)
//
//	// in the host's Update
//	if k, ok := msg.(tea.KeyMsg); ok && m.Captures(k) {
//	    m, cmd = m.Update(msg)
//	}
//
// The model reports visibility changes with ToggledMsg and completed commands
// with ExecutedMsg.
package console
