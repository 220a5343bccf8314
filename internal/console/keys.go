// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/devconsole/internal/config"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the console's keyboard bindings.
type KeyMap struct {
	Toggle      key.Binding
	Submit      key.Binding
	Complete    key.Binding
	Cancel      key.Binding
	HistoryPrev key.Binding
	HistoryNext key.Binding
}

// NewKeyMap builds bindings from the configured key names.
func NewKeyMap(k config.KeyConfig) KeyMap {
	return KeyMap{
		Toggle:      binding(k.Toggle, "toggle console"),
		Submit:      binding(k.Submit, "run"),
		Complete:    binding(k.Complete, "complete"),
		Cancel:      binding(k.Cancel, "close"),
		HistoryPrev: binding(k.HistoryPrev, "older"),
		HistoryNext: binding(k.HistoryNext, "newer"),
	}
}

// DefaultKeyMap returns the bindings of the default configuration.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.Default().Keys)
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Complete, k.Submit, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Submit, k.Cancel},
		{k.Complete, k.HistoryPrev, k.HistoryNext},
	}
}
