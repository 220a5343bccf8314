// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling for the console overlay, the
// REPL and the demo host.
//
// Colors are lipgloss AdaptiveColors; the Theme decides which side of each
// pair applies, either from the terminal background (auto) or from the
// configured mode.
//
// # Usage
//
//	theme := styles.NewTheme(cfg.UI.Theme)
//	fmt.Println(theme.RenderError("unknown command: foo"))
//
// Tests and pipes use a colorless copy:
//
//	plain := theme.WithProfile(termenv.Ascii)
package styles
