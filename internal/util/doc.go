// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the console packages.
//
// # Key Functions
//
//   - AtomicWriteFile: crash-safe file writes (temp file, fsync, rename)
//   - StringWidth, TruncateWidth, PadRight: column-aware text for the terminal
//   - Columns: aligned text tables for command listings
//
// # Usage
//
//	err := util.AtomicWriteFile(path, data, 0600)
//	line := util.TruncateWidth(hint, 60)
package util
