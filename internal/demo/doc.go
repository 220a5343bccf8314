// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package demo is a small arena simulation used to show the console embedded
// in a running program.
//
// World holds the simulation and exposes its controls as console commands
// through World.Commands. Host is the bubbletea screen: it ticks the world,
// logs command results and draws the console overlay, pausing the simulation
// while the console is open.
package demo
