// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history keeps the console's bounded log of executed command lines.
//
// The log lives for the process only. It never replays anything; the shell
// may recall an entry into its text field, but executing it again is a new
// submission like any other.
package history

import (
	"strings"
	"sync"
)

// DefaultMax is the default number of retained lines.
const DefaultMax = 20

// Ring is a most-recent-first list of unique command lines.
type Ring struct {
	mu      sync.RWMutex
	entries []string
	max     int
}

// New creates a ring holding at most max lines. max <= 0 uses DefaultMax.
func New(max int) *Ring {
	if max <= 0 {
		max = DefaultMax
	}
	return &Ring{max: max}
}

// Record moves line to the front, removing an earlier copy first and
// dropping the oldest line when the bound is exceeded. Blank lines are
// ignored.
func (r *Ring) Record(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e == line {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}
	r.entries = append([]string{line}, r.entries...)
	r.trimLocked()
}

// Entries returns a snapshot, most recent first.
func (r *Ring) Entries() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}

// At returns the entry at i (0 = most recent).
func (r *Ring) At(i int) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.entries) {
		return "", false
	}
	return r.entries[i], true
}

// Len returns the number of stored lines.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Max returns the bound.
func (r *Ring) Max() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.max
}

// SetMax changes the bound, dropping the oldest lines if needed.
func (r *Ring) SetMax(max int) {
	if max <= 0 {
		max = DefaultMax
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.max = max
	r.trimLocked()
}

// Clear removes every line.
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

func (r *Ring) trimLocked() {
	if len(r.entries) > r.max {
		r.entries = r.entries[:r.max]
	}
}
