// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completer resolves partial input against a registry. It holds no input
// state; every method is recomputed from the text it is given.
type Completer struct {
	registry *Registry

	// MaxWidth truncates each hint line to this display width (0 = no limit).
	MaxWidth int

	// MaxLines caps the number of hint lines (0 = no limit).
	MaxLines int
}

// NewCompleter creates a new completer with the given registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// =============================================================================
// COMMAND CANDIDATES
// =============================================================================

// Candidates returns visible commands whose name starts with the first token,
// case-insensitively, in registry order. The first element is the suggestion
// used for completion.
func (c *Completer) Candidates(text string) []*Command {
	if c.registry == nil {
		return nil
	}
	partial := Tokenize(text)[0]

	var out []*Command
	for _, cmd := range c.registry.All() {
		if cmd.Hidden {
			continue
		}
		if hasPrefixFold(cmd.Name, partial) {
			out = append(out, cmd)
		}
	}
	return out
}

// =============================================================================
// ARGUMENT OPTIONS
// =============================================================================

// OptionsForSlot returns the suggestions for an argument slot (1-based, as
// produced by SlotIndex). It returns nil when the command has no such slot.
// A parameter without declared options yields its own name as the only entry.
// Otherwise the declared options that start with typed are returned in
// declaration order; an empty typed returns them all.
func (c *Completer) OptionsForSlot(cmd *Command, slot int, typed string) []string {
	if cmd == nil || slot <= 0 || slot > len(cmd.Params) {
		return nil
	}
	p := cmd.Params[slot-1]
	if !p.HasOptions() {
		return []string{p.Name}
	}
	if typed == "" {
		return Options(p.Options...)
	}

	out := []string{}
	for _, opt := range p.Options {
		if hasPrefixFold(opt, typed) {
			out = append(out, opt)
		}
	}
	return out
}

// declaredOptions is OptionsForSlot without the placeholder fallback: only
// real values may replace typed text.
func (c *Completer) declaredOptions(cmd *Command, slot int, typed string) []string {
	if cmd == nil || slot <= 0 || slot > len(cmd.Params) || !cmd.Params[slot-1].HasOptions() {
		return nil
	}
	return c.OptionsForSlot(cmd, slot, typed)
}

// =============================================================================
// HINT RENDERING
// =============================================================================

// Render builds the hint block shown under the input. At slot 0 every
// candidate is listed with its placeholders. Past slot 0 each candidate lists
// one line per matching option for the active slot followed by the remaining
// placeholders.
func (c *Completer) Render(text string) string {
	candidates := c.Candidates(text)
	if len(candidates) == 0 {
		return ""
	}
	slot := SlotIndex(text)
	tokens := Tokenize(text)

	var lines []string
	for _, cmd := range candidates {
		if slot == 0 {
			lines = append(lines, cmd.Usage())
			continue
		}

		options := c.declaredOptions(cmd, slot, TokenAt(tokens, slot))
		if len(options) == 0 {
			lines = append(lines, cmd.Usage())
			continue
		}
		for _, opt := range options {
			var sb strings.Builder
			sb.WriteString(cmd.Name)
			sb.WriteString(Separator)
			sb.WriteString(opt)
			for _, p := range cmd.Params[slot:] {
				sb.WriteString(Separator)
				sb.WriteString(p.Usage())
			}
			lines = append(lines, sb.String())
		}
	}

	if c.MaxLines > 0 && len(lines) > c.MaxLines {
		more := len(lines) - c.MaxLines + 1
		lines = append(lines[:c.MaxLines-1], "... "+strconv.Itoa(more)+" more")
	}
	if c.MaxWidth > 0 {
		for i, line := range lines {
			lines[i] = runewidth.Truncate(line, c.MaxWidth, "...")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// =============================================================================
// LINE COMPLETION
// =============================================================================

// CompleteToken replaces every token that has an option list with the first
// option it is a case-insensitive prefix of, keeping tokens nothing matches,
// and re-joins the line with single spaces. A nil list leaves its token as
// typed.
func CompleteToken(tokens []string, perSlot [][]string) string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok
		if i >= len(perSlot) || perSlot[i] == nil {
			continue
		}
		for _, opt := range perSlot[i] {
			if hasPrefixFold(opt, tok) {
				out[i] = opt
				break
			}
		}
	}
	return JoinTokens(out)
}

// Advance computes the text produced by the advance-completion key. The first
// candidate completes the command name and every typed argument that has
// declared options. A trailing space is added when the command takes more
// than one parameter and another parameter follows the active slot. ok is
// false when no command matches.
func (c *Completer) Advance(text string) (completed string, ok bool) {
	candidates := c.Candidates(text)
	if len(candidates) == 0 {
		return text, false
	}
	cmd := candidates[0]
	tokens := Tokenize(text)
	slot := SlotIndex(text)

	perSlot := make([][]string, len(tokens))
	perSlot[0] = []string{cmd.Name}
	for i := 1; i < len(tokens); i++ {
		perSlot[i] = c.declaredOptions(cmd, i, tokens[i])
	}
	completed = CompleteToken(tokens, perSlot)

	if len(cmd.Params) > 1 && slot < len(cmd.Params) && !strings.HasSuffix(completed, Separator) {
		completed += Separator
	}
	return completed, true
}
