// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/devconsole/internal/commands"
	"github.com/jeranaias/devconsole/internal/config"
	"github.com/jeranaias/devconsole/internal/history"
)

// =============================================================================
// CONSOLE STATE
// =============================================================================

// Console is the framework-free console state machine: visibility, the text
// being edited, the hint computed from it, and history recall. It is not safe
// for concurrent use; drive it from one goroutine (the UI loop).
type Console struct {
	registry  *commands.Registry
	completer *commands.Completer
	invoker   *commands.Invoker
	history   *history.Ring
	logger    *log.Logger

	visible bool
	text    string
	hint    string
	err     error

	// recall is the history index shown in the field, -1 when editing.
	recall int
	draft  string

	listeners []func(visible bool)
}

// Option configures a Console.
type Option func(*Console)

// WithLogger sets the logger used by the console and its invoker.
func WithLogger(logger *log.Logger) Option {
	return func(c *Console) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithVisible sets the initial visibility.
func WithVisible(visible bool) Option {
	return func(c *Console) {
		c.visible = visible
	}
}

// New creates a console over registry. hist records successful commands and
// feeds recall; when nil a ring with the default bound is created.
func New(registry *commands.Registry, hist *history.Ring, opts ...Option) *Console {
	if hist == nil {
		hist = history.New(history.DefaultMax)
	}
	c := &Console{
		registry:  registry,
		completer: commands.NewCompleter(registry),
		history:   hist,
		logger:    log.New(io.Discard),
		recall:    -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.invoker = commands.NewInvoker(registry, hist, commands.WithLogger(c.logger))
	if c.visible {
		c.refreshHint()
	}
	return c
}

// Registry returns the command registry.
func (c *Console) Registry() *commands.Registry { return c.registry }

// Completer returns the completer used for hints.
func (c *Console) Completer() *commands.Completer { return c.completer }

// History returns the history ring.
func (c *Console) History() *history.Ring { return c.history }

// ApplyConfig applies the console and hint settings of cfg. Visibility is
// only read at construction.
func (c *Console) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	c.history.SetMax(cfg.Console.MaxHistory)
	c.completer.MaxLines = cfg.UI.HintLines
	if cfg.UI.HintWidth > 0 {
		c.completer.MaxWidth = cfg.UI.HintWidth
	}
	if c.visible && c.err == nil {
		c.refreshHint()
	}
}

// =============================================================================
// VISIBILITY
// =============================================================================

// Visible reports whether the console is shown.
func (c *Console) Visible() bool { return c.visible }

// OnToggle registers fn to be called synchronously on every visibility
// change.
func (c *Console) OnToggle(fn func(visible bool)) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

// Toggle flips visibility.
func (c *Console) Toggle() {
	c.setVisible(!c.visible)
}

// Show makes the console visible and recomputes the hint for the current
// text.
func (c *Console) Show() { c.setVisible(true) }

// Hide hides the console and discards the pending hint. The text is kept.
func (c *Console) Hide() { c.setVisible(false) }

func (c *Console) setVisible(visible bool) {
	if c.visible == visible {
		return
	}
	c.visible = visible
	if visible {
		c.refreshHint()
	} else {
		c.hint = ""
		c.err = nil
		c.recall = -1
	}
	c.logger.Debug("console toggled", "visible", visible)
	for _, fn := range c.listeners {
		fn(visible)
	}
}

// =============================================================================
// EDITING
// =============================================================================

// Text returns the current input text.
func (c *Console) Text() string { return c.text }

// Caret returns the caret position in runes. Text always ends at the caret
// after SetText, Advance or recall.
func (c *Console) Caret() int { return len([]rune(c.text)) }

// Hint returns the hint block, or the diagnostic of the last failed submit.
func (c *Console) Hint() string { return c.hint }

// Err returns the error of the last failed submit while it is still shown.
func (c *Console) Err() error { return c.err }

// SetText replaces the input text, as typing does, and recomputes the hint.
// Typing leaves history recall.
func (c *Console) SetText(text string) {
	c.recall = -1
	c.setText(text)
}

func (c *Console) setText(text string) {
	c.text = text
	c.err = nil
	c.refreshHint()
}

func (c *Console) refreshHint() {
	c.hint = c.completer.Render(c.text)
}

// Advance applies the completion key. It reports whether the text changed.
func (c *Console) Advance() bool {
	completed, ok := c.completer.Advance(c.text)
	if !ok || completed == c.text {
		return false
	}
	c.SetText(completed)
	return true
}

// Submit executes the current text. An empty line or a successful command
// clears the text and hides the console. On failure the console stays visible
// with the text intact and the hint shows the diagnostic. The returned error
// is ErrEmptyLine for blank input.
func (c *Console) Submit(ctx context.Context) (*commands.Result, error) {
	res, err := c.invoker.Execute(ctx, c.text)
	if err != nil && !errors.Is(err, commands.ErrEmptyLine) {
		c.err = err
		c.hint = err.Error()
		return res, err
	}

	c.text = ""
	c.hint = ""
	c.recall = -1
	c.draft = ""
	c.Hide()
	return res, err
}

// Cancel hides the console without executing anything.
func (c *Console) Cancel() {
	c.Hide()
}

// Recache rebuilds the registry and refreshes the hint.
func (c *Console) Recache() error {
	if err := c.registry.Recache(); err != nil {
		return err
	}
	if c.visible && c.err == nil {
		c.refreshHint()
	}
	return nil
}

// =============================================================================
// HISTORY RECALL
// =============================================================================

// RecallPrev replaces the text with the next older history entry. The text
// being edited is kept as a draft for RecallNext. Recall never executes.
func (c *Console) RecallPrev() bool {
	line, ok := c.history.At(c.recall + 1)
	if !ok {
		return false
	}
	if c.recall == -1 {
		c.draft = c.text
	}
	c.recall++
	c.setText(line)
	return true
}

// RecallNext moves toward newer entries, restoring the draft past the newest.
func (c *Console) RecallNext() bool {
	if c.recall < 0 {
		return false
	}
	c.recall--
	if c.recall == -1 {
		c.setText(c.draft)
		return true
	}
	line, ok := c.history.At(c.recall)
	if !ok {
		c.recall = -1
		c.setText(c.draft)
		return true
	}
	c.setText(line)
	return true
}
