// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/devconsole/internal/commands"
	"github.com/jeranaias/devconsole/internal/config"
	"github.com/jeranaias/devconsole/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ToggledMsg is emitted whenever the console is shown or hidden.
type ToggledMsg struct {
	Visible bool
}

// ExecutedMsg is emitted after a non-empty submit.
type ExecutedMsg struct {
	Result *commands.Result
	Err    error
}

// ConfigReloadedMsg carries a reloaded configuration into the UI loop.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// RecacheMsg asks the console to rebuild its registry.
type RecacheMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

const (
	defaultWidth = 80
	minWidth     = 20
)

// Model is the bubbletea front end of a Console. A host forwards messages to
// Update and draws View on top of its own screen.
type Model struct {
	console *Console
	input   textinput.Model
	keys    KeyMap
	theme   *styles.Theme
	ctx     context.Context

	width     int
	hintWidth int
	title     string
}

// NewModel wraps c. cfg supplies keys, prompt and hint limits; nil uses the
// defaults.
func NewModel(c *Console, cfg *config.Config, theme *styles.Theme) *Model {
	if cfg == nil {
		cfg = config.Default()
	}
	if theme == nil {
		theme = styles.NewTheme(cfg.UI.Theme)
	}

	ti := textinput.New()
	ti.CharLimit = 512
	ti.Placeholder = "type a command, tab to complete"

	m := &Model{
		console: c,
		input:   ti,
		theme:   theme,
		ctx:     context.Background(),
		title:   "console",
	}
	m.ApplyConfig(cfg)
	m.SetWidth(defaultWidth)
	m.input.SetValue(c.Text())
	m.input.CursorEnd()
	if c.Visible() {
		m.input.Focus()
	}
	return m
}

// SetContext sets the context passed to command handlers.
func (m *Model) SetContext(ctx context.Context) {
	if ctx != nil {
		m.ctx = ctx
	}
}

// SetTitle sets the text shown in the console header.
func (m *Model) SetTitle(title string) {
	m.title = title
}

// Console returns the wrapped console.
func (m *Model) Console() *Console { return m.console }

// Keys returns the active key map.
func (m *Model) Keys() KeyMap { return m.keys }

// Visible reports whether the console is shown.
func (m *Model) Visible() bool { return m.console.Visible() }

// ApplyConfig applies key bindings, prompt and hint limits from cfg.
func (m *Model) ApplyConfig(cfg *config.Config) {
	m.keys = NewKeyMap(cfg.Keys)
	m.hintWidth = cfg.UI.HintWidth
	m.console.ApplyConfig(cfg)

	m.input.Prompt = cfg.Console.Prompt
	m.input.PromptStyle = m.theme.Prompt
	m.input.TextStyle = m.theme.Input
	m.input.PlaceholderStyle = m.theme.Placeholder
	m.input.Cursor.Style = m.theme.Prompt
	if m.width > 0 {
		m.SetWidth(m.width)
	}
}

// SetTheme swaps the theme.
func (m *Model) SetTheme(theme *styles.Theme) {
	if theme == nil {
		return
	}
	m.theme = theme
	m.input.PromptStyle = theme.Prompt
	m.input.TextStyle = theme.Input
	m.input.PlaceholderStyle = theme.Placeholder
	m.input.Cursor.Style = theme.Prompt
}

// SetWidth sets the overlay width in columns.
func (m *Model) SetWidth(width int) {
	if width < minWidth {
		width = minWidth
	}
	m.width = width
	// Border and padding take four columns.
	inner := width - 4
	m.input.Width = inner - lipgloss.Width(m.input.Prompt) - 1
	if m.input.Width < 1 {
		m.input.Width = 1
	}

	// Hints never wrap inside the panel.
	if m.hintWidth > 0 && m.hintWidth < inner {
		inner = m.hintWidth
	}
	m.console.completer.MaxWidth = inner
}

// Captures reports whether a key belongs to the console. While hidden only
// the toggle key does.
func (m *Model) Captures(msg tea.KeyMsg) bool {
	return m.console.Visible() || key.Matches(msg, m.keys.Toggle)
}

// Init returns the cursor blink command.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles a message. Key messages are ignored while hidden unless they
// match the toggle binding.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.SetWidth(msg.Width)
		return m, nil

	case ConfigReloadedMsg:
		if msg.Config != nil {
			m.ApplyConfig(msg.Config)
		}
		return m, nil

	case RecacheMsg:
		if err := m.console.Recache(); err != nil {
			return m, emit(ExecutedMsg{Err: err})
		}
		return m, nil
	}

	if !m.console.Visible() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	wasVisible := m.console.Visible()

	if key.Matches(msg, m.keys.Toggle) {
		m.console.Toggle()
		return m, m.afterVisibility(wasVisible)
	}
	if !wasVisible {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		res, err := m.console.Submit(m.ctx)
		m.syncInput()
		var cmds []tea.Cmd
		if !errors.Is(err, commands.ErrEmptyLine) {
			cmds = append(cmds, emit(ExecutedMsg{Result: res, Err: err}))
		}
		cmds = append(cmds, m.afterVisibility(wasVisible))
		return m, tea.Batch(cmds...)

	case key.Matches(msg, m.keys.Complete):
		if m.console.Advance() {
			m.syncInput()
		}
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.console.Cancel()
		return m, m.afterVisibility(wasVisible)

	case key.Matches(msg, m.keys.HistoryPrev):
		if m.console.RecallPrev() {
			m.syncInput()
		}
		return m, nil

	case key.Matches(msg, m.keys.HistoryNext):
		if m.console.RecallNext() {
			m.syncInput()
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.console.SetText(after)
	}
	return m, cmd
}

// syncInput copies the console text into the field with the caret at the end.
func (m *Model) syncInput() {
	m.input.SetValue(m.console.Text())
	m.input.SetCursor(m.console.Caret())
}

func (m *Model) afterVisibility(wasVisible bool) tea.Cmd {
	visible := m.console.Visible()
	if visible == wasVisible {
		return nil
	}
	if visible {
		m.syncInput()
		return tea.Batch(m.input.Focus(), emit(ToggledMsg{Visible: true}))
	}
	m.input.Blur()
	return emit(ToggledMsg{Visible: false})
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the overlay, or "" while hidden.
func (m *Model) View() string {
	if !m.console.Visible() {
		return ""
	}

	sections := []string{
		m.theme.Title.Render(m.title),
		m.input.View(),
	}
	if hint := m.renderHint(); hint != "" {
		sections = append(sections, hint)
	}

	return m.theme.Panel.
		Width(m.width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderHint() string {
	hint := m.console.Hint()
	if hint == "" {
		return ""
	}
	if m.console.Err() != nil {
		return m.theme.RenderError(hint)
	}

	lines := strings.Split(hint, "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = m.theme.HintSelected.Render(line)
		case strings.HasPrefix(line, "... "):
			lines[i] = m.theme.HintMore.Render(line)
		default:
			lines[i] = m.theme.Hint.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
