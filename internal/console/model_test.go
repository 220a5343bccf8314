// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/devconsole/internal/commands"
	"github.com/jeranaias/devconsole/internal/config"
	"github.com/jeranaias/devconsole/internal/ui/styles"
)

func newTestModel(t *testing.T) (*Model, *arena) {
	t.Helper()
	c, a := newTestConsole(t)
	theme := styles.NewThemeFor(&bytes.Buffer{}, styles.ModeDark)
	return NewModel(c, config.Default(), theme), a
}

// messages runs cmd and returns the messages it produces, flattening
// batches. Commands that do not finish promptly (cursor blink) are dropped.
func messages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(50 * time.Millisecond):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, messages(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func find[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func press(m *Model, k tea.KeyMsg) []tea.Msg {
	_, cmd := m.Update(k)
	return messages(cmd)
}

func typeText(m *Model, s string) {
	for _, r := range s {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

var (
	keyF1    = tea.KeyMsg{Type: tea.KeyF1}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func TestModel_ToggleEmitsMsg(t *testing.T) {
	m, _ := newTestModel(t)

	msgs := press(m, keyF1)

	require.True(t, m.Visible())
	toggled, ok := find[ToggledMsg](msgs)
	require.True(t, ok)
	assert.True(t, toggled.Visible)

	msgs = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'`'}})

	assert.False(t, m.Visible())
	toggled, ok = find[ToggledMsg](msgs)
	require.True(t, ok)
	assert.False(t, toggled.Visible)
}

func TestModel_HiddenIgnoresOtherKeys(t *testing.T) {
	m, _ := newTestModel(t)
	h := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}}

	assert.False(t, m.Captures(h))
	assert.True(t, m.Captures(keyF1))

	typeText(m, "heal")
	press(m, keyEnter)

	assert.False(t, m.Visible())
	assert.Empty(t, m.Console().Text())
	assert.Empty(t, m.View())
}

func TestModel_TypeCompleteSubmit(t *testing.T) {
	m, a := newTestModel(t)
	press(m, keyF1)

	typeText(m, "sp")
	assert.Equal(t, "sp", m.Console().Text())
	assert.Contains(t, m.View(), "spawn KIND COUNT")

	press(m, keyTab)
	assert.Equal(t, "spawn ", m.Console().Text())

	typeText(m, "tr")
	press(m, keyTab)
	assert.Equal(t, "spawn troll ", m.Console().Text())
	typeText(m, "3")

	msgs := press(m, keyEnter)

	executed, ok := find[ExecutedMsg](msgs)
	require.True(t, ok)
	require.NoError(t, executed.Err)
	assert.Equal(t, "spawn troll 3", executed.Result.Line)
	assert.Len(t, a.spawns, 3)

	toggled, ok := find[ToggledMsg](msgs)
	require.True(t, ok)
	assert.False(t, toggled.Visible)
	assert.False(t, m.Visible())
}

func TestModel_FailureShowsDiagnostic(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, keyF1)
	typeText(m, "heal lots")

	msgs := press(m, keyEnter)

	executed, ok := find[ExecutedMsg](msgs)
	require.True(t, ok)
	assert.ErrorIs(t, executed.Err, commands.ErrArgumentTypeMismatch)
	_, toggled := find[ToggledMsg](msgs)
	assert.False(t, toggled)

	assert.True(t, m.Visible())
	view := m.View()
	assert.Contains(t, view, "[X]")
	assert.Contains(t, view, "invalid value for amount")
}

func TestModel_EmptySubmitHidesWithoutExecuting(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, keyF1)

	msgs := press(m, keyEnter)

	_, executed := find[ExecutedMsg](msgs)
	assert.False(t, executed)
	assert.False(t, m.Visible())
}

func TestModel_CancelKeepsText(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, keyF1)
	typeText(m, "heal 5")

	press(m, keyEsc)
	assert.False(t, m.Visible())

	press(m, keyF1)
	assert.Equal(t, "heal 5", m.Console().Text())
	assert.Contains(t, m.View(), "heal 5")
}

func TestModel_HistoryRecall(t *testing.T) {
	m, _ := newTestModel(t)
	for _, line := range []string{"heal 1", "heal 2"} {
		press(m, keyF1)
		typeText(m, line)
		press(m, keyEnter)
	}

	press(m, keyF1)
	press(m, keyUp)
	assert.Equal(t, "heal 2", m.Console().Text())
	press(m, keyUp)
	assert.Equal(t, "heal 1", m.Console().Text())
	press(m, keyDown)
	press(m, keyDown)
	assert.Empty(t, m.Console().Text())
}

func TestModel_ConfigReload(t *testing.T) {
	m, _ := newTestModel(t)
	cfg := config.Default()
	cfg.Keys.Toggle = []string{"ctrl+t"}
	cfg.Console.MaxHistory = 1

	m.Update(ConfigReloadedMsg{Config: cfg})

	press(m, keyF1)
	assert.False(t, m.Visible())
	press(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.True(t, m.Visible())
	assert.Equal(t, 1, m.Console().History().Max())
}

func TestModel_WindowSizeTruncatesHints(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	press(m, keyF1)
	typeText(m, "spawn ")

	for _, line := range strings.Split(m.Console().Hint(), "\n") {
		assert.LessOrEqual(t, len(line), 16)
	}
	assert.Contains(t, m.Console().Hint(), "...")
}

func TestModel_RecacheMsg(t *testing.T) {
	m, _ := newTestModel(t)
	calls := 0
	require.NoError(t, m.Console().Registry().AddSource(func(b *commands.Builder) {
		calls++
	}))
	before := calls

	_, cmd := m.Update(RecacheMsg{})

	assert.Nil(t, cmd)
	assert.Equal(t, before+1, calls)
}
