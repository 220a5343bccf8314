// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package demo

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/devconsole/internal/console"
	"github.com/jeranaias/devconsole/internal/ui/styles"
)

// =============================================================================
// MESSAGES AND KEYS
// =============================================================================

// TickMsg advances the simulation.
type TickMsg time.Time

// baseTick is the tick interval at time scale 1.
const baseTick = 500 * time.Millisecond

// maxLogLines bounds the event log.
const maxLogLines = 200

type hostKeys struct {
	Pause key.Binding
	Quit  key.Binding
}

func defaultHostKeys() hostKeys {
	return hostKeys{
		Pause: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// hostHelp merges the host keys with the console's for the help line.
type hostHelp struct {
	host    hostKeys
	console console.KeyMap
}

func (h hostHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.console.Toggle, h.host.Pause, h.host.Quit}
}

func (h hostHelp) FullHelp() [][]key.Binding {
	return append([][]key.Binding{{h.host.Pause, h.host.Quit}}, h.console.FullHelp()...)
}

// =============================================================================
// HOST MODEL
// =============================================================================

// Host is the arena screen with the console overlaid at the bottom. The
// simulation pauses while the console is open.
type Host struct {
	world   *World
	console *console.Model
	theme   *styles.Theme
	keys    hostKeys
	help    help.Model
	log     viewport.Model
	lines   []string

	paused   bool
	quitting bool
	width    int
	height   int
}

// NewHost creates the host around an existing world and console model.
func NewHost(world *World, cm *console.Model, theme *styles.Theme) *Host {
	h := &Host{
		world:   world,
		console: cm,
		theme:   theme,
		keys:    defaultHostKeys(),
		help:    help.New(),
		log:     viewport.New(80, 10),
		width:   80,
		height:  24,
	}
	h.help.Styles.ShortKey = theme.Key
	h.help.Styles.ShortDesc = theme.KeyDesc
	h.appendLog(theme.Muted.Render("press " + cm.Keys().Toggle.Help().Key + " to open the console"))
	return h
}

// World returns the simulated world.
func (h *Host) World() *World { return h.world }

// Paused reports whether the simulation is paused by the user.
func (h *Host) Paused() bool { return h.paused }

// Log returns the event log lines.
func (h *Host) Log() []string {
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

// Init implements tea.Model.
func (h *Host) Init() tea.Cmd {
	return tea.Batch(h.console.Init(), h.tick())
}

func (h *Host) tick() tea.Cmd {
	interval := time.Duration(float64(baseTick) / h.world.TimeScale())
	return tea.Tick(interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update implements tea.Model.
func (h *Host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if h.console.Captures(msg) {
			var cmd tea.Cmd
			h.console, cmd = h.console.Update(msg)
			return h, cmd
		}
		switch {
		case key.Matches(msg, h.keys.Quit):
			h.quitting = true
			return h, tea.Quit
		case key.Matches(msg, h.keys.Pause):
			h.paused = !h.paused
		}
		return h, nil

	case tea.WindowSizeMsg:
		h.width, h.height = msg.Width, msg.Height
		h.help.Width = msg.Width
		h.console, _ = h.console.Update(msg)
		h.resizeLog()
		return h, nil

	case TickMsg:
		if !h.paused && !h.console.Visible() {
			before := h.world.Stats().Health
			if dmg := h.world.Step(); dmg > 0 {
				after := h.world.Stats().Health
				if after == 0 && before > 0 {
					h.appendLog(h.theme.RenderError("you died. type reset in the console"))
				}
			}
		}
		return h, h.tick()

	case console.ExecutedMsg:
		h.recordExecution(msg)
		return h, nil

	case console.ToggledMsg:
		h.resizeLog()
		return h, nil
	}

	var cmd tea.Cmd
	h.console, cmd = h.console.Update(msg)
	return h, cmd
}

func (h *Host) recordExecution(msg console.ExecutedMsg) {
	if msg.Err != nil {
		h.appendLog(h.theme.RenderError(msg.Err.Error()))
		return
	}
	if msg.Result == nil {
		return
	}
	h.appendLog(h.theme.Prompt.Render("> ") + msg.Result.Line)
	for _, line := range strings.Split(strings.TrimRight(msg.Result.Output, "\n"), "\n") {
		if line != "" {
			h.appendLog("  " + h.theme.Output.Render(line))
		}
	}
}

func (h *Host) appendLog(line string) {
	h.lines = append(h.lines, line)
	if len(h.lines) > maxLogLines {
		h.lines = h.lines[len(h.lines)-maxLogLines:]
	}
	h.log.SetContent(strings.Join(h.lines, "\n"))
	h.log.GotoBottom()
}

// resizeLog gives the log whatever the header, overlay and help line leave.
func (h *Host) resizeLog() {
	used := lipgloss.Height(h.header()) + lipgloss.Height(h.footer())
	if ov := h.console.View(); ov != "" {
		used += lipgloss.Height(ov)
	}
	height := h.height - used
	if height < 1 {
		height = 1
	}
	h.log.Width = h.width
	h.log.Height = height
	h.log.GotoBottom()
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (h *Host) View() string {
	if h.quitting {
		return ""
	}
	h.resizeLog()

	parts := []string{h.header(), h.log.View()}
	if ov := h.console.View(); ov != "" {
		parts = append(parts, ov)
	}
	parts = append(parts, h.footer())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (h *Host) header() string {
	s := h.world.Stats()
	state := ""
	switch {
	case h.console.Visible():
		state = h.theme.Warning.Render(" [console]")
	case h.paused:
		state = h.theme.Warning.Render(" [paused]")
	}
	return h.theme.Title.Render("arena") + state + "\n" + h.theme.Label.Render(FormatStats(s))
}

func (h *Host) footer() string {
	return h.help.View(hostHelp{host: h.keys, console: h.console.Keys()})
}
