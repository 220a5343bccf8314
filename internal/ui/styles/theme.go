// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds the styles used by the console overlay, the REPL and the demo
// host. Styles are bound to the theme's own renderer, so two themes with
// different modes can coexist.
type Theme struct {
	Mode         string
	IsDark       bool
	ColorProfile termenv.Profile

	renderer *lipgloss.Renderer

	// ==========================================================================
	// CONSOLE OVERLAY
	// ==========================================================================

	Panel       lipgloss.Style
	Title       lipgloss.Style
	Prompt      lipgloss.Style
	Input       lipgloss.Style
	Placeholder lipgloss.Style

	// ==========================================================================
	// AUTOCOMPLETE HINTS
	// ==========================================================================

	Hint         lipgloss.Style
	HintSelected lipgloss.Style
	HintMore     lipgloss.Style

	// ==========================================================================
	// COMMAND OUTPUT
	// ==========================================================================

	Output  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style

	// ==========================================================================
	// HOST SCREEN
	// ==========================================================================

	StatusBar lipgloss.Style
	Key       lipgloss.Style
	KeyDesc   lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
}

// NewTheme creates a theme writing to stdout. mode is "dark", "light" or
// "auto"; auto asks the terminal for its background color.
func NewTheme(mode string) *Theme {
	return NewThemeFor(os.Stdout, mode)
}

// NewThemeFor creates a theme for a specific output, detecting its color
// profile.
func NewThemeFor(w io.Writer, mode string) *Theme {
	r := lipgloss.NewRenderer(w)

	switch strings.ToLower(mode) {
	case ModeDark:
		r.SetHasDarkBackground(true)
	case ModeLight:
		r.SetHasDarkBackground(false)
	default:
		mode = ModeAuto
	}

	t := &Theme{
		Mode:         strings.ToLower(mode),
		IsDark:       r.HasDarkBackground(),
		ColorProfile: r.ColorProfile(),
		renderer:     r,
	}
	t.initStyles()
	return t
}

// WithProfile returns a copy of the theme rendered with a fixed color
// profile. termenv.Ascii disables all color.
func (t *Theme) WithProfile(p termenv.Profile) *Theme {
	cp := *t
	cp.renderer = lipgloss.NewRenderer(io.Discard)
	cp.renderer.SetColorProfile(p)
	cp.renderer.SetHasDarkBackground(t.IsDark)
	cp.ColorProfile = p
	cp.initStyles()
	return &cp
}

// Renderer returns the lipgloss renderer the styles are bound to.
func (t *Theme) Renderer() *lipgloss.Renderer {
	return t.renderer
}

func (t *Theme) initStyles() {
	r := t.renderer

	// Console overlay
	t.Panel = r.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.Title = r.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.Prompt = r.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.Input = r.NewStyle().
		Foreground(TextPrimary)

	t.Placeholder = r.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Hints
	t.Hint = r.NewStyle().
		Foreground(TextSecondary)

	t.HintSelected = r.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.HintMore = r.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Output
	t.Output = r.NewStyle().
		Foreground(TextPrimary)

	t.Success = r.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.Error = r.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.Warning = r.NewStyle().
		Foreground(Amber)

	t.Info = r.NewStyle().
		Foreground(Cyan)

	t.Muted = r.NewStyle().
		Foreground(TextMuted)

	// Host screen
	t.StatusBar = r.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.Key = r.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.KeyDesc = r.NewStyle().
		Foreground(TextMuted)

	t.Label = r.NewStyle().
		Foreground(TextSecondary)

	t.Value = r.NewStyle().
		Foreground(TextPrimary).
		Bold(true)
}

// =============================================================================
// STATUS HELPERS
// =============================================================================

// RenderSuccess renders a message with the success indicator.
func (t *Theme) RenderSuccess(message string) string {
	return t.Success.Render(StatusIndicators.Success + " " + message)
}

// RenderError renders a message with the error indicator.
func (t *Theme) RenderError(message string) string {
	return t.Error.Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a message with the warning indicator.
func (t *Theme) RenderWarning(message string) string {
	return t.Warning.Render(StatusIndicators.Warning + " " + message)
}

// RenderInfo renders a message with the info indicator.
func (t *Theme) RenderInfo(message string) string {
	return t.Info.Render(StatusIndicators.Info + " " + message)
}

// RenderStatus picks RenderSuccess or RenderError.
func (t *Theme) RenderStatus(success bool, message string) string {
	if success {
		return t.RenderSuccess(message)
	}
	return t.RenderError(message)
}
