// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// developer console.
//
// Configuration file location (in order of precedence):
//   - the path given with --config
//   - ~/.devconsole/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/devconsole/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete console configuration.
type Config struct {
	Version string `toml:"version"`

	Console ConsoleConfig `toml:"console"`
	Keys    KeyConfig     `toml:"keys"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// ConsoleConfig controls console behavior.
type ConsoleConfig struct {
	// MaxHistory bounds the number of remembered command lines.
	MaxHistory int `toml:"max_history"`
	// StartVisible opens the console when the host starts.
	StartVisible bool `toml:"start_visible"`
	// Prompt is drawn in front of the input field.
	Prompt string `toml:"prompt"`
}

// KeyConfig lists the key names bound to each console action. Names use the
// terminal key notation ("f1", "ctrl+t", "tab", "`").
type KeyConfig struct {
	Toggle      []string `toml:"toggle"`
	Submit      []string `toml:"submit"`
	Complete    []string `toml:"complete"`
	Cancel      []string `toml:"cancel"`
	HistoryPrev []string `toml:"history_prev"`
	HistoryNext []string `toml:"history_next"`
}

// UIConfig contains display settings.
type UIConfig struct {
	// Theme is "dark", "light" or "auto".
	Theme string `toml:"theme"`
	// HintLines caps the autocomplete block (0 = unlimited).
	HintLines int `toml:"hint_lines"`
	// HintWidth truncates hint lines to this many columns (0 = terminal width).
	HintWidth int `toml:"hint_width"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level"`
	// File receives logs in full-screen mode. Empty discards them there.
	File string `toml:"file"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1",
		Console: ConsoleConfig{
			MaxHistory:   20,
			StartVisible: false,
			Prompt:       "> ",
		},
		Keys: KeyConfig{
			Toggle:      []string{"f1", "`"},
			Submit:      []string{"enter"},
			Complete:    []string{"tab"},
			Cancel:      []string{"esc"},
			HistoryPrev: []string{"up"},
			HistoryNext: []string{"down"},
		},
		UI: UIConfig{
			Theme:     "auto",
			HintLines: 12,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".devconsole"), nil
}

// ConfigPath returns the path to the default TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the default config file if it exists, otherwise returns the
// defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific TOML file with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config %s: %w", path, err)
	}
	fillDefaults(cfg)
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	// Console
	if cfg.Console.MaxHistory == 0 {
		cfg.Console.MaxHistory = defaults.Console.MaxHistory
	}
	if cfg.Console.Prompt == "" {
		cfg.Console.Prompt = defaults.Console.Prompt
	}

	// Keys
	fillKeys(&cfg.Keys.Toggle, defaults.Keys.Toggle)
	fillKeys(&cfg.Keys.Submit, defaults.Keys.Submit)
	fillKeys(&cfg.Keys.Complete, defaults.Keys.Complete)
	fillKeys(&cfg.Keys.Cancel, defaults.Keys.Cancel)
	fillKeys(&cfg.Keys.HistoryPrev, defaults.Keys.HistoryPrev)
	fillKeys(&cfg.Keys.HistoryNext, defaults.Keys.HistoryNext)

	// UI
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}

	// Log
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}

func fillKeys(dst *[]string, def []string) {
	if len(*dst) == 0 {
		*dst = append([]string(nil), def...)
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes the configuration to path atomically.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# devconsole configuration file\n")
	buf.WriteString("# Changes are picked up while the console is running.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// ErrKeyConflict is wrapped by validation errors for keys bound twice.
var ErrKeyConflict = errors.New("key bound to more than one action")

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Console.MaxHistory < 1 || c.Console.MaxHistory > 10000 {
		errs = append(errs, ValidationError{
			Field:   "console.max_history",
			Message: fmt.Sprintf("must be between 1 and 10000 (got %d)", c.Console.MaxHistory),
		})
	}

	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("must be dark, light or auto (got %q)", c.UI.Theme),
		})
	}
	if c.UI.HintLines < 0 {
		errs = append(errs, ValidationError{Field: "ui.hint_lines", Message: "must not be negative"})
	}
	if c.UI.HintWidth < 0 {
		errs = append(errs, ValidationError{Field: "ui.hint_width", Message: "must not be negative"})
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("must be debug, info, warn or error (got %q)", c.Log.Level),
		})
	}

	errs = append(errs, c.Keys.validate()...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (k KeyConfig) validate() ValidateErrors {
	var errs ValidateErrors
	seen := make(map[string]string)
	for _, b := range k.bindings() {
		if len(b.keys) == 0 {
			errs = append(errs, ValidationError{Field: "keys." + b.field, Message: "at least one key is required"})
		}
		for _, key := range b.keys {
			if prev, ok := seen[key]; ok {
				errs = append(errs, ValidationError{
					Field:   "keys." + b.field,
					Message: fmt.Sprintf("%v: %q is also bound to %s", ErrKeyConflict, key, prev),
				})
				continue
			}
			seen[key] = b.field
		}
	}
	return errs
}

type binding struct {
	field string
	keys  []string
}

func (k KeyConfig) bindings() []binding {
	return []binding{
		{"toggle", k.Toggle},
		{"submit", k.Submit},
		{"complete", k.Complete},
		{"cancel", k.Cancel},
		{"history_prev", k.HistoryPrev},
		{"history_next", k.HistoryNext},
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported environment variables:
//   - DEVCONSOLE_MAX_HISTORY: overrides console.max_history
//   - DEVCONSOLE_START_VISIBLE: "1" or "true" opens the console at start
//   - DEVCONSOLE_THEME: overrides ui.theme
//   - DEVCONSOLE_LOG_LEVEL: overrides log.level
//   - DEVCONSOLE_LOG_FILE: overrides log.file
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("DEVCONSOLE_MAX_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Console.MaxHistory = n
		}
	}
	if v := os.Getenv("DEVCONSOLE_START_VISIBLE"); v != "" {
		c.Console.StartVisible = v == "1" || strings.ToLower(v) == "true"
	}
	if v := os.Getenv("DEVCONSOLE_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("DEVCONSOLE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("DEVCONSOLE_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}
