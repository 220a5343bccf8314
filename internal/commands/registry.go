// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command describes a console command that can be invoked by name.
type Command struct {
	// Name is matched case-insensitively and must not contain spaces.
	Name string

	// Description is shown by help.
	Description string

	// Params are the positional parameters, in declaration order.
	Params []Param

	// Run executes the command with bound arguments.
	Run Handler

	// Hidden commands can be invoked but are never suggested.
	Hidden bool

	// Category for grouping in help display
	Category string
}

// Handler executes a command. Returned errors and panics are reported to the
// console, never to the host.
type Handler func(ctx *Context, args Args) error

// Param declares one positional parameter.
type Param struct {
	// Name is shown as the placeholder while typing (uppercased in hints).
	Name string

	// Kind controls conversion of the typed token.
	Kind Kind

	// Default is used when the argument is omitted. The zero Value means the
	// argument is required.
	Default Value

	// Options are autocomplete suggestions for this slot. Enum parameters
	// also validate against them.
	Options []string

	// Description explains the argument
	Description string
}

// HasDefault reports whether the parameter may be omitted.
func (p Param) HasDefault() bool { return !p.Default.IsZero() }

// HasOptions reports whether the slot has declared suggestions.
func (p Param) HasOptions() bool { return len(p.Options) > 0 }

// Usage renders the parameter the way hints show it.
func (p Param) Usage() string {
	return strings.ToUpper(p.Name)
}

// Options builds an option set from a literal list.
func Options(values ...string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// EnumOptions snapshots the symbolic names of enumeration values. Later
// changes to the enumeration's String method are not observed.
func EnumOptions[T fmt.Stringer](values ...T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.String())
	}
	return out
}

// Usage renders "name PARAM1 PARAM2".
func (c *Command) Usage() string {
	var sb strings.Builder
	sb.WriteString(c.Name)
	for _, p := range c.Params {
		sb.WriteString(Separator)
		sb.WriteString(p.Usage())
	}
	return sb.String()
}

// clone copies everything the registry must own.
func (c *Command) clone() *Command {
	out := *c
	out.Name = strings.TrimSpace(c.Name)
	out.Params = make([]Param, len(c.Params))
	for i, p := range c.Params {
		p.Options = Options(p.Options...)
		out.Params[i] = p
	}
	return &out
}

// =============================================================================
// OPTIONS
// =============================================================================

// Option configures a Registry or Invoker.
type Option func(*options)

type options struct {
	logger  *log.Logger
	sources []Source
}

// WithLogger sets the logger used for registry rebuilds and invocations.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSources adds command sources to a registry.
func WithSources(sources ...Source) Option {
	return func(o *options) { o.sources = append(o.sources, sources...) }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}

// =============================================================================
// BUILDER
// =============================================================================

// Source contributes commands to a registry. Sources are re-run on every
// rebuild, so they must be safe to call more than once.
type Source func(b *Builder)

// Builder collects commands during a registry build.
type Builder struct {
	set    *commandSet
	logger *log.Logger
	errs   []error
}

// Register adds a command. A later command with the same case-insensitive
// name replaces the earlier one and keeps its position.
func (b *Builder) Register(cmd *Command) {
	if cmd == nil {
		return
	}
	c := cmd.clone()
	if c.Name == "" {
		b.errs = append(b.errs, errors.New("command with empty name"))
		return
	}
	if strings.Contains(c.Name, Separator) {
		b.errs = append(b.errs, fmt.Errorf("command name %q contains a space", c.Name))
		return
	}

	key := fold(c.Name)
	if idx, ok := b.set.index[key]; ok {
		b.logger.Debug("command replaced", "name", c.Name, "previous", b.set.order[idx].Name)
		b.set.order[idx] = c
		return
	}
	b.set.index[key] = len(b.set.order)
	b.set.order = append(b.set.order, c)
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// commandSet is an immutable snapshot once published.
type commandSet struct {
	order []*Command
	index map[string]int
}

func newCommandSet() *commandSet {
	return &commandSet{index: make(map[string]int)}
}

// Registry holds all registered commands. Reads are lock-free; a rebuild
// publishes a complete new set with a single pointer swap.
type Registry struct {
	mu      sync.Mutex // serializes rebuilds and guards sources
	sources []Source
	set     atomic.Pointer[commandSet]
	logger  *log.Logger
}

// NewRegistry creates a registry and builds it from the given sources.
func NewRegistry(opts ...Option) *Registry {
	o := buildOptions(opts)
	r := &Registry{
		sources: o.sources,
		logger:  o.logger,
	}
	r.set.Store(newCommandSet())
	if err := r.Build(); err != nil {
		r.logger.Error("command registry build failed", "err", err)
	}
	return r
}

// Build re-runs every source and replaces the entire command set. On error
// the previous set stays in place.
func (r *Registry) Build() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buildLocked()
}

// Recache is Build under the name the console uses for it.
func (r *Registry) Recache() error {
	return r.Build()
}

func (r *Registry) buildLocked() error {
	b := &Builder{set: newCommandSet(), logger: r.logger}
	for _, src := range r.sources {
		src(b)
	}
	if len(b.errs) > 0 {
		return fmt.Errorf("build command registry: %w", errors.Join(b.errs...))
	}
	r.set.Store(b.set)
	r.logger.Info("command registry built", "commands", len(b.set.order))
	return nil
}

// AddSource appends a source and rebuilds.
func (r *Registry) AddSource(src Source) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, src)
	if err := r.buildLocked(); err != nil {
		r.sources = r.sources[:len(r.sources)-1]
		return err
	}
	return nil
}

// Register adds a single command and rebuilds.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil {
		return errors.New("register: nil command")
	}
	c := cmd.clone()
	return r.AddSource(func(b *Builder) { b.Register(c) })
}

// Lookup finds a command by case-insensitive exact name.
func (r *Registry) Lookup(name string) *Command {
	set := r.set.Load()
	if idx, ok := set.index[fold(name)]; ok {
		return set.order[idx]
	}
	return nil
}

// All returns every command in registration order. The returned commands
// must not be modified.
func (r *Registry) All() []*Command {
	set := r.set.Load()
	out := make([]*Command, len(set.order))
	copy(out, set.order)
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.set.Load().order)
}

// ByCategory returns visible commands grouped by category.
func (r *Registry) ByCategory() map[string][]*Command {
	result := make(map[string][]*Command)
	for _, cmd := range r.All() {
		if cmd.Hidden {
			continue
		}
		category := cmd.Category
		if category == "" {
			category = "General"
		}
		result[category] = append(result[category], cmd)
	}
	return result
}
