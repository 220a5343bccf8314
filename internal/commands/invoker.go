// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Context is what a handler sees while it runs.
type Context struct {
	// Ctx is the caller's context.
	Ctx context.Context

	// Out collects output shown in the console after the command returns.
	Out io.Writer

	// Logger is tagged with the command name and invocation ID.
	Logger *log.Logger

	// Registry lets built-in commands introspect or re-cache commands.
	Registry *Registry

	// Command is the resolved command.
	Command *Command

	// Line is the trimmed input line.
	Line string
}

// Printf writes formatted output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// Println writes a line of output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// =============================================================================
// INVOKER
// =============================================================================

// Recorder receives successfully executed lines.
type Recorder interface {
	Record(line string)
}

// Result describes a completed invocation.
type Result struct {
	ID       string
	Command  *Command
	Args     Args
	Line     string
	Output   string
	Duration time.Duration
}

// Invoker resolves command lines against a registry and runs them.
type Invoker struct {
	registry *Registry
	history  Recorder
	logger   *log.Logger
}

// NewInvoker creates an invoker. history may be nil.
func NewInvoker(registry *Registry, history Recorder, opts ...Option) *Invoker {
	o := buildOptions(opts)
	return &Invoker{
		registry: registry,
		history:  history,
		logger:   o.logger,
	}
}

// Resolve looks up the command for a line and binds its arguments without
// running it. Omitted trailing arguments take their declared defaults.
func (inv *Invoker) Resolve(line string) (*Command, Args, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil, ErrEmptyLine
	}
	tokens := Tokenize(line)

	cmd := inv.registry.Lookup(tokens[0])
	if cmd == nil {
		return nil, nil, &InvokeError{Kind: UnknownCommand, Command: tokens[0]}
	}

	args, err := Bind(cmd, tokens[1:])
	if err != nil {
		return cmd, nil, err
	}
	return cmd, args, nil
}

// Bind converts tokens positionally into the command's parameter kinds,
// padding omitted trailing parameters with their defaults.
func Bind(cmd *Command, tokens []string) (Args, error) {
	if len(tokens) > len(cmd.Params) {
		return nil, &InvokeError{Kind: TooManyArguments, Command: cmd.Name, Token: tokens[len(cmd.Params)]}
	}

	args := make(Args, len(cmd.Params))
	for i, p := range cmd.Params {
		if i >= len(tokens) {
			if !p.HasDefault() {
				return nil, &InvokeError{Kind: MissingRequiredArgument, Command: cmd.Name, Param: p.Name}
			}
			args[i] = p.Default
			continue
		}

		v, err := convert(p, tokens[i])
		if err != nil {
			return nil, &InvokeError{Kind: ArgumentTypeMismatch, Command: cmd.Name, Param: p.Name, Token: tokens[i], Err: err}
		}
		args[i] = v
	}
	return args, nil
}

// Execute resolves, binds and runs a command line. On success the trimmed
// line is recorded in history. Every failure is returned as an error; handler
// panics are recovered and reported as CommandFailed.
func (inv *Invoker) Execute(ctx context.Context, line string) (*Result, error) {
	line = strings.TrimSpace(line)
	cmd, args, err := inv.Resolve(line)
	if err != nil {
		if err != ErrEmptyLine {
			inv.logger.Warn("command rejected", "line", line, "err", err)
		}
		return nil, err
	}

	res := &Result{
		ID:      uuid.NewString(),
		Command: cmd,
		Args:    args,
		Line:    line,
	}
	var out bytes.Buffer
	hctx := &Context{
		Ctx:      ctx,
		Out:      &out,
		Logger:   inv.logger.With("command", cmd.Name, "id", res.ID),
		Registry: inv.registry,
		Command:  cmd,
		Line:     line,
	}

	start := time.Now()
	runErr := run(cmd, hctx, args)
	res.Duration = time.Since(start)
	res.Output = out.String()

	if runErr != nil {
		inv.logger.Warn("command failed", "command", cmd.Name, "id", res.ID, "err", runErr)
		return res, &InvokeError{Kind: CommandFailed, Command: cmd.Name, Err: runErr}
	}

	if inv.history != nil {
		inv.history.Record(line)
	}
	inv.logger.Info("command executed", "command", cmd.Name, "id", res.ID, "duration", res.Duration)
	return res, nil
}

// run calls the handler, converting a panic into an error.
func run(cmd *Command, ctx *Context, args Args) (err error) {
	if cmd.Run == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return cmd.Run(ctx, args)
}
