// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/devconsole/internal/commands"
	"github.com/jeranaias/devconsole/internal/config"
	"github.com/jeranaias/devconsole/internal/ui/styles"
)

func newReplCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Run console commands from a line prompt",
		Long: `Run console commands from a line prompt with tab completion and
history. When stdin is not a terminal, each input line is executed in turn.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdin) {
				return runBatch(cmd, flags, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return runREPL(cmd, flags)
		},
	}
}

// runREPL drives the engine from a liner prompt.
func runREPL(cmd *cobra.Command, flags *globalFlags) error {
	a, err := newApp(flags, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	stop, err := a.watchConfig(cmd.Context(), func(cfg *config.Config) {
		// Both are safe to call off the prompt goroutine.
		a.history.SetMax(cfg.Console.MaxHistory)
		if err := a.registry.Recache(); err != nil {
			a.logger.Warn("recache failed", "err", err)
		}
	})
	if err != nil {
		return err
	}
	defer stop()

	completer := commands.NewCompleter(a.registry)
	completer.MaxLines = a.cfg.UI.HintLines
	invoker := commands.NewInvoker(a.registry, a.history, commands.WithLogger(a.logger))

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	line.SetCompleter(func(text string) []string {
		return replCompletions(completer, text)
	})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, a.theme.Muted.Render("devconsole "+Version+"; type help for commands, ctrl+d to exit"))

	for {
		input, err := line.Prompt(a.cfg.Console.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if cmd.Context().Err() != nil {
			return nil
		}

		if execute(cmd, invoker, a.theme, out, input) {
			line.AppendHistory(strings.TrimSpace(input))
		}
	}
}

// runBatch executes stdin line by line. Failures are reported and do not stop
// the run; the returned error says how many lines failed.
func runBatch(cmd *cobra.Command, flags *globalFlags, in io.Reader, out io.Writer) error {
	a, err := newApp(flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	invoker := commands.NewInvoker(a.registry, a.history, commands.WithLogger(a.logger))
	failed := 0

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if cmd.Context().Err() != nil {
			break
		}
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		if !execute(cmd, invoker, a.theme, out, text) {
			failed++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d command(s) failed", failed)
	}
	return nil
}

// execute runs one line and prints its output or diagnostic. It reports
// whether the command succeeded.
func execute(cmd *cobra.Command, inv *commands.Invoker, theme *styles.Theme, out io.Writer, input string) bool {
	res, err := inv.Execute(cmd.Context(), input)
	if res != nil && res.Output != "" {
		fmt.Fprint(out, res.Output)
	}
	switch {
	case errors.Is(err, commands.ErrEmptyLine):
		return false
	case err != nil:
		fmt.Fprintln(out, theme.RenderError(err.Error()))
		return false
	}
	return true
}

// replCompletions returns the advance-completion result. When the hint
// offers more than one line, the alternatives follow so liner can list them.
// Every entry ends the way Advance would end it.
func replCompletions(c *commands.Completer, text string) []string {
	completed, ok := c.Advance(text)
	if !ok {
		return nil
	}

	var alternatives []string
	cands := c.Candidates(text)
	slot := commands.SlotIndex(text)
	if slot == 0 {
		for _, cmd := range cands {
			alternatives = append(alternatives, withSeparator(cmd, slot, cmd.Name))
		}
	} else if cmd := cands[0]; slot <= len(cmd.Params) && cmd.Params[slot-1].HasOptions() {
		tokens := commands.Tokenize(text)
		prefix := commands.JoinTokens(append([]string{cmd.Name}, tokens[1:slot]...))
		for _, opt := range c.OptionsForSlot(cmd, slot, commands.TokenAt(tokens, slot)) {
			alternatives = append(alternatives, withSeparator(cmd, slot, prefix+commands.Separator+opt))
		}
	}

	out := []string{completed}
	if len(alternatives) <= 1 {
		return out
	}
	for _, alt := range alternatives {
		if alt != completed {
			out = append(out, alt)
		}
	}
	return out
}

// withSeparator appends the separator under the same rule as
// Completer.Advance.
func withSeparator(cmd *commands.Command, slot int, text string) string {
	if len(cmd.Params) > 1 && slot < len(cmd.Params) {
		return text + commands.Separator
	}
	return text
}
