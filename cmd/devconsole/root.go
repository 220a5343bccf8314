// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jeranaias/devconsole/internal/config"
	"github.com/jeranaias/devconsole/internal/console"
	"github.com/jeranaias/devconsole/internal/demo"
)

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "devconsole",
		Short: "An in-application developer console",
		Long: `devconsole runs a small arena simulation with a developer console
overlaid on it. Press the toggle key (F1 or backtick by default) to open the
console, type a command, TAB to complete and ENTER to run it.

Examples:
  devconsole                 Run the arena with the console
  devconsole repl            Use the same commands from a line prompt
  devconsole commands        List every registered command
  devconsole config init     Write the default configuration file`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return runBatch(cmd, flags, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return runTUI(cmd, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default is $HOME/.devconsole/config.toml)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&flags.theme, "theme", "", "color theme: dark, light or auto")
	root.Flags().BoolVar(&flags.visible, "visible", false, "open the console at start")

	root.AddCommand(newReplCommand(flags))
	root.AddCommand(newCommandsCommand(flags))
	root.AddCommand(newConfigCommand(flags))
	return root
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// runTUI runs the arena full screen. Logs go to the configured file or are
// discarded so they do not tear the screen.
func runTUI(cmd *cobra.Command, flags *globalFlags) error {
	a, err := newApp(flags, io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	c := console.New(a.registry, a.history,
		console.WithLogger(a.logger.WithPrefix("console")),
		console.WithVisible(a.cfg.Console.StartVisible),
	)
	cm := console.NewModel(c, a.cfg, a.theme)
	cm.SetContext(cmd.Context())
	cm.SetTitle("devconsole " + Version)

	host := demo.NewHost(a.world, cm, a.theme)
	p := tea.NewProgram(host,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	// The watcher hands reloads to the UI loop, which owns the console.
	stop, err := a.watchConfig(cmd.Context(), func(cfg *config.Config) {
		p.Send(console.ConfigReloadedMsg{Config: cfg})
		p.Send(console.RecacheMsg{})
	})
	if err != nil {
		return err
	}
	defer stop()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running devconsole: %w", err)
	}
	return nil
}
