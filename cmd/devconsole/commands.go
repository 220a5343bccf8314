// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/devconsole/internal/commands"
	"github.com/jeranaias/devconsole/internal/util"
)

func newCommandsCommand(flags *globalFlags) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List registered console commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()
			return listCommands(cmd.OutOrStdout(), a.registry, all)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include hidden commands")
	return cmd
}

// listCommands prints commands grouped by category as aligned columns.
func listCommands(out io.Writer, reg *commands.Registry, all bool) error {
	groups := make(map[string][]*commands.Command)
	for _, c := range reg.All() {
		if c.Hidden && !all {
			continue
		}
		category := c.Category
		if category == "" {
			category = "General"
		}
		groups[category] = append(groups[category], c)
	}

	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for i, category := range categories {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, category+":")

		var rows [][]string
		for _, c := range groups[category] {
			desc := c.Description
			if c.Hidden {
				desc += " (hidden)"
			}
			rows = append(rows, []string{"  " + c.Name, paramList(c), desc})
		}
		fmt.Fprint(out, util.Columns(rows))
	}
	return nil
}

// paramList renders parameters with their defaults, e.g. "KIND [COUNT=1]".
func paramList(c *commands.Command) string {
	parts := make([]string, len(c.Params))
	for i, p := range c.Params {
		if p.HasDefault() {
			parts[i] = fmt.Sprintf("[%s=%s]", p.Usage(), p.Default)
			continue
		}
		parts[i] = p.Usage()
	}
	return strings.Join(parts, " ")
}
