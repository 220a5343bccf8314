// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"sort"
	"strings"
)

// HistoryStore is the part of the history ring the built-ins need.
type HistoryStore interface {
	Entries() []string
	Clear()
}

// Builtins returns the console's own commands. hist may be nil, in which case
// the history command is not registered.
func Builtins(hist HistoryStore) Source {
	return func(b *Builder) {
		b.Register(&Command{
			Name:        "help",
			Description: "List commands or describe one",
			Category:    "Console",
			Params: []Param{
				{Name: "command", Kind: KindString, Default: String(""), Description: "Command to describe"},
			},
			Run: HandleHelp,
		})

		b.Register(&Command{
			Name:        "print",
			Description: "Print text to the console and the log",
			Category:    "Console",
			Params: []Param{
				{Name: "text", Kind: KindString, Default: String("HELLO")},
			},
			Run: HandlePrint,
		})

		b.Register(&Command{
			Name:        "recache",
			Description: "Rebuild the command registry",
			Category:    "Console",
			Run:         HandleRecache,
		})

		if hist != nil {
			b.Register(&Command{
				Name:        "history",
				Description: "Show or clear the command history",
				Category:    "Console",
				Params: []Param{
					{Name: "action", Kind: KindEnum, Default: Enum("show"), Options: Options("show", "clear")},
				},
				Run: func(ctx *Context, args Args) error {
					return handleHistory(hist, ctx, args)
				},
			})
		}
	}
}

// HandleHelp prints every visible command grouped by category, or the
// parameters of a single command.
func HandleHelp(ctx *Context, args Args) error {
	name := args.String(0)
	if name != "" {
		cmd := ctx.Registry.Lookup(name)
		if cmd == nil {
			return fmt.Errorf("no command named %q", name)
		}
		ctx.Println(cmd.Usage())
		if cmd.Description != "" {
			ctx.Println("  " + cmd.Description)
		}
		for _, p := range cmd.Params {
			line := fmt.Sprintf("  %s (%s)", p.Usage(), p.Kind)
			if p.HasDefault() {
				line += " = " + p.Default.String()
			}
			if p.HasOptions() {
				line += " [" + strings.Join(p.Options, "|") + "]"
			}
			if p.Description != "" {
				line += " - " + p.Description
			}
			ctx.Println(line)
		}
		return nil
	}

	groups := ctx.Registry.ByCategory()
	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, c := range categories {
		ctx.Println(c + ":")
		for _, cmd := range groups[c] {
			line := "  " + cmd.Usage()
			if cmd.Description != "" {
				line += " - " + cmd.Description
			}
			ctx.Println(line)
		}
	}
	return nil
}

// HandlePrint echoes its argument.
func HandlePrint(ctx *Context, args Args) error {
	text := args.String(0)
	ctx.Logger.Info(text)
	ctx.Println(text)
	return nil
}

// HandleRecache rebuilds the registry from its sources.
func HandleRecache(ctx *Context, args Args) error {
	if err := ctx.Registry.Build(); err != nil {
		return err
	}
	ctx.Printf("%d commands cached\n", ctx.Registry.Len())
	return nil
}

func handleHistory(hist HistoryStore, ctx *Context, args Args) error {
	if args.String(0) == "clear" {
		hist.Clear()
		return nil
	}
	for i, line := range hist.Entries() {
		ctx.Printf("%2d  %s\n", i+1, line)
	}
	return nil
}
