// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the command engine behind the developer console.
//
// Commands are declared explicitly and collected into a Registry, completed
// keystroke by keystroke by a Completer, and executed by an Invoker.
//
// # Key Types
//
//   - Registry: case-insensitive command table, rebuilt atomically from Sources
//   - Command, Param: command descriptors with per-slot autocomplete options
//   - Completer: candidates, per-slot options, hint rendering, line completion
//   - Invoker: binds tokens to typed arguments and runs the handler
//   - InvokeError: recoverable resolution, binding and handler failures
//
// # Input Model
//
// Input is split on single spaces only. The slot being edited is the number of
// spaces typed so far, so "spawn " is already at slot 1 and shows the options
// for the first argument.
//
// # Usage
//
// Declare commands:
//
//	reg := commands.NewRegistry(commands.WithSources(func(b *commands.Builder) {
//	    b.Register(&commands.Command{
//	        Name:   "spawn",
//	        Params: []commands.Param{{Name: "kind", Kind: commands.KindEnum, Options: commands.Options("orc", "goblin")}},
//	        Run:    spawn,
//	    })
//	}))
//
// Complete and run:
//
//	completer := commands.NewCompleter(reg)
//	text, _ := completer.Advance("sp")   // "spawn"
//	_, err := commands.NewInvoker(reg, ring).Execute(ctx, "spawn orc")
package commands
