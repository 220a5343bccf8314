// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/devconsole/internal/history"
)

func newTestInvoker(calls *[]call) (*Invoker, *history.Ring) {
	ring := history.New(history.DefaultMax)
	return NewInvoker(newTestRegistry(calls), ring), ring
}

func TestExecuteBindsAndRecords(t *testing.T) {
	var calls []call
	inv, ring := newTestInvoker(&calls)
	ring.Record("heal 10")

	res, err := inv.Execute(context.Background(), "spawn orc")

	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "spawn", calls[0].name)
	assert.Equal(t, Args{Enum("orc")}, calls[0].args)
	assert.Equal(t, []string{"spawn orc", "heal 10"}, ring.Entries())
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "spawn orc", res.Line)
}

func TestExecuteAppliesDefaults(t *testing.T) {
	var calls []call
	inv, _ := newTestInvoker(&calls)

	_, err := inv.Execute(context.Background(), "heal")
	require.NoError(t, err)
	_, err = inv.Execute(context.Background(), "give sword")
	require.NoError(t, err)

	require.Len(t, calls, 2)
	assert.Equal(t, 50, calls[0].args.Int(0))
	assert.Equal(t, "sword", calls[1].args.String(0))
	assert.Equal(t, 1, calls[1].args.Int(1))
}

func TestExecuteTrimsAndMatchesCaseInsensitively(t *testing.T) {
	var calls []call
	inv, ring := newTestInvoker(&calls)

	_, err := inv.Execute(context.Background(), "  SPAWN Goblin  ")

	require.NoError(t, err)
	assert.Equal(t, Args{Enum("goblin")}, calls[0].args)
	assert.Equal(t, []string{"SPAWN Goblin"}, ring.Entries())
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
		kind ErrorKind
	}{
		{"unknown command", "unknown 1 2", ErrUnknownCommand, UnknownCommand},
		{"prefix is not a match", "hea 10", ErrUnknownCommand, UnknownCommand},
		{"missing required", "spawn", ErrMissingRequiredArgument, MissingRequiredArgument},
		{"not an integer", "heal lots", ErrArgumentTypeMismatch, ArgumentTypeMismatch},
		{"not an option", "spawn dragon", ErrArgumentTypeMismatch, ArgumentTypeMismatch},
		{"too many", "heal 1 2", ErrTooManyArguments, TooManyArguments},
		{"double space is an empty token", "heal  5", ErrTooManyArguments, TooManyArguments},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var calls []call
			inv, ring := newTestInvoker(&calls)
			ring.Record("heal 10")

			_, err := inv.Execute(context.Background(), tc.line)

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			var ie *InvokeError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tc.kind, ie.Kind)
			assert.NotEmpty(t, ie.Error())
			assert.Empty(t, calls)
			assert.Equal(t, []string{"heal 10"}, ring.Entries(), "history must be unchanged")
		})
	}
}

func TestExecuteEmptyLine(t *testing.T) {
	inv, ring := newTestInvoker(&[]call{})

	_, err := inv.Execute(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrEmptyLine)
	assert.Zero(t, ring.Len())
}

func TestExecuteHandlerFailure(t *testing.T) {
	reg := NewRegistry(WithSources(func(b *Builder) {
		b.Register(&Command{Name: "fail", Run: func(ctx *Context, args Args) error {
			ctx.Println("partial")
			return errors.New("boom")
		}})
		b.Register(&Command{Name: "explode", Run: func(ctx *Context, args Args) error {
			panic("kaboom")
		}})
	}))
	ring := history.New(5)
	inv := NewInvoker(reg, ring)

	res, err := inv.Execute(context.Background(), "fail")
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.Equal(t, "fail: boom", err.Error())
	require.NotNil(t, res)
	assert.Equal(t, "partial\n", res.Output)

	_, err = inv.Execute(context.Background(), "explode")
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.Contains(t, err.Error(), "kaboom")

	assert.Zero(t, ring.Len())
}

func TestExecuteCapturesOutput(t *testing.T) {
	reg := NewRegistry(WithSources(Builtins(nil)))
	inv := NewInvoker(reg, nil)

	res, err := inv.Execute(context.Background(), "print")
	require.NoError(t, err)
	assert.Equal(t, "HELLO\n", res.Output)

	res, err = inv.Execute(context.Background(), "print hi")
	require.NoError(t, err)
	assert.Equal(t, "hi\n", res.Output)
}

func TestResolveDoesNotRun(t *testing.T) {
	var calls []call
	inv, ring := newTestInvoker(&calls)

	cmd, args, err := inv.Resolve("give shield 3")

	require.NoError(t, err)
	assert.Equal(t, "give", cmd.Name)
	assert.Equal(t, Args{String("shield"), Int(3)}, args)
	assert.Empty(t, calls)
	assert.Zero(t, ring.Len())
}

func TestBuiltins(t *testing.T) {
	ring := history.New(5)
	reg := NewRegistry(WithSources(Builtins(ring)))
	inv := NewInvoker(reg, ring)
	ctx := context.Background()

	res, err := inv.Execute(ctx, "help")
	require.NoError(t, err)
	assert.Contains(t, res.Output, "Console:")
	assert.Contains(t, res.Output, "print TEXT")

	res, err = inv.Execute(ctx, "help history")
	require.NoError(t, err)
	assert.Contains(t, res.Output, "ACTION (enum) = show [show|clear]")

	_, err = inv.Execute(ctx, "help nope")
	assert.ErrorIs(t, err, ErrCommandFailed)

	res, err = inv.Execute(ctx, "history")
	require.NoError(t, err)
	assert.Contains(t, res.Output, "help history")

	res, err = inv.Execute(ctx, "recache")
	require.NoError(t, err)
	assert.Equal(t, "4 commands cached\n", res.Output)

	_, err = inv.Execute(ctx, "history clear")
	require.NoError(t, err)
	assert.Equal(t, []string{"history clear"}, ring.Entries())
}
