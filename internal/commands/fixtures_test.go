// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

// monster is an enumeration whose names feed an option set.
type monster int

const (
	orc monster = iota
	goblin
	troll
)

func (m monster) String() string {
	switch m {
	case orc:
		return "orc"
	case goblin:
		return "goblin"
	case troll:
		return "troll"
	}
	return "unknown"
}

// call records one handler invocation.
type call struct {
	name string
	args Args
}

// testSource registers heal, spawn, spawnwave, give and a hidden command.
// Every handler appends to calls.
func testSource(calls *[]call) Source {
	rec := func(ctx *Context, args Args) error {
		*calls = append(*calls, call{name: ctx.Command.Name, args: args})
		return nil
	}
	return func(b *Builder) {
		b.Register(&Command{
			Name:   "heal",
			Params: []Param{{Name: "amount", Kind: KindInt, Default: Int(50)}},
			Run:    rec,
		})
		b.Register(&Command{
			Name:   "spawn",
			Params: []Param{{Name: "kind", Kind: KindEnum, Options: EnumOptions(orc, goblin, troll)}},
			Run:    rec,
		})
		b.Register(&Command{
			Name:   "spawnwave",
			Params: []Param{{Name: "count", Kind: KindInt}},
			Run:    rec,
		})
		b.Register(&Command{
			Name: "give",
			Params: []Param{
				{Name: "item", Kind: KindString, Options: Options("sword", "shield", "potion")},
				{Name: "count", Kind: KindInt, Default: Int(1)},
			},
			Run: rec,
		})
		b.Register(&Command{
			Name:   "godmode",
			Hidden: true,
			Params: []Param{{Name: "on", Kind: KindBool, Default: Bool(true)}},
			Run:    rec,
		})
	}
}

func newTestRegistry(calls *[]call) *Registry {
	return NewRegistry(WithSources(testSource(calls)))
}

func names(cmds []*Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Name
	}
	return out
}
