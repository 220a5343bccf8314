// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package demo

import (
	"fmt"
	"strings"

	"github.com/jeranaias/devconsole/internal/commands"
)

const category = "Arena"

// Commands returns the source registering the arena's console commands.
func (w *World) Commands() commands.Source {
	monsters := commands.EnumOptions(Monsters...)

	return func(b *commands.Builder) {
		b.Register(&commands.Command{
			Name:        "heal",
			Description: "Restore player health",
			Category:    category,
			Params: []commands.Param{
				{Name: "amount", Kind: commands.KindInt, Default: commands.Int(50)},
			},
			Run: func(ctx *commands.Context, args commands.Args) error {
				hp, err := w.Heal(args.Int(0))
				if err != nil {
					return err
				}
				ctx.Printf("health is now %d\n", hp)
				return nil
			},
		})

		b.Register(&commands.Command{
			Name:        "damage",
			Description: "Hurt the player",
			Category:    category,
			Params: []commands.Param{
				{Name: "amount", Kind: commands.KindInt},
			},
			Run: func(ctx *commands.Context, args commands.Args) error {
				hp, err := w.Damage(args.Int(0))
				if err != nil {
					return err
				}
				ctx.Printf("health is now %d\n", hp)
				return nil
			},
		})

		b.Register(&commands.Command{
			Name:        "spawn",
			Description: "Spawn enemies into the arena",
			Category:    category,
			Params: []commands.Param{
				{Name: "kind", Kind: commands.KindEnum, Options: monsters},
				{Name: "count", Kind: commands.KindInt, Default: commands.Int(1)},
			},
			Run: func(ctx *commands.Context, args commands.Args) error {
				kind, err := ParseMonster(args.String(0))
				if err != nil {
					return err
				}
				if err := w.Spawn(kind, args.Int(1)); err != nil {
					return err
				}
				ctx.Logger.Debug("spawned", "kind", kind, "count", args.Int(1))
				ctx.Printf("spawned %d %s\n", args.Int(1), kind)
				return nil
			},
		})

		b.Register(&commands.Command{
			Name:        "kill",
			Description: "Remove enemies of one kind, or all of them",
			Category:    category,
			Params: []commands.Param{
				{
					Name:    "kind",
					Kind:    commands.KindEnum,
					Default: commands.Enum("all"),
					Options: append(commands.Options("all"), monsters...),
				},
			},
			Run: func(ctx *commands.Context, args commands.Args) error {
				name := args.String(0)
				if name == "all" {
					ctx.Printf("killed %d\n", w.Kill(0, true))
					return nil
				}
				kind, err := ParseMonster(name)
				if err != nil {
					return err
				}
				ctx.Printf("killed %d\n", w.Kill(kind, false))
				return nil
			},
		})

		b.Register(&commands.Command{
			Name:        "give",
			Description: "Add items to the inventory",
			Category:    category,
			Params: []commands.Param{
				{Name: "item", Kind: commands.KindEnum, Options: commands.Options(Items...)},
				{Name: "count", Kind: commands.KindInt, Default: commands.Int(1)},
			},
			Run: func(ctx *commands.Context, args commands.Args) error {
				if err := w.Give(args.String(0), args.Int(1)); err != nil {
					return err
				}
				ctx.Printf("gave %d %s\n", args.Int(1), args.String(0))
				return nil
			},
		})

		b.Register(&commands.Command{
			Name:        "use",
			Description: "Use an inventory item",
			Category:    category,
			Params: []commands.Param{
				{Name: "item", Kind: commands.KindEnum, Options: commands.Options(Items...)},
			},
			Run: func(ctx *commands.Context, args commands.Args) error {
				effect, err := w.Use(args.String(0))
				if err != nil {
					return err
				}
				ctx.Println(effect)
				return nil
			},
		})

		b.Register(&commands.Command{
			Name:        "god",
			Description: "Toggle invulnerability",
			Category:    category,
			Params: []commands.Param{
				{Name: "on", Kind: commands.KindBool, Default: commands.Bool(true), Options: commands.Options("on", "off")},
			},
			Run: func(ctx *commands.Context, args commands.Args) error {
				w.SetGod(args.Bool(0))
				ctx.Printf("god mode %s\n", onOff(args.Bool(0)))
				return nil
			},
		})

		b.Register(&commands.Command{
			Name:        "timescale",
			Description: "Set the simulation speed",
			Category:    category,
			Params: []commands.Param{
				{Name: "factor", Kind: commands.KindFloat, Options: commands.Options("0.5", "1", "2", "4")},
			},
			Run: func(ctx *commands.Context, args commands.Args) error {
				if err := w.SetTimeScale(args.Float(0)); err != nil {
					return err
				}
				ctx.Printf("time scale %gx\n", args.Float(0))
				return nil
			},
		})

		b.Register(&commands.Command{
			Name:        "status",
			Description: "Print the arena state",
			Category:    category,
			Run: func(ctx *commands.Context, args commands.Args) error {
				ctx.Println(FormatStats(w.Stats()))
				return nil
			},
		})

		b.Register(&commands.Command{
			Name:        "reset",
			Description: "Restart the arena",
			Category:    category,
			Run: func(ctx *commands.Context, args commands.Args) error {
				w.Reset()
				ctx.Println("arena reset")
				return nil
			},
		})

		b.Register(&commands.Command{
			Name:        "crash",
			Description: "Panic inside a handler",
			Category:    category,
			Hidden:      true,
			Run: func(ctx *commands.Context, args commands.Args) error {
				panic("crash requested from the console")
			},
		})
	}
}

// FormatStats renders stats as a single line.
func FormatStats(s Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "tick %d  hp %d/%d", s.Tick, s.Health, MaxHealth)
	if s.God {
		b.WriteString(" (god)")
	}
	fmt.Fprintf(&b, "  speed %gx  kills %d", s.TimeScale, s.Kills)

	var enemies []string
	for _, m := range Monsters {
		if n := s.Enemies[m]; n > 0 {
			enemies = append(enemies, fmt.Sprintf("%s x%d", m, n))
		}
	}
	if len(enemies) > 0 {
		b.WriteString("  enemies: " + strings.Join(enemies, ", "))
	}

	var items []string
	for _, k := range sortedKeys(s.Inventory) {
		items = append(items, fmt.Sprintf("%s x%d", k, s.Inventory[k]))
	}
	if len(items) > 0 {
		b.WriteString("  items: " + strings.Join(items, ", "))
	}
	return b.String()
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
