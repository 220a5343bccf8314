// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package demo

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// =============================================================================
// MONSTERS
// =============================================================================

// Monster is an enemy kind.
type Monster int

const (
	Orc Monster = iota
	Goblin
	Troll
	Dragon
)

// Monsters lists every kind in declaration order.
var Monsters = []Monster{Orc, Goblin, Troll, Dragon}

func (m Monster) String() string {
	switch m {
	case Orc:
		return "orc"
	case Goblin:
		return "goblin"
	case Troll:
		return "troll"
	case Dragon:
		return "dragon"
	}
	return "unknown"
}

// Damage is what one monster of this kind deals per tick.
func (m Monster) Damage() int {
	switch m {
	case Orc:
		return 3
	case Goblin:
		return 1
	case Troll:
		return 5
	case Dragon:
		return 12
	}
	return 0
}

// ParseMonster returns the kind with the given name.
func ParseMonster(name string) (Monster, error) {
	for _, m := range Monsters {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown monster %q", name)
}

// Items that can be given to the player.
var Items = []string{"sword", "shield", "potion", "bomb"}

// =============================================================================
// WORLD
// =============================================================================

// Errors returned by world operations.
var (
	ErrDead        = errors.New("player is dead")
	ErrBadAmount   = errors.New("amount must be positive")
	ErrTooMany     = fmt.Errorf("at most %d of each kind", MaxCount)
	ErrBadScale    = errors.New("time scale must be between 0.1 and 10")
	ErrNoSuchItem  = errors.New("no such item in inventory")
	ErrNothingHere = errors.New("no enemies to fight")
)

const (
	// MaxHealth caps the player's health.
	MaxHealth = 100
	// MaxCount caps enemies of one kind and items of one name.
	MaxCount = 1000
	// potionHeal is restored by one potion.
	potionHeal = 30
)

// Stats is a point-in-time copy of the world.
type Stats struct {
	Tick      int
	Health    int
	God       bool
	TimeScale float64
	Enemies   map[Monster]int
	Inventory map[string]int
	Kills     int
}

// EnemyCount returns the number of live enemies.
func (s Stats) EnemyCount() int {
	n := 0
	for _, c := range s.Enemies {
		n += c
	}
	return n
}

// World is the arena simulation the console manipulates. All methods are
// safe for concurrent use.
type World struct {
	mu        sync.Mutex
	tick      int
	health    int
	god       bool
	timeScale float64
	enemies   map[Monster]int
	inventory map[string]int
	kills     int
}

// NewWorld creates a world with a healthy player and no enemies.
func NewWorld() *World {
	return &World{
		health:    MaxHealth,
		timeScale: 1,
		enemies:   make(map[Monster]int),
		inventory: make(map[string]int),
	}
}

// Stats returns a snapshot.
func (w *World) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()

	enemies := make(map[Monster]int, len(w.enemies))
	for k, v := range w.enemies {
		enemies[k] = v
	}
	inventory := make(map[string]int, len(w.inventory))
	for k, v := range w.inventory {
		inventory[k] = v
	}
	return Stats{
		Tick:      w.tick,
		Health:    w.health,
		God:       w.god,
		TimeScale: w.timeScale,
		Enemies:   enemies,
		Inventory: inventory,
		Kills:     w.kills,
	}
}

// TimeScale returns the simulation speed multiplier.
func (w *World) TimeScale() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.timeScale
}

// Step advances the simulation one tick: every enemy deals its damage and
// the player strikes down one enemy, weakest first. It returns the damage
// taken.
func (w *World) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.tick++
	if w.health <= 0 {
		return 0
	}

	damage := 0
	for m, n := range w.enemies {
		damage += m.Damage() * n
	}
	if w.god {
		damage = 0
	}
	w.health -= damage
	if w.health < 0 {
		w.health = 0
	}

	for _, m := range Monsters {
		if w.enemies[m] > 0 {
			w.removeLocked(m, 1)
			w.kills++
			break
		}
	}
	return damage
}

// Heal restores health up to MaxHealth and returns the new value.
func (w *World) Heal(amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrBadAmount
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if amount >= MaxHealth-w.health {
		w.health = MaxHealth
	} else {
		w.health += amount
	}
	return w.health, nil
}

// Damage hurts the player unless god mode is on and returns the new health.
func (w *World) Damage(amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrBadAmount
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.god {
		w.health -= amount
		if w.health < 0 {
			w.health = 0
		}
	}
	return w.health, nil
}

// Spawn adds count enemies of kind. No kind may exceed MaxCount.
func (w *World) Spawn(kind Monster, count int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := checkCount(w.enemies[kind], count); err != nil {
		return err
	}
	w.enemies[kind] += count
	return nil
}

// Kill removes every enemy of kind, or all enemies when all is true. It
// returns how many were removed.
func (w *World) Kill(kind Monster, all bool) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := 0
	for m, c := range w.enemies {
		if all || m == kind {
			n += c
			delete(w.enemies, m)
		}
	}
	w.kills += n
	return n
}

func (w *World) removeLocked(m Monster, n int) {
	w.enemies[m] -= n
	if w.enemies[m] <= 0 {
		delete(w.enemies, m)
	}
}

// Give adds count of item to the inventory, up to MaxCount of each.
func (w *World) Give(item string, count int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := checkCount(w.inventory[item], count); err != nil {
		return err
	}
	w.inventory[item] += count
	return nil
}

// Use consumes one item. Potions heal; bombs clear the arena.
func (w *World) Use(item string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.inventory[item] <= 0 {
		return "", fmt.Errorf("%s: %w", item, ErrNoSuchItem)
	}
	if w.health <= 0 {
		return "", ErrDead
	}

	var effect string
	switch item {
	case "potion":
		w.health += potionHeal
		if w.health > MaxHealth {
			w.health = MaxHealth
		}
		effect = fmt.Sprintf("health is now %d", w.health)
	case "bomb":
		if len(w.enemies) == 0 {
			return "", ErrNothingHere
		}
		n := 0
		for m, c := range w.enemies {
			n += c
			delete(w.enemies, m)
		}
		w.kills += n
		effect = fmt.Sprintf("%d enemies destroyed", n)
	default:
		effect = "equipped " + item
	}

	w.inventory[item]--
	if w.inventory[item] == 0 {
		delete(w.inventory, item)
	}
	return effect, nil
}

// SetGod turns invulnerability on or off.
func (w *World) SetGod(on bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.god = on
}

// SetTimeScale sets the simulation speed.
func (w *World) SetTimeScale(scale float64) error {
	if !(scale >= 0.1 && scale <= 10) {
		return ErrBadScale
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.timeScale = scale
	return nil
}

// Reset restores the initial state.
func (w *World) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tick = 0
	w.health = MaxHealth
	w.god = false
	w.timeScale = 1
	w.enemies = make(map[Monster]int)
	w.inventory = make(map[string]int)
	w.kills = 0
}

func checkCount(have, count int) error {
	if count <= 0 {
		return ErrBadAmount
	}
	if count > MaxCount-have {
		return ErrTooMany
	}
	return nil
}

// sortedKeys returns map keys in a stable order for display.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
