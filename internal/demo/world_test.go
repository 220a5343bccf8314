// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package demo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorld_HealAndDamage(t *testing.T) {
	w := NewWorld()

	hp, err := w.Damage(30)
	require.NoError(t, err)
	assert.Equal(t, 70, hp)

	hp, err = w.Heal(50)
	require.NoError(t, err)
	assert.Equal(t, MaxHealth, hp)

	_, err = w.Heal(0)
	assert.ErrorIs(t, err, ErrBadAmount)

	hp, err = w.Damage(500)
	require.NoError(t, err)
	assert.Zero(t, hp)
}

func TestWorld_HealDoesNotOverflow(t *testing.T) {
	w := NewWorld()
	_, err := w.Damage(60)
	require.NoError(t, err)

	hp, err := w.Heal(math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, MaxHealth, hp)

	hp, err = w.Damage(math.MaxInt)
	require.NoError(t, err)
	assert.Zero(t, hp)
}

func TestWorld_CountsAreCapped(t *testing.T) {
	w := NewWorld()

	assert.ErrorIs(t, w.Spawn(Dragon, math.MaxInt), ErrTooMany)
	require.NoError(t, w.Spawn(Dragon, MaxCount-1))
	assert.ErrorIs(t, w.Spawn(Dragon, 2), ErrTooMany)
	require.NoError(t, w.Spawn(Dragon, 1))
	assert.ErrorIs(t, w.Spawn(Dragon, 0), ErrBadAmount)
	assert.Equal(t, MaxCount, w.Stats().Enemies[Dragon])
	assert.Equal(t, MaxCount*Dragon.Damage(), w.Step())

	assert.ErrorIs(t, w.Give("potion", math.MaxInt), ErrTooMany)
	require.NoError(t, w.Give("potion", MaxCount))
	assert.ErrorIs(t, w.Give("potion", 1), ErrTooMany)
}

func TestWorld_GodIgnoresDamage(t *testing.T) {
	w := NewWorld()
	w.SetGod(true)
	require.NoError(t, w.Spawn(Dragon, 3))

	hp, err := w.Damage(40)
	require.NoError(t, err)
	assert.Equal(t, MaxHealth, hp)
	assert.Zero(t, w.Step())
	assert.Equal(t, MaxHealth, w.Stats().Health)
}

func TestWorld_Step(t *testing.T) {
	w := NewWorld()
	require.NoError(t, w.Spawn(Goblin, 2))
	require.NoError(t, w.Spawn(Troll, 1))

	dmg := w.Step()

	assert.Equal(t, 2*Goblin.Damage()+Troll.Damage(), dmg)
	s := w.Stats()
	assert.Equal(t, 1, s.Tick)
	assert.Equal(t, MaxHealth-dmg, s.Health)
	// The weakest kind in declaration order falls first.
	assert.Equal(t, 1, s.Enemies[Goblin])
	assert.Equal(t, 1, s.Kills)
	assert.Equal(t, 2, s.EnemyCount())
}

func TestWorld_Kill(t *testing.T) {
	w := NewWorld()
	require.NoError(t, w.Spawn(Orc, 4))
	require.NoError(t, w.Spawn(Troll, 2))

	assert.Equal(t, 2, w.Kill(Troll, false))
	assert.Equal(t, 4, w.Stats().EnemyCount())
	assert.Equal(t, 4, w.Kill(0, true))
	assert.Zero(t, w.Stats().EnemyCount())
	assert.Equal(t, 6, w.Stats().Kills)
}

func TestWorld_Use(t *testing.T) {
	w := NewWorld()
	_, err := w.Damage(50)
	require.NoError(t, err)

	_, err = w.Use("potion")
	assert.ErrorIs(t, err, ErrNoSuchItem)

	require.NoError(t, w.Give("potion", 1))
	effect, err := w.Use("potion")
	require.NoError(t, err)
	assert.Equal(t, "health is now 80", effect)
	assert.Empty(t, w.Stats().Inventory)

	require.NoError(t, w.Give("bomb", 2))
	_, err = w.Use("bomb")
	assert.ErrorIs(t, err, ErrNothingHere)

	require.NoError(t, w.Spawn(Orc, 3))
	effect, err = w.Use("bomb")
	require.NoError(t, err)
	assert.Equal(t, "3 enemies destroyed", effect)
	assert.Equal(t, 1, w.Stats().Inventory["bomb"])
}

func TestWorld_TimeScale(t *testing.T) {
	w := NewWorld()

	require.NoError(t, w.SetTimeScale(2.5))
	assert.Equal(t, 2.5, w.TimeScale())
	assert.ErrorIs(t, w.SetTimeScale(0), ErrBadScale)
	assert.ErrorIs(t, w.SetTimeScale(11), ErrBadScale)
	assert.ErrorIs(t, w.SetTimeScale(math.NaN()), ErrBadScale)
	assert.ErrorIs(t, w.SetTimeScale(math.Inf(1)), ErrBadScale)
	assert.Equal(t, 2.5, w.TimeScale())
}

func TestWorld_Reset(t *testing.T) {
	w := NewWorld()
	require.NoError(t, w.Spawn(Orc, 1))
	require.NoError(t, w.Give("sword", 1))
	w.SetGod(true)
	w.Step()

	w.Reset()

	s := w.Stats()
	assert.Equal(t, MaxHealth, s.Health)
	assert.False(t, s.God)
	assert.Zero(t, s.Tick)
	assert.Zero(t, s.EnemyCount())
	assert.Empty(t, s.Inventory)
}

func TestParseMonster(t *testing.T) {
	m, err := ParseMonster("troll")
	require.NoError(t, err)
	assert.Equal(t, Troll, m)

	_, err = ParseMonster("unicorn")
	assert.Error(t, err)
}
