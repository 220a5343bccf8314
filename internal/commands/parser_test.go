// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{""}},
		{"heal", []string{"heal"}},
		{"spawn orc", []string{"spawn", "orc"}},
		{"spawn ", []string{"spawn", ""}},
		{"give  sword", []string{"give", "", "sword"}},
		{`print "a b"`, []string{"print", `"a`, `b"`}},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Tokenize(tc.input), "Tokenize(%q)", tc.input)
	}
}

func TestSlotIndex(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"he", 0},
		{"heal", 0},
		{"heal ", 1},
		{"heal 1", 1},
		{"give sword ", 2},
		{" heal", 1},
		{"give  ", 2},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, SlotIndex(tc.input), "SlotIndex(%q)", tc.input)
	}
}

func TestTokenAt(t *testing.T) {
	tokens := Tokenize("spawn g")
	assert.Equal(t, "spawn", TokenAt(tokens, 0))
	assert.Equal(t, "g", TokenAt(tokens, 1))
	assert.Equal(t, "", TokenAt(tokens, 2))
	assert.Equal(t, "", TokenAt(tokens, -1))
}

func TestJoinTokensInverse(t *testing.T) {
	for _, s := range []string{"", "a", "a b", "a  b ", " x"} {
		assert.Equal(t, s, JoinTokens(Tokenize(s)))
	}
}

func TestFoldMatching(t *testing.T) {
	assert.True(t, hasPrefixFold("Goblin", "gOB"))
	assert.True(t, hasPrefixFold("anything", ""))
	assert.False(t, hasPrefixFold("orc", "orcs"))
	assert.True(t, equalFold("ÉCLAIR", "éclair"))
}
