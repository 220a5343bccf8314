// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"

	"golang.org/x/text/cases"
)

// =============================================================================
// TOKENIZER
// =============================================================================

// Separator is the only token separator. There is no quoting or escaping.
const Separator = " "

// Tokenize splits input on single spaces. Consecutive spaces yield empty
// tokens and the empty string yields one empty token.
//
//	Tokenize("spawn orc")  // ["spawn", "orc"]
//	Tokenize("spawn ")     // ["spawn", ""]
func Tokenize(text string) []string {
	return strings.Split(text, Separator)
}

// SlotIndex returns the editing slot for raw, untrimmed input: the number of
// spaces typed so far. 0 is the command name, 1 the first argument, and so on.
// A trailing space already advances the slot so the next argument's options
// can be previewed before anything is typed.
func SlotIndex(text string) int {
	return strings.Count(text, Separator)
}

// TokenAt returns the token typed for a slot, or "" if the slot has not been
// reached yet.
func TokenAt(tokens []string, slot int) string {
	if slot < 0 || slot >= len(tokens) {
		return ""
	}
	return tokens[slot]
}

// JoinTokens is the inverse of Tokenize.
func JoinTokens(tokens []string) string {
	return strings.Join(tokens, Separator)
}

// =============================================================================
// CASE FOLDING
// =============================================================================

// fold returns the Unicode case-folded form of s. A Caser keeps state, so a
// fresh one is used per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func equalFold(a, b string) bool {
	return fold(a) == fold(b)
}

func hasPrefixFold(s, prefix string) bool {
	if prefix == "" {
		return true
	}
	return strings.HasPrefix(fold(s), fold(prefix))
}
