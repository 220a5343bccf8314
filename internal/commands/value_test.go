// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	enum := Param{Name: "kind", Kind: KindEnum, Options: Options("orc", "goblin")}

	tests := []struct {
		name    string
		param   Param
		token   string
		want    Value
		wantErr bool
	}{
		{"string", Param{Kind: KindString}, "Hello", String("Hello"), false},
		{"untyped is string", Param{}, "x", String("x"), false},
		{"int", Param{Kind: KindInt}, "-42", Int(-42), false},
		{"int rejects text", Param{Kind: KindInt}, "many", Value{}, true},
		{"int rejects float", Param{Kind: KindInt}, "1.5", Value{}, true},
		{"float", Param{Kind: KindFloat}, "0.25", Float(0.25), false},
		{"float rejects text", Param{Kind: KindFloat}, "fast", Value{}, true},
		{"float rejects NaN", Param{Kind: KindFloat}, "NaN", Value{}, true},
		{"float rejects Inf", Param{Kind: KindFloat}, "Inf", Value{}, true},
		{"float rejects -Inf", Param{Kind: KindFloat}, "-inf", Value{}, true},
		{"float rejects overflow", Param{Kind: KindFloat}, "1e400", Value{}, true},
		{"bool on", Param{Kind: KindBool}, "ON", Bool(true), false},
		{"bool 0", Param{Kind: KindBool}, "0", Bool(false), false},
		{"bool rejects", Param{Kind: KindBool}, "maybe", Value{}, true},
		{"enum canonical", enum, "GOBLIN", Enum("goblin"), false},
		{"enum rejects", enum, "troll", Value{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := convert(tc.param, tc.token)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValueAccessors(t *testing.T) {
	assert.True(t, Value{}.IsZero())
	assert.Equal(t, "", Value{}.String())
	assert.Equal(t, KindInt, Int(3).Kind())
	assert.Equal(t, 3.0, Int(3).Float())
	assert.Equal(t, int64(2), Float(2.9).Int())
	assert.Equal(t, "2.5", Float(2.5).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "orc", Enum("orc").Str())
}

func TestArgsOutOfRange(t *testing.T) {
	args := Args{Int(1)}
	assert.Equal(t, 1, args.Int(0))
	assert.True(t, args.At(5).IsZero())
	assert.Equal(t, "", args.String(-1))
	assert.False(t, args.Bool(3))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "enum", KindEnum.String())
	assert.Equal(t, "none", Kind(99).String())
}
