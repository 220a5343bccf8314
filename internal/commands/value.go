// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// ARGUMENT KINDS
// =============================================================================

// Kind is the declared type of a command parameter.
type Kind int

const (
	KindNone   Kind = iota // Absent value (no default declared)
	KindString             // Free-form text
	KindInt                // Base-10 integer
	KindFloat              // Floating point number
	KindBool               // true/false, on/off, yes/no, 1/0
	KindEnum               // One of the parameter's declared options
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	default:
		return "none"
	}
}

// =============================================================================
// VALUE
// =============================================================================

// Value is a bound argument. The zero Value is absent.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

// String makes a text value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int makes an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float makes a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool makes a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Enum makes an enumeration symbol value.
func Enum(symbol string) Value { return Value{kind: KindEnum, s: symbol} }

// Kind reports which variant the value holds.
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether the value is absent.
func (v Value) IsZero() bool { return v.kind == KindNone }

// Str returns the text of a string or enum value.
func (v Value) Str() string { return v.s }

// Int returns the integer; floats are truncated.
func (v Value) Int() int64 {
	if v.kind == KindFloat {
		return int64(v.f)
	}
	return v.i
}

// Float returns the number; integers are widened.
func (v Value) Float() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// Bool returns the boolean.
func (v Value) Bool() bool { return v.b }

// String formats the value the way a user would type it.
func (v Value) String() string {
	switch v.kind {
	case KindString, KindEnum:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// =============================================================================
// CONVERSION
// =============================================================================

// convert turns a typed token into a value of the parameter's kind.
func convert(p Param, token string) (Value, error) {
	switch p.Kind {
	case KindString, KindNone:
		return String(token), nil
	case KindInt:
		i, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%q is not an integer", token)
		}
		return Int(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, fmt.Errorf("%q is not a number", token)
		}
		return Float(f), nil
	case KindBool:
		switch strings.ToLower(token) {
		case "true", "on", "yes", "1":
			return Bool(true), nil
		case "false", "off", "no", "0":
			return Bool(false), nil
		}
		return Value{}, fmt.Errorf("%q is not a boolean", token)
	case KindEnum:
		for _, opt := range p.Options {
			if equalFold(opt, token) {
				return Enum(opt), nil
			}
		}
		return Value{}, fmt.Errorf("%q is not one of %s", token, strings.Join(p.Options, ", "))
	default:
		return Value{}, fmt.Errorf("unsupported parameter kind %d", p.Kind)
	}
}

// =============================================================================
// ARGS
// =============================================================================

// Args are the bound arguments passed to a handler, one per declared parameter.
type Args []Value

// At returns the value at position i, or the zero value when out of range.
func (a Args) At(i int) Value {
	if i < 0 || i >= len(a) {
		return Value{}
	}
	return a[i]
}

// String returns the text at position i.
func (a Args) String(i int) string { return a.At(i).String() }

// Int returns the integer at position i as an int.
func (a Args) Int(i int) int { return int(a.At(i).Int()) }

// Float returns the number at position i.
func (a Args) Float(i int) float64 { return a.At(i).Float() }

// Bool returns the boolean at position i.
func (a Args) Bool(i int) bool { return a.At(i).Bool() }
