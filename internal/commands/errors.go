// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
)

// ErrorKind classifies invocation failures.
type ErrorKind int

const (
	UnknownCommand ErrorKind = iota + 1
	MissingRequiredArgument
	ArgumentTypeMismatch
	TooManyArguments
	CommandFailed
)

// Sentinel errors matched by errors.Is against an *InvokeError.
var (
	ErrEmptyLine               = errors.New("empty command line")
	ErrUnknownCommand          = errors.New("unknown command")
	ErrMissingRequiredArgument = errors.New("missing required argument")
	ErrArgumentTypeMismatch    = errors.New("argument type mismatch")
	ErrTooManyArguments        = errors.New("too many arguments")
	ErrCommandFailed           = errors.New("command failed")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case UnknownCommand:
		return ErrUnknownCommand
	case MissingRequiredArgument:
		return ErrMissingRequiredArgument
	case ArgumentTypeMismatch:
		return ErrArgumentTypeMismatch
	case TooManyArguments:
		return ErrTooManyArguments
	case CommandFailed:
		return ErrCommandFailed
	}
	return nil
}

// String returns the sentinel message for the kind.
func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return "invoke error"
}

// InvokeError is a recoverable failure to resolve, bind or run a command line.
// Error() is short enough to show as a one-line console diagnostic.
type InvokeError struct {
	Kind    ErrorKind
	Command string
	Param   string
	Token   string
	Err     error
}

func (e *InvokeError) Error() string {
	switch e.Kind {
	case UnknownCommand:
		return fmt.Sprintf("unknown command %q", e.Command)
	case MissingRequiredArgument:
		return fmt.Sprintf("%s: missing required argument %s", e.Command, e.Param)
	case ArgumentTypeMismatch:
		msg := fmt.Sprintf("%s: invalid value for %s", e.Command, e.Param)
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	case TooManyArguments:
		return fmt.Sprintf("%s: unexpected argument %q", e.Command, e.Token)
	case CommandFailed:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Command, e.Err)
		}
		return e.Command + ": command failed"
	}
	return "invoke error"
}

// Is matches the sentinel for the error's kind.
func (e *InvokeError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (e *InvokeError) Unwrap() error { return e.Err }
