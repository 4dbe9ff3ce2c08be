// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snag

import (
	"errors"
	"fmt"
)

// MissingError reports that an item's name or position was simply not present
// in the input. It is the soft failure kind: Optional, Many and Fallback
// recover from it, everything else propagates it unchanged.
type MissingError struct {
	// Meta describes what was expected, for message rendering.
	Meta *Meta
}

func (e *MissingError) Error() string {
	if e.Meta == nil {
		return "expected more arguments"
	}
	return fmt.Sprintf("expected %s", e.Meta)
}

// ValueError reports a value that was present but failed conversion or
// validation. Fallback and Optional do not silently recover from it.
type ValueError struct {
	Item  string // the item that rejected the value, e.g. "--width" or "NUM"
	Value string // offending raw text, may be empty
	Msg   string
	Err   error
}

func (e *ValueError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: invalid value %q", e.Item, e.Value)
}

func (e *ValueError) Unwrap() error { return e.Err }

// UnexpectedArgError reports leftover input after a structurally successful
// parse. It is always a hard top-level failure.
type UnexpectedArgError struct {
	Arg string
}

func (e *UnexpectedArgError) Error() string {
	return fmt.Sprintf("unexpected argument %q", e.Arg)
}

// MessageError is a hard failure with a caller-supplied message, produced by
// Some with no matches and by adjacency violations.
type MessageError struct {
	Msg string
}

func (e *MessageError) Error() string { return e.Msg }

func isMissing(err error) bool {
	var m *MissingError
	return errors.As(err, &m)
}

// Failure is the structured outcome of a failed or short-circuited run.
// Help and version requests are failures with Stdout set and a zero exit
// code; parse errors go to stderr with a non-zero exit code. Failure
// implements error so callers and test harnesses handle both uniformly.
type Failure struct {
	Message  string
	ExitCode int
	Stdout   bool
	Err      error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }
