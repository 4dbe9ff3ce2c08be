// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snag

import "slices"

// Command builds a subcommand: a positional-like item that, once its name
// matches at the next positional slot, hands every remaining unconsumed
// token to the inner parser as a fresh top-level run. Sibling commands
// inside a Choice behave as ordinary alternatives.
func Command[T any](name, help string, inner Parser[T]) *CommandParser[T] {
	return &CommandParser[T]{name: name, help: help, inner: inner}
}

// CommandParser dispatches to a nested parser once its name is seen.
type CommandParser[T any] struct {
	name    string
	aliases []string
	help    string
	inner   Parser[T]
}

// Alias adds hidden command aliases.
func (c *CommandParser[T]) Alias(names ...string) *CommandParser[T] {
	c.aliases = append(c.aliases, names...)
	return c
}

func (c *CommandParser[T]) meta() *Meta {
	return &Meta{
		Kind:     MetaCommand,
		Name:     c.name,
		Aliases:  slices.Clone(c.aliases),
		Help:     c.help,
		Children: []*Meta{c.inner.meta()},
	}
}

func (c *CommandParser[T]) run(st *state) (T, error) {
	var zero T
	i, ok := st.nextWord()
	if !ok {
		return zero, &MissingError{Meta: c.meta()}
	}
	raw := st.args[i].raw
	if raw != c.name && !slices.Contains(c.aliases, raw) {
		return zero, &MissingError{Meta: c.meta()}
	}
	st.claim(i)

	sub, idxs := st.subState(i)
	v, err := c.inner.run(sub)
	if err != nil {
		return zero, err
	}
	if left, ok := sub.leftover(); ok {
		return zero, &UnexpectedArgError{Arg: left}
	}
	for _, j := range idxs {
		st.consumed[j] = true
	}
	st.count += len(idxs)
	return v, nil
}
