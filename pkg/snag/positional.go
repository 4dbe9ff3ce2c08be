// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snag

import "fmt"

// Positional builds a positional item that claims the leftmost
// positional-eligible token and converts it with the built-in conversions.
// Multiple positionals inside a product claim tokens in declaration order.
func Positional[T any](metavar string) *PositionalParser[T] {
	return &PositionalParser[T]{metavar: metavar, parse: convertValue[T]}
}

// PositionalWith is Positional with a caller-supplied conversion.
func PositionalWith[T any](metavar string, parse func(string) (T, error)) *PositionalParser[T] {
	return &PositionalParser[T]{metavar: metavar, parse: parse}
}

// PositionalParser claims exactly one bare-word token per invocation.
type PositionalParser[T any] struct {
	metavar string
	help    string
	strict  bool
	parse   func(string) (T, error)
}

// Strict restricts the positional to tokens after the "--" separator.
func (p *PositionalParser[T]) Strict() *PositionalParser[T] {
	p.strict = true
	return p
}

// Help attaches help text.
func (p *PositionalParser[T]) Help(text string) *PositionalParser[T] {
	p.help = text
	return p
}

func (p *PositionalParser[T]) meta() *Meta {
	return &Meta{Kind: MetaPositional, Metavar: p.metavar, Help: p.help, Strict: p.strict}
}

func (p *PositionalParser[T]) run(st *state) (T, error) {
	var zero T
	raw, found := st.takeWord(p.strict)
	if !found {
		return zero, &MissingError{Meta: p.meta()}
	}
	v, err := p.parse(raw)
	if err != nil {
		return zero, &ValueError{
			Item:  p.metavar,
			Value: raw,
			Msg:   fmt.Sprintf("%s: couldn't parse %q: %v", p.metavar, raw, err),
			Err:   err,
		}
	}
	return v, nil
}

// Any builds a matcher from an arbitrary predicate over raw token text. By
// default it examines only the next wholly unclaimed token; Anywhere makes
// it scan the whole pool. The predicate must be side-effect-free, since
// alternative attempts may invoke it several times.
func Any[T any](metavar string, check func(string) (T, bool)) *AnyParser[T] {
	return &AnyParser[T]{metavar: metavar, check: check}
}

// AnyParser claims one token accepted by its predicate.
type AnyParser[T any] struct {
	metavar  string
	help     string
	anywhere bool
	check    func(string) (T, bool)
}

// Anywhere lets the matcher claim the first acceptable token wherever it
// sits, instead of examining only the next one.
func (p *AnyParser[T]) Anywhere() *AnyParser[T] {
	p.anywhere = true
	return p
}

// Help attaches help text.
func (p *AnyParser[T]) Help(text string) *AnyParser[T] {
	p.help = text
	return p
}

func (p *AnyParser[T]) meta() *Meta {
	return &Meta{Kind: MetaPositional, Metavar: p.metavar, Help: p.help, Anywhere: p.anywhere}
}

func (p *AnyParser[T]) run(st *state) (T, error) {
	var zero T
	if p.anywhere {
		for i := range st.args {
			if st.consumed[i] || st.cluster[i] > 0 {
				continue
			}
			if v, ok := p.check(st.args[i].raw); ok {
				st.claim(i)
				return v, nil
			}
		}
		return zero, &MissingError{Meta: p.meta()}
	}
	i, ok := st.nextRaw()
	if !ok {
		return zero, &MissingError{Meta: p.meta()}
	}
	v, ok := p.check(st.args[i].raw)
	if !ok {
		return zero, &MissingError{Meta: p.meta()}
	}
	st.claim(i)
	return v, nil
}
