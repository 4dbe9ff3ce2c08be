// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snag

import (
	"fmt"
	"slices"
	"strings"
)

// App wraps a composed parser with the metadata and capabilities one
// end-to-end run needs: a program name, optional description and version,
// an injected environment lookup, and a usage rendering hook. The core
// never reads process globals; callers pass the argument list to Run and
// wire a lookup (for example envsrc.OS) explicitly.
type App[T any] struct {
	name    string
	descr   string
	version string
	parser  Parser[T]
	lookup  func(string) (string, bool)
	usage   func(name, descr string, m *Meta) string
}

// NewApp builds a run driver around a composed parser.
func NewApp[T any](name string, p Parser[T]) *App[T] {
	return &App[T]{name: name, parser: p, usage: renderHelp}
}

// Descr sets the one-line description shown at the top of help output.
func (a *App[T]) Descr(s string) *App[T] {
	a.descr = s
	return a
}

// Version enables --version with the given version string.
func (a *App[T]) Version(s string) *App[T] {
	a.version = s
	return a
}

// Lookup injects the environment capability used by Env fallbacks.
func (a *App[T]) Lookup(fn func(string) (string, bool)) *App[T] {
	a.lookup = fn
	return a
}

// UsageWith replaces the built-in plain-text help renderer.
func (a *App[T]) UsageWith(fn func(name, descr string, m *Meta) string) *App[T] {
	a.usage = fn
	return a
}

// Run performs one end-to-end parse attempt: it seeds a fresh token pool,
// answers help and version requests, invokes the parser, and verifies full
// consumption. On failure the returned error is always a *Failure.
func (a *App[T]) Run(args []string) (T, error) {
	var zero T
	if f := a.scanHelp(args); f != nil {
		return zero, f
	}
	st := newState(args, a.lookup)
	v, err := a.parser.run(st)
	if err != nil {
		return zero, a.fail(err)
	}
	if left, ok := st.leftover(); ok {
		return zero, a.fail(&UnexpectedArgError{Arg: left})
	}
	return v, nil
}

// scanHelp answers --help/-h and --version before parsing, so a help
// request wins over any parse error. Help is scoped to the innermost
// command named before the help flag.
func (a *App[T]) scanHelp(args []string) *Failure {
	name := a.name
	descr := a.descr
	m := a.parser.meta()
	for _, s := range args {
		if s == "--" {
			break
		}
		switch s {
		case "--help", "-h":
			return &Failure{
				Message:  a.usage(name, descr, m),
				ExitCode: 0,
				Stdout:   true,
			}
		case "--version":
			if a.version != "" {
				return &Failure{
					Message:  fmt.Sprintf("%s %s", a.name, a.version),
					ExitCode: 0,
					Stdout:   true,
				}
			}
		}
		if !strings.HasPrefix(s, "-") {
			if cm := findCommand(m, s); cm != nil {
				name = name + " " + cm.Name
				descr = cm.Help
				m = cm.Children[0]
			}
		}
	}
	return nil
}

func (a *App[T]) fail(err error) *Failure {
	msg := err.Error()
	if u := usageExpr(a.parser.meta()); u != "" {
		msg += fmt.Sprintf("\nUsage: %s %s", a.name, u)
	}
	return &Failure{Message: msg, ExitCode: 1, Err: err}
}

// findCommand locates a command node reachable without crossing another
// command boundary.
func findCommand(m *Meta, name string) *Meta {
	if m.Kind == MetaCommand {
		if m.Name == name || slices.Contains(m.Aliases, name) {
			return m
		}
		return nil
	}
	for _, c := range m.Children {
		if found := findCommand(c, name); found != nil {
			return found
		}
	}
	return nil
}

// ParseArgs runs a bare parser against an argument list, without an App:
// no help handling, no env lookup, raw taxonomy errors. Intended for tests
// and for embedding the engine under another front end.
func ParseArgs[T any](p Parser[T], args []string) (T, error) {
	var zero T
	st := newState(args, nil)
	v, err := p.run(st)
	if err != nil {
		return zero, err
	}
	if left, ok := st.leftover(); ok {
		return zero, &UnexpectedArgError{Arg: left}
	}
	return v, nil
}
