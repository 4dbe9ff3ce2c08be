// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snag

import (
	"fmt"
	"strings"
)

// MetaKind identifies the shape of one node in a parser description.
type MetaKind int

const (
	MetaFlag MetaKind = iota
	MetaArgument
	MetaPositional
	MetaCommand
	MetaAnd
	MetaOr
	MetaMany
	MetaOptional
	MetaAdjacent
)

// Meta is the static description of what a parser accepts: names, arity,
// metavariable, help text and structural combination. It is derived without
// running a parse and is the surface external renderers (usage, help,
// completion) consume.
type Meta struct {
	Kind     MetaKind
	Longs    []string // first long is visible, the rest are hidden aliases
	Shorts   []rune   // same rule for shorts
	Metavar  string
	Help     string
	Env      string
	Name     string   // command name
	Aliases  []string // hidden command aliases
	Strict   bool
	Anywhere bool
	AtLeast  int // minimum repetitions for MetaMany
	Children []*Meta
}

// Describe exposes the parser's metadata without running it.
func Describe[T any](p Parser[T]) *Meta { return p.meta() }

// DisplayName returns the visible name of an item: the first long name if
// there is one, otherwise the first short name, otherwise the metavariable.
func (m *Meta) DisplayName() string {
	if len(m.Longs) > 0 {
		return "--" + m.Longs[0]
	}
	if len(m.Shorts) > 0 {
		return "-" + string(m.Shorts[0])
	}
	if m.Name != "" {
		return m.Name
	}
	return m.Metavar
}

// String renders a compact usage expression for the node, suitable for
// "expected ..." messages.
func (m *Meta) String() string {
	switch m.Kind {
	case MetaFlag:
		return m.DisplayName()
	case MetaArgument:
		return m.DisplayName() + " " + m.Metavar
	case MetaPositional:
		return m.Metavar
	case MetaCommand:
		return m.Name
	case MetaAnd:
		parts := make([]string, 0, len(m.Children))
		for _, c := range m.Children {
			parts = append(parts, c.String())
		}
		return strings.Join(parts, " ")
	case MetaOr:
		parts := make([]string, 0, len(m.Children))
		for _, c := range m.Children {
			parts = append(parts, c.String())
		}
		switch len(parts) {
		case 0:
			return "nothing"
		case 1:
			return parts[0]
		case 2:
			return parts[0] + " or " + parts[1]
		default:
			return strings.Join(parts[:len(parts)-1], ", ") + ", or " + parts[len(parts)-1]
		}
	case MetaMany:
		if len(m.Children) == 1 {
			return m.Children[0].String() + "..."
		}
	case MetaOptional:
		if len(m.Children) == 1 {
			return "[" + m.Children[0].String() + "]"
		}
	case MetaAdjacent:
		if len(m.Children) == 1 {
			return m.Children[0].String()
		}
	}
	return ""
}

// Check validates the composed parser for composition-time defects: empty
// sums, items with no names, and name collisions within one scope. It is
// meant to be called from the application's own test suite, not at run time.
func Check[T any](p Parser[T]) error {
	return checkScope(p.meta())
}

// checkScope validates one command scope. Nested commands open fresh scopes.
func checkScope(m *Meta) error {
	type seen struct {
		longs  map[string]bool
		shorts map[rune]bool
		cmds   map[string]bool
	}
	s := seen{map[string]bool{}, map[rune]bool{}, map[string]bool{}}

	var walk func(m *Meta, alt bool) error
	walk = func(m *Meta, alt bool) error {
		switch m.Kind {
		case MetaFlag, MetaArgument:
			if len(m.Longs) == 0 && len(m.Shorts) == 0 {
				return fmt.Errorf("snag: item %q has no long or short names", m.Metavar)
			}
			for _, l := range m.Longs {
				if s.longs[l] && !alt {
					return fmt.Errorf("snag: name --%s is used more than once", l)
				}
				s.longs[l] = true
			}
			for _, r := range m.Shorts {
				if s.shorts[r] && !alt {
					return fmt.Errorf("snag: name -%s is used more than once", string(r))
				}
				s.shorts[r] = true
			}
		case MetaCommand:
			if m.Name == "" {
				return fmt.Errorf("snag: command with empty name")
			}
			if s.cmds[m.Name] {
				return fmt.Errorf("snag: command %q is used more than once", m.Name)
			}
			s.cmds[m.Name] = true
			for _, c := range m.Children {
				if err := checkScope(c); err != nil {
					return err
				}
			}
			return nil
		case MetaOr:
			if len(m.Children) == 0 {
				return fmt.Errorf("snag: choice with no alternatives")
			}
			// Alternatives may legitimately reuse names across branches.
			for _, c := range m.Children {
				if err := walk(c, true); err != nil {
					return err
				}
			}
			return nil
		}
		for _, c := range m.Children {
			if err := walk(c, alt); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(m, false)
}
