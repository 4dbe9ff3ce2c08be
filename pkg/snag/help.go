// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snag

import (
	"fmt"
	"strings"
)

// usageExpr renders the one-line usage expression for a parser description.
func usageExpr(m *Meta) string {
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
			if e := usageExpr(c); e != "" {
				parts = append(parts, e)
			}
		}
		return strings.Join(parts, " ")
	case MetaOr:
		allCommands := true
		parts := make([]string, 0, len(m.Children))
		for _, c := range m.Children {
			if c.Kind != MetaCommand {
				allCommands = false
			}
			if e := usageExpr(c); e != "" {
				parts = append(parts, e)
			}
		}
		if allCommands && len(parts) > 0 {
			return "COMMAND ..."
		}
		return "(" + strings.Join(parts, " | ") + ")"
	case MetaMany:
		if len(m.Children) == 1 {
			inner := usageExpr(m.Children[0])
			if m.AtLeast == 0 {
				return "[" + inner + "]..."
			}
			return inner + "..."
		}
	case MetaOptional:
		if len(m.Children) == 1 {
			return "[" + usageExpr(m.Children[0]) + "]"
		}
	case MetaAdjacent:
		if len(m.Children) == 1 {
			return usageExpr(m.Children[0])
		}
	}
	return ""
}

// helpItem is one row in a help listing.
type helpItem struct {
	left string
	help string
}

func itemLabel(m *Meta) string {
	var names []string
	for _, r := range m.Shorts[:minLen(m.Shorts, 1)] {
		names = append(names, "-"+string(r))
	}
	for _, l := range m.Longs[:minLen(m.Longs, 1)] {
		names = append(names, "--"+l)
	}
	left := strings.Join(names, ", ")
	if m.Kind == MetaArgument {
		left += " " + m.Metavar
	}
	if m.Env != "" {
		left += " [env: " + m.Env + "]"
	}
	return left
}

func minLen[S ~[]E, E any](s S, n int) int {
	if len(s) < n {
		return len(s)
	}
	return n
}

// collectItems gathers flags/arguments, positionals and commands for the
// help listing, without descending into nested command scopes.
func collectItems(m *Meta, flags, pos, cmds *[]helpItem) {
	switch m.Kind {
	case MetaFlag, MetaArgument:
		*flags = append(*flags, helpItem{left: itemLabel(m), help: m.Help})
		return
	case MetaPositional:
		*pos = append(*pos, helpItem{left: m.Metavar, help: m.Help})
		return
	case MetaCommand:
		*cmds = append(*cmds, helpItem{left: m.Name, help: m.Help})
		return
	}
	for _, c := range m.Children {
		collectItems(c, flags, pos, cmds)
	}
}

func renderSection(b *strings.Builder, title string, items []helpItem) {
	if len(items) == 0 {
		return
	}
	width := 0
	for _, it := range items {
		if len(it.left) > width {
			width = len(it.left)
		}
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, it := range items {
		if it.help == "" {
			fmt.Fprintf(b, "  %s\n", it.left)
			continue
		}
		fmt.Fprintf(b, "  %-*s  %s\n", width, it.left, it.help)
	}
}

// renderHelp is the built-in plain-text help renderer. The usage package
// provides a colored drop-in replacement via App.UsageWith.
func renderHelp(name, descr string, m *Meta) string {
	var b strings.Builder
	if descr != "" {
		fmt.Fprintf(&b, "%s\n\n", descr)
	}
	fmt.Fprintf(&b, "Usage: %s %s\n", name, usageExpr(m))

	var flags, pos, cmds []helpItem
	collectItems(m, &flags, &pos, &cmds)
	renderSection(&b, "Available positional items", pos)
	renderSection(&b, "Available options", flags)
	renderSection(&b, "Available commands", cmds)
	return strings.TrimRight(b.String(), "\n")
}
