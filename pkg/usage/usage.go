// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package usage renders colored help screens for snag parsers. Wire it
// into an app with snag.App.UsageWith:
//
//	app := snag.NewApp("demo", parser).UsageWith(usage.New().Render)
//
// Color is applied only when stdout is a terminal and the usual opt-outs
// (NO_COLOR, TERM=dumb) are absent; otherwise the output matches the
// plain built-in renderer.
package usage

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/snagrun/snag/pkg/snag"
	"golang.org/x/term"
)

var isTerminalFn = term.IsTerminal // for tests

// Renderer renders help text for a parser description.
type Renderer struct {
	heading *color.Color
	item    *color.Color
	metavar *color.Color
}

// New returns a Renderer that colors its output when stdout is a
// terminal, NO_COLOR is unset, and TERM is usable.
func New() *Renderer {
	enabled := isTerminalFn(int(os.Stdout.Fd()))
	if os.Getenv("NO_COLOR") != "" {
		enabled = false
	}
	if t := os.Getenv("TERM"); t == "" || t == "dumb" {
		enabled = false
	}
	return NewColored(enabled)
}

// NewColored returns a Renderer with color forced on or off.
func NewColored(enabled bool) *Renderer {
	r := &Renderer{
		heading: color.New(color.FgYellow, color.Underline),
		item:    color.New(color.FgGreen),
		metavar: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{r.heading, r.item, r.metavar} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Render produces the full help screen. Its signature matches what
// snag.App.UsageWith expects.
func (r *Renderer) Render(name, descr string, m *snag.Meta) string {
	var b strings.Builder
	if descr != "" {
		fmt.Fprintf(&b, "%s\n\n", descr)
	}
	fmt.Fprintf(&b, "%s %s %s\n", r.heading.Sprint("Usage:"), name, r.expr(m))

	var flags, pos, cmds []row
	r.collect(m, &flags, &pos, &cmds)
	r.section(&b, "Available positional items", pos)
	r.section(&b, "Available options", flags)
	r.section(&b, "Available commands", cmds)
	return strings.TrimRight(b.String(), "\n")
}

// expr renders the one-line usage expression for a description node.
func (r *Renderer) expr(m *snag.Meta) string {
	switch m.Kind {
	case snag.MetaFlag:
		return r.item.Sprint(m.DisplayName())
	case snag.MetaArgument:
		return r.item.Sprint(m.DisplayName()) + " " + r.metavar.Sprint(m.Metavar)
	case snag.MetaPositional:
		return r.metavar.Sprint(m.Metavar)
	case snag.MetaCommand:
		return r.item.Sprint(m.Name)
	case snag.MetaAnd:
		parts := make([]string, 0, len(m.Children))
		for _, c := range m.Children {
			if e := r.expr(c); e != "" {
				parts = append(parts, e)
			}
		}
		return strings.Join(parts, " ")
	case snag.MetaOr:
		allCommands := true
		parts := make([]string, 0, len(m.Children))
		for _, c := range m.Children {
			if c.Kind != snag.MetaCommand {
				allCommands = false
			}
			if e := r.expr(c); e != "" {
				parts = append(parts, e)
			}
		}
		if allCommands && len(parts) > 0 {
			return r.item.Sprint("COMMAND") + " ..."
		}
		return "(" + strings.Join(parts, " | ") + ")"
	case snag.MetaMany:
		if len(m.Children) == 1 {
			inner := r.expr(m.Children[0])
			if m.AtLeast == 0 {
				return "[" + inner + "]..."
			}
			return inner + "..."
		}
	case snag.MetaOptional:
		if len(m.Children) == 1 {
			return "[" + r.expr(m.Children[0]) + "]"
		}
	case snag.MetaAdjacent:
		if len(m.Children) == 1 {
			return r.expr(m.Children[0])
		}
	}
	return ""
}

// row is one entry in a help listing. width is tracked on the plain
// text so ANSI escapes do not skew column alignment.
type row struct {
	plain string
	left  string
	help  string
}

func (r *Renderer) collect(m *snag.Meta, flags, pos, cmds *[]row) {
	switch m.Kind {
	case snag.MetaFlag, snag.MetaArgument:
		var plain, left []string
		if len(m.Shorts) > 0 {
			plain = append(plain, "-"+string(m.Shorts[0]))
			left = append(left, r.item.Sprint("-"+string(m.Shorts[0])))
		}
		if len(m.Longs) > 0 {
			plain = append(plain, "--"+m.Longs[0])
			left = append(left, r.item.Sprint("--"+m.Longs[0]))
		}
		p, l := strings.Join(plain, ", "), strings.Join(left, ", ")
		if m.Kind == snag.MetaArgument {
			p += " " + m.Metavar
			l += " " + r.metavar.Sprint(m.Metavar)
		}
		if m.Env != "" {
			p += " [env: " + m.Env + "]"
			l += " [env: " + m.Env + "]"
		}
		*flags = append(*flags, row{plain: p, left: l, help: m.Help})
		return
	case snag.MetaPositional:
		*pos = append(*pos, row{plain: m.Metavar, left: r.metavar.Sprint(m.Metavar), help: m.Help})
		return
	case snag.MetaCommand:
		*cmds = append(*cmds, row{plain: m.Name, left: r.item.Sprint(m.Name), help: m.Help})
		return
	}
	for _, c := range m.Children {
		r.collect(c, flags, pos, cmds)
	}
}

func (r *Renderer) section(b *strings.Builder, title string, rows []row) {
	if len(rows) == 0 {
		return
	}
	width := 0
	for _, it := range rows {
		if len(it.plain) > width {
			width = len(it.plain)
		}
	}
	fmt.Fprintf(b, "\n%s\n", r.heading.Sprint(title+":"))
	for _, it := range rows {
		if it.help == "" {
			fmt.Fprintf(b, "  %s\n", it.left)
			continue
		}
		pad := strings.Repeat(" ", width-len(it.plain))
		fmt.Fprintf(b, "  %s%s  %s\n", it.left, pad, it.help)
	}
}
