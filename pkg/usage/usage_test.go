// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package usage

import (
	"strings"
	"testing"

	"github.com/snagrun/snag/pkg/snag"
)

func testParser() snag.Parser[int] {
	verbose := snag.Long("verbose").Short('v').Help("Enable verbose output").Switch()
	size := snag.Argument[int](snag.Long("size").Short('s').Env("DEMO_SIZE").Help("Size in bytes"), "SIZE")
	file := snag.Positional[string]("FILE").Help("Input file")
	return snag.Construct3(verbose, size, file, func(v bool, n int, f string) int { return n })
}

func TestRenderPlain(t *testing.T) {
	out := NewColored(false).Render("demo", "Process a file", snag.Describe(testParser()))
	for _, want := range []string{
		"Process a file",
		"Usage: demo --verbose --size SIZE FILE",
		"Available positional items:",
		"  FILE  Input file",
		"Available options:",
		"-v, --verbose",
		"-s, --size SIZE [env: DEMO_SIZE]",
		"Size in bytes",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("Render output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("plain renderer emitted ANSI escapes:\n%q", out)
	}
}

func TestRenderColored(t *testing.T) {
	out := NewColored(true).Render("demo", "", snag.Describe(testParser()))
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("colored renderer emitted no ANSI escapes:\n%q", out)
	}
}

func TestRenderColumnsIgnoreEscapes(t *testing.T) {
	// Escape sequences must not count toward column width, so plain and
	// colored output agree once escapes are stripped.
	m := snag.Describe(testParser())
	plain := NewColored(false).Render("demo", "", m)
	colored := stripEscapes(NewColored(true).Render("demo", "", m))
	if plain != colored {
		t.Fatalf("colored output misaligned:\nplain:\n%s\ncolored (stripped):\n%s", plain, colored)
	}
}

func TestRenderCommands(t *testing.T) {
	run := snag.Command("run", "Run the binary", snag.Pure("run"))
	build := snag.Command("build", "Build the binary", snag.Pure("build"))
	out := NewColored(false).Render("cargo", "", snag.Describe(snag.Choice[string](run, build)))
	if !strings.Contains(out, "Usage: cargo COMMAND ...") {
		t.Fatalf("Render missing command usage line:\n%s", out)
	}
	if !strings.Contains(out, "Available commands:") {
		t.Fatalf("Render missing commands section:\n%s", out)
	}
	if !strings.Contains(out, "run") || !strings.Contains(out, "Build the binary") {
		t.Fatalf("Render missing command rows:\n%s", out)
	}
}

func stripEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\x1b' {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
