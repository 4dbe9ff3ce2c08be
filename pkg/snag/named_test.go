// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snag

import (
	"errors"
	"testing"
)

func TestSwitch(t *testing.T) {
	p := Long("verbose").Short('v').Switch()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "absent", args: []string{}, want: false},
		{name: "long", args: []string{"--verbose"}, want: true},
		{name: "short", args: []string{"-v"}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(p, tt.args)
			if err != nil {
				t.Fatalf("ParseArgs(%v) error: %v", tt.args, err)
			}
			if got != tt.want {
				t.Fatalf("ParseArgs(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestSwitchRejectsJoinedValue(t *testing.T) {
	p := Long("verbose").Switch()
	_, err := ParseArgs(p, []string{"--verbose=yes"})
	var ve *ValueError
	if !errors.As(err, &ve) {
		t.Fatalf("ParseArgs(--verbose=yes) error = %v, want *ValueError", err)
	}
}

func TestReqFlagAbsentIsMissing(t *testing.T) {
	p := ReqFlag(Long("force"), true)
	_, err := ParseArgs(p, []string{})
	var me *MissingError
	if !errors.As(err, &me) {
		t.Fatalf("ParseArgs() error = %v, want *MissingError", err)
	}
}

func TestFlagValues(t *testing.T) {
	p := Flag(Long("color"), "always", "never")

	got, err := ParseArgs(p, []string{"--color"})
	if err != nil || got != "always" {
		t.Fatalf("ParseArgs(--color) = %q, %v, want %q", got, err, "always")
	}
	got, err = ParseArgs(p, []string{})
	if err != nil || got != "never" {
		t.Fatalf("ParseArgs() = %q, %v, want %q", got, err, "never")
	}
}

func TestArgumentForms(t *testing.T) {
	p := Argument[int](Long("size").Short('s'), "SIZE")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "long separate", args: []string{"--size", "100"}, want: 100},
		{name: "long joined", args: []string{"--size=100"}, want: 100},
		{name: "short separate", args: []string{"-s", "100"}, want: 100},
		{name: "short joined", args: []string{"-s=100"}, want: 100},
		{name: "short adjacent", args: []string{"-s100"}, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(p, tt.args)
			if err != nil {
				t.Fatalf("ParseArgs(%v) error: %v", tt.args, err)
			}
			if got != tt.want {
				t.Fatalf("ParseArgs(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestSquashedShortsSplit(t *testing.T) {
	// -abfoo resolves as -a -b=foo when b takes a value.
	a := Short('a').Switch()
	b := Argument[string](Short('b'), "VAL")
	p := Construct2(a, b, func(a bool, b string) [2]any { return [2]any{a, b} })

	got, err := ParseArgs(p, []string{"-abfoo"})
	if err != nil {
		t.Fatalf("ParseArgs(-abfoo) error: %v", err)
	}
	if got[0] != true || got[1] != "foo" {
		t.Fatalf("ParseArgs(-abfoo) = %#v, want [true foo]", got)
	}
}

func TestSquashedSwitches(t *testing.T) {
	a := Short('a').Switch()
	b := Short('b').Switch()
	p := Construct2(a, b, func(a, b bool) [2]bool { return [2]bool{a, b} })

	got, err := ParseArgs(p, []string{"-ab"})
	if err != nil {
		t.Fatalf("ParseArgs(-ab) error: %v", err)
	}
	if got != [2]bool{true, true} {
		t.Fatalf("ParseArgs(-ab) = %#v, want [true true]", got)
	}
}

func TestArgumentInvalidValue(t *testing.T) {
	p := Argument[int](Long("size"), "SIZE")
	_, err := ParseArgs(p, []string{"--size", "big"})
	var ve *ValueError
	if !errors.As(err, &ve) {
		t.Fatalf("ParseArgs(--size big) error = %v, want *ValueError", err)
	}
	if ve.Value != "big" {
		t.Fatalf("ValueError.Value = %q, want %q", ve.Value, "big")
	}
}

func TestArgumentAbsentIsMissing(t *testing.T) {
	p := Argument[int](Long("size"), "SIZE")
	_, err := ParseArgs(p, []string{})
	var me *MissingError
	if !errors.As(err, &me) {
		t.Fatalf("ParseArgs() error = %v, want *MissingError", err)
	}
}

func TestArgumentRequiresValue(t *testing.T) {
	p := Argument[int](Long("size"), "SIZE")
	_, err := ParseArgs(p, []string{"--size"})
	var ve *ValueError
	if !errors.As(err, &ve) {
		t.Fatalf("ParseArgs(--size) error = %v, want *ValueError", err)
	}
}

func TestArgumentNegativeValue(t *testing.T) {
	p := Argument[int](Long("offset"), "N")
	got, err := ParseArgs(p, []string{"--offset", "-5"})
	if err != nil {
		t.Fatalf("ParseArgs(--offset -5) error: %v", err)
	}
	if got != -5 {
		t.Fatalf("ParseArgs(--offset -5) = %d, want -5", got)
	}
}

func TestHiddenAliases(t *testing.T) {
	p := Argument[string](Long("output").Long("out").Short('o'), "FILE")

	for _, args := range [][]string{
		{"--output", "a.txt"},
		{"--out", "a.txt"},
		{"-o", "a.txt"},
	} {
		got, err := ParseArgs(p, args)
		if err != nil || got != "a.txt" {
			t.Fatalf("ParseArgs(%v) = %q, %v, want %q", args, got, err, "a.txt")
		}
	}
	// Only the first name is visible.
	m := Describe(p)
	if m.DisplayName() != "--output" {
		t.Fatalf("DisplayName() = %q, want %q", m.DisplayName(), "--output")
	}
}

func TestEnvFallback(t *testing.T) {
	env := map[string]string{"APP_USER": "ferris"}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	p := Argument[string](Long("user").Env("APP_USER"), "USER")
	app := NewApp("demo", p).Lookup(lookup)

	got, err := app.Run([]string{})
	if err != nil || got != "ferris" {
		t.Fatalf("Run() = %q, %v, want %q", got, err, "ferris")
	}

	// Command line wins over the environment.
	got, err = app.Run([]string{"--user", "admin"})
	if err != nil || got != "admin" {
		t.Fatalf("Run(--user admin) = %q, %v, want %q", got, err, "admin")
	}
}

func TestEnvFallbackChainsIntoFallback(t *testing.T) {
	// Env absence reads as "value not found", so Fallback still applies.
	p := Fallback(Argument[string](Long("user").Env("APP_USER"), "USER"), "anon")
	app := NewApp("demo", p).Lookup(func(string) (string, bool) { return "", false })

	got, err := app.Run([]string{})
	if err != nil || got != "anon" {
		t.Fatalf("Run() = %q, %v, want %q", got, err, "anon")
	}
}

func TestSwitchEnvPresence(t *testing.T) {
	p := Long("force").Env("APP_FORCE").Switch()
	app := NewApp("demo", p).Lookup(func(key string) (string, bool) {
		return "1", key == "APP_FORCE"
	})
	got, err := app.Run([]string{})
	if err != nil || got != true {
		t.Fatalf("Run() = %v, %v, want true", got, err)
	}
}
