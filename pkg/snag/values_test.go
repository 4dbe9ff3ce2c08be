// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snag

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
)

func TestParseDurationArgument(t *testing.T) {
	p := Argument[time.Duration](Long("timeout"), "DUR")
	got, err := ParseArgs(p, []string{"--timeout", "1m30s"})
	if err != nil {
		t.Fatalf("ParseArgs() error: %v", err)
	}
	if want := 90 * time.Second; got != want {
		t.Fatalf("duration = %v, want %v", got, want)
	}

	_, err = ParseArgs(p, []string{"--timeout", "ninety"})
	var ve *ValueError
	if !errors.As(err, &ve) {
		t.Fatalf("ParseArgs() error = %T, want *ValueError", err)
	}
}

func TestParseURLArgument(t *testing.T) {
	p := Argument[url.URL](Long("remote"), "URL")
	got, err := ParseArgs(p, []string{"--remote", "https://example.com/repo"})
	if err != nil {
		t.Fatalf("ParseArgs() error: %v", err)
	}
	if got.Host != "example.com" || got.Path != "/repo" {
		t.Fatalf("url = %#v, want host example.com path /repo", got)
	}
}

func TestParseSemverArgument(t *testing.T) {
	p := Argument[semver.Version](Long("min-version"), "VER")
	got, err := ParseArgs(p, []string{"--min-version", "1.4.0"})
	if err != nil {
		t.Fatalf("ParseArgs() error: %v", err)
	}
	if got.Major() != 1 || got.Minor() != 4 {
		t.Fatalf("version = %v, want 1.4.0", got.String())
	}

	_, err = ParseArgs(p, []string{"--min-version", "latest"})
	var ve *ValueError
	if !errors.As(err, &ve) {
		t.Fatalf("ParseArgs() error = %T, want *ValueError", err)
	}
}

func TestParsePortArgument(t *testing.T) {
	p := Argument[Port](Long("port").Short('p'), "PORT")

	got, err := ParseArgs(p, []string{"-p", "8080"})
	if err != nil {
		t.Fatalf("ParseArgs() error: %v", err)
	}
	if got != Port(8080) {
		t.Fatalf("port = %d, want 8080", got)
	}

	for _, bad := range []string{"70000", "http"} {
		_, err := ParseArgs(p, []string{"-p", bad})
		var ve *ValueError
		if !errors.As(err, &ve) {
			t.Fatalf("ParseArgs(-p %s) error = %T, want *ValueError", bad, err)
		}
	}
}

func TestPortRange(t *testing.T) {
	p := PortRange(Argument[Port](Long("port"), "PORT"), 1024, 65535)

	if got, err := ParseArgs(p, []string{"--port", "8080"}); err != nil || got != 8080 {
		t.Fatalf("ParseArgs(8080) = %d, %v, want 8080", got, err)
	}

	_, err := ParseArgs(p, []string{"--port", "80"})
	var ve *ValueError
	if !errors.As(err, &ve) {
		t.Fatalf("ParseArgs(80) error = %T, want *ValueError", err)
	}
	if ve.Value != "80" {
		t.Fatalf("ValueError.Value = %q, want %q", ve.Value, "80")
	}
}

func TestParseUint8Overflow(t *testing.T) {
	p := Argument[uint8](Long("level"), "N")
	_, err := ParseArgs(p, []string{"--level", "300"})
	var ve *ValueError
	if !errors.As(err, &ve) {
		t.Fatalf("ParseArgs() error = %T, want *ValueError", err)
	}
}
