// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package envsrc provides lookup capabilities for snag's environment
// fallbacks. The engine never reads process globals; an app wires a
// source explicitly:
//
//	app := snag.NewApp("demo", parser).Lookup(envsrc.OS())
//
// Sources can be layered, first match wins:
//
//	lk, err := envsrc.File(".env")
//	...
//	app.Lookup(envsrc.Chain(envsrc.OS(), lk))
package envsrc

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Lookup resolves a key to a value. It is the capability
// snag.App.Lookup consumes.
type Lookup = func(string) (string, bool)

// OS returns a lookup backed by the process environment.
func OS() Lookup {
	return os.LookupEnv
}

// Map returns a lookup backed by a static map.
func Map(m map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// Chain layers sources; the first one holding the key wins.
func Chain(srcs ...Lookup) Lookup {
	return func(key string) (string, bool) {
		for _, src := range srcs {
			if v, ok := src(key); ok {
				return v, true
			}
		}
		return "", false
	}
}

// File reads a KEY=VALUE env file. Blank lines and lines starting with
// '#' are skipped; values may be wrapped in single or double quotes.
func File(path string) (Lookup, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string)
	for i, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%s:%d: missing '=' in %q", path, i+1, line)
		}
		m[strings.TrimSpace(key)] = unquote(strings.TrimSpace(value))
	}
	return Map(m), nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// TOML reads a TOML file. Nested tables flatten into dotted keys, so
//
//	[server]
//	port = 8080
//
// resolves as "server.port".
func TOML(path string) (Lookup, error) {
	var doc map[string]any
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, err
	}
	m := make(map[string]string)
	flatten("", doc, m)
	return Map(m), nil
}

// YAML reads a YAML file. Nested mappings flatten into dotted keys the
// same way TOML tables do.
func YAML(path string) (Lookup, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	m := make(map[string]string)
	flatten("", doc, m)
	return Map(m), nil
}

// flatten turns nested maps into dotted scalar keys. Lists and other
// non-scalar leaves are skipped; env fallbacks carry single values.
func flatten(prefix string, doc map[string]any, out map[string]string) {
	for k, v := range doc {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch vv := v.(type) {
		case map[string]any:
			flatten(key, vv, out)
		case string:
			out[key] = vv
		case bool, int, int64, float64:
			out[key] = fmt.Sprint(vv)
		}
	}
}
