// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snag is a command-line argument parser built from composable
// parser combinators.
//
// A program describes the shape of acceptable input — flags, valued
// arguments, positional items, subcommands — as a tree of small typed
// parsers, then runs the composed description against a live argument list.
// The run either produces a strongly typed value or a structured failure
// with generated usage text.
//
// The library follows these principles:
//   - Type-safe composition using Go generics
//   - Every token is accounted for: leftover input is always an error
//   - Flags can appear anywhere in the command line
//   - Parsers are immutable once composed and safe to share across runs
//
// # Basic usage
//
// Declare items, combine them, run:
//
//	type opts struct {
//	    Verbose bool
//	    Value   int
//	}
//
//	verbose := snag.Long("verbose").Short('v').Help("Enable verbose output").Switch()
//	value := snag.Positional[int]("NUM").Help("Value to process")
//	parser := snag.Construct2(verbose, value, func(v bool, n int) opts {
//	    return opts{Verbose: v, Value: n}
//	})
//
//	app := snag.NewApp("demo", parser).Descr("Process a number")
//	o, err := app.Run(os.Args[1:])
//
// On failure err is a *snag.Failure carrying the message, the destination
// stream and the exit code; help and version requests travel the same
// channel with Stdout set and a zero exit code.
//
// # Alternatives
//
// Choice tries each alternative against a private view of the input and
// commits whichever consumed the most tokens:
//
//	km := snag.Argument[float64](snag.Long("km"), "DIST")
//	mi := snag.Map(snag.Argument[float64](snag.Long("mi"), "DIST"),
//	    func(v float64) float64 { return v * 1.621 })
//	dist := snag.Choice(km, mi)
//
// # Repetition and recovery
//
// Many and Some collect repeated matches, Optional and Fallback recover
// from absence. Absence ("value not found") is distinct from a present but
// invalid value; Fallback never masks the latter.
//
//	crates := snag.Many(snag.Argument[string](snag.Long("crate"), "NAME"))
//
// # Subcommands
//
// A Command embeds a complete parser that receives every remaining token
// once its name matches:
//
//	run := snag.Command("run", "Run the binary", runParser)
//	build := snag.Command("build", "Build the binary", buildParser)
//	cmd := snag.Choice[action](run, build)
//
// # Environment fallback
//
// The core never reads process globals. Wire a lookup capability into the
// driver and attach keys to named items:
//
//	user := snag.Argument[string](snag.Long("user").Env("USER"), "USER")
//	app := snag.NewApp("demo", parser).Lookup(envsrc.OS())
//
// Use Check in the application's test suite to detect composition defects
// (empty choices, conflicting names) before they ship.
package snag
