// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command cargo demonstrates subcommand dispatch: run and build own
// separate flag scopes, and each subcommand must consume its entire
// argument tail.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/snagrun/snag/pkg/envsrc"
	"github.com/snagrun/snag/pkg/snag"
	"github.com/snagrun/snag/pkg/usage"
)

type action struct {
	Name    string
	Bin     string
	Release bool
}

func runCmd() snag.Parser[action] {
	bin := snag.Argument[string](snag.Long("bin").Help("Binary to run").Env("CARGO_BIN"), "NAME")
	return snag.Command("run", "Run the binary", snag.Map(bin, func(b string) action {
		return action{Name: "run", Bin: b}
	}))
}

func buildCmd() snag.Parser[action] {
	release := snag.Long("release").Help("Build with optimizations").Switch()
	return snag.Command("build", "Build the project", snag.Map(release, func(r bool) action {
		return action{Name: "build", Release: r}
	}))
}

func main() {
	app := snag.NewApp("cargo", snag.Choice(runCmd(), buildCmd())).
		Descr("A tiny cargo-shaped demo").
		Lookup(envsrc.OS()).
		UsageWith(usage.New().Render)

	act, err := app.Run(os.Args[1:])
	if err != nil {
		exit(err)
	}
	switch act.Name {
	case "run":
		fmt.Printf("running %s\n", act.Bin)
	case "build":
		fmt.Printf("building (release=%v)\n", act.Release)
	}
}

func exit(err error) {
	var f *snag.Failure
	if errors.As(err, &f) {
		out := os.Stderr
		if f.Stdout {
			out = os.Stdout
		}
		fmt.Fprintln(out, f.Message)
		os.Exit(f.ExitCode)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
