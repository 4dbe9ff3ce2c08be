// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command distance demonstrates a sum of two named arguments: exactly
// one of --km or --mi must be given, and the result is normalized to
// kilometers.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/snagrun/snag/pkg/envsrc"
	"github.com/snagrun/snag/pkg/snag"
	"github.com/snagrun/snag/pkg/usage"
)

func main() {
	km := snag.Argument[float64](snag.Long("km").Help("Distance in kilometers"), "KM")
	mi := snag.Map(
		snag.Argument[float64](snag.Long("mi").Help("Distance in miles"), "MI"),
		func(v float64) float64 { return v * 1.621 },
	)

	app := snag.NewApp("distance", snag.Choice(km, mi)).
		Descr("Normalize a distance to kilometers").
		Version("1.0.0").
		Lookup(envsrc.OS()).
		UsageWith(usage.New().Render)

	dist, err := app.Run(os.Args[1:])
	if err != nil {
		exit(err)
	}
	fmt.Printf("%g km\n", dist)
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
