// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command rectangles demonstrates repeated adjacent groups: each
// rectangle is introduced by --rect and its --width and --height must
// stay contiguous with it, while unrelated flags may appear between
// groups.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/snagrun/snag/pkg/snag"
	"github.com/snagrun/snag/pkg/usage"
)

type rect struct {
	W, H int
}

func rectParser() snag.Parser[rect] {
	tag := snag.ReqFlag(snag.Long("rect").Help("Start a rectangle group"), struct{}{})
	w := snag.Argument[int](snag.Long("width").Help("Rectangle width"), "PX")
	h := snag.Argument[int](snag.Long("height").Help("Rectangle height"), "PX")
	return snag.Adjacent(snag.Construct3(tag, w, h, func(_ struct{}, w, h int) rect {
		return rect{W: w, H: h}
	}))
}

func main() {
	rects := snag.Many(rectParser())
	mirror := snag.Long("mirror").Help("Mirror the final drawing").Switch()

	type opts struct {
		Rects  []rect
		Mirror bool
	}
	p := snag.Construct2(rects, mirror, func(rs []rect, m bool) opts {
		return opts{Rects: rs, Mirror: m}
	})

	app := snag.NewApp("rectangles", p).
		Descr("Collect adjacent rectangle groups").
		UsageWith(usage.New().Render)

	o, err := app.Run(os.Args[1:])
	if err != nil {
		exit(err)
	}
	for _, r := range o.Rects {
		area := r.W * r.H
		fmt.Printf("%dx%d (area %d)\n", r.W, r.H, area)
	}
	if o.Mirror {
		fmt.Println("mirrored")
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
