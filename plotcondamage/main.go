// Copyright (c) 2018 Graham Gower <graham.gower@gmail.com>
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that the above
// copyright notice and this permission notice appear in all copies.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
// WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
// ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
// WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
// ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
// OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.

// plotcondamage plots post-mortem deamination patterns from condamage
// output as a PDF: mismatch frequency towards the 5' end on the left
// panel, towards the 3' end on the right.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/grahamgower/condamage"
	"github.com/grahamgower/condamage/damageplot"
)

func main() {
	var (
		all            bool
		singleStranded bool
		scale          float64
		wide           bool
		opdf           string
		title          string
	)
	flag.BoolVar(&all, "a", false, "plot all conditional traces")
	flag.BoolVar(&all, "all", false, "plot all conditional traces")
	flag.BoolVar(&singleStranded, "s", false, "plot mismatches conditional on C>T at either end")
	flag.BoolVar(&singleStranded, "singlestranded", false, "plot mismatches conditional on C>T at either end")
	flag.Float64Var(&scale, "scale", 1.5, "scale the size of the plot")
	flag.BoolVar(&wide, "wide", true, "plot widescreen ratio (16x9)")
	flag.StringVar(&opdf, "o", "out.pdf", "output filename")
	flag.StringVar(&opdf, "opdf", "out.pdf", "output filename")
	flag.StringVar(&title, "t", "", "title for the plot, defaults to the input file name")
	flag.StringVar(&title, "title", "", "title for the plot, defaults to the input file name")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [options] condamage.txt\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	infile := flag.Arg(0)

	rep, err := condamage.ParseReport(infile)
	if err != nil {
		log.Fatal(err)
	}

	if title == "" {
		title = filepath.Base(infile)
	}
	mode := damageplot.Default
	switch {
	case all:
		mode = damageplot.All
	case singleStranded:
		mode = damageplot.SingleStranded
	}

	p5, p3, err := damageplot.MismatchPanels(rep, mode)
	if err != nil {
		log.Fatal(err)
	}
	if err := damageplot.WritePDF(opdf, title, wide, scale, p5, p3, nil); err != nil {
		log.Fatalf("failed to write %q: %v", opdf, err)
	}
}
