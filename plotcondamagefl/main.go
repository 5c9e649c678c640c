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

// plotcondamagefl plots post-mortem deamination patterns from
// condamage output, like plotcondamage, and adds a second PDF page
// with the fragment length histogram from the report's FL records.
// With -s the histogram counts C>T at either end as the damage signal
// (single stranded library); the default counts 5' C>T and 3' G>A
// (double stranded library).
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
		tail           float64
		opdf           string
		title          string
	)
	flag.BoolVar(&all, "a", false, "plot all conditional traces")
	flag.BoolVar(&all, "all", false, "plot all conditional traces")
	flag.BoolVar(&singleStranded, "s", false, "single stranded library: condition on C>T at either end")
	flag.BoolVar(&singleStranded, "singlestranded", false, "single stranded library: condition on C>T at either end")
	flag.Float64Var(&scale, "scale", 1.5, "scale the size of the plot")
	flag.BoolVar(&wide, "wide", true, "plot widescreen ratio (16x9)")
	flag.Float64Var(&tail, "tail", 0.005, "fraction of histogram mass trimmed from the length tail")
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
	lib := condamage.DoubleStranded
	if singleStranded {
		lib = condamage.SingleStranded
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

	h, err := rep.FragLenHist(lib)
	if err != nil {
		log.Fatal(err)
	}
	hist, err := damageplot.FragLenPanel(h.Truncate(tail))
	if err != nil {
		log.Fatal(err)
	}

	if err := damageplot.WritePDF(opdf, title, wide, scale, p5, p3, hist); err != nil {
		log.Fatalf("failed to write %q: %v", opdf, err)
	}
}
