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

// Package condamage parses the tabular report written by the condamage
// tool, which scores post-mortem deamination patterns in ancient DNA
// sequencing reads. A report holds, per mismatch context (e.g. C2T5, or
// a conditional context such as C2T3|5C2T), mismatch and total counts
// at each position from a read end, and optionally a fragment length
// distribution.
package condamage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// A Point is the mismatch frequency observed at a position from a read
// end. Positions count from 1 at the terminal base.
type Point struct {
	Pos  int
	Freq float64
}

// A Series is the per-position frequency profile for one mismatch
// context, in report file order.
type Series []Point

// A FragLen is a raw fragment length record from an FL report line.
// N counts all fragments of the given length, and F1 through F4 count
// fragments by their terminal mismatch category.
type FragLen struct {
	Length int
	N      int
	F1     int
	F2     int
	F3     int
	F4     int
}

// A Report holds the parsed content of one condamage report.
type Report struct {
	// Name identifies the report source in diagnostics, normally
	// the path the report was read from.
	Name string

	series   map[string]Series
	fragLens []FragLen
}

// ParseReport reads the condamage report at path.
func ParseReport(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadReport(f, path)
}

// ReadReport reads a condamage report from r. The name is used in
// diagnostics in place of a file path.
//
// Report lines are whitespace separated fields. Blank lines and lines
// beginning with # are ignored. A line of the form
//
//	<context> <pos> <mm> <n>
//
// records mm mismatches out of n opportunities at pos; lines with
// n = 0 carry no information and are dropped rather than dividing by
// zero. A line of the form
//
//	FL <length> <n> <f1> <f2> <f3> <f4>
//
// records the fragment length distribution.
func ReadReport(r io.Reader, name string) (*Report, error) {
	rep := &Report{
		Name:   name,
		series: make(map[string]Series),
	}
	sc := bufio.NewScanner(r)
	for ln := 1; sc.Scan(); ln++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "FL" {
			fl, err := parseFragLen(name, ln, fields)
			if err != nil {
				return nil, err
			}
			rep.fragLens = append(rep.fragLens, fl)
			continue
		}
		if len(fields) != 4 {
			return nil, fmt.Errorf("condamage: %s:%d: expected 4 fields, got %d", name, ln, len(fields))
		}
		ctx := fields[0]
		pos, err := atoi(name, ln, fields[1])
		if err != nil {
			return nil, err
		}
		mm, err := atoi(name, ln, fields[2])
		if err != nil {
			return nil, err
		}
		n, err := atoi(name, ln, fields[3])
		if err != nil {
			return nil, err
		}
		if n == 0 {
			continue
		}
		rep.series[ctx] = append(rep.series[ctx], Point{Pos: pos, Freq: float64(mm) / float64(n)})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("condamage: %s: %v", name, err)
	}
	return rep, nil
}

func parseFragLen(name string, ln int, fields []string) (FragLen, error) {
	if len(fields) != 7 {
		return FragLen{}, fmt.Errorf("condamage: %s:%d: expected 7 fields, got %d", name, ln, len(fields))
	}
	var v [6]int
	for i, f := range fields[1:] {
		n, err := atoi(name, ln, f)
		if err != nil {
			return FragLen{}, err
		}
		v[i] = n
	}
	return FragLen{Length: v[0], N: v[1], F1: v[2], F2: v[3], F3: v[4], F4: v[5]}, nil
}

func atoi(name string, ln int, field string) (int, error) {
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("condamage: %s:%d: bad integer field %q", name, ln, field)
	}
	return n, nil
}

// Series returns the frequency profile for the given mismatch context.
// A context absent from the report is an error; callers asking for a
// context should fail loudly rather than plot an empty trace.
func (r *Report) Series(ctx string) (Series, error) {
	s, ok := r.series[ctx]
	if !ok {
		return nil, fmt.Errorf("condamage: %s missing from %s", ctx, r.Name)
	}
	return s, nil
}

// Contexts returns the number of mismatch contexts in the report.
func (r *Report) Contexts() int { return len(r.series) }

// HasFragLens reports whether the report contained FL records.
func (r *Report) HasFragLens() bool { return len(r.fragLens) > 0 }
