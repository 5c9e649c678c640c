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

package condamage

import (
	"strings"

	check "gopkg.in/check.v1"
)

func (s *S) TestFragLenHist(c *check.C) {
	const in = "C2T5 1 3 10\n" +
		"FL 100 50 10 15 10 15\n" +
		"FL 101 40 20 10 5 5\n"
	rep, err := ReadReport(strings.NewReader(in), "test")
	c.Assert(err, check.Equals, nil)

	ds, err := rep.FragLenHist(DoubleStranded)
	c.Assert(err, check.Equals, nil)
	c.Check(ds, check.DeepEquals, FragLenHist{
		{Length: 100, All: 50, Damaged: 30}, // f2+f4
		{Length: 101, All: 40, Damaged: 15},
	})

	ss, err := rep.FragLenHist(SingleStranded)
	c.Assert(err, check.Equals, nil)
	c.Check(ss, check.DeepEquals, FragLenHist{
		{Length: 100, All: 50, Damaged: 25}, // f2+f3
		{Length: 101, All: 40, Damaged: 15},
	})

	c.Check(ds.Mass(), check.Equals, 90.0)
}

func (s *S) TestFragLenHistMissing(c *check.C) {
	rep, err := ReadReport(strings.NewReader("C2T5 1 3 10\n"), "nofl.txt")
	c.Assert(err, check.Equals, nil)
	c.Check(rep.HasFragLens(), check.Equals, false)
	_, err = rep.FragLenHist(DoubleStranded)
	c.Assert(err, check.Not(check.Equals), nil)
	c.Check(err.Error(), check.Equals, "condamage: no FL records in nofl.txt")
}

func (s *S) TestTruncate(c *check.C) {
	bins := func(pairs ...int) FragLenHist {
		h := make(FragLenHist, 0, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			h = append(h, FragLenBin{Length: pairs[i], All: pairs[i+1]})
		}
		return h
	}

	for i, t := range []struct {
		h    FragLenHist
		tail float64
		want FragLenHist
	}{
		{
			// Leading empty bins up to length 50 go; the tail loses
			// less than 0.5% of the mass (2+3 of 2000).
			h: bins(30, 0, 40, 0, 50, 0, 60, 5, 70, 100, 80, 800,
				90, 1000, 100, 60, 110, 30, 120, 3, 130, 2),
			tail: 0.005,
			want: bins(60, 5, 70, 100, 80, 800, 90, 1000, 100, 60, 110, 30),
		},
		{
			// An empty bin beyond length 50 is kept at the front.
			h:    bins(55, 0, 60, 10),
			tail: 0.005,
			want: bins(55, 0, 60, 10),
		},
		{
			// An empty bin after a populated one is kept.
			h:    bins(40, 2, 45, 0, 60, 10),
			tail: 0.005,
			want: bins(40, 2, 45, 0, 60, 10),
		},
		{
			// A zero tail fraction trims nothing from the tail.
			h:    bins(60, 100, 70, 1),
			tail: 0,
			want: bins(60, 100, 70, 1),
		},
		{
			// Trimming the tail shrinks the mass, which can expose
			// further trimmable bins; the scan repeats until the
			// range is stable.
			h:    bins(60, 1000, 70, 5, 80, 4, 90, 3, 100, 2),
			tail: 0.005,
			want: bins(60, 1000),
		},
	} {
		got := t.h.Truncate(t.tail)
		c.Check(got, check.DeepEquals, t.want, check.Commentf("Test %d", i))

		// Truncation of an already truncated histogram is a no-op.
		c.Check(got.Truncate(t.tail), check.DeepEquals, t.want, check.Commentf("Test %d", i))
	}
}
