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
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Library selects which terminal mismatch categories indicate damage
// when binning fragment lengths. For a double stranded library
// preparation, C>T at the 5' end and G>A at the 3' end are the damage
// signal (f2+f4); for a single stranded preparation, C>T at either end
// (f2+f3).
type Library int

const (
	DoubleStranded Library = iota
	SingleStranded
)

// A FragLenBin is one fragment length with the count of all fragments
// of that length and of those bearing the damage signal.
type FragLenBin struct {
	Length  int
	All     int
	Damaged int
}

// A FragLenHist is a fragment length distribution, in report file
// order.
type FragLenHist []FragLenBin

// FragLenHist bins the report's FL records under the given library
// preparation assumption. It is an error if the report has no FL
// records.
func (r *Report) FragLenHist(lib Library) (FragLenHist, error) {
	if len(r.fragLens) == 0 {
		return nil, fmt.Errorf("condamage: no FL records in %s", r.Name)
	}
	h := make(FragLenHist, len(r.fragLens))
	for i, fl := range r.fragLens {
		damaged := fl.F2 + fl.F4
		if lib == SingleStranded {
			damaged = fl.F2 + fl.F3
		}
		h[i] = FragLenBin{Length: fl.Length, All: fl.N, Damaged: damaged}
	}
	return h, nil
}

// Mass returns the total number of fragments in the histogram.
func (h FragLenHist) Mass() float64 {
	counts := make([]float64, len(h))
	for i, b := range h {
		counts[i] = float64(b.All)
	}
	return floats.Sum(counts)
}

// Truncate returns the sub-histogram left after trimming uninformative
// lengths for display. Leading bins are dropped while the length is at
// most 50 and the bin is empty; trailing bins with length above 50 are
// dropped while the trimmed mass stays below tailFrac of the total.
// Empty bins within the first 50 lengths are kept once a non-empty bin
// has been seen, since a gap there is informative. The scan repeats
// until the range is stable, so truncating an already truncated
// histogram is a no-op.
func (h FragLenHist) Truncate(tailFrac float64) FragLenHist {
	for {
		t := h.truncate(tailFrac)
		if len(t) == len(h) {
			return t
		}
		h = t
	}
}

func (h FragLenHist) truncate(tailFrac float64) FragLenHist {
	lo := 0
	for lo < len(h) && h[lo].Length <= 50 && h[lo].All == 0 {
		lo++
	}
	limit := tailFrac * h.Mass()
	hi := len(h)
	var dropped float64
	for hi > lo && h[hi-1].Length > 50 && dropped+float64(h[hi-1].All) < limit {
		dropped += float64(h[hi-1].All)
		hi--
	}
	return h[lo:hi]
}
