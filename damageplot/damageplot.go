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

// Package damageplot renders condamage reports as PDF charts: paired
// line charts of mismatch frequency towards the 5' and 3' read ends,
// and a fragment length histogram.
package damageplot

import (
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/grahamgower/condamage"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"
)

// Mode selects which traces are drawn on the mismatch panels.
type Mode int

const (
	// Default plots the unconditional C>T and G>A profiles plus the
	// conditional trace expected to respond for a double stranded
	// library.
	Default Mode = iota
	// All plots every trace in the metadata table.
	All
	// SingleStranded plots the traces conditional on C>T at the
	// opposing read end.
	SingleStranded
)

var (
	dashed = []vg.Length{vg.Points(5), vg.Points(2)}
	dotted = []vg.Length{vg.Points(1), vg.Points(2.5)}
)

// style fixes the appearance of one trace. The context key carries a ?
// placeholder standing for the read end, replaced with 5 or 3 per
// panel. A trace keeps its colour and marker whichever mode selected
// it, so plots made with different flags remain comparable.
type style struct {
	key    string
	label  string
	dashes []vg.Length
	shape  draw.GlyphDrawer
}

var plotMeta = []style{
	{"C2T?", "C>T", nil, draw.CircleGlyph{}},
	{"G2A?", "G>A", dashed, draw.BoxGlyph{}},

	{"C2T?|5C2T", "C>T | 5' C>T", dotted, draw.TriangleGlyph{}},
	{"G2A?|5C2T", "G>A | 5' C>T", dotted, draw.PyramidGlyph{}},
	{"C2T?|3C2T", "C>T | 3' C>T", dotted, draw.CrossGlyph{}},
	{"G2A?|3C2T", "G>A | 3' C>T", dotted, draw.RingGlyph{}},

	{"C2T?|5G2A", "C>T | 5' G>A", dotted, draw.PlusGlyph{}},
	{"G2A?|5G2A", "G>A | 5' G>A", dotted, draw.SquareGlyph{}},
	{"C2T?|3G2A", "C>T | 3' G>A", dotted, draw.CircleGlyph{}},
	{"G2A?|3G2A", "G>A | 3' G>A", dotted, draw.BoxGlyph{}},
}

// keyLists returns the context keys drawn on the 5' and 3' panels.
func keyLists(mode Mode) (k5, k3 []string) {
	switch mode {
	case All:
		keys := make([]string, len(plotMeta))
		for i, sty := range plotMeta {
			keys[i] = sty.key
		}
		return keys, keys
	case SingleStranded:
		return []string{"C2T?", "G2A?", "C2T?|3C2T"},
			[]string{"C2T?", "G2A?", "C2T?|5C2T"}
	default:
		return []string{"C2T?", "G2A?", "C2T?|3G2A"},
			[]string{"C2T?", "G2A?", "G2A?|5C2T"}
	}
}

func contains(keys []string, k string) bool {
	for _, key := range keys {
		if key == k {
			return true
		}
	}
	return false
}

// posTicks marks every read position with an integer tick. The 3'
// panel negates positions so that distance from the read end grows
// leftward, mirroring the read orientation.
type posTicks struct {
	max int
	neg bool
}

func (t posTicks) Ticks(min, max float64) []plot.Tick {
	ticks := make([]plot.Tick, 0, t.max)
	for i := 1; i <= t.max; i++ {
		v, label := float64(i), strconv.Itoa(i)
		if t.neg {
			v, label = -v, "-"+label
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: label})
	}
	return ticks
}

func newPanel(xlabel string) *plot.Plot {
	p := plot.New()
	p.X.Label.Text = xlabel
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p
}

// addSeries draws one trace and returns its final position and
// greatest frequency, for the caller's axis ranging.
func addSeries(p *plot.Plot, s condamage.Series, neg bool, ci int, sty style) (last int, max float64, err error) {
	xys := make(plotter.XYs, len(s))
	freqs := make([]float64, len(s))
	for i, pt := range s {
		x := float64(pt.Pos)
		if neg {
			x = -x
		}
		xys[i] = plotter.XY{X: x, Y: pt.Freq}
		freqs[i] = pt.Freq
	}
	l, sc, err := plotter.NewLinePoints(xys)
	if err != nil {
		return 0, 0, err
	}
	col := plotutil.Color(ci)
	l.Color = col
	l.Width = vg.Points(1)
	l.Dashes = sty.dashes
	sc.GlyphStyle = draw.GlyphStyle{Color: col, Radius: vg.Points(2), Shape: sty.shape}
	p.Add(l, sc)
	p.Legend.Add(sty.label, l, sc)
	return s[len(s)-1].Pos, floats.Max(freqs), nil
}

// MismatchPanels builds the paired mismatch frequency panels for the
// report, 5' on the left and 3' on the right. Every context the mode
// calls for must be present in the report; a missing context is an
// error rather than a silently blank trace. The y range is shared
// between the panels and excludes series pinned at frequency 1,
// which would otherwise flatten every informative trace.
func MismatchPanels(rep *condamage.Report, mode Mode) (p5, p3 *plot.Plot, err error) {
	k5, k3 := keyLists(mode)

	p5 = newPanel("Mismatches towards 5' end")
	p3 = newPanel("Mismatches towards 3' end")
	p5.Y.Label.Text = "Frequency"
	p5.Legend.Top = true
	p3.Legend.Top = true
	p3.Legend.Left = true

	var xmax int
	var ymax float64
	for i, sty := range plotMeta {
		if contains(k5, sty.key) {
			s, err := rep.Series(strings.Replace(sty.key, "?", "5", 1))
			if err != nil {
				return nil, nil, err
			}
			last, max, err := addSeries(p5, s, false, i, sty)
			if err != nil {
				return nil, nil, err
			}
			if last > xmax {
				xmax = last
			}
			if max != 1.0 && max > ymax {
				ymax = max
			}
		}
		if contains(k3, sty.key) {
			s, err := rep.Series(strings.Replace(sty.key, "?", "3", 1))
			if err != nil {
				return nil, nil, err
			}
			last, max, err := addSeries(p3, s, true, i, sty)
			if err != nil {
				return nil, nil, err
			}
			if last > xmax {
				xmax = last
			}
			if max != 1.0 && max > ymax {
				ymax = max
			}
		}
	}

	if ymax > 0 {
		p5.Y.Min, p5.Y.Max = 0, 1.1*ymax
		p3.Y.Min, p3.Y.Max = 0, 1.1*ymax
	}
	p5.X.Min, p5.X.Max = 0.5, float64(xmax)+0.5
	p5.X.Tick.Marker = posTicks{max: xmax}
	p3.X.Min, p3.X.Max = -float64(xmax)-0.5, -0.5
	p3.X.Tick.Marker = posTicks{max: xmax, neg: true}

	return p5, p3, nil
}

// FragLenPanel builds the fragment length histogram panel, with all
// fragments drawn as filled steps and damage-bearing fragments
// overlaid.
func FragLenPanel(h condamage.FragLenHist) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Fragment lengths"
	p.X.Label.Text = "Fragment length"
	p.Y.Label.Text = "Count"

	all := make(plotter.XYs, len(h))
	damaged := make(plotter.XYs, len(h))
	for i, b := range h {
		all[i] = plotter.XY{X: float64(b.Length), Y: float64(b.All)}
		damaged[i] = plotter.XY{X: float64(b.Length), Y: float64(b.Damaged)}
	}

	la, err := plotter.NewLine(all)
	if err != nil {
		return nil, err
	}
	la.StepStyle = plotter.MidStep
	la.Color = color.Gray{Y: 0x55}
	la.FillColor = color.Gray{Y: 0xdd}

	ld, err := plotter.NewLine(damaged)
	if err != nil {
		return nil, err
	}
	ld.StepStyle = plotter.MidStep
	ld.Color = plotutil.Color(2)
	ld.Width = vg.Points(1)

	p.Add(la, ld)
	p.Legend.Add("all fragments", la)
	p.Legend.Add("damaged fragments", ld)
	p.Legend.Top = true
	p.Y.Min = 0

	return p, nil
}

func pageSize(wide bool, scale float64) (w, h vg.Length) {
	if wide {
		return vg.Length(scale*10) * vg.Inch, vg.Length(scale*5.625) * vg.Inch
	}
	return vg.Length(scale*8) * vg.Inch, vg.Length(scale*6) * vg.Inch
}

// suptitle draws the page title centred at the top of the canvas and
// returns the canvas cropped to the remaining area.
func suptitle(dc draw.Canvas, title string) draw.Canvas {
	if title == "" {
		return dc
	}
	sty := text.Style{
		Color: color.Black,
		Font: font.Font{
			Typeface: "Liberation",
			Variant:  "Sans",
			Size:     vg.Points(14),
		},
		XAlign:  draw.XCenter,
		YAlign:  draw.YTop,
		Handler: plot.DefaultTextHandler,
	}
	dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y}, title)
	return draw.Crop(dc, 0, 0, 0, -vg.Points(22))
}

// WritePDF writes the mismatch panels, and the fragment length panel
// if hist is non-nil, to a PDF at path. The page is 16:9 when wide,
// 4:3 otherwise, multiplied by scale.
func WritePDF(path, title string, wide bool, scale float64, p5, p3, hist *plot.Plot) error {
	w, h := pageSize(wide, scale)
	c := vgpdf.New(w, h)

	dc := suptitle(draw.New(c), title)
	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Millimeter * 4}
	panels := plot.Align([][]*plot.Plot{{p5, p3}}, tiles, dc)
	p5.Draw(panels[0][0])
	p3.Draw(panels[0][1])

	if hist != nil {
		c.NextPage()
		hist.Draw(draw.New(c))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
