// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart renders line charts of benchmark records.
//
// Each chart plots the mean of the y axis field against the x axis
// field, with one line per distinct hue value and a shaded 95%
// confidence band around each mean.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"golang.org/x/benchplot/benchquery"
	"golang.org/x/benchplot/benchrec"
	"golang.org/x/benchplot/benchunit"
)

// Default image size.
const (
	Width  = 6.4 * vg.Inch
	Height = 4.8 * vg.Inch
)

// A Series is the aggregated data for one hue value.
type Series struct {
	Label string
	// X, Mean, Lo and Hi are parallel and sorted by X. Lo and Hi
	// bound the 95% confidence interval of the mean.
	X, Mean, Lo, Hi []float64
}

// ErrNoData is returned by Render when the filters select no records.
var ErrNoData = fmt.Errorf("no records match filters")

// Select returns the records of recs matched by cfg's filters.
func Select(recs []*benchrec.Record, cfg *Config, opts ...benchquery.Option) ([]*benchrec.Record, error) {
	p, err := benchquery.CompileJSON(cfg.Filters, opts...)
	if err != nil {
		return nil, err
	}
	return p.Select(recs)
}

// Aggregate groups recs by cfg's hue field and, within each group,
// by the x axis value, and returns the mean y of each point. Series
// appear in the order their hue first appears in recs.
func Aggregate(recs []*benchrec.Record, cfg *Config) ([]Series, error) {
	var fs [3]*benchrec.Field
	for i, name := range []string{cfg.Hue, cfg.XAxis, cfg.YAxis} {
		f, ok := benchrec.LookupField(name)
		if !ok {
			return nil, fmt.Errorf("unknown field %q", name)
		}
		fs[i] = f
	}
	hf, xf, yf := fs[0], fs[1], fs[2]
	if len(recs) == 0 {
		return nil, nil
	}

	hue := make([]string, len(recs))
	xs := make([]float64, len(recs))
	ys := make([]float64, len(recs))
	for i, r := range recs {
		hue[i] = hf.Get(r).String()
		x, err := xf.Get(r).Float()
		if err != nil {
			return nil, err
		}
		y, err := yf.Get(r).Float()
		if err != nil {
			return nil, err
		}
		xs[i], ys[i] = cfg.XPower.Apply(x), cfg.YPower.Apply(y)
	}
	tab := new(table.Builder).Add("hue", hue).Add("x", xs).Add("y", ys).Done()

	g := table.GroupBy(tab, "hue")
	g = ggstat.Agg("x")(ggstat.AggMean("y"), aggCI("y")).F(g)
	g = table.SortBy(g, "x")

	var out []Series
	for _, gid := range g.Tables() {
		t := g.Table(gid)
		out = append(out, Series{
			Label: gid.Label().(string),
			X:     t.MustColumn("x").([]float64),
			Mean:  t.MustColumn("mean y").([]float64),
			Lo:    t.MustColumn("lo y").([]float64),
			Hi:    t.MustColumn("hi y").([]float64),
		})
	}
	return out, nil
}

// aggCI returns an aggregator that computes the bounds of the 95%
// confidence interval of the mean of col as columns "lo <col>" and
// "hi <col>".
func aggCI(col string) ggstat.Aggregator {
	return func(input table.Grouping, b *table.Builder) {
		var lo, hi []float64
		for _, gid := range input.Tables() {
			l, h := meanCI(input.Table(gid).MustColumn(col).([]float64))
			lo = append(lo, l)
			hi = append(hi, h)
		}
		b.Add("lo "+col, lo).Add("hi "+col, hi)
	}
}

// meanCI returns the 95% Student's t confidence interval of the mean
// of xs. With fewer than two samples the interval is the mean itself.
func meanCI(xs []float64) (lo, hi float64) {
	m := stats.Mean(xs)
	n := len(xs)
	if n < 2 {
		return m, m
	}
	sd := stats.Sample{Xs: xs}.StdDev()
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}.Quantile(0.975)
	d := t * sd / math.Sqrt(float64(n))
	return m - d, m + d
}

// Render selects the records matched by cfg, plots them and writes
// the image to cfg.Filename under dir.
func Render(recs []*benchrec.Record, cfg *Config, dir string, opts ...benchquery.Option) error {
	sel, err := Select(recs, cfg, opts...)
	if err != nil {
		return err
	}
	if len(sel) == 0 {
		return fmt.Errorf("%s: %w", cfg.Filename, ErrNoData)
	}
	return Write(sel, cfg, dir)
}

// Write plots recs, which must already be filtered, and writes the
// image to cfg.Filename under dir.
func Write(recs []*benchrec.Record, cfg *Config, dir string) error {
	series, err := Aggregate(recs, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Filename, err)
	}
	p, err := Plot(series, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Filename, err)
	}
	path := filepath.Join(dir, cfg.Filename)
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return err
	}
	return p.Save(Width, Height, path)
}

// Plot builds the plot of series described by cfg.
func Plot(series []Series, cfg *Config) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = cfg.XPower.Label(cfg.XLabel)
	p.Y.Label.Text = cfg.YPower.Label(cfg.YLabel)
	if !cfg.XPower.Active() {
		p.X.Tick.Marker = siTicks{}
	}
	if !cfg.YPower.Active() {
		p.Y.Tick.Marker = siTicks{}
	}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = 1 * vg.Millimeter
	p.Add(plotter.NewGrid())

	colors := seriesColors(len(series))
	for i, s := range series {
		c := colors[i]
		pts := make(plotter.XYs, len(s.X))
		band := make(plotter.XYs, 0, 2*len(s.X))
		for j := range s.X {
			pts[j] = plotter.XY{X: s.X[j], Y: s.Mean[j]}
			band = append(band, plotter.XY{X: s.X[j], Y: s.Hi[j]})
		}
		for j := len(s.X) - 1; j >= 0; j-- {
			band = append(band, plotter.XY{X: s.X[j], Y: s.Lo[j]})
		}

		if len(s.X) > 1 {
			poly, err := plotter.NewPolygon(band)
			if err != nil {
				return nil, err
			}
			poly.Color = fade(c)
			poly.LineStyle.Width = 0
			p.Add(poly)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = c
		line.LineStyle.Width = vg.Points(1.5)
		dots, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		dots.GlyphStyle.Color = c
		dots.GlyphStyle.Radius = vg.Points(2)
		p.Add(line, dots)
		p.Legend.Add(s.Label, line)
	}
	return p, nil
}

// seriesColors returns n distinct colors, from a qualitative brewer
// palette when one is large enough.
func seriesColors(n int) []color.Color {
	if n <= 8 {
		if pal, err := brewer.GetPalette(brewer.TypeQualitative, "Dark2", max3(n)); err == nil {
			return pal.Colors()[:n]
		}
	}
	cs := make([]color.Color, n)
	for i := range cs {
		cs[i] = plotutil.Color(i)
	}
	return cs
}

func max3(n int) int {
	if n < 3 {
		return 3
	}
	return n
}

func fade(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	const a = 0x40
	return color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), a}
}

// siTicks labels the default tick positions with SI prefixes.
type siTicks struct{}

func (siTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	s := benchunit.Scale(math.Max(math.Abs(min), math.Abs(max)))
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = s.Format(ticks[i].Value)
		}
	}
	return ticks
}
