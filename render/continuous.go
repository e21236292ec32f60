package render

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/driftview-org/driftview/longform"
)

// ============================================================================
// CONTINUOUS FIGURES — distribution comparison facets
// ============================================================================
// One facet per feature: X is the dataset (nominal), Y the feature value.
// Kind selects the geometry; all kinds share dataset palette positions so
// color meaning is stable across facets.
// ============================================================================

var continuousKinds = map[string]bool{
	"box":    true,
	"violin": true,
	"strip":  true,
	"bar":    true,
	"point":  true,
}

// ContinuousFigure builds a faceted comparison figure from continuous
// long-form rows. Values that are NaN or infinite are dropped per facet.
func ContinuousFigure(rows []longform.ContinuousRow, features, names []string, opts ...Option) (*Figure, error) {
	cfg := applyOptions(continuousDefaults(), opts)
	if !continuousKinds[cfg.Kind] {
		return nil, fmt.Errorf("unknown continuous kind %q (valid: box, violin, strip, bar, point)", cfg.Kind)
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("no features to plot")
	}

	title := cfg.Title
	if title == "" {
		title = defaultTitle(names)
	}

	facets := make([]*plot.Plot, 0, len(features))
	for _, feature := range features {
		byDataset := longform.ValuesByDataset(rows, feature, names)

		p := plot.New()
		p.Title.Text = feature
		p.Y.Label.Text = "value"
		p.NominalX(names...)

		for i, name := range names {
			vals := finiteValues(byDataset[name])
			if len(vals) == 0 {
				continue
			}
			if err := addContinuousGeometry(p, cfg.Kind, i, len(names), vals); err != nil {
				return nil, fmt.Errorf("feature %q dataset %q: %w", feature, name, err)
			}
		}
		facets = append(facets, p)
	}

	return newFigure(title, facets, cfg), nil
}

func addContinuousGeometry(p *plot.Plot, kind string, i, n int, vals []float64) error {
	loc := float64(i)
	switch kind {
	case "box":
		return addBox(p, loc, i, vals)
	case "violin":
		return addViolin(p, loc, i, vals)
	case "strip":
		return addStrip(p, loc, i, vals)
	case "bar":
		return addMeanBar(p, i, n, vals)
	case "point":
		return addQuartiles(p, loc, i, vals)
	}
	return fmt.Errorf("unknown continuous kind %q", kind)
}

// ============================================================================
// GEOMETRIES
// ============================================================================

func addBox(p *plot.Plot, loc float64, i int, vals []float64) error {
	box, err := plotter.NewBoxPlot(vg.Points(24), loc, plotter.Values(vals))
	if err != nil {
		return err
	}
	box.FillColor = paletteFill(i)
	p.Add(box)
	return nil
}

// addViolin draws a kernel-density outline mirrored around the dataset
// position. Zero-variance data has no usable bandwidth and falls back to
// a box plot for that dataset.
func addViolin(p *plot.Plot, loc float64, i int, vals []float64) error {
	xys, ok := violinOutline(loc, vals)
	if !ok {
		return addBox(p, loc, i, vals)
	}
	poly, err := plotter.NewPolygon(xys)
	if err != nil {
		return err
	}
	poly.Color = paletteFill(i)
	poly.LineStyle.Color = paletteColor(i)
	p.Add(poly)
	return nil
}

func addStrip(p *plot.Plot, loc float64, i int, vals []float64) error {
	// Deterministic jitter so repeated renders of the same data match.
	rng := rand.New(rand.NewSource(int64(i) + 1))
	pts := make(plotter.XYs, len(vals))
	for j, v := range vals {
		pts[j].X = loc + (rng.Float64()-0.5)*0.5
		pts[j].Y = v
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = paletteFill(i)
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter)
	return nil
}

// addMeanBar draws one bar at the dataset position holding the mean.
// The values slice is zero-padded to n so each dataset keeps its nominal
// X slot while still getting its own color.
func addMeanBar(p *plot.Plot, i, n int, vals []float64) error {
	padded := make(plotter.Values, n)
	padded[i] = stat.Mean(vals, nil)
	bar, err := plotter.NewBarChart(padded, vg.Points(24))
	if err != nil {
		return err
	}
	bar.Color = paletteFill(i)
	bar.LineStyle.Width = 0
	p.Add(bar)
	return nil
}

func addQuartiles(p *plot.Plot, loc float64, i int, vals []float64) error {
	quart, err := plotter.NewQuartPlot(loc, plotter.Values(vals))
	if err != nil {
		return err
	}
	quart.MedianStyle.Color = paletteColor(i)
	quart.WhiskerStyle.Color = paletteColor(i)
	p.Add(quart)
	return nil
}

// ============================================================================
// KERNEL DENSITY — violin support
// ============================================================================

const violinSteps = 48

// violinOutline evaluates a Gaussian KDE (Silverman bandwidth) over the
// value range and mirrors it around loc with max half-width 0.4.
func violinOutline(loc float64, vals []float64) (plotter.XYs, bool) {
	n := len(vals)
	if n < 2 {
		return nil, false
	}
	sigma := stat.StdDev(vals, nil)
	if sigma <= 0 || math.IsNaN(sigma) {
		return nil, false
	}
	bw := 1.06 * sigma * math.Pow(float64(n), -0.2)

	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	lo -= 2 * bw
	hi += 2 * bw

	ys := make([]float64, violinSteps+1)
	ds := make([]float64, violinSteps+1)
	maxD := 0.0
	step := (hi - lo) / violinSteps
	for s := 0; s <= violinSteps; s++ {
		y := lo + float64(s)*step
		d := 0.0
		for _, v := range vals {
			z := (y - v) / bw
			d += math.Exp(-0.5 * z * z)
		}
		d /= float64(n) * bw * math.Sqrt(2*math.Pi)
		ys[s] = y
		ds[s] = d
		if d > maxD {
			maxD = d
		}
	}
	if maxD <= 0 {
		return nil, false
	}

	const halfWidth = 0.4
	xys := make(plotter.XYs, 0, 2*(violinSteps+1))
	for s := 0; s <= violinSteps; s++ { // right edge, bottom → top
		xys = append(xys, plotter.XY{X: loc + ds[s]/maxD*halfWidth, Y: ys[s]})
	}
	for s := violinSteps; s >= 0; s-- { // left edge, top → bottom
		xys = append(xys, plotter.XY{X: loc - ds[s]/maxD*halfWidth, Y: ys[s]})
	}
	return xys, true
}

func finiteValues(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
