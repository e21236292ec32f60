package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/driftview-org/driftview/longform"
)

// ============================================================================
// CATEGORICAL FIGURES — level frequency comparison facets
// ============================================================================
// One facet per feature: X is the feature level (nominal), one bar per
// dataset per level, datasets side by side. Kind picks the Y measure:
// raw counts or within-dataset proportions.
// ============================================================================

var categoricalKinds = map[string]bool{
	"count": true,
	"prop":  true,
}

// CategoricalFigure builds a faceted grouped-bar figure from categorical
// long-form rows. Levels missing from a dataset draw as zero-height bars.
func CategoricalFigure(rows []longform.CategoricalRow, features, names []string, opts ...Option) (*Figure, error) {
	cfg := applyOptions(categoricalDefaults(), opts)
	if !categoricalKinds[cfg.Kind] {
		return nil, fmt.Errorf("unknown categorical kind %q (valid: count, prop)", cfg.Kind)
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
		levels := longform.LevelsForFeature(rows, feature)

		p := plot.New()
		p.Title.Text = feature
		p.Y.Label.Text = cfg.Kind
		p.NominalX(levels...)
		p.Legend.Top = true

		barWidth := groupedBarWidth(len(names))
		for i, name := range names {
			vals := make(plotter.Values, len(levels))
			for j, level := range levels {
				vals[j] = longform.CategoricalValue(rows, name, feature, level, cfg.Kind)
			}
			bar, err := plotter.NewBarChart(vals, barWidth)
			if err != nil {
				return nil, fmt.Errorf("feature %q dataset %q: %w", feature, name, err)
			}
			bar.Color = paletteFill(i)
			bar.LineStyle.Width = 0
			bar.Offset = barWidth * vg.Length(float64(i)-float64(len(names)-1)/2)
			p.Add(bar)
			p.Legend.Add(name, bar)
		}
		facets = append(facets, p)
	}

	return newFigure(title, facets, cfg), nil
}

// groupedBarWidth keeps a level's bar group within its nominal slot as
// the dataset count grows.
func groupedBarWidth(datasets int) vg.Length {
	if datasets <= 0 {
		return vg.Points(20)
	}
	w := 48.0 / float64(datasets)
	if w > 20 {
		w = 20
	}
	if w < 4 {
		w = 4
	}
	return vg.Points(w)
}
