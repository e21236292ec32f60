// Package driftview compares feature distributions across named dataset
// splits (train/validation/test) and renders the comparison.
//
// Usage:
//
//	import "github.com/driftview-org/driftview"
//
//	d := driftview.New(collection)
//	table, fig, err := d.ContinuousDiff([]string{"age", "fare"},
//	    render.WithKind("violin"),
//	    render.WithColWrap(2),
//	)
//
// Every comparison returns a long-form (tidy) gota dataframe together
// with the figure built from it — never one without the other. The
// figure is caller-owned and its facets can be restyled before saving.
//
// All computation is local and synchronous; a Differ holds no state
// beyond the dataset collection it was built with.
package driftview

import (
	"fmt"
	"log"

	"github.com/go-gota/gota/dataframe"

	"github.com/driftview-org/driftview/dataset"
	"github.com/driftview-org/driftview/longform"
	"github.com/driftview-org/driftview/render"
)

// Differ runs distribution comparisons over one dataset collection.
type Differ struct {
	datasets *dataset.Collection
}

// New creates a Differ over a collection of named datasets.
func New(c *dataset.Collection) *Differ {
	return &Differ{datasets: c}
}

// Datasets returns the underlying collection.
func (d *Differ) Datasets() *dataset.Collection { return d.datasets }

// CategoricalDiff compares level frequencies of categorical features
// across the datasets. It returns the long-form table (dataset, feature,
// level, count, prop) and a faceted grouped-bar figure.
func (d *Differ) CategoricalDiff(features []string, opts ...render.Option) (dataframe.DataFrame, *render.Figure, error) {
	return PlotCategoricalDiff(d.datasets, features, opts...)
}

// ContinuousDiff compares value distributions of continuous features
// across the datasets. It returns the long-form table (dataset, feature,
// value) and a faceted distribution figure.
func (d *Differ) ContinuousDiff(features []string, opts ...render.Option) (dataframe.DataFrame, *render.Figure, error) {
	return PlotContinuousDiff(d.datasets, features, opts...)
}

// Describe summarizes continuous features per dataset (count, mean, std,
// quartiles) as a gota dataframe.
func (d *Differ) Describe(features []string) (dataframe.DataFrame, error) {
	return longform.DescribeFrame(d.datasets, features)
}

// ============================================================================
// PACKAGE-LEVEL ENTRY POINTS
// ============================================================================

// PlotCategoricalDiff builds the categorical long-form table and figure
// in one pass. Validation failures (empty collection, missing feature,
// unknown kind) return before any figure is built.
func PlotCategoricalDiff(c *dataset.Collection, features []string, opts ...render.Option) (dataframe.DataFrame, *render.Figure, error) {
	rows, err := longform.Categorical(c, features)
	if err != nil {
		return dataframe.DataFrame{}, nil, err
	}

	log.Printf("📊 Driftview: comparing %d categorical features across %d datasets (%d rows)",
		len(features), c.Len(), c.TotalRows())

	fig, err := render.CategoricalFigure(rows, features, c.Names(), opts...)
	if err != nil {
		return dataframe.DataFrame{}, nil, fmt.Errorf("building categorical figure: %w", err)
	}
	return dataframe.LoadStructs(rows), fig, nil
}

// PlotContinuousDiff builds the continuous long-form table and figure in
// one pass.
func PlotContinuousDiff(c *dataset.Collection, features []string, opts ...render.Option) (dataframe.DataFrame, *render.Figure, error) {
	rows, err := longform.Continuous(c, features)
	if err != nil {
		return dataframe.DataFrame{}, nil, err
	}

	log.Printf("📊 Driftview: comparing %d continuous features across %d datasets (%d rows)",
		len(features), c.Len(), c.TotalRows())

	fig, err := render.ContinuousFigure(rows, features, c.Names(), opts...)
	if err != nil {
		return dataframe.DataFrame{}, nil, fmt.Errorf("building continuous figure: %w", err)
	}
	return dataframe.LoadStructs(rows), fig, nil
}
