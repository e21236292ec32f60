package longform

import (
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"

	"github.com/driftview-org/driftview/dataset"
)

// ============================================================================
// LONG FORM — wide datasets → tidy comparison rows
// ============================================================================
// Each row holds one (dataset, feature, observation) so figures can facet
// by feature and group by dataset. Row order is deterministic: datasets in
// collection order, features in caller order, levels in first-seen order.
// ============================================================================

// CategoricalRow is one level of one feature in one dataset.
type CategoricalRow struct {
	Dataset string  `dataframe:"dataset"`
	Feature string  `dataframe:"feature"`
	Level   string  `dataframe:"level"`
	Count   int     `dataframe:"count"`
	Prop    float64 `dataframe:"prop"`
}

// ContinuousRow is one observed value of one feature in one dataset.
type ContinuousRow struct {
	Dataset string  `dataframe:"dataset"`
	Feature string  `dataframe:"feature"`
	Value   float64 `dataframe:"value"`
}

// DescribeRow is a summary-statistics line for one feature in one dataset.
type DescribeRow struct {
	Dataset string  `dataframe:"dataset"`
	Feature string  `dataframe:"feature"`
	Count   int     `dataframe:"count"`
	Mean    float64 `dataframe:"mean"`
	Std     float64 `dataframe:"std"`
	Min     float64 `dataframe:"min"`
	Q25     float64 `dataframe:"q25"`
	Median  float64 `dataframe:"median"`
	Q75     float64 `dataframe:"q75"`
	Max     float64 `dataframe:"max"`
}

// ============================================================================
// CATEGORICAL
// ============================================================================

// Categorical produces value counts and proportions per (dataset, feature).
// Levels keep first-seen row order within each dataset.
func Categorical(c *dataset.Collection, features []string) ([]CategoricalRow, error) {
	if err := c.CheckFeatures(features); err != nil {
		return nil, err
	}

	var rows []CategoricalRow
	for _, name := range c.Names() {
		df, _ := c.Frame(name)
		total := df.Nrow()
		for _, feature := range features {
			counts, order := valueCounts(df, feature)
			for _, level := range order {
				count := counts[level]
				prop := 0.0
				if total > 0 {
					prop = float64(count) / float64(total)
				}
				rows = append(rows, CategoricalRow{
					Dataset: name,
					Feature: feature,
					Level:   level,
					Count:   count,
					Prop:    prop,
				})
			}
		}
	}
	return rows, nil
}

// CategoricalFrame is Categorical returned as a gota dataframe.
func CategoricalFrame(c *dataset.Collection, features []string) (dataframe.DataFrame, error) {
	rows, err := Categorical(c, features)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return dataframe.LoadStructs(rows), nil
}

func valueCounts(df dataframe.DataFrame, feature string) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string
	for _, v := range df.Col(feature).Records() {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	return counts, order
}

// ============================================================================
// CONTINUOUS
// ============================================================================

// Continuous produces one row per observed value per (dataset, feature).
// The output row count per feature equals the sum of input row counts,
// so no observation is lost in the reshape.
func Continuous(c *dataset.Collection, features []string) ([]ContinuousRow, error) {
	if err := c.CheckFeatures(features); err != nil {
		return nil, err
	}

	var rows []ContinuousRow
	for _, name := range c.Names() {
		df, _ := c.Frame(name)
		for _, feature := range features {
			for _, v := range df.Col(feature).Float() {
				rows = append(rows, ContinuousRow{
					Dataset: name,
					Feature: feature,
					Value:   v,
				})
			}
		}
	}
	return rows, nil
}

// ContinuousFrame is Continuous returned as a gota dataframe.
func ContinuousFrame(c *dataset.Collection, features []string) (dataframe.DataFrame, error) {
	rows, err := Continuous(c, features)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return dataframe.LoadStructs(rows), nil
}

// ============================================================================
// DESCRIBE — summary statistics per (dataset, feature)
// ============================================================================

// Describe computes count/mean/std/min/quartiles/max per (dataset, feature).
// Non-numeric and NaN observations are excluded from the statistics but a
// feature with no numeric values still yields a row with Count zero.
func Describe(c *dataset.Collection, features []string) ([]DescribeRow, error) {
	if err := c.CheckFeatures(features); err != nil {
		return nil, err
	}

	var rows []DescribeRow
	for _, name := range c.Names() {
		df, _ := c.Frame(name)
		for _, feature := range features {
			vals := numericValues(df.Col(feature).Float())
			row := DescribeRow{Dataset: name, Feature: feature, Count: len(vals)}
			if len(vals) > 0 {
				sorted := append([]float64(nil), vals...)
				sort.Float64s(sorted)
				row.Mean = stat.Mean(vals, nil)
				row.Std = stat.StdDev(vals, nil)
				row.Min = sorted[0]
				row.Q25 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
				row.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
				row.Q75 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
				row.Max = sorted[len(sorted)-1]
				if len(vals) == 1 {
					row.Std = 0
				}
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// DescribeFrame is Describe returned as a gota dataframe.
func DescribeFrame(c *dataset.Collection, features []string) (dataframe.DataFrame, error) {
	rows, err := Describe(c, features)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return dataframe.LoadStructs(rows), nil
}

func numericValues(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// ============================================================================
// GROUPED ACCESS — long-form rows keyed back by feature / dataset
// ============================================================================

// ValuesByDataset indexes continuous rows for a single feature as
// dataset → values, for figure builders. Dataset order follows names.
func ValuesByDataset(rows []ContinuousRow, feature string, names []string) map[string][]float64 {
	out := make(map[string][]float64, len(names))
	for _, name := range names {
		out[name] = nil
	}
	for _, r := range rows {
		if r.Feature != feature {
			continue
		}
		if _, ok := out[r.Dataset]; ok {
			out[r.Dataset] = append(out[r.Dataset], r.Value)
		}
	}
	return out
}

// LevelsForFeature returns the union of levels for a feature across all
// categorical rows, in first-appearance order.
func LevelsForFeature(rows []CategoricalRow, feature string) []string {
	seen := make(map[string]bool)
	var levels []string
	for _, r := range rows {
		if r.Feature != feature || seen[r.Level] {
			continue
		}
		seen[r.Level] = true
		levels = append(levels, r.Level)
	}
	return levels
}

// CategoricalValue picks count or prop for one (dataset, feature, level).
// Missing combinations read as zero — a level absent from one split is a
// legitimate drift signal, not an error.
func CategoricalValue(rows []CategoricalRow, dataset, feature, level, kind string) float64 {
	for _, r := range rows {
		if r.Dataset != dataset || r.Feature != feature || r.Level != level {
			continue
		}
		if kind == "count" {
			return float64(r.Count)
		}
		return r.Prop
	}
	return 0
}
