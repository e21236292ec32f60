package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ============================================================================
// DETECTION — type + cardinality classification per column
// ============================================================================
// Pipeline per column:
//   1. Sample values → drop nulls, count distinct
//   2. Series type + decimal presence → numeric vs textual
//   3. Cardinality → low-cardinality numerics are still categorical
//      ("number of doors" is a category, not a distribution)
//   4. Near-unique textual columns → skipped as ID-like
// ============================================================================

// DetectOptions controls classification behavior.
type DetectOptions struct {
	MaxLevels   int     // distinct-value ceiling for categorical numerics. Default: 20
	UniqueRatio float64 // distinct/total ratio above which text is ID-like. Default: 0.95
	SampleSize  int     // max rows inspected per column (0 = all). Default: 1000
}

// DefaultDetectOptions returns sensible defaults.
func DefaultDetectOptions() DetectOptions {
	return DetectOptions{
		MaxLevels:   20,
		UniqueRatio: 0.95,
		SampleSize:  1000,
	}
}

// Detect classifies every column of a frame. Column order is preserved.
func Detect(df dataframe.DataFrame, opts ...DetectOptions) ([]FeatureInfo, error) {
	if err := df.Error(); err != nil {
		return nil, fmt.Errorf("invalid frame: %w", err)
	}
	opt := DefaultDetectOptions()
	if len(opts) > 0 {
		opt = opts[0]
		if opt.MaxLevels <= 0 {
			opt.MaxLevels = 20
		}
		if opt.UniqueRatio <= 0 {
			opt.UniqueRatio = 0.95
		}
	}

	infos := make([]FeatureInfo, 0, df.Ncol())
	for _, name := range df.Names() {
		infos = append(infos, classifyColumn(name, df.Col(name), opt))
	}
	return infos, nil
}

func classifyColumn(name string, col series.Series, opt DetectOptions) FeatureInfo {
	records := col.Records()
	if opt.SampleSize > 0 && len(records) > opt.SampleSize {
		records = records[:opt.SampleSize]
	}

	distinct := make(map[string]bool)
	var values []string
	numeric := true
	hasDecimals := false

	for _, raw := range records {
		v := strings.TrimSpace(raw)
		if isNull(v) {
			continue
		}
		values = append(values, v)
		distinct[v] = true
		if f, err := strconv.ParseFloat(v, 64); err != nil {
			numeric = false
		} else if f != float64(int64(f)) {
			hasDecimals = true
		}
	}

	info := FeatureInfo{
		Name:    name,
		Levels:  len(distinct),
		Samples: collectSamples(values, distinct, 5),
	}

	if len(values) == 0 {
		info.Kind = KindSkipped
		info.SkipReason = "all values are empty or null"
		return info
	}

	switch {
	case numeric && (hasDecimals || len(distinct) > opt.MaxLevels):
		// Decimals or wide numeric range → value distribution.
		info.Kind = KindContinuous

	case numeric:
		// Small integer domains compare as level frequencies.
		info.Kind = KindCategorical

	case nearUnique(len(distinct), len(values), opt.UniqueRatio):
		info.Kind = KindSkipped
		info.SkipReason = "near-unique values (ID-like column)"

	default:
		info.Kind = KindCategorical
	}
	return info
}

func isNull(v string) bool {
	switch strings.ToLower(v) {
	case "", "null", "n/a", "na", "nan", "none", "-":
		return true
	}
	return false
}

func nearUnique(distinct, total int, ratio float64) bool {
	if total < 10 {
		// Too few rows to call anything ID-like.
		return false
	}
	return float64(distinct)/float64(total) >= ratio
}

// collectSamples returns up to limit distinct values in first-seen order.
func collectSamples(values []string, distinct map[string]bool, limit int) []string {
	seen := make(map[string]bool, len(distinct))
	var out []string
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}
