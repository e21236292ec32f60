package schema

// ============================================================================
// SCHEMA — classifies dataframe columns for comparison plotting
// ============================================================================
// Heuristic, no AI: column type + cardinality decide whether a feature is
// compared as categorical (level frequencies) or continuous (value
// distribution), or skipped entirely (unique-ID-like columns carry no
// distribution signal). Callers can always override by passing explicit
// feature lists.
// ============================================================================

// Feature kinds.
const (
	KindCategorical = "categorical"
	KindContinuous  = "continuous"
	KindSkipped     = "skipped"
)

// FeatureInfo describes how one column was classified.
type FeatureInfo struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Levels     int      `json:"levels"`               // distinct non-null values seen
	Samples    []string `json:"samples,omitempty"`    // up to 5 distinct values
	SkipReason string   `json:"skipReason,omitempty"` // set when Kind == "skipped"
}

// Partition splits classified features into categorical and continuous
// name lists, preserving column order. Skipped features appear in neither.
func Partition(infos []FeatureInfo) (categorical, continuous []string) {
	for _, fi := range infos {
		switch fi.Kind {
		case KindCategorical:
			categorical = append(categorical, fi.Name)
		case KindContinuous:
			continuous = append(continuous, fi.Name)
		}
	}
	return categorical, continuous
}
