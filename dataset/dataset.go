package dataset

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ============================================================================
// COLLECTION — Named dataset splits
// ============================================================================
// A Collection maps split names ("train", "validation", "test") to gota
// dataframes. Insertion order is preserved: it drives long-form row order
// and figure legend order, so comparisons stay deterministic.
//
// The collection never copies frames — gota dataframes share their series
// backing, so Add/Frame are cheap.
// ============================================================================

// Collection is an ordered mapping of dataset name to dataframe.
type Collection struct {
	names  []string
	frames map[string]dataframe.DataFrame
}

// New creates an empty Collection.
func New() *Collection {
	return &Collection{frames: make(map[string]dataframe.DataFrame)}
}

// FromMap builds a Collection from a name → frame map.
// Names are sorted so iteration order is stable across runs.
func FromMap(m map[string]dataframe.DataFrame) *Collection {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	c := New()
	for _, name := range names {
		c.Add(name, m[name])
	}
	return c
}

// Add registers a named dataset. Re-adding an existing name replaces the
// frame but keeps its original position.
func (c *Collection) Add(name string, df dataframe.DataFrame) *Collection {
	if _, exists := c.frames[name]; !exists {
		c.names = append(c.names, name)
	}
	c.frames[name] = df
	return c
}

// Names returns dataset names in insertion order.
func (c *Collection) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Frame returns the dataframe registered under name.
func (c *Collection) Frame(name string) (dataframe.DataFrame, bool) {
	df, ok := c.frames[name]
	return df, ok
}

// Len returns the number of datasets.
func (c *Collection) Len() int { return len(c.names) }

// TotalRows sums row counts across all datasets.
func (c *Collection) TotalRows() int {
	total := 0
	for _, name := range c.names {
		total += c.frames[name].Nrow()
	}
	return total
}

// ============================================================================
// VALIDATION
// ============================================================================

// CheckFeatures validates that every feature exists in every dataset.
// The first missing feature fails the whole call — nothing is silently
// dropped from a comparison.
func (c *Collection) CheckFeatures(features []string) error {
	if c.Len() == 0 {
		return fmt.Errorf("dataset collection is empty")
	}
	for _, feature := range features {
		for _, name := range c.names {
			if !hasColumn(c.frames[name], feature) {
				return fmt.Errorf("feature %q missing in dataset %q", feature, name)
			}
		}
	}
	return nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, col := range df.Names() {
		if col == name {
			return true
		}
	}
	return false
}

// ============================================================================
// SPLITTING — one frame → collection keyed by a categorical feature
// ============================================================================

// FromFrame splits a single frame into a Collection keyed by the levels
// of a categorical feature. Each level becomes a dataset named after it,
// holding the rows where the feature takes that value. Levels appear in
// first-seen row order.
func FromFrame(df dataframe.DataFrame, feature string) (*Collection, error) {
	if err := df.Error(); err != nil {
		return nil, fmt.Errorf("invalid source frame: %w", err)
	}
	if !hasColumn(df, feature) {
		return nil, fmt.Errorf("feature %q missing in source frame", feature)
	}

	col := df.Col(feature)
	seen := make(map[string]bool)
	var levels []string
	for _, v := range col.Records() {
		if !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}

	c := New()
	for _, level := range levels {
		sub := df.Filter(dataframe.F{
			Colname:    feature,
			Comparator: series.Eq,
			Comparando: level,
		})
		if err := sub.Error(); err != nil {
			return nil, fmt.Errorf("splitting on %q level %q: %w", feature, level, err)
		}
		c.Add(level, sub)
	}
	return c, nil
}
