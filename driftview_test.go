package driftview

import (
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"

	"github.com/driftview-org/driftview/dataset"
	"github.com/driftview-org/driftview/render"
)

// ============================================================================
// FACADE TESTS
// ============================================================================

func splits() *dataset.Collection {
	train := dataframe.LoadRecords([][]string{
		{"color", "age"},
		{"red", "1.0"},
		{"blue", "2.0"},
		{"red", "3.0"},
	})
	test := dataframe.LoadRecords([][]string{
		{"color", "age"},
		{"blue", "4.0"},
		{"green", "5.0"},
	})
	return dataset.New().Add("train", train).Add("test", test)
}

func TestContinuousDiffReturnsTableAndFigure(t *testing.T) {
	d := New(splits())

	table, fig, err := d.ContinuousDiff([]string{"age"})
	if err != nil {
		t.Fatalf("ContinuousDiff failed: %v", err)
	}
	if fig == nil {
		t.Fatal("figure missing alongside table")
	}

	// Long-form rows = sum of input rows for one feature.
	if table.Nrow() != 5 {
		t.Errorf("table has %d rows, want 5", table.Nrow())
	}
	if got := len(fig.Facets()); got != 1 {
		t.Errorf("facet count = %d, want 1", got)
	}
}

func TestContinuousDiffOptionsFlow(t *testing.T) {
	d := New(splits())
	_, fig, err := d.ContinuousDiff([]string{"age"},
		render.WithKind("strip"),
		render.WithTitle("split drift"),
	)
	if err != nil {
		t.Fatalf("ContinuousDiff failed: %v", err)
	}
	if fig.Title != "split drift" {
		t.Errorf("title = %q, want split drift", fig.Title)
	}
}

func TestCategoricalDiff(t *testing.T) {
	d := New(splits())

	table, fig, err := d.CategoricalDiff([]string{"color"})
	if err != nil {
		t.Fatalf("CategoricalDiff failed: %v", err)
	}
	if fig == nil {
		t.Fatal("figure missing alongside table")
	}
	// train: red, blue; test: blue, green → 4 long-form rows.
	if table.Nrow() != 4 {
		t.Errorf("table has %d rows, want 4", table.Nrow())
	}
}

func TestDiffMissingFeatureFailsWhole(t *testing.T) {
	d := New(splits())

	_, fig, err := d.ContinuousDiff([]string{"age", "income"})
	if err == nil {
		t.Fatal("expected error for missing feature")
	}
	if fig != nil {
		t.Error("no figure should be returned on validation failure")
	}
	if !strings.Contains(err.Error(), `"income"`) {
		t.Errorf("error %q should name the missing feature", err)
	}
}

func TestDiffEmptyCollection(t *testing.T) {
	d := New(dataset.New())
	if _, _, err := d.CategoricalDiff([]string{"color"}); err == nil {
		t.Fatal("expected error for empty collection")
	}
}

func TestDiffUnknownKind(t *testing.T) {
	d := New(splits())
	_, _, err := d.ContinuousDiff([]string{"age"}, render.WithKind("heatmap"))
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestDescribe(t *testing.T) {
	d := New(splits())
	df, err := d.Describe([]string{"age"})
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if df.Nrow() != 2 {
		t.Errorf("describe rows = %d, want 2 (one per dataset)", df.Nrow())
	}
}
