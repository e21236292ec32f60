package render

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/driftview-org/driftview/longform"
)

// ============================================================================
// FIXTURES
// ============================================================================

var names = []string{"train", "test"}

func continuousRows() []longform.ContinuousRow {
	var rows []longform.ContinuousRow
	for _, feature := range []string{"age", "fare", "weight"} {
		for i, name := range names {
			for j := 0; j < 8; j++ {
				rows = append(rows, longform.ContinuousRow{
					Dataset: name,
					Feature: feature,
					Value:   float64(j) + float64(i)*2.5,
				})
			}
		}
	}
	return rows
}

func categoricalRows() []longform.CategoricalRow {
	return []longform.CategoricalRow{
		{Dataset: "train", Feature: "color", Level: "red", Count: 3, Prop: 0.75},
		{Dataset: "train", Feature: "color", Level: "blue", Count: 1, Prop: 0.25},
		{Dataset: "test", Feature: "color", Level: "blue", Count: 1, Prop: 0.5},
		{Dataset: "test", Feature: "color", Level: "green", Count: 1, Prop: 0.5},
	}
}

// ============================================================================
// CONTINUOUS FIGURE TESTS
// ============================================================================

func TestContinuousFigureLayout(t *testing.T) {
	fig, err := ContinuousFigure(continuousRows(), []string{"age", "fare", "weight"}, names,
		WithColWrap(2))
	if err != nil {
		t.Fatalf("ContinuousFigure failed: %v", err)
	}

	if got := len(fig.Facets()); got != 3 {
		t.Errorf("facet count = %d, want 3", got)
	}
	if fig.Cols() != 2 || fig.Rows() != 2 {
		t.Errorf("grid = %dx%d, want 2x2", fig.Rows(), fig.Cols())
	}
	if fig.Title != "train/test differences" {
		t.Errorf("derived title = %q", fig.Title)
	}
	if fig.Facets()[0].Title.Text != "age" {
		t.Errorf("first facet title = %q, want age", fig.Facets()[0].Title.Text)
	}
}

func TestContinuousFigureAllKinds(t *testing.T) {
	for _, kind := range []string{"box", "violin", "strip", "bar", "point"} {
		if _, err := ContinuousFigure(continuousRows(), []string{"age"}, names, WithKind(kind)); err != nil {
			t.Errorf("kind %s failed: %v", kind, err)
		}
	}
}

func TestContinuousFigureUnknownKind(t *testing.T) {
	_, err := ContinuousFigure(continuousRows(), []string{"age"}, names, WithKind("hexbin"))
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if !strings.Contains(err.Error(), "hexbin") {
		t.Errorf("error %q should name the bad kind", err)
	}
}

func TestContinuousFigureTitleOverride(t *testing.T) {
	fig, err := ContinuousFigure(continuousRows(), []string{"age"}, names,
		WithTitle("drift check"))
	if err != nil {
		t.Fatalf("ContinuousFigure failed: %v", err)
	}
	if fig.Title != "drift check" {
		t.Errorf("title = %q, want drift check", fig.Title)
	}
}

func TestContinuousFigureNoFeatures(t *testing.T) {
	if _, err := ContinuousFigure(continuousRows(), nil, names); err == nil {
		t.Fatal("expected error for empty feature list")
	}
}

// NaN observations must not reach the geometry builders.
func TestContinuousFigureDropsNaN(t *testing.T) {
	rows := continuousRows()
	rows = append(rows, longform.ContinuousRow{Dataset: "train", Feature: "age", Value: math.NaN()})
	if _, err := ContinuousFigure(rows, []string{"age"}, names); err != nil {
		t.Fatalf("ContinuousFigure with NaN failed: %v", err)
	}
}

// ============================================================================
// CATEGORICAL FIGURE TESTS
// ============================================================================

func TestCategoricalFigure(t *testing.T) {
	fig, err := CategoricalFigure(categoricalRows(), []string{"color"}, names)
	if err != nil {
		t.Fatalf("CategoricalFigure failed: %v", err)
	}
	if got := len(fig.Facets()); got != 1 {
		t.Fatalf("facet count = %d, want 1", got)
	}
	if fig.Facets()[0].Y.Label.Text != "prop" {
		t.Errorf("default Y label = %q, want prop", fig.Facets()[0].Y.Label.Text)
	}
}

func TestCategoricalFigureCountKind(t *testing.T) {
	fig, err := CategoricalFigure(categoricalRows(), []string{"color"}, names, WithKind("count"))
	if err != nil {
		t.Fatalf("CategoricalFigure failed: %v", err)
	}
	if fig.Facets()[0].Y.Label.Text != "count" {
		t.Errorf("Y label = %q, want count", fig.Facets()[0].Y.Label.Text)
	}
}

func TestCategoricalFigureUnknownKind(t *testing.T) {
	if _, err := CategoricalFigure(categoricalRows(), []string{"color"}, names, WithKind("box")); err == nil {
		t.Fatal("expected error: box is not a categorical kind")
	}
}

// ============================================================================
// SAVE TESTS
// ============================================================================

func TestFigureSavePNG(t *testing.T) {
	fig, err := ContinuousFigure(continuousRows(), []string{"age", "fare"}, names)
	if err != nil {
		t.Fatalf("ContinuousFigure failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "diff.png")
	if err := fig.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("saved figure missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("saved figure is empty")
	}
}

func TestFigureSaveUnknownFormat(t *testing.T) {
	fig, err := CategoricalFigure(categoricalRows(), []string{"color"}, names)
	if err != nil {
		t.Fatalf("CategoricalFigure failed: %v", err)
	}
	if err := fig.Save(filepath.Join(t.TempDir(), "diff.bmp")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

// ============================================================================
// GEOMETRY HELPERS
// ============================================================================

func TestViolinOutline(t *testing.T) {
	vals := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5}
	xys, ok := violinOutline(2.0, vals)
	if !ok {
		t.Fatal("violinOutline rejected well-behaved data")
	}
	if len(xys) != 2*(violinSteps+1) {
		t.Fatalf("outline has %d points, want %d", len(xys), 2*(violinSteps+1))
	}
	for _, p := range xys {
		if p.X < 2.0-0.4-1e-9 || p.X > 2.0+0.4+1e-9 {
			t.Fatalf("outline X %v outside half-width around loc", p.X)
		}
	}
}

func TestViolinOutlineDegenerate(t *testing.T) {
	if _, ok := violinOutline(0, []float64{3, 3, 3, 3}); ok {
		t.Error("zero-variance data should have no violin outline")
	}
	if _, ok := violinOutline(0, []float64{1}); ok {
		t.Error("single value should have no violin outline")
	}
}

func TestParseHex(t *testing.T) {
	c := parseHex("#4F46E5")
	if c.R != 0x4F || c.G != 0x46 || c.B != 0xE5 || c.A != 0xFF {
		t.Errorf("parseHex = %+v", c)
	}
	fallback := parseHex("not-a-color")
	if fallback.R != 0x80 {
		t.Errorf("malformed hex should fall back to gray, got %+v", fallback)
	}
}

func TestGroupedBarWidthBounds(t *testing.T) {
	if groupedBarWidth(2) <= groupedBarWidth(8) {
		t.Error("bar width should shrink as dataset count grows")
	}
	if groupedBarWidth(100) < groupedBarWidth(1000) {
		t.Error("bar width must not shrink below its floor")
	}
}
