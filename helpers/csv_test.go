package helpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/driftview-org/driftview/dataset"
)

// ============================================================================
// CSV HELPER TESTS
// ============================================================================

var trainCSV = []byte(`color,age
red,1.5
blue,2.0
red,3.5
`)

var testCSV = []byte(`color,age
blue,4.0
green,5.5
`)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestParseCSVSpecs(t *testing.T) {
	files, err := ParseCSVSpecs("train=a.csv, test=b.csv")
	if err != nil {
		t.Fatalf("ParseCSVSpecs failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if files[0].Name != "train" || files[0].Path != "a.csv" {
		t.Errorf("first spec = %+v", files[0])
	}
	if files[1].Name != "test" || files[1].Path != "b.csv" {
		t.Errorf("second spec = %+v", files[1])
	}
}

func TestParseCSVSpecsMalformed(t *testing.T) {
	for _, spec := range []string{"", "train", "=a.csv", "train="} {
		if _, err := ParseCSVSpecs(spec); err == nil {
			t.Errorf("spec %q should fail", spec)
		}
	}
}

func TestLoadCSVFiles(t *testing.T) {
	files := []NamedFile{
		{Name: "train", Path: writeTemp(t, "train.csv", trainCSV)},
		{Name: "test", Path: writeTemp(t, "test.csv", testCSV)},
	}

	c, err := LoadCSVFiles(files)
	if err != nil {
		t.Fatalf("LoadCSVFiles failed: %v", err)
	}
	names := c.Names()
	if len(names) != 2 || names[0] != "train" || names[1] != "test" {
		t.Fatalf("Names() = %v, want [train test]", names)
	}
	if c.TotalRows() != 5 {
		t.Errorf("TotalRows() = %d, want 5", c.TotalRows())
	}
	if err := c.CheckFeatures([]string{"color", "age"}); err != nil {
		t.Errorf("loaded datasets missing features: %v", err)
	}
}

func TestLoadCSVFilesMissingFile(t *testing.T) {
	_, err := LoadCSVFiles([]NamedFile{{Name: "train", Path: "does-not-exist.csv"}})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseCSVBytes(t *testing.T) {
	c := dataset.New()
	if err := ParseCSV(c, "train", trainCSV); err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	df, ok := c.Frame("train")
	if !ok || df.Nrow() != 3 {
		t.Fatalf("train frame missing or wrong shape")
	}
}
