package helpers

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"github.com/driftview-org/driftview/dataset"
)

// ============================================================================
// CSV HELPER — named CSV files → dataset.Collection
// ============================================================================
// The caller owns where the data lives; this helper only turns files (or
// raw bytes) into the named frames a comparison needs.
// ============================================================================

// NamedFile is one dataset split on disk.
type NamedFile struct {
	Name string
	Path string
}

// LoadCSVFiles reads each file into a dataframe and registers it under
// its name, in the given order.
func LoadCSVFiles(files []NamedFile) (*dataset.Collection, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no dataset files given")
	}

	c := dataset.New()
	for _, f := range files {
		if f.Name == "" {
			return nil, fmt.Errorf("dataset file %q has no name", f.Path)
		}
		r, err := os.Open(f.Path)
		if err != nil {
			return nil, fmt.Errorf("opening dataset %q: %w", f.Name, err)
		}
		df := dataframe.ReadCSV(r)
		r.Close()
		if err := df.Error(); err != nil {
			return nil, fmt.Errorf("parsing dataset %q: %w", f.Name, err)
		}
		c.Add(f.Name, df)
	}
	return c, nil
}

// ParseCSVSpecs parses "train=train.csv,test=test.csv" into ordered
// name/path pairs.
func ParseCSVSpecs(spec string) ([]NamedFile, error) {
	var files []NamedFile
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, path, ok := strings.Cut(part, "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("malformed dataset spec %q (want name=path)", part)
		}
		files = append(files, NamedFile{Name: name, Path: path})
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("empty dataset spec")
	}
	return files, nil
}

// LoadCSVSpecs is ParseCSVSpecs + LoadCSVFiles in one call.
func LoadCSVSpecs(spec string) (*dataset.Collection, error) {
	files, err := ParseCSVSpecs(spec)
	if err != nil {
		return nil, err
	}
	return LoadCSVFiles(files)
}

// ParseCSV loads raw CSV bytes as a single named dataset into an
// existing collection.
func ParseCSV(c *dataset.Collection, name string, data []byte) error {
	df := dataframe.ReadCSV(strings.NewReader(string(data)))
	if err := df.Error(); err != nil {
		return fmt.Errorf("parsing dataset %q: %w", name, err)
	}
	c.Add(name, df)
	return nil
}
