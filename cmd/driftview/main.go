package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"github.com/driftview-org/driftview"
	"github.com/driftview-org/driftview/dataset"
	"github.com/driftview-org/driftview/helpers"
	"github.com/driftview-org/driftview/longform"
	"github.com/driftview-org/driftview/render"
	"github.com/driftview-org/driftview/schema"
)

// ============================================================================
// DRIFTVIEW CLI — compare feature distributions across dataset splits
// ============================================================================

const version = "0.1.0"

func main() {
	dataSpec := flag.String("data", "", "Datasets as name=path CSV pairs, comma separated (required)")
	featureList := flag.String("features", "", "Features to compare, comma separated (empty = auto-detect)")
	mode := flag.String("mode", "auto", "Comparison mode: categorical, continuous, auto")
	kind := flag.String("kind", "", "Plot kind (continuous: box, violin, strip, bar, point; categorical: count, prop)")
	outFile := flag.String("out", "diff.png", "Figure output file (.png, .jpg, .tiff)")
	tableFile := flag.String("table", "", "Write the long-form table as CSV to this file")
	describe := flag.Bool("describe", false, "Print summary statistics per dataset and feature")
	colWrap := flag.Int("col-wrap", 0, "Facets per row (0 = default)")
	size := flag.Float64("size", 0, "Facet height in inches (0 = default)")
	aspect := flag.Float64("aspect", 0, "Facet width/height ratio (0 = default)")
	title := flag.String("title", "", "Figure title (default: \"<names> differences\")")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Driftview — compare feature distributions across dataset splits

Usage:
  driftview --data train=train.csv,test=test.csv --mode continuous --features age,fare
  driftview --data train=train.csv,test=test.csv --mode categorical --kind count --out levels.png
  driftview --data train=train.csv,test=test.csv --describe
  driftview --data train=train.csv,val=val.csv,test=test.csv

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Modes:
  categorical   Grouped level-frequency bars per feature
  continuous    Value-distribution facets per feature (box by default)
  auto          Classify columns of the first dataset and run both

Examples:
  # Violin comparison of two numeric features
  driftview --data train=train.csv,test=test.csv --mode continuous \
      --kind violin --features age,fare --out drift.png --table drift.csv

  # Auto mode writes <out>_categorical and <out>_continuous figures
  driftview --data train=train.csv,test=test.csv --out diff.png
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("driftview %s\n", version)
		os.Exit(0)
	}

	if *dataSpec == "" {
		fmt.Fprintln(os.Stderr, "Error: --data is required")
		flag.Usage()
		os.Exit(1)
	}

	collection, err := helpers.LoadCSVSpecs(*dataSpec)
	if err != nil {
		fail(err)
	}

	features := splitList(*featureList)

	// Layout options apply to every figure; --kind is mode-specific and
	// added per comparison below.
	var layout []render.Option
	if *colWrap > 0 {
		layout = append(layout, render.WithColWrap(*colWrap))
	}
	if *size > 0 {
		layout = append(layout, render.WithSize(*size))
	}
	if *aspect > 0 {
		layout = append(layout, render.WithAspect(*aspect))
	}
	if *title != "" {
		layout = append(layout, render.WithTitle(*title))
	}
	withKind := layout
	if *kind != "" {
		withKind = append(append([]render.Option{}, layout...), render.WithKind(*kind))
	}

	if *describe {
		if err := printDescribe(collection, features); err != nil {
			fail(err)
		}
		return
	}

	d := driftview.New(collection)

	switch *mode {
	case "categorical":
		if len(features) == 0 {
			features, _ = autoFeatures(collection)
		}
		err = runDiff(d.CategoricalDiff, features, *outFile, *tableFile, withKind)

	case "continuous":
		if len(features) == 0 {
			_, features = autoFeatures(collection)
		}
		err = runDiff(d.ContinuousDiff, features, *outFile, *tableFile, withKind)

	case "auto":
		if *kind != "" {
			fmt.Fprintln(os.Stderr, "warning: --kind is ignored in auto mode (kinds are comparison-specific)")
		}
		cat, cont := autoFeatures(collection)
		if len(features) > 0 {
			cat = intersect(cat, features)
			cont = intersect(cont, features)
		}
		if len(cat) == 0 && len(cont) == 0 {
			err = fmt.Errorf("no plottable features detected")
			break
		}
		if len(cat) > 0 {
			if err = runDiff(d.CategoricalDiff, cat, suffixed(*outFile, "_categorical"), suffixed(*tableFile, "_categorical"), layout); err != nil {
				break
			}
		}
		if len(cont) > 0 {
			err = runDiff(d.ContinuousDiff, cont, suffixed(*outFile, "_continuous"), suffixed(*tableFile, "_continuous"), layout)
		}

	default:
		err = fmt.Errorf("unknown mode %q (valid: categorical, continuous, auto)", *mode)
	}

	if err != nil {
		fail(err)
	}
}

func runDiff(
	diff func([]string, ...render.Option) (dataframe.DataFrame, *render.Figure, error),
	features []string,
	outFile, tableFile string,
	layout []render.Option,
) error {
	if len(features) == 0 {
		return fmt.Errorf("no features to compare (use --features or check the data)")
	}

	table, fig, err := diff(features, layout...)
	if err != nil {
		return err
	}

	if err := fig.Save(outFile); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d facets)\n", outFile, len(fig.Facets()))

	if tableFile != "" {
		f, err := os.Create(tableFile)
		if err != nil {
			return fmt.Errorf("creating table file: %w", err)
		}
		defer f.Close()
		if err := table.WriteCSV(f); err != nil {
			return fmt.Errorf("writing table: %w", err)
		}
		fmt.Printf("wrote %s\n", tableFile)
	}
	return nil
}

func printDescribe(c *dataset.Collection, features []string) error {
	if len(features) == 0 {
		_, features = autoFeatures(c)
	}
	if len(features) == 0 {
		return fmt.Errorf("no continuous features to describe")
	}
	df, err := longform.DescribeFrame(c, features)
	if err != nil {
		return err
	}
	fmt.Println(df)
	return nil
}

// autoFeatures classifies the first dataset's columns.
// Later datasets only need to carry the chosen features, not match schemas.
func autoFeatures(c *dataset.Collection) (categorical, continuous []string) {
	names := c.Names()
	if len(names) == 0 {
		return nil, nil
	}
	df, _ := c.Frame(names[0])
	infos, err := schema.Detect(df)
	if err != nil {
		return nil, nil
	}
	return schema.Partition(infos)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func intersect(have, want []string) []string {
	wanted := make(map[string]bool, len(want))
	for _, w := range want {
		wanted[w] = true
	}
	var out []string
	for _, h := range have {
		if wanted[h] {
			out = append(out, h)
		}
	}
	return out
}

// suffixed inserts a suffix before the file extension; empty paths stay empty.
func suffixed(path, suffix string) string {
	if path == "" {
		return ""
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
