package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ============================================================================
// FIGURE — a faceted grid of plots with an overall title
// ============================================================================
// One facet per compared feature, laid out row-major with ColWrap columns.
// The Figure is handed to the caller fully built; the caller owns it and
// may restyle individual facets before saving.
// ============================================================================

const titleBand = vg.Length(30) // vertical space reserved for the title

// Figure is a renderable grid of feature facets.
type Figure struct {
	Title string

	facets []*plot.Plot
	cols   int
	facetW vg.Length
	facetH vg.Length
}

func newFigure(title string, facets []*plot.Plot, cfg *config) *Figure {
	cols := cfg.ColWrap
	if cols > len(facets) {
		cols = len(facets)
	}
	if cols < 1 {
		cols = 1
	}
	return &Figure{
		Title:  title,
		facets: facets,
		cols:   cols,
		facetW: vg.Length(cfg.Size*cfg.Aspect) * vg.Inch,
		facetH: vg.Length(cfg.Size) * vg.Inch,
	}
}

// Facets returns the individual plots in feature order.
func (f *Figure) Facets() []*plot.Plot { return f.facets }

// Cols returns the number of facet columns.
func (f *Figure) Cols() int { return f.cols }

// Rows returns the number of facet rows.
func (f *Figure) Rows() int {
	if len(f.facets) == 0 {
		return 0
	}
	return (len(f.facets) + f.cols - 1) / f.cols
}

// ============================================================================
// RENDERING
// ============================================================================

// Save renders the figure to a file. The format follows the extension:
// .png, .jpg, .jpeg or .tiff.
func (f *Figure) Save(path string) error {
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating figure file: %w", err)
	}
	defer w.Close()

	img, err := f.render()
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		_, err = vgimg.PngCanvas{Canvas: img}.WriteTo(w)
	case ".jpg", ".jpeg":
		_, err = vgimg.JpegCanvas{Canvas: img}.WriteTo(w)
	case ".tiff":
		_, err = vgimg.TiffCanvas{Canvas: img}.WriteTo(w)
	default:
		return fmt.Errorf("unsupported figure format %q (valid: .png, .jpg, .jpeg, .tiff)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("writing figure: %w", err)
	}
	return nil
}

// WriteTo renders the figure as PNG into w.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	img, err := f.render()
	if err != nil {
		return 0, err
	}
	return vgimg.PngCanvas{Canvas: img}.WriteTo(w)
}

func (f *Figure) render() (*vgimg.Canvas, error) {
	if len(f.facets) == 0 {
		return nil, fmt.Errorf("figure has no facets")
	}

	rows := f.Rows()
	width := f.facetW * vg.Length(f.cols)
	height := f.facetH * vg.Length(rows)
	if f.Title != "" {
		height += titleBand
	}

	img := vgimg.New(width, height)
	dc := draw.New(img)

	if f.Title != "" {
		drawFigureTitle(dc, width, height, f.Title)
		dc = draw.Crop(dc, 0, 0, 0, -titleBand)
	}

	// Row-major facet grid; trailing cells stay empty.
	grid := make([][]*plot.Plot, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]*plot.Plot, f.cols)
		for c := 0; c < f.cols; c++ {
			idx := r*f.cols + c
			if idx < len(f.facets) {
				grid[r][c] = f.facets[idx]
			}
		}
	}

	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      f.cols,
		PadX:      vg.Points(14),
		PadY:      vg.Points(14),
		PadTop:    vg.Points(6),
		PadBottom: vg.Points(6),
		PadLeft:   vg.Points(6),
		PadRight:  vg.Points(6),
	}

	canvases := plot.Align(grid, tiles, dc)
	for r := range grid {
		for c, p := range grid[r] {
			if p != nil {
				p.Draw(canvases[r][c])
			}
		}
	}
	return img, nil
}

func drawFigureTitle(dc draw.Canvas, width, height vg.Length, title string) {
	sty := text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, vg.Points(16)),
		XAlign:  draw.XCenter,
		YAlign:  draw.YTop,
		Handler: text.Plain{Fonts: font.DefaultCache},
	}
	dc.FillText(sty, vg.Point{X: width / 2, Y: height - vg.Points(6)}, title)
}
