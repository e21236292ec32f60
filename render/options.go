package render

import "strings"

// ============================================================================
// RENDER OPTIONS — Functional options for figure builders
// ============================================================================

// Option configures figure layout and style via functional options.
type Option func(*config)

type config struct {
	Kind    string  // plot kind; meaning depends on builder
	ColWrap int     // facets per row
	Size    float64 // facet height in inches
	Aspect  float64 // facet width = Size * Aspect
	Title   string  // overall figure title (empty → derived from names)
}

// WithKind sets the plot kind.
// Continuous figures accept: box, violin, strip, bar, point.
// Categorical figures accept: count, prop.
func WithKind(kind string) Option {
	return func(c *config) { c.Kind = kind }
}

// WithColWrap sets how many facets are drawn per row.
func WithColWrap(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.ColWrap = n
		}
	}
}

// WithSize sets the facet height in inches.
func WithSize(inches float64) Option {
	return func(c *config) {
		if inches > 0 {
			c.Size = inches
		}
	}
}

// WithAspect sets the facet width/height ratio.
func WithAspect(aspect float64) Option {
	return func(c *config) {
		if aspect > 0 {
			c.Aspect = aspect
		}
	}
}

// WithTitle overrides the derived figure title.
func WithTitle(title string) Option {
	return func(c *config) { c.Title = title }
}

// applyOptions creates a config from functional options over defaults.
func applyOptions(defaults config, opts []Option) *config {
	cfg := defaults
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

func continuousDefaults() config {
	return config{Kind: "box", ColWrap: 3, Size: 4, Aspect: 1}
}

func categoricalDefaults() config {
	return config{Kind: "prop", ColWrap: 4, Size: 4, Aspect: 1}
}

// defaultTitle derives "train/validation/test differences" from names.
func defaultTitle(names []string) string {
	return strings.Join(names, "/") + " differences"
}
