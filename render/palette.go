package render

import "image/color"

// ============================================================================
// PALETTE — series colors shared by all figure builders
// ============================================================================

// Default color palette, one color per dataset in collection order.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// paletteColor returns the i-th palette color, cycling past the end.
func paletteColor(i int) color.RGBA {
	return parseHex(defaultColors[i%len(defaultColors)])
}

// paletteFill is paletteColor with alpha suitable for filled areas.
func paletteFill(i int) color.RGBA {
	c := paletteColor(i)
	c.A = 0xB0
	return c
}

// parseHex converts "#RRGGBB" to an opaque RGBA. Malformed input falls
// back to mid gray rather than failing a render.
func parseHex(s string) color.RGBA {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	}
	hex := func(hi, lo byte) uint8 {
		return hexDigit(hi)<<4 | hexDigit(lo)
	}
	return color.RGBA{
		R: hex(s[1], s[2]),
		G: hex(s[3], s[4]),
		B: hex(s[5], s[6]),
		A: 0xFF,
	}
}

func hexDigit(b byte) uint8 {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	}
	return 0
}
