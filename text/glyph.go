package text

import "github.com/gogpu/textnode"

// GlyphID is a unique identifier for a glyph within a font.
// The glyph ID is assigned by the font file and is font-specific.
type GlyphID uint16

// Glyph is one glyph of a string measured by a Face, positioned on the
// baseline relative to the start of the string.
type Glyph struct {
	// Rune is the Unicode character this glyph represents.
	Rune rune

	// GID is the glyph index in the font.
	GID GlyphID

	// X is the pen position of the glyph origin.
	X float64

	// Advance is the horizontal advance width of the glyph.
	Advance float64

	// Bounds is the ink box of the glyph relative to its origin, y down.
	Bounds textnode.Rect

	// Index is the byte position in the original string where this glyph starts.
	Index int

	// Cluster is the rune index of the glyph in the original string.
	Cluster int
}

// ShapedGlyph is a positioned glyph produced by a Shaper.
type ShapedGlyph struct {
	// GID is the glyph index in the font.
	GID GlyphID

	// Cluster is the rune index in the shaped text of the first character
	// this glyph renders. Ligatures map several runes to one cluster.
	Cluster int

	// X is the horizontal position relative to the text origin.
	X float64

	// Y is the vertical offset relative to the baseline.
	Y float64

	// XAdvance is the horizontal advance to the next glyph.
	XAdvance float64
}
