package text

import (
	"sync"

	"github.com/gogpu/textnode"
)

// FontParser is an interface for font parsing backends.
// The default implementation uses golang.org/x/image/font/opentype.
type FontParser interface {
	// Parse parses font data (TTF or OTF) and returns a ParsedFont.
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont represents a parsed font file. All sizes are in pixels per em.
type ParsedFont interface {
	// Name returns the font family name, or "" if not available.
	Name() string

	// FullName returns the full font name, or "" if not available.
	FullName() string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// UnitsPerEm returns the units per em for the font.
	UnitsPerEm() int

	// GlyphIndex returns the glyph index for a rune, 0 if not found.
	GlyphIndex(r rune) uint16

	// GlyphAdvance returns the advance width for a glyph.
	GlyphAdvance(glyphIndex uint16, ppem float64, h Hinting) float64

	// GlyphBounds returns the ink bounds of a glyph, y down.
	GlyphBounds(glyphIndex uint16, ppem float64, h Hinting) textnode.Rect

	// Kern returns the horizontal kerning adjustment between two glyphs.
	Kern(a, b uint16, ppem float64, h Hinting) float64

	// Metrics returns the font metrics at the given size.
	Metrics(ppem float64, h Hinting) FontMetrics

	// Outline returns the contours of a glyph in pixels, y down, relative
	// to the glyph origin. Glyphs without contours return no segments.
	Outline(glyphIndex uint16, ppem float64) ([]OutlineSegment, error)
}

// FontMetrics holds font-level metrics at a specific size.
type FontMetrics struct {
	// Ascent is the distance from the baseline to the top of the font.
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font,
	// positive below the baseline.
	Descent float64

	// Height is the recommended baseline-to-baseline distance.
	Height float64

	// XHeight is the height of lowercase letters (like 'x').
	XHeight float64

	// CapHeight is the height of uppercase letters.
	CapHeight float64
}

// LineGap returns the extra leading between lines.
func (m FontMetrics) LineGap() float64 {
	gap := m.Height - m.Ascent - m.Descent
	if gap < 0 {
		return 0
	}
	return gap
}

var (
	parserMu sync.RWMutex

	// parserRegistry holds registered font parsers.
	parserRegistry = map[string]FontParser{
		defaultParserName: &ximageParser{},
	}
)

// defaultParserName is the name of the default parser.
const defaultParserName = "ximage"

// RegisterParser registers a custom font parser under name.
func RegisterParser(name string, parser FontParser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = parser
}

// getParser returns the parser by name, or the default if not found.
func getParser(name string) FontParser {
	parserMu.RLock()
	defer parserMu.RUnlock()
	if p, ok := parserRegistry[name]; ok {
		return p
	}
	return parserRegistry[defaultParserName]
}
