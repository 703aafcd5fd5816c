package text

import (
	"iter"
	"math"
	"unicode/utf8"
)

// Metrics are the vertical metrics of a face in pixels. Descent is
// positive below the baseline.
type Metrics struct {
	Ascent, Descent float64
	LineGap         float64
	XHeight         float64
	CapHeight       float64
}

// Height is the natural line height, ascent plus descent. Lines are
// stacked by it; the line gap is not added.
func (m Metrics) Height() float64 { return m.Ascent + m.Descent }

// LineHeight adds the line gap to Height.
func (m Metrics) LineHeight() float64 { return m.Height() + m.LineGap }

// Face represents a font face at a specific pixel size.
// This is a lightweight object that can be created from a FontSource.
// Besides glyph lookup it is the font metrics service of the layout
// engine: ascent, decoration line thickness, underline position and
// ellipsis width are all answered here.
//
// Face is safe for concurrent use.
type Face interface {
	// Metrics returns the font metrics at this face's size.
	Metrics() Metrics

	// Advance returns the total advance width of the text in pixels,
	// including pair kerning.
	Advance(text string) float64

	// HasGlyph reports whether the font has a glyph for the given rune.
	HasGlyph(r rune) bool

	// Glyphs returns an iterator over the glyphs of text positioned
	// relative to the origin (0, 0).
	Glyphs(text string) iter.Seq[Glyph]

	// AppendGlyphs appends glyphs for the text to dst and returns the extended slice.
	AppendGlyphs(dst []Glyph, text string) []Glyph

	// Direction returns the text direction for this face.
	Direction() Direction

	// Source returns the FontSource this face was created from.
	Source() *FontSource

	// Size returns the size of this face in pixels per em.
	Size() float64

	// Weight returns the nominal weight (400 regular, 700 bold).
	Weight() int

	// Italic reports whether the face was created as italic.
	Italic() bool

	// Language returns the BCP 47 language tag given to the shaper.
	Language() string

	// LineThickness returns the stroke width of underline, overline and
	// strikeout decorations.
	LineThickness() float64

	// UnderlinePosition returns the distance of the underline below the baseline.
	UnderlinePosition() float64

	// Ellipsis returns the ellipsis string used for elision: U+2026 when
	// the font has it, "..." otherwise.
	Ellipsis() string

	// EllipsisWidth returns Advance(Ellipsis()).
	EllipsisWidth() float64

	// ElidedText returns s elided with mode so that its advance does not
	// exceed width. Cuts fall on rune boundaries. s is returned unchanged
	// when it already fits or mode is ElideNone.
	ElidedText(s string, mode ElideMode, width float64) string

	// Key identifies the face for batching: equal keys render identically.
	Key() FaceKey

	// private prevents external implementation
	private()
}

// FaceKey is the comparable identity of a Face.
type FaceKey struct {
	Source uint64
	Size   uint64
	Weight int
	Italic bool
}

// sourceFace is the internal implementation of Face.
type sourceFace struct {
	source *FontSource
	size   float64
	config faceConfig
}

// parsed returns the parsed font, or nil once the source is closed.
func (f *sourceFace) parsed() ParsedFont {
	return f.source.Parsed()
}

// Metrics implements Face.Metrics.
func (f *sourceFace) Metrics() Metrics {
	parsed := f.parsed()
	if parsed == nil {
		return Metrics{}
	}
	fm := parsed.Metrics(f.size, f.config.hinting)
	return Metrics{
		Ascent:    fm.Ascent,
		Descent:   math.Abs(fm.Descent),
		LineGap:   fm.LineGap(),
		XHeight:   fm.XHeight,
		CapHeight: fm.CapHeight,
	}
}

// Advance implements Face.Advance.
func (f *sourceFace) Advance(text string) float64 {
	parsed := f.parsed()
	if parsed == nil {
		return 0
	}
	total := 0.0
	prev := uint16(0)
	first := true
	for _, r := range text {
		gid := parsed.GlyphIndex(r)
		if !first {
			total += parsed.Kern(prev, gid, f.size, f.config.hinting)
		}
		total += parsed.GlyphAdvance(gid, f.size, f.config.hinting)
		prev, first = gid, false
	}
	return total
}

// HasGlyph implements Face.HasGlyph.
func (f *sourceFace) HasGlyph(r rune) bool {
	parsed := f.parsed()
	if parsed == nil {
		return false
	}
	return parsed.GlyphIndex(r) != 0
}

// Glyphs implements Face.Glyphs.
func (f *sourceFace) Glyphs(text string) iter.Seq[Glyph] {
	return func(yield func(Glyph) bool) {
		for _, g := range f.AppendGlyphs(nil, text) {
			if !yield(g) {
				return
			}
		}
	}
}

// AppendGlyphs implements Face.AppendGlyphs.
func (f *sourceFace) AppendGlyphs(dst []Glyph, text string) []Glyph {
	parsed := f.parsed()
	if parsed == nil {
		return dst
	}
	x := 0.0
	byteIndex := 0
	cluster := 0
	prev := uint16(0)
	for _, r := range text {
		gid := parsed.GlyphIndex(r)
		if cluster > 0 {
			x += parsed.Kern(prev, gid, f.size, f.config.hinting)
		}
		advance := parsed.GlyphAdvance(gid, f.size, f.config.hinting)
		dst = append(dst, Glyph{
			Rune:    r,
			GID:     GlyphID(gid),
			X:       x,
			Advance: advance,
			Bounds:  parsed.GlyphBounds(gid, f.size, f.config.hinting),
			Index:   byteIndex,
			Cluster: cluster,
		})
		x += advance
		byteIndex += utf8.RuneLen(r)
		cluster++
		prev = gid
	}
	return dst
}

// Direction implements Face.Direction.
func (f *sourceFace) Direction() Direction {
	return f.config.direction
}

// Source implements Face.Source.
func (f *sourceFace) Source() *FontSource {
	return f.source
}

// Size implements Face.Size.
func (f *sourceFace) Size() float64 {
	return f.size
}

// Weight implements Face.Weight.
func (f *sourceFace) Weight() int {
	return f.config.weight
}

// Italic implements Face.Italic.
func (f *sourceFace) Italic() bool {
	return f.config.italic
}

// LineThickness implements Face.LineThickness. The stroke grows with
// weight times pixel size and is never thinner than one pixel.
func (f *sourceFace) LineThickness() float64 {
	score := f.config.weight * int(math.Round(f.size)) / 10
	lw := score / 700
	if lw < 2 && score >= 1050 {
		lw = 2
	}
	if lw == 0 {
		lw = 1
	}
	return float64(lw)
}

// UnderlinePosition implements Face.UnderlinePosition.
func (f *sourceFace) UnderlinePosition() float64 {
	return (f.LineThickness()*2 + 3) / 6
}

// Ellipsis implements Face.Ellipsis.
func (f *sourceFace) Ellipsis() string {
	if f.HasGlyph(EllipsisRune) {
		return string(EllipsisRune)
	}
	return "..."
}

// EllipsisWidth implements Face.EllipsisWidth.
func (f *sourceFace) EllipsisWidth() float64 {
	return f.Advance(f.Ellipsis())
}

// ElidedText implements Face.ElidedText.
func (f *sourceFace) ElidedText(s string, mode ElideMode, width float64) string {
	return elide(f, s, mode, width)
}

// Key implements Face.Key.
func (f *sourceFace) Key() FaceKey {
	return FaceKey{
		Source: f.source.ID(),
		Size:   math.Float64bits(f.size),
		Weight: f.config.weight,
		Italic: f.config.italic,
	}
}

// private implements the Face interface.
func (f *sourceFace) Language() string { return f.config.language }

func (f *sourceFace) private() {}
