package text

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/textnode"
)

// ximageParser implements FontParser using golang.org/x/image/font/opentype.
type ximageParser struct{}

// Parse implements FontParser.Parse.
func (p *ximageParser) Parse(data []byte) (ParsedFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, &FontError{Reason: "parse failed", Err: err}
	}
	return &ximageParsedFont{font: f}, nil
}

// bufPool reuses sfnt scratch buffers. sfnt.Font is safe for concurrent
// use as long as each goroutine passes its own Buffer.
var bufPool = sync.Pool{
	New: func() any { return new(sfnt.Buffer) },
}

// ximageParsedFont implements ParsedFont using sfnt.Font.
type ximageParsedFont struct {
	font *opentype.Font
}

func (f *ximageParsedFont) withBuffer(fn func(*sfnt.Buffer)) {
	buf := bufPool.Get().(*sfnt.Buffer)
	fn(buf)
	bufPool.Put(buf)
}

// Name implements ParsedFont.Name.
func (f *ximageParsedFont) Name() string {
	var name string
	f.withBuffer(func(buf *sfnt.Buffer) {
		if s, err := f.font.Name(buf, sfnt.NameIDFamily); err == nil {
			name = s
		}
	})
	return name
}

// FullName implements ParsedFont.FullName.
func (f *ximageParsedFont) FullName() string {
	var name string
	f.withBuffer(func(buf *sfnt.Buffer) {
		if s, err := f.font.Name(buf, sfnt.NameIDFull); err == nil {
			name = s
		}
	})
	return name
}

// NumGlyphs implements ParsedFont.NumGlyphs.
func (f *ximageParsedFont) NumGlyphs() int {
	return f.font.NumGlyphs()
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *ximageParsedFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *ximageParsedFont) GlyphIndex(r rune) uint16 {
	var idx sfnt.GlyphIndex
	f.withBuffer(func(buf *sfnt.Buffer) {
		idx, _ = f.font.GlyphIndex(buf, r)
	})
	return uint16(idx)
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *ximageParsedFont) GlyphAdvance(glyphIndex uint16, ppem float64, h Hinting) float64 {
	var adv fixed.Int26_6
	f.withBuffer(func(buf *sfnt.Buffer) {
		adv, _ = f.font.GlyphAdvance(buf, sfnt.GlyphIndex(glyphIndex), toFixed(ppem), fontHinting(h))
	})
	return fromFixed(adv)
}

// GlyphBounds implements ParsedFont.GlyphBounds.
func (f *ximageParsedFont) GlyphBounds(glyphIndex uint16, ppem float64, h Hinting) textnode.Rect {
	var bounds fixed.Rectangle26_6
	f.withBuffer(func(buf *sfnt.Buffer) {
		bounds, _, _ = f.font.GlyphBounds(buf, sfnt.GlyphIndex(glyphIndex), toFixed(ppem), fontHinting(h))
	})
	x, y := fromFixed(bounds.Min.X), fromFixed(bounds.Min.Y)
	return textnode.R(x, y, fromFixed(bounds.Max.X)-x, fromFixed(bounds.Max.Y)-y)
}

// Kern implements ParsedFont.Kern. Fonts without a kern table return 0.
func (f *ximageParsedFont) Kern(a, b uint16, ppem float64, h Hinting) float64 {
	var k fixed.Int26_6
	f.withBuffer(func(buf *sfnt.Buffer) {
		k, _ = f.font.Kern(buf, sfnt.GlyphIndex(a), sfnt.GlyphIndex(b), toFixed(ppem), fontHinting(h))
	})
	return fromFixed(k)
}

// Metrics implements ParsedFont.Metrics.
func (f *ximageParsedFont) Metrics(ppem float64, h Hinting) FontMetrics {
	var m font.Metrics
	var err error
	f.withBuffer(func(buf *sfnt.Buffer) {
		m, err = f.font.Metrics(buf, toFixed(ppem), fontHinting(h))
	})
	if err != nil {
		return FontMetrics{}
	}
	return FontMetrics{
		Ascent:    fromFixed(m.Ascent),
		Descent:   fromFixed(m.Descent),
		Height:    fromFixed(m.Height),
		XHeight:   fromFixed(m.XHeight),
		CapHeight: fromFixed(m.CapHeight),
	}
}

func fontHinting(h Hinting) font.Hinting {
	switch h {
	case HintingVertical:
		return font.HintingVertical
	case HintingFull:
		return font.HintingFull
	default:
		return font.HintingNone
	}
}

// toFixed converts a float64 to fixed.Int26_6.
func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fromFixed converts fixed.Int26_6 to float64.
func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// Outline implements ParsedFont.Outline.
func (f *ximageParsedFont) Outline(glyphIndex uint16, ppem float64) ([]OutlineSegment, error) {
	var (
		out []OutlineSegment
		err error
	)
	f.withBuffer(func(buf *sfnt.Buffer) {
		var segs sfnt.Segments
		segs, err = f.font.LoadGlyph(buf, sfnt.GlyphIndex(glyphIndex), toFixed(ppem), nil)
		if err != nil {
			return
		}
		out = make([]OutlineSegment, 0, len(segs))
		for _, seg := range segs {
			o := OutlineSegment{}
			n := 1
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				o.Op = OutlineMoveTo
			case sfnt.SegmentOpLineTo:
				o.Op = OutlineLineTo
			case sfnt.SegmentOpQuadTo:
				o.Op, n = OutlineQuadTo, 2
			case sfnt.SegmentOpCubeTo:
				o.Op, n = OutlineCubeTo, 3
			}
			for i := 0; i < n; i++ {
				o.Points[i] = OutlinePoint{X: fromFixed(seg.Args[i].X), Y: fromFixed(seg.Args[i].Y)}
			}
			out = append(out, o)
		}
	})
	if err != nil {
		return nil, &FontError{Reason: "glyph outline", Err: err}
	}
	return out, nil
}
