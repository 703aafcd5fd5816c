package layout

import (
	"math"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/text"
)

// segment is a maximal run of runes sharing one format, shaped as a unit.
type segment struct {
	start, end int
	format     Format
	face       text.Face
	glyphs     []text.ShapedGlyph // Cluster is a paragraph rune index
	pen        []float64          // pen[k] is the x of rune start+k, len end-start+1
	object     int                // image tag index, -1 for text
	shift      float64            // baseline shift for super/subscript
}

// paragraph is the shaped form of one text variant at one font size.
type paragraph struct {
	font     Font
	base     text.Face
	runes    []rune
	adv      []float64
	segOf    []int
	segs     []segment
	formats  []FormatRange
	images   []ImageTag
	breaker  *text.LineBreaker
	baseline Format
}

// baseFormat expresses the decorations of the base font as a Format.
func baseFormat(f Font) Format {
	return Format{
		Set:       PropBold | PropItalic | PropUnderline | PropOverline | PropStrikeout,
		Bold:      f.Bold,
		Italic:    f.Italic,
		Underline: f.Underline,
		Overline:  f.Overline,
		Strikeout: f.Strikeout,
	}
}

// BaselineShift returns the vertical glyph offset for align given the
// height of the base font.
func BaselineShift(align VerticalAlign, height float64) float64 {
	switch align {
	case AlignSuperScript:
		return -height / 2
	case AlignSubScript:
		return height / 6
	}
	return 0
}

func newParagraph(runes []rune, font Font, formats []FormatRange, images []ImageTag, shaper text.Shaper) *paragraph {
	p := &paragraph{
		font:     font,
		base:     font.Face(1, font.Bold, font.Italic),
		runes:    runes,
		adv:      make([]float64, len(runes)),
		segOf:    make([]int, len(runes)),
		formats:  formats,
		images:   images,
		baseline: baseFormat(font),
	}
	objects := make(map[int]int, len(images))
	for i, tag := range images {
		if tag.Position >= 0 && tag.Position < len(runes) && runes[tag.Position] == text.ObjectReplacement {
			objects[tag.Position] = i
		}
	}
	baseHeight := p.base.Metrics().Height()

	for start := 0; start < len(runes); {
		f := formatAt(formats, start)
		obj, isObj := objects[start]
		end := start + 1
		if !isObj {
			for end < len(runes) {
				if _, o := objects[end]; o || formatAt(formats, end) != f {
					break
				}
				end++
			}
		}
		eff := p.baseline.Merge(f)
		seg := segment{
			start:  start,
			end:    end,
			format: eff,
			face:   font.Face(eff.scale(), eff.Bold, eff.Italic),
			pen:    make([]float64, end-start+1),
			object: -1,
		}
		if eff.Has(PropVerticalAlign) {
			seg.shift = BaselineShift(eff.VerticalAlign, baseHeight)
		}
		if isObj {
			seg.object = obj
			p.adv[start] = images[obj].Width
		} else {
			seg.glyphs = p.shapeSegment(shaper, seg.face, start, end)
		}
		idx := len(p.segs)
		for k := start; k < end; k++ {
			p.segOf[k] = idx
			seg.pen[k-start+1] = seg.pen[k-start] + p.adv[k]
		}
		p.segs = append(p.segs, seg)
		start = end
	}
	p.breaker = text.NewLineBreaker(runes, p.adv)
	return p
}

// shapeSegment shapes runes [start, end) and fills their advances.
// Line separators shape to nothing and take no space.
func (p *paragraph) shapeSegment(shaper text.Shaper, face text.Face, start, end int) []text.ShapedGlyph {
	local := shaper.Shape(string(p.runes[start:end]), face)
	adv := text.ClusterAdvances(local, end-start)
	out := make([]text.ShapedGlyph, 0, len(local))
	for _, g := range local {
		c := g.Cluster + start
		if c < start || c >= end || p.runes[c] == text.LineSeparator {
			continue
		}
		g.Cluster = c
		out = append(out, g)
	}
	for k := start; k < end; k++ {
		if p.runes[k] == text.LineSeparator {
			continue
		}
		p.adv[k] = adv[k-start]
	}
	return out
}

func (p *paragraph) len() int { return len(p.runes) }

// naturalWidth excludes trailing whitespace.
func (p *paragraph) naturalWidth(start, end int) float64 {
	return p.breaker.NaturalWidth(start, end)
}

// width includes every rune.
func (p *paragraph) width(start, end int) float64 {
	w := 0.0
	for k := start; k < end; k++ {
		w += p.adv[k]
	}
	return w
}

// metrics returns the ascent and descent of runes [start, end), or of the
// base face for an empty range.
func (p *paragraph) metrics(start, end int) (ascent, descent float64) {
	if start >= end {
		m := p.base.Metrics()
		return m.Ascent, m.Descent
	}
	last := -1
	for k := start; k < end; k++ {
		s := p.segOf[k]
		if s == last {
			continue
		}
		last = s
		seg := &p.segs[s]
		if seg.object >= 0 {
			continue
		}
		m := seg.face.Metrics()
		ascent = math.Max(ascent, m.Ascent)
		descent = math.Max(descent, m.Descent)
	}
	if ascent == 0 && descent == 0 {
		m := p.base.Metrics()
		return m.Ascent, m.Descent
	}
	return ascent, descent
}

// buildRuns produces the glyph runs of a placed line. extra is added
// after every inner space for justified lines.
func (p *paragraph) buildRuns(l *Line, extra float64) []GlyphRun {
	start, end := l.Start, l.End()
	pen := make([]float64, end-start+1)
	last := end
	for last > start && text.IsWhitespace(p.runes[last-1]) {
		last--
	}
	for k := start; k < end; k++ {
		w := p.adv[k]
		if extra > 0 && k < last && p.runes[k] == ' ' {
			w += extra
		}
		pen[k-start+1] = pen[k-start] + w
	}

	var runs []GlyphRun
	for k := start; k < end; {
		seg := &p.segs[p.segOf[k]]
		b := min(end, seg.end)
		a := k
		k = b
		if seg.object < 0 && len(seg.glyphs) == 0 {
			continue
		}
		m := seg.face.Metrics()
		run := GlyphRun{
			Face:   seg.face,
			Format: seg.format,
			Start:  a,
			End:    b,
			Object: seg.object,
			Origin: textnode.Pt(l.X+pen[a-start], l.Y+l.Ascent+seg.shift),
			Pen:    make([]float64, b-a+1),
		}
		for i := a; i <= b; i++ {
			run.Pen[i-a] = pen[i-start] - pen[a-start]
		}
		for _, g := range seg.glyphs {
			if g.Cluster < a || g.Cluster >= b {
				continue
			}
			off := g.X - seg.pen[g.Cluster-seg.start]
			g.X = pen[g.Cluster-start] - pen[a-start] + off
			run.Glyphs = append(run.Glyphs, g)
		}
		if seg.object < 0 && len(run.Glyphs) == 0 {
			continue
		}
		run.Bounds = textnode.R(run.Origin.X, run.Origin.Y-m.Ascent, run.Pen[b-a], m.Ascent+m.Descent)
		if seg.object >= 0 {
			tag := p.images[seg.object]
			run.Bounds = textnode.R(run.Origin.X, l.Y, tag.Width, tag.Height)
			for _, img := range l.Images {
				if img.Tag == seg.object {
					run.Bounds = img.Rect
				}
			}
		}
		runs = append(runs, run)
	}
	return runs
}
