package layout

import (
	"github.com/rivo/uniseg"

	"github.com/gogpu/textnode/text"
)

// elision describes elided text as kept source spans around an ellipsis:
// runes[headStart:headEnd] + ellipsis + runes[tailStart:tailEnd].
type elision struct {
	headStart, headEnd int
	tailStart, tailEnd int
	ellipsis           []rune
}

func (e elision) headLen() int { return e.headEnd - e.headStart }

func (e elision) build(src []rune) []rune {
	out := make([]rune, 0, e.headLen()+len(e.ellipsis)+e.tailEnd-e.tailStart)
	out = append(out, src[e.headStart:e.headEnd]...)
	out = append(out, e.ellipsis...)
	return append(out, src[e.tailStart:e.tailEnd]...)
}

// sourceSpan returns the source runes the elided text stands for.
func (e elision) sourceSpan() (int, int) {
	end := max(e.headEnd, e.tailEnd)
	return e.headStart, end
}

// mapPos maps a source rune index into the elided text.
func (e elision) mapPos(pos int) (int, bool) {
	switch {
	case pos >= e.headStart && pos < e.headEnd:
		return pos - e.headStart, true
	case pos >= e.tailStart && pos < e.tailEnd:
		return pos - e.tailStart + e.headLen() + len(e.ellipsis), true
	}
	return 0, false
}

// remapFormats moves merged formats onto the elided text. The ellipsis
// takes the format of the last kept rune before it.
func (e elision) remapFormats(merged []FormatRange) []FormatRange {
	var out []FormatRange
	add := func(a, b, shift int) {
		for _, r := range merged {
			s, t := max(a, r.Start), min(b, r.End())
			if s < t {
				out = append(out, FormatRange{Start: s + shift, Length: t - s, Format: r.Format})
			}
		}
	}
	add(e.headStart, e.headEnd, -e.headStart)
	if len(e.ellipsis) > 0 {
		anchor := e.headEnd - 1
		if anchor < e.headStart {
			anchor = e.tailStart
		}
		if f := formatAt(merged, anchor); f.Set != 0 {
			out = append(out, FormatRange{Start: e.headLen(), Length: len(e.ellipsis), Format: f})
		}
	}
	add(e.tailStart, e.tailEnd, e.headLen()+len(e.ellipsis)-e.tailStart)
	return MergeFormats(out)
}

// remapImages keeps the image tags whose placeholder survives. orig[k]
// is the index in tags of out[k].
func (e elision) remapImages(tags []ImageTag) (out []ImageTag, orig []int) {
	for i, tag := range tags {
		if pos, ok := e.mapPos(tag.Position); ok {
			tag.Position = pos
			out = append(out, tag)
			orig = append(orig, i)
		}
	}
	return out, orig
}

// graphemeBounds returns the grapheme cluster boundaries of runes
// [start, end) as rune indexes, start and end included.
func (p *paragraph) graphemeBounds(start, end int) []int {
	bounds := []int{start}
	g := uniseg.NewGraphemes(string(p.runes[start:end]))
	pos := start
	for g.Next() {
		pos += len(g.Runes())
		bounds = append(bounds, pos)
	}
	return bounds
}

// trimSeparators drops trailing line separators from [start, end).
func (p *paragraph) trimSeparators(start, end int) int {
	for end > start && p.runes[end-1] == text.LineSeparator {
		end--
	}
	return end
}

// engineElide elides runes [start, end) to width at grapheme boundaries,
// measuring with the shaped advances of the paragraph. Text that fits is
// kept whole without an ellipsis.
func (p *paragraph) engineElide(mode ElideMode, width float64, start, end int) elision {
	end = p.trimSeparators(start, end)
	whole := elision{headStart: start, headEnd: end, tailStart: end, tailEnd: end}
	if mode == ElideNone || p.naturalWidth(start, end) <= width {
		return whole
	}
	ell := []rune(p.base.Ellipsis())
	avail := width - p.base.EllipsisWidth()
	bounds := p.graphemeBounds(start, end)

	switch mode {
	case ElideRight:
		keep := start
		for _, b := range bounds[1:] {
			if p.width(start, b) > avail {
				break
			}
			keep = b
		}
		return elision{headStart: start, headEnd: keep, tailStart: end, tailEnd: end, ellipsis: ell}
	case ElideLeft:
		keep := end
		for i := len(bounds) - 2; i >= 0; i-- {
			if p.width(bounds[i], end) > avail {
				break
			}
			keep = bounds[i]
		}
		return elision{headStart: start, headEnd: start, tailStart: keep, tailEnd: end, ellipsis: ell}
	default:
		l, r := 0, len(bounds)-1
		for l < r {
			left, right := p.width(start, bounds[l]), p.width(bounds[r], end)
			if left <= right {
				if p.width(start, bounds[l+1])+right > avail {
					break
				}
				l++
			} else {
				if left+p.width(bounds[r-1], end) > avail {
					break
				}
				r--
			}
		}
		return elision{headStart: start, headEnd: bounds[l], tailStart: bounds[r], tailEnd: end, ellipsis: ell}
	}
}

// substituteElide replaces the last rune of line with the ellipsis. If
// that still overflows width the line is elided by the font metrics.
func (p *paragraph) substituteElide(l *Line, width float64) elision {
	ell := []rune(p.base.Ellipsis())
	last := max(l.End()-1, l.Start)
	e := elision{headStart: l.Start, headEnd: last, tailStart: l.End(), tailEnd: l.End(), ellipsis: ell}
	if p.naturalWidth(l.Start, last)+p.base.EllipsisWidth() <= width {
		return e
	}
	substituted := string(e.build(p.runes))
	elided := []rune(p.base.ElidedText(substituted, ElideRight, width))
	keep := max(len(elided)-len(ell), 0)
	e.headEnd = l.Start + min(keep, last-l.Start)
	return e
}
