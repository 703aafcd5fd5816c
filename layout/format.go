package layout

import (
	"slices"

	"github.com/gogpu/textnode"
)

// Property is a bit set of the Format fields that carry a value.
// Unset fields inherit the ambient value.
type Property uint16

const (
	PropForeground Property = 1 << iota
	PropBackground
	PropBold
	PropItalic
	PropUnderline
	PropOverline
	PropStrikeout
	PropAnchor
	PropFontScale
	PropVerticalAlign
)

// VerticalAlign shifts glyphs off the baseline.
type VerticalAlign uint8

const (
	AlignNormal VerticalAlign = iota
	AlignSuperScript
	AlignSubScript
)

// Format is a set of character properties. Only the fields named in Set
// are meaningful.
type Format struct {
	Set Property

	Foreground textnode.Color
	Background textnode.Color

	Bold      bool
	Italic    bool
	Underline bool
	Overline  bool
	Strikeout bool

	Anchor bool
	Href   string

	// FontScale multiplies the base font size (headings, <font size>).
	FontScale     float64
	VerticalAlign VerticalAlign
}

// Has reports whether p is set.
func (f Format) Has(p Property) bool { return f.Set&p != 0 }

// Merge returns f overridden by every property set in o.
func (f Format) Merge(o Format) Format {
	if o.Has(PropForeground) {
		f.Foreground = o.Foreground
	}
	if o.Has(PropBackground) {
		f.Background = o.Background
	}
	if o.Has(PropBold) {
		f.Bold = o.Bold
	}
	if o.Has(PropItalic) {
		f.Italic = o.Italic
	}
	if o.Has(PropUnderline) {
		f.Underline = o.Underline
	}
	if o.Has(PropOverline) {
		f.Overline = o.Overline
	}
	if o.Has(PropStrikeout) {
		f.Strikeout = o.Strikeout
	}
	if o.Has(PropAnchor) {
		f.Anchor = o.Anchor
		f.Href = o.Href
	}
	if o.Has(PropFontScale) {
		f.FontScale = o.FontScale
	}
	if o.Has(PropVerticalAlign) {
		f.VerticalAlign = o.VerticalAlign
	}
	f.Set |= o.Set
	return f
}

// scale returns the effective font scale.
func (f Format) scale() float64 {
	s := 1.0
	if f.Has(PropFontScale) && f.FontScale > 0 {
		s = f.FontScale
	}
	if f.Has(PropVerticalAlign) && f.VerticalAlign != AlignNormal {
		s *= 2.0 / 3.0
	}
	return s
}

// FormatRange applies a Format to Length runes starting at Start.
type FormatRange struct {
	Start  int
	Length int
	Format Format
}

// End returns the exclusive end of the range.
func (r FormatRange) End() int { return r.Start + r.Length }

// MergeFormats flattens possibly overlapping ranges into sorted,
// non-overlapping ones. Where ranges overlap, properties of ranges later
// in the input win. Adjacent results with equal formats are joined.
// Empty and negative ranges are ignored.
func MergeFormats(ranges []FormatRange) []FormatRange {
	var cuts []int
	for _, r := range ranges {
		if r.Length > 0 {
			cuts = append(cuts, r.Start, r.End())
		}
	}
	if len(cuts) == 0 {
		return nil
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	var out []FormatRange
	for i := 0; i+1 < len(cuts); i++ {
		start, end := cuts[i], cuts[i+1]
		var f Format
		covered := false
		for _, r := range ranges {
			if r.Length > 0 && r.Start <= start && r.End() >= end {
				f = f.Merge(r.Format)
				covered = true
			}
		}
		if !covered {
			continue
		}
		if n := len(out); n > 0 && out[n-1].End() == start && out[n-1].Format == f {
			out[n-1].Length += end - start
			continue
		}
		out = append(out, FormatRange{Start: start, Length: end - start, Format: f})
	}
	return out
}

// formatAt returns the merged format covering rune i of sorted ranges.
func formatAt(merged []FormatRange, i int) Format {
	k, found := slices.BinarySearchFunc(merged, i, func(r FormatRange, pos int) int {
		switch {
		case r.End() <= pos:
			return -1
		case r.Start > pos:
			return 1
		}
		return 0
	})
	if !found {
		return Format{}
	}
	return merged[k].Format
}
