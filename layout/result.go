package layout

import (
	"math"
	"slices"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/text"
)

// GlyphRun is a sequence of glyphs of one face and format within a line.
type GlyphRun struct {
	Face   text.Face
	Format Format

	// Start and End delimit the runes covered, as indexes into the text
	// the run was laid out from.
	Start, End int

	// Origin is the pen position of the first rune on the baseline.
	Origin textnode.Point

	// Glyphs are positioned relative to Origin; Cluster is a rune index.
	Glyphs []text.ShapedGlyph

	// Pen[k] is the x offset of rune Start+k from Origin; len End-Start+1.
	Pen []float64

	// Bounds spans the run horizontally and the face ascent and descent
	// vertically. For an object run it is the image rectangle.
	Bounds textnode.Rect

	// Object is the ImageTag index of an inline image run, -1 otherwise.
	Object int
}

// Width returns the advance of the run.
func (r *GlyphRun) Width() float64 { return r.Pen[len(r.Pen)-1] }

// Slice returns the part of the run covering runes [start, end), or false
// if the ranges do not intersect.
func (r *GlyphRun) Slice(start, end int) (GlyphRun, bool) {
	a, b := max(start, r.Start), min(end, r.End)
	if a >= b {
		return GlyphRun{}, false
	}
	if a == r.Start && b == r.End {
		return *r, true
	}
	x0 := r.Pen[a-r.Start]
	out := *r
	out.Start, out.End = a, b
	out.Origin.X += x0
	out.Pen = make([]float64, b-a+1)
	for i := a; i <= b; i++ {
		out.Pen[i-a] = r.Pen[i-r.Start] - x0
	}
	out.Glyphs = nil
	for _, g := range r.Glyphs {
		if g.Cluster >= a && g.Cluster < b {
			g.X -= x0
			out.Glyphs = append(out.Glyphs, g)
		}
	}
	out.Bounds.X += x0
	out.Bounds.Width = out.Pen[b-a]
	return out, true
}

// Line is one laid out line.
type Line struct {
	// Number is the zero-based line index.
	Number int

	// Start and Length delimit the runes of the line.
	Start, Length int

	// X and Y are the top-left of the line; X includes the alignment offset.
	X, Y float64

	// Width is the width the line was broken at, or its natural width when
	// unconstrained.
	Width  float64
	Height float64

	Ascent, Descent float64

	// NaturalWidth is the advance of the line without trailing whitespace.
	NaturalWidth float64

	// Forced reports that the line ends with a line separator.
	Forced bool

	Runs   []GlyphRun
	Images []PlacedImage
}

// End returns the exclusive rune end of the line.
func (l *Line) End() int { return l.Start + l.Length }

// Baseline returns the y of the baseline.
func (l *Line) Baseline() float64 { return l.Y + l.Ascent }

// NaturalRect returns the rectangle covered by the line's text.
func (l *Line) NaturalRect() textnode.Rect {
	return textnode.R(l.X, l.Y, l.NaturalWidth, l.Height)
}

// GlyphRunsIn returns the glyph runs of the line cut to runes [start, end).
func (l *Line) GlyphRunsIn(start, end int) []GlyphRun {
	var out []GlyphRun
	for i := range l.Runs {
		if r, ok := l.Runs[i].Slice(start, end); ok {
			out = append(out, r)
		}
	}
	return out
}

// CursorToX returns the x of the cursor before rune pos.
func (l *Line) CursorToX(pos int) float64 {
	if len(l.Runs) == 0 || pos <= l.Start {
		if len(l.Runs) > 0 {
			return l.Runs[0].Origin.X
		}
		return l.X
	}
	for i := range l.Runs {
		r := &l.Runs[i]
		if pos >= r.Start && pos <= r.End {
			return r.Origin.X + r.Pen[pos-r.Start]
		}
	}
	last := &l.Runs[len(l.Runs)-1]
	return last.Origin.X + last.Width()
}

// XToCursor returns the rune index nearest to x.
func (l *Line) XToCursor(x float64) int {
	best, bestDist := l.Start, math.Inf(1)
	for pos := l.Start; pos <= l.End(); pos++ {
		if d := math.Abs(l.CursorToX(pos) - x); d < bestDist {
			best, bestDist = pos, d
		}
	}
	return best
}

// ElidedLine is the line that replaces the last visible line when text
// is elided. Its runs index into Text, not into Result.Text.
type ElidedLine struct {
	// Text is the substituted text including the ellipsis.
	Text string
	Line Line

	// Formats are the paragraph formats remapped onto Text.
	Formats []FormatRange

	// SourceStart and SourceEnd delimit the runes of Result.Text the
	// elided line stands for.
	SourceStart, SourceEnd int

	// EllipsisStart and EllipsisLength locate the ellipsis in Text.
	EllipsisStart, EllipsisLength int
}

// Result is the output of one Engine.Layout call.
type Result struct {
	// Text is the laid out variant with newlines normalized.
	Text string

	// Variant is the index of the multi-length variant that was used.
	Variant int

	// Formats are the merged formats over Text.
	Formats []FormatRange

	// Lines are the visible unelided lines.
	Lines []Line

	// Elided is the elided last line, or nil.
	Elided *ElidedLine

	// Truncated reports that not all of Text is shown.
	Truncated bool

	// Bounds is the union of the line rectangles. Its height is the
	// accumulated line height unless a line callback was used.
	Bounds textnode.Rect

	// NaturalWidth is the widest line of an unconstrained layout, text
	// hidden by MaxLineCount included.
	NaturalWidth float64

	// ImplicitHeight is the accumulated height of the first pass, with the
	// lines up to MaxLineCount laid out when an implicit size was required.
	ImplicitHeight float64

	// Font is the font laid out with, resized by fitting.
	Font Font

	// Images are the inline images placed on visible lines.
	Images []PlacedImage

	// Baseline is the baseline of the first line.
	Baseline float64

	// Attempts counts the layout passes run.
	Attempts int

	// Degenerate reports that layout was skipped for a collapsed size.
	Degenerate bool
}

// LineCount returns the number of visible lines, the elided one included.
func (r *Result) LineCount() int {
	n := len(r.Lines)
	if r.Elided != nil {
		n++
	}
	return n
}

// AllLines returns the visible lines followed by the elided line.
func (r *Result) AllLines() []*Line {
	out := make([]*Line, 0, r.LineCount())
	for i := range r.Lines {
		out = append(out, &r.Lines[i])
	}
	if r.Elided != nil {
		out = append(out, &r.Elided.Line)
	}
	return out
}

// FontPixelSize returns the pixel size of the final font.
func (r *Result) FontPixelSize() float64 { return r.Font.Pixels() }

// DisplayText returns the text as shown: the visible lines followed by the
// elided text.
func (r *Result) DisplayText() string {
	runes := []rune(r.Text)
	var out []rune
	for _, l := range r.Lines {
		out = append(out, runes[l.Start:l.End()]...)
	}
	if r.Elided != nil {
		out = append(out, []rune(r.Elided.Text)...)
	}
	return string(out)
}

// LineAt returns the line containing y, or nil.
func (r *Result) LineAt(y float64) *Line {
	for _, l := range r.AllLines() {
		if y >= l.Y && y < l.Y+l.Height {
			return l
		}
	}
	return nil
}

// HitTest returns the rune index of Text under (x, y), or -1. Points on
// the elided line map to its source span.
func (r *Result) HitTest(x, y float64) int {
	l := r.LineAt(y)
	if l == nil {
		return -1
	}
	if x < l.X || x > l.X+l.NaturalWidth {
		return -1
	}
	if r.Elided != nil && l == &r.Elided.Line {
		e := r.Elided
		pos := l.XToCursor(x)
		switch {
		case pos < e.EllipsisStart:
			return e.SourceStart + pos
		case pos < e.EllipsisStart+e.EllipsisLength:
			return e.SourceStart + e.EllipsisStart
		default:
			return min(e.SourceEnd, e.SourceStart+pos)
		}
	}
	return l.XToCursor(x)
}

// FormatAt returns the merged format at rune pos of Text.
func (r *Result) FormatAt(pos int) Format {
	return formatAt(r.Formats, pos)
}

// VerticalOffset returns the y offset aligning the text in a box of the
// given height.
func (r *Result) VerticalOffset(height float64, align VAlign) float64 {
	switch align {
	case AlignBottom:
		return height - r.Bounds.Height
	case AlignVCenter:
		return (height - r.Bounds.Height) / 2
	}
	return 0
}

// Equal reports whether two results have the same lines, geometry and
// elided text.
func (r *Result) Equal(o *Result) bool {
	if r.Text != o.Text || r.Truncated != o.Truncated || r.Bounds != o.Bounds || r.LineCount() != o.LineCount() {
		return false
	}
	eq := func(a, b *Line) bool {
		return a.Start == b.Start && a.Length == b.Length && a.X == b.X && a.Y == b.Y &&
			a.Width == b.Width && a.Height == b.Height && a.NaturalWidth == b.NaturalWidth
	}
	la, lb := r.AllLines(), o.AllLines()
	if !slices.EqualFunc(la, lb, eq) {
		return false
	}
	if (r.Elided == nil) != (o.Elided == nil) {
		return false
	}
	return r.Elided == nil || r.Elided.Text == o.Elided.Text
}
