package item

import (
	"github.com/gogpu/textnode/layout"
)

// requireImplicit makes later layouts compute the implicit size even when
// both width and height are set.
func (t *Text) requireImplicit() {
	if t.implicit {
		return
	}
	t.implicit = true
	if t.widthValid && t.heightValid {
		t.invalidate(dirtyLayout)
	}
}

// LineCount returns the number of visible lines.
func (t *Text) LineCount() int {
	t.EnsureLayout()
	return t.metrics.lineCount
}

// Truncated reports whether some of the text is not shown.
func (t *Text) Truncated() bool {
	t.EnsureLayout()
	return t.metrics.truncated
}

// ImplicitWidth returns the width the item wants, padding included.
func (t *Text) ImplicitWidth() float64 {
	t.requireImplicit()
	t.EnsureLayout()
	return t.metrics.implicitW
}

// ImplicitHeight returns the height the item wants, padding included.
func (t *Text) ImplicitHeight() float64 {
	t.requireImplicit()
	t.EnsureLayout()
	return t.metrics.implicitH
}

// ContentWidth returns the width of the laid out text.
func (t *Text) ContentWidth() float64 {
	t.EnsureLayout()
	return t.metrics.contentW
}

// ContentHeight returns the height of the laid out text.
func (t *Text) ContentHeight() float64 {
	t.EnsureLayout()
	return t.metrics.contentH
}

// BaselineOffset returns the y of the first baseline in item coordinates.
func (t *Text) BaselineOffset() float64 {
	t.EnsureLayout()
	return t.metrics.baseline
}

// FontPixelSize returns the pixel size the text was laid out at, after
// fitting.
func (t *Text) FontPixelSize() float64 {
	t.EnsureLayout()
	if t.result != nil {
		return t.result.FontPixelSize()
	}
	return t.font.Pixels()
}

// DisplayText returns the text being laid out, without markup.
func (t *Text) DisplayText() string {
	t.EnsureLayout()
	return t.metrics.displayTxt
}

// Result returns the last layout of plain or styled text, or nil for rich
// text.
func (t *Text) Result() *layout.Result {
	t.EnsureLayout()
	return t.result
}

// EffectiveHAlign returns the alignment lines are laid out with.
func (t *Text) EffectiveHAlign() layout.HAlign {
	t.EnsureLayout()
	return layout.EffectiveHAlign(t.hAlign, t.hAlignExplicit, t.metrics.displayTxt)
}

// LinkAt returns the target of the link at (x, y) in item coordinates, or
// "" when there is none.
func (t *Text) LinkAt(x, y float64) string {
	t.EnsureLayout()
	x -= t.padding.Left
	y -= t.padding.Top + t.metrics.vOffset
	if t.rich {
		for _, b := range t.doc.Blocks() {
			if b.Result == nil || x < b.Rect.Left() || x >= b.Rect.Right() || y < b.Rect.Top() || y >= b.Rect.Bottom() {
				continue
			}
			return linkOf(b.Result, x-b.Rect.X, y-b.Rect.Y)
		}
		return ""
	}
	if t.result == nil {
		return ""
	}
	return linkOf(t.result, x, y)
}

func linkOf(res *layout.Result, x, y float64) string {
	pos := res.HitTest(x, y)
	if pos < 0 {
		return ""
	}
	if f := res.FormatAt(pos); f.Anchor {
		return f.Href
	}
	return ""
}
