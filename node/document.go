package node

import (
	"image"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/document"
	"github.com/gogpu/textnode/layout"
	"github.com/gogpu/textnode/text"
)

// AddTextDocument adds a laid out document. Document positions
// [selStart, selEnd) are selected. Frame and table borders and
// backgrounds become background rectangles, list items get their
// marker, and inline objects are rendered through their handler.
func (e *Engine) AddTextDocument(d *document.Document, selStart, selEnd int) {
	if d == nil {
		return
	}
	e.addFrame(d, &d.Root, selStart, selEnd)
	e.endLine()
}

func (e *Engine) addFrame(d *document.Document, f *document.Frame, selStart, selEnd int) {
	e.addFrameDecorations(f.Rect, f.Format)
	e.addElements(d, f.Children, selStart, selEnd)
}

func (e *Engine) addElements(d *document.Document, elems []document.Element, selStart, selEnd int) {
	for _, el := range elems {
		switch el := el.(type) {
		case *document.Block:
			e.addBlock(d, el, selStart, selEnd)
		case *document.Frame:
			e.addFrame(d, el, selStart, selEnd)
		case *document.Table:
			e.addTable(d, el, selStart, selEnd)
		}
	}
}

func (e *Engine) addTable(d *document.Document, t *document.Table, selStart, selEnd int) {
	e.addFrameDecorations(t.Rect, t.Format)
	b := t.Format.Border
	for _, c := range t.Cells() {
		r := c.Rect.Translate(e.Position.X, e.Position.Y)
		if !c.Background.IsTransparent() {
			e.backgrounds = append(e.backgrounds, coloredRect{rect: r, color: c.Background})
		}
		if !fuzzyIsNull(b) {
			e.addBorder(r.Adjusted(-b, -b, 0, 0), b, t.Format.BorderColor)
		}
	}
	for _, c := range t.Cells() {
		e.addElements(d, c.Content.Children, selStart, selEnd)
	}
}

// addFrameDecorations adds the background and border of a frame whose
// outer rectangle, margins included, is r.
func (e *Engine) addFrameDecorations(r textnode.Rect, f document.FrameFormat) {
	r = r.Translate(e.Position.X, e.Position.Y)
	if !f.Background.IsTransparent() {
		e.backgrounds = append(e.backgrounds, coloredRect{rect: r, color: f.Background})
	}
	if fuzzyIsNull(f.Border) {
		return
	}
	m := f.Margin
	e.addBorder(r.Adjusted(m, m, -m-f.Border, -m-f.Border), f.Border, f.BorderColor)
}

// addBorder adds the four sides of a border of width w whose inner
// top-left corner is r's top-left offset by w.
func (e *Engine) addBorder(r textnode.Rect, w float64, c textnode.Color) {
	e.backgrounds = append(e.backgrounds,
		coloredRect{rect: textnode.R(r.Left(), r.Top(), w, r.Height+w), color: c},
		coloredRect{rect: textnode.R(r.Left()+w, r.Top(), r.Width, w), color: c},
		coloredRect{rect: textnode.R(r.Right(), r.Top()+w, w, r.Height-w), color: c},
		coloredRect{rect: textnode.R(r.Left()+w, r.Bottom(), r.Width, w), color: c},
	)
	e.hasContents = true
}

// objectFragment is an inline object of a block with its block position.
type objectFragment struct {
	pos    int
	format document.CharFormat
}

// objectsOf returns the object fragments of b in order; the i-th matches
// layout image tag i.
func objectsOf(b *document.Block) []objectFragment {
	var out []objectFragment
	pos := 0
	for _, f := range b.Fragments {
		n := len([]rune(f.Text))
		if f.Format.IsObject() && n > 0 && []rune(f.Text)[0] == text.ObjectReplacement {
			out = append(out, objectFragment{pos: pos, format: f.Format})
		}
		pos += n
	}
	return out
}

func (e *Engine) addBlock(d *document.Document, b *document.Block, selStart, selEnd int) {
	res := b.Result
	if res == nil {
		return
	}
	off := e.Position.Add(b.Rect.TopLeft())
	if !b.Format.Background.IsTransparent() {
		e.backgrounds = append(e.backgrounds, coloredRect{rect: b.Rect.Translate(e.Position.X, e.Position.Y), color: b.Format.Background})
	}
	lines := res.AllLines()
	if b.List != nil && len(lines) > 0 {
		e.beginLine(lines[0], off)
		e.addListMarker(b, lines[0], off)
	}
	objects := objectsOf(b)
	object := func(run *layout.GlyphRun) image.Image {
		if run.Object < 0 || run.Object >= len(objects) {
			return nil
		}
		o := objects[run.Object]
		return e.objectImage(d, b.Position+o.pos, o.format, run.Bounds.Size())
	}
	for _, l := range lines {
		e.addLine(l, off, selStart-b.Position, selEnd-b.Position, object)
	}
	e.endLine()
	e.hasContents = true
}

// addListMarker adds the bullet or number of a list item, unselected,
// one space before the first line of b.
func (e *Engine) addListMarker(b *document.Block, first *layout.Line, off textnode.Point) {
	marker := b.List.ItemText(b)
	if marker == "" {
		return
	}
	face := b.Font.Face(1, b.Font.Bold, b.Font.Italic)
	m := face.Metrics()
	width := face.Advance(marker)
	space := face.Advance(" ")

	textRect := first.NaturalRect()
	pos := off.Add(textRect.TopLeft())
	if layout.ParagraphDirection(b.Text()) == text.DirectionRTL {
		pos.X += textRect.Width + space
	} else {
		pos.X -= space + width
	}

	color := e.TextColor
	if len(b.Fragments) > 0 && b.Fragments[0].Format.Has(layout.PropForeground) {
		color = b.Fragments[0].Format.Foreground
	}
	n := treeNode{
		face:  face,
		rect:  textnode.R(pos.X, pos.Y, width, m.Height()),
		color: color,
	}
	for g := range face.Glyphs(marker) {
		n.glyphs = append(n.glyphs, g.GID)
		n.positions = append(n.positions, textnode.Pt(pos.X+g.X, pos.Y+m.Ascent))
	}
	e.tree.insert(n)
}
