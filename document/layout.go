package document

import (
	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/layout"
	"github.com/gogpu/textnode/text"
)

// SizeHandler reports the intrinsic size of inline objects of one type.
type SizeHandler interface {
	IntrinsicSize(d *Document, pos int, f CharFormat) textnode.Size
}

// RegisterHandler sets the handler sizing objects of type t. A nil
// handler removes the registration.
func (d *Document) RegisterHandler(t ObjectType, h SizeHandler) {
	if h == nil {
		delete(d.handlers, t)
		return
	}
	if d.handlers == nil {
		d.handlers = make(map[ObjectType]SizeHandler)
	}
	d.handlers[t] = h
}

// Handler returns the handler registered for t, or nil.
func (d *Document) Handler(t ObjectType) SizeHandler { return d.handlers[t] }

// Layout lays the document out at width with e, using font as the base
// font of every block. It sets the Rect of every frame, table, cell and
// block, the Result of every block and d.Size.
func (d *Document) Layout(e *layout.Engine, font layout.Font, width float64) {
	if e == nil {
		e = layout.NewEngine(nil)
	}
	d.Reindex()
	l := &layouter{doc: d, engine: e, font: font}
	h := l.frame(&d.Root, 0, 0, width)
	d.Size = textnode.Size{Width: width, Height: h}
	textnode.Logger().Debug("document: layout", "width", width, "height", h, "blocks", l.blocks)
}

type layouter struct {
	doc    *Document
	engine *layout.Engine
	font   layout.Font
	blocks int
}

func inset(f FrameFormat) float64 { return f.Margin + f.Border + f.Padding }

// frame lays out f with its outer top-left at (x, y) and returns the
// outer height.
func (l *layouter) frame(f *Frame, x, y, width float64) float64 {
	in := inset(f.Format)
	h := l.children(f.Children, x+in, y+in, max(0, width-2*in))
	f.Rect = textnode.R(x, y, width, h+2*in)
	return f.Rect.Height
}

// children stacks elements from y down and returns the height used.
// Vertical margins of adjacent blocks collapse. Floating frames do not
// take part in the flow.
func (l *layouter) children(elems []Element, x, y, width float64) float64 {
	pen := y
	floatBottom := y
	margin := 0.0
	for _, e := range elems {
		switch e := e.(type) {
		case *Block:
			pen += max(margin, e.Format.TopMargin)
			pen += l.block(e, x, pen, width)
			margin = e.Format.BottomMargin
		case *Frame:
			w := width
			if e.Format.Width > 0 {
				w = min(e.Format.Width, width)
			}
			switch e.Format.Position {
			case FloatLeft:
				floatBottom = max(floatBottom, pen+margin+l.frame(e, x, pen+margin, w))
				continue
			case FloatRight:
				floatBottom = max(floatBottom, pen+margin+l.frame(e, x+width-w, pen+margin, w))
				continue
			}
			pen += margin
			pen += l.frame(e, x, pen, w)
			margin = 0
		case *Table:
			pen += margin
			pen += l.table(e, x, pen, width)
			margin = 0
		}
	}
	pen += margin
	return max(pen, floatBottom) - y
}

// block lays out b at (x, y) and returns its height without margins.
func (l *layouter) block(b *Block, x, y, width float64) float64 {
	indent := float64(b.Format.Indent)*IndentWidth + b.Format.LeftMargin
	if b.List != nil {
		indent += float64(b.List.Indent) * IndentWidth
	}
	w := max(0, width-indent-b.Format.RightMargin)
	p := layout.Params{
		Font:           l.font,
		Wrap:           layout.WrapWordOrAnywhere,
		Width:          w,
		WidthValid:     true,
		HAlign:         b.Format.Align,
		HAlignExplicit: b.Format.Align != layout.AlignLeft,
	}
	if b.Format.NonBreakable {
		p.Wrap = layout.NoWrap
	}
	p.Text, p.Formats, p.Images = l.content(b)
	res := l.engine.Layout(&p)
	l.blocks++
	b.Result = res
	b.Font = l.font
	b.Rect = textnode.R(x+indent, y, w, res.Bounds.Height)
	return res.Bounds.Height
}

// content flattens the fragments of b into layout input.
func (l *layouter) content(b *Block) (string, []layout.FormatRange, []layout.ImageTag) {
	var (
		runes   []rune
		formats []layout.FormatRange
		images  []layout.ImageTag
	)
	for _, f := range b.Fragments {
		start := len(runes)
		runes = append(runes, []rune(f.Text)...)
		if f.Format.Set != 0 {
			formats = append(formats, layout.FormatRange{Start: start, Length: len(runes) - start, Format: f.Format.Format})
		}
		if !f.Format.IsObject() || len(runes) == start || runes[start] != text.ObjectReplacement {
			continue
		}
		size := l.objectSize(b.Position+start, f.Format)
		images = append(images, layout.ImageTag{
			Position: start,
			URL:      f.Format.ImageURL,
			Width:    size.Width,
			Height:   size.Height,
			Align:    f.Format.ImageAlign,
			Pending:  size.IsEmpty(),
		})
	}
	return string(runes), formats, images
}

// objectSize resolves the size of the object at document position pos.
// Explicit sizes win over handlers, handlers over d.ImageSize.
func (l *layouter) objectSize(pos int, f CharFormat) textnode.Size {
	if f.Width > 0 && f.Height > 0 {
		return textnode.Size{Width: f.Width, Height: f.Height}
	}
	if h := l.doc.Handler(f.Object); h != nil {
		return h.IntrinsicSize(l.doc, pos, f)
	}
	if f.Object == ObjectImage && l.doc.ImageSize != nil {
		if s, ok := l.doc.ImageSize(f.ImageURL); ok {
			if f.Width > 0 && s.Height > 0 {
				return textnode.Size{Width: f.Width, Height: s.Height * f.Width / s.Width}
			}
			if f.Height > 0 && s.Width > 0 {
				return textnode.Size{Width: s.Width * f.Height / s.Height, Height: f.Height}
			}
			return s
		}
	}
	return textnode.Size{}
}

// table lays out t as equal columns. Every cell is surrounded by the
// table border width and separated from its neighbors by the cell
// spacing.
func (l *layouter) table(t *Table, x, y, width float64) float64 {
	fm := t.Format
	w := width
	if fm.Width > 0 {
		w = min(fm.Width, width)
	}
	in := inset(fm)
	b, sp, pad := fm.Border, t.CellSpacing, t.CellPadding
	inner := max(0, w-2*in)
	colW := 0.0
	if t.Cols > 0 {
		colW = max(0, (inner-float64(t.Cols+1)*sp)/float64(t.Cols)-2*b)
	}
	rowY := y + in + sp
	for r := 0; r < t.Rows; r++ {
		rowH := 0.0
		top := rowY + b
		for c := 0; c < t.Cols; c++ {
			cell := t.CellAt(r, c)
			cx := x + in + sp + b + float64(c)*(colW+2*b+sp)
			h := l.children(cell.Content.Children, cx+pad, top+pad, max(0, colW-2*pad))
			rowH = max(rowH, h+2*pad)
			cell.Rect = textnode.R(cx, top, colW, 0)
		}
		for c := 0; c < t.Cols; c++ {
			cell := t.CellAt(r, c)
			cell.Rect.Height = rowH
			cell.Content.Rect = cell.Rect
		}
		rowY = top + rowH + b + sp
	}
	t.Rect = textnode.R(x, y, w, rowY+in-y)
	return t.Rect.Height
}
