package node

import (
	"image"
	"math"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/document"
	"github.com/gogpu/textnode/layout"
	"github.com/gogpu/textnode/text"
)

// Default colors of a new Engine.
var (
	DefaultTextColor         = textnode.RGB(0, 0, 0)
	DefaultSelectedTextColor = textnode.RGB(1, 1, 1)
	DefaultSelectionColor    = textnode.RGB(0, 0, 0.5)
	DefaultAnchorColor       = textnode.RGB(0, 0, 1)
)

type coloredRect struct {
	rect  textnode.Rect
	color textnode.Color
}

type decorationRect struct {
	rect     textnode.Rect
	color    textnode.Color
	selected bool
}

// line is the geometry of the line being collected, in absolute
// coordinates.
type line struct {
	src          *layout.Line
	active       bool
	y, height    float64
	ascent       float64
	hasSelection bool
}

// Engine builds scene primitives from laid out text. Positions passed to
// the Add methods are relative to Position.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	TextColor         textnode.Color
	SelectedTextColor textnode.Color
	SelectionColor    textnode.Color
	AnchorColor       textnode.Color

	// Position offsets everything added.
	Position textnode.Point

	// Images resolves image URLs for the default image object handler.
	Images func(url string) image.Image

	handlers map[document.ObjectType]ObjectHandler

	line        line
	tree        tree
	processed   []treeNode
	backgrounds []coloredRect
	selection   []textnode.Rect
	decorations []decorationRect
	hasContents bool
}

// NewEngine returns an engine with the default colors.
func NewEngine() *Engine {
	return &Engine{
		TextColor:         DefaultTextColor,
		SelectedTextColor: DefaultSelectedTextColor,
		SelectionColor:    DefaultSelectionColor,
		AnchorColor:       DefaultAnchorColor,
	}
}

// Reset drops everything collected, keeping colors, Position and handlers.
func (e *Engine) Reset() {
	e.line = line{}
	e.tree.reset()
	e.processed = e.processed[:0]
	e.backgrounds = e.backgrounds[:0]
	e.selection = e.selection[:0]
	e.decorations = e.decorations[:0]
	e.hasContents = false
}

// HasContents reports whether anything was added since the last Reset.
func (e *Engine) HasContents() bool { return e.hasContents }

// colorOf resolves the text color of a format: explicit foreground, else
// the anchor color for links, else the text color.
func (e *Engine) colorOf(f layout.Format) textnode.Color {
	switch {
	case f.Has(layout.PropForeground):
		return f.Foreground
	case f.Anchor:
		return e.AnchorColor
	}
	return e.TextColor
}

// beginLine finishes the current line and starts l placed at off. It
// does nothing when l is already the current line.
func (e *Engine) beginLine(l *layout.Line, off textnode.Point) {
	if e.line.active {
		if e.line.src == l {
			return
		}
		e.processLine()
	}
	e.line = line{src: l, active: true, y: off.Y + l.Y, height: l.Height, ascent: l.Ascent}
}

// endLine finishes the current line.
func (e *Engine) endLine() {
	if e.line.active {
		e.processLine()
	}
}

// AddTextLayout adds lines [lineStart, lineStart+lineCount) of res; a
// negative lineCount adds every visible line. Runes [selStart, selEnd) of
// res.Text are selected. Inline image placeholders are skipped; images
// are added with AddImage.
func (e *Engine) AddTextLayout(res *layout.Result, selStart, selEnd, lineStart, lineCount int) {
	if res == nil {
		return
	}
	end := len(res.Lines)
	if lineCount >= 0 {
		end = min(end, lineStart+lineCount)
	}
	for i := max(0, lineStart); i < end; i++ {
		e.addLine(&res.Lines[i], e.Position, selStart, selEnd, nil)
	}
	e.endLine()
}

// AddElidedLine adds the elided last line of res, unselected.
func (e *Engine) AddElidedLine(res *layout.Result) {
	if res == nil || res.Elided == nil {
		return
	}
	e.addLine(&res.Elided.Line, e.Position, 0, 0, nil)
	e.endLine()
}

// AddImage adds an image drawn into r.
func (e *Engine) AddImage(r textnode.Rect, img image.Image, selected bool) {
	if img == nil {
		return
	}
	e.processed = append(e.processed, treeNode{
		image:    img,
		rect:     r.Translate(e.Position.X, e.Position.Y),
		selected: selected,
	})
	e.hasContents = true
}

// objectFunc returns the image of an inline object run, or nil to skip it.
type objectFunc func(run *layout.GlyphRun) image.Image

// addLine adds the runs of l placed at off, split at the selection.
func (e *Engine) addLine(l *layout.Line, off textnode.Point, selStart, selEnd int, object objectFunc) {
	e.beginLine(l, off)
	start, end := l.Start, l.End()
	a, b := max(start, selStart), min(end, selEnd)
	if selStart >= selEnd || a >= b {
		e.addRuns(l, off, start, end, false, object)
		return
	}
	e.line.hasSelection = true
	e.addRuns(l, off, start, a, false, object)
	e.addRuns(l, off, a, b, true, object)
	e.addRuns(l, off, b, end, false, object)
}

func (e *Engine) addRuns(l *layout.Line, off textnode.Point, start, end int, selected bool, object objectFunc) {
	if start >= end {
		return
	}
	for _, run := range l.GlyphRunsIn(start, end) {
		if run.Object >= 0 {
			if object == nil {
				continue
			}
			if img := object(&run); img != nil {
				e.insertImage(run.Bounds.Translate(off.X, off.Y), img, selected)
			}
			continue
		}
		e.insertGlyphs(&run, off, selected)
	}
}

func fuzzyIsNull(v float64) bool { return math.Abs(v) <= 1e-12 }

// insertGlyphs adds a glyph run to the current line. Runs with a
// zero-area rectangle are dropped.
func (e *Engine) insertGlyphs(run *layout.GlyphRun, off textnode.Point, selected bool) {
	r := run.Bounds.Translate(off.X, off.Y)
	if fuzzyIsNull(r.Width) || fuzzyIsNull(r.Height) {
		return
	}
	n := treeNode{
		face:     run.Face,
		rect:     r,
		selected: selected,
		color:    e.colorOf(run.Format),
	}
	f := run.Format
	if f.Underline {
		n.decorations |= decoUnderline
	}
	if f.Overline {
		n.decorations |= decoOverline
	}
	if f.Strikeout {
		n.decorations |= decoStrikeout
	}
	if f.Has(layout.PropBackground) {
		n.decorations |= decoBackground
		n.background = f.Background
	}
	n.glyphs = make([]text.GlyphID, len(run.Glyphs))
	n.positions = make([]textnode.Point, len(run.Glyphs))
	for i, g := range run.Glyphs {
		n.glyphs[i] = g.GID
		n.positions[i] = textnode.Pt(off.X+run.Origin.X+g.X, off.Y+run.Origin.Y+g.Y)
	}
	e.tree.insert(n)
	e.hasContents = true
}

// insertImage adds an inline image to the current line.
func (e *Engine) insertImage(r textnode.Rect, img image.Image, selected bool) {
	e.tree.insert(treeNode{image: img, rect: r, selected: selected})
	e.hasContents = true
}

// processLine sweeps the nodes of the current line left to right. It
// collects selection rectangles, assigns selected nodes to clip regions,
// and emits decoration and background rectangles.
func (e *Engine) processLine() {
	defer func() {
		e.tree.reset()
		e.line = line{}
	}()
	if e.tree.len() == 0 {
		return
	}
	order := e.tree.inOrder()
	top, height := e.line.y, e.line.height

	var (
		selected       bool
		current        textnode.Rect
		decos          decoration
		decoRect       textnode.Rect
		lastColor      textnode.Color
		lastBackground textnode.Color

		ulOffset, ulThickness float64
		olOffset, olThickness float64
		soOffset, soThickness float64

		underlines, overlines, strikeouts []decorationRect
	)
	var cl *clip
	if e.line.hasSelection {
		cl = &clip{}
	}

	for i := 0; i <= len(order); i++ {
		var n *treeNode
		if i < len(order) {
			n = &e.tree.nodes[order[i]]
			if i == 0 {
				selected = n.selected
			}
		}

		if decos != 0 {
			decoRect.Y, decoRect.Height = top, height
			if n != nil {
				decoRect = decoRect.SetRight(n.rect.Left())
			}
			d := decorationRect{rect: decoRect, color: lastColor, selected: selected}
			if decos&decoUnderline != 0 {
				underlines = append(underlines, d)
			}
			if decos&decoOverline != 0 {
				overlines = append(overlines, d)
			}
			if decos&decoStrikeout != 0 {
				strikeouts = append(strikeouts, d)
			}
			if decos&decoBackground != 0 {
				e.backgrounds = append(e.backgrounds, coloredRect{rect: decoRect, color: lastBackground})
			}
		}

		if n == nil || n.selected != selected {
			current.Y, current.Height = top, height
			if n != nil && current.Right() > n.rect.Left() {
				current = current.SetRight(n.rect.Left())
			}
			if selected {
				e.selection = append(e.selection, current)
			}
			if cl != nil && cl.used {
				cl.rect = current
			}
			cl = nil
			if n != nil && e.line.hasSelection {
				cl = &clip{}
			}
			if n != nil {
				selected = n.selected
				current = n.rect
				if current.IsNull() {
					current.Width, current.Height = 1, 1
				}
			}
		} else {
			current = current.Union(n.rect)
		}

		if n == nil {
			break
		}
		if n.selected {
			if cl == nil {
				cl = &clip{}
			}
			n.clip = cl
			cl.used = true
		}
		decoRect = n.rect

		if len(underlines) > 0 && n.decorations&decoUnderline == 0 {
			e.addDecorations(underlines, ulOffset, ulThickness)
			underlines = underlines[:0]
			ulOffset, ulThickness = 0, 0
		}
		if len(overlines) > 0 {
			e.addDecorations(overlines, olOffset, olThickness)
			overlines = overlines[:0]
			olOffset, olThickness = 0, 0
		}
		if len(strikeouts) > 0 {
			e.addDecorations(strikeouts, soOffset, soThickness)
			strikeouts = strikeouts[:0]
			soOffset, soThickness = 0, 0
		}

		if n.face != nil {
			// The thickest underline of a decorated stretch wins.
			if n.decorations&decoUnderline != 0 && n.face.LineThickness() > ulThickness {
				ulThickness = n.face.LineThickness()
				ulOffset = n.face.UnderlinePosition()
			}
			if n.decorations&decoOverline != 0 {
				olOffset = -n.face.Metrics().Ascent
				olThickness = n.face.LineThickness()
			}
			if n.decorations&decoStrikeout != 0 {
				soOffset = n.face.Metrics().Ascent / -3
				soThickness = n.face.LineThickness()
			}
		}

		decos = n.decorations
		lastColor = n.color
		lastBackground = n.background
		e.processed = append(e.processed, *n)
	}

	if len(underlines) > 0 {
		e.addDecorations(underlines, ulOffset, ulThickness)
	}
	if len(overlines) > 0 {
		e.addDecorations(overlines, olOffset, olThickness)
	}
	if len(strikeouts) > 0 {
		e.addDecorations(strikeouts, soOffset, soThickness)
	}
}

// addDecorations moves pending decoration rectangles onto their line:
// offset is relative to the baseline and thickness becomes the height.
func (e *Engine) addDecorations(pending []decorationRect, offset, thickness float64) {
	for _, d := range pending {
		d.rect.Y = math.Round(d.rect.Y + e.line.ascent + offset)
		d.rect.Height = thickness
		e.decorations = append(e.decorations, d)
	}
}
