package item

import (
	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/document"
	"github.com/gogpu/textnode/imagecache"
	"github.com/gogpu/textnode/layout"
	"github.com/gogpu/textnode/markup"
	"github.com/gogpu/textnode/node"
	"github.com/gogpu/textnode/scene"
	"github.com/gogpu/textnode/text"
)

// TextFormat selects how the text string is interpreted.
type TextFormat uint8

const (
	// AutoText is StyledText when the text looks like markup, else PlainText.
	AutoText TextFormat = iota
	PlainText
	StyledText
	RichText
)

func (f TextFormat) String() string {
	switch f {
	case AutoText:
		return "AutoText"
	case PlainText:
		return "PlainText"
	case StyledText:
		return "StyledText"
	case RichText:
		return "RichText"
	}
	return "Unknown"
}

// Padding is space between the item edges and the text.
type Padding struct {
	Top, Right, Bottom, Left float64
}

type dirty uint8

const (
	dirtyContent dirty = 1 << iota
	dirtyLayout
	dirtyPaint
)

// metrics are what the last layout reported to the host.
type metrics struct {
	lineCount  int
	truncated  bool
	implicitW  float64
	implicitH  float64
	contentW   float64
	contentH   float64
	baseline   float64
	vOffset    float64
	displayTxt string
}

// Text is a text item. It is not safe for concurrent use; see Owner.
type Text struct {
	text   string
	format TextFormat
	font   layout.Font
	family *text.Family

	color             textnode.Color
	linkColor         textnode.Color
	selectedTextColor textnode.Color
	selectionColor    textnode.Color
	style             scene.TextStyle
	styleColor        textnode.Color

	wrap           layout.WrapMode
	elide          layout.ElideMode
	maxLines       int
	fit            layout.FitMode
	minPixelSize   int
	minPointSize   int
	lineHeight     float64
	lineHeightMode layout.LineHeightMode

	hAlign         layout.HAlign
	hAlignExplicit bool
	vAlign         layout.VAlign

	width, height           float64
	widthValid, heightValid bool
	padding                 Padding

	selStart, selEnd int
	baseURL          string
	lineLaidOut      layout.LineCallback
	images           *imagecache.Cache

	onTruncated    func(bool)
	onLineCount    func(int)
	onImplicitSize func(w, h float64)
	onRepaint      func()

	dirty    dirty
	implicit bool
	engine   *layout.Engine
	nodes    *node.Engine

	// content is the parsed text. rich is set for RichText.
	rich   bool
	styled markup.Styled
	doc    *document.Document

	owner   Owner
	result  *layout.Result
	tags    []layout.ImageTag
	metrics metrics
	sc      *scene.Scene
	loading map[string]bool
}

// New returns an empty item using family, or the Go fonts when family is nil.
func New(family *text.Family) *Text {
	if family == nil {
		family = text.GoFamily()
	}
	return &Text{
		family:            family,
		font:              layout.Font{Family: family, PointSize: layout.DefaultPointSize},
		color:             node.DefaultTextColor,
		linkColor:         node.DefaultAnchorColor,
		selectedTextColor: node.DefaultSelectedTextColor,
		selectionColor:    node.DefaultSelectionColor,
		lineHeight:        1,
		dirty:             dirtyContent | dirtyLayout | dirtyPaint,
		engine:            layout.NewEngine(nil),
		nodes:             node.NewEngine(),
		sc:                scene.New(),
	}
}

// invalidate marks d dirty and asks the host to repaint.
func (t *Text) invalidate(d dirty) {
	if d&(dirtyContent|dirtyLayout) != 0 {
		d |= dirtyLayout | dirtyPaint
	}
	was := t.dirty
	t.dirty |= d
	if t.onRepaint != nil && was&dirtyPaint == 0 {
		t.onRepaint()
	}
}

// Text returns the text string.
func (t *Text) Text() string { return t.text }

// SetText sets the text string.
func (t *Text) SetText(s string) {
	if s == t.text {
		return
	}
	t.text = s
	t.invalidate(dirtyContent)
}

// TextFormat returns the text format.
func (t *Text) TextFormat() TextFormat { return t.format }

// SetTextFormat sets how the text string is interpreted.
func (t *Text) SetTextFormat(f TextFormat) {
	if f == t.format {
		return
	}
	t.format = f
	t.invalidate(dirtyContent)
}

// Font returns the base font.
func (t *Text) Font() layout.Font { return t.font }

// SetFont sets the base font. A nil family keeps the item family.
func (t *Text) SetFont(f layout.Font) {
	if f.Family == nil {
		f.Family = t.family
	}
	if f == t.font {
		return
	}
	t.font = f
	t.invalidate(dirtyContent)
}

// SetPixelSize sets the font size in pixels.
func (t *Text) SetPixelSize(px float64) {
	f := t.font
	f.PixelSize, f.PointSize = px, 0
	t.SetFont(f)
}

// SetPointSize sets the font size in points.
func (t *Text) SetPointSize(pt float64) {
	f := t.font
	f.PixelSize, f.PointSize = 0, pt
	t.SetFont(f)
}

// SetColor sets the text color.
func (t *Text) SetColor(c textnode.Color) {
	if c == t.color {
		return
	}
	t.color = c
	t.invalidate(dirtyPaint)
}

// SetLinkColor sets the color of links without an explicit color.
func (t *Text) SetLinkColor(c textnode.Color) {
	if c == t.linkColor {
		return
	}
	t.linkColor = c
	t.invalidate(dirtyPaint)
}

// SetSelectionColors sets the selected text and selection background colors.
func (t *Text) SetSelectionColors(text, background textnode.Color) {
	if text == t.selectedTextColor && background == t.selectionColor {
		return
	}
	t.selectedTextColor, t.selectionColor = text, background
	t.invalidate(dirtyPaint)
}

// SetStyle sets the outline style of glyphs and its color.
func (t *Text) SetStyle(style scene.TextStyle, c textnode.Color) {
	if style == t.style && c == t.styleColor {
		return
	}
	t.style, t.styleColor = style, c
	t.invalidate(dirtyPaint)
}

// SetWrapMode sets line breaking.
func (t *Text) SetWrapMode(m layout.WrapMode) {
	if m == t.wrap {
		return
	}
	t.wrap = m
	t.invalidate(dirtyLayout)
}

// SetElideMode sets where text that does not fit is cut.
func (t *Text) SetElideMode(m layout.ElideMode) {
	if m == t.elide {
		return
	}
	t.elide = m
	t.invalidate(dirtyLayout)
}

// SetMaximumLineCount limits the visible lines. Zero or less means no
// limit.
func (t *Text) SetMaximumLineCount(n int) {
	n = max(0, n)
	if n == t.maxLines {
		return
	}
	t.maxLines = n
	t.invalidate(dirtyLayout)
}

// SetFontSizeMode sets automatic font size fitting.
func (t *Text) SetFontSizeMode(m layout.FitMode) {
	if m == t.fit {
		return
	}
	t.fit = m
	t.invalidate(dirtyLayout)
}

// SetMinimumPixelSize sets the smallest pixel size fitting shrinks to.
func (t *Text) SetMinimumPixelSize(n int) {
	if n == t.minPixelSize {
		return
	}
	t.minPixelSize = n
	t.invalidate(dirtyLayout)
}

// SetMinimumPointSize sets the smallest point size fitting shrinks to.
func (t *Text) SetMinimumPointSize(n int) {
	if n == t.minPointSize {
		return
	}
	t.minPointSize = n
	t.invalidate(dirtyLayout)
}

// SetLineHeight sets the line height multiplier or, with
// layout.FixedHeight, pixels.
func (t *Text) SetLineHeight(v float64, mode layout.LineHeightMode) {
	if v == t.lineHeight && mode == t.lineHeightMode {
		return
	}
	t.lineHeight, t.lineHeightMode = v, mode
	t.invalidate(dirtyLayout)
}

// SetHAlign sets the horizontal alignment. An explicit alignment is kept
// for right-to-left text.
func (t *Text) SetHAlign(a layout.HAlign) {
	if a == t.hAlign && t.hAlignExplicit {
		return
	}
	t.hAlign, t.hAlignExplicit = a, true
	t.invalidate(dirtyLayout)
}

// ResetHAlign restores the implicit alignment, right for right-to-left
// text and left otherwise.
func (t *Text) ResetHAlign() {
	if t.hAlign == layout.AlignLeft && !t.hAlignExplicit {
		return
	}
	t.hAlign, t.hAlignExplicit = layout.AlignLeft, false
	t.invalidate(dirtyLayout)
}

// SetVAlign sets the vertical alignment.
func (t *Text) SetVAlign(a layout.VAlign) {
	if a == t.vAlign {
		return
	}
	t.vAlign = a
	t.invalidate(dirtyLayout)
}

// SetWidth sets the item width.
func (t *Text) SetWidth(w float64) {
	if w == t.width && t.widthValid {
		return
	}
	t.width, t.widthValid = w, true
	t.invalidate(dirtyLayout)
}

// ResetWidth makes the width unconstrained.
func (t *Text) ResetWidth() {
	if !t.widthValid {
		return
	}
	t.width, t.widthValid = 0, false
	t.invalidate(dirtyLayout)
}

// SetHeight sets the item height.
func (t *Text) SetHeight(h float64) {
	if h == t.height && t.heightValid {
		return
	}
	t.height, t.heightValid = h, true
	t.invalidate(dirtyLayout)
}

// ResetHeight makes the height unconstrained.
func (t *Text) ResetHeight() {
	if !t.heightValid {
		return
	}
	t.height, t.heightValid = 0, false
	t.invalidate(dirtyLayout)
}

// SetPadding sets the padding.
func (t *Text) SetPadding(p Padding) {
	if p == t.padding {
		return
	}
	t.padding = p
	t.invalidate(dirtyLayout)
}

// SetSelection selects runes [start, end) of the displayed text.
func (t *Text) SetSelection(start, end int) {
	if end < start {
		start, end = end, start
	}
	if start == t.selStart && end == t.selEnd {
		return
	}
	t.selStart, t.selEnd = start, end
	t.invalidate(dirtyPaint)
}

// Selection returns the selected rune range.
func (t *Text) Selection() (start, end int) { return t.selStart, t.selEnd }

// SetBaseURL sets the URL relative image sources are resolved against.
func (t *Text) SetBaseURL(u string) {
	if u == t.baseURL {
		return
	}
	t.baseURL = u
	t.invalidate(dirtyContent)
}

// SetLineLaidOut sets a callback positioning every line. Nil removes it.
func (t *Text) SetLineLaidOut(fn layout.LineCallback) {
	t.lineLaidOut = fn
	t.invalidate(dirtyLayout)
}

// SetImageCache sets the cache inline images are loaded through. Without
// a cache, images without explicit sizes stay empty.
func (t *Text) SetImageCache(c *imagecache.Cache) {
	if c == t.images {
		return
	}
	t.images = c
	t.loading = nil
	t.invalidate(dirtyContent)
}

// OnTruncatedChanged sets the function called when Truncated changes.
func (t *Text) OnTruncatedChanged(fn func(bool)) { t.onTruncated = fn }

// OnLineCountChanged sets the function called when LineCount changes.
func (t *Text) OnLineCountChanged(fn func(int)) { t.onLineCount = fn }

// OnImplicitSizeChanged sets the function called when the implicit size
// changes.
func (t *Text) OnImplicitSizeChanged(fn func(w, h float64)) { t.onImplicitSize = fn }

// OnRepaint sets the function called when the item needs a new Paint.
func (t *Text) OnRepaint(fn func()) { t.onRepaint = fn }
