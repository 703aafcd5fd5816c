package document

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/layout"
	"github.com/gogpu/textnode/text"
)

// Block margins applied by ParseHTML, in pixels.
const (
	ParagraphMargin = 12
	HeadingMargin   = 18
	ListItemMargin  = 0
)

var headingScale = map[atom.Atom]float64{
	atom.H1: 2.0, atom.H2: 1.5, atom.H3: 1.17, atom.H4: 1.0, atom.H5: 0.83, atom.H6: 0.67,
}

// fontSizeScale maps <font size> 1 to 7 to a scale of the base font.
var fontSizeScale = [7]float64{8.0 / 12, 10.0 / 12, 1, 14.0 / 12, 18.0 / 12, 2, 3}

// ParseHTML builds a document from HTML. Unknown elements contribute
// their content. It fails only when the input cannot be read.
func ParseHTML(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("document: parse html: %w", err)
	}
	d := New()
	b := &htmlBuilder{frames: []*Frame{&d.Root}}
	b.walk(root, layout.Format{})
	b.endBlock()
	if len(d.Blocks()) == 0 {
		d.Root.AddBlock()
	}
	d.Reindex()
	return d, nil
}

type htmlBuilder struct {
	frames []*Frame
	block  *Block
	lists  []*List
	pre    int
	// space is pending collapsed whitespace.
	space bool
}

func (b *htmlBuilder) frame() *Frame { return b.frames[len(b.frames)-1] }

// current returns the open block, starting an anonymous one if needed.
func (b *htmlBuilder) current() *Block {
	if b.block == nil {
		b.block = b.frame().AddBlock()
		b.space = false
	}
	return b.block
}

// startBlock closes the open block and opens a new one.
func (b *htmlBuilder) startBlock(f BlockFormat) *Block {
	b.endBlock()
	b.block = b.frame().AddBlock()
	b.block.Format = f
	b.space = false
	return b.block
}

func (b *htmlBuilder) endBlock() {
	b.block = nil
	b.space = false
}

func (b *htmlBuilder) appendText(s string, f layout.Format) {
	if s == "" {
		return
	}
	blk := b.current()
	cf := CharFormat{Format: f}
	if n := len(blk.Fragments); n > 0 && blk.Fragments[n-1].Format == cf {
		blk.Fragments[n-1].Text += s
		return
	}
	blk.Fragments = append(blk.Fragments, Fragment{Text: s, Format: cf})
}

func (b *htmlBuilder) chars(s string, f layout.Format) {
	if b.pre > 0 {
		b.appendText(strings.NewReplacer("\r\n", string(text.LineSeparator), "\n", string(text.LineSeparator)).Replace(s), f)
		return
	}
	var sb strings.Builder
	for _, r := range s {
		if r != '\u00a0' && unicode.IsSpace(r) {
			if b.block != nil && len(b.block.Fragments) > 0 || sb.Len() > 0 {
				b.space = true
			}
			continue
		}
		if b.space {
			sb.WriteByte(' ')
			b.space = false
		}
		sb.WriteRune(r)
	}
	b.appendText(sb.String(), f)
}

func attrOf(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func floatAttr(n *html.Node, key string) float64 {
	v, ok := attrOf(n, key)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		return 0
	}
	return f
}

func colorAttr(n *html.Node, key string) (textnode.Color, bool) {
	v, ok := attrOf(n, key)
	if !ok {
		return textnode.Color{}, false
	}
	c, err := textnode.ParseColor(v)
	return c, err == nil
}

// styleDecls returns the declarations of the style attribute.
func styleDecls(n *html.Node) map[string]string {
	style, ok := attrOf(n, "style")
	if !ok {
		return nil
	}
	out := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if ok {
			out[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
		}
	}
	return out
}

func parseAlign(v string) (layout.HAlign, bool) {
	switch strings.ToLower(v) {
	case "left":
		return layout.AlignLeft, true
	case "right":
		return layout.AlignRight, true
	case "center":
		return layout.AlignHCenter, true
	case "justify":
		return layout.AlignJustify, true
	}
	return layout.AlignLeft, false
}

// charFormat returns f with the character properties of n applied.
func charFormat(n *html.Node, f layout.Format) layout.Format {
	switch n.DataAtom {
	case atom.B, atom.Strong, atom.Th:
		f.Set |= layout.PropBold
		f.Bold = true
	case atom.I, atom.Em, atom.Cite, atom.Var:
		f.Set |= layout.PropItalic
		f.Italic = true
	case atom.U, atom.Ins:
		f.Set |= layout.PropUnderline
		f.Underline = true
	case atom.S, atom.Strike, atom.Del:
		f.Set |= layout.PropStrikeout
		f.Strikeout = true
	case atom.Sup:
		f.Set |= layout.PropVerticalAlign
		f.VerticalAlign = layout.AlignSuperScript
	case atom.Sub:
		f.Set |= layout.PropVerticalAlign
		f.VerticalAlign = layout.AlignSubScript
	case atom.A:
		if href, ok := attrOf(n, "href"); ok {
			f.Set |= layout.PropAnchor
			f.Anchor = true
			f.Href = href
		}
	case atom.Font:
		if c, ok := colorAttr(n, "color"); ok {
			f.Set |= layout.PropForeground
			f.Foreground = c
		}
		if v, ok := attrOf(n, "size"); ok && v != "" {
			k, err := strconv.Atoi(strings.TrimPrefix(v, "+"))
			if err == nil {
				if v[0] == '+' || v[0] == '-' {
					k += 3
				}
				if k >= 1 && k <= 7 {
					f.Set |= layout.PropFontScale
					f.FontScale = fontSizeScale[k-1]
				}
			}
		}
	}
	if s, ok := headingScale[n.DataAtom]; ok {
		f.Set |= layout.PropBold | layout.PropFontScale
		f.Bold = true
		f.FontScale = s
	}
	for name, value := range styleDecls(n) {
		switch name {
		case "color":
			if c, err := textnode.ParseColor(value); err == nil {
				f.Set |= layout.PropForeground
				f.Foreground = c
			}
		case "background-color", "background":
			if c, err := textnode.ParseColor(value); err == nil {
				f.Set |= layout.PropBackground
				f.Background = c
			}
		case "font-weight":
			f.Set |= layout.PropBold
			w, err := strconv.Atoi(value)
			f.Bold = value == "bold" || value == "bolder" || err == nil && w >= 600
		case "font-style":
			f.Set |= layout.PropItalic
			f.Italic = value == "italic" || value == "oblique"
		case "text-decoration":
			if strings.Contains(value, "underline") {
				f.Set |= layout.PropUnderline
				f.Underline = true
			}
			if strings.Contains(value, "overline") {
				f.Set |= layout.PropOverline
				f.Overline = true
			}
			if strings.Contains(value, "line-through") {
				f.Set |= layout.PropStrikeout
				f.Strikeout = true
			}
		}
	}
	return f
}

// blockFormat returns the paragraph properties of a block element.
func blockFormat(n *html.Node) BlockFormat {
	var bf BlockFormat
	switch {
	case n.DataAtom == atom.P:
		bf.TopMargin, bf.BottomMargin = ParagraphMargin, ParagraphMargin
	case headingScale[n.DataAtom] != 0:
		bf.TopMargin, bf.BottomMargin = HeadingMargin, ParagraphMargin
	case n.DataAtom == atom.Pre:
		bf.TopMargin, bf.BottomMargin = ParagraphMargin, ParagraphMargin
		bf.NonBreakable = true
	case n.DataAtom == atom.Blockquote:
		bf.TopMargin, bf.BottomMargin = ParagraphMargin, ParagraphMargin
		bf.LeftMargin, bf.RightMargin = IndentWidth, IndentWidth
	case n.DataAtom == atom.Li:
		bf.TopMargin, bf.BottomMargin = ListItemMargin, ListItemMargin
	}
	if v, ok := attrOf(n, "align"); ok {
		bf.Align, _ = parseAlign(v)
	}
	decls := styleDecls(n)
	if v, ok := decls["text-align"]; ok {
		bf.Align, _ = parseAlign(v)
	}
	if v, ok := decls["background-color"]; ok {
		if c, err := textnode.ParseColor(v); err == nil {
			bf.Background = c
		}
	}
	return bf
}

// listStyle returns the marker style of a list element nested depth
// levels deep. Unordered lists without a type cycle disc, circle, square.
func listStyle(n *html.Node, depth int) ListStyle {
	v, _ := attrOf(n, "type")
	if t, ok := styleDecls(n)["list-style-type"]; ok {
		v = t
	}
	switch v {
	case "circle":
		return ListCircle
	case "square":
		return ListSquare
	case "disc":
		return ListDisc
	case "a", "lower-alpha":
		return ListLowerAlpha
	case "A", "upper-alpha":
		return ListUpperAlpha
	case "i", "lower-roman":
		return ListLowerRoman
	case "I", "upper-roman":
		return ListUpperRoman
	}
	if n.DataAtom == atom.Ol {
		return ListDecimal
	}
	switch depth {
	case 1:
		return ListDisc
	case 2:
		return ListCircle
	}
	return ListSquare
}

func (b *htmlBuilder) walkChildren(n *html.Node, f layout.Format) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c, f)
	}
}

func (b *htmlBuilder) walk(n *html.Node, f layout.Format) {
	switch n.Type {
	case html.DocumentNode:
		b.walkChildren(n, f)
		return
	case html.TextNode:
		b.chars(n.Data, f)
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Head, atom.Script, atom.Style, atom.Title:
		return
	case atom.Br:
		b.space = false
		b.appendText(string(text.LineSeparator), f)
		return
	case atom.Img:
		b.image(n, f)
		return
	case atom.Hr:
		b.endBlock()
		b.frame().AddFrame(FrameFormat{Border: 1, BorderColor: textnode.RGB(0.5, 0.5, 0.5), Margin: 4})
		return
	case atom.Ul, atom.Ol:
		b.list(n, f)
		return
	case atom.Table:
		b.table(n, f)
		return
	}

	inner := charFormat(n, f)
	switch n.DataAtom {
	case atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Pre, atom.Blockquote, atom.Li, atom.Dt, atom.Dd, atom.Center:
		bf := blockFormat(n)
		if n.DataAtom == atom.Center {
			bf.Align = layout.AlignHCenter
		}
		blk := b.startBlock(bf)
		if n.DataAtom == atom.Li && len(b.lists) > 0 {
			b.lists[len(b.lists)-1].Add(blk)
		}
		if n.DataAtom == atom.Pre {
			b.pre++
			defer func() { b.pre-- }()
		}
		b.walkChildren(n, inner)
		b.endBlock()
	default:
		// Pending space keeps the format of the text before the element.
		if b.space {
			b.appendText(" ", f)
			b.space = false
		}
		b.walkChildren(n, inner)
	}
}

func (b *htmlBuilder) image(n *html.Node, f layout.Format) {
	src, _ := attrOf(n, "src")
	cf := CharFormat{
		Format:   f,
		Object:   ObjectImage,
		ImageURL: src,
		Width:    floatAttr(n, "width"),
		Height:   floatAttr(n, "height"),
	}
	if v, ok := attrOf(n, "align"); ok {
		switch strings.ToLower(v) {
		case "top":
			cf.ImageAlign = layout.ImageTop
		case "middle":
			cf.ImageAlign = layout.ImageMiddle
		}
	}
	if b.space {
		b.appendText(" ", f)
		b.space = false
	}
	b.current().AddObject(cf)
}

func (b *htmlBuilder) list(n *html.Node, f layout.Format) {
	b.endBlock()
	l := &List{Style: listStyle(n, len(b.lists)+1), Indent: len(b.lists) + 1}
	if v, ok := attrOf(n, "start"); ok {
		l.Start, _ = strconv.Atoi(v)
	}
	b.lists = append(b.lists, l)
	b.walkChildren(n, f)
	b.lists = b.lists[:len(b.lists)-1]
	b.endBlock()
}

// rowsOf returns the tr elements of a table, looking through row groups.
func rowsOf(n *html.Node) []*html.Node {
	var rows []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.DataAtom {
		case atom.Tr:
			rows = append(rows, c)
		case atom.Thead, atom.Tbody, atom.Tfoot:
			rows = append(rows, rowsOf(c)...)
		}
	}
	return rows
}

func cellsOf(tr *html.Node) []*html.Node {
	var cells []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.DataAtom == atom.Td || c.DataAtom == atom.Th {
			cells = append(cells, c)
		}
	}
	return cells
}

func (b *htmlBuilder) table(n *html.Node, f layout.Format) {
	b.endBlock()
	rows := rowsOf(n)
	cols := 0
	for _, tr := range rows {
		cols = max(cols, len(cellsOf(tr)))
	}
	if len(rows) == 0 || cols == 0 {
		return
	}
	format := FrameFormat{
		Border:      floatAttr(n, "border"),
		BorderColor: textnode.RGB(0.5, 0.5, 0.5),
		Margin:      2,
		Width:       floatAttr(n, "width"),
	}
	if c, ok := colorAttr(n, "bgcolor"); ok {
		format.Background = c
	}
	t := b.frame().AddTable(len(rows), cols, format)
	if _, ok := attrOf(n, "cellspacing"); ok {
		t.CellSpacing = floatAttr(n, "cellspacing")
	}
	if _, ok := attrOf(n, "cellpadding"); ok {
		t.CellPadding = floatAttr(n, "cellpadding")
	}
	for r, tr := range rows {
		for c, td := range cellsOf(tr) {
			cell := t.CellAt(r, c)
			if bg, ok := colorAttr(td, "bgcolor"); ok {
				cell.Background = bg
			}
			b.frames = append(b.frames, &cell.Content)
			cf := charFormat(td, f)
			if td.DataAtom == atom.Th {
				b.startBlock(BlockFormat{Align: layout.AlignHCenter})
			}
			b.walkChildren(td, cf)
			b.endBlock()
			if len(cell.Content.Children) == 0 {
				cell.Content.AddBlock()
			}
			b.frames = b.frames[:len(b.frames)-1]
		}
	}
	// Rows shorter than the table get empty cells.
	for _, cell := range t.Cells() {
		if len(cell.Content.Children) == 0 {
			cell.Content.AddBlock()
		}
	}
}
