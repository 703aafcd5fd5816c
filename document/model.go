package document

import (
	"strings"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/layout"
	"github.com/gogpu/textnode/markup"
	"github.com/gogpu/textnode/text"
)

// ObjectType identifies the kind of an inline object.
type ObjectType int

const (
	// ObjectNone marks plain text.
	ObjectNone ObjectType = iota
	// ObjectImage is an inline image named by CharFormat.ImageURL.
	ObjectImage
	// ObjectUser is the first type available for custom objects.
	ObjectUser ObjectType = 0x1000
)

// CharFormat is the format of a fragment.
type CharFormat struct {
	layout.Format

	// Object is set on object fragments, whose text is a single
	// text.ObjectReplacement rune.
	Object ObjectType

	// ImageURL, Width and Height describe an image object. A zero size
	// is resolved through Document.ImageSize.
	ImageURL      string
	Width, Height float64
	ImageAlign    layout.ImageAlign
}

// IsObject reports whether the fragment is an inline object.
func (f CharFormat) IsObject() bool { return f.Object != ObjectNone }

// Fragment is a run of text with one character format.
type Fragment struct {
	Text   string
	Format CharFormat
}

// BlockFormat holds paragraph properties.
type BlockFormat struct {
	Align layout.HAlign

	// Indent is the indentation level; each level is IndentWidth pixels.
	Indent int

	TopMargin, BottomMargin float64
	LeftMargin, RightMargin float64

	Background textnode.Color

	// NonBreakable disables wrapping, as in <pre>.
	NonBreakable bool
}

// ListStyle is the marker style of a list.
type ListStyle uint8

const (
	ListDisc ListStyle = iota
	ListCircle
	ListSquare
	ListDecimal
	ListLowerAlpha
	ListUpperAlpha
	ListLowerRoman
	ListUpperRoman
)

// Ordered reports whether the style numbers its items.
func (s ListStyle) Ordered() bool { return s >= ListDecimal }

// kind returns the HTML type attribute value of s.
func (s ListStyle) kind() string {
	switch s {
	case ListCircle:
		return "circle"
	case ListSquare:
		return "square"
	case ListLowerAlpha:
		return "a"
	case ListUpperAlpha:
		return "A"
	case ListLowerRoman:
		return "i"
	case ListUpperRoman:
		return "I"
	case ListDecimal:
		return "1"
	}
	return "disc"
}

// List groups blocks that are items of one list.
type List struct {
	Style ListStyle

	// Indent is the nesting level, 1 for a top level list.
	Indent int

	// Start is the number of the first item.
	Start int

	items []*Block
}

// Items returns the blocks of the list in order.
func (l *List) Items() []*Block { return l.items }

// Add appends b to the list.
func (l *List) Add(b *Block) {
	b.List = l
	l.items = append(l.items, b)
}

// ItemNumber returns the one-based index of b in the list, or 0.
func (l *List) ItemNumber(b *Block) int {
	for i, it := range l.items {
		if it == b {
			return i + 1
		}
	}
	return 0
}

// ItemText returns the marker of b: a bullet for unordered lists, the
// number followed by a period for ordered ones.
func (l *List) ItemText(b *Block) string {
	n := l.ItemNumber(b)
	if n == 0 {
		return ""
	}
	start := l.Start
	if start == 0 {
		start = 1
	}
	return markup.ListMarker(l.Style.Ordered(), l.Style.kind(), start+n-1)
}

// Element is a child of a frame: *Block, *Frame or *Table.
type Element interface {
	element()
}

// Block is a paragraph.
type Block struct {
	Fragments []Fragment
	Format    BlockFormat

	// List is the list the block is an item of, or nil.
	List *List

	// Position is the document position of the first rune.
	Position int

	// Result and Rect are set by Layout. Result lines are relative to
	// Rect's top-left.
	Result *layout.Result
	Rect   textnode.Rect

	// Font is the base font the block was laid out with.
	Font layout.Font
}

func (*Block) element() {}

// Text returns the concatenated fragment text.
func (b *Block) Text() string {
	var sb strings.Builder
	for _, f := range b.Fragments {
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// Length returns the number of positions the block occupies.
func (b *Block) Length() int {
	n := 1
	for _, f := range b.Fragments {
		n += len([]rune(f.Text))
	}
	return n
}

// AddText appends a text fragment.
func (b *Block) AddText(s string, f layout.Format) {
	b.Fragments = append(b.Fragments, Fragment{Text: s, Format: CharFormat{Format: f}})
}

// AddObject appends an object fragment.
func (b *Block) AddObject(f CharFormat) {
	if f.Object == ObjectNone {
		f.Object = ObjectImage
	}
	b.Fragments = append(b.Fragments, Fragment{Text: string(text.ObjectReplacement), Format: f})
}

// FramePosition places a frame in the flow.
type FramePosition uint8

const (
	// InFlow frames stack with the other children of their parent.
	InFlow FramePosition = iota
	// FloatLeft frames sit at the left edge of their parent.
	FloatLeft
	// FloatRight frames sit at the right edge of their parent.
	FloatRight
)

// FrameFormat holds frame properties.
type FrameFormat struct {
	Border      float64
	BorderColor textnode.Color
	Margin      float64
	Padding     float64
	Background  textnode.Color
	Position    FramePosition

	// Width fixes the outer width when positive.
	Width float64
}

// Frame is a box of elements.
type Frame struct {
	Format   FrameFormat
	Children []Element

	// Rect is the outer rectangle set by Layout.
	Rect textnode.Rect
}

func (*Frame) element() {}

// AddBlock appends a new block.
func (f *Frame) AddBlock() *Block {
	b := &Block{}
	f.Children = append(f.Children, b)
	return b
}

// AddFrame appends a child frame.
func (f *Frame) AddFrame(format FrameFormat) *Frame {
	c := &Frame{Format: format}
	f.Children = append(f.Children, c)
	return c
}

// AddTable appends a rows by cols table.
func (f *Frame) AddTable(rows, cols int, format FrameFormat) *Table {
	t := NewTable(rows, cols, format)
	f.Children = append(f.Children, t)
	return t
}

// Cell is a table cell.
type Cell struct {
	Row, Col   int
	Background textnode.Color

	// Content holds the blocks of the cell.
	Content Frame

	// Rect is set by Layout.
	Rect textnode.Rect
}

// Table is a grid of equal columns.
type Table struct {
	Format FrameFormat

	// Rect is the outer rectangle set by Layout.
	Rect textnode.Rect

	Rows, Cols  int
	CellSpacing float64
	CellPadding float64

	cells []*Cell
}

func (*Table) element() {}

// DefaultCellSpacing and DefaultCellPadding are the table defaults.
const (
	DefaultCellSpacing = 2
	DefaultCellPadding = 0
)

// NewTable returns a table with empty cells.
func NewTable(rows, cols int, format FrameFormat) *Table {
	t := &Table{
		Format:      format,
		Rows:        rows,
		Cols:        cols,
		CellSpacing: DefaultCellSpacing,
		CellPadding: DefaultCellPadding,
		cells:       make([]*Cell, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			t.cells[r*cols+c] = &Cell{Row: r, Col: c}
		}
	}
	return t
}

// CellAt returns the cell at row r and column c, or nil.
func (t *Table) CellAt(r, c int) *Cell {
	if r < 0 || c < 0 || r >= t.Rows || c >= t.Cols {
		return nil
	}
	return t.cells[r*t.Cols+c]
}

// Cells returns the cells in row-major order.
func (t *Table) Cells() []*Cell { return t.cells }

// IndentWidth is the width of one indentation level in pixels.
const IndentWidth = 40

// Document is a rich text document.
type Document struct {
	Root Frame

	// ImageSize resolves the natural size of an image without explicit
	// dimensions. It may be nil.
	ImageSize func(url string) (textnode.Size, bool)

	// Size is set by Layout.
	Size textnode.Size

	handlers map[ObjectType]SizeHandler
}

// New returns an empty document.
func New() *Document { return &Document{} }

// Blocks returns every block in document order, descending into frames
// and table cells row by row.
func (d *Document) Blocks() []*Block {
	var out []*Block
	var walk func(f *Frame)
	walk = func(f *Frame) {
		for _, e := range f.Children {
			switch e := e.(type) {
			case *Block:
				out = append(out, e)
			case *Frame:
				walk(e)
			case *Table:
				for _, c := range e.cells {
					walk(&c.Content)
				}
			}
		}
	}
	walk(&d.Root)
	return out
}

// Reindex assigns block positions and returns the document length.
func (d *Document) Reindex() int {
	pos := 0
	for _, b := range d.Blocks() {
		b.Position = pos
		pos += b.Length()
	}
	return pos
}

// PlainText returns the text of the document with blocks separated by
// newlines.
func (d *Document) PlainText() string {
	blocks := d.Blocks()
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.Text()
	}
	return strings.Join(parts, "\n")
}
