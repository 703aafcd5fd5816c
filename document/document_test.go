package document

import (
	"math"
	"strings"
	"testing"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/layout"
	"github.com/gogpu/textnode/text"
)

var testFont = layout.Font{PixelSize: 16}

func parse(t *testing.T, src string) *Document {
	t.Helper()
	d, err := ParseHTML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	return d
}

func TestParseHTMLBlocks(t *testing.T) {
	d := parse(t, "<p>Hello <b>bold</b>  world</p><p>Second</p>")
	blocks := d.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}
	if got := blocks[0].Text(); got != "Hello bold world" {
		t.Errorf("block 0 = %q", got)
	}
	frags := blocks[0].Fragments
	if len(frags) != 3 || !frags[1].Format.Bold || frags[1].Text != "bold" {
		t.Errorf("fragments = %+v", frags)
	}
	if blocks[1].Position != blocks[0].Length() {
		t.Errorf("second block position = %d, want %d", blocks[1].Position, blocks[0].Length())
	}
	if got := d.PlainText(); got != "Hello bold world\nSecond" {
		t.Errorf("PlainText = %q", got)
	}
}

func TestParseHTMLInlineFormats(t *testing.T) {
	d := parse(t, `<a href="x">link</a><font color="red">r</font><span style="background-color: #00ff00">g</span><sup>2</sup>`)
	frags := d.Blocks()[0].Fragments
	if len(frags) != 4 {
		t.Fatalf("fragments = %d, want 4", len(frags))
	}
	if !frags[0].Format.Anchor || frags[0].Format.Href != "x" {
		t.Errorf("anchor = %+v", frags[0].Format)
	}
	if !frags[1].Format.Has(layout.PropForeground) || frags[1].Format.Foreground != textnode.RGB(1, 0, 0) {
		t.Errorf("font color = %+v", frags[1].Format.Foreground)
	}
	if !frags[2].Format.Has(layout.PropBackground) {
		t.Error("span background not set")
	}
	if frags[3].Format.VerticalAlign != layout.AlignSuperScript {
		t.Error("sup not superscript")
	}
}

func TestParseHTMLBreakAndPre(t *testing.T) {
	d := parse(t, "a<br>b<pre>x  y\nz</pre>")
	blocks := d.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}
	if got, want := blocks[0].Text(), "a"+string(text.LineSeparator)+"b"; got != want {
		t.Errorf("block 0 = %q, want %q", got, want)
	}
	if got, want := blocks[1].Text(), "x  y"+string(text.LineSeparator)+"z"; got != want {
		t.Errorf("pre = %q, want %q", got, want)
	}
	if !blocks[1].Format.NonBreakable {
		t.Error("pre block should not wrap")
	}
}

func TestParseHTMLLists(t *testing.T) {
	d := parse(t, `<ol start="3"><li>a</li><li>b</li></ol><ul><li>c<ul><li>d</li></ul></li></ul>`)
	blocks := d.Blocks()
	if len(blocks) != 4 {
		t.Fatalf("blocks = %d, want 4", len(blocks))
	}
	tests := []struct {
		block  int
		marker string
		indent int
	}{
		{0, "3.", 1},
		{1, "4.", 1},
		{2, "\u2022", 1},
		{3, "\u25e6", 2},
	}
	for _, tt := range tests {
		b := blocks[tt.block]
		if b.List == nil {
			t.Fatalf("block %d has no list", tt.block)
		}
		if got := b.List.ItemText(b); got != tt.marker {
			t.Errorf("block %d marker = %q, want %q", tt.block, got, tt.marker)
		}
		if b.List.Indent != tt.indent {
			t.Errorf("block %d indent = %d, want %d", tt.block, b.List.Indent, tt.indent)
		}
	}
}

func TestParseHTMLTable(t *testing.T) {
	d := parse(t, `<table border="1"><tr><td>a</td><td>b</td></tr><tr><th>c</th></tr></table>`)
	var tbl *Table
	for _, e := range d.Root.Children {
		if tt, ok := e.(*Table); ok {
			tbl = tt
		}
	}
	if tbl == nil {
		t.Fatal("no table")
	}
	if tbl.Rows != 2 || tbl.Cols != 2 {
		t.Fatalf("table %dx%d, want 2x2", tbl.Rows, tbl.Cols)
	}
	if tbl.Format.Border != 1 {
		t.Errorf("border = %v", tbl.Format.Border)
	}
	if got := len(d.Blocks()); got != 4 {
		t.Errorf("blocks = %d, want 4 (one per cell)", got)
	}
	th := tbl.CellAt(1, 0).Content.Children[0].(*Block)
	if th.Format.Align != layout.AlignHCenter || !th.Fragments[0].Format.Bold {
		t.Errorf("th block = %+v", th)
	}
}

func TestParseHTMLEmpty(t *testing.T) {
	d := parse(t, "")
	if len(d.Blocks()) != 1 {
		t.Fatalf("blocks = %d, want 1", len(d.Blocks()))
	}
}

func TestLayoutStacksBlocks(t *testing.T) {
	d := parse(t, "<p>one</p><p>two</p>")
	d.Layout(nil, testFont, 200)
	blocks := d.Blocks()
	a, b := blocks[0].Rect, blocks[1].Rect
	if a.Y != ParagraphMargin {
		t.Errorf("first block y = %v, want %v", a.Y, ParagraphMargin)
	}
	// Margins between the paragraphs collapse.
	if got, want := b.Y, a.Bottom()+ParagraphMargin; math.Abs(got-want) > 1e-9 {
		t.Errorf("second block y = %v, want %v", got, want)
	}
	if math.Abs(d.Size.Height-(b.Bottom()+ParagraphMargin)) > 1e-9 {
		t.Errorf("doc height = %v, want %v", d.Size.Height, b.Bottom()+ParagraphMargin)
	}
	if blocks[0].Result == nil || blocks[0].Result.LineCount() != 1 {
		t.Error("block not laid out")
	}
}

func TestLayoutWrapsAtWidth(t *testing.T) {
	d := parse(t, "<div>the quick brown fox jumps over the lazy dog</div>")
	d.Layout(nil, testFont, 100)
	res := d.Blocks()[0].Result
	if res.LineCount() < 3 {
		t.Errorf("lines = %d, want >= 3 at width 100", res.LineCount())
	}
	for _, l := range res.Lines {
		if l.NaturalWidth > 100 {
			t.Errorf("line %d width %v > 100", l.Number, l.NaturalWidth)
		}
	}
}

func TestLayoutListIndent(t *testing.T) {
	d := parse(t, "<ul><li>a<ul><li>b</li></ul></li></ul>")
	d.Layout(nil, testFont, 300)
	blocks := d.Blocks()
	if blocks[0].Rect.X != IndentWidth || blocks[1].Rect.X != 2*IndentWidth {
		t.Errorf("indents = %v, %v", blocks[0].Rect.X, blocks[1].Rect.X)
	}
}

func TestLayoutTableColumns(t *testing.T) {
	d := New()
	tbl := d.Root.AddTable(2, 3, FrameFormat{Border: 1})
	for _, c := range tbl.Cells() {
		c.Content.AddBlock().AddText("x", layout.Format{})
	}
	tbl.CellAt(0, 1).Content.Children[0].(*Block).AddText(" long text that wraps", layout.Format{})
	d.Layout(nil, testFont, 300)

	c00, c01, c02 := tbl.CellAt(0, 0).Rect, tbl.CellAt(0, 1).Rect, tbl.CellAt(0, 2).Rect
	if c00.Width != c01.Width || c01.Width != c02.Width {
		t.Errorf("column widths %v %v %v, want equal", c00.Width, c01.Width, c02.Width)
	}
	if c00.Height != c01.Height {
		t.Errorf("row cells differ in height: %v vs %v", c00.Height, c01.Height)
	}
	if c01.Left() <= c00.Right() {
		t.Error("cells overlap")
	}
	c10 := tbl.CellAt(1, 0).Rect
	if c10.Top() <= c00.Bottom() {
		t.Errorf("second row top %v, want below %v", c10.Top(), c00.Bottom())
	}
	if tbl.Rect.Bottom() < c10.Bottom() {
		t.Error("table rect does not contain its cells")
	}
}

type fixedSize struct{ w, h float64 }

func (s fixedSize) IntrinsicSize(*Document, int, CharFormat) textnode.Size {
	return textnode.Size{Width: s.w, Height: s.h}
}

func TestLayoutObjectSizes(t *testing.T) {
	d := New()
	b := d.Root.AddBlock()
	b.AddText("a", layout.Format{})
	b.AddObject(CharFormat{Object: ObjectImage, ImageURL: "pic.png"})
	b.AddObject(CharFormat{Object: ObjectUser})
	b.AddObject(CharFormat{Object: ObjectImage, ImageURL: "pic.png", Width: 10})
	d.ImageSize = func(url string) (textnode.Size, bool) {
		return textnode.Size{Width: 20, Height: 30}, url == "pic.png"
	}
	d.RegisterHandler(ObjectUser, fixedSize{5, 6})
	d.Layout(nil, testFont, 300)

	imgs := b.Result.Images
	if len(imgs) != 3 {
		t.Fatalf("images = %d, want 3", len(imgs))
	}
	want := []textnode.Size{{Width: 20, Height: 30}, {Width: 5, Height: 6}, {Width: 10, Height: 15}}
	for i, w := range want {
		if got := imgs[i].Rect.Size(); got != w {
			t.Errorf("image %d size = %v, want %v", i, got, w)
		}
	}
}

func TestLayoutFloatingFrame(t *testing.T) {
	d := New()
	d.Root.AddBlock().AddText("flow", layout.Format{})
	f := d.Root.AddFrame(FrameFormat{Position: FloatRight, Width: 50, Border: 1})
	f.AddBlock().AddText("side", layout.Format{})
	d.Root.AddBlock().AddText("after", layout.Format{})
	d.Layout(nil, testFont, 200)

	if f.Rect.Right() != 200 || f.Rect.Width != 50 {
		t.Errorf("float rect = %v", f.Rect)
	}
	blocks := d.Blocks()
	if blocks[2].Rect.Y != blocks[0].Rect.Bottom() {
		t.Errorf("float took part in flow: after.y = %v, want %v", blocks[2].Rect.Y, blocks[0].Rect.Bottom())
	}
}
