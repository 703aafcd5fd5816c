package node

import (
	"math"
	"testing"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/layout"
	"github.com/gogpu/textnode/markup"
	"github.com/gogpu/textnode/scene"
)

var testFont = layout.Font{PixelSize: 16}

func layoutOf(t *testing.T, p layout.Params) *layout.Result {
	t.Helper()
	if p.Font == (layout.Font{}) {
		p.Font = testFont
	}
	return layout.NewEngine(nil).Layout(&p)
}

func batches(sc *scene.Scene) []*scene.GlyphNode {
	var out []*scene.GlyphNode
	sc.Walk(func(n scene.Node, _ *scene.ClipNode) bool {
		if g, ok := n.(*scene.GlyphNode); ok {
			out = append(out, g)
		}
		return true
	})
	return out
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestAddTextLayoutPlain(t *testing.T) {
	res := layoutOf(t, layout.Params{Text: "Hello world"})
	e := NewEngine()
	e.AddTextLayout(res, -1, -1, 0, -1)
	sc := scene.New()
	e.AddToScene(sc, scene.Normal, textnode.Color{})

	c := sc.Counts()
	if c.Batches != 1 || c.Clips != 0 || c.Rects != 0 {
		t.Fatalf("counts = %+v, want one unclipped batch", c)
	}
	b := batches(sc)[0].Batch
	if b.Color != e.TextColor {
		t.Errorf("color = %v, want text color", b.Color)
	}
	if b.Len() != len(res.Lines[0].Runs[0].Glyphs) {
		t.Errorf("glyphs = %d, want %d", b.Len(), len(res.Lines[0].Runs[0].Glyphs))
	}
}

func TestAddTextLayoutPosition(t *testing.T) {
	res := layoutOf(t, layout.Params{Text: "x"})
	e := NewEngine()
	e.Position = textnode.Pt(10, 20)
	e.AddTextLayout(res, -1, -1, 0, -1)
	sc := scene.New()
	e.AddToScene(sc, scene.Normal, textnode.Color{})
	p := batches(sc)[0].Batch.Positions[0]
	run := res.Lines[0].Runs[0]
	if !near(p.X, 10+run.Origin.X+run.Glyphs[0].X) || !near(p.Y, 20+run.Origin.Y+run.Glyphs[0].Y) {
		t.Errorf("glyph position = %v", p)
	}
}

// An anchor half covered by the selection yields a selected batch in the
// selected text color, an unselected one in the anchor color, and one
// highlight covering exactly the selected half.
func TestAnchorHalfSelected(t *testing.T) {
	st := markup.Parse(`<a href="x">clickhere</a>`, testFont)
	res := layoutOf(t, layout.Params{Text: st.Text, Formats: st.Formats})
	e := NewEngine()
	e.AddTextLayout(res, 0, 5, 0, -1)
	sc := scene.New()
	e.AddToScene(sc, scene.Normal, textnode.Color{})

	bs := batches(sc)
	if len(bs) != 2 {
		t.Fatalf("batches = %d, want 2", len(bs))
	}
	if bs[0].Batch.Color != e.SelectedTextColor {
		t.Errorf("selected batch color = %v, want %v", bs[0].Batch.Color, e.SelectedTextColor)
	}
	if bs[1].Batch.Color != e.AnchorColor {
		t.Errorf("unselected batch color = %v, want %v", bs[1].Batch.Color, e.AnchorColor)
	}
	if len(e.selection) != 1 {
		t.Fatalf("selection rects = %d, want 1", len(e.selection))
	}
	l := &res.Lines[0]
	sel := e.selection[0]
	if !near(sel.Left(), l.CursorToX(0)) || !near(sel.Right(), l.CursorToX(5)) {
		t.Errorf("selection = [%v, %v], want [%v, %v]", sel.Left(), sel.Right(), l.CursorToX(0), l.CursorToX(5))
	}
	if !near(sel.Y, l.Y) || !near(sel.Height, l.Height) {
		t.Errorf("selection spans y %v+%v, want line %v+%v", sel.Y, sel.Height, l.Y, l.Height)
	}
	if c := sc.Counts(); c.Clips != 1 {
		t.Errorf("clips = %d, want 1", c.Clips)
	}
}

type glyphAt struct {
	gid  uint16
	x, y float64
}

func TestMergeKeepsGlyphMultiset(t *testing.T) {
	// Backgrounds split the text into runs without changing face or color.
	var formats []layout.FormatRange
	for i := 0; i < 20; i += 4 {
		formats = append(formats, layout.FormatRange{Start: i, Length: 2, Format: layout.Format{
			Set: layout.PropBackground, Background: textnode.RGB(1, 1, 0),
		}})
	}
	res := layoutOf(t, layout.Params{
		Text:    "the quick brown fox jumps over the lazy dog",
		Formats: formats,
		Wrap:    layout.WordWrap, Width: 120, WidthValid: true,
	})
	if res.LineCount() < 2 {
		t.Fatalf("want several lines, got %d", res.LineCount())
	}
	e := NewEngine()
	e.AddTextLayout(res, -1, -1, 0, -1)
	e.endLine()

	want := map[glyphAt]int{}
	nodes := 0
	for _, n := range e.processed {
		for i, g := range n.glyphs {
			want[glyphAt{uint16(g), n.positions[i].X, n.positions[i].Y}]++
		}
		if len(n.glyphs) > 0 {
			nodes++
		}
	}
	sc := scene.New()
	e.AddToScene(sc, scene.Normal, textnode.Color{})
	got := map[glyphAt]int{}
	bs := batches(sc)
	for _, b := range bs {
		for i, g := range b.Batch.Glyphs {
			got[glyphAt{uint16(g), b.Batch.Positions[i].X, b.Batch.Positions[i].Y}]++
		}
	}
	if len(bs) != 1 || nodes < 2 {
		t.Errorf("batches = %d from %d nodes, want everything merged into 1", len(bs), nodes)
	}
	if len(got) != len(want) {
		t.Fatalf("distinct glyphs %d, want %d", len(got), len(want))
	}
	for k, n := range want {
		if got[k] != n {
			t.Errorf("glyph %+v count %d, want %d", k, got[k], n)
		}
	}
}

func TestSelectionCoverage(t *testing.T) {
	res := layoutOf(t, layout.Params{
		Text: "alpha beta gamma delta epsilon",
		Wrap: layout.WordWrap, Width: 90, WidthValid: true,
	})
	selStart, selEnd := 3, 20
	e := NewEngine()
	e.AddTextLayout(res, selStart, selEnd, 0, -1)
	e.endLine()

	for _, l := range res.Lines {
		a, b := max(l.Start, selStart), min(l.End(), selEnd)
		var rects []textnode.Rect
		for _, r := range e.selection {
			if near(r.Y, l.Y) {
				rects = append(rects, r)
			}
		}
		if a >= b {
			if len(rects) != 0 {
				t.Errorf("line %d: %d selection rects, want 0", l.Number, len(rects))
			}
			continue
		}
		if len(rects) != 1 {
			t.Fatalf("line %d: %d selection rects, want 1", l.Number, len(rects))
		}
		r := rects[0]
		if !near(r.Left(), l.CursorToX(a)) || !near(r.Right(), l.CursorToX(b)) {
			t.Errorf("line %d: selection [%v, %v], want [%v, %v]", l.Number, r.Left(), r.Right(), l.CursorToX(a), l.CursorToX(b))
		}
		for _, n := range e.processed {
			cy := n.rect.Top() + n.rect.Height/2
			if n.selected || cy < l.Y || cy >= l.Y+l.Height {
				continue
			}
			if ov := r.Intersect(n.rect); ov.Width > 1e-6 {
				t.Errorf("line %d: selection overlaps unselected node %v", l.Number, n.rect)
			}
		}
	}
}

func TestZeroAreaRunDropped(t *testing.T) {
	res := layoutOf(t, layout.Params{Text: "abc"})
	run := res.Lines[0].Runs[0]
	run.Bounds.Width = 0
	e := NewEngine()
	e.beginLine(&res.Lines[0], textnode.Point{})
	e.insertGlyphs(&run, textnode.Point{}, false)
	if e.tree.len() != 0 {
		t.Error("zero width run was inserted")
	}
	run.Bounds.Width, run.Bounds.Height = 10, 0
	e.insertGlyphs(&run, textnode.Point{}, false)
	if e.tree.len() != 0 {
		t.Error("zero height run was inserted")
	}
}

func TestUnderlineUsesThickestRun(t *testing.T) {
	under := layout.Format{Set: layout.PropUnderline, Underline: true}
	big := under
	big.Set |= layout.PropFontScale
	big.FontScale = 3
	res := layoutOf(t, layout.Params{
		Text: "small BIG",
		Formats: []layout.FormatRange{
			{Start: 0, Length: 6, Format: under},
			{Start: 6, Length: 3, Format: big},
		},
	})
	e := NewEngine()
	e.AddTextLayout(res, -1, -1, 0, -1)
	e.endLine()

	if len(e.decorations) != 2 {
		t.Fatalf("decorations = %d, want 2", len(e.decorations))
	}
	thick := testFont.Face(3, false, false).LineThickness()
	thin := testFont.Face(1, false, false).LineThickness()
	if thick <= thin {
		t.Skipf("face thickness does not grow with size: %v vs %v", thick, thin)
	}
	for i, d := range e.decorations {
		if !near(d.rect.Height, thick) {
			t.Errorf("decoration %d height %v, want thickest %v", i, d.rect.Height, thick)
		}
	}
	// The stretch is continuous.
	if !near(e.decorations[0].rect.Right(), e.decorations[1].rect.Left()) {
		t.Errorf("gap between %v and %v", e.decorations[0].rect, e.decorations[1].rect)
	}
}

func TestOverlineAndStrikeout(t *testing.T) {
	f := layout.Format{Set: layout.PropOverline | layout.PropStrikeout, Overline: true, Strikeout: true}
	res := layoutOf(t, layout.Params{Text: "deco", Formats: []layout.FormatRange{{Start: 0, Length: 4, Format: f}}})
	e := NewEngine()
	e.AddTextLayout(res, -1, -1, 0, -1)
	e.endLine()
	if len(e.decorations) != 2 {
		t.Fatalf("decorations = %d, want 2", len(e.decorations))
	}
	l := res.Lines[0]
	base := l.Y + l.Ascent
	ascent := testFont.Face(1, false, false).Metrics().Ascent
	var over, strike bool
	for _, d := range e.decorations {
		switch d.rect.Y {
		case math.Round(base - ascent):
			over = true
		case math.Round(base - ascent/3):
			strike = true
		}
	}
	if !over || !strike {
		t.Errorf("decorations %+v, want overline at %v and strikeout at %v", e.decorations, math.Round(base-ascent), math.Round(base-ascent/3))
	}
}

func TestBackgroundRects(t *testing.T) {
	bg := textnode.RGB(0, 1, 0)
	res := layoutOf(t, layout.Params{
		Text:    "ab cd",
		Formats: []layout.FormatRange{{Start: 3, Length: 2, Format: layout.Format{Set: layout.PropBackground, Background: bg}}},
	})
	e := NewEngine()
	e.AddTextLayout(res, -1, -1, 0, -1)
	sc := scene.New()
	e.AddToScene(sc, scene.Normal, textnode.Color{})
	if len(e.backgrounds) != 1 {
		t.Fatalf("backgrounds = %d, want 1", len(e.backgrounds))
	}
	r := e.backgrounds[0].rect
	l := res.Lines[0]
	if !near(r.Left(), l.CursorToX(3)) || !near(r.Right(), l.CursorToX(5)) {
		t.Errorf("background [%v, %v], want [%v, %v]", r.Left(), r.Right(), l.CursorToX(3), l.CursorToX(5))
	}
	if _, ok := sc.Nodes()[0].(*scene.RectNode); !ok {
		t.Error("background is not the first primitive")
	}
}

func TestAddElidedLine(t *testing.T) {
	res := layoutOf(t, layout.Params{
		Text: "a long line of text that is elided", Elide: layout.ElideRight,
		Width: 80, WidthValid: true,
	})
	if res.Elided == nil {
		t.Fatal("not elided")
	}
	e := NewEngine()
	e.AddTextLayout(res, 0, 100, 0, -1)
	e.AddElidedLine(res)
	sc := scene.New()
	e.AddToScene(sc, scene.Normal, textnode.Color{})
	if c := sc.Counts(); c.Batches != 1 || c.Rects != 0 {
		t.Errorf("counts = %+v, want one unselected batch", c)
	}
}

func TestAddImageSelectedOverlay(t *testing.T) {
	e := NewEngine()
	img := testImage(4, 4)
	e.AddImage(textnode.R(0, 0, 4, 4), img, true)
	e.AddImage(textnode.R(10, 0, 4, 4), img, false)
	sc := scene.New()
	e.AddToScene(sc, scene.Normal, textnode.Color{})
	c := sc.Counts()
	if c.Images != 2 || c.Rects != 1 {
		t.Errorf("counts = %+v, want 2 images and 1 overlay", c)
	}
}

func TestEmitOrder(t *testing.T) {
	st := markup.Parse(`<u>under</u> <span style="background-color:yellow">bg</span>`, testFont)
	res := layoutOf(t, layout.Params{Text: st.Text, Formats: st.Formats})
	e := NewEngine()
	e.AddTextLayout(res, 0, 3, 0, -1)
	sc := scene.New()
	e.AddToScene(sc, scene.Normal, textnode.Color{})

	// rank: background 0, selection 1, decoration 2, glyphs 3
	rank := func(n scene.Node) int {
		switch n := n.(type) {
		case *scene.RectNode:
			switch n.Color {
			case textnode.RGB(1, 1, 0):
				return 0
			case e.SelectionColor:
				return 1
			}
			return 2
		}
		return 3
	}
	last := -1
	for _, n := range sc.Nodes() {
		r := rank(n)
		if r < last {
			t.Fatalf("node of rank %d after rank %d", r, last)
		}
		last = r
	}
	if last != 3 {
		t.Error("no glyphs emitted")
	}
}
