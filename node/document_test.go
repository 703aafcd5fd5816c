package node

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"golang.org/x/image/draw"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/document"
	"github.com/gogpu/textnode/layout"
	"github.com/gogpu/textnode/scene"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 255, A: 255}), image.Point{}, draw.Src)
	return img
}

func parseDoc(t *testing.T, src string, width float64) *document.Document {
	t.Helper()
	d, err := document.ParseHTML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	d.Layout(nil, testFont, width)
	return d
}

func TestAddTextDocumentBlocks(t *testing.T) {
	d := parseDoc(t, "<p>first paragraph</p><p>second</p>", 300)
	e := NewEngine()
	e.AddTextDocument(d, -1, -1)
	sc := scene.New()
	e.AddToScene(sc, scene.Normal, textnode.Color{})
	if c := sc.Counts(); c.Batches != 1 {
		t.Errorf("batches = %d, want 1 merged batch", c.Batches)
	}
	b := batches(sc)[0].Batch
	blocks := d.Blocks()
	if b.Rect.Top() < blocks[0].Rect.Top() || b.Rect.Bottom() > blocks[1].Rect.Bottom()+1e-6 {
		t.Errorf("batch rect %v outside the blocks", b.Rect)
	}
}

func TestAddTextDocumentSelectionAcrossBlocks(t *testing.T) {
	d := parseDoc(t, "<p>one</p><p>two</p>", 300)
	// Select "ne" of the first block and "t" of the second.
	second := d.Blocks()[1].Position
	e := NewEngine()
	e.AddTextDocument(d, 1, second+1)
	e.endLine()
	if len(e.selection) != 2 {
		t.Fatalf("selection rects = %d, want 2", len(e.selection))
	}
	if e.selection[1].Top() <= e.selection[0].Top() {
		t.Error("selection rects out of block order")
	}
}

func TestAddTextDocumentListMarker(t *testing.T) {
	d := parseDoc(t, "<ul><li>item</li></ul>", 300)
	e := NewEngine()
	e.AddTextDocument(d, -1, -1)
	e.endLine()

	blk := d.Blocks()[0]
	var marker, item *treeNode
	for i := range e.processed {
		n := &e.processed[i]
		if n.rect.Left() < blk.Rect.Left() {
			marker = n
		} else {
			item = n
		}
	}
	if marker == nil || item == nil {
		t.Fatalf("want a marker node left of the item text, got %d nodes", len(e.processed))
	}
	if len(marker.glyphs) != 1 {
		t.Errorf("marker glyphs = %d, want 1 bullet", len(marker.glyphs))
	}
	space := blk.Font.Face(1, false, false).Advance(" ")
	if !near(marker.rect.Right()+space, item.rect.Left()) {
		t.Errorf("marker ends at %v, want one space (%v) before %v", marker.rect.Right(), space, item.rect.Left())
	}
}

func TestAddTextDocumentTableBorders(t *testing.T) {
	d := parseDoc(t, `<table border="2"><tr><td>a</td><td>b</td></tr></table>`, 300)
	e := NewEngine()
	e.AddTextDocument(d, -1, -1)
	// Four sides for the table and for each of its two cells.
	if got := len(e.backgrounds); got != 12 {
		t.Errorf("border rects = %d, want 12", got)
	}
	for _, r := range e.backgrounds {
		if r.rect.Width <= 0 || r.rect.Height <= 0 {
			t.Errorf("empty border side %v", r.rect)
		}
	}
}

func TestAddBorderSides(t *testing.T) {
	e := NewEngine()
	c := textnode.RGB(1, 0, 0)
	e.addBorder(textnode.R(10, 10, 100, 50), 2, c)
	want := []textnode.Rect{
		textnode.R(10, 10, 2, 52),
		textnode.R(12, 10, 100, 2),
		textnode.R(110, 12, 2, 48),
		textnode.R(12, 60, 100, 2),
	}
	if len(e.backgrounds) != len(want) {
		t.Fatalf("sides = %d", len(e.backgrounds))
	}
	for i, w := range want {
		if e.backgrounds[i].rect != w {
			t.Errorf("side %d = %v, want %v", i, e.backgrounds[i].rect, w)
		}
	}
}

type swatch struct{ c color.RGBA }

func (s swatch) IntrinsicSize(*document.Document, int, document.CharFormat) textnode.Size {
	return textnode.Size{Width: 8, Height: 8}
}

func (s swatch) Draw(dst draw.Image, _ *document.Document, _ int, _ document.CharFormat) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(s.c), image.Point{}, draw.Src)
}

func TestObjectHandlers(t *testing.T) {
	d := document.New()
	b := d.Root.AddBlock()
	b.AddText("x", layout.Format{})
	b.AddObject(document.CharFormat{Object: document.ObjectUser})
	b.AddObject(document.CharFormat{Object: document.ObjectImage, ImageURL: "red.png"})
	h := swatch{color.RGBA{G: 255, A: 255}}
	d.RegisterHandler(document.ObjectUser, h)
	d.RegisterHandler(document.ObjectImage, &ImageObjectHandler{Lookup: func(url string) image.Image {
		if url == "red.png" {
			return testImage(6, 3)
		}
		return nil
	}})
	d.Layout(nil, testFont, 300)

	e := NewEngine()
	e.AddTextDocument(d, 1, 2)
	sc := scene.New()
	e.AddToScene(sc, scene.Normal, textnode.Color{})

	var imgs []*scene.ImageNode
	sc.Walk(func(n scene.Node, _ *scene.ClipNode) bool {
		if in, ok := n.(*scene.ImageNode); ok {
			imgs = append(imgs, in)
		}
		return true
	})
	if len(imgs) != 2 {
		t.Fatalf("images = %d, want 2", len(imgs))
	}
	if got := imgs[0].Image.At(4, 4); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("drawn object pixel = %v, want green", got)
	}
	if got := imgs[1].Rect.Size(); got != (textnode.Size{Width: 6, Height: 3}) {
		t.Errorf("image size = %v, want 6x3", got)
	}
	// The custom object at position 1 is selected and highlighted.
	if c := sc.Counts(); c.Rects < 2 {
		t.Errorf("rects = %d, want selection and overlay", c.Rects)
	}
}
