package item

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
	"time"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/imagecache"
	"github.com/gogpu/textnode/layout"
)

const fox = "the quick brown fox jumped over the lazy dog"

func newText(s string) *Text {
	t := New(nil)
	t.SetPixelSize(16)
	t.SetText(s)
	return t
}

func TestQuickStart(t *testing.T) {
	it := newText(fox)
	it.SetWidth(100)
	it.SetWrapMode(layout.WordWrap)
	sc := it.Paint(DefaultOwner)
	if it.LineCount() < 2 {
		t.Errorf("LineCount = %d, want wrapped lines", it.LineCount())
	}
	if it.Truncated() {
		t.Error("wrapped text should not be truncated")
	}
	if c := sc.Counts(); c.Glyphs == 0 || c.Batches != 1 {
		t.Errorf("counts = %+v, want one batch of glyphs", c)
	}
	if it.ImplicitWidth() <= 100 {
		t.Errorf("ImplicitWidth = %v, want the unwrapped width", it.ImplicitWidth())
	}
}

func TestPaintOnlyDirtiesWhatChanged(t *testing.T) {
	it := newText("hello")
	repaints := 0
	it.OnRepaint(func() { repaints++ })

	sc := it.Paint(DefaultOwner)
	res, v := it.Result(), sc.Version()
	if it.Paint(DefaultOwner).Version() != v {
		t.Error("clean item rebuilt its scene")
	}

	it.SetColor(textnode.RGB(1, 0, 0))
	it.SetColor(textnode.RGB(1, 0, 0))
	if repaints != 1 {
		t.Errorf("repaints = %d, want 1", repaints)
	}
	sc = it.Paint(DefaultOwner)
	if sc.Version() == v {
		t.Error("color change did not rebuild the scene")
	}
	if it.Result() != res {
		t.Error("color change relaid the text out")
	}

	it.SetWidth(10)
	if it.Paint(DefaultOwner); it.Result() == res {
		t.Error("width change kept the old layout")
	}
}

func TestPaintForAnotherOwnerRelays(t *testing.T) {
	it := newText("hello")
	it.EnsureLayout()
	first := it.Result()

	render := NewOwner()
	it.Paint(render)
	second := it.Result()
	if second == first {
		t.Fatal("layout was shared with another owner")
	}
	if !second.Equal(first) {
		t.Error("relayout produced different lines")
	}
	it.Paint(render)
	if it.Result() != second {
		t.Error("same owner should reuse its layout")
	}
}

func TestNotifications(t *testing.T) {
	it := newText(fox)
	var lines []int
	var truncated []bool
	sizes := 0
	it.OnLineCountChanged(func(n int) { lines = append(lines, n) })
	it.OnTruncatedChanged(func(b bool) { truncated = append(truncated, b) })
	it.OnImplicitSizeChanged(func(float64, float64) { sizes++ })

	it.EnsureLayout()
	it.SetWidth(60)
	it.SetElideMode(layout.ElideRight)
	it.EnsureLayout()

	if len(lines) != 1 || lines[0] != 1 {
		t.Errorf("line count notifications = %v, want [1]", lines)
	}
	if len(truncated) != 1 || !truncated[0] {
		t.Errorf("truncated notifications = %v, want [true]", truncated)
	}
	if sizes != 1 {
		t.Errorf("implicit size notifications = %d, want 1", sizes)
	}
	if it.LineCount() != 1 {
		t.Errorf("LineCount = %d, want 1 elided line", it.LineCount())
	}
}

func TestLinkAt(t *testing.T) {
	it := newText(`<a href="x">clickhere</a> plain`)
	it.SetPadding(Padding{Left: 10, Top: 10})
	y := 10 + it.ContentHeight()/2
	if got := it.LinkAt(15, y); got != "x" {
		t.Errorf("LinkAt over the link = %q, want x", got)
	}
	if got := it.LinkAt(10+it.ContentWidth()-2, y); got != "" {
		t.Errorf("LinkAt over plain text = %q, want none", got)
	}
	if got := it.LinkAt(2, y); got != "" {
		t.Errorf("LinkAt in the padding = %q, want none", got)
	}
}

func TestTextFormat(t *testing.T) {
	it := newText("<b>bold</b>")
	if it.DisplayText() != "bold" {
		t.Errorf("auto format DisplayText = %q, want bold", it.DisplayText())
	}
	it.SetTextFormat(PlainText)
	if it.DisplayText() != "<b>bold</b>" {
		t.Errorf("plain DisplayText = %q", it.DisplayText())
	}
}

func TestRichText(t *testing.T) {
	it := newText("<p>one</p><p>two <a href=\"t\">link</a></p>")
	it.SetTextFormat(RichText)
	if it.LineCount() != 2 {
		t.Errorf("LineCount = %d, want 2", it.LineCount())
	}
	if it.DisplayText() != "one\ntwo link" {
		t.Errorf("DisplayText = %q", it.DisplayText())
	}
	if it.Result() != nil {
		t.Error("rich text has no single layout result")
	}
	w := it.ImplicitWidth()
	if w <= 0 || w != it.ContentWidth() {
		t.Errorf("ImplicitWidth = %v, ContentWidth = %v", w, it.ContentWidth())
	}
	if c := it.Paint(DefaultOwner).Counts(); c.Glyphs == 0 {
		t.Errorf("counts = %+v, want glyphs", c)
	}
}

func TestBaselineOffsetPadding(t *testing.T) {
	a := newText("x")
	b := newText("x")
	b.SetPadding(Padding{Top: 5})
	if d := b.BaselineOffset() - a.BaselineOffset(); math.Abs(d-5) > 1e-9 {
		t.Errorf("baseline moved by %v, want 5", d)
	}
	b.SetHeight(100)
	b.SetVAlign(layout.AlignBottom)
	want := 100 - b.ContentHeight() + a.BaselineOffset()
	if math.Abs(b.BaselineOffset()-want) > 1e-9 {
		t.Errorf("bottom aligned baseline = %v, want %v", b.BaselineOffset(), want)
	}
}

func TestEffectiveHAlign(t *testing.T) {
	it := newText("שלום")
	if it.EffectiveHAlign() != layout.AlignRight {
		t.Errorf("implicit alignment of RTL text = %v, want Right", it.EffectiveHAlign())
	}
	it.SetHAlign(layout.AlignLeft)
	if it.EffectiveHAlign() != layout.AlignLeft {
		t.Errorf("explicit alignment = %v, want Left", it.EffectiveHAlign())
	}
}

func TestInlineImageLoads(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	c := imagecache.New()
	defer c.Close()
	it := newText(`a<img src="` + src + `">b`)
	it.SetImageCache(c)
	if n := it.Paint(DefaultOwner).Counts().Images; n != 0 {
		t.Fatalf("images before load = %d, want 0", n)
	}
	before := it.ImplicitWidth()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	repainted := false
	it.OnRepaint(func() { repainted = true })
	c.Dispatch()
	if !repainted {
		t.Error("image load did not request a repaint")
	}
	if n := it.Paint(DefaultOwner).Counts().Images; n != 1 {
		t.Errorf("images after load = %d, want 1", n)
	}
	if d := it.ImplicitWidth() - before; math.Abs(d-10) > 1e-6 {
		t.Errorf("image added %v to the width, want 10", d)
	}
}

func TestStyledBlockLineCount(t *testing.T) {
	for _, src := range []string{"<p>hello</p>", "<h1>Title</h1>"} {
		it := newText(src)
		if it.LineCount() != 1 {
			t.Errorf("%s: LineCount() = %d, want 1 (DisplayText %q)", src, it.LineCount(), it.DisplayText())
		}
	}
}

func TestInlineImageReservesWidth(t *testing.T) {
	it := newText(`see <img src="a.png" width="10" height="20">`)
	res := it.Result()
	if res == nil || len(res.Lines) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	var object *layout.GlyphRun
	for i := range res.Lines[0].Runs {
		if res.Lines[0].Runs[i].Object == 0 {
			object = &res.Lines[0].Runs[i]
		}
	}
	if object == nil {
		t.Fatal("no object run for the inline image")
	}
	if len(res.Images) != 1 || res.Images[0].Rect.Width != 10 {
		t.Errorf("Images = %+v, want one 10px wide image", res.Images)
	}
}

func TestTextFormatString(t *testing.T) {
	if RichText.String() != "RichText" || TextFormat(9).String() != "Unknown" {
		t.Error("unexpected TextFormat strings")
	}
}
