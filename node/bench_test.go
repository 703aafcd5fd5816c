package node

import (
	"strings"
	"testing"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/layout"
	"github.com/gogpu/textnode/markup"
	"github.com/gogpu/textnode/scene"
)

func BenchmarkAddTextLayoutSelection(b *testing.B) {
	src := strings.Repeat(`plain <b>bold</b> <a href="x">link</a> <u>under</u> `, 20)
	st := markup.Parse(src, testFont)
	res := layout.NewEngine(nil).Layout(&layout.Params{
		Text:       st.Text,
		Font:       testFont,
		Formats:    st.Formats,
		Wrap:       layout.WordWrap,
		Width:      300,
		WidthValid: true,
	})
	e := NewEngine()
	sc := scene.New()
	b.ReportAllocs()
	for b.Loop() {
		e.Reset()
		sc.Reset()
		e.AddTextLayout(res, 10, 200, 0, -1)
		e.AddToScene(sc, scene.Normal, textnode.Color{})
	}
}
