package layout

import (
	"strings"
	"testing"
)

func BenchmarkLayoutWordWrap(b *testing.B) {
	e := NewEngine(nil)
	p := Params{
		Text:       strings.Repeat(fox+" ", 20),
		Font:       testFont(),
		Wrap:       WordWrap,
		Width:      240,
		WidthValid: true,
	}
	b.ReportAllocs()
	for b.Loop() {
		e.Layout(&p)
	}
}

func BenchmarkLayoutFit(b *testing.B) {
	e := NewEngine(nil)
	p := Params{
		Text:             fox,
		Font:             Font{PixelSize: 48},
		Wrap:             WordWrap,
		Elide:            ElideRight,
		Fit:              Fit,
		MinimumPixelSize: 6,
		Width:            120,
		Height:           40,
		WidthValid:       true,
		HeightValid:      true,
	}
	b.ReportAllocs()
	for b.Loop() {
		e.Layout(&p)
	}
}
