package text

import (
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// PointsToPixels converts a point size to pixels at 96 DPI.
func PointsToPixels(pt float64) float64 {
	return pt * 96 / 72
}

// Family groups the style variants of one typeface. Missing variants fall
// back to Regular.
type Family struct {
	Name       string
	Regular    *FontSource
	Bold       *FontSource
	Italic     *FontSource
	BoldItalic *FontSource
}

// Source returns the best source for the requested style.
func (f *Family) Source(bold, italic bool) *FontSource {
	switch {
	case bold && italic && f.BoldItalic != nil:
		return f.BoldItalic
	case bold && f.Bold != nil:
		return f.Bold
	case italic && f.Italic != nil:
		return f.Italic
	}
	return f.Regular
}

// Face creates a face of the requested style at px pixels.
func (f *Family) Face(px float64, bold, italic bool, opts ...FaceOption) Face {
	weight := WeightNormal
	if bold {
		weight = WeightBold
	}
	all := append([]FaceOption{WithWeight(weight), WithItalic(italic)}, opts...)
	return f.Source(bold, italic).Face(px, all...)
}

var (
	goOnce   sync.Once
	goFamily *Family
	goMono   *Family
)

func loadGoFonts() {
	must := func(data []byte) *FontSource {
		s, err := NewFontSource(data)
		if err != nil {
			panic(err)
		}
		return s
	}
	goFamily = &Family{
		Name:       "Go",
		Regular:    must(goregular.TTF),
		Bold:       must(gobold.TTF),
		Italic:     must(goitalic.TTF),
		BoldItalic: must(gobolditalic.TTF),
	}
	goMono = &Family{Name: "Go Mono", Regular: must(gomono.TTF)}
}

// GoFamily returns the shared Go font family (golang.org/x/image/font/gofont).
func GoFamily() *Family {
	goOnce.Do(loadGoFonts)
	return goFamily
}

// GoMonoFamily returns the shared Go Mono family.
func GoMonoFamily() *Family {
	goOnce.Do(loadGoFonts)
	return goMono
}
