// Package text provides fonts, faces and shaping for text layout.
//
// The pipeline follows a separation of concerns:
//
//   - FontSource: heavyweight, shared font resource (parses TTF/OTF files)
//   - Face: lightweight font instance at a specific pixel size, also the
//     font metrics service used by layout (ascent, line thickness,
//     underline position, ellipsis width, elision)
//   - FontParser: pluggable font parsing backend (default: golang.org/x/image)
//   - Shaper: converts text to positioned glyphs (BuiltinShaper or the
//     HarfBuzz-level GoTextShaper from go-text/typesetting)
//   - Family: regular/bold/italic sources grouped under one name
//
// # Example usage
//
//	source, err := text.NewFontSourceFromFile("Roboto-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer source.Close()
//
//	face := source.Face(16)
//	shaper := text.NewCachingShaper(text.NewGoTextShaper(), 256)
//	glyphs := shaper.Shape("Hello", face)
//
// Break opportunities for line wrapping are computed by [FindBreaks]; the
// layout package consumes them.
package text
