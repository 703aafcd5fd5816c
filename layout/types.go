package layout

import (
	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/text"
)

// WrapMode selects line breaking.
type WrapMode = text.WrapMode

// Wrap modes.
const (
	NoWrap             = text.WrapNone
	WordWrap           = text.WrapWord
	WrapAnywhere       = text.WrapAnywhere
	WrapWordOrAnywhere = text.WrapWordOrAnywhere
)

// ElideMode selects where text is cut when it does not fit.
type ElideMode = text.ElideMode

// Elide modes.
const (
	ElideNone   = text.ElideNone
	ElideLeft   = text.ElideLeft
	ElideRight  = text.ElideRight
	ElideMiddle = text.ElideMiddle
)

// FitMode selects automatic font size adjustment.
type FitMode uint8

const (
	// FixedSize never changes the font size.
	FixedSize FitMode = 0
	// HorizontalFit shrinks the font until the text fits the width on one line.
	HorizontalFit FitMode = 1
	// VerticalFit shrinks the font until the text fits the height.
	VerticalFit FitMode = 2
	// Fit combines HorizontalFit and VerticalFit.
	Fit = HorizontalFit | VerticalFit
)

// LineHeightMode selects how Params.LineHeight is interpreted.
type LineHeightMode uint8

const (
	// ProportionalHeight multiplies the natural line height.
	ProportionalHeight LineHeightMode = iota
	// FixedHeight uses LineHeight as pixels.
	FixedHeight
)

// HAlign is horizontal alignment of lines.
type HAlign uint8

const (
	AlignLeft HAlign = iota
	AlignRight
	AlignHCenter
	AlignJustify
)

// String returns the alignment name.
func (a HAlign) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignRight:
		return "Right"
	case AlignHCenter:
		return "HCenter"
	case AlignJustify:
		return "Justify"
	}
	return "Unknown"
}

// VAlign is vertical alignment of the text block.
type VAlign uint8

const (
	AlignTop VAlign = iota
	AlignBottom
	AlignVCenter
)

// DefaultPointSize is used when a Font sets neither pixel nor point size.
const DefaultPointSize = 12

// Font describes the base font of a paragraph. Exactly one of PixelSize
// and PointSize is used; PixelSize wins when both are set.
type Font struct {
	// Family defaults to text.GoFamily.
	Family *text.Family

	PixelSize float64
	PointSize float64

	Bold      bool
	Italic    bool
	Underline bool
	Overline  bool
	Strikeout bool
}

// UsesPixels reports whether the size is given in pixels.
func (f Font) UsesPixels() bool { return f.PixelSize > 0 }

// Size returns the size in its own unit (pixels or points).
func (f Font) Size() float64 {
	if f.PixelSize > 0 {
		return f.PixelSize
	}
	if f.PointSize > 0 {
		return f.PointSize
	}
	return DefaultPointSize
}

// Pixels returns the size in pixels.
func (f Font) Pixels() float64 {
	if f.PixelSize > 0 {
		return f.PixelSize
	}
	return text.PointsToPixels(f.Size())
}

// WithSize returns a copy of f resized to n, keeping its unit.
func (f Font) WithSize(n int) Font {
	if f.UsesPixels() {
		f.PixelSize = float64(n)
	} else {
		f.PointSize = float64(n)
	}
	return f
}

func (f Font) family() *text.Family {
	if f.Family != nil {
		return f.Family
	}
	return text.GoFamily()
}

// Face returns the face of f scaled by scale.
func (f Font) Face(scale float64, bold, italic bool) text.Face {
	return f.family().Face(f.Pixels()*scale, bold, italic)
}

// ImageAlign places an inline image vertically in its line.
type ImageAlign uint8

const (
	ImageBottom ImageAlign = iota
	ImageMiddle
	ImageTop
)

// ImageTag is an inline image at a placeholder rune of the text.
type ImageTag struct {
	// Position is the rune index of the text.ObjectReplacement placeholder.
	Position int
	URL      string
	Width    float64
	Height   float64
	Align    ImageAlign
	// Pending is set while the natural size of the image is unknown.
	Pending bool
}

// PlacedImage is an ImageTag positioned by a layout pass.
type PlacedImage struct {
	Tag  int // index into Params.Images
	URL  string
	Rect textnode.Rect
}
