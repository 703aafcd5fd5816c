package layout

import "math"

// DefaultMinimumSize is the smallest font size fitting shrinks to when
// Params.MinimumPixelSize or Params.MinimumPointSize is unset.
const DefaultMinimumSize = 12

// Params describes one paragraph and the constraints it is laid out under.
type Params struct {
	// Text may hold several variants separated by MultiLengthSeparator.
	// Newlines are converted to line separators.
	Text string
	Font Font

	// Formats and Images index the first variant of Text. Shorter
	// variants are laid out plain.
	Formats []FormatRange
	Images  []ImageTag

	Wrap  WrapMode
	Elide ElideMode

	// MaxLineCount limits the visible lines when positive.
	MaxLineCount int

	Fit              FitMode
	MinimumPixelSize int
	MinimumPointSize int

	// LineHeight is a multiplier or, with FixedHeight, pixels. Zero means 1.
	LineHeight     float64
	LineHeightMode LineHeightMode

	// Width and Height are the available size, used only when the matching
	// Valid flag is set.
	Width, Height           float64
	WidthValid, HeightValid bool

	HAlign HAlign
	// HAlignExplicit keeps HAlign for right-to-left text.
	HAlignExplicit bool

	// RequireImplicitSize runs the first pass unconstrained so that
	// Result.NaturalWidth and Result.ImplicitHeight are known.
	RequireImplicitSize bool

	// LineLaidOut, when set, positions every line.
	LineLaidOut LineCallback
}

func (p *Params) lineHeight() float64 {
	if p.LineHeight <= 0 {
		return 1
	}
	return p.LineHeight
}

// lineAdvance returns how far a line of natural height h moves the pen.
func (p *Params) lineAdvance(h float64) float64 {
	if p.LineHeightMode == FixedHeight {
		return p.lineHeight()
	}
	return h * p.lineHeight()
}

func (p *Params) maxLines() (int, bool) {
	if p.MaxLineCount > 0 {
		return p.MaxLineCount, true
	}
	return math.MaxInt, false
}

func (p *Params) minimumSize() int {
	n := p.MinimumPointSize
	if p.Font.UsesPixels() {
		n = p.MinimumPixelSize
	}
	if n <= 0 {
		return DefaultMinimumSize
	}
	return n
}

// flags are the layout features enabled by the parameters for the given
// validity of width and height.
type flags struct {
	singlelineElide bool
	multilineElide  bool
	canWrap         bool
	horizontalFit   bool
	verticalFit     bool
}

func (p *Params) flags(widthValid, heightValid bool) flags {
	_, maxLinesValid := p.maxLines()
	f := flags{
		singlelineElide: p.Elide != ElideNone && widthValid,
		multilineElide:  p.Elide == ElideRight && widthValid && (heightValid || maxLinesValid),
		canWrap:         p.Wrap != NoWrap && widthValid,
		horizontalFit:   p.Fit&HorizontalFit != 0 && widthValid,
	}
	f.verticalFit = p.Fit&VerticalFit != 0 && (heightValid || (maxLinesValid && f.canWrap))
	return f
}
