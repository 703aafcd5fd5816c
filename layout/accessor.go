package layout

import (
	"github.com/gogpu/textnode"
)

// LineCallback customizes the geometry of each line as it is laid out.
// Heights reported back through the accessor are accumulated by the engine.
type LineCallback func(*LineAccessor)

// LineAccessor exposes the line being laid out to a LineCallback. It is
// bound to a line only while the callback runs; afterwards every getter
// returns zero and every setter is ignored.
type LineAccessor struct {
	line       *Line
	fullLength int
	natural    func() float64
	rebreak    func(width float64)

	x, y, width, height float64
}

func (a *LineAccessor) bound() bool {
	if a.line == nil {
		textnode.Logger().Warn("layout: line accessor used outside its layout pass")
		return false
	}
	return true
}

func (a *LineAccessor) unbind() {
	a.line = nil
	a.natural = nil
	a.rebreak = nil
}

// Number returns the zero-based line number.
func (a *LineAccessor) Number() int {
	if !a.bound() {
		return 0
	}
	return a.line.Number
}

// X returns the x position of the line.
func (a *LineAccessor) X() float64 {
	if !a.bound() {
		return 0
	}
	return a.x
}

// SetX moves the line horizontally.
func (a *LineAccessor) SetX(x float64) {
	if a.bound() {
		a.x = x
	}
}

// Y returns the y position of the line.
func (a *LineAccessor) Y() float64 {
	if !a.bound() {
		return 0
	}
	return a.y
}

// SetY moves the line vertically.
func (a *LineAccessor) SetY(y float64) {
	if a.bound() {
		a.y = y
	}
}

// Width returns the width the line is broken at.
func (a *LineAccessor) Width() float64 {
	if !a.bound() {
		return 0
	}
	return a.width
}

// SetWidth re-breaks the line at width.
func (a *LineAccessor) SetWidth(width float64) {
	if !a.bound() {
		return
	}
	a.width = width
	a.rebreak(width)
}

// Height returns the height the line advances the layout by.
func (a *LineAccessor) Height() float64 {
	if !a.bound() {
		return 0
	}
	if a.height > 0 {
		return a.height
	}
	return a.line.Height
}

// SetHeight overrides the height of the line.
func (a *LineAccessor) SetHeight(height float64) {
	if a.bound() {
		a.height = height
	}
}

// ImplicitWidth returns the natural width of the line's text.
func (a *LineAccessor) ImplicitWidth() float64 {
	if !a.bound() {
		return 0
	}
	return a.natural()
}

// IsLast reports whether the line ends the text.
func (a *LineAccessor) IsLast() bool {
	if !a.bound() {
		return false
	}
	return a.line.End() >= a.fullLength
}
