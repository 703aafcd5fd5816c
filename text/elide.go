package text

// EllipsisRune is the horizontal ellipsis inserted by elision.
const EllipsisRune = '\u2026'

// ElideMode selects where text is cut when it does not fit.
type ElideMode int

const (
	// ElideNone never elides.
	ElideNone ElideMode = iota
	// ElideLeft removes text from the start: "…wn fox".
	ElideLeft
	// ElideRight removes text from the end: "the qu…".
	ElideRight
	// ElideMiddle removes text from the middle: "the…fox".
	ElideMiddle
)

// String returns the string representation of the elide mode.
func (m ElideMode) String() string {
	switch m {
	case ElideNone:
		return "None"
	case ElideLeft:
		return "Left"
	case ElideRight:
		return "Right"
	case ElideMiddle:
		return "Middle"
	default:
		return unknownStr
	}
}

// elide cuts s on rune boundaries. When not even the ellipsis fits the
// ellipsis alone is returned, so an elided string always carries it.
func elide(f Face, s string, mode ElideMode, width float64) string {
	if mode == ElideNone || s == "" {
		return s
	}
	glyphs := f.AppendGlyphs(nil, s)
	if len(glyphs) == 0 {
		return s
	}
	last := glyphs[len(glyphs)-1]
	if last.X+last.Advance <= width {
		return s
	}

	ellipsis := f.Ellipsis()
	avail := width - f.EllipsisWidth()
	runes := []rune(s)

	// widths of prefixes and suffixes in glyph order
	prefix := func(n int) float64 {
		if n == 0 {
			return 0
		}
		g := glyphs[n-1]
		return g.X + g.Advance
	}
	total := last.X + last.Advance
	suffix := func(n int) float64 {
		if n == 0 {
			return 0
		}
		return total - glyphs[len(glyphs)-n].X
	}

	switch mode {
	case ElideRight:
		n := 0
		for n < len(runes) && prefix(n+1) <= avail {
			n++
		}
		return string(runes[:n]) + ellipsis
	case ElideLeft:
		n := 0
		for n < len(runes) && suffix(n+1) <= avail {
			n++
		}
		return ellipsis + string(runes[len(runes)-n:])
	default:
		l, r := 0, 0
		for l+r < len(runes) {
			// grow the narrower side first to keep the cut centered
			if prefix(l) <= suffix(r) {
				if prefix(l+1)+suffix(r) > avail {
					break
				}
				l++
			} else {
				if prefix(l)+suffix(r+1) > avail {
					break
				}
				r++
			}
		}
		return string(runes[:l]) + ellipsis + string(runes[len(runes)-r:])
	}
}
