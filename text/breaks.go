package text

import "unicode"

// LineSeparator is the forced line break character. Newlines are
// normalized to it before layout.
const LineSeparator = '\u2028'

// ObjectReplacement marks the position of an inline object (image).
const ObjectReplacement = '\uFFFC'

// WrapMode specifies how text is wrapped when it exceeds the maximum width.
type WrapMode uint8

const (
	// WrapNone disables text wrapping; text may exceed the line width.
	WrapNone WrapMode = iota

	// WrapWord breaks at word boundaries only.
	// Long words that exceed the line width will overflow.
	WrapWord

	// WrapAnywhere breaks at character boundaries.
	WrapAnywhere

	// WrapWordOrAnywhere breaks at word boundaries first,
	// then falls back to character boundaries for long words.
	WrapWordOrAnywhere
)

// String returns the string representation of the wrap mode.
func (m WrapMode) String() string {
	switch m {
	case WrapNone:
		return "None"
	case WrapWord:
		return "Word"
	case WrapAnywhere:
		return "Anywhere"
	case WrapWordOrAnywhere:
		return "WordOrAnywhere"
	default:
		return unknownStr
	}
}

// BreakClass represents Unicode line breaking classes (UAX #14 simplified).
type BreakClass uint8

const (
	// breakOther is the default class for most characters.
	breakOther BreakClass = iota
	// breakSpace is for space characters (break after).
	breakSpace
	// breakZero is for zero-width space (break opportunity).
	breakZero
	// breakOpen is for opening punctuation (no break after).
	breakOpen
	// breakClose is for closing punctuation (no break before).
	breakClose
	// breakHyphen is for hyphens (break after).
	breakHyphen
	// breakIdeographic is for CJK ideographs (break before/after).
	breakIdeographic
	// breakGlue is for no-break space (never break around it).
	breakGlue
)

// classifyRune returns the break class of a rune.
func classifyRune(r rune) BreakClass {
	switch r {
	case ' ', '\t', LineSeparator:
		return breakSpace
	case '\u00A0', '\u2007', '\u202F', '\u2060':
		return breakGlue
	case '\u200B':
		return breakZero
	case '(', '[', '{', '\u201C', '\u2018':
		return breakOpen
	case ')', ']', '}', '\u201D', '\u2019', '.', ',', ';', ':', '!', '?':
		return breakClose
	case '-', '\u2010', '\u2013', '\u2014':
		return breakHyphen
	}
	if isCJKRune(r) {
		return breakIdeographic
	}
	return breakOther
}

// isCJKRune returns true if the rune is a CJK character that allows breaking.
func isCJKRune(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // CJK Unified Ideographs
		(r >= 0x3400 && r <= 0x4DBF) || // CJK Extension A
		(r >= 0x20000 && r <= 0x2A6DF) || // CJK Extension B
		(r >= 0x3040 && r <= 0x309F) || // Hiragana
		(r >= 0x30A0 && r <= 0x30FF) || // Katakana
		(r >= 0xAC00 && r <= 0xD7AF) || // Hangul Syllables
		(r >= 0xFF00 && r <= 0xFFEF) // Fullwidth forms
}

// BreakOpportunity represents a line break opportunity.
type BreakOpportunity uint8

const (
	// BreakNo means no break allowed here.
	BreakNo BreakOpportunity = iota
	// BreakAllowed means break is allowed here.
	BreakAllowed
	// BreakMandatory means break is required here (after a line separator).
	BreakMandatory
)

// FindBreaks returns the break opportunity before each rune. Index 0 is
// always BreakNo. Mandatory breaks after LineSeparator are reported for
// every mode, WrapNone included.
func FindBreaks(runes []rune, mode WrapMode) []BreakOpportunity {
	n := len(runes)
	if n == 0 {
		return nil
	}
	breaks := make([]BreakOpportunity, n)
	for i := 1; i < n; i++ {
		if runes[i-1] == LineSeparator {
			breaks[i] = BreakMandatory
			continue
		}
		if mode == WrapNone {
			continue
		}
		breaks[i] = computeBreak(runes[i-1], runes[i], mode)
	}
	return breaks
}

// computeBreak determines the break opportunity between prev and curr.
func computeBreak(prev, curr rune, mode WrapMode) BreakOpportunity {
	prevClass := classifyRune(prev)
	currClass := classifyRune(curr)

	if prevClass == breakGlue || currClass == breakGlue {
		return BreakNo
	}
	if mode == WrapAnywhere {
		return BreakAllowed
	}
	if currClass == breakClose || currClass == breakSpace {
		return BreakNo
	}
	if prevClass == breakOpen {
		return BreakNo
	}
	if prevClass == breakZero || prevClass == breakSpace {
		return BreakAllowed
	}
	if prevClass == breakHyphen && currClass != breakHyphen && !unicode.IsSpace(curr) {
		return BreakAllowed
	}
	if currClass == breakIdeographic || prevClass == breakIdeographic {
		return BreakAllowed
	}
	return BreakNo
}

// IsWhitespace reports whether r is trailing whitespace for width purposes.
func IsWhitespace(r rune) bool {
	return r == LineSeparator || unicode.IsSpace(r)
}

// LineBreaker splits a measured paragraph into lines.
// advances holds one advance per rune (see ClusterAdvances).
type LineBreaker struct {
	runes    []rune
	advances []float64
	breaks   []BreakOpportunity
}

// NewLineBreaker prepares runes with their advances for breaking.
func NewLineBreaker(runes []rune, advances []float64) *LineBreaker {
	return &LineBreaker{
		runes:    runes,
		advances: advances,
		breaks:   FindBreaks(runes, WrapWord),
	}
}

// Len returns the number of runes.
func (b *LineBreaker) Len() int { return len(b.runes) }

// canBreak reports whether a line may end before rune i in mode.
func (b *LineBreaker) canBreak(i int, mode WrapMode) bool {
	switch mode {
	case WrapNone:
		return false
	case WrapAnywhere:
		return classifyRune(b.runes[i-1]) != breakGlue && classifyRune(b.runes[i]) != breakGlue
	default:
		return b.breaks[i] == BreakAllowed
	}
}

// Next returns the end (exclusive rune index) of the line starting at
// start when wrapped to maxWidth in mode. Trailing whitespace stays on
// the line and never causes overflow. forced reports a break after a
// LineSeparator. A line always holds at least one rune.
func (b *LineBreaker) Next(start int, maxWidth float64, mode WrapMode) (end int, forced bool) {
	n := len(b.runes)
	if start >= n {
		return n, false
	}
	width := 0.0
	pending := 0.0
	lastBreak := -1
	for i := start; i < n; i++ {
		if i > start {
			if b.breaks[i] == BreakMandatory {
				return i, true
			}
			if b.canBreak(i, mode) {
				lastBreak = i
			}
		}
		if IsWhitespace(b.runes[i]) {
			pending += b.advances[i]
			continue
		}
		w := width + pending + b.advances[i]
		if w > maxWidth && i > start && mode != WrapNone {
			if lastBreak > start {
				return lastBreak, false
			}
			if mode == WrapAnywhere || mode == WrapWordOrAnywhere {
				return i, false
			}
			// a word wider than the line overflows up to the next opportunity
			for j := i + 1; j < n; j++ {
				if b.breaks[j] != BreakNo {
					return j, b.breaks[j] == BreakMandatory
				}
			}
			return n, false
		}
		width = w
		pending = 0
	}
	return n, false
}

// NaturalWidth returns the advance of runes [start, end) excluding
// trailing whitespace.
func (b *LineBreaker) NaturalWidth(start, end int) float64 {
	for end > start && IsWhitespace(b.runes[end-1]) {
		end--
	}
	w := 0.0
	for i := start; i < end; i++ {
		w += b.advances[i]
	}
	return w
}
