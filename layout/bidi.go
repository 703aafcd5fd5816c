package layout

import (
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/textnode/text"
)

// ParagraphDirection returns the direction of the first strong character
// of s, left-to-right when there is none.
func ParagraphDirection(s string) text.Direction {
	for _, r := range s {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L:
			return text.DirectionLTR
		case bidi.R, bidi.AL:
			return text.DirectionRTL
		}
	}
	return text.DirectionLTR
}

// EffectiveHAlign resolves the alignment used for s. An alignment that
// was not set explicitly follows the paragraph direction.
func EffectiveHAlign(align HAlign, explicit bool, s string) HAlign {
	if !explicit && ParagraphDirection(s) == text.DirectionRTL {
		return AlignRight
	}
	return align
}
