package text

const unknownStr = "Unknown"

// Direction is the writing direction a face shapes in.
type Direction int

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

var directionNames = [...]string{DirectionLTR: "LTR", DirectionRTL: "RTL"}

func (d Direction) String() string { return enumName(directionNames[:], int(d)) }

// Hinting is the grid fitting applied to advances and metrics. Hinted
// advances no longer scale linearly with the font size, which the
// font-size fit search assumes.
type Hinting int

const (
	HintingNone Hinting = iota
	HintingVertical
	HintingFull
)

var hintingNames = [...]string{HintingNone: "None", HintingVertical: "Vertical", HintingFull: "Full"}

func (h Hinting) String() string { return enumName(hintingNames[:], int(h)) }

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return unknownStr
	}
	return names[i]
}
