package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrClosedSource is returned when a closed FontSource is used for shaping.
	ErrClosedSource = errors.New("text: font source is closed")
)

// FontError reports a font that could not be parsed or used.
type FontError struct {
	Name   string
	Reason string
	Err    error
}

func (e *FontError) Error() string {
	msg := "text: font"
	if e.Name != "" {
		msg += " " + e.Name
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FontError) Unwrap() error { return e.Err }
