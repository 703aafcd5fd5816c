package text

// Nominal weights. A face reports one so that bold text gets thicker
// decorations; the glyph shapes come from its source.
const (
	WeightNormal = 400
	WeightBold   = 700
)

// FaceOption configures FontSource.Face.
type FaceOption func(*faceConfig)

type faceConfig struct {
	direction Direction
	hinting   Hinting
	language  string
	weight    int
	italic    bool
}

func defaultFaceConfig() faceConfig {
	return faceConfig{language: "en", weight: WeightNormal}
}

// WithDirection sets the direction the face shapes in.
func WithDirection(d Direction) FaceOption {
	return func(c *faceConfig) { c.direction = d }
}

// WithHinting sets the hinting of advances and metrics.
func WithHinting(h Hinting) FaceOption {
	return func(c *faceConfig) { c.hinting = h }
}

// WithLanguage sets the BCP 47 language used by the HarfBuzz shaper.
func WithLanguage(lang string) FaceOption {
	return func(c *faceConfig) { c.language = lang }
}

// WithWeight sets the nominal weight.
func WithWeight(w int) FaceOption {
	return func(c *faceConfig) { c.weight = w }
}

// WithItalic marks the face as italic.
func WithItalic(italic bool) FaceOption {
	return func(c *faceConfig) { c.italic = italic }
}
