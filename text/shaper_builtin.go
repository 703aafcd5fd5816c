package text

// BuiltinShaper provides text shaping using golang.org/x/image/font.
// It supports Latin, Cyrillic, Greek, CJK, and other scripts that don't
// require complex text shaping (ligatures, contextual forms, etc.).
// Pair kerning from the font's kern table is applied.
//
// BuiltinShaper is stateless and safe for concurrent use.
type BuiltinShaper struct{}

// Shape implements the Shaper interface.
func (s *BuiltinShaper) Shape(text string, face Face) []ShapedGlyph {
	if text == "" || face == nil {
		return nil
	}

	glyphs := face.AppendGlyphs(nil, text)
	if len(glyphs) == 0 {
		return nil
	}

	result := make([]ShapedGlyph, len(glyphs))
	for i, g := range glyphs {
		adv := g.Advance
		// fold the kerning to the next glyph into this advance
		if i+1 < len(glyphs) {
			adv = glyphs[i+1].X - g.X
		}
		result[i] = ShapedGlyph{
			GID:      g.GID,
			Cluster:  g.Cluster,
			X:        g.X,
			XAdvance: adv,
		}
	}
	return result
}
