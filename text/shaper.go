package text

// Shaper converts text to positioned glyphs. BuiltinShaper uses per-rune
// advances with pair kerning; GoTextShaper runs HarfBuzz. Wrap either in a
// CachingShaper when the same strings are shaped repeatedly.
type Shaper interface {
	// Shape converts text into positioned glyphs using the given face.
	// Glyphs are returned in visual order; Cluster indexes runes of text.
	Shape(text string, face Face) []ShapedGlyph
}

// ClusterAdvances folds shaped glyphs into one advance per rune of a text
// with n runes. A cluster's advance is credited to its first rune; the
// other runes of a ligature get zero. This is the granularity line
// breaking works at.
func ClusterAdvances(glyphs []ShapedGlyph, n int) []float64 {
	adv := make([]float64, n)
	for _, g := range glyphs {
		if g.Cluster >= 0 && g.Cluster < n {
			adv[g.Cluster] += g.XAdvance
		}
	}
	return adv
}
