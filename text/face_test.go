package text

import (
	"math"
	"testing"
)

func TestFaceMetrics(t *testing.T) {
	face := testSource(t).Face(16)
	m := face.Metrics()

	if m.Ascent <= 0 {
		t.Errorf("Ascent = %v, want > 0", m.Ascent)
	}
	if m.Descent <= 0 {
		t.Errorf("Descent = %v, want > 0 (stored positive)", m.Descent)
	}
	if m.Height() != m.Ascent+m.Descent {
		t.Errorf("Height() = %v, want ascent+descent", m.Height())
	}
	if m.LineHeight() < m.Height() {
		t.Errorf("LineHeight() = %v, want >= Height()", m.LineHeight())
	}
}

func TestFaceMetricsScaleWithSize(t *testing.T) {
	source := testSource(t)
	small := source.Face(10).Metrics()
	large := source.Face(20).Metrics()
	if large.Ascent <= small.Ascent {
		t.Errorf("ascent at 20px (%v) should exceed ascent at 10px (%v)", large.Ascent, small.Ascent)
	}
}

func TestFaceAdvance(t *testing.T) {
	face := testSource(t).Face(16)

	if got := face.Advance(""); got != 0 {
		t.Errorf("Advance(\"\") = %v, want 0", got)
	}
	a := face.Advance("a")
	ab := face.Advance("ab")
	if a <= 0 || ab <= a {
		t.Errorf("Advance(a)=%v Advance(ab)=%v, want 0 < a < ab", a, ab)
	}
}

func TestFaceAppendGlyphsMatchesAdvance(t *testing.T) {
	face := testSource(t).Face(16)
	const s = "Hello, Wörld"

	glyphs := face.AppendGlyphs(nil, s)
	if len(glyphs) != len([]rune(s)) {
		t.Fatalf("got %d glyphs, want %d", len(glyphs), len([]rune(s)))
	}
	last := glyphs[len(glyphs)-1]
	if math.Abs(last.X+last.Advance-face.Advance(s)) > 1e-9 {
		t.Errorf("glyph extent %v != Advance %v", last.X+last.Advance, face.Advance(s))
	}
	for i, g := range glyphs {
		if g.Cluster != i {
			t.Errorf("glyph %d: Cluster = %d", i, g.Cluster)
		}
	}
}

func TestFaceGlyphsEarlyExit(t *testing.T) {
	face := testSource(t).Face(16)
	n := 0
	for range face.Glyphs("abcdef") {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d glyphs, want 2", n)
	}
}

func TestFaceHasGlyph(t *testing.T) {
	face := testSource(t).Face(16)
	if !face.HasGlyph('A') {
		t.Error("expected glyph for 'A'")
	}
	if face.HasGlyph('\U0001F600') {
		t.Error("Go Regular has no emoji glyph")
	}
}

func TestFaceLineThickness(t *testing.T) {
	source := testSource(t)
	tests := []struct {
		size   float64
		weight int
		want   float64
	}{
		{12, WeightNormal, 1},
		{16, WeightNormal, 1},
		{16, WeightBold, 2},
		{20, WeightBold, 2},
		{40, WeightNormal, 2},
		{100, WeightNormal, 5},
	}
	for _, tt := range tests {
		face := source.Face(tt.size, WithWeight(tt.weight))
		if got := face.LineThickness(); got != tt.want {
			t.Errorf("LineThickness(size=%v, weight=%d) = %v, want %v", tt.size, tt.weight, got, tt.want)
		}
		if face.UnderlinePosition() <= 0 {
			t.Errorf("UnderlinePosition(size=%v) = %v, want > 0", tt.size, face.UnderlinePosition())
		}
	}
}

func TestFaceEllipsis(t *testing.T) {
	face := testSource(t).Face(16)
	if face.Ellipsis() != string(EllipsisRune) {
		t.Errorf("Ellipsis() = %q, want U+2026", face.Ellipsis())
	}
	if face.EllipsisWidth() <= 0 {
		t.Error("EllipsisWidth() should be positive")
	}
}

func TestFaceKey(t *testing.T) {
	source := testSource(t)
	a := source.Face(16)
	b := source.Face(16)
	c := source.Face(17)
	d := source.Face(16, WithWeight(WeightBold))

	if a.Key() != b.Key() {
		t.Error("faces of same source and size should share a key")
	}
	if a.Key() == c.Key() || a.Key() == d.Key() {
		t.Error("size and weight must be part of the key")
	}
}

func TestFaceOptions(t *testing.T) {
	face := testSource(t).Face(12, WithDirection(DirectionRTL), WithItalic(true), WithHinting(HintingFull), WithLanguage("he"))
	if face.Language() != "he" {
		t.Errorf("Language() = %q", face.Language())
	}
	if testSource(t).Face(12).Language() != "en" {
		t.Error("default language should be en")
	}
	if face.Direction() != DirectionRTL {
		t.Errorf("Direction() = %v", face.Direction())
	}
	if !face.Italic() {
		t.Error("Italic() = false")
	}
	if face.Size() != 12 {
		t.Errorf("Size() = %v", face.Size())
	}
}
