package text

import "testing"

func TestGlyphOutline(t *testing.T) {
	face := testSource(t).Face(32)
	var gid GlyphID
	for g := range face.Glyphs("O") {
		gid = g.GID
	}
	segs, err := GlyphOutline(face, gid)
	if err != nil {
		t.Fatalf("GlyphOutline: %v", err)
	}
	if len(segs) == 0 {
		t.Fatal("no segments for O")
	}
	if segs[0].Op != OutlineMoveTo {
		t.Errorf("first op = %v, want MoveTo", segs[0].Op)
	}
	// y down: the top of the O lies above the baseline.
	minY := 0.0
	for _, s := range segs {
		for _, p := range s.Points {
			minY = min(minY, p.Y)
		}
	}
	if minY > -10 {
		t.Errorf("min y = %v, want well above baseline at 32px", minY)
	}
}

func TestGlyphOutlineSpace(t *testing.T) {
	face := testSource(t).Face(16)
	var gid GlyphID
	for g := range face.Glyphs(" ") {
		gid = g.GID
	}
	segs, err := GlyphOutline(face, gid)
	if err != nil {
		t.Fatalf("GlyphOutline: %v", err)
	}
	if len(segs) != 0 {
		t.Errorf("space has %d segments, want 0", len(segs))
	}
}
