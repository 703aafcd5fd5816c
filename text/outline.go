package text

// OutlineOp is the kind of an outline segment.
type OutlineOp uint8

const (
	// OutlineMoveTo starts a new contour at Points[0].
	OutlineMoveTo OutlineOp = iota
	// OutlineLineTo draws a line to Points[0].
	OutlineLineTo
	// OutlineQuadTo draws a quadratic curve through Points[0] to Points[1].
	OutlineQuadTo
	// OutlineCubeTo draws a cubic curve through Points[0] and Points[1] to Points[2].
	OutlineCubeTo
)

// String returns the string representation of the op.
func (op OutlineOp) String() string {
	switch op {
	case OutlineMoveTo:
		return "MoveTo"
	case OutlineLineTo:
		return "LineTo"
	case OutlineQuadTo:
		return "QuadTo"
	case OutlineCubeTo:
		return "CubeTo"
	default:
		return unknownStr
	}
}

// OutlinePoint is a point of a glyph outline in pixels.
type OutlinePoint struct {
	X, Y float64
}

// OutlineSegment is one drawing command of a glyph contour.
type OutlineSegment struct {
	Op     OutlineOp
	Points [3]OutlinePoint
}

// GlyphOutline returns the contours of gid in face, scaled to the face
// size. It returns ErrClosedSource when the face's source is closed.
func GlyphOutline(face Face, gid GlyphID) ([]OutlineSegment, error) {
	src := face.Source()
	if src == nil {
		return nil, ErrClosedSource
	}
	pf := src.Parsed()
	if pf == nil {
		return nil, ErrClosedSource
	}
	return pf.Outline(uint16(gid), face.Size())
}
