package scene

import (
	"image"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/text"
)

// TextStyle selects how a glyph batch is decorated with its style color.
type TextStyle uint8

const (
	// Normal draws glyphs only.
	Normal TextStyle = iota
	// Outline draws the style color around the glyphs.
	Outline
	// Raised draws the style color one pixel below the glyphs.
	Raised
	// Sunken draws the style color one pixel above the glyphs.
	Sunken
)

// String returns the style name.
func (s TextStyle) String() string {
	switch s {
	case Normal:
		return "Normal"
	case Outline:
		return "Outline"
	case Raised:
		return "Raised"
	case Sunken:
		return "Sunken"
	}
	return "Unknown"
}

// Node is one renderable primitive.
type Node interface {
	// Bounds returns the area the node may paint.
	Bounds() textnode.Rect
	node()
}

// RectNode fills a rectangle with a solid color.
type RectNode struct {
	Rect  textnode.Rect
	Color textnode.Color
}

// Bounds implements Node.
func (n *RectNode) Bounds() textnode.Rect { return n.Rect }
func (*RectNode) node()                   {}

// ImageNode draws an image scaled into a rectangle.
type ImageNode struct {
	Rect  textnode.Rect
	Image image.Image
}

// Bounds implements Node.
func (n *ImageNode) Bounds() textnode.Rect { return n.Rect }
func (*ImageNode) node()                   {}

// GlyphBatch is a set of glyphs of one face drawn in one color.
type GlyphBatch struct {
	Face text.Face

	// Glyphs and Positions are parallel. Positions are absolute baseline
	// origins.
	Glyphs    []text.GlyphID
	Positions []textnode.Point

	Color      textnode.Color
	Style      TextStyle
	StyleColor textnode.Color

	// Rect is the union of the glyph run rectangles.
	Rect textnode.Rect
}

// Len returns the number of glyphs.
func (b *GlyphBatch) Len() int { return len(b.Glyphs) }

// GlyphNode draws a glyph batch.
type GlyphNode struct {
	Batch GlyphBatch
}

// Bounds implements Node.
func (n *GlyphNode) Bounds() textnode.Rect { return n.Batch.Rect }
func (*GlyphNode) node()                   {}

// ClipNode clips its glyph children to Rect.
type ClipNode struct {
	Rect     textnode.Rect
	Children []*GlyphNode

	attached bool
}

// Bounds implements Node.
func (n *ClipNode) Bounds() textnode.Rect { return n.Rect }
func (*ClipNode) node()                   {}

// Scene is an ordered list of nodes.
type Scene struct {
	nodes   []Node
	bounds  textnode.Rect
	version uint64
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{nodes: make([]Node, 0, 16)}
}

// Reset clears the scene for reuse.
func (s *Scene) Reset() {
	clear(s.nodes)
	s.nodes = s.nodes[:0]
	s.bounds = textnode.Rect{}
	s.version++
}

// Version is incremented by every modification.
func (s *Scene) Version() uint64 { return s.version }

func (s *Scene) append(n Node) {
	s.nodes = append(s.nodes, n)
	s.bounds = s.bounds.Union(n.Bounds())
	s.version++
}

// AddRect appends a solid rectangle. Empty rectangles and fully
// transparent colors are skipped.
func (s *Scene) AddRect(r textnode.Rect, c textnode.Color) {
	if r.IsEmpty() || c.IsTransparent() {
		return
	}
	s.append(&RectNode{Rect: r, Color: c})
}

// AddImage appends an image drawn into r.
func (s *Scene) AddImage(r textnode.Rect, img image.Image) {
	if img == nil || r.IsEmpty() {
		return
	}
	s.append(&ImageNode{Rect: r, Image: img})
}

// NewClip returns a clip region that joins the scene with its first glyph
// batch.
func (s *Scene) NewClip(r textnode.Rect) *ClipNode {
	return &ClipNode{Rect: r}
}

// AddGlyphs appends a glyph batch, inside clip when it is not nil.
func (s *Scene) AddGlyphs(b GlyphBatch, clip *ClipNode) {
	if b.Len() == 0 {
		return
	}
	n := &GlyphNode{Batch: b}
	if clip == nil {
		s.append(n)
		return
	}
	if !clip.attached {
		clip.attached = true
		s.append(clip)
	}
	clip.Children = append(clip.Children, n)
	s.version++
}

// Nodes returns the top-level nodes in paint order.
func (s *Scene) Nodes() []Node { return s.nodes }

// Len returns the number of top-level nodes.
func (s *Scene) Len() int { return len(s.nodes) }

// Bounds returns the union of the top-level node bounds.
func (s *Scene) Bounds() textnode.Rect { return s.bounds }

// Walk calls fn for every node in paint order, descending into clips.
// The clip of a glyph node is passed along, nil at the top level. Walk
// stops when fn returns false.
func (s *Scene) Walk(fn func(n Node, clip *ClipNode) bool) {
	for _, n := range s.nodes {
		if !fn(n, nil) {
			return
		}
		c, ok := n.(*ClipNode)
		if !ok {
			continue
		}
		for _, g := range c.Children {
			if !fn(g, c) {
				return
			}
		}
	}
}

// Counts tallies the primitives of a scene.
type Counts struct {
	Rects, Images, Clips, Batches, Glyphs int
}

// Counts returns the number of primitives of each kind.
func (s *Scene) Counts() Counts {
	var c Counts
	s.Walk(func(n Node, _ *ClipNode) bool {
		switch n := n.(type) {
		case *RectNode:
			c.Rects++
		case *ImageNode:
			c.Images++
		case *ClipNode:
			c.Clips++
		case *GlyphNode:
			c.Batches++
			c.Glyphs += n.Batch.Len()
		}
		return true
	})
	return c
}
