package scene

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/text"
)

// Rasterizer paints scenes into raster images on the CPU. It is meant for
// previews and tests, not as a production renderer.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// Scaler resamples image nodes. Nil selects draw.ApproxBiLinear.
	Scaler draw.Scaler

	z        vector.Rasterizer
	outlines map[outlineKey][]text.OutlineSegment
}

type outlineKey struct {
	face text.FaceKey
	gid  text.GlyphID
}

// Raster paints s into a new w by h RGBA image with a transparent
// background.
func Raster(s *Scene, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	var r Rasterizer
	r.Draw(dst, s)
	return dst
}

// Draw paints s over dst.
func (r *Rasterizer) Draw(dst draw.Image, s *Scene) {
	s.Walk(func(n Node, clip *ClipNode) bool {
		switch n := n.(type) {
		case *RectNode:
			fillRect(dst, n.Rect, n.Color)
		case *ImageNode:
			r.drawImage(dst, n)
		case *GlyphNode:
			area := n.Batch.Rect
			if clip != nil {
				area = clip.Rect
			}
			r.drawBatch(dst, &n.Batch, area)
		}
		return true
	})
}

func pixelRect(r textnode.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left())), int(math.Floor(r.Top())),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}

func fillRect(dst draw.Image, r textnode.Rect, c textnode.Color) {
	area := image.Rect(
		int(math.Round(r.Left())), int(math.Round(r.Top())),
		int(math.Round(r.Right())), int(math.Round(r.Bottom())),
	).Intersect(dst.Bounds())
	if area.Empty() {
		return
	}
	draw.Draw(dst, area, image.NewUniform(c.NRGBA()), image.Point{}, draw.Over)
}

func (r *Rasterizer) drawImage(dst draw.Image, n *ImageNode) {
	scaler := r.Scaler
	if scaler == nil {
		scaler = draw.ApproxBiLinear
	}
	area := pixelRect(n.Rect)
	if area.Intersect(dst.Bounds()).Empty() {
		return
	}
	scaler.Scale(dst, area, n.Image, n.Image.Bounds(), draw.Over, nil)
}

// styleOffsets returns the pixel offsets at which the style color is
// painted below the glyphs.
func styleOffsets(s TextStyle) []textnode.Point {
	switch s {
	case Outline:
		return []textnode.Point{{X: -1}, {X: 1}, {Y: -1}, {Y: 1}}
	case Raised:
		return []textnode.Point{{Y: 1}}
	case Sunken:
		return []textnode.Point{{Y: -1}}
	}
	return nil
}

func (r *Rasterizer) drawBatch(dst draw.Image, b *GlyphBatch, area textnode.Rect) {
	if b.Style != Normal {
		// Styled glyphs may paint one pixel outside their run.
		area = area.Adjusted(-1, -1, 1, 1)
	}
	region := pixelRect(area).Intersect(dst.Bounds())
	if region.Empty() || b.Face == nil {
		return
	}
	for _, off := range styleOffsets(b.Style) {
		r.fillGlyphs(dst, b, region, off, b.StyleColor)
	}
	r.fillGlyphs(dst, b, region, textnode.Point{}, b.Color)
}

func (r *Rasterizer) fillGlyphs(dst draw.Image, b *GlyphBatch, region image.Rectangle, off textnode.Point, c textnode.Color) {
	if c.IsTransparent() {
		return
	}
	r.z.Reset(region.Dx(), region.Dy())
	ox := off.X - float64(region.Min.X)
	oy := off.Y - float64(region.Min.Y)
	drawn := false
	for i, gid := range b.Glyphs {
		segs := r.outline(b.Face, gid)
		if len(segs) == 0 {
			continue
		}
		p := b.Positions[i]
		r.addOutline(segs, p.X+ox, p.Y+oy)
		drawn = true
	}
	if !drawn {
		return
	}
	r.z.Draw(dst, region, image.NewUniform(c.NRGBA()), image.Point{})
}

func (r *Rasterizer) addOutline(segs []text.OutlineSegment, dx, dy float64) {
	pt := func(p text.OutlinePoint) (float32, float32) {
		return float32(p.X + dx), float32(p.Y + dy)
	}
	open := false
	for _, s := range segs {
		switch s.Op {
		case text.OutlineMoveTo:
			if open {
				r.z.ClosePath()
			}
			r.z.MoveTo(pt(s.Points[0]))
			open = true
		case text.OutlineLineTo:
			r.z.LineTo(pt(s.Points[0]))
		case text.OutlineQuadTo:
			bx, by := pt(s.Points[0])
			cx, cy := pt(s.Points[1])
			r.z.QuadTo(bx, by, cx, cy)
		case text.OutlineCubeTo:
			bx, by := pt(s.Points[0])
			cx, cy := pt(s.Points[1])
			ex, ey := pt(s.Points[2])
			r.z.CubeTo(bx, by, cx, cy, ex, ey)
		}
	}
	if open {
		r.z.ClosePath()
	}
}

func (r *Rasterizer) outline(face text.Face, gid text.GlyphID) []text.OutlineSegment {
	key := outlineKey{face: face.Key(), gid: gid}
	if segs, ok := r.outlines[key]; ok {
		return segs
	}
	segs, err := text.GlyphOutline(face, gid)
	if err != nil {
		textnode.Logger().Debug("scene: glyph outline", "gid", gid, "err", err)
	}
	if r.outlines == nil {
		r.outlines = make(map[outlineKey][]text.OutlineSegment)
	}
	r.outlines[key] = segs
	return segs
}
