package node

import (
	"slices"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/scene"
	"github.com/gogpu/textnode/text"
)

// batchKey groups nodes that render identically.
type batchKey struct {
	face     text.FaceKey
	clip     *clip
	color    textnode.Color
	selected bool
}

// merge groups the processed glyph nodes by face, clip, color and
// selection. The first node of a group absorbs the glyphs of the others.
// Empty runs are dropped and image nodes are returned unmerged.
func (e *Engine) merge() (glyphs, images []treeNode) {
	index := make(map[batchKey]int)
	for i := range e.processed {
		n := &e.processed[i]
		if n.image != nil {
			images = append(images, *n)
			continue
		}
		if len(n.glyphs) == 0 || n.face == nil {
			continue
		}
		k := batchKey{face: n.face.Key(), clip: n.clip, color: n.color, selected: n.selected}
		if j, ok := index[k]; ok {
			p := &glyphs[j]
			p.glyphs = append(p.glyphs, n.glyphs...)
			p.positions = append(p.positions, n.positions...)
			p.rect = p.rect.Union(n.rect)
			continue
		}
		index[k] = len(glyphs)
		primary := *n
		primary.glyphs = slices.Clone(n.glyphs)
		primary.positions = slices.Clone(n.positions)
		glyphs = append(glyphs, primary)
	}
	return glyphs, images
}

// selectedImageAlpha is the opacity of the highlight over a selected image.
const selectedImageAlpha = 128.0 / 255

// AddToScene finishes the current line and appends everything collected
// to sc. Glyph batches get style and styleColor.
func (e *Engine) AddToScene(sc *scene.Scene, style scene.TextStyle, styleColor textnode.Color) {
	e.endLine()
	glyphs, images := e.merge()

	for _, b := range e.backgrounds {
		sc.AddRect(b.rect, b.color)
	}
	for _, r := range e.selection {
		sc.AddRect(r, e.SelectionColor)
	}
	for _, d := range e.decorations {
		c := d.color
		if d.selected {
			c = e.SelectedTextColor
		}
		sc.AddRect(d.rect, c)
	}
	for _, n := range images {
		sc.AddImage(n.rect, n.image)
		if n.selected {
			sc.AddRect(n.rect, e.SelectionColor.WithAlpha(selectedImageAlpha))
		}
	}

	clips := make(map[*clip]*scene.ClipNode)
	for _, n := range glyphs {
		b := scene.GlyphBatch{
			Face:       n.face,
			Glyphs:     n.glyphs,
			Positions:  n.positions,
			Color:      n.color,
			Style:      style,
			StyleColor: styleColor,
			Rect:       n.rect,
		}
		var cn *scene.ClipNode
		if n.selected {
			b.Color = e.SelectedTextColor
			if n.clip != nil {
				cn = clips[n.clip]
				if cn == nil {
					cn = sc.NewClip(n.clip.rect)
					clips[n.clip] = cn
				}
			}
		}
		sc.AddGlyphs(b, cn)
	}

	textnode.Logger().Debug("node: scene built",
		"batches", len(glyphs),
		"images", len(images),
		"selection", len(e.selection),
		"decorations", len(e.decorations))
}
