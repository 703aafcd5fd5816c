package item

import (
	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/scene"
)

// Paint returns the scene of the item for owner. A layout produced for
// another owner is not reused: the text is laid out again first. The
// returned scene is owned by the item and rebuilt by later calls.
func (t *Text) Paint(owner Owner) *scene.Scene {
	if owner.IsZero() {
		owner = DefaultOwner
	}
	switch {
	case t.dirty&dirtyLayout != 0 || !t.metricsValid():
		t.layoutFor(owner)
	case t.owner != owner:
		textnode.Logger().Debug("item: relayout for a new owner")
		t.layoutFor(owner)
	}
	if t.dirty&dirtyPaint == 0 {
		return t.sc
	}
	t.buildScene()
	t.dirty &^= dirtyPaint
	return t.sc
}

func (t *Text) buildScene() {
	t.sc.Reset()
	e := t.nodes
	e.Reset()
	e.TextColor = t.color
	e.AnchorColor = t.linkColor
	e.SelectedTextColor = t.selectedTextColor
	e.SelectionColor = t.selectionColor
	e.Images = t.image
	e.Position = textnode.Pt(t.padding.Left, t.padding.Top+t.metrics.vOffset)

	if t.rich {
		e.AddTextDocument(t.doc, t.selStart, t.selEnd)
	} else if res := t.result; res != nil {
		e.AddTextLayout(res, t.selStart, t.selEnd, 0, -1)
		for _, img := range res.Images {
			pos := -1
			if img.Tag >= 0 && img.Tag < len(t.tags) {
				pos = t.tags[img.Tag].Position
			}
			selected := pos >= t.selStart && pos < t.selEnd
			e.AddImage(img.Rect, t.image(img.URL), selected)
		}
		e.AddElidedLine(res)
	}
	e.AddToScene(t.sc, t.style, t.styleColor)
}
