// Package node turns laid out text into scene primitives.
//
// An Engine collects glyph runs line by line, splits them at the
// selection, tracks decorations and selection highlights, and finally
// merges runs that render identically into as few glyph batches as
// possible:
//
//	e := node.NewEngine()
//	e.SelectionColor = textnode.RGB(0.2, 0.4, 0.9)
//	e.AddTextLayout(res, selStart, selEnd, 0, -1)
//	e.AddToScene(sc, scene.Normal, textnode.Color{})
//
// Primitives are emitted in a fixed order: backgrounds, selection
// highlights, decorations, images, then glyph batches, so that text is
// never covered.
package node
