// Package scene holds the renderable primitives produced for a text item:
// solid rectangles, images, clip regions and glyph batches.
//
// A Scene is a retained, ordered list of nodes. Order is paint order:
// later nodes draw over earlier ones. Glyph batches either sit at the top
// level or inside a ClipNode, which clips them to its rectangle.
//
//	sc := scene.New()
//	sc.AddRect(textnode.R(0, 0, 100, 20), textnode.RGB(1, 1, 0))
//	clip := sc.NewClip(textnode.R(0, 0, 50, 20))
//	sc.AddGlyphs(batch, clip)
//
// Raster renders a scene into an image for tests and previews.
package scene
