// Package textnode lays out text items and turns the laid-out lines into
// renderable scene primitives.
//
// # Overview
//
// The module is split the way a text item is processed:
//
//   - text: font sources, faces, shaping and break opportunities
//   - layout: line breaking, eliding (left/middle/right), multi-length
//     fallback and font-size fitting for one paragraph
//   - markup: the lightweight styled-text subset (bold, links, images, ...)
//   - document: a read-only rich document model (frames, tables, lists)
//   - node: the glyph batch builder that merges glyph runs, selections and
//     decorations into a minimal set of draw batches
//   - scene: the renderable primitives (rectangles, clips, glyph batches, images)
//   - imagecache: image resources referenced by markup and documents
//   - item: a host text item with a pull-model EnsureLayout/Paint cycle
//
// # Quick Start
//
//	family := text.GoFamily()
//	t := item.New(family)
//	t.SetText("the quick brown fox jumped over the lazy dog")
//	t.SetWidth(100)
//	t.SetWrapMode(layout.WordWrap)
//	sc := t.Paint(item.DefaultOwner)
//	fmt.Println(t.LineCount(), sc.Len())
//
// # Logging
//
// All packages log through [Logger], which is silent until [SetLogger] is
// called.
//
// # Geometry
//
// [Rect], [Point], [Size] and [Color] are shared by every sub-package.
package textnode
