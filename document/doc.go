// Package document is a small rich text document model: a tree of frames
// holding paragraphs (blocks), tables and lists.
//
// Documents are built directly or parsed from HTML with ParseHTML, then
// laid out with Layout, which records the geometry of every block, frame
// and table cell. A laid out document is read-only input to the node
// builder.
//
// Every block occupies Length runes of the document position space, its
// text plus one separator, so a selection over the document is a pair of
// positions.
package document
