// Package item is a host text item built on the layout and node packages.
//
// A Text collects its properties through setters that only mark it dirty.
// Work happens when the host pulls: EnsureLayout lays the text out if
// needed and the queries (LineCount, Truncated, ImplicitWidth, ...) call it
// implicitly. Paint returns the scene for a render owner.
//
// A layout result belongs to the Owner it was produced for. Painting for a
// different owner lays the text out again synchronously instead of sharing
// the result.
package item
