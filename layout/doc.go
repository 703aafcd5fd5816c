// Package layout breaks a paragraph of text into positioned lines.
//
// [Engine.Layout] handles wrapping, left/middle/right elision, maximum
// line counts, multi-length fallback strings and font-size fitting. Every
// call produces a fresh [Result]; nothing is shared between calls, so a
// Result can be kept by one owner and discarded on the next layout.
//
// The engine accumulates geometry per line. A [LineCallback] may move or
// resize each line while the pass runs; the [LineAccessor] it receives is
// only valid for the duration of the call.
package layout
