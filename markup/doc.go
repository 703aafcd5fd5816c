// Package markup parses the lightweight styled-text subset of a text item
// into plain text, format ranges and inline image tags.
//
// Supported tags: b, strong, i, em, u, s, strike, del, br, p, h1 to h6,
// font (color, size), a (href), img (src, width, height, align), ol, ul,
// li, pre, span (style color and background-color), sup and sub. Standard
// HTML entities are decoded. Unknown tags are ignored and malformed markup
// keeps whatever was parsed before the error.
package markup
