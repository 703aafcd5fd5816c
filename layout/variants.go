package layout

import (
	"strings"

	"github.com/gogpu/textnode/text"
)

// MultiLengthSeparator separates the variants of a multi-length string,
// longest first.
const MultiLengthSeparator = '\u009c'

// SplitVariants splits s into its multi-length variants. A string without
// a separator is its own single variant.
func SplitVariants(s string) []string {
	return strings.Split(s, string(MultiLengthSeparator))
}

// NormalizeNewlines converts "\r\n" and "\n" to text.LineSeparator.
func NormalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\n') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", string(text.LineSeparator))
}
