package node

import (
	"image"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/text"
)

// decoration is a set of line decorations carried by a node.
type decoration uint8

const (
	decoUnderline decoration = 1 << iota
	decoOverline
	decoStrikeout
	decoBackground
)

// clip is a selection clip region of one line. rect is final once the
// line is processed.
type clip struct {
	rect textnode.Rect
	used bool
}

// treeNode is a glyph run or an image of the current line.
type treeNode struct {
	face      text.Face
	glyphs    []text.GlyphID
	positions []textnode.Point

	image image.Image

	rect        textnode.Rect
	selected    bool
	decorations decoration
	color       textnode.Color
	background  textnode.Color
	clip        *clip

	left, right int
}

// tree is an unbalanced binary search tree over the nodes of one line,
// ordered by the left edge of their rectangles. Nodes live in one slice
// and link to their children by index.
type tree struct {
	nodes []treeNode
	stack []int
}

func (t *tree) len() int { return len(t.nodes) }

func (t *tree) reset() {
	clear(t.nodes)
	t.nodes = t.nodes[:0]
}

// insert adds n. Nodes with equal left edges keep insertion order.
func (t *tree) insert(n treeNode) {
	n.left, n.right = -1, -1
	idx := len(t.nodes)
	t.nodes = append(t.nodes, n)
	if idx == 0 {
		return
	}
	x := n.rect.Left()
	for cur := 0; ; {
		node := &t.nodes[cur]
		if x < node.rect.Left() {
			if node.left < 0 {
				node.left = idx
				return
			}
			cur = node.left
		} else {
			if node.right < 0 {
				node.right = idx
				return
			}
			cur = node.right
		}
	}
}

// inOrder returns the node indexes sorted left to right.
func (t *tree) inOrder() []int {
	out := make([]int, 0, len(t.nodes))
	if len(t.nodes) == 0 {
		return out
	}
	stack := t.stack[:0]
	for cur := 0; cur >= 0 || len(stack) > 0; {
		for cur >= 0 {
			stack = append(stack, cur)
			cur = t.nodes[cur].left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, cur)
		cur = t.nodes[cur].right
	}
	t.stack = stack
	return out
}
