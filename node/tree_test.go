package node

import (
	"slices"
	"testing"

	"github.com/gogpu/textnode"
)

func TestTreeInOrder(t *testing.T) {
	var tr tree
	for _, x := range []float64{50, 10, 70, 30, 10, 90, 0} {
		tr.insert(treeNode{rect: textnode.R(x, 0, 5, 5)})
	}
	var xs []float64
	for _, i := range tr.inOrder() {
		xs = append(xs, tr.nodes[i].rect.X)
	}
	want := []float64{0, 10, 10, 30, 50, 70, 90}
	if !slices.Equal(xs, want) {
		t.Errorf("in order x = %v, want %v", xs, want)
	}
}

func TestTreeEqualLeftKeepsInsertionOrder(t *testing.T) {
	var tr tree
	tr.insert(treeNode{rect: textnode.R(10, 0, 5, 5), color: textnode.RGB(1, 0, 0)})
	tr.insert(treeNode{rect: textnode.R(10, 0, 5, 5), color: textnode.RGB(0, 1, 0)})
	order := tr.inOrder()
	if tr.nodes[order[0]].color.R != 1 || tr.nodes[order[1]].color.G != 1 {
		t.Error("equal keys out of insertion order")
	}
}

func TestTreeReset(t *testing.T) {
	var tr tree
	tr.insert(treeNode{rect: textnode.R(1, 0, 1, 1)})
	tr.reset()
	if tr.len() != 0 || len(tr.inOrder()) != 0 {
		t.Error("reset tree not empty")
	}
	tr.insert(treeNode{rect: textnode.R(2, 0, 1, 1)})
	if got := tr.inOrder(); len(got) != 1 || got[0] != 0 {
		t.Errorf("inOrder after reset = %v", got)
	}
}
