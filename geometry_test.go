package textnode

import "testing"

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"null left", Rect{}, R(1, 2, 3, 4), R(1, 2, 3, 4)},
		{"null right", R(1, 2, 3, 4), Rect{}, R(1, 2, 3, 4)},
		{"disjoint", R(0, 0, 10, 10), R(20, 5, 5, 10), R(0, 0, 25, 15)},
		{"contained", R(0, 0, 10, 10), R(2, 2, 2, 2), R(0, 0, 10, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	got := R(0, 0, 10, 10).Intersect(R(5, 5, 10, 10))
	if got != R(5, 5, 5, 5) {
		t.Errorf("Intersect = %+v", got)
	}
	if got := R(0, 0, 1, 1).Intersect(R(2, 2, 1, 1)); got != (Rect{}) {
		t.Errorf("disjoint Intersect = %+v, want zero", got)
	}
}

func TestRectEdges(t *testing.T) {
	r := R(10, 20, 30, 40)
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("edges = %v,%v", r.Right(), r.Bottom())
	}
	if got := r.SetRight(25); got.Width != 15 {
		t.Errorf("SetRight width = %v", got.Width)
	}
	if got := r.SetLeft(20); got.X != 20 || got.Right() != 40 {
		t.Errorf("SetLeft = %+v", got)
	}
	if got := r.Adjusted(1, 1, -1, -1); got != R(11, 21, 28, 38) {
		t.Errorf("Adjusted = %+v", got)
	}
	if !r.Contains(Pt(10, 20)) || r.Contains(Pt(9, 20)) {
		t.Error("Contains mismatch")
	}
	if !(Rect{}).IsNull() || R(0, 0, 0, 5).IsNull() {
		t.Error("IsNull mismatch")
	}
}
