package layout

import (
	"testing"

	"github.com/gogpu/textnode"
)

func TestMergeFormatsLaterWins(t *testing.T) {
	red := textnode.RGB(1, 0, 0)
	blue := textnode.RGB(0, 0, 1)
	got := MergeFormats([]FormatRange{
		{Start: 0, Length: 10, Format: Format{Set: PropForeground | PropBold, Foreground: red, Bold: true}},
		{Start: 4, Length: 2, Format: Format{Set: PropForeground, Foreground: blue}},
	})
	if len(got) != 3 {
		t.Fatalf("got %d ranges, want 3: %+v", len(got), got)
	}
	mid := got[1]
	if mid.Start != 4 || mid.Length != 2 {
		t.Errorf("middle range = [%d,+%d), want [4,+2)", mid.Start, mid.Length)
	}
	if mid.Format.Foreground != blue || !mid.Format.Bold {
		t.Errorf("middle format = %+v, want blue and still bold", mid.Format)
	}
	if got[0].Format.Foreground != red || got[2].Format.Foreground != red {
		t.Error("outer ranges lost their color")
	}
}

func TestMergeFormatsGapsAndCoalesce(t *testing.T) {
	bold := Format{Set: PropBold, Bold: true}
	got := MergeFormats([]FormatRange{
		{Start: 0, Length: 2, Format: bold},
		{Start: 2, Length: 2, Format: bold},
		{Start: 6, Length: 1, Format: bold},
		{Start: 9, Length: 0, Format: bold},
	})
	want := []FormatRange{{Start: 0, Length: 4, Format: bold}, {Start: 6, Length: 1, Format: bold}}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("range %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if f := formatAt(got, 5); f.Set != 0 {
		t.Errorf("formatAt(gap) = %+v, want zero", f)
	}
	if f := formatAt(got, 6); !f.Bold {
		t.Error("formatAt(6) not bold")
	}
}

func TestBaselineShift(t *testing.T) {
	if got := BaselineShift(AlignSuperScript, 12); got != -6 {
		t.Errorf("superscript shift = %v, want -6", got)
	}
	if got := BaselineShift(AlignSubScript, 12); got != 2 {
		t.Errorf("subscript shift = %v, want 2", got)
	}
	if got := BaselineShift(AlignNormal, 12); got != 0 {
		t.Errorf("normal shift = %v, want 0", got)
	}
}
