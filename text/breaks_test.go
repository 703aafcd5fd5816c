package text

import "testing"

func breakerFor(s string, adv float64) (*LineBreaker, []rune) {
	runes := []rune(s)
	advances := make([]float64, len(runes))
	for i, r := range runes {
		if r != LineSeparator {
			advances[i] = adv
		}
	}
	return NewLineBreaker(runes, advances), runes
}

// lines breaks s into lines of the given width using unit advances.
func lines(s string, width float64, mode WrapMode) []string {
	b, runes := breakerFor(s, 1)
	var out []string
	for start := 0; start < len(runes); {
		end, _ := b.Next(start, width, mode)
		out = append(out, string(runes[start:end]))
		start = end
	}
	return out
}

func TestLineBreakerWord(t *testing.T) {
	got := lines("the quick brown fox", 10, WrapWord)
	want := []string{"the quick ", "brown fox"}
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLineBreakerTrailingSpaceDoesNotOverflow(t *testing.T) {
	// "abc " is 4 wide but the space is trailing, so width 3 holds "abc ".
	got := lines("abc def", 3, WrapWord)
	if len(got) != 2 || got[0] != "abc " {
		t.Errorf("lines = %q", got)
	}
}

func TestLineBreakerLongWord(t *testing.T) {
	word := lines("abcdefgh ij", 4, WrapWord)
	if len(word) != 2 || word[0] != "abcdefgh " {
		t.Errorf("WrapWord lines = %q, want overflow of the long word", word)
	}
	fallback := lines("abcdefgh ij", 4, WrapWordOrAnywhere)
	if len(fallback) != 3 || fallback[0] != "abcd" {
		t.Errorf("WrapWordOrAnywhere lines = %q", fallback)
	}
	anywhere := lines("ab cd", 3, WrapAnywhere)
	if len(anywhere) != 2 || anywhere[0] != "ab " {
		t.Errorf("WrapAnywhere lines = %q", anywhere)
	}
}

func TestLineBreakerForced(t *testing.T) {
	b, runes := breakerFor("ab\u2028cd", 1)
	end, forced := b.Next(0, 100, WrapNone)
	if end != 3 || !forced {
		t.Errorf("Next = (%d, %v), want (3, true)", end, forced)
	}
	end, forced = b.Next(end, 100, WrapNone)
	if end != len(runes) || forced {
		t.Errorf("Next = (%d, %v), want (%d, false)", end, forced, len(runes))
	}
}

func TestLineBreakerNoWrap(t *testing.T) {
	got := lines("the quick brown fox", 3, WrapNone)
	if len(got) != 1 {
		t.Errorf("WrapNone produced %d lines", len(got))
	}
}

func TestLineBreakerNaturalWidth(t *testing.T) {
	b, _ := breakerFor("ab  ", 2)
	if got := b.NaturalWidth(0, 4); got != 4 {
		t.Errorf("NaturalWidth = %v, want 4 (trailing spaces excluded)", got)
	}
}

func TestFindBreaks(t *testing.T) {
	breaks := FindBreaks([]rune("a b(c)-d\u00a0e"), WrapWord)
	tests := []struct {
		i    int
		want BreakOpportunity
	}{
		{0, BreakNo},
		{1, BreakNo},      // before space
		{2, BreakAllowed}, // after space
		{4, BreakNo},      // after open paren
		{5, BreakNo},      // before close paren
		{7, BreakAllowed}, // after hyphen
		{8, BreakNo},      // before no-break space
		{9, BreakNo},      // after no-break space
	}
	for _, tt := range tests {
		if breaks[tt.i] != tt.want {
			t.Errorf("break before %d = %v, want %v", tt.i, breaks[tt.i], tt.want)
		}
	}
}

func TestIsCJKRune(t *testing.T) {
	if !isCJKRune('中') || isCJKRune('a') {
		t.Error("isCJKRune misclassified")
	}
	b := FindBreaks([]rune("中文"), WrapWord)
	if b[1] != BreakAllowed {
		t.Error("expected break between ideographs")
	}
}

func TestWrapModeString(t *testing.T) {
	tests := map[WrapMode]string{
		WrapNone:           "None",
		WrapWord:           "Word",
		WrapAnywhere:       "Anywhere",
		WrapWordOrAnywhere: "WordOrAnywhere",
		WrapMode(42):       unknownStr,
	}
	for m, want := range tests {
		if m.String() != want {
			t.Errorf("%d.String() = %q, want %q", m, m.String(), want)
		}
	}
}
