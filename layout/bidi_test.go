package layout

import (
	"testing"

	"github.com/gogpu/textnode/text"
)

func TestParagraphDirection(t *testing.T) {
	tests := []struct {
		in   string
		want text.Direction
	}{
		{"hello", text.DirectionLTR},
		{"123 שלום", text.DirectionRTL},
		{"مرحبا hello", text.DirectionRTL},
		{"", text.DirectionLTR},
		{"  42", text.DirectionLTR},
	}
	for _, tt := range tests {
		if got := ParagraphDirection(tt.in); got != tt.want {
			t.Errorf("ParagraphDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEffectiveHAlign(t *testing.T) {
	if got := EffectiveHAlign(AlignLeft, false, "שלום"); got != AlignRight {
		t.Errorf("implicit alignment of RTL text = %v, want Right", got)
	}
	if got := EffectiveHAlign(AlignLeft, true, "שלום"); got != AlignLeft {
		t.Errorf("explicit alignment = %v, want Left", got)
	}
	if got := EffectiveHAlign(AlignHCenter, false, "abc"); got != AlignHCenter {
		t.Errorf("LTR alignment = %v, want HCenter", got)
	}
}

func TestSplitVariantsAndNewlines(t *testing.T) {
	got := SplitVariants("long\u009cshort")
	if len(got) != 2 || got[0] != "long" || got[1] != "short" {
		t.Errorf("SplitVariants = %q", got)
	}
	if got := NormalizeNewlines("a\r\nb\nc"); got != "a\u2028b\u2028c" {
		t.Errorf("NormalizeNewlines = %q", got)
	}
}
