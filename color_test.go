package textnode

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"red", 0xffff0000, false},
		{" Blue ", 0xff0000ff, false},
		{"#0000ff", 0xff0000ff, false},
		{"#80ff0000", 0x80ff0000, false},
		{"#abc", 0xffaabbcc, false},
		{"transparent", 0x00000000, false},
		{"#zzzzzz", 0, true},
		{"#zz112233", 0, true},
		{"#80zz2233", 0, true},
		{"112233", 0xff112233, false},
		{"notacolor", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got.Key() != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %#08x", tt.in, got, tt.want)
		}
	}
}

func TestColorWithAlpha(t *testing.T) {
	c := Red.WithAlpha(0.5)
	if c.A != 0.5 || c.R != 1 {
		t.Errorf("WithAlpha = %+v", c)
	}
	if Red.A != 1 {
		t.Error("WithAlpha must not mutate the receiver")
	}
	if !Transparent.IsTransparent() || Red.IsTransparent() {
		t.Error("IsTransparent mismatch")
	}
}

func TestFromColorRoundTrip(t *testing.T) {
	c := RGBA2(0.2, 0.4, 0.6, 1)
	if got := FromColor(c.NRGBA()).Key(); got != c.Key() {
		t.Errorf("FromColor(NRGBA()) key = %#08x, want %#08x", got, c.Key())
	}
}
