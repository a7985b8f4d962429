package graphics

import (
	"math"
	"testing"
)

func TestColorChannels(t *testing.T) {
	c := RGBA8(0x11, 0x22, 0x33, 0x44)
	if got := c.Channels(); got != [4]uint8{0x11, 0x22, 0x33, 0x44} {
		t.Errorf("Channels() = %v", got)
	}
	if ColorFromChannels(c.Channels()) != c {
		t.Error("ColorFromChannels should invert Channels")
	}
	if got := c.String(); got != "#11223344" {
		t.Errorf("String() = %q, want %q", got, "#11223344")
	}
}

func TestClampChannel(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-10, 0},
		{0, 0},
		{127.5, 127},
		{254.99, 254},
		{255, 255},
		{300, 255},
		{math.Inf(1), 255},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := ClampChannel(tt.in); got != tt.want {
			t.Errorf("ClampChannel(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#f00", RGB(0xff, 0, 0)},
		{"#00ff00", RGB(0, 0xff, 0)},
		{"#0000ff80", RGBA8(0, 0, 0xff, 0x80)},
		{"crimson", RGB(220, 20, 60)},
		{"  Navy ", RGB(0, 0, 128)},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "#12", "#zzzzzz", "not-a-color"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) expected error", in)
		}
	}
}

func TestRectHelpers(t *testing.T) {
	r := RectFromLTWH(10, 20, 30, 40)
	if r.Width() != 30 || r.Height() != 40 {
		t.Errorf("size = %vx%v, want 30x40", r.Width(), r.Height())
	}
	moved := r.MoveTo(Offset{X: 1, Y: 2})
	if !moved.Approx(RectFromLTWH(1, 2, 30, 40)) {
		t.Errorf("MoveTo = %+v", moved)
	}
	if !r.Contains(Offset{X: 10, Y: 20}) || r.Contains(Offset{X: 40, Y: 20}) {
		t.Error("Contains should include left/top and exclude right edge")
	}
}
