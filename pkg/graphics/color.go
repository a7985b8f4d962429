package graphics

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// maxByte is the maximum value of a color channel.
const maxByte = 255.0

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGBA8 constructs a Color from red, green, blue, alpha bytes (all 0-255).
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA8(r, g, b, 0xFF)
}

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

// Channels returns the color as [r, g, b, a] bytes.
func (c Color) Channels() [4]uint8 {
	return [4]uint8{c.R(), c.G(), c.B(), c.A()}
}

// ColorFromChannels is the inverse of Channels.
func ColorFromChannels(ch [4]uint8) Color {
	return RGBA8(ch[0], ch[1], ch[2], ch[3])
}

// WithAlpha8 returns a copy of the color with the given alpha byte (0-255).
func (c Color) WithAlpha8(a uint8) Color {
	return Color(uint32(a)<<24 | uint32(c)&0x00FFFFFF)
}

// RGBAF returns normalized color components (0.0 to 1.0).
func (c Color) RGBAF() (r, g, b, a float64) {
	return float64(c.R()) / maxByte,
		float64(c.G()) / maxByte,
		float64(c.B()) / maxByte,
		float64(c.A()) / maxByte
}

// String formats the color as #RRGGBBAA.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R(), c.G(), c.B(), c.A())
}

// ClampChannel floors v and clamps it to a valid channel value.
// NaN maps to 0.
func ClampChannel(v float64) uint8 {
	v = math.Floor(v)
	if v != v || v < 0 {
		return 0
	}
	if v > maxByte {
		return 0xFF
	}
	return uint8(v)
}

// Common colors.
const (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
	ColorRed         = Color(0xFFFF0000)
	ColorGreen       = Color(0xFF00FF00)
	ColorBlue        = Color(0xFF0000FF)
)

// ParseColor parses "#RGB", "#RRGGBB", "#RRGGBBAA" or an SVG 1.1 color
// keyword such as "crimson". Keywords are case-insensitive.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty color")
	}
	if s[0] != '#' {
		named, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return 0, fmt.Errorf("unknown color name %q", s)
		}
		return RGBA8(named.R, named.G, named.B, named.A), nil
	}

	hex := s[1:]
	switch len(hex) {
	case 3:
		var expanded strings.Builder
		for _, r := range hex {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		hex = expanded.String() + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return 0, fmt.Errorf("invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGBA8(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
