package animation

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/go-drift/motion/pkg/graphics"
)

// Number is any built-in integer or floating-point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Lerp linearly interpolates between start and end. t outside [0, 1]
// extrapolates. The result is computed in float64.
func Lerp[T Number](start, end T, t float64) float64 {
	a := float64(start)
	return a + (float64(end)-a)*t
}

// LerpOffset interpolates both axes of an Offset.
func LerpOffset(a, b graphics.Offset, t float64) graphics.Offset {
	return graphics.Offset{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
	}
}

// LerpRect interpolates each edge of a Rect independently.
func LerpRect(a, b graphics.Rect, t float64) graphics.Rect {
	return graphics.Rect{
		Left:   Lerp(a.Left, b.Left, t),
		Top:    Lerp(a.Top, b.Top, t),
		Right:  Lerp(a.Right, b.Right, t),
		Bottom: Lerp(a.Bottom, b.Bottom, t),
	}
}

// LerpColor interpolates each of the four 0-255 channels independently.
// Channels are floored and clamped, so any t yields a valid color.
func LerpColor(a, b graphics.Color, t float64) graphics.Color {
	from, to := a.Channels(), b.Channels()
	var out [4]uint8
	for i := range out {
		out[i] = graphics.ClampChannel(Lerp(from[i], to[i], t))
	}
	return graphics.ColorFromChannels(out)
}

// quantizers turn an interpolated float64 back into a property value.

func clampOpacity(v float64) int {
	return int(graphics.ClampChannel(v))
}

func roundSize(v float64) int {
	if v != v || v <= 0 {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Round(v))
}

func floorZero(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	return v
}

func identity(v float64) float64 { return v }
