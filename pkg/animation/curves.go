package animation

import (
	"math"
	"sort"
	"strings"

	"github.com/fogleman/ease"
)

// Curve maps linear progress in [0, 1] to eased progress. Well-behaved
// curves satisfy curve(0) = 0 and curve(1) = 1. Overshooting curves such as
// [EaseOutBack] are allowed; transformers clamp whatever they produce.
type Curve func(float64) float64

// LinearCurve returns linear progress (no easing).
func LinearCurve(t float64) float64 {
	return t
}

// Ease is a standard cubic bezier curve for general-purpose easing.
// Equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates. Equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates. Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut starts and ends slowly. It is the default curve of every
// [Animation].
var EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)

// Penner curves.
var (
	EaseInQuad     Curve = ease.InQuad
	EaseOutQuad    Curve = ease.OutQuad
	EaseInOutQuad  Curve = ease.InOutQuad
	EaseInCubic    Curve = ease.InCubic
	EaseOutCubic   Curve = ease.OutCubic
	EaseInOutCubic Curve = ease.InOutCubic
	EaseInSine     Curve = ease.InSine
	EaseOutSine    Curve = ease.OutSine
	EaseInOutSine  Curve = ease.InOutSine
	EaseInExpo     Curve = ease.InExpo
	EaseOutExpo    Curve = ease.OutExpo
	EaseOutBounce  Curve = ease.OutBounce
	EaseOutElastic Curve = ease.OutElastic
	EaseOutBack    Curve = ease.OutBack
)

var namedCurves = map[string]Curve{
	"linear":       LinearCurve,
	"ease":         Ease,
	"ease-in":      EaseIn,
	"ease-out":     EaseOut,
	"ease-in-out":  EaseInOut,
	"in-quad":      EaseInQuad,
	"out-quad":     EaseOutQuad,
	"in-out-quad":  EaseInOutQuad,
	"in-cubic":     EaseInCubic,
	"out-cubic":    EaseOutCubic,
	"in-out-cubic": EaseInOutCubic,
	"in-sine":      EaseInSine,
	"out-sine":     EaseOutSine,
	"in-out-sine":  EaseInOutSine,
	"in-expo":      EaseInExpo,
	"out-expo":     EaseOutExpo,
	"out-bounce":   EaseOutBounce,
	"out-elastic":  EaseOutElastic,
	"out-back":     EaseOutBack,
}

// CurveByName looks up a curve by its scene-file name, e.g. "ease-in-out"
// or "out-bounce". Names are case-insensitive.
func CurveByName(name string) (Curve, bool) {
	c, ok := namedCurves[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// CurveNames returns every registered curve name in sorted order.
func CurveNames() []string {
	names := make([]string, 0, len(namedCurves))
	for name := range namedCurves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CubicBezier returns a cubic-bezier easing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the curve.
// The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return bezier(y1, y2, solveBezierX(x1, x2, t))
	}
}

// solveBezierX finds the curve parameter whose x coordinate equals x.
func solveBezierX(x1, x2, x float64) float64 {
	const tolerance = 1e-7

	u := x
	// Newton-Raphson converges quickly for most values.
	for range 8 {
		dx := bezier(x1, x2, u) - x
		if math.Abs(dx) < tolerance {
			return clampUnit(u)
		}
		slope := bezierSlope(x1, x2, u)
		if math.Abs(slope) < tolerance {
			break
		}
		u -= dx / slope
	}

	// Bisection keeps the answer inside [0,1] when Newton stalls.
	lo, hi := 0.0, 1.0
	u = clampUnit(u)
	for range 12 {
		dx := bezier(x1, x2, u) - x
		if math.Abs(dx) < tolerance {
			break
		}
		if dx > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) * 0.5
	}
	return u
}

func bezier(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func bezierSlope(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
