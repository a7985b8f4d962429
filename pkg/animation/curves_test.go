package animation

import (
	"math"
	"testing"
)

func TestCurveEndpoints(t *testing.T) {
	// Exponential and elastic curves only approach their endpoints.
	const tol = 1e-2
	for _, name := range CurveNames() {
		c, ok := CurveByName(name)
		if !ok {
			t.Fatalf("CurveByName(%q) not found", name)
		}
		if got := c(0); math.Abs(got) > tol {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := c(1); math.Abs(got-1) > tol {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
}

func TestCubicBezierMonotonic(t *testing.T) {
	for _, c := range []Curve{Ease, EaseIn, EaseOut, EaseInOut} {
		prev := c(0)
		for i := 1; i <= 100; i++ {
			v := c(float64(i) / 100)
			if v < prev-1e-9 {
				t.Fatalf("curve decreased at %d%%: %v < %v", i, v, prev)
			}
			prev = v
		}
	}
}

func TestCubicBezierLinearControlPoints(t *testing.T) {
	c := CubicBezier(0.25, 0.25, 0.75, 0.75)
	for _, x := range []float64{0.1, 0.33, 0.5, 0.8} {
		if got := c(x); math.Abs(got-x) > 1e-4 {
			t.Errorf("c(%v) = %v, want %v", x, got, x)
		}
	}
}

func TestEaseInOutSymmetric(t *testing.T) {
	if got := EaseInOutCubic(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("EaseInOutCubic(0.5) = %v", got)
	}
	if EaseIn(0.25) >= 0.25 {
		t.Errorf("EaseIn(0.25) = %v, want below linear", EaseIn(0.25))
	}
	if EaseOut(0.25) <= 0.25 {
		t.Errorf("EaseOut(0.25) = %v, want above linear", EaseOut(0.25))
	}
}

func TestCurveByName(t *testing.T) {
	if _, ok := CurveByName("  Ease-In-Out "); !ok {
		t.Error("lookup should ignore case and surrounding space")
	}
	if _, ok := CurveByName("wobble"); ok {
		t.Error("unknown curve found")
	}
	names := CurveNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("CurveNames not sorted: %v", names)
		}
	}
}
