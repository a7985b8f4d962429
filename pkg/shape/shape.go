// Package shape defines the animatable-property boundary between motion and
// the objects it animates.
//
// Animations never own a shape. They only read and write the properties a
// shape exposes through the small capability interfaces below, and use the
// shape's [Host] to reach the surface that draws it. [Box] and [Label] are
// reference implementations that satisfy most capabilities.
package shape

import "github.com/go-drift/motion/pkg/graphics"

// Host is the rendering surface a shape is attached to.
type Host interface {
	// Post schedules fn on the host's serialized event context.
	Post(fn func())
	// Repaint requests a redraw. Calls may be coalesced.
	Repaint()
	// Remove detaches s from the host.
	Remove(s Shape)
	// SetAutoRepaintSuppressed disables (true) or restores (false) the host's
	// own periodic repaint while an external loop owns the repaint cadence.
	SetAutoRepaintSuppressed(suppressed bool)
}

// Shape is anything that can be animated.
type Shape interface {
	// Host returns the owning surface, or nil when the shape is detached.
	Host() Host
}

// Positioned shapes expose a top-left position.
type Positioned interface {
	Shape
	Position() graphics.Offset
	SetPosition(graphics.Offset)
}

// Bounded shapes expose their bounding rectangle.
type Bounded interface {
	Shape
	Bounds() graphics.Rect
	SetBounds(graphics.Rect)
}

// FillColored shapes expose a fill color.
type FillColored interface {
	Shape
	FillColor() graphics.Color
	SetFillColor(graphics.Color)
}

// StrokeColored shapes expose an outline color.
type StrokeColored interface {
	Shape
	StrokeColor() graphics.Color
	SetStrokeColor(graphics.Color)
}

// Opaque shapes expose an opacity in the range 0 (transparent) to 255.
type Opaque interface {
	Shape
	Opacity() int
	SetOpacity(int)
}

// Rotatable shapes expose a rotation in degrees. Values beyond a full turn
// are meaningful.
type Rotatable interface {
	Shape
	Rotation() float64
	SetRotation(float64)
}

// Stroked shapes expose a non-negative outline width.
type Stroked interface {
	Shape
	StrokeWidth() float64
	SetStrokeWidth(float64)
}

// TextSized shapes expose a non-negative integral text size.
type TextSized interface {
	Shape
	TextSize() int
	SetTextSize(int)
}

// MaxOpacity is the fully opaque value of [Opaque].
const MaxOpacity = 255

// Attachable shapes record the surface they were added to. Surfaces call
// Attach when a shape is added and Detach when it is removed.
type Attachable interface {
	Shape
	Attach(Host)
	Detach()
}
