package shape

import "github.com/go-drift/motion/pkg/graphics"

// Box is a filled, stroked rectangle.
type Box struct {
	base
	bounds      graphics.Rect
	fill        graphics.Color
	stroke      graphics.Color
	strokeWidth float64
}

// NewBox returns an opaque box with the given bounds and fill.
func NewBox(bounds graphics.Rect, fill graphics.Color) *Box {
	b := &Box{bounds: bounds, fill: fill, stroke: graphics.ColorTransparent}
	b.opacity = MaxOpacity
	return b
}

// Position returns the top-left corner of the bounds.
func (b *Box) Position() graphics.Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bounds.Origin()
}

// SetPosition moves the box, keeping its size.
func (b *Box) SetPosition(o graphics.Offset) {
	b.mu.Lock()
	b.bounds = b.bounds.MoveTo(o)
	b.mu.Unlock()
}

// Bounds returns the bounding rectangle.
func (b *Box) Bounds() graphics.Rect {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bounds
}

// SetBounds replaces the bounding rectangle.
func (b *Box) SetBounds(r graphics.Rect) {
	b.mu.Lock()
	b.bounds = r
	b.mu.Unlock()
}

// FillColor returns the fill color.
func (b *Box) FillColor() graphics.Color {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fill
}

// SetFillColor sets the fill color.
func (b *Box) SetFillColor(c graphics.Color) {
	b.mu.Lock()
	b.fill = c
	b.mu.Unlock()
}

// StrokeColor returns the outline color.
func (b *Box) StrokeColor() graphics.Color {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stroke
}

// SetStrokeColor sets the outline color.
func (b *Box) SetStrokeColor(c graphics.Color) {
	b.mu.Lock()
	b.stroke = c
	b.mu.Unlock()
}

// StrokeWidth returns the outline width.
func (b *Box) StrokeWidth() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.strokeWidth
}

// SetStrokeWidth sets the outline width. Negative widths become zero.
func (b *Box) SetStrokeWidth(w float64) {
	if w < 0 {
		w = 0
	}
	b.mu.Lock()
	b.strokeWidth = w
	b.mu.Unlock()
}

// Snapshot returns a consistent copy of every property for drawing.
func (b *Box) Snapshot() BoxState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return BoxState{
		Bounds:      b.bounds,
		Fill:        b.fill,
		Stroke:      b.stroke,
		StrokeWidth: b.strokeWidth,
		Opacity:     b.opacity,
		Rotation:    b.rotation,
	}
}

// BoxState is an immutable copy of a Box.
type BoxState struct {
	Bounds      graphics.Rect
	Fill        graphics.Color
	Stroke      graphics.Color
	StrokeWidth float64
	Opacity     int
	Rotation    float64
}
