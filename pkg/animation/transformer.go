package animation

import (
	"github.com/go-drift/motion/pkg/graphics"
	"github.com/go-drift/motion/pkg/shape"
)

// Transformer drives a single property of one target.
//
// OnStart is called exactly once, when the owning animation leaves the
// Waiting state, and captures the property's current value. Transform is
// then called every frame with eased progress. Progress normally lies in
// [0, 1] but may overshoot with curves like [EaseOutBack]; implementations
// clamp results to the property's valid domain and never panic.
type Transformer interface {
	OnStart()
	Transform(t float64)
}

// scalarTransformer interpolates one numeric property.
type scalarTransformer[T Number] struct {
	get      func() T
	set      func(T)
	quantize func(float64) T
	start    T
	end      T
}

func (s *scalarTransformer[T]) OnStart() {
	s.start = s.get()
}

func (s *scalarTransformer[T]) Transform(t float64) {
	s.set(s.quantize(Lerp(s.start, s.end, t)))
}

// OpacityTransformer fades a shape to end (0-255).
func OpacityTransformer(target shape.Opaque, end int) Transformer {
	return &scalarTransformer[int]{
		get:      target.Opacity,
		set:      target.SetOpacity,
		quantize: clampOpacity,
		end:      end,
	}
}

// StrokeWidthTransformer animates the outline width. Results below zero
// become zero.
func StrokeWidthTransformer(target shape.Stroked, end float64) Transformer {
	return &scalarTransformer[float64]{
		get:      target.StrokeWidth,
		set:      target.SetStrokeWidth,
		quantize: floorZero,
		end:      end,
	}
}

// RotationTransformer spins a shape to end degrees. It is unclamped so
// 720 means two full turns.
func RotationTransformer(target shape.Rotatable, end float64) Transformer {
	return &scalarTransformer[float64]{
		get:      target.Rotation,
		set:      target.SetRotation,
		quantize: identity,
		end:      end,
	}
}

// TextSizeTransformer scales text. Sizes round to the nearest integer and
// never go below zero.
func TextSizeTransformer(target shape.TextSized, end int) Transformer {
	return &scalarTransformer[int]{
		get:      target.TextSize,
		set:      target.SetTextSize,
		quantize: roundSize,
		end:      end,
	}
}

// Axis selects which coordinates a position transformer drives.
type Axis uint8

const (
	// AxisX drives the horizontal coordinate.
	AxisX Axis = 1 << iota
	// AxisY drives the vertical coordinate.
	AxisY
	// AxisXY drives both coordinates.
	AxisXY = AxisX | AxisY
)

// PositionTransformer moves a shape towards end along the selected axes.
// Coordinates outside the axis mask keep whatever value the shape has on
// each frame.
type PositionTransformer struct {
	target shape.Positioned
	axes   Axis
	start  graphics.Offset
	end    graphics.Offset
}

// NewPositionTransformer returns a transformer for target.
func NewPositionTransformer(target shape.Positioned, end graphics.Offset, axes Axis) *PositionTransformer {
	return &PositionTransformer{target: target, axes: axes, end: end}
}

// merge widens the transformer to also drive axes towards end.
func (p *PositionTransformer) merge(end graphics.Offset, axes Axis) {
	if axes&AxisX != 0 {
		p.end.X = end.X
	}
	if axes&AxisY != 0 {
		p.end.Y = end.Y
	}
	p.axes |= axes
}

// OnStart captures the current position.
func (p *PositionTransformer) OnStart() {
	p.start = p.target.Position()
}

// Transform writes the interpolated position.
func (p *PositionTransformer) Transform(t float64) {
	pos := p.target.Position()
	if p.axes&AxisX != 0 {
		pos.X = Lerp(p.start.X, p.end.X, t)
	}
	if p.axes&AxisY != 0 {
		pos.Y = Lerp(p.start.Y, p.end.Y, t)
	}
	p.target.SetPosition(pos)
}

// boundsTransformer interpolates the four edges of a bounding rectangle.
type boundsTransformer struct {
	target shape.Bounded
	start  graphics.Rect
	end    graphics.Rect
}

// BoundsTransformer resizes and moves a shape towards end.
func BoundsTransformer(target shape.Bounded, end graphics.Rect) Transformer {
	return &boundsTransformer{target: target, end: end}
}

func (b *boundsTransformer) OnStart() {
	b.start = b.target.Bounds()
}

func (b *boundsTransformer) Transform(t float64) {
	b.target.SetBounds(LerpRect(b.start, b.end, t))
}

// colorTransformer interpolates a color property channel by channel.
type colorTransformer struct {
	get   func() graphics.Color
	set   func(graphics.Color)
	start graphics.Color
	end   graphics.Color
}

// FillTransformer animates the fill color.
func FillTransformer(target shape.FillColored, end graphics.Color) Transformer {
	return &colorTransformer{get: target.FillColor, set: target.SetFillColor, end: end}
}

// StrokeTransformer animates the outline color.
func StrokeTransformer(target shape.StrokeColored, end graphics.Color) Transformer {
	return &colorTransformer{get: target.StrokeColor, set: target.SetStrokeColor, end: end}
}

func (c *colorTransformer) OnStart() {
	c.start = c.get()
}

func (c *colorTransformer) Transform(t float64) {
	c.set(LerpColor(c.start, c.end, t))
}

// motionStepTransformer moves a shape by a relative delta. Instead of
// interpolating towards an absolute end it adds delta scaled by the progress
// made since the previous frame, so it composes with other movement.
type motionStepTransformer struct {
	target shape.Positioned
	delta  graphics.Offset
	lastT  float64
}

// MotionStepTransformer moves a shape by delta over one cycle.
//
// When progress goes backwards (a repeat wrapped, or an oscillation turned)
// the step is taken as 1 + (t - lastT).
func MotionStepTransformer(target shape.Positioned, delta graphics.Offset) Transformer {
	return &motionStepTransformer{target: target, delta: delta}
}

func (m *motionStepTransformer) OnStart() {
	m.lastT = 0
}

func (m *motionStepTransformer) Transform(t float64) {
	step := t - m.lastT
	if step < 0 {
		step = 1 + step
	}
	m.lastT = t
	if step == 0 {
		return
	}
	pos := m.target.Position()
	m.target.SetPosition(graphics.Offset{
		X: pos.X + m.delta.X*step,
		Y: pos.Y + m.delta.Y*step,
	})
}
