package scene

import (
	"fmt"
	"time"

	"github.com/go-drift/motion/pkg/animation"
	motionerrors "github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/graphics"
	"github.com/go-drift/motion/pkg/shape"
)

// Host is a surface that shapes can be added to.
type Host interface {
	shape.Host
	Add(shapes ...shape.Shape)
}

// Built is a scene turned into live objects.
type Built struct {
	// IDs lists shape ids in drawing order.
	IDs []string
	// Shapes maps ids to shapes, all attached to the host.
	Shapes map[string]shape.Shape
	// Animations are configured but not yet played, in document order.
	Animations []*animation.Animation
	// FrameInterval is the document's tick length, zero when unset.
	FrameInterval time.Duration

	names map[shape.Shape]string
}

// Build validates d, creates its shapes on host and configures its
// animations. Nothing moves until Play.
func (d *Document) Build(host Host) (*Built, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	b := &Built{
		Shapes:        make(map[string]shape.Shape, len(d.Shapes)),
		FrameInterval: d.FrameInterval.Std(),
		names:         make(map[shape.Shape]string, len(d.Shapes)),
	}
	for _, spec := range d.Shapes {
		sh := newShape(spec)
		b.IDs = append(b.IDs, spec.ID)
		b.Shapes[spec.ID] = sh
		b.names[sh] = spec.ID
		host.Add(sh)
	}
	for i, spec := range d.Animations {
		a, err := newAnimation(spec, b.Shapes[spec.Target])
		if err != nil {
			return nil, motionerrors.New("scene.Build", motionerrors.KindScene, fmt.Errorf("animations[%d]: %w", i, err))
		}
		if spec.Name == "" {
			a.Named(fmt.Sprintf("%s#%d", spec.Target, i))
		}
		b.Animations = append(b.Animations, a)
	}
	return b, nil
}

// Name returns the id of sh, or "" when sh is not part of the scene.
func (b *Built) Name(sh shape.Shape) string {
	return b.names[sh]
}

// Loops reports whether any animation repeats forever.
func (b *Built) Loops() bool {
	for _, a := range b.Animations {
		if a.RepeatPolicy() != animation.RepeatNone {
			return true
		}
	}
	return false
}

// Play plays every animation on the scheduler of its target's host. An
// animation declared later for the same shape supersedes the earlier one.
func (b *Built) Play() error {
	for _, a := range b.Animations {
		if err := a.Play(); err != nil {
			return err
		}
	}
	return nil
}

// PlayOn plays every animation on s.
func (b *Built) PlayOn(s *animation.Scheduler) error {
	for _, a := range b.Animations {
		if err := a.PlayOn(s); err != nil {
			return err
		}
	}
	return nil
}

func newShape(s ShapeSpec) shape.Shape {
	fill := mustColor(s.Fill, graphics.ColorWhite)
	switch s.Kind {
	case KindBox:
		box := shape.NewBox(rectOf(s.Bounds), fill)
		box.SetStrokeColor(mustColor(s.Stroke, graphics.ColorTransparent))
		if s.StrokeWidth != nil {
			box.SetStrokeWidth(*s.StrokeWidth)
		}
		applyCommon(box, s)
		return box
	default:
		label := shape.NewLabel(offsetOf(s.Position), s.Text, fill)
		if s.TextSize != nil {
			label.SetTextSize(*s.TextSize)
		}
		applyCommon(label, s)
		return label
	}
}

func applyCommon(sh interface {
	shape.Opaque
	shape.Rotatable
}, s ShapeSpec) {
	if s.Opacity != nil {
		sh.SetOpacity(*s.Opacity)
	}
	if s.Rotation != nil {
		sh.SetRotation(*s.Rotation)
	}
}

func newAnimation(spec AnimationSpec, target shape.Shape) (*animation.Animation, error) {
	a := animation.New(target, spec.Duration.Std()).Delay(spec.Delay.Std())
	if spec.Name != "" {
		a.Named(spec.Name)
	}
	if spec.Easing != "" {
		curve, _ := animation.CurveByName(spec.Easing)
		a.Easing(curve)
	}
	policy, err := animation.ParseRepeatPolicy(spec.Repeat)
	if err != nil {
		return nil, err
	}
	a.WithRepeatPolicy(policy)
	if spec.RemoveOnEnd {
		a.RemoveOnEnd()
	}

	to := spec.To
	if to.Position != nil {
		a.MoveTo(offsetOf(to.Position))
	}
	if to.X != nil {
		a.MoveXTo(*to.X)
	}
	if to.Y != nil {
		a.MoveYTo(*to.Y)
	}
	if to.MoveBy != nil {
		a.MoveBy(offsetOf(to.MoveBy))
	}
	if to.Bounds != nil {
		a.BoundsTo(rectOf(to.Bounds))
	}
	if to.Fill != "" {
		a.FillTo(mustColor(to.Fill, graphics.ColorWhite))
	}
	if to.Stroke != "" {
		a.StrokeTo(mustColor(to.Stroke, graphics.ColorWhite))
	}
	if to.StrokeWidth != nil {
		a.StrokeWidthTo(*to.StrokeWidth)
	}
	if to.Opacity != nil {
		a.OpacityTo(*to.Opacity)
	}
	if to.Rotation != nil {
		a.RotateTo(*to.Rotation)
	}
	if to.TextSize != nil {
		a.TextSizeTo(*to.TextSize)
	}
	return a, nil
}

// mustColor parses a colour Validate has already accepted.
func mustColor(s string, fallback graphics.Color) graphics.Color {
	if s == "" {
		return fallback
	}
	c, err := graphics.ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

func rectOf(v []float64) graphics.Rect {
	return graphics.RectFromLTWH(v[0], v[1], v[2], v[3])
}

func offsetOf(v []float64) graphics.Offset {
	return graphics.Offset{X: v[0], Y: v[1]}
}
