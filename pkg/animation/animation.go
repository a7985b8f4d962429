package animation

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	motionerrors "github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/graphics"
	"github.com/go-drift/motion/pkg/shape"
)

// Configuration errors returned by [Animation.Play].
var (
	ErrInvalidDuration     = errors.New("animation duration must be positive")
	ErrNegativeDelay       = errors.New("animation delay must not be negative")
	ErrDetached            = errors.New("animation target is not attached to a host")
	ErrUnsupportedProperty = errors.New("target does not support property")
	ErrAlreadyPlayed       = errors.New("animation already played")
	ErrSchedulerStopped    = errors.New("scheduler is stopped")
)

// Property keys. At most one transformer per key is registered; setting the
// same property twice keeps the last value.
const (
	propPosition    = "position"
	propMoveBy      = "move_by"
	propBounds      = "bounds"
	propFill        = "fill"
	propStroke      = "stroke"
	propStrokeWidth = "stroke_width"
	propOpacity     = "opacity"
	propRotation    = "rotation"
	propTextSize    = "text_size"
)

// Animation animates properties of a single shape over time.
//
// Configure it with the chainable setters, then call Play. Setters must be
// called from one goroutine before Play; after Play they are ignored. Stop
// may be called from any goroutine.
//
// A setter whose property the target does not support records an
// [ErrUnsupportedProperty] error that Play returns.
type Animation struct {
	target   shape.Shape
	name     string
	duration time.Duration
	delay    time.Duration
	curve    Curve
	repeat   RepeatPolicy
	remove   bool
	listener Listener

	transformers map[string]Transformer
	configErrs   []error

	played atomic.Bool
	state  atomic.Int32

	// Set by PlayOn and read-only afterwards.
	host    shape.Host
	startAt time.Time

	// Touched only by the goroutine calling Advance.
	lastFolded time.Duration
	completed  bool
}

// New returns an animation of target lasting duration. The default curve is
// [EaseInOut] and the default repeat policy is [RepeatNone].
func New(target shape.Shape, duration time.Duration) *Animation {
	return &Animation{
		target:       target,
		duration:     duration,
		curve:        EaseInOut,
		transformers: make(map[string]Transformer),
	}
}

// Target returns the animated shape.
func (a *Animation) Target() shape.Shape { return a.target }

// Name returns the label set with Named.
func (a *Animation) Name() string { return a.name }

// Duration returns the length of one cycle.
func (a *Animation) Duration() time.Duration { return a.duration }

// RepeatPolicy returns the configured repeat policy.
func (a *Animation) RepeatPolicy() RepeatPolicy { return a.repeat }

// State returns the current lifecycle state. Safe for concurrent use.
func (a *Animation) State() State { return State(a.state.Load()) }

// StartTime returns the absolute time the animation begins, or the zero
// time before Play.
func (a *Animation) StartTime() time.Time { return a.startAt }

// Stop cancels the animation. It takes effect on the next Advance call; the
// target keeps the values of the last frame and OnEnd is never delivered.
// Safe to call from any goroutine, any number of times.
func (a *Animation) Stop() {
	a.state.Store(int32(StateStopped))
}

// Named attaches a label used in logs and traces.
func (a *Animation) Named(name string) *Animation {
	if a.configurable("Named") {
		a.name = name
	}
	return a
}

// Easing sets the curve applied to linear progress. Nil restores linear.
func (a *Animation) Easing(c Curve) *Animation {
	if a.configurable("Easing") {
		if c == nil {
			c = LinearCurve
		}
		a.curve = c
	}
	return a
}

// Delay postpones the start by d after Play.
func (a *Animation) Delay(d time.Duration) *Animation {
	if a.configurable("Delay") {
		a.delay = d
	}
	return a
}

// Repeat makes the animation restart from the beginning after every cycle.
// A repeating animation never ends on its own.
func (a *Animation) Repeat() *Animation {
	return a.WithRepeatPolicy(RepeatRestart)
}

// Oscillate makes the animation play forward then backward indefinitely.
func (a *Animation) Oscillate() *Animation {
	return a.WithRepeatPolicy(RepeatOscillate)
}

// WithRepeatPolicy sets the repeat policy explicitly.
func (a *Animation) WithRepeatPolicy(p RepeatPolicy) *Animation {
	if a.configurable("WithRepeatPolicy") {
		a.repeat = p
	}
	return a
}

// RemoveOnEnd detaches the target from its host when the animation ends
// naturally. Stopped animations never remove their target.
func (a *Animation) RemoveOnEnd() *Animation {
	if a.configurable("RemoveOnEnd") {
		a.remove = true
	}
	return a
}

// Listener sets the notification sink.
func (a *Animation) Listener(l Listener) *Animation {
	if a.configurable("Listener") {
		a.listener = l
	}
	return a
}

// With registers a custom transformer under key, replacing any transformer
// already registered under that key.
func (a *Animation) With(key string, t Transformer) *Animation {
	if a.configurable("With") && t != nil {
		a.transformers[key] = t
	}
	return a
}

// MoveTo moves the target's position to p.
func (a *Animation) MoveTo(p graphics.Offset) *Animation {
	return a.move(p, AxisXY)
}

// MoveXTo moves only the horizontal coordinate.
func (a *Animation) MoveXTo(x float64) *Animation {
	return a.move(graphics.Offset{X: x}, AxisX)
}

// MoveYTo moves only the vertical coordinate.
func (a *Animation) MoveYTo(y float64) *Animation {
	return a.move(graphics.Offset{Y: y}, AxisY)
}

func (a *Animation) move(end graphics.Offset, axes Axis) *Animation {
	if !a.configurable("MoveTo") {
		return a
	}
	target, ok := a.target.(shape.Positioned)
	if !ok {
		return a.unsupported(propPosition)
	}
	if existing, ok := a.transformers[propPosition].(*PositionTransformer); ok {
		existing.merge(end, axes)
		return a
	}
	a.transformers[propPosition] = NewPositionTransformer(target, end, axes)
	return a
}

// MoveBy shifts the target by delta over each cycle, relative to wherever it
// is on every frame.
func (a *Animation) MoveBy(delta graphics.Offset) *Animation {
	if !a.configurable("MoveBy") {
		return a
	}
	target, ok := a.target.(shape.Positioned)
	if !ok {
		return a.unsupported(propMoveBy)
	}
	a.transformers[propMoveBy] = MotionStepTransformer(target, delta)
	return a
}

// BoundsTo animates the bounding rectangle to r.
func (a *Animation) BoundsTo(r graphics.Rect) *Animation {
	if !a.configurable("BoundsTo") {
		return a
	}
	target, ok := a.target.(shape.Bounded)
	if !ok {
		return a.unsupported(propBounds)
	}
	a.transformers[propBounds] = BoundsTransformer(target, r)
	return a
}

// FillTo animates the fill color to c.
func (a *Animation) FillTo(c graphics.Color) *Animation {
	if !a.configurable("FillTo") {
		return a
	}
	target, ok := a.target.(shape.FillColored)
	if !ok {
		return a.unsupported(propFill)
	}
	a.transformers[propFill] = FillTransformer(target, c)
	return a
}

// StrokeTo animates the outline color to c.
func (a *Animation) StrokeTo(c graphics.Color) *Animation {
	if !a.configurable("StrokeTo") {
		return a
	}
	target, ok := a.target.(shape.StrokeColored)
	if !ok {
		return a.unsupported(propStroke)
	}
	a.transformers[propStroke] = StrokeTransformer(target, c)
	return a
}

// StrokeWidthTo animates the outline width to w.
func (a *Animation) StrokeWidthTo(w float64) *Animation {
	if !a.configurable("StrokeWidthTo") {
		return a
	}
	target, ok := a.target.(shape.Stroked)
	if !ok {
		return a.unsupported(propStrokeWidth)
	}
	a.transformers[propStrokeWidth] = StrokeWidthTransformer(target, w)
	return a
}

// OpacityTo fades the target to o (0-255).
func (a *Animation) OpacityTo(o int) *Animation {
	if !a.configurable("OpacityTo") {
		return a
	}
	target, ok := a.target.(shape.Opaque)
	if !ok {
		return a.unsupported(propOpacity)
	}
	a.transformers[propOpacity] = OpacityTransformer(target, o)
	return a
}

// RotateTo spins the target to deg degrees.
func (a *Animation) RotateTo(deg float64) *Animation {
	if !a.configurable("RotateTo") {
		return a
	}
	target, ok := a.target.(shape.Rotatable)
	if !ok {
		return a.unsupported(propRotation)
	}
	a.transformers[propRotation] = RotationTransformer(target, deg)
	return a
}

// TextSizeTo scales the target's text to n.
func (a *Animation) TextSizeTo(n int) *Animation {
	if !a.configurable("TextSizeTo") {
		return a
	}
	target, ok := a.target.(shape.TextSized)
	if !ok {
		return a.unsupported(propTextSize)
	}
	a.transformers[propTextSize] = TextSizeTransformer(target, n)
	return a
}

func (a *Animation) configurable(setter string) bool {
	if !a.played.Load() {
		return true
	}
	motionerrors.Logger().Warn("animation setter ignored after Play",
		slog.String("setter", setter),
		slog.String("animation", a.name),
	)
	return false
}

func (a *Animation) unsupported(prop string) *Animation {
	a.configErrs = append(a.configErrs, fmt.Errorf("%w %q (%T)", ErrUnsupportedProperty, prop, a.target))
	return a
}

// Play validates the configuration and hands the animation to the scheduler
// of the target's host, starting it after the configured delay.
func (a *Animation) Play() error {
	var host shape.Host
	if a.target != nil {
		host = a.target.Host()
	}
	if host == nil {
		return motionerrors.New("animation.Play", motionerrors.KindConfig, ErrDetached)
	}
	return a.PlayOn(SchedulerFor(host))
}

// PlayOn is like Play but uses an explicit scheduler.
func (a *Animation) PlayOn(s *Scheduler) error {
	if err := a.validate(); err != nil {
		return motionerrors.New("animation.Play", motionerrors.KindConfig, err)
	}
	if s.stopped.Load() {
		return motionerrors.New("animation.Play", motionerrors.KindConfig, ErrSchedulerStopped)
	}
	if !a.played.CompareAndSwap(false, true) {
		return motionerrors.New("animation.Play", motionerrors.KindConfig, ErrAlreadyPlayed)
	}
	a.host = s.host
	a.startAt = s.clock.Now().Add(a.delay)
	s.enqueue(a)
	return nil
}

func (a *Animation) validate() error {
	var errs []error
	if a.target == nil {
		errs = append(errs, ErrDetached)
	}
	if a.duration <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrInvalidDuration, a.duration))
	}
	if a.delay < 0 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrNegativeDelay, a.delay))
	}
	errs = append(errs, a.configErrs...)
	return errors.Join(errs...)
}

// Advance moves the animation to time now and applies every transformer.
//
// Advance is called by the scheduler with one timestamp per tick. Before the
// start time it does nothing. A stopped animation reports
// EndedByCancellation without touching its target. Advance is not safe for
// concurrent use with itself.
func (a *Animation) Advance(now time.Time) Outcome {
	if a.completed {
		return EndedNaturally
	}
	if a.State() == StateStopped {
		return EndedByCancellation
	}
	if now.Before(a.startAt) {
		return Continuing
	}

	if a.State() == StateWaiting {
		if !a.state.CompareAndSwap(int32(StateWaiting), int32(StateForward)) {
			return EndedByCancellation
		}
		for _, t := range a.transformers {
			t.OnStart()
		}
		a.post(func(l Listener) { l.OnStart(a) })
	}

	t, folded, ended := a.progress(now.Sub(a.startAt))
	if ended {
		t = 1
	}
	if a.State() == StateStopped {
		return EndedByCancellation
	}

	y := a.curve(t)
	for _, tr := range a.transformers {
		tr.Transform(y)
	}
	a.lastFolded = folded

	if !ended {
		return Continuing
	}
	a.completed = true
	if a.remove && a.host != nil {
		a.host.Remove(a.target)
	}
	a.post(func(l Listener) { l.OnEnd(a) })
	return EndedNaturally
}

// progress folds elapsed time into the current cycle and performs the
// Forward/Backward bookkeeping of the repeat policy.
func (a *Animation) progress(elapsed time.Duration) (t float64, folded time.Duration, ended bool) {
	d := a.duration
	switch a.repeat {
	case RepeatRestart:
		a.turn(StateBackward, StateForward)
		folded = elapsed % d
		if folded < a.lastFolded {
			a.post(func(l Listener) { l.OnRepeat(a, DirectionForward) })
		}
		return float64(folded) / float64(d), folded, false

	case RepeatOscillate:
		folded = elapsed % (2 * d)
		if folded < d {
			t = float64(folded) / float64(d)
		} else {
			t = 1 - float64(folded-d)/float64(d)
		}
		switch a.State() {
		case StateForward:
			if folded > d && a.turn(StateForward, StateBackward) {
				a.post(func(l Listener) { l.OnRepeat(a, DirectionBackward) })
			}
		case StateBackward:
			if folded < d && a.turn(StateBackward, StateForward) {
				a.post(func(l Listener) { l.OnRepeat(a, DirectionForward) })
			}
		}
		return t, folded, false

	default:
		if elapsed >= d {
			return 1, elapsed, true
		}
		return float64(elapsed) / float64(d), elapsed, false
	}
}

// turn switches direction unless a concurrent Stop got there first.
func (a *Animation) turn(from, to State) bool {
	return a.state.CompareAndSwap(int32(from), int32(to))
}

// post delivers a listener call on the host's event context. A panicking
// listener is recovered there and reported.
func (a *Animation) post(call func(Listener)) {
	l := a.listener
	if l == nil || a.host == nil {
		return
	}
	a.host.Post(func() {
		defer motionerrors.Recover("animation.listener")
		call(l)
	})
}

func (a *Animation) String() string {
	if a.name != "" {
		return a.name
	}
	return fmt.Sprintf("animation(%T, %v)", a.target, a.duration)
}
