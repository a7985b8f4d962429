// Package animation animates the properties of shapes attached to a host
// surface.
//
// # Core Components
//
//   - [Animation]: one configured run against a single shape. Built with
//     chainable setters, started with [Animation.Play] and cancelled with
//     [Animation.Stop]. Owns the Waiting → Forward ⇄ Backward → Stopped
//     state machine.
//
//   - [Transformer]: drives one property of the target. Captures the start
//     value once when the animation leaves Waiting and writes interpolated
//     values on every frame.
//
//   - [Scheduler]: one background goroutine per host surface. Advances every
//     active animation with the same tick timestamp, then asks the host for
//     exactly one repaint.
//
// # Basic Usage
//
//	box := shape.NewBox(graphics.RectFromLTWH(0, 0, 10, 4), graphics.ColorRed)
//	surface.Add(box)
//
//	err := animation.New(box, 500*time.Millisecond).
//	    Easing(animation.EaseOut).
//	    MoveTo(graphics.Offset{X: 40, Y: 0}).
//	    FillTo(graphics.ColorBlue).
//	    Oscillate().
//	    Play()
//
// Playing a second animation for the same shape supersedes the first: the
// earlier one stops silently and never reports OnEnd.
//
// # Listener Delivery
//
// Start, repeat and end notifications are posted onto the host's event
// context with [shape.Host.Post]. They never run on the scheduler goroutine,
// and a panicking listener is recovered and reported through the errors
// package.
package animation
