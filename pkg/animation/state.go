package animation

import "fmt"

// State is the lifecycle phase of an [Animation].
//
//	            start time reached
//	Waiting ───────────────────────► Forward ◄──────► Backward
//	   │                                │   (Oscillate only)  │
//	   │             Stop()             ▼                     │
//	   └──────────────────────────► Stopped ◄─────────────────┘
//
// Stopped is terminal and reachable from every state.
type State int32

const (
	// StateWaiting means the configured start time has not been reached.
	StateWaiting State = iota
	// StateForward means progress is increasing.
	StateForward
	// StateBackward means progress is decreasing (second half of an oscillation).
	StateBackward
	// StateStopped means the animation was cancelled or superseded.
	StateStopped
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateForward:
		return "forward"
	case StateBackward:
		return "backward"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// RepeatPolicy decides what happens when elapsed time passes the duration.
type RepeatPolicy int

const (
	// RepeatNone plays once and ends.
	RepeatNone RepeatPolicy = iota
	// RepeatRestart jumps back to the start after every cycle and never ends.
	RepeatRestart
	// RepeatOscillate plays forward then backward and never ends.
	RepeatOscillate
)

// String returns the scene-file name of the policy.
func (p RepeatPolicy) String() string {
	switch p {
	case RepeatNone:
		return "none"
	case RepeatRestart:
		return "repeat"
	case RepeatOscillate:
		return "oscillate"
	default:
		return fmt.Sprintf("RepeatPolicy(%d)", int(p))
	}
}

// ParseRepeatPolicy is the inverse of RepeatPolicy.String. The empty string
// means RepeatNone.
func ParseRepeatPolicy(s string) (RepeatPolicy, error) {
	switch s {
	case "", "none":
		return RepeatNone, nil
	case "repeat":
		return RepeatRestart, nil
	case "oscillate":
		return RepeatOscillate, nil
	default:
		return RepeatNone, fmt.Errorf("unknown repeat policy %q", s)
	}
}

// Direction is carried by repeat notifications.
type Direction int

const (
	// DirectionForward means progress is increasing again.
	DirectionForward Direction = iota
	// DirectionBackward means progress has started decreasing.
	DirectionBackward
)

// String returns "forward" or "backward".
func (d Direction) String() string {
	if d == DirectionBackward {
		return "backward"
	}
	return "forward"
}

// Outcome is the result of one [Animation.Advance] call.
type Outcome int

const (
	// Continuing means the animation wants further ticks.
	Continuing Outcome = iota
	// EndedNaturally means the animation reached its end. OnEnd has been posted.
	EndedNaturally
	// EndedByCancellation means the animation was stopped. No OnEnd is ever posted.
	EndedByCancellation
)

// Ended reports whether the scheduler should drop the animation.
func (o Outcome) Ended() bool {
	return o != Continuing
}

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case Continuing:
		return "continuing"
	case EndedNaturally:
		return "ended"
	case EndedByCancellation:
		return "cancelled"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}
