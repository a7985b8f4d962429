package animation

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	motionerrors "github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/shape"
)

// DefaultFrameInterval paces the scheduler at 50 ticks per second.
const DefaultFrameInterval = 20 * time.Millisecond

// Config configures a Scheduler.
type Config struct {
	// FrameInterval is the target tick length. Zero means DefaultFrameInterval.
	FrameInterval time.Duration
	// Clock supplies tick timestamps. Nil means the package clock.
	Clock Clock
}

// Scheduler advances every active animation of one host surface on a
// dedicated goroutine.
//
// Each tick stamps a single time, advances all animations with it, drops
// the ones that ended and asks the host for exactly one repaint. When no
// animation is active the goroutine blocks until the next Enqueue.
//
// While running the scheduler owns the repaint cadence, so Start suppresses
// the host's own periodic repaint and Stop restores it.
type Scheduler struct {
	host  shape.Host
	frame time.Duration
	clock Clock

	pendingMu sync.Mutex
	pending   []*Animation

	// current maps each target to its authoritative animation. Written by
	// producers in enqueue and by the scheduler goroutine in reap.
	currentMu sync.Mutex
	current   map[shape.Shape]*Animation

	wake      chan struct{}
	stopCh    chan struct{}
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	running   atomic.Bool
	stopped   atomic.Bool

	ticks atomic.Uint64
}

// NewScheduler creates a scheduler for host. Call Start to launch its
// goroutine.
func NewScheduler(host shape.Host, cfg Config) *Scheduler {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = packageClock{}
	}
	return &Scheduler{
		host:    host,
		frame:   cfg.FrameInterval,
		clock:   cfg.Clock,
		current: make(map[shape.Shape]*Animation),
		wake:    make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Host returns the surface the scheduler repaints.
func (s *Scheduler) Host() shape.Host { return s.host }

// FrameInterval returns the target tick length.
func (s *Scheduler) FrameInterval() time.Duration { return s.frame }

// Start launches the scheduler goroutine. Subsequent calls do nothing, and a
// stopped scheduler cannot be restarted.
func (s *Scheduler) Start() {
	s.startOnce.Do(func() {
		if s.stopped.Load() {
			close(s.done)
			return
		}
		s.running.Store(true)
		s.host.SetAutoRepaintSuppressed(true)
		motionerrors.Logger().Debug("scheduler started", slog.Duration("frame", s.frame))
		go s.loop()
	})
}

// Stop terminates the scheduler goroutine and waits for it to exit.
// Pending animations are abandoned without notifications. Safe to call
// more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.stopped.Store(true)
		s.running.Store(false)
		close(s.stopCh)
		// Unblocks done when Start was never called.
		s.startOnce.Do(func() { close(s.done) })
		<-s.done
		s.host.SetAutoRepaintSuppressed(false)
		motionerrors.Logger().Debug("scheduler stopped", slog.Uint64("ticks", s.ticks.Load()))
	})
}

// Running reports whether the scheduler goroutine is active.
func (s *Scheduler) Running() bool { return s.running.Load() }

// Ticks returns the number of completed ticks.
func (s *Scheduler) Ticks() uint64 { return s.ticks.Load() }

// Step runs a single tick at now on the calling goroutine. It serves hosts
// that drive time themselves, such as headless traces, and must not be used
// on a scheduler that was started.
func (s *Scheduler) Step(now time.Time) {
	s.tick(now)
}

// Enqueue plays a on this scheduler. It is shorthand for a.PlayOn(s).
func (s *Scheduler) Enqueue(a *Animation) error {
	return a.PlayOn(s)
}

// enqueue makes a the authoritative animation for its target, stopping any
// animation it supersedes, and wakes the goroutine.
func (s *Scheduler) enqueue(a *Animation) {
	s.currentMu.Lock()
	if prev := s.current[a.target]; prev != nil && prev != a {
		prev.Stop()
	}
	s.current[a.target] = a
	s.currentMu.Unlock()

	s.pendingMu.Lock()
	s.pending = append(s.pending, a)
	s.pendingMu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Cancel stops the authoritative animation of target, if any. The animation
// is dropped on the next tick and never reports OnEnd.
func (s *Scheduler) Cancel(target shape.Shape) {
	s.currentMu.Lock()
	a := s.current[target]
	s.currentMu.Unlock()
	if a != nil {
		a.Stop()
	}
}

// Current returns the authoritative animation of target, or nil.
func (s *Scheduler) Current(target shape.Shape) *Animation {
	s.currentMu.Lock()
	defer s.currentMu.Unlock()
	return s.current[target]
}

// Active returns the number of animations awaiting ticks, including stopped
// ones that have not been reaped yet.
func (s *Scheduler) Active() int {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	return len(s.pending)
}

func (s *Scheduler) loop() {
	defer close(s.done)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		if s.Active() == 0 {
			select {
			case <-s.wake:
				continue
			case <-s.stopCh:
				return
			}
		}

		start := s.clock.Now()
		s.tick(start)

		wait := s.frame - s.clock.Now().Sub(start)
		if wait <= 0 {
			select {
			case <-s.stopCh:
				return
			default:
			}
			continue
		}
		timer.Reset(wait)
		select {
		case <-timer.C:
		case <-s.stopCh:
			return
		}
	}
}

// tick advances every pending animation with the same timestamp and issues
// one repaint.
func (s *Scheduler) tick(now time.Time) {
	s.pendingMu.Lock()
	batch := append([]*Animation(nil), s.pending...)
	s.pendingMu.Unlock()

	var finished []*Animation
	for _, a := range batch {
		if s.advance(a, now).Ended() {
			finished = append(finished, a)
		}
	}
	if len(finished) > 0 {
		s.reap(finished)
	}

	s.host.Repaint()
	s.ticks.Add(1)
}

// advance isolates a failing animation: a panic is reported, the animation
// is stopped and the rest of the tick proceeds.
func (s *Scheduler) advance(a *Animation, now time.Time) (out Outcome) {
	defer motionerrors.RecoverWithCallback("animation.Advance", func(any) {
		a.Stop()
		out = EndedByCancellation
	})
	return a.Advance(now)
}

// reap removes finished animations from the queue and clears their target
// mapping unless a newer animation has already taken it over.
func (s *Scheduler) reap(finished []*Animation) {
	gone := make(map[*Animation]struct{}, len(finished))
	for _, a := range finished {
		gone[a] = struct{}{}
	}

	s.pendingMu.Lock()
	kept := s.pending[:0]
	for _, a := range s.pending {
		if _, ok := gone[a]; !ok {
			kept = append(kept, a)
		}
	}
	clear(s.pending[len(kept):])
	s.pending = kept
	s.pendingMu.Unlock()

	s.currentMu.Lock()
	for _, a := range finished {
		if s.current[a.target] == a {
			delete(s.current, a.target)
		}
	}
	s.currentMu.Unlock()
}
