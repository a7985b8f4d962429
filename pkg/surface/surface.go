// Package surface provides a reference host for animated shapes.
//
// A Surface owns an ordered list of shapes, a serialized event context and a
// coalescing repaint request. Callbacks posted from any goroutine run one at
// a time on the goroutine executing [Surface.Run]; repaint requests made
// between two renders collapse into a single [Renderer.Render] call.
package surface

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	motionerrors "github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/shape"
)

// DefaultAutoRepaint is the period of the surface's own repaint timer.
const DefaultAutoRepaint = 250 * time.Millisecond

// Renderer draws a snapshot of the surface's shapes, back to front.
type Renderer interface {
	Render(shapes []shape.Shape) error
}

// RendererFunc adapts a function to [Renderer].
type RendererFunc func(shapes []shape.Shape) error

// Render calls f(shapes).
func (f RendererFunc) Render(shapes []shape.Shape) error { return f(shapes) }

// Config configures a Surface.
type Config struct {
	// Renderer receives every frame. Nil discards frames but still counts them.
	Renderer Renderer
	// AutoRepaint is the period of the built-in repaint timer. Zero means
	// DefaultAutoRepaint; a negative value disables the timer.
	AutoRepaint time.Duration
}

// Surface implements [shape.Host].
type Surface struct {
	renderer Renderer
	auto     time.Duration

	shapesMu sync.RWMutex
	shapes   []shape.Shape

	dispatchMu    sync.Mutex
	dispatchQueue []func()

	pendingRepaint atomic.Bool
	suppressed     atomic.Bool
	frames         atomic.Uint64

	notify    chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
}

var _ shape.Host = (*Surface)(nil)

// New returns an empty surface. Nothing is rendered until Run is called.
func New(cfg Config) *Surface {
	if cfg.AutoRepaint == 0 {
		cfg.AutoRepaint = DefaultAutoRepaint
	}
	return &Surface{
		renderer: cfg.Renderer,
		auto:     cfg.AutoRepaint,
		notify:   make(chan struct{}, 1),
		closed:   make(chan struct{}),
	}
}

// Add attaches shapes on top of the existing ones and requests a repaint.
// A shape already on the surface keeps its place.
func (s *Surface) Add(shapes ...shape.Shape) {
	s.shapesMu.Lock()
	for _, sh := range shapes {
		if sh == nil || slices.Contains(s.shapes, sh) {
			continue
		}
		if a, ok := sh.(shape.Attachable); ok {
			a.Attach(s)
		}
		s.shapes = append(s.shapes, sh)
	}
	s.shapesMu.Unlock()
	s.Repaint()
}

// Remove detaches sh. The removal runs on the event context, after every
// callback posted before it.
func (s *Surface) Remove(sh shape.Shape) {
	s.Post(func() {
		s.removeNow(sh)
	})
}

func (s *Surface) removeNow(sh shape.Shape) {
	s.shapesMu.Lock()
	i := slices.Index(s.shapes, sh)
	if i >= 0 {
		s.shapes = slices.Delete(s.shapes, i, i+1)
	}
	s.shapesMu.Unlock()
	if i < 0 {
		return
	}
	if a, ok := sh.(shape.Attachable); ok {
		a.Detach()
	}
	s.pendingRepaint.Store(true)
}

// Shapes returns a snapshot of the attached shapes in drawing order.
func (s *Surface) Shapes() []shape.Shape {
	s.shapesMu.RLock()
	defer s.shapesMu.RUnlock()
	return slices.Clone(s.shapes)
}

// Post schedules fn on the event context. Safe to call from any goroutine.
// Callbacks posted after Close are dropped.
func (s *Surface) Post(fn func()) {
	if fn == nil || s.isClosed() {
		return
	}
	s.dispatchMu.Lock()
	s.dispatchQueue = append(s.dispatchQueue, fn)
	s.dispatchMu.Unlock()
	s.wake()
}

// Repaint requests a frame. Requests made before the next render coalesce.
func (s *Surface) Repaint() {
	s.pendingRepaint.Store(true)
	s.wake()
}

// SetAutoRepaintSuppressed turns the built-in repaint timer off or back on.
func (s *Surface) SetAutoRepaintSuppressed(suppressed bool) {
	s.suppressed.Store(suppressed)
}

// AutoRepaintSuppressed reports whether the repaint timer is currently off.
func (s *Surface) AutoRepaintSuppressed() bool {
	return s.suppressed.Load()
}

// Frames returns the number of frames rendered so far.
func (s *Surface) Frames() uint64 {
	return s.frames.Load()
}

// Close stops Run. Safe to call more than once.
func (s *Surface) Close() {
	s.closeOnce.Do(func() { close(s.closed) })
}

// Done is closed once Close has been called.
func (s *Surface) Done() <-chan struct{} {
	return s.closed
}

func (s *Surface) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}

func (s *Surface) wake() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Run executes the event context on the calling goroutine until ctx is done
// or Close is called. It returns ctx.Err() in the first case and nil in the
// second.
func (s *Surface) Run(ctx context.Context) error {
	var autoC <-chan time.Time
	if s.auto > 0 {
		ticker := time.NewTicker(s.auto)
		defer ticker.Stop()
		autoC = ticker.C
	}

	s.Flush()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.closed:
			s.Flush()
			return nil
		case <-s.notify:
		case <-autoC:
			if !s.suppressed.Load() {
				s.pendingRepaint.Store(true)
			}
		}
		s.Flush()
	}
}

// Flush runs every queued callback and renders once if a repaint is
// pending. Run calls it on every wake-up; headless drivers that do not call
// Run may call it directly, but never concurrently with Run.
func (s *Surface) Flush() {
	for _, fn := range s.drainDispatchQueue() {
		s.runCallback(fn)
	}
	if s.pendingRepaint.Swap(false) {
		s.render()
	}
}

func (s *Surface) drainDispatchQueue() []func() {
	s.dispatchMu.Lock()
	callbacks := s.dispatchQueue
	s.dispatchQueue = nil
	s.dispatchMu.Unlock()
	return callbacks
}

func (s *Surface) runCallback(fn func()) {
	defer motionerrors.Recover("surface.Post")
	fn()
}

func (s *Surface) render() {
	defer motionerrors.Recover("surface.Render")
	frame := s.frames.Add(1)
	if s.renderer == nil {
		return
	}
	if err := s.renderer.Render(s.Shapes()); err != nil {
		motionerrors.Report(motionerrors.New("surface.Render", motionerrors.KindRender, err))
		motionerrors.Logger().Debug("frame failed", slog.Uint64("frame", frame))
	}
}
