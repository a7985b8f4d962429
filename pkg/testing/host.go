package testing

import (
	"sync"

	"github.com/go-drift/motion/pkg/shape"
)

// RecordingHost is a [shape.Host] that records every interaction.
//
// Posted callbacks are queued until Drain runs them on the calling
// goroutine, which stands in for the host's event context. Set Immediate to
// run them inline instead.
type RecordingHost struct {
	// Immediate runs posted callbacks synchronously inside Post.
	Immediate bool

	mu         sync.Mutex
	queue      []func()
	posted     int
	repaints   int
	removed    []shape.Shape
	suppressed bool
	toggles    []bool
	repainted  chan struct{}
}

// NewRecordingHost returns an empty host.
func NewRecordingHost() *RecordingHost {
	return &RecordingHost{repainted: make(chan struct{}, 1)}
}

// Post queues fn, or runs it immediately when Immediate is set.
func (h *RecordingHost) Post(fn func()) {
	h.mu.Lock()
	h.posted++
	if h.Immediate {
		h.mu.Unlock()
		fn()
		return
	}
	h.queue = append(h.queue, fn)
	h.mu.Unlock()
}

// Drain runs every queued callback in posting order and returns how many ran.
// Callbacks posted while draining run in the same call.
func (h *RecordingHost) Drain() int {
	ran := 0
	for {
		h.mu.Lock()
		queue := h.queue
		h.queue = nil
		h.mu.Unlock()
		if len(queue) == 0 {
			return ran
		}
		for _, fn := range queue {
			fn()
			ran++
		}
	}
}

// Repaint counts a repaint request.
func (h *RecordingHost) Repaint() {
	h.mu.Lock()
	h.repaints++
	h.mu.Unlock()
	select {
	case h.repainted <- struct{}{}:
	default:
	}
}

// Repainted is signalled (without blocking) after each Repaint.
func (h *RecordingHost) Repainted() <-chan struct{} {
	return h.repainted
}

// Remove records s and detaches it when it supports [shape.Attachable].
func (h *RecordingHost) Remove(s shape.Shape) {
	h.mu.Lock()
	h.removed = append(h.removed, s)
	h.mu.Unlock()
	if a, ok := s.(shape.Attachable); ok {
		a.Detach()
	}
}

// SetAutoRepaintSuppressed records the toggle.
func (h *RecordingHost) SetAutoRepaintSuppressed(suppressed bool) {
	h.mu.Lock()
	h.suppressed = suppressed
	h.toggles = append(h.toggles, suppressed)
	h.mu.Unlock()
}

// Posted returns how many callbacks were posted.
func (h *RecordingHost) Posted() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.posted
}

// Pending returns how many posted callbacks have not been drained.
func (h *RecordingHost) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queue)
}

// Repaints returns how many repaints were requested.
func (h *RecordingHost) Repaints() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.repaints
}

// Removed returns the shapes passed to Remove.
func (h *RecordingHost) Removed() []shape.Shape {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shape.Shape(nil), h.removed...)
}

// AutoRepaintSuppressed returns the last value passed to SetAutoRepaintSuppressed.
func (h *RecordingHost) AutoRepaintSuppressed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.suppressed
}

// SuppressionToggles returns every value passed to SetAutoRepaintSuppressed.
func (h *RecordingHost) SuppressionToggles() []bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]bool(nil), h.toggles...)
}
