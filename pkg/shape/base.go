package shape

import "sync"

// base carries the fields shared by the reference shapes. The mutex guards
// every property: the scheduler writes from its goroutine while the surface
// reads from its own.
type base struct {
	mu       sync.RWMutex
	host     Host
	opacity  int
	rotation float64
}

// Host returns the owning surface.
func (b *base) Host() Host {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.host
}

// Attach records h as the owning surface.
func (b *base) Attach(h Host) {
	b.mu.Lock()
	b.host = h
	b.mu.Unlock()
}

// Detach clears the owning surface.
func (b *base) Detach() {
	b.mu.Lock()
	b.host = nil
	b.mu.Unlock()
}

// Opacity returns the opacity (0-255).
func (b *base) Opacity() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.opacity
}

// SetOpacity sets the opacity, clamped to 0-255.
func (b *base) SetOpacity(v int) {
	b.mu.Lock()
	b.opacity = clampOpacity(v)
	b.mu.Unlock()
}

// Rotation returns the rotation in degrees.
func (b *base) Rotation() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rotation
}

// SetRotation sets the rotation in degrees.
func (b *base) SetRotation(deg float64) {
	b.mu.Lock()
	b.rotation = deg
	b.mu.Unlock()
}

func clampOpacity(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxOpacity {
		return MaxOpacity
	}
	return v
}
