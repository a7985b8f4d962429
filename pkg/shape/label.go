package shape

import "github.com/go-drift/motion/pkg/graphics"

// Label is a run of text anchored at its top-left position.
type Label struct {
	base
	position graphics.Offset
	text     string
	textSize int
	fill     graphics.Color
}

// NewLabel returns an opaque label of size 1.
func NewLabel(position graphics.Offset, text string, fill graphics.Color) *Label {
	l := &Label{position: position, text: text, textSize: 1, fill: fill}
	l.opacity = MaxOpacity
	return l
}

// Position returns the anchor.
func (l *Label) Position() graphics.Offset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.position
}

// SetPosition moves the anchor.
func (l *Label) SetPosition(o graphics.Offset) {
	l.mu.Lock()
	l.position = o
	l.mu.Unlock()
}

// Text returns the label text.
func (l *Label) Text() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.text
}

// SetText replaces the label text.
func (l *Label) SetText(s string) {
	l.mu.Lock()
	l.text = s
	l.mu.Unlock()
}

// TextSize returns the text size.
func (l *Label) TextSize() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.textSize
}

// SetTextSize sets the text size. Negative sizes become zero.
func (l *Label) SetTextSize(n int) {
	if n < 0 {
		n = 0
	}
	l.mu.Lock()
	l.textSize = n
	l.mu.Unlock()
}

// FillColor returns the text color.
func (l *Label) FillColor() graphics.Color {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fill
}

// SetFillColor sets the text color.
func (l *Label) SetFillColor(c graphics.Color) {
	l.mu.Lock()
	l.fill = c
	l.mu.Unlock()
}

// Snapshot returns a consistent copy of every property for drawing.
func (l *Label) Snapshot() LabelState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return LabelState{
		Position: l.position,
		Text:     l.text,
		TextSize: l.textSize,
		Fill:     l.fill,
		Opacity:  l.opacity,
		Rotation: l.rotation,
	}
}

// LabelState is an immutable copy of a Label.
type LabelState struct {
	Position graphics.Offset
	Text     string
	TextSize int
	Fill     graphics.Color
	Opacity  int
	Rotation float64
}
