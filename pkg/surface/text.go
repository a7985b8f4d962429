package surface

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/go-drift/motion/pkg/shape"
)

// TextRenderer writes one block of lines per frame describing every shape.
// It backs headless traces and golden tests.
type TextRenderer struct {
	// Out receives the frames.
	Out io.Writer
	// Name labels a shape in the output. Nil or an empty result falls back
	// to the shape's position in the list.
	Name func(shape.Shape) string

	mu    sync.Mutex
	frame int
}

// Render implements [Renderer].
func (r *TextRenderer) Render(shapes []shape.Shape) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frame++
	w := bufio.NewWriter(r.Out)
	fmt.Fprintf(w, "frame %d\n", r.frame)
	for i, sh := range shapes {
		name := ""
		if r.Name != nil {
			name = r.Name(sh)
		}
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		fmt.Fprintf(w, "  %s %s\n", name, Describe(sh))
	}
	return w.Flush()
}

// Describe formats the drawable state of sh on one line.
func Describe(sh shape.Shape) string {
	switch s := sh.(type) {
	case *shape.Box:
		st := s.Snapshot()
		b := st.Bounds
		return fmt.Sprintf("box bounds=(%.2f,%.2f,%.2f,%.2f) fill=%v stroke=%v width=%.2f opacity=%d rotation=%.2f",
			b.Left, b.Top, b.Width(), b.Height(), st.Fill, st.Stroke, st.StrokeWidth, st.Opacity, st.Rotation)
	case *shape.Label:
		st := s.Snapshot()
		return fmt.Sprintf("label pos=(%.2f,%.2f) text=%q size=%d fill=%v opacity=%d rotation=%.2f",
			st.Position.X, st.Position.Y, st.Text, st.TextSize, st.Fill, st.Opacity, st.Rotation)
	default:
		return fmt.Sprintf("%T", sh)
	}
}
