// Package termview draws a surface on a terminal with tcell.
//
// Every frame is rebuilt from scratch: the screen is cleared to the
// background, boxes are painted as blocks of coloured cells in z order,
// labels are written on top of whatever lies beneath them, and the bottom
// row shows a status line with the rotation of every shape.
package termview

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/motion/pkg/graphics"
	"github.com/go-drift/motion/pkg/shape"
)

// Renderer implements surface.Renderer on a tcell screen. One cell is one
// unit of shape geometry.
type Renderer struct {
	screen tcell.Screen

	// Background is the colour under every shape. Translucent shapes blend
	// towards it.
	Background graphics.Color
	// Name labels shapes in the status line. Nil uses list positions.
	Name func(shape.Shape) string
	// HideStatus turns the status line off.
	HideStatus bool
}

// NewRenderer returns a renderer drawing on an initialized screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, Background: graphics.ColorBlack}
}

// Render draws one frame and shows it.
func (r *Renderer) Render(shapes []shape.Shape) error {
	bg := tcell.StyleDefault.Background(toTcell(r.Background)).Foreground(tcell.ColorWhite)
	r.screen.SetStyle(bg)
	r.screen.Fill(' ', bg)

	for _, sh := range shapes {
		switch s := sh.(type) {
		case *shape.Box:
			r.drawBox(s.Snapshot())
		case *shape.Label:
			r.drawLabel(s.Snapshot())
		}
	}
	if !r.HideStatus {
		r.drawStatus(shapes, bg)
	}
	r.screen.Show()
	return nil
}

func (r *Renderer) drawBox(st shape.BoxState) {
	if st.Opacity <= 0 {
		return
	}
	fill := r.blend(st.Fill, st.Opacity)
	stroke := r.blend(st.Stroke, st.Opacity)
	border := st.StrokeWidth > 0 && st.Stroke.A() > 0
	thick := int(math.Ceil(st.StrokeWidth))

	x0, y0 := int(math.Floor(st.Bounds.Left)), int(math.Floor(st.Bounds.Top))
	x1, y1 := int(math.Ceil(st.Bounds.Right)), int(math.Ceil(st.Bounds.Bottom))
	w, h := r.screen.Size()
	for y := max(y0, 0); y < min(y1, h); y++ {
		for x := max(x0, 0); x < min(x1, w); x++ {
			c := fill
			if border && (x-x0 < thick || x1-1-x < thick || y-y0 < thick || y1-1-y < thick) {
				c = stroke
			}
			r.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(toTcell(c)))
		}
	}
}

func (r *Renderer) drawLabel(st shape.LabelState) {
	if st.Opacity <= 0 || st.TextSize <= 0 {
		return
	}
	fg := toTcell(r.blend(st.Fill, st.Opacity))
	x, y := int(math.Floor(st.Position.X)), int(math.Floor(st.Position.Y))
	w, h := r.screen.Size()
	if y < 0 || y >= h {
		return
	}
	for _, ch := range st.Text {
		// Larger text sizes spread glyphs over wider cells.
		for i := 0; i < st.TextSize; i++ {
			if x >= 0 && x < w {
				glyph := ' '
				if i == 0 {
					glyph = ch
				}
				_, _, under, _ := r.screen.GetContent(x, y)
				r.screen.SetContent(x, y, glyph, nil, under.Foreground(fg))
			}
			x++
		}
	}
}

func (r *Renderer) drawStatus(shapes []shape.Shape, style tcell.Style) {
	w, h := r.screen.Size()
	if h == 0 {
		return
	}
	var sb strings.Builder
	sb.WriteString("rotation")
	for i, sh := range shapes {
		rot, ok := sh.(shape.Rotatable)
		if !ok {
			continue
		}
		name := ""
		if r.Name != nil {
			name = r.Name(sh)
		}
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		fmt.Fprintf(&sb, " %s=%.0f°", name, rot.Rotation())
	}
	x := 0
	for _, ch := range sb.String() {
		if x >= w {
			break
		}
		r.screen.SetContent(x, h-1, ch, nil, style)
		x++
	}
}

// blend applies the colour's own alpha and the shape opacity against the
// background.
func (r *Renderer) blend(c graphics.Color, opacity int) graphics.Color {
	alpha := float64(c.A()) / 255 * float64(opacity) / float64(shape.MaxOpacity)
	mix := func(fg, bg uint8) uint8 {
		return graphics.ClampChannel(float64(fg)*alpha + float64(bg)*(1-alpha) + 0.5)
	}
	bg := r.Background
	return graphics.RGB(mix(c.R(), bg.R()), mix(c.G(), bg.G()), mix(c.B(), bg.B()))
}

func toTcell(c graphics.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R()), int32(c.G()), int32(c.B()))
}
