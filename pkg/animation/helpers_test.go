package animation

import (
	"testing"
	"time"

	"github.com/go-drift/motion/pkg/graphics"
	"github.com/go-drift/motion/pkg/shape"
	motiontest "github.com/go-drift/motion/pkg/testing"
)

// probe records every call a transformer receives.
type probe struct {
	starts int
	values []float64
}

func (p *probe) OnStart()            { p.starts++ }
func (p *probe) Transform(t float64) { p.values = append(p.values, t) }

func (p *probe) last() float64 {
	if len(p.values) == 0 {
		return -1
	}
	return p.values[len(p.values)-1]
}

// events counts listener notifications once the host has drained them.
type events struct {
	starts  int
	ends    int
	repeats []Direction
}

func (e *events) listener() Listener {
	return ListenerFuncs{
		Start:  func(*Animation) { e.starts++ },
		Repeat: func(_ *Animation, d Direction) { e.repeats = append(e.repeats, d) },
		End:    func(*Animation) { e.ends++ },
	}
}

type fixture struct {
	host  *motiontest.RecordingHost
	clock *motiontest.FakeClock
	sched *Scheduler
}

// newFixture returns a scheduler that is never started; tests drive it with
// tick or call Advance directly.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	host := motiontest.NewRecordingHost()
	clk := motiontest.NewFakeClock()
	return &fixture{
		host:  host,
		clock: clk,
		sched: NewScheduler(host, Config{Clock: clk}),
	}
}

func (f *fixture) box() *shape.Box {
	return newBox(f.host)
}

func newBox(h shape.Host) *shape.Box {
	b := shape.NewBox(graphics.RectFromLTWH(0, 0, 10, 10), graphics.ColorRed)
	b.Attach(h)
	return b
}

func (f *fixture) play(t *testing.T, a *Animation) {
	t.Helper()
	if err := a.PlayOn(f.sched); err != nil {
		t.Fatalf("PlayOn: %v", err)
	}
}

// at returns the animation's start time plus ms milliseconds.
func at(a *Animation, ms int) time.Time {
	return a.StartTime().Add(time.Duration(ms) * time.Millisecond)
}

func approx(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
