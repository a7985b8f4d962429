package animation_test

import (
	"fmt"
	"time"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/graphics"
	"github.com/go-drift/motion/pkg/shape"
	motiontest "github.com/go-drift/motion/pkg/testing"
)

func Example() {
	host := motiontest.NewRecordingHost()
	clock := motiontest.NewFakeClock()
	sched := animation.NewScheduler(host, animation.Config{Clock: clock})

	box := shape.NewBox(graphics.RectFromLTWH(0, 0, 4, 2), graphics.ColorRed)
	box.Attach(host)

	a := animation.New(box, 100*time.Millisecond).
		Easing(animation.LinearCurve).
		MoveTo(graphics.Offset{X: 40, Y: 10}).
		FillTo(graphics.ColorBlue)
	if err := a.PlayOn(sched); err != nil {
		fmt.Println(err)
		return
	}

	a.Advance(clock.Now())
	a.Advance(clock.Advance(50 * time.Millisecond))
	fmt.Println(box.Position(), box.FillColor())
	fmt.Println(a.Advance(clock.Advance(50 * time.Millisecond)))
	fmt.Println(box.Position(), box.FillColor())
	// Output:
	// {20 5} #7f007fff
	// ended
	// {40 10} #0000ffff
}

func ExampleAnimation_Oscillate() {
	host := motiontest.NewRecordingHost()
	clock := motiontest.NewFakeClock()
	sched := animation.NewScheduler(host, animation.Config{Clock: clock})

	label := shape.NewLabel(graphics.Offset{}, "hi", graphics.ColorWhite)
	label.Attach(host)

	a := animation.New(label, 100*time.Millisecond).
		Easing(animation.LinearCurve).
		TextSizeTo(5).
		Oscillate().
		Listener(animation.ListenerFuncs{
			Repeat: func(_ *animation.Animation, d animation.Direction) { fmt.Println("turn", d) },
		})
	_ = a.PlayOn(sched)

	for ms := 0; ms <= 200; ms += 50 {
		a.Advance(clock.Now())
		fmt.Println(a.State(), label.TextSize())
		clock.Advance(50 * time.Millisecond)
	}
	host.Drain()
	// Output:
	// forward 1
	// forward 3
	// forward 5
	// backward 3
	// forward 1
	// turn backward
	// turn forward
}
