package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/surface"
)

// defaultLoopFrames bounds a trace of a scene that never settles.
const defaultLoopFrames = 50

func init() {
	RegisterCommand(&Command{
		Name:  "trace",
		Short: "Print a scene frame by frame",
		Long: `Run a scene headless on a virtual clock and print every frame.

Time advances by exactly one frame interval per tick, so the output is
deterministic. Without --frames the trace stops once every finite
animation has ended, or after 50 frames when the scene loops.`,
		Usage: "motion trace <scene.yaml> [--frames N]",
		Run:   runTrace,
	})
}

func runTrace(args []string) error {
	var path string
	frames := 0
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--frames":
			if i+1 >= len(args) {
				return fmt.Errorf("--frames requires a number")
			}
			i++
			arg = "--frames=" + args[i]
			fallthrough
		case strings.HasPrefix(arg, "--frames="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--frames="))
			if err != nil || n <= 0 {
				return fmt.Errorf("--frames must be a positive number")
			}
			frames = n
		default:
			if path != "" {
				return fmt.Errorf("unexpected argument %q", arg)
			}
			path = arg
		}
	}
	if path == "" {
		return fmt.Errorf("scene file is required\n\nUsage: motion trace <scene.yaml> [--frames N]")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	doc, err := loadScene(path)
	if err != nil {
		return err
	}

	text := &surface.TextRenderer{Out: stdout}
	surf := surface.New(surface.Config{Renderer: text, AutoRepaint: -1})
	built, err := doc.Build(surf)
	if err != nil {
		return err
	}
	text.Name = built.Name

	frame := firstNonZero(built.FrameInterval, cfg.FrameInterval, animation.DefaultFrameInterval)
	clock := &stepClock{now: time.Unix(0, 0)}
	sched := animation.NewScheduler(surf, animation.Config{FrameInterval: frame, Clock: clock})
	if err := built.PlayOn(sched); err != nil {
		return err
	}

	if frames == 0 && built.Loops() {
		frames = defaultLoopFrames
	}
	for n := 0; frames == 0 || n < frames; n++ {
		sched.Step(clock.advance(frame))
		surf.Flush()
		if frames == 0 && sched.Active() == 0 {
			break
		}
	}
	return nil
}

// stepClock is a virtual clock moved only by the trace loop.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

func firstNonZero(ds ...time.Duration) time.Duration {
	for _, d := range ds {
		if d > 0 {
			return d
		}
	}
	return 0
}
