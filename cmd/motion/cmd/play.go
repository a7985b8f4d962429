package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/motion/cmd/motion/internal/config"
	"github.com/go-drift/motion/cmd/motion/internal/cue"
	"github.com/go-drift/motion/pkg/animation"
	motionerrors "github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/scene"
	"github.com/go-drift/motion/pkg/shape"
	"github.com/go-drift/motion/pkg/surface"
	"github.com/go-drift/motion/pkg/termview"
)

func init() {
	RegisterCommand(&Command{
		Name:  "play",
		Short: "Play a scene in the terminal",
		Long: `Play a scene in the terminal.

The player exits once every finite animation has ended. Scenes with
repeating or oscillating animations play until you quit.

Keys:
  q, Esc, Ctrl-C    Quit`,
		Usage: "motion play <scene.yaml>",
		Run:   runPlay,
	})
}

func runPlay(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("scene file is required\n\nUsage: motion play <scene.yaml>")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	doc, err := loadScene(args[0])
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return play(ctx, screen, doc, cfg)
}

// play runs doc on screen until it settles, the user quits or ctx ends.
func play(ctx context.Context, screen tcell.Screen, doc *scene.Document, cfg *config.Resolved) error {
	renderer := termview.NewRenderer(screen)
	renderer.HideStatus = cfg.HideStatus
	surf := surface.New(surface.Config{Renderer: renderer, AutoRepaint: cfg.AutoRepaint})

	built, err := doc.Build(surf)
	if err != nil {
		return err
	}
	renderer.Name = built.Name

	sched := animation.NewScheduler(surf, animation.Config{
		FrameInterval: firstNonZero(built.FrameInterval, cfg.FrameInterval),
	})
	if err := animation.Install(sched); err != nil {
		return err
	}
	defer animation.Shutdown(surf)

	listeners := []animation.Listener{settleListener(built, surf)}
	if cfg.Cues {
		if spk, err := cue.OpenSpeaker(); err != nil {
			motionerrors.Logger().Warn("audio unavailable, cues disabled", slog.Any("err", err))
		} else {
			defer spk.Close()
			cues := &cue.Cues{Player: spk, EndTone: cfg.EndTone, RepeatTone: cfg.RepeatTone}
			listeners = append(listeners, cues.Listener())
		}
	}
	for _, a := range built.Animations {
		a.Listener(animation.Listeners(listeners...))
	}

	pumpCtx, cancelPump := context.WithCancel(ctx)
	defer cancelPump()
	go termview.Pump(pumpCtx, screen, surf.Close, surf.Repaint)

	if err := built.Play(); err != nil {
		return err
	}
	if len(built.Animations) == 0 {
		motionerrors.Logger().Info("scene has no animations")
	}

	err = surf.Run(ctx)
	if ctx.Err() != nil {
		// Interrupted by a signal.
		return nil
	}
	return err
}

// settleListener closes the surface once every finite animation has ended.
// Only the last animation of each shape plays to the end; earlier ones are
// superseded. Looping scenes never settle.
func settleListener(built *scene.Built, surf *surface.Surface) animation.Listener {
	if built.Loops() || len(built.Animations) == 0 {
		return nil
	}
	targets := make(map[shape.Shape]struct{})
	for _, a := range built.Animations {
		targets[a.Target()] = struct{}{}
	}
	var remaining atomic.Int32
	remaining.Store(int32(len(targets)))
	return animation.ListenerFuncs{
		End: func(a *animation.Animation) {
			motionerrors.Logger().Debug("animation ended", slog.String("animation", a.Name()))
			if remaining.Add(-1) == 0 {
				surf.Close()
			}
		},
	}
}
