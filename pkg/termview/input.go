package termview

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// Pump reads terminal events until ctx is done or the screen is finalized.
// Esc, q and Ctrl-C call quit; a resize resynchronizes the screen and calls
// onResize when it is not nil.
func Pump(ctx context.Context, screen tcell.Screen, quit func(), onResize func()) {
	events := make(chan tcell.Event, 100)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if IsQuitKey(ev) && quit != nil {
					quit()
				}
			case *tcell.EventResize:
				screen.Sync()
				if onResize != nil {
					onResize()
				}
			}
		}
	}
}

// IsQuitKey reports whether ev asks to leave the player.
func IsQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
