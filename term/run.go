package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/yule"
)

// Options configures Run.
type Options struct {
	// FPS is the frame rate. Zero means 30.
	FPS int
	// PointerIdle forgets the pointer after this long without a mouse event,
	// since terminals do not report the mouse leaving. Zero means 3s.
	PointerIdle time.Duration
	// MaxFrames stops the loop after this many frames. Zero runs until
	// cancelled or the user quits.
	MaxFrames int
}

func (o Options) withDefaults() Options {
	if o.FPS <= 0 {
		o.FPS = 30
	}
	if o.PointerIdle <= 0 {
		o.PointerIdle = 3 * time.Second
	}
	return o
}

// Run drives scene on an initialized screen until ctx is done, the user
// presses Esc, q or Ctrl-C, or MaxFrames is reached. The caller owns the
// screen and must call Fini after Run returns.
//
// Events are read on a separate goroutine and handed to the frame loop over
// a channel; the scene is only touched by the loop.
func Run(ctx context.Context, screen tcell.Screen, scene *yule.Scene, opts Options) error {
	opts = opts.withDefaults()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go pollEvents(screen, events, quit)

	surface := NewSurface(0, 0)
	resize := func() {
		cols, rows := screen.Size()
		surface.Resize(cols, rows)
		w, h := surface.LogicalSize()
		scene.Resize(w, h, 1)
	}
	resize()

	frame := time.Second / time.Duration(opts.FPS)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	var lastMouse time.Time
	for n := 0; opts.MaxFrames == 0 || n < opts.MaxFrames; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

	drain:
		for {
			select {
			case ev := <-events:
				switch ev := ev.(type) {
				case *tcell.EventKey:
					if isQuit(ev) {
						return nil
					}
				case *tcell.EventResize:
					screen.Sync()
					resize()
				case *tcell.EventMouse:
					col, row := ev.Position()
					scene.SetPointer((float64(col)+0.5)*CellWidth, (float64(row)+0.5)*CellHeight)
					lastMouse = time.Now()
				case *tcell.EventFocus:
					if !ev.Focused {
						scene.ClearPointer()
					}
				}
			default:
				break drain
			}
		}
		if !lastMouse.IsZero() && time.Since(lastMouse) > opts.PointerIdle {
			scene.ClearPointer()
			lastMouse = time.Time{}
		}

		scene.Step(frame.Seconds())
		scene.Draw(surface)
		surface.Show(screen)
	}
	return nil
}

// pollEvents forwards screen events until the screen is finalized or quit
// is closed.
func pollEvents(screen tcell.Screen, out chan<- tcell.Event, quit <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-quit:
			return
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
