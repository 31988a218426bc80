package yule

import (
	"context"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds optional configuration for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height set the initial window size in logical pixels.
	Width, Height int
	// ShowFPS enables the FPS and entity-count overlay.
	ShowFPS bool
	// Debug enables per-frame timing logs on stderr.
	Debug bool
	// ExitWhenScriptDone stops the loop once an attached TestRunner has
	// executed every step.
	ExitWhenScriptDone bool
}

// Driver adapts a Scene to ebiten.Game. It reads the window size, device
// scale and cursor on each tick and feeds their normalized values to the
// scene; all scene mutation happens inside Update.
type Driver struct {
	scene   *Scene
	surface *EbitenSurface
	hud     *HUD
	cfg     RunConfig

	stopped atomic.Bool

	// Most recent layout, applied to the scene on the next Update.
	layoutW, layoutH int
	layoutScale      float64
	applied          struct {
		w, h  int
		scale float64
	}
}

// NewDriver creates a driver for scene.
func NewDriver(scene *Scene, cfg RunConfig) *Driver {
	d := &Driver{
		scene:   scene,
		surface: NewEbitenSurface(),
		cfg:     cfg,
	}
	if cfg.ShowFPS {
		d.hud = NewHUD()
	}
	if cfg.Debug {
		scene.SetDebugMode(true)
	}
	return d
}

// Stop ends the loop: the next Update returns ebiten.Termination and no
// further frame is stepped. Safe to call from any goroutine, any number
// of times.
func (d *Driver) Stop() {
	d.stopped.Store(true)
}

// Stopped reports whether Stop has been called.
func (d *Driver) Stopped() bool {
	return d.stopped.Load()
}

// Update implements ebiten.Game.
func (d *Driver) Update() error {
	if d.stopped.Load() {
		return ebiten.Termination
	}
	d.applyLayout()
	if d.scene.testRunner == nil {
		d.pollPointer()
	}

	dt := 1.0 / float64(ebiten.TPS())
	d.scene.Step(dt)
	if d.hud != nil {
		d.hud.Update(dt, d.scene.State())
	}

	if d.cfg.ExitWhenScriptDone && d.scene.testRunner != nil &&
		d.scene.testRunner.Done() && d.scene.PendingScreenshots() == 0 {
		d.Stop()
	}
	return nil
}

// Draw implements ebiten.Game.
func (d *Driver) Draw(screen *ebiten.Image) {
	st := d.scene.State()
	if !st.Ready() {
		return
	}
	d.surface.Begin(screen, st.Scale)
	d.scene.Draw(d.surface)
	d.surface.Flush()
	d.scene.flushScreenshots(screen)
	if d.hud != nil {
		d.hud.Draw(screen, st.Scale)
	}
}

// Layout implements ebiten.Game. The scene works in logical pixels; the
// screen image is sized in device pixels.
func (d *Driver) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	if scale <= 0 {
		scale = 1
	}
	d.layoutW, d.layoutH, d.layoutScale = outsideWidth, outsideHeight, scale
	return int(float64(outsideWidth) * scale), int(float64(outsideHeight) * scale)
}

// applyLayout forwards a changed window size or device scale to the scene.
func (d *Driver) applyLayout() {
	if d.layoutScale == 0 {
		return
	}
	a := &d.applied
	if a.w == d.layoutW && a.h == d.layoutH && a.scale == d.layoutScale {
		return
	}
	a.w, a.h, a.scale = d.layoutW, d.layoutH, d.layoutScale
	d.scene.Resize(float64(a.w), float64(a.h), a.scale)
}

// pollPointer marks the pointer known while the focused window contains the
// cursor.
func (d *Driver) pollPointer() {
	st := d.scene.State()
	if !ebiten.IsFocused() || !st.Ready() {
		d.scene.ClearPointer()
		return
	}
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx)/st.Scale, float64(cy)/st.Scale
	if x < 0 || y < 0 || x >= st.Width || y >= st.Height {
		d.scene.ClearPointer()
		return
	}
	d.scene.SetPointer(x, y)
}

// Run opens a window and runs scene until the window is closed.
func Run(scene *Scene, cfg RunConfig) error {
	return RunContext(context.Background(), scene, cfg)
}

// RunContext is Run with cancellation: the loop stops on the first tick
// after ctx is done.
func RunContext(ctx context.Context, scene *Scene, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 1000
	}
	if h <= 0 {
		h = 800
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	d := NewDriver(scene, cfg)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			d.Stop()
		case <-done:
		}
	}()
	return ebiten.RunGame(d)
}
