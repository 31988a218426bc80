package yule

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudRefresh is how often, in seconds, the HUD text is redrawn.
const hudRefresh = 0.5

// HUD displays FPS, TPS and live entity counts in the top-left corner.
// The text is redrawn into a small image about twice a second.
type HUD struct {
	img        *ebiten.Image
	lastUpdate float64
}

// NewHUD creates a HUD. It uses ebitenutil.DebugPrint for rendering.
func NewHUD() *HUD {
	// 140x64 fits four lines of debug font.
	return &HUD{img: ebiten.NewImage(140, 64), lastUpdate: hudRefresh}
}

// Update redraws the text when the refresh interval has passed.
func (h *HUD) Update(dt float64, st *State) {
	h.lastUpdate += dt
	if h.lastUpdate < hudRefresh {
		return
	}
	h.lastUpdate = 0

	h.img.Clear()
	// Semi-transparent background for readability
	h.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(h.img, hudText(ebiten.ActualFPS(), ebiten.ActualTPS(), st))
}

// Draw composites the HUD onto screen at device scale.
func (h *HUD) Draw(screen *ebiten.Image, scale float64) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(scale, scale)
	screen.DrawImage(h.img, &op)
}

func hudText(fps, tps float64, st *State) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nrockets: %d\nsparks: %d",
		fps, tps, len(st.Rockets), len(st.Sparks))
}
