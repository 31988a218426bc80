package yule

import (
	"math"
	"time"
)

// Renderer issues the drawing commands for one frame of a State. It owns
// the projection buffer so steady-state frames do not allocate.
type Renderer struct {
	cfg       *Config
	projected []Projected

	// TreeAlpha scales the opacity of the whole tree layer. The intro fade
	// drives it from 0 to 1.
	TreeAlpha float64

	stats renderStats
}

// renderStats is filled by Draw for the debug log.
type renderStats struct {
	projectTime time.Duration
	drawTime    time.Duration
	drawn       int
	culled      int
}

// NewRenderer returns a renderer reading its tunables from cfg.
func NewRenderer(cfg *Config) *Renderer {
	return &Renderer{cfg: cfg, TreeAlpha: 1}
}

// Projection returns the camera for a surface of the given logical size.
func (r *Renderer) Projection(width, height float64) Projection {
	return Projection{
		FocalLength: r.cfg.Camera.FocalLength,
		CenterX:     width / 2,
		CenterY:     height/2 + r.cfg.Camera.OffsetY,
	}
}

// Draw renders st onto s. elapsed is the time since the scene started; it
// drives the twinkle phase.
func (r *Renderer) Draw(s Surface, st *State, elapsed time.Duration) {
	s.Clear()
	r.drawFireworks(s, st)

	t0 := time.Now()
	r.projected = ProjectTree(r.projected, st.Tree, st.Rotation, r.Projection(st.Width, st.Height))
	r.stats.projectTime = time.Since(t0)

	t0 = time.Now()
	r.drawTree(s, float64(elapsed)/float64(time.Millisecond))
	r.stats.drawTime = time.Since(t0)
}

func (r *Renderer) drawFireworks(s Surface, st *State) {
	fw := &r.cfg.Fireworks
	s.SetBlendMode(BlendAdd)
	for _, rockets := range [2][]Rocket{st.Rockets, st.Detonated} {
		for i := range rockets {
			rk := &rockets[i]
			s.StrokeLine(rk.PrevX, rk.PrevY, rk.X, rk.Y, fw.RocketWidth, HSL(rk.Hue, 100, 60), CapButt)
		}
	}
	for i := range st.Sparks {
		sp := &st.Sparks[i]
		width := math.Max(fw.MinSparkWidth, fw.SparkWidth*sp.Alpha)
		s.StrokeLine(sp.PrevX, sp.PrevY, sp.X, sp.Y, width,
			HSLA(sp.Hue, sp.Saturation, sp.Lightness, sp.Alpha), CapRound)
	}
	s.SetBlendMode(BlendNormal)
}

// drawTree paints the projected particles in their sorted order. tms is
// elapsed milliseconds.
func (r *Renderer) drawTree(s Surface, tms float64) {
	glow := r.cfg.Glow
	r.stats.drawn, r.stats.culled = 0, 0
	for i := range r.projected {
		pp := &r.projected[i]
		if !Visible(pp.Scale) {
			r.stats.culled++
			continue
		}
		p := pp.Particle
		alpha := r.Twinkle(p, tms) * r.TreeAlpha
		switch {
		case p.Star:
			s.SetGlow(glow.Star*pp.Scale, StarColor)
		case p.Ornament:
			s.SetGlow(glow.Light*pp.Scale, p.Color)
		}
		s.FillCircle(pp.ScreenX, pp.ScreenY, p.Radius*pp.Scale, p.Color.WithAlpha(alpha))
		s.ResetGlow()
		r.stats.drawn++
	}
}

// Twinkle returns the opacity of p at tms milliseconds. Lights swing
// between LightBase-LightDepth and LightBase+LightDepth; foliage wobbles
// around its own alpha and is clamped to [0, 1].
func (r *Renderer) Twinkle(p *TreeParticle, tms float64) float64 {
	tw := &r.cfg.Twinkle
	if p.IsLight() {
		return tw.LightBase + tw.LightDepth*math.Sin(tms*tw.LightSpeed+p.BaseY*tw.LightPhase)
	}
	return clamp01(p.Alpha + tw.FoliageDepth*math.Sin(tms*tw.FoliageSpeed+p.BaseY*tw.FoliagePhase))
}
