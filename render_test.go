package yule

import (
	"math"
	"testing"
	"time"
)

func newTestRenderer() (*Renderer, *Config) {
	cfg := DefaultConfig()
	return NewRenderer(&cfg), &cfg
}

func TestDrawCommandOrder(t *testing.T) {
	r, _ := newTestRenderer()
	st := &State{
		Width: 1000, Height: 800,
		Rockets: []Rocket{{X: 1, Y: 2, PrevX: 1, PrevY: 22, Hue: 10}},
		Sparks:  []Spark{{X: 5, Y: 5, PrevX: 4, PrevY: 4, Alpha: 1, Lightness: 80, Saturation: 90}},
		Tree:    []TreeParticle{{Radius: 2, Alpha: 1, Color: FoliagePalette[0]}},
	}
	var rec Recorder
	r.Draw(&rec, st, 0)

	want := []CommandType{
		CommandClear,
		CommandBlend, CommandLine, CommandLine, CommandBlend,
		CommandCircle, CommandResetGlow,
	}
	if len(rec.Commands) != len(want) {
		t.Fatalf("got %d commands, want %d: %+v", len(rec.Commands), len(want), rec.Commands)
	}
	for i, typ := range want {
		if rec.Commands[i].Type != typ {
			t.Errorf("command %d = %v, want %v", i, rec.Commands[i].Type, typ)
		}
	}
	if rec.Commands[1].Blend != BlendAdd || rec.Commands[4].Blend != BlendNormal {
		t.Errorf("blends = %v, %v; want lighter then source-over",
			rec.Commands[1].Blend, rec.Commands[4].Blend)
	}
}

func TestDrawRocketTrail(t *testing.T) {
	r, _ := newTestRenderer()
	st := &State{
		Width: 1000, Height: 800,
		Rockets: []Rocket{{X: 100, Y: 380, PrevX: 100, PrevY: 400, Hue: 120}},
	}
	var rec Recorder
	r.Draw(&rec, st, 0)

	lines := rec.Filter(CommandLine)
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	l := lines[0]
	assertNear(t, "X0", l.X0, 100)
	assertNear(t, "Y0", l.Y0, 400)
	assertNear(t, "X1", l.X1, 100)
	assertNear(t, "Y1", l.Y1, 380)
	assertNear(t, "width", l.Width, 3)
	if l.Cap != CapButt {
		t.Errorf("cap = %v, want butt", l.Cap)
	}
	if want := HSL(120, 100, 60); l.Color != want {
		t.Errorf("color = %+v, want %+v", l.Color, want)
	}
}

func TestDrawSparkWidth(t *testing.T) {
	tests := []struct {
		alpha, width float64
	}{
		{1, 2.5},
		{0.5, 1.25},
		{0.04, 0.1},
		{0.01, 0.1},
	}
	r, _ := newTestRenderer()
	for _, tt := range tests {
		st := &State{
			Width: 1000, Height: 800,
			Sparks: []Spark{{Alpha: tt.alpha, Hue: 30, Saturation: 90, Lightness: 70}},
		}
		var rec Recorder
		r.Draw(&rec, st, 0)
		l := rec.Filter(CommandLine)[0]
		assertNear(t, "width", l.Width, tt.width)
		assertNear(t, "alpha", l.Color.A, tt.alpha)
		if l.Cap != CapRound {
			t.Errorf("alpha %v: cap = %v, want round", tt.alpha, l.Cap)
		}
	}
}

func TestDrawTreeFarToNear(t *testing.T) {
	r, _ := newTestRenderer()
	st := &State{
		Width: 1000, Height: 800,
		Tree: []TreeParticle{
			{BaseZ: -100, Radius: 10, Alpha: 1, Color: FoliagePalette[0]},
			{BaseZ: 100, Radius: 10, Alpha: 1, Color: FoliagePalette[1]},
			{BaseZ: 0, Radius: 10, Alpha: 1, Color: FoliagePalette[2]},
		},
	}
	var rec Recorder
	r.Draw(&rec, st, 0)

	circles := rec.Filter(CommandCircle)
	if len(circles) != 3 {
		t.Fatalf("circles = %d, want 3", len(circles))
	}
	assertNear(t, "far radius", circles[0].Width, 10*800.0/900)
	assertNear(t, "mid radius", circles[1].Width, 10)
	assertNear(t, "near radius", circles[2].Width, 10*800.0/700)
	for i, c := range circles {
		assertNear(t, "center x", c.X0, 500)
		assertNear(t, "center y", c.Y0, 500)
		if want := FoliagePalette[[]int{1, 2, 0}[i]]; c.Color.WithAlpha(want.A) != want {
			t.Errorf("circle %d drawn out of order", i)
		}
	}
}

func TestDrawTreeCullsBehindCamera(t *testing.T) {
	r, _ := newTestRenderer()
	st := &State{
		Width: 1000, Height: 800,
		Tree: []TreeParticle{
			{BaseZ: -900, Radius: 3, Alpha: 1},
			{BaseZ: -800, Radius: 3, Alpha: 1},
			{BaseZ: 0, Radius: 3, Alpha: 1},
		},
	}
	var rec Recorder
	r.Draw(&rec, st, 0)
	if n := rec.Count(CommandCircle); n != 1 {
		t.Errorf("circles = %d, want 1", n)
	}
	if r.stats.culled != 2 || r.stats.drawn != 1 {
		t.Errorf("drawn %d culled %d, want 1 and 2", r.stats.drawn, r.stats.culled)
	}
}

func TestDrawTreeGlow(t *testing.T) {
	r, _ := newTestRenderer()
	light := OrnamentPalette[2]
	st := &State{
		Width: 1000, Height: 800,
		Tree: []TreeParticle{
			{BaseZ: 100, Radius: 1, Alpha: 0.7, Color: FoliagePalette[0]},
			{BaseZ: 0, Radius: 3, Alpha: 0.7, Color: light, Ornament: true},
			{BaseZ: -100, Radius: 12, Alpha: 1, Color: StarColor, Star: true},
		},
	}
	var rec Recorder
	r.Draw(&rec, st, 0)

	tree := rec.Commands[3:] // clear, two blend switches
	want := []CommandType{
		CommandCircle, CommandResetGlow,
		CommandGlow, CommandCircle, CommandResetGlow,
		CommandGlow, CommandCircle, CommandResetGlow,
	}
	if len(tree) != len(want) {
		t.Fatalf("tree commands = %d, want %d: %+v", len(tree), len(want), tree)
	}
	for i, typ := range want {
		if tree[i].Type != typ {
			t.Fatalf("tree command %d = %v, want %v", i, tree[i].Type, typ)
		}
	}
	assertNear(t, "light glow", tree[2].Width, 20)
	if tree[2].Color != light {
		t.Errorf("light glow color = %+v, want %+v", tree[2].Color, light)
	}
	assertNear(t, "star glow", tree[5].Width, 50*800.0/700)
	if tree[5].Color != StarColor {
		t.Errorf("star glow color = %+v, want gold", tree[5].Color)
	}
}

func TestTwinkle(t *testing.T) {
	r, cfg := newTestRenderer()
	peakLight := math.Pi / 2 / cfg.Twinkle.LightSpeed
	peakFoliage := math.Pi / 2 / cfg.Twinkle.FoliageSpeed
	troughFoliage := 3 * math.Pi / 2 / cfg.Twinkle.FoliageSpeed

	tests := []struct {
		name string
		p    TreeParticle
		tms  float64
		want float64
	}{
		{"light at rest", TreeParticle{Ornament: true}, 0, 0.8},
		{"light peak", TreeParticle{Ornament: true}, peakLight, 1.0},
		{"star trough", TreeParticle{Star: true}, 3 * peakLight, 0.6},
		{"foliage at rest", TreeParticle{Alpha: 0.5}, 0, 0.5},
		{"foliage peak", TreeParticle{Alpha: 0.5}, peakFoliage, 0.7},
		{"foliage clamped high", TreeParticle{Alpha: 0.9}, peakFoliage, 1},
		{"foliage trough", TreeParticle{Alpha: 0.5}, troughFoliage, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNear(t, "twinkle", r.Twinkle(&tt.p, tt.tms), tt.want)
		})
	}
}

func TestTwinkleBounds(t *testing.T) {
	r, _ := newTestRenderer()
	tree := GenerateTree(1000, 800, DefaultConfig().Tree, newTestRand())
	for tms := 0.0; tms < 20000; tms += 333 {
		for i := range tree {
			p := &tree[i]
			a := r.Twinkle(p, tms)
			if p.IsLight() {
				if a < 0.6-epsilon || a > 1+epsilon {
					t.Fatalf("light twinkle %v outside [0.6, 1]", a)
				}
			} else if a < 0 || a > 1 {
				t.Fatalf("foliage twinkle %v outside [0, 1]", a)
			}
		}
	}
}

func TestDrawUsesElapsedAndTreeAlpha(t *testing.T) {
	r, cfg := newTestRenderer()
	st := &State{
		Width: 1000, Height: 800,
		Tree: []TreeParticle{{Radius: 2, Ornament: true, Color: OrnamentPalette[0]}},
	}
	peak := time.Duration(math.Pi / 2 / cfg.Twinkle.LightSpeed * float64(time.Millisecond))

	var rec Recorder
	r.Draw(&rec, st, peak)
	c := rec.Filter(CommandCircle)[0]
	if math.Abs(c.Color.A-1) > 1e-6 {
		t.Errorf("alpha at peak = %v, want 1", c.Color.A)
	}

	r.TreeAlpha = 0.5
	r.Draw(&rec, st, 0)
	c = rec.Filter(CommandCircle)[0]
	assertNear(t, "faded alpha", c.Color.A, 0.4)
}

func TestRendererProjection(t *testing.T) {
	r, _ := newTestRenderer()
	p := r.Projection(1000, 800)
	assertNear(t, "CenterX", p.CenterX, 500)
	assertNear(t, "CenterY", p.CenterY, 500)
	assertNear(t, "FocalLength", p.FocalLength, 800)
}
