package yule

import "math"

// Rocket is a rising projectile. It climbs at a constant Speed (screen Y
// decreasing) until Y reaches TargetY, then bursts into sparks.
type Rocket struct {
	X, Y         float64
	PrevX, PrevY float64
	TargetY      float64
	Hue          float64
	Speed        float64
}

// Spark is one burst particle. Alpha starts at 1 and only decreases.
type Spark struct {
	X, Y         float64
	PrevX, PrevY float64
	VX, VY       float64
	Alpha        float64
	Hue          float64
	Saturation   float64
	Lightness    float64
	Decay        float64
}

// Spawner creates rockets and bursts.
type Spawner struct {
	cfg *FireworkConfig
	rng Rand
}

// NewSpawner returns a spawner reading its tunables from cfg, which may be
// edited live.
func NewSpawner(cfg *FireworkConfig, rng Rand) *Spawner {
	if rng == nil {
		rng = DefaultRand
	}
	return &Spawner{cfg: cfg, rng: rng}
}

// CanLaunch reports whether the spark cap leaves room for a new rocket.
func (sp *Spawner) CanLaunch(liveSparks int) bool {
	return sp.cfg.SparkCap <= 0 || liveSparks < sp.cfg.SparkCap
}

// TryLaunch rolls the per-frame launch chance and, when the spark cap
// allows, returns a new rocket for a surface of the given size.
func (sp *Spawner) TryLaunch(width, height float64, liveSparks int) (Rocket, bool) {
	if !sp.CanLaunch(liveSparks) || sp.rng.Float64() >= sp.cfg.LaunchChance {
		return Rocket{}, false
	}
	return sp.NewRocket(width, height), true
}

// NewRocket creates a rocket below the bottom edge, inside a horizontal band
// centered on the surface, aimed at the upper detonation band.
func (sp *Spawner) NewRocket(width, height float64) Rocket {
	x := width/2 + (sp.rng.Float64()-0.5)*(width*sp.cfg.LaunchSpread)
	y := height + sp.cfg.LaunchDepth
	band := sp.cfg.TargetBand
	targetY := height*band.Min + sp.rng.Float64()*height*(band.Max-band.Min)
	return Rocket{
		X:       x,
		Y:       y,
		PrevX:   x,
		PrevY:   y,
		TargetY: targetY,
		Hue:     math.Floor(sp.rng.Float64() * 360),
		Speed:   sp.cfg.RocketSpeed.Random(sp.rng),
	}
}

// BurstCount draws the number of sparks for one detonation.
func (sp *Spawner) BurstCount() int {
	lo, hi := sp.cfg.BurstMin, sp.cfg.BurstMax
	if hi <= lo {
		return lo
	}
	return lo + sp.rng.IntN(hi-lo+1)
}

// Explode appends a burst of sparks radiating from r's position to dst and
// returns the extended slice. No physics is applied here.
func (sp *Spawner) Explode(dst []Spark, r *Rocket) []Spark {
	n := sp.BurstCount()
	dst = growSparks(dst, n)
	for i := 0; i < n; i++ {
		angle := sp.rng.Float64() * math.Pi * 2
		// Uniform speed in [0, max) leaves most sparks near the core with
		// a few fast outliers once drag compounds.
		speed := sp.rng.Float64() * sp.cfg.SparkSpeed
		sin, cos := math.Sincos(angle)
		dst = append(dst, Spark{
			X:          r.X,
			Y:          r.Y,
			PrevX:      r.X,
			PrevY:      r.Y,
			VX:         cos * speed,
			VY:         sin * speed,
			Alpha:      1,
			Hue:        r.Hue + (sp.rng.Float64()-0.5)*sp.cfg.HueVariance,
			Saturation: sp.cfg.Saturation.Random(sp.rng),
			Lightness:  sp.cfg.Lightness.Random(sp.rng),
			Decay:      sp.cfg.Decay.Random(sp.rng),
		})
	}
	return dst
}

// growSparks ensures dst has room for n more sparks without reallocating
// inside the burst loop.
func growSparks(dst []Spark, n int) []Spark {
	if cap(dst)-len(dst) >= n {
		return dst
	}
	grown := make([]Spark, len(dst), len(dst)+n+len(dst)/2)
	copy(grown, dst)
	return grown
}
