package yule

import "math"

// TreeParticle is one static point of the tree field. Base coordinates are
// the reference pose; the rotated and projected view is recomputed each
// frame by ProjectParticle.
type TreeParticle struct {
	BaseX, BaseY, BaseZ float64
	Radius              float64
	Color               Color
	Alpha               float64
	// Ornament marks a particle colored from OrnamentPalette.
	Ornament bool
	// Star marks the apex star.
	Star bool
}

// IsLight reports whether the particle twinkles and glows as a light.
func (p *TreeParticle) IsLight() bool {
	return p.Ornament || p.Star
}

// TreeDimensions returns the tree height and base radius for a surface.
func TreeDimensions(width, height float64, cfg TreeConfig) (treeHeight, baseRadius float64) {
	treeHeight = math.Min(height*cfg.HeightFraction, cfg.MaxHeight)
	baseRadius = math.Min(width*cfg.RadiusFraction, cfg.MaxRadius)
	return treeHeight, baseRadius
}

// GenerateTree builds the cone-spiral field for a surface of the given
// size: cfg.ParticleCount spiral particles followed by exactly one star.
// The result is a fresh slice; callers replace the previous field wholesale.
func GenerateTree(width, height float64, cfg TreeConfig, rng Rand) []TreeParticle {
	if rng == nil {
		rng = DefaultRand
	}
	count := max(cfg.ParticleCount, 0)
	treeHeight, baseRadius := TreeDimensions(width, height, cfg)

	particles := make([]TreeParticle, 0, count+1)
	for i := 0; i < count; i++ {
		progress := float64(i) / float64(count)
		// Screen y grows downward: progress 0 is the wide base at +H/2 and
		// the cone narrows to the apex at -H/2.
		y := (progress - 0.5) * treeHeight * -1
		radius := baseRadius * (1 - progress)
		angle := progress * math.Pi * 2 * cfg.SpiralLoops

		sin, cos := math.Sincos(angle)
		x := cos*radius + (rng.Float64()-0.5)*cfg.Jitter
		z := sin*radius + (rng.Float64()-0.5)*cfg.Jitter

		p := TreeParticle{BaseX: x, BaseY: y, BaseZ: z}
		if rng.Float64() < cfg.OrnamentChance {
			p.Ornament = true
			p.Color = OrnamentPalette[rng.IntN(len(OrnamentPalette))]
			p.Radius = cfg.OrnamentRadius.Random(rng)
		} else {
			p.Color = FoliagePalette[rng.IntN(len(FoliagePalette))]
			p.Radius = cfg.FoliageRadius.Random(rng)
		}
		p.Alpha = cfg.Alpha.Random(rng)
		particles = append(particles, p)
	}

	particles = append(particles, TreeParticle{
		BaseY:  -treeHeight/2 - cfg.StarOffset,
		Radius: cfg.StarRadius,
		Color:  StarColor,
		Alpha:  1,
		Star:   true,
	})
	return particles
}
