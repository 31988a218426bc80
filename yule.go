package yule

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at submission time inside each Surface.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// WithAlpha returns c with its alpha replaced by a.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Range is a general-purpose min/max range. Random draws are half-open,
// [Min, Max), matching the generation bands of the tree and fireworks.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Random returns a random float64 in [Min, Max) using rng.
func (r Range) Random(rng Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Rand is the random source used by the generators. *rand.Rand from
// math/rand/v2 satisfies it; the zero Scene uses the global source.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// globalRand adapts the package-level math/rand/v2 functions to Rand.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// DefaultRand is the process-wide random source.
var DefaultRand Rand = globalRand{}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
)

// String returns the canvas name of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendAdd:
		return "lighter"
	default:
		return "source-over"
	}
}

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	default:
		return ebiten.BlendSourceOver
	}
}

// LineCap selects how stroke ends are drawn.
type LineCap uint8

const (
	CapButt  LineCap = iota // flat end exactly at the endpoint
	CapRound                // half-disc past each endpoint
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
