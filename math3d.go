package yule

import (
	"cmp"
	"math"
	"slices"
)

// RotateY rotates (x, z) around the vertical axis by angle radians.
func RotateY(x, z, angle float64) (rx, rz float64) {
	sin, cos := math.Sincos(angle)
	return x*cos - z*sin, z*cos + x*sin
}

// Projection is a pinhole camera looking down +Z with its image plane
// centered on (CenterX, CenterY).
type Projection struct {
	FocalLength float64
	CenterX     float64
	CenterY     float64
}

// Project maps a camera-space point to the screen. scale is
// FocalLength/(FocalLength+z); it is negative for points behind the focal
// plane and infinite exactly on it.
func (p Projection) Project(x, y, z float64) (sx, sy, scale float64) {
	scale = p.FocalLength / (p.FocalLength + z)
	return p.CenterX + x*scale, p.CenterY + y*scale, scale
}

// Visible reports whether a projection scale may be drawn.
func Visible(scale float64) bool {
	return scale > 0 && !math.IsInf(scale, 0) && !math.IsNaN(scale)
}

// Projected is the per-frame screen-space view of a tree particle. It is
// rebuilt every frame from the particle's base pose and never persisted.
type Projected struct {
	Particle *TreeParticle
	RotatedZ float64
	Scale    float64
	ScreenX  float64
	ScreenY  float64
}

// ProjectParticle rotates p around the Y axis by angle and projects it.
func ProjectParticle(p *TreeParticle, angle float64, proj Projection) Projected {
	rx, rz := RotateY(p.BaseX, p.BaseZ, angle)
	sx, sy, scale := proj.Project(rx, p.BaseY, rz)
	return Projected{
		Particle: p,
		RotatedZ: rz,
		Scale:    scale,
		ScreenX:  sx,
		ScreenY:  sy,
	}
}

// ProjectTree projects every particle into dst (reusing its backing array)
// and sorts the result far to near: descending rotated depth, stable for
// equal depths. Drawing in the returned order lets nearer particles
// occlude farther ones.
func ProjectTree(dst []Projected, particles []TreeParticle, angle float64, proj Projection) []Projected {
	dst = dst[:0]
	for i := range particles {
		dst = append(dst, ProjectParticle(&particles[i], angle, proj))
	}
	SortFarToNear(dst)
	return dst
}

// SortFarToNear orders projected particles by descending RotatedZ.
func SortFarToNear(ps []Projected) {
	slices.SortStableFunc(ps, func(a, b Projected) int {
		return cmp.Compare(b.RotatedZ, a.RotatedZ)
	})
}
