package yule

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchVertices flushes a batch before it grows past this many vertices.
const maxBatchVertices = 1 << 15

// glowTextureRadius is the radius in pixels of the halo in the atlas. The
// halo is scaled to each glow's size on the GPU.
const glowTextureRadius = 64

// The atlas holds the halo at the origin and a 3x3 white block one pixel to
// its right. Solid shapes sample the center of the block, so lines, discs
// and halos share one source image and one batch.
const (
	atlasWhiteX = 2*glowTextureRadius + 1
	atlasWidth  = atlasWhiteX + 3
	atlasHeight = 2 * glowTextureRadius

	solidSrcX = atlasWhiteX + 1.5
	solidSrcY = 1.5
)

var atlasImage = generateAtlas()

// EbitenSurface draws onto an *ebiten.Image. Lines and circles are
// tessellated into triangles and batched per blend mode and source image;
// glows are a feathered halo drawn under the glowing shape.
//
// Call Begin before issuing commands and Flush after the last one.
type EbitenSurface struct {
	target *ebiten.Image
	scale  float64
	blend  BlendMode

	glowRadius float64
	glowColor  Color

	verts    []ebiten.Vertex
	inds     []uint32
	batchImg *ebiten.Image

	// Background fills the target on Clear.
	Background Color
}

// NewEbitenSurface returns a surface that clears to BackgroundColor.
func NewEbitenSurface() *EbitenSurface {
	return &EbitenSurface{
		scale:      1,
		Background: BackgroundColor,
		verts:      make([]ebiten.Vertex, 0, 4096),
		inds:       make([]uint32, 0, 8192),
	}
}

// Begin binds the target for a frame. scale converts logical coordinates
// to device pixels.
func (s *EbitenSurface) Begin(target *ebiten.Image, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.target = target
	s.scale = scale
	s.blend = BlendNormal
	s.glowRadius = 0
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
	s.batchImg = nil
}

// Flush submits pending geometry.
func (s *EbitenSurface) Flush() {
	if len(s.inds) == 0 || s.target == nil {
		s.verts = s.verts[:0]
		s.inds = s.inds[:0]
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = s.blend.EbitenBlend()
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	s.target.DrawTriangles32(s.verts, s.inds, s.batchImg, &op)
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
}

func (s *EbitenSurface) Clear() {
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
	if s.target == nil {
		return
	}
	bg := s.Background
	s.target.Fill(color.NRGBA{
		R: uint8(clamp01(bg.R) * 255),
		G: uint8(clamp01(bg.G) * 255),
		B: uint8(clamp01(bg.B) * 255),
		A: uint8(clamp01(bg.A) * 255),
	})
}

func (s *EbitenSurface) SetBlendMode(mode BlendMode) {
	if mode == s.blend {
		return
	}
	s.Flush()
	s.blend = mode
}

func (s *EbitenSurface) SetGlow(radius float64, c Color) {
	s.glowRadius = radius
	s.glowColor = c
}

func (s *EbitenSurface) ResetGlow() {
	s.glowRadius = 0
}

// use switches the batch source image, flushing when it changes or the
// batch would overflow.
func (s *EbitenSurface) use(img *ebiten.Image, extraVerts int) {
	if s.batchImg != img || len(s.verts)+extraVerts > maxBatchVertices {
		s.Flush()
		s.batchImg = img
	}
}

func (s *EbitenSurface) StrokeLine(x0, y0, x1, y1, width float64, c Color, lineCap LineCap) {
	if width <= 0 || c.A <= 0 {
		return
	}
	k := s.scale
	x0, y0, x1, y1, width = x0*k, y0*k, x1*k, y1*k, width*k
	hw := width / 2

	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		// A zero-length round-capped stroke is a dot.
		if lineCap == CapRound {
			s.fan(x0, y0, hw, 0, 2*math.Pi, c)
		}
		return
	}
	// Unit normal scaled to half width.
	nx, ny := -dy/length*hw, dx/length*hw

	s.use(atlasImage, 4)
	base := uint32(len(s.verts))
	s.verts = append(s.verts,
		solidVertex(x0+nx, y0+ny, c),
		solidVertex(x1+nx, y1+ny, c),
		solidVertex(x0-nx, y0-ny, c),
		solidVertex(x1-nx, y1-ny, c),
	)
	s.inds = append(s.inds, base, base+1, base+2, base+1, base+3, base+2)

	if lineCap == CapRound {
		angle := math.Atan2(dy, dx)
		s.fan(x1, y1, hw, angle-math.Pi/2, angle+math.Pi/2, c)
		s.fan(x0, y0, hw, angle+math.Pi/2, angle+3*math.Pi/2, c)
	}
}

func (s *EbitenSurface) FillCircle(cx, cy, r float64, c Color) {
	if r <= 0 || c.A <= 0 {
		return
	}
	k := s.scale
	cx, cy, r = cx*k, cy*k, r*k
	if s.glowRadius > 0 {
		gc := s.glowColor
		gc.A *= c.A
		s.halo(cx, cy, r+s.glowRadius*k, gc)
	}
	s.fan(cx, cy, r, 0, 2*math.Pi, c)
}

// fan appends a triangle fan covering the arc [a0, a1] of a disc, in device
// pixels.
func (s *EbitenSurface) fan(cx, cy, r, a0, a1 float64, c Color) {
	if r <= 0 {
		return
	}
	segs := arcSegments(r, a1-a0)
	s.use(atlasImage, segs+2)
	center := uint32(len(s.verts))
	s.verts = append(s.verts, solidVertex(cx, cy, c))
	step := (a1 - a0) / float64(segs)
	for i := 0; i <= segs; i++ {
		sin, cos := math.Sincos(a0 + step*float64(i))
		s.verts = append(s.verts, solidVertex(cx+cos*r, cy+sin*r, c))
	}
	for i := uint32(1); i <= uint32(segs); i++ {
		s.inds = append(s.inds, center, center+i, center+i+1)
	}
}

// arcSegments picks a tessellation density for an arc of radius r pixels.
func arcSegments(r, sweep float64) int {
	full := int(math.Ceil(r * 1.5))
	full = min(max(full, 8), 48)
	// The tolerance keeps a half turn from rounding up to an extra segment.
	n := int(math.Ceil(float64(full)*math.Abs(sweep)/(2*math.Pi) - 1e-9))
	return max(n, 2)
}

// halo draws the feathered glow texture centered on (cx, cy) with outer
// radius r, tinted by c.
func (s *EbitenSurface) halo(cx, cy, r float64, c Color) {
	s.use(atlasImage, 4)
	size := float32(2 * glowTextureRadius)
	pr, pg, pb, pa := premultiply(c)
	x0, y0 := float32(cx-r), float32(cy-r)
	x1, y1 := float32(cx+r), float32(cy+r)
	base := uint32(len(s.verts))
	s.verts = append(s.verts,
		ebiten.Vertex{DstX: x0, DstY: y0, SrcX: 0, SrcY: 0, ColorR: pr, ColorG: pg, ColorB: pb, ColorA: pa},
		ebiten.Vertex{DstX: x1, DstY: y0, SrcX: size, SrcY: 0, ColorR: pr, ColorG: pg, ColorB: pb, ColorA: pa},
		ebiten.Vertex{DstX: x0, DstY: y1, SrcX: 0, SrcY: size, ColorR: pr, ColorG: pg, ColorB: pb, ColorA: pa},
		ebiten.Vertex{DstX: x1, DstY: y1, SrcX: size, SrcY: size, ColorR: pr, ColorG: pg, ColorB: pb, ColorA: pa},
	)
	s.inds = append(s.inds, base, base+1, base+2, base+1, base+3, base+2)
}

func premultiply(c Color) (r, g, b, a float32) {
	a = float32(clamp01(c.A))
	return float32(clamp01(c.R)) * a, float32(clamp01(c.G)) * a, float32(clamp01(c.B)) * a, a
}

func solidVertex(x, y float64, c Color) ebiten.Vertex {
	r, g, b, a := premultiply(c)
	return ebiten.Vertex{
		DstX: float32(x), DstY: float32(y),
		SrcX: solidSrcX, SrcY: solidSrcY,
		ColorR: r, ColorG: g, ColorB: b, ColorA: a,
	}
}

// generateAtlas creates the halo, a feathered white disc of
// glowTextureRadius, next to the white block. The falloff is quadratic so
// the halo reads as a soft blur rather than a rim. Pixels are premultiplied.
func generateAtlas() *ebiten.Image {
	w, h := atlasWidth, atlasHeight
	img := ebiten.NewImage(w, h)
	pix := make([]byte, w*h*4)

	rf := float64(glowTextureRadius)
	for y := 0; y < h; y++ {
		for x := 0; x < 2*glowTextureRadius; x++ {
			dx := float64(x) + 0.5 - rf
			dy := float64(y) + 0.5 - rf
			dist := math.Sqrt(dx*dx+dy*dy) / rf

			var alpha float64
			if dist < 1 {
				t := 1 - dist
				alpha = t * t
			}

			a := uint8(alpha * 255)
			off := (y*w + x) * 4
			pix[off+0] = a
			pix[off+1] = a
			pix[off+2] = a
			pix[off+3] = a
		}
	}
	for y := 0; y < 3; y++ {
		for x := atlasWhiteX; x < w; x++ {
			off := (y*w + x) * 4
			pix[off+0], pix[off+1], pix[off+2], pix[off+3] = 0xff, 0xff, 0xff, 0xff
		}
	}
	img.WritePixels(pix)
	return img
}
