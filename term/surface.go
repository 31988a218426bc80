// Package term runs a yule scene inside a terminal using tcell. Each cell
// stands for a block of CellWidth x CellHeight logical pixels; drawing
// commands accumulate light into the cells, which are then shown as
// colored glyphs chosen by brightness.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/yule"
)

// Logical pixels covered by one terminal cell. Cells are about twice as
// tall as they are wide.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// ramp maps brightness to glyphs, darkest first.
var ramp = []rune(" .·:*+oO#@")

// rgb is an accumulated cell color. Channels may exceed 1 under additive
// blending and are clamped on presentation.
type rgb struct {
	R, G, B float64
}

// Surface is a yule.Surface backed by a grid of terminal cells.
type Surface struct {
	cols, rows int
	cells      []rgb
	blend      yule.BlendMode

	glowRadius float64
	glowColor  yule.Color

	// Background is the clear color.
	Background yule.Color
}

// NewSurface creates a surface of cols x rows cells.
func NewSurface(cols, rows int) *Surface {
	s := &Surface{Background: yule.BackgroundColor}
	s.Resize(cols, rows)
	return s
}

// Resize changes the grid size and clears it.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.cells = make([]rgb, s.cols*s.rows)
	s.Clear()
}

// Size returns the grid size in cells.
func (s *Surface) Size() (cols, rows int) {
	return s.cols, s.rows
}

// LogicalSize returns the surface size in logical pixels.
func (s *Surface) LogicalSize() (width, height float64) {
	return float64(s.cols) * CellWidth, float64(s.rows) * CellHeight
}

// Cell returns the clamped color of a cell, or the zero color outside the
// grid.
func (s *Surface) Cell(col, row int) yule.Color {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return yule.Color{}
	}
	c := s.cells[row*s.cols+col]
	return yule.Color{R: math.Min(c.R, 1), G: math.Min(c.G, 1), B: math.Min(c.B, 1), A: 1}
}

func (s *Surface) Clear() {
	bg := rgb{s.Background.R, s.Background.G, s.Background.B}
	for i := range s.cells {
		s.cells[i] = bg
	}
	s.blend = yule.BlendNormal
	s.glowRadius = 0
}

func (s *Surface) SetBlendMode(mode yule.BlendMode) { s.blend = mode }

func (s *Surface) SetGlow(radius float64, c yule.Color) {
	s.glowRadius = radius
	s.glowColor = c
}

func (s *Surface) ResetGlow() { s.glowRadius = 0 }

// deposit blends c at coverage weight into the cell containing (x, y).
func (s *Surface) deposit(x, y float64, c yule.Color, weight float64) {
	col := int(math.Floor(x / CellWidth))
	row := int(math.Floor(y / CellHeight))
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}
	a := c.A * math.Min(weight, 1)
	if a <= 0 {
		return
	}
	cell := &s.cells[row*s.cols+col]
	switch s.blend {
	case yule.BlendAdd:
		cell.R += c.R * a
		cell.G += c.G * a
		cell.B += c.B * a
	default:
		cell.R += (c.R - cell.R) * a
		cell.G += (c.G - cell.G) * a
		cell.B += (c.B - cell.B) * a
	}
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c yule.Color, lineCap yule.LineCap) {
	if width <= 0 {
		return
	}
	length := math.Hypot(x1-x0, y1-y0)
	// Coverage of one sample: how much of a cell the stroke fills.
	weight := width / CellWidth
	if length == 0 {
		if lineCap == yule.CapRound {
			s.deposit(x0, y0, c, weight)
		}
		return
	}
	steps := max(int(math.Ceil(length/(CellWidth/2))), 1)
	per := weight * (length / float64(steps)) / CellHeight
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.deposit(x0+(x1-x0)*t, y0+(y1-y0)*t, c, per)
	}
}

func (s *Surface) FillCircle(cx, cy, r float64, c yule.Color) {
	if r <= 0 {
		return
	}
	if s.glowRadius > 0 {
		s.halo(cx, cy, r+s.glowRadius, c.A)
	}
	area := math.Pi * r * r
	cellArea := CellWidth * CellHeight
	if r < CellWidth/2 {
		s.deposit(cx, cy, c, area/cellArea*4)
		return
	}
	s.eachCellWithin(cx, cy, r, func(x, y, d float64) {
		s.deposit(x, y, c, 1)
	})
}

// halo adds the glow color with a quadratic falloff to cells within r,
// always additively.
func (s *Surface) halo(cx, cy, r, alpha float64) {
	prev := s.blend
	s.blend = yule.BlendAdd
	g := s.glowColor
	g.A *= alpha * 0.35
	s.eachCellWithin(cx, cy, r, func(x, y, d float64) {
		t := 1 - d/r
		s.deposit(x, y, g, t*t)
	})
	s.blend = prev
}

// eachCellWithin calls fn with the center of every cell whose center lies
// within r of (cx, cy), and that center's distance.
func (s *Surface) eachCellWithin(cx, cy, r float64, fn func(x, y, d float64)) {
	c0 := int(math.Floor((cx - r) / CellWidth))
	c1 := int(math.Floor((cx + r) / CellWidth))
	r0 := int(math.Floor((cy - r) / CellHeight))
	r1 := int(math.Floor((cy + r) / CellHeight))
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, s.cols-1), min(r1, s.rows-1)
	hit := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			x := (float64(col) + 0.5) * CellWidth
			y := (float64(row) + 0.5) * CellHeight
			if d := math.Hypot(x-cx, y-cy); d <= r {
				fn(x, y, d)
				hit = true
			}
		}
	}
	if !hit {
		// Small shapes between cell centers still light their own cell.
		fn(cx, cy, 0)
	}
}

// Glyph returns the character and style used to show a cell.
func (s *Surface) Glyph(col, row int) (rune, tcell.Style) {
	c := s.Cell(col, row)
	bg := s.Background
	lum := math.Max(c.R, math.Max(c.G, c.B))
	base := math.Max(bg.R, math.Max(bg.G, bg.B))
	bgColor := tcell.NewRGBColor(to8(bg.R), to8(bg.G), to8(bg.B))
	if lum <= base+0.02 {
		return ' ', tcell.StyleDefault.Background(bgColor)
	}
	idx := int(math.Round(lum * float64(len(ramp)-1)))
	idx = min(max(idx, 1), len(ramp)-1)
	fg := tcell.NewRGBColor(to8(c.R), to8(c.G), to8(c.B))
	return ramp[idx], tcell.StyleDefault.Foreground(fg).Background(bgColor)
}

// Show copies the grid to screen and flushes it.
func (s *Surface) Show(screen tcell.Screen) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			ch, st := s.Glyph(col, row)
			screen.SetContent(col, row, ch, nil, st)
		}
	}
	screen.Show()
}

func to8(v float64) int32 {
	return int32(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
