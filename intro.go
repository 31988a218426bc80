package yule

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fade animates a single float64 field toward a target value. Create one with
// NewFade and call Update(dt) each frame; the field is written on every
// update until Done.
type Fade struct {
	tween *gween.Tween
	field *float64
	to    float64
	Done  bool
}

// NewFade returns a fade that moves *field from its current value to `to`
// over duration seconds using fn. A non-positive duration snaps the field
// immediately.
func NewFade(field *float64, to float64, duration float32, fn ease.TweenFunc) *Fade {
	if duration <= 0 {
		*field = to
		return &Fade{field: field, Done: true}
	}
	return &Fade{
		tween: gween.New(float32(*field), float32(to), duration, fn),
		field: field,
		to:    to,
	}
}

// Update advances the fade by dt seconds.
func (f *Fade) Update(dt float32) {
	if f.Done {
		return
	}
	val, finished := f.tween.Update(dt)
	*f.field = float64(val)
	if finished {
		*f.field = f.to
		f.Done = true
	}
}

// newIntro fades the renderer's tree layer in from transparent.
func newIntro(r *Renderer, duration float64) *Fade {
	r.TreeAlpha = 0
	return NewFade(&r.TreeAlpha, 1, float32(duration), ease.OutCubic)
}
