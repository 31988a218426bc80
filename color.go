package yule

import (
	"math"

	"github.com/crazy3lf/colorconv"
)

// rgb8 builds an opaque Color from 8-bit channels.
func rgb8(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// Tree palettes. Ornament colors are the "lights": they twinkle deeper and glow.
var (
	FoliagePalette = [4]Color{
		rgb8(0x0F, 0x9D, 0x58),
		rgb8(0x34, 0xA8, 0x53),
		rgb8(0x0B, 0x80, 0x43),
		rgb8(0x1E, 0x8E, 0x3E),
	}
	OrnamentPalette = [4]Color{
		rgb8(0xFF, 0x33, 0x33), // red
		rgb8(0xFF, 0xD7, 0x00), // gold
		rgb8(0xFF, 0xFF, 0xFF), // snow
		rgb8(0x00, 0xFF, 0xFF), // cyan
	}
	// StarColor is the apex star fill and glow color.
	StarColor = rgb8(0xFF, 0xD7, 0x00)
	// BackgroundColor is the clear color of windowed hosts.
	BackgroundColor = rgb8(0x05, 0x05, 0x05)
)

// IsOrnamentColor reports whether c is one of the four light colors.
func IsOrnamentColor(c Color) bool {
	for _, o := range OrnamentPalette {
		if o == c {
			return true
		}
	}
	return false
}

// normalizeHue wraps h into [0, 360).
func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// HSLA converts hue in degrees (any value, wrapped), saturation and
// lightness in percent, and alpha in [0, 1] to a Color.
func HSLA(h, s, l, a float64) Color {
	r, g, b, err := colorconv.HSLToRGB(normalizeHue(h), clamp01(s/100), clamp01(l/100))
	if err != nil {
		return ColorWhite.WithAlpha(clamp01(a))
	}
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, clamp01(a)}
}

// HSL is HSLA with full opacity.
func HSL(h, s, l float64) Color {
	return HSLA(h, s, l, 1)
}
