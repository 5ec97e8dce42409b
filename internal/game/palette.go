package game

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Add(dr, dg, db int) RGB {
	r := int(c.R) + dr
	g := int(c.G) + dg
	b := int(c.B) + db
	if r < 0 {
		r = 0
	} else if r > 255 {
		r = 255
	}
	if g < 0 {
		g = 0
	} else if g > 255 {
		g = 255
	}
	if b < 0 {
		b = 0
	} else if b > 255 {
		b = 255
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// Floats returns the channels scaled to [0,1].
func (c RGB) Floats() (float32, float32, float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

// HSL builds a colour from hue in degrees (wrapped) and saturation/lightness in [0,1].
func HSL(h, s, l float64) RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, clampF(s, 0, 1), clampF(l, 0, 1)).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

func lerpRGB(a, b RGB, t float64) RGB {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendRgb(cb, clampF(t, 0, 1)).Clamped().RGB255()
	return RGB{R: r, G: g, B: bl}
}

// RandomHue picks a saturated colour anywhere on the wheel.
func RandomHue(r *Rand) RGB {
	return HSL(r.RangeF(0, 360), 0.75, 0.62)
}

// PositionHue maps a point inside a w×h surface onto the hue wheel.
func PositionHue(x, y, w, h float64) RGB {
	if w <= 0 || h <= 0 {
		return HSL(0, 0.85, 0.6)
	}
	return HSL(x/w*240+y/h*120, 0.85, 0.6)
}

var Palette = struct {
	Background    RGB
	Highlight     RGB
	Line          RGB
	Star          RGB
	HoleDisk      RGB
	HoleRim       RGB
	TempHoleDisk  RGB
	TempHoleRim   RGB
	NovaRing      RGB
	NovaHot       RGB
	NovaCore      RGB
	NovaDebris    RGB
	NovaDebrisHot RGB
}{
	Background:    RGB{R: 0, G: 0, B: 20},
	Highlight:     RGB{R: 255, G: 255, B: 255},
	Line:          RGB{R: 120, G: 170, B: 255},
	Star:          RGB{R: 220, G: 225, B: 255},
	HoleDisk:      RGB{R: 100, G: 200, B: 255},
	HoleRim:       RGB{R: 50, G: 50, B: 100},
	TempHoleDisk:  RGB{R: 150, G: 200, B: 255},
	TempHoleRim:   RGB{R: 80, G: 50, B: 120},
	NovaRing:      RGB{R: 255, G: 180, B: 90},
	NovaHot:       RGB{R: 255, G: 245, B: 200},
	NovaCore:      RGB{R: 255, G: 140, B: 60},
	NovaDebris:    RGB{R: 200, G: 90, B: 255},
	NovaDebrisHot: RGB{R: 255, G: 120, B: 200},
}
