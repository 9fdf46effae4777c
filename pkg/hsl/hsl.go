// Package hsl holds the colour value carried by every firefly.
// Brightness is the HSL luminance; hue and saturation only tint the rendering.
package hsl

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Ranges of the three components.
const (
	MaxHue        = 360.0
	MaxSaturation = 100.0
	MaxLuminance  = 100.0
)

var (
	// Yellow is the colour of the regular fireflies.
	Yellow = HSL{Hue: 60, Saturation: 100, Luminance: 50}
	// Red is the colour of the reference agent.
	Red = HSL{Hue: 0, Saturation: 100, Luminance: 50}
)

// HSL is a colour with Hue in [0,360), Saturation and Luminance in [0,100].
type HSL struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Luminance  float64 `json:"luminance"`
}

// New builds a normalized colour: hue is wrapped, saturation and luminance clamped.
func New(hue, saturation, luminance float64) HSL {
	return HSL{Hue: hue, Saturation: saturation, Luminance: luminance}.Normalized()
}

// Normalized returns c with every component brought back into range.
// Out of range inputs are never rejected; NaN components become 0.
func (c HSL) Normalized() HSL {
	return HSL{
		Hue:        wrapHue(c.Hue),
		Saturation: Clamp(c.Saturation, 0, MaxSaturation),
		Luminance:  Clamp(c.Luminance, 0, MaxLuminance),
	}
}

// WithLuminance returns a copy of c with the luminance replaced (and clamped).
func (c HSL) WithLuminance(luminance float64) HSL {
	c.Luminance = Clamp(luminance, 0, MaxLuminance)
	return c
}

// AdjustLuminance adds delta to the luminance, clamped to [0,100].
func (c HSL) AdjustLuminance(delta float64) HSL {
	return c.WithLuminance(c.Luminance + delta)
}

// RGBA converts the colour for the renderer.
func (c HSL) RGBA() color.RGBA {
	n := c.Normalized()
	r, g, b := colorful.Hsl(n.Hue, n.Saturation/MaxSaturation, n.Luminance/MaxLuminance).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// FromColor converts any image/color value to HSL.
// Fully transparent colours have no meaningful hue and map to black.
func FromColor(c color.Color) HSL {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return HSL{}
	}
	h, s, l := cf.Hsl()
	return New(h, s*MaxSaturation, l*MaxLuminance)
}

// Clamp bounds v to [lo, hi]; NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v), v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

func wrapHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, MaxHue)
	if h < 0 {
		h += MaxHue
	}
	return h
}
