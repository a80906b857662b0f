package main

import (
	"fmt"
	"image/color"
	"math"
)

// HSL is a single stripe's color in display units: hue in degrees,
// saturation and lightness in percent.
type HSL struct {
	Hue        float64 `json:"hue" yaml:"hue"`
	Saturation float64 `json:"saturation" yaml:"saturation"`
	Lightness  float64 `json:"lightness" yaml:"lightness"`
}

// RGB is an 8 bit per channel color. It satisfies color.Color and is always opaque.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

var _ color.Color = RGB{}

// RGBA implements color.Color
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = 0xffff
	return
}

// Hex formats the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HSLToRGB converts a HSL (Hue, Saturation, Lightness) color to RGB.
// h is a fraction of the color wheel in [0, 1), s and l are in [0, 1].
// Inputs are not validated.
func HSLToRGB(h, s, l float64) RGB {
	if s == 0 {
		v := toByte(l)
		return RGB{v, v, v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: toByte(hueToChannel(p, q, h+1.0/3)),
		G: toByte(hueToChannel(p, q, h)),
		B: toByte(hueToChannel(p, q, h-1.0/3)),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}

	// The explicit conversions keep the compiler from fusing these into
	// FMA instructions, which would change rounding on some architectures.
	switch {
	case t < 1.0/6:
		return p + float64((q-p)*6*t)
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + float64((q-p)*(2.0/3-t)*6)
	}
	return p
}

// toByte scales a [0, 1] channel to [0, 255], rounding half up.
func toByte(v float64) uint8 {
	x := math.Floor(float64(v*255) + 0.5)
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return uint8(x)
}
