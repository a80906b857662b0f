package main

import (
	"fmt"
	"math"
)

// PaletteConfig is everything one render pass is derived from. Hues are in
// degrees, saturation and lightness in percent.
type PaletteConfig struct {
	HueStart   float64
	HueEnd     float64
	Steps      int
	Saturation float64
	Lightness  float64
}

// Stripe is one band of the rendered palette.
type Stripe struct {
	Index     int       `json:"index" yaml:"index"`
	HSL       HSL       `json:"hsl" yaml:"hsl"`
	RGB       RGB       `json:"rgb" yaml:"rgb"`
	Placement Placement `json:"placement" yaml:"placement"`
}

// Label is the text shown on a stripe: its HSL coordinate rounded to whole
// units on the first line and its RGB triple on the second.
func (s Stripe) Label() string {
	return fmt.Sprintf("HSL %v, %v, %v\nRGB %d, %d, %d",
		math.Round(s.HSL.Hue), math.Round(s.HSL.Saturation), math.Round(s.HSL.Lightness),
		s.RGB.R, s.RGB.G, s.RGB.B)
}

// BuildPalette expands cfg into its stripes, in index order.
func BuildPalette(cfg PaletteConfig) ([]Stripe, error) {
	hues, err := GenerateHues(cfg.HueStart, cfg.HueEnd, cfg.Steps)
	if err != nil {
		return nil, err
	}

	stripes := make([]Stripe, len(hues))
	for i, hue := range hues {
		stripes[i] = Stripe{
			Index: i,
			HSL: HSL{
				Hue:        hue,
				Saturation: cfg.Saturation,
				Lightness:  cfg.Lightness,
			},
			RGB:       HSLToRGB(hue/360, cfg.Saturation/100, cfg.Lightness/100),
			Placement: LabelPlacement(i, len(hues)),
		}
	}
	return stripes, nil
}

// Placement says which way a stripe's label extends from the stripe.
type Placement int

const (
	PlacementCenter Placement = iota
	PlacementLeft
	PlacementRight
)

func (p Placement) String() string {
	switch p {
	case PlacementLeft:
		return "left"
	case PlacementRight:
		return "right"
	default:
		return "center"
	}
}

// MarshalText implements encoding.TextMarshaler
func (p Placement) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Placement) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left":
		*p = PlacementLeft
	case "right":
		*p = PlacementRight
	case "center":
		*p = PlacementCenter
	default:
		return fmt.Errorf("unknown placement %q", text)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (p Placement) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// LabelPlacement keeps the labels of the outermost stripes inside the palette:
// the first one extends right, the last one left, the rest are centered.
func LabelPlacement(index, total int) Placement {
	switch {
	case index == 0:
		return PlacementRight
	case index == total-1:
		return PlacementLeft
	default:
		return PlacementCenter
	}
}
