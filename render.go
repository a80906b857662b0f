package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/fogleman/gg"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatPNG  = "png"
)

// Renderer writes a palette somewhere a person can look at it.
type Renderer interface {
	Render(w io.Writer, stripes []Stripe) error
}

func newRenderer(out OutputSettings) (Renderer, error) {
	switch out.Format {
	case formatText:
		// renders are buffered, so the profile comes from where they end up
		profile := termenv.Ascii
		if out.File == "" {
			profile = termenv.EnvColorProfile()
		}
		return &TextRenderer{Labels: out.Labels, Profile: &profile}, nil
	case formatJSON:
		return JSONRenderer{}, nil
	case formatYAML:
		return YAMLRenderer{}, nil
	case formatPNG:
		return &PNGRenderer{Width: out.Width, Height: out.Height, Labels: out.Labels}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", out.Format)
}

// TextRenderer prints one line per stripe: a color swatch followed by the
// stripe's values. The swatch degrades to blanks on terminals without color.
type TextRenderer struct {
	Labels bool
	// Profile overrides terminal detection when set.
	Profile *termenv.Profile
}

const swatch = "        "

func (r *TextRenderer) Render(w io.Writer, stripes []Stripe) error {
	opts := []termenv.OutputOption{}
	if r.Profile != nil {
		opts = append(opts, termenv.WithProfile(*r.Profile))
	}
	out := termenv.NewOutput(w, opts...)

	for _, s := range stripes {
		line := out.String(swatch).Background(out.Color(s.RGB.Hex())).String()
		if r.Labels {
			line += fmt.Sprintf(" %2d  %s  %s", s.Index, strings.ReplaceAll(s.Label(), "\n", "  "), s.RGB.Hex())
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

type JSONRenderer struct{}

func (JSONRenderer) Render(w io.Writer, stripes []Stripe) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stripes)
}

type YAMLRenderer struct{}

func (YAMLRenderer) Render(w io.Writer, stripes []Stripe) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(stripes); err != nil {
		return err
	}
	return enc.Close()
}

// PNGRenderer draws the stripes as vertical bands of equal width, give or
// take the pixel left over when Width is not a multiple of the stripe count.
type PNGRenderer struct {
	Width  int
	Height int
	Labels bool
}

const (
	labelPadding    = 4.0
	labelLineHeight = 15.0
)

func (r *PNGRenderer) Render(w io.Writer, stripes []Stripe) error {
	if len(stripes) == 0 {
		return fmt.Errorf("nothing to draw")
	}

	dc := gg.NewContext(r.Width, r.Height)
	n := len(stripes)

	// band i covers [i*Width/n, (i+1)*Width/n), so widths differ by at most a pixel
	bandEdges := func(i int) (float64, float64) {
		x0 := i * r.Width / n
		x1 := (i + 1) * r.Width / n
		return float64(x0), float64(x1 - x0)
	}

	for i, s := range stripes {
		x, width := bandEdges(i)
		dc.SetColor(s.RGB)
		dc.DrawRectangle(x, 0, width, float64(r.Height))
		dc.Fill()
	}

	if r.Labels {
		for i, s := range stripes {
			x, width := bandEdges(i)
			r.drawLabel(dc, s, x, width)
		}
	}

	return dc.EncodePNG(w)
}

// drawLabel puts the stripe label in a white box near the bottom of the band,
// extending in the direction given by the stripe's placement.
func (r *PNGRenderer) drawLabel(dc *gg.Context, s Stripe, x, bandWidth float64) {
	lines := strings.Split(s.Label(), "\n")

	var boxWidth float64
	for _, line := range lines {
		if lw, _ := dc.MeasureString(line); lw > boxWidth {
			boxWidth = lw
		}
	}
	boxWidth += 2 * labelPadding
	boxHeight := float64(len(lines))*labelLineHeight + 2*labelPadding

	var left float64
	switch s.Placement {
	case PlacementRight:
		left = x
	case PlacementLeft:
		left = x + bandWidth - boxWidth
	default:
		left = x + (bandWidth-boxWidth)/2
	}
	top := float64(r.Height) - boxHeight - labelPadding

	dc.SetColor(color.White)
	dc.DrawRectangle(left, top, boxWidth, boxHeight)
	dc.Fill()

	dc.SetColor(color.Black)
	for i, line := range lines {
		dc.DrawStringAnchored(line, left+labelPadding, top+labelPadding+float64(i)*labelLineHeight, 0, 1)
	}
}
