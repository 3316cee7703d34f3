package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"

	"github.com/turtacn/GeoRose/internal/domain/rose"
	"github.com/turtacn/GeoRose/pkg/errors"
)

// Control stops sampled evenly from the matplotlib maps of the same name.
var gradientStops = map[rose.PaletteName][]string{
	rose.PaletteViridis: {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
	rose.PalettePlasma:  {"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"},
	rose.PaletteInferno: {"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4"},
	rose.PaletteMagma:   {"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"},
	rose.PaletteCividis: {"#00224e", "#123570", "#3b496c", "#575d6d", "#707173", "#8a8779", "#a69d75", "#c4b56c", "#e4cf5b", "#fee838"},
	rose.PaletteTurbo: {"#30123b", "#4145ab", "#4675ed", "#39a2fc", "#1bcfd4", "#24eca6", "#61fc6c", "#a4fc3b",
		"#d1e834", "#f3c63a", "#fe9b2d", "#f36315", "#d93806", "#b11901", "#7a0402"},
	rose.PaletteGreenRed: {"#008000", "#ffff00", "#ff0000"},
	rose.PaletteRedGreen: {"#ff0000", "#ffff00", "#008000"},
}

// ColorMapFor returns a fresh color map spanning [0, 1] for name.
func ColorMapFor(name rose.PaletteName) (palette.ColorMap, error) {
	var cm palette.ColorMap
	if name == rose.PaletteCoolwarm {
		cm = moreland.SmoothBlueRed()
	} else {
		stops, ok := gradientStops[name]
		if !ok {
			return nil, errors.New(errors.ErrCodePaletteUnsupported, "unsupported palette: "+name.String())
		}
		g, err := newGradient(stops)
		if err != nil {
			return nil, err
		}
		cm = g
	}
	cm.SetMin(0)
	cm.SetMax(1)
	return cm, nil
}

// gradient is a palette.ColorMap interpolating linearly in sRGB between
// evenly spaced control stops.
type gradient struct {
	stops    []color.NRGBA
	min, max float64
	alpha    float64
}

func newGradient(hexes []string) (*gradient, error) {
	if len(hexes) < 2 {
		return nil, fmt.Errorf("render: gradient needs at least two stops")
	}
	stops := make([]color.NRGBA, len(hexes))
	for i, h := range hexes {
		c, err := parseHex(h)
		if err != nil {
			return nil, err
		}
		stops[i] = c
	}
	return &gradient{stops: stops, max: 1, alpha: 1}, nil
}

func parseHex(s string) (color.NRGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("render: bad color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

func (g *gradient) At(v float64) (color.Color, error) {
	switch {
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case g.max <= g.min:
		return nil, fmt.Errorf("render: color map max (%g) must exceed min (%g)", g.max, g.min)
	case v < g.min:
		return nil, palette.ErrUnderflow
	case v > g.max:
		return nil, palette.ErrOverflow
	}

	t := (v - g.min) / (g.max - g.min) * float64(len(g.stops)-1)
	i := int(math.Floor(t))
	if i >= len(g.stops)-1 {
		i = len(g.stops) - 2
	}
	f := t - float64(i)
	a, b := g.stops[i], g.stops[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*f))
	}
	return color.NRGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: uint8(math.Round(g.alpha * 255)),
	}, nil
}

func (g *gradient) Max() float64       { return g.max }
func (g *gradient) SetMax(v float64)   { g.max = v }
func (g *gradient) Min() float64       { return g.min }
func (g *gradient) SetMin(v float64)   { g.min = v }
func (g *gradient) Alpha() float64     { return g.alpha }
func (g *gradient) SetAlpha(a float64) { g.alpha = a }
func (g *gradient) Palette(n int) palette.Palette {
	if n < 2 {
		n = 2
	}
	out := make(colorList, n)
	step := (g.max - g.min) / float64(n-1)
	for i := range out {
		v := g.min + float64(i)*step
		if i == n-1 {
			v = g.max
		}
		c, err := g.At(v)
		if err != nil {
			c = color.Transparent
		}
		out[i] = c
	}
	return out
}

type colorList []color.Color

func (l colorList) Colors() []color.Color { return l }

// SectorColors maps each sector's mean dip onto cm.  Values are normalised
// by the largest mean dip (left as-is when that is not positive) and clamped
// into the color map's range.
func SectorColors(d *rose.Diagram, cm palette.ColorMap) ([]color.Color, error) {
	maxDip := d.MaxMeanDip()
	out := make([]color.Color, len(d.Sectors))
	for i, s := range d.Sectors {
		v := s.MeanDip
		if maxDip > 0 {
			v /= maxDip
		}
		v = math.Max(cm.Min(), math.Min(cm.Max(), v))
		c, err := cm.At(v)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeRenderFailed, "color lookup failed")
		}
		out[i] = c
	}
	return out, nil
}

//Personal.AI order the ending
