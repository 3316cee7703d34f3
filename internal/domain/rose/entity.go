// Package rose holds the strike/dip domain: measurements, the immutable
// diagram request, sample validation and the sector aggregation engine.
// Nothing here performs I/O.
package rose

import (
	"strconv"
	"strings"

	"github.com/turtacn/GeoRose/pkg/errors"
)

const (
	// MinSamples is the smallest number of strikes (and dips) accepted.
	MinSamples = 25

	MinBinWidth     = 1
	MaxBinWidth     = 90
	DefaultBinWidth = 10
	DefaultTitle    = "Rose Diagram"
)

// Measurement is one strike/dip reading in degrees.  Dip is never range
// checked.
type Measurement struct {
	Strike float64 `json:"strike"`
	Dip    float64 `json:"dip"`
}

// PaletteName identifies one of the supported color maps.
type PaletteName string

const (
	PaletteViridis  PaletteName = "viridis"
	PalettePlasma   PaletteName = "plasma"
	PaletteInferno  PaletteName = "inferno"
	PaletteMagma    PaletteName = "magma"
	PaletteCividis  PaletteName = "cividis"
	PaletteCoolwarm PaletteName = "coolwarm"
	PaletteTurbo    PaletteName = "turbo"
	PaletteGreenRed PaletteName = "green_red"
	PaletteRedGreen PaletteName = "red_green"

	DefaultPalette = PaletteViridis
)

// Palettes lists every supported palette in display order.
func Palettes() []PaletteName {
	return []PaletteName{
		PaletteViridis, PalettePlasma, PaletteInferno, PaletteMagma, PaletteCividis,
		PaletteCoolwarm, PaletteTurbo, PaletteGreenRed, PaletteRedGreen,
	}
}

// IsValid reports whether p is a supported palette.
func (p PaletteName) IsValid() bool {
	for _, known := range Palettes() {
		if p == known {
			return true
		}
	}
	return false
}

func (p PaletteName) String() string { return string(p) }

// ParsePalette resolves a palette name.  Matching ignores case and
// surrounding whitespace; an empty name yields DefaultPalette.
func ParsePalette(s string) (PaletteName, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultPalette, nil
	}
	p := PaletteName(s)
	if !p.IsValid() {
		return "", errors.New(errors.ErrCodePaletteUnsupported, "unsupported palette: "+s).
			WithDetail("expected one of " + strings.Join(PaletteStrings(), ", "))
	}
	return p, nil
}

// PaletteStrings returns Palettes as plain strings.
func PaletteStrings() []string {
	out := make([]string, 0, 9)
	for _, p := range Palettes() {
		out = append(out, p.String())
	}
	return out
}

// Request is the immutable input of one diagram generation.  Construct it
// with NewRequest; the slices are private copies and must not be modified.
type Request struct {
	Strikes  []float64
	Dips     []float64
	BinWidth int
	Palette  PaletteName
	Title    string
}

// NewRequest copies the measurement slices and checks the rendering
// parameters.  Sample counts are checked separately by Validate so that
// every data problem can be reported at once.
func NewRequest(strikes, dips []float64, binWidth int, palette PaletteName, title string) (*Request, error) {
	if err := CheckBinWidth(binWidth); err != nil {
		return nil, err
	}
	if !palette.IsValid() {
		return nil, errors.New(errors.ErrCodePaletteUnsupported, "unsupported palette: "+palette.String())
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	return &Request{
		Strikes:  append([]float64(nil), strikes...),
		Dips:     append([]float64(nil), dips...),
		BinWidth: binWidth,
		Palette:  palette,
		Title:    title,
	}, nil
}

// Measurements pairs strikes with dips index by index.  Only meaningful on a
// request that passed Validate.
func (r *Request) Measurements() []Measurement {
	n := len(r.Strikes)
	if len(r.Dips) < n {
		n = len(r.Dips)
	}
	out := make([]Measurement, n)
	for i := 0; i < n; i++ {
		out[i] = Measurement{Strike: r.Strikes[i], Dip: r.Dips[i]}
	}
	return out
}

// CheckBinWidth returns an error unless w is within [MinBinWidth, MaxBinWidth].
func CheckBinWidth(w int) error {
	if w < MinBinWidth || w > MaxBinWidth {
		return errors.New(errors.ErrCodeBinWidthInvalid, "bin width must be within [1, 90] degrees").
			WithDetail("got " + strconv.Itoa(w))
	}
	return nil
}

// Sector is one angular bin [Start, End) of the full circle.
type Sector struct {
	Index   int     `json:"index"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Center  float64 `json:"center"`
	Count   int     `json:"count"`
	MeanDip float64 `json:"mean_dip"`
}

// Empty reports whether no folded measurement fell into s.
func (s Sector) Empty() bool { return s.Count == 0 }

// Diagram is everything a renderer needs.
type Diagram struct {
	Title     string      `json:"title"`
	BinWidth  int         `json:"bin_width"`
	Palette   PaletteName `json:"palette"`
	Sectors   []Sector    `json:"sectors"`
	LegendMin float64     `json:"legend_min"`
	LegendMax float64     `json:"legend_max"`
}

// NewDiagram assembles a Diagram from a request and its aggregated sectors.
func NewDiagram(req *Request, sectors []Sector) *Diagram {
	lo, hi := LegendRange(sectors)
	return &Diagram{
		Title:     req.Title,
		BinWidth:  req.BinWidth,
		Palette:   req.Palette,
		Sectors:   sectors,
		LegendMin: lo,
		LegendMax: hi,
	}
}

// DisplayTitle is the title drawn on the figure, e.g. "Rose Diagram (Bin: 10°)".
func (d *Diagram) DisplayTitle() string {
	return d.Title + " (Bin: " + strconv.Itoa(d.BinWidth) + "°)"
}

// MaxCount is the highest sector count, 0 for no sectors.
func (d *Diagram) MaxCount() int {
	m := 0
	for _, s := range d.Sectors {
		if s.Count > m {
			m = s.Count
		}
	}
	return m
}

// MaxMeanDip is the largest sector mean dip, 0 for no sectors.
func (d *Diagram) MaxMeanDip() float64 {
	if len(d.Sectors) == 0 {
		return 0
	}
	m := d.Sectors[0].MeanDip
	for _, s := range d.Sectors[1:] {
		if s.MeanDip > m {
			m = s.MeanDip
		}
	}
	return m
}

// Summary describes one generation for logs, CLI output and API responses.
type Summary struct {
	Measurements   int     `json:"measurements"`
	Sectors        int     `json:"sectors"`
	TotalFolded    int     `json:"total_folded"`
	MaxCount       int     `json:"max_count"`
	DominantSector *Sector `json:"dominant_sector,omitempty"`
	MeanDip        float64 `json:"mean_dip"`
	LegendMin      float64 `json:"legend_min"`
	LegendMax      float64 `json:"legend_max"`
}

//Personal.AI order the ending
