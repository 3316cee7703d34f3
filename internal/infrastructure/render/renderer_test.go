package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/GeoRose/internal/domain/rose"
	pkgerrors "github.com/turtacn/GeoRose/pkg/errors"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func sampleDiagram(t *testing.T, palette rose.PaletteName, binWidth int) *rose.Diagram {
	t.Helper()
	strikes := make([]float64, 40)
	dips := make([]float64, 40)
	for i := range strikes {
		strikes[i] = float64(i * 9)
		dips[i] = float64(20 + i)
	}
	req, err := rose.NewRequest(strikes, dips, binWidth, palette, "Test Outcrop")
	require.NoError(t, err)
	sectors, err := rose.Aggregate(req.Strikes, req.Dips, req.BinWidth)
	require.NoError(t, err)
	return rose.NewDiagram(req, sectors)
}

func smallRenderer() *Renderer {
	return NewRenderer(Options{WidthInches: 2, HeightInches: 2, DPI: 60}, nil)
}

func TestNewRenderer_Defaults(t *testing.T) {
	r := NewRenderer(Options{}, nil)
	w, h := r.PixelSize()
	assert.Equal(t, 3000, w)
	assert.Equal(t, 3000, h)
}

func TestRender_PNG(t *testing.T) {
	r := smallRenderer()
	var buf bytes.Buffer
	require.NoError(t, r.Render(sampleDiagram(t, rose.PaletteViridis, 10), &buf))

	require.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
	cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Width)
	assert.Equal(t, 120, cfg.Height)
}

func TestRenderPNG_EveryPalette(t *testing.T) {
	r := smallRenderer()
	for _, p := range rose.Palettes() {
		out, err := r.RenderPNG(sampleDiagram(t, p, 15))
		require.NoError(t, err, p)
		assert.True(t, bytes.HasPrefix(out, pngSignature), p)
	}
}

func TestRender_UniformLegend(t *testing.T) {
	// Every sector empty: legend min == max == 0.
	d := &rose.Diagram{Title: "Empty", BinWidth: 45, Palette: rose.PaletteCoolwarm, Sectors: make([]rose.Sector, 8)}
	for i := range d.Sectors {
		d.Sectors[i] = rose.Sector{Index: i, Start: float64(i * 45), End: float64(i*45 + 45)}
	}
	out, err := smallRenderer().RenderPNG(d)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, pngSignature))
}

func TestPlot_TitleAndLegend(t *testing.T) {
	rosePlot, legend, err := smallRenderer().Plot(sampleDiagram(t, rose.PaletteMagma, 10))
	require.NoError(t, err)
	assert.Equal(t, "Test Outcrop (Bin: 10°)", rosePlot.Title.Text)
	assert.Equal(t, LegendLabel, legend.Y.Label.Text)
}

func TestPlot_UnknownPalette(t *testing.T) {
	d := sampleDiagram(t, rose.PaletteViridis, 10)
	d.Palette = "rainbow"
	_, _, err := smallRenderer().Plot(d)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodePaletteUnsupported))
}

func TestRadialScale(t *testing.T) {
	max, rings := radialScale(25)
	assert.GreaterOrEqual(t, max, 25.0)
	require.NotEmpty(t, rings)
	assert.Equal(t, max, rings[len(rings)-1])

	max, rings = radialScale(0)
	assert.Equal(t, 1.0, max)
	assert.Equal(t, []float64{1}, rings)
}

func TestRosePlotter_DataRange(t *testing.T) {
	p := NewRosePlotter(sampleDiagram(t, rose.PaletteViridis, 30), nil)
	xmin, xmax, ymin, ymax := p.DataRange()
	assert.Equal(t, -xmax, xmin)
	assert.Equal(t, -ymax, ymin)
	assert.InDelta(t, p.RadialMax*labelMargin, xmax, 1e-9)
}

func TestMathAngle(t *testing.T) {
	assert.InDelta(t, 1.5707963, mathAngle(0), 1e-6) // north points up
	assert.InDelta(t, 0, mathAngle(90), 1e-9)        // east points right
	assert.InDelta(t, -1.5707963, mathAngle(180), 1e-6)
}

//Personal.AI order the ending
