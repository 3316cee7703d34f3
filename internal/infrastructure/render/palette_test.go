package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/palette"

	"github.com/turtacn/GeoRose/internal/domain/rose"
	pkgerrors "github.com/turtacn/GeoRose/pkg/errors"
)

func TestColorMapFor_AllPalettes(t *testing.T) {
	for _, name := range rose.Palettes() {
		cm, err := ColorMapFor(name)
		require.NoError(t, err, name)
		assert.Equal(t, 0.0, cm.Min(), name)
		assert.Equal(t, 1.0, cm.Max(), name)
		for _, v := range []float64{0, 0.5, 1} {
			c, err := cm.At(v)
			require.NoError(t, err, "%s at %g", name, v)
			assert.NotNil(t, c)
		}
	}
}

func TestColorMapFor_Unknown(t *testing.T) {
	_, err := ColorMapFor("jet")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodePaletteUnsupported))
}

func TestGradient_Endpoints(t *testing.T) {
	cm, err := ColorMapFor(rose.PaletteGreenRed)
	require.NoError(t, err)

	lo, _ := cm.At(0)
	mid, _ := cm.At(0.5)
	hi, _ := cm.At(1)
	assert.Equal(t, color.NRGBA{R: 0, G: 128, B: 0, A: 255}, lo)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 0, A: 255}, mid)
	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 0, A: 255}, hi)

	rev, err := ColorMapFor(rose.PaletteRedGreen)
	require.NoError(t, err)
	revLo, _ := rev.At(0)
	assert.Equal(t, hi, revLo)
}

func TestGradient_Viridis(t *testing.T) {
	cm, err := ColorMapFor(rose.PaletteViridis)
	require.NoError(t, err)
	lo, _ := cm.At(0)
	hi, _ := cm.At(1)
	assert.Equal(t, color.NRGBA{R: 0x44, G: 0x01, B: 0x54, A: 255}, lo)
	assert.Equal(t, color.NRGBA{R: 0xfd, G: 0xe7, B: 0x25, A: 255}, hi)
}

func TestGradient_RangeErrors(t *testing.T) {
	cm, err := ColorMapFor(rose.PaletteMagma)
	require.NoError(t, err)

	_, err = cm.At(-0.1)
	assert.Equal(t, palette.ErrUnderflow, err)
	_, err = cm.At(1.1)
	assert.Equal(t, palette.ErrOverflow, err)

	cm.SetMin(30)
	cm.SetMax(30)
	_, err = cm.At(30)
	assert.Error(t, err)
}

func TestGradient_AlphaAndPalette(t *testing.T) {
	cm, err := ColorMapFor(rose.PaletteTurbo)
	require.NoError(t, err)
	cm.SetAlpha(0.5)
	assert.Equal(t, 0.5, cm.Alpha())

	c, _ := cm.At(0.3)
	assert.Equal(t, uint8(128), c.(color.NRGBA).A)

	assert.Len(t, cm.Palette(5).Colors(), 5)
}

func TestSectorColors(t *testing.T) {
	cm, err := ColorMapFor(rose.PaletteGreenRed)
	require.NoError(t, err)

	d := &rose.Diagram{Sectors: []rose.Sector{{MeanDip: 0}, {MeanDip: 30}, {MeanDip: 60}}}
	colors, err := SectorColors(d, cm)
	require.NoError(t, err)
	require.Len(t, colors, 3)

	first, _ := cm.At(0)
	mid, _ := cm.At(0.5)
	last, _ := cm.At(1)
	assert.Equal(t, first, colors[0])
	assert.Equal(t, mid, colors[1])
	assert.Equal(t, last, colors[2])
}

func TestSectorColors_NonPositiveMaxIsClamped(t *testing.T) {
	cm, err := ColorMapFor(rose.PaletteViridis)
	require.NoError(t, err)

	d := &rose.Diagram{Sectors: []rose.Sector{{MeanDip: -5}, {MeanDip: 0}}}
	colors, err := SectorColors(d, cm)
	require.NoError(t, err)
	zero, _ := cm.At(0)
	assert.Equal(t, zero, colors[0])
	assert.Equal(t, zero, colors[1])
}

//Personal.AI order the ending
