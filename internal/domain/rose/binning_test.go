package rose

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/GeoRose/pkg/errors"
)

func TestSectorCount(t *testing.T) {
	for w := MinBinWidth; w <= MaxBinWidth; w++ {
		want := int(math.Ceil(360 / float64(w)))
		assert.Equal(t, want, SectorCount(w), "w=%d", w)
		if 360%w == 0 {
			assert.Equal(t, 360/w, SectorCount(w), "w=%d", w)
		}
	}
}

func TestFold(t *testing.T) {
	cases := map[float64]float64{
		0:     0,
		10:    10,
		190:   10,
		370:   10,
		180:   0,
		360:   0,
		-10:   170,
		-190:  170,
		-360:  0,
		359.5: 179.5,
	}
	for in, want := range cases {
		assert.InDelta(t, want, Fold(in), 1e-9, "strike %v", in)
	}
}

func TestSectorIndex_EdgesAndClamp(t *testing.T) {
	n := SectorCount(10)
	assert.Equal(t, 0, sectorIndex(0, 10, n))
	assert.Equal(t, 0, sectorIndex(9.999, 10, n))
	assert.Equal(t, 1, sectorIndex(10, 10, n))
	assert.Equal(t, 35, sectorIndex(359.9999, 10, n))
	assert.Equal(t, 35, sectorIndex(360, 10, n), "360 is clamped into the last sector")

	n7 := SectorCount(7)
	assert.Equal(t, 51, sectorIndex(359, 7, n7))
}

func TestAggregate_Example(t *testing.T) {
	sectors, err := Aggregate(repeat(10, 25), repeat(30, 25), 10)
	require.NoError(t, err)
	require.Len(t, sectors, 36)

	for _, s := range sectors {
		switch s.Index {
		case 1, 19:
			assert.Equal(t, 25, s.Count, "sector %d", s.Index)
			assert.Equal(t, 30.0, s.MeanDip)
		default:
			assert.Equal(t, 0, s.Count, "sector %d", s.Index)
			assert.Equal(t, 0.0, s.MeanDip)
		}
	}
	assert.Equal(t, 10.0, sectors[1].Start)
	assert.Equal(t, 20.0, sectors[1].End)
	assert.Equal(t, 15.0, sectors[1].Center)
	assert.Equal(t, 190.0, sectors[19].Start)
}

func TestAggregate_CountsSumToTwiceInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	strikes := make([]float64, 200)
	dips := make([]float64, 200)
	for i := range strikes {
		strikes[i] = rng.Float64()*1080 - 360
		dips[i] = rng.Float64() * 90
	}
	for _, w := range []int{1, 7, 10, 13, 45, 90} {
		sectors, err := Aggregate(strikes, dips, w)
		require.NoError(t, err)
		total := 0
		for _, s := range sectors {
			total += s.Count
			if s.Empty() {
				assert.Equal(t, 0.0, s.MeanDip)
			}
		}
		assert.Equal(t, 400, total, "w=%d", w)
	}
}

func TestAggregate_FoldingSymmetry(t *testing.T) {
	base := []float64{3, 47.5, 91, 133, 179.9}
	dips := []float64{10, 20, 30, 40, 50}
	shifted := make([]float64, len(base))
	for i, s := range base {
		shifted[i] = s + 180
	}

	a, err := Aggregate(base, dips, 10)
	require.NoError(t, err)
	b, err := Aggregate(shifted, dips, 10)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// Twin sectors are identical.
	half := len(a) / 2
	for i := 0; i < half; i++ {
		assert.Equal(t, a[i].Count, a[i+half].Count)
		assert.Equal(t, a[i].MeanDip, a[i+half].MeanDip)
	}
}

func TestAggregate_NegativeStrikes(t *testing.T) {
	sectors, err := Aggregate([]float64{-10}, []float64{45}, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, sectors[17].Count) // 170
	assert.Equal(t, 1, sectors[35].Count) // 350
}

func TestAggregate_UnevenBinWidth(t *testing.T) {
	sectors, err := Aggregate([]float64{179.5}, []float64{60}, 7)
	require.NoError(t, err)
	require.Len(t, sectors, 52)

	last := sectors[51]
	assert.Equal(t, 357.0, last.Start)
	assert.Equal(t, 364.0, last.End)
	assert.Equal(t, 1, last.Count) // 359.5
}

func TestAggregate_MeanDip(t *testing.T) {
	sectors, err := Aggregate([]float64{12, 14, 18}, []float64{10, 20, 60}, 10)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, sectors[1].MeanDip, 1e-12)
	assert.InDelta(t, 30.0, sectors[19].MeanDip, 1e-12)
}

func TestAggregate_Errors(t *testing.T) {
	_, err := Aggregate(repeat(1, 25), repeat(1, 25), 0)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBinWidthInvalid))

	_, err = Aggregate(repeat(1, 25), repeat(1, 25), 91)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBinWidthInvalid))

	_, err = Aggregate(repeat(1, 25), repeat(1, 24), 10)
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))
}

func TestLegendRange_IncludesEmptySectors(t *testing.T) {
	sectors, err := Aggregate(repeat(10, 25), repeat(30, 25), 10)
	require.NoError(t, err)

	lo, hi := LegendRange(sectors)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 30.0, hi)

	lo, hi = LegendRange(nil)
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestSummarize(t *testing.T) {
	strikes := append(repeat(10, 20), repeat(100, 10)...)
	dips := append(repeat(30, 20), repeat(60, 10)...)
	req, err := NewRequest(strikes, dips, 10, PaletteTurbo, "Outcrop")
	require.NoError(t, err)

	sectors, err := Aggregate(req.Strikes, req.Dips, req.BinWidth)
	require.NoError(t, err)
	sum := Summarize(req, sectors)

	assert.Equal(t, 30, sum.Measurements)
	assert.Equal(t, 36, sum.Sectors)
	assert.Equal(t, 60, sum.TotalFolded)
	assert.Equal(t, 20, sum.MaxCount)
	require.NotNil(t, sum.DominantSector)
	assert.Equal(t, 1, sum.DominantSector.Index, "first sector with the max count wins")
	assert.InDelta(t, 40.0, sum.MeanDip, 1e-12)
	assert.Equal(t, 0.0, sum.LegendMin)
	assert.Equal(t, 60.0, sum.LegendMax)
}

//Personal.AI order the ending
