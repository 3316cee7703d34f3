package rose

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/turtacn/GeoRose/pkg/errors"
)

const (
	fullCircle = 360.0
	halfCircle = 180.0
)

// SectorCount returns ceil(360 / binWidth).  When binWidth does not divide
// 360 the last sector extends past 360.
func SectorCount(binWidth int) int {
	return (360 + binWidth - 1) / binWidth
}

// Fold maps a strike onto [0, 180).  Strikes s and s+180 describe the same
// line and fold to the same azimuth.  Negative strikes are accepted.
func Fold(strike float64) float64 {
	az := math.Mod(strike, fullCircle)
	if az < 0 {
		az += fullCircle
	}
	az = math.Mod(az, halfCircle)
	if az < 0 || az >= halfCircle {
		az = 0
	}
	return az
}

// sectorIndex returns the index i with i*w <= az < (i+1)*w, clamped to the
// last sector so that every azimuth in [0, 360] lands somewhere.
func sectorIndex(az float64, w int, n int) int {
	width := float64(w)
	i := int(math.Floor(az / width))
	// The division may round across an edge; settle on exact comparisons.
	if i > 0 && az < float64(i)*width {
		i--
	} else if az >= float64(i+1)*width {
		i++
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Aggregate folds every strike onto the half circle, mirrors it back onto the
// full circle (az and az+180, each carrying the measurement's dip) and bins
// the result into ceil(360/binWidth) sectors of binWidth degrees.  The counts
// therefore sum to 2*len(strikes).  An empty sector has MeanDip 0.
func Aggregate(strikes, dips []float64, binWidth int) ([]Sector, error) {
	if err := CheckBinWidth(binWidth); err != nil {
		return nil, err
	}
	if len(strikes) != len(dips) {
		return nil, errors.NewValidationError(Validate(strikes, dips))
	}

	n := SectorCount(binWidth)
	buckets := make([][]float64, n)
	for i, s := range strikes {
		az := Fold(s)
		for _, a := range [2]float64{az, az + halfCircle} {
			idx := sectorIndex(a, binWidth, n)
			buckets[idx] = append(buckets[idx], dips[i])
		}
	}

	sectors := make([]Sector, n)
	width := float64(binWidth)
	for i := range sectors {
		lo := float64(i) * width
		sectors[i] = Sector{
			Index:  i,
			Start:  lo,
			End:    lo + width,
			Center: lo + width/2,
			Count:  len(buckets[i]),
		}
		if len(buckets[i]) > 0 {
			sectors[i].MeanDip = stat.Mean(buckets[i], nil)
		}
	}
	return sectors, nil
}

// LegendRange returns the smallest and largest mean dip over all sectors,
// empty ones included.
func LegendRange(sectors []Sector) (min, max float64) {
	if len(sectors) == 0 {
		return 0, 0
	}
	means := make([]float64, len(sectors))
	for i, s := range sectors {
		means[i] = s.MeanDip
	}
	return floats.Min(means), floats.Max(means)
}

// Summarize computes the aggregate figures reported alongside a diagram.
func Summarize(req *Request, sectors []Sector) Summary {
	sum := Summary{
		Measurements: len(req.Strikes),
		Sectors:      len(sectors),
	}
	for i := range sectors {
		sum.TotalFolded += sectors[i].Count
		if sectors[i].Count > sum.MaxCount {
			sum.MaxCount = sectors[i].Count
			dominant := sectors[i]
			sum.DominantSector = &dominant
		}
	}
	if len(req.Dips) > 0 {
		sum.MeanDip = stat.Mean(req.Dips, nil)
	}
	sum.LegendMin, sum.LegendMax = LegendRange(sectors)
	return sum
}

//Personal.AI order the ending
