package render

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/turtacn/GeoRose/internal/domain/rose"
)

const (
	// labelMargin leaves room outside the outermost ring for bearing labels.
	labelMargin = 1.18
	spokeStep   = 30
)

// RosePlotter draws sectors as wedges on a compass: zero at north,
// bearings increasing clockwise, wedge length proportional to count.
type RosePlotter struct {
	Sectors  []rose.Sector
	Colors   []color.Color
	BinWidth float64

	// RadialMax is the count at the outermost ring; Rings holds the counts
	// at which grid circles are drawn.
	RadialMax float64
	Rings     []float64

	EdgeStyle  draw.LineStyle
	GridStyle  draw.LineStyle
	LabelStyle text.Style
}

// NewRosePlotter builds a plotter for d using one color per sector.
func NewRosePlotter(d *rose.Diagram, colors []color.Color) *RosePlotter {
	radialMax, rings := radialScale(float64(d.MaxCount()))
	return &RosePlotter{
		Sectors:   d.Sectors,
		Colors:    colors,
		BinWidth:  float64(d.BinWidth),
		RadialMax: radialMax,
		Rings:     rings,
		EdgeStyle: draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)},
		GridStyle: draw.LineStyle{
			Color:  color.Gray{Y: 176},
			Width:  vg.Points(0.5),
			Dashes: []vg.Length{vg.Points(2), vg.Points(2)},
		},
	}
}

// radialScale rounds maxCount up to the next major tick gonum would pick
// for [0, maxCount] and returns the ring positions.
func radialScale(maxCount float64) (float64, []float64) {
	if maxCount <= 0 {
		return 1, []float64{1}
	}
	var majors []float64
	for _, t := range (plot.DefaultTicks{}).Ticks(0, maxCount) {
		if t.IsMinor() {
			continue
		}
		majors = append(majors, t.Value)
	}
	step := maxCount
	if len(majors) >= 2 {
		step = majors[1] - majors[0]
	}
	radialMax := math.Ceil(maxCount/step) * step

	var rings []float64
	for v := step; v <= radialMax+step/2; v += step {
		rings = append(rings, v)
	}
	return radialMax, rings
}

func (r *RosePlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	m := r.RadialMax * labelMargin
	return -m, m, -m, m
}

// compassPoint converts a bearing in degrees and a radius into canvas
// coordinates around center.
func compassPoint(center vg.Point, radius vg.Length, bearing float64) vg.Point {
	a := mathAngle(bearing)
	return vg.Point{
		X: center.X + radius*vg.Length(math.Cos(a)),
		Y: center.Y + radius*vg.Length(math.Sin(a)),
	}
}

// mathAngle converts a compass bearing to radians counter-clockwise from
// the x axis.
func mathAngle(bearing float64) float64 {
	return math.Pi/2 - bearing*math.Pi/180
}

func (r *RosePlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	center := vg.Point{X: trX(0), Y: trY(0)}
	scale := trX(1) - center.X
	if sy := trY(1) - center.Y; sy < scale {
		scale = sy
	}
	outer := vg.Length(r.RadialMax) * scale

	labelStyle := r.LabelStyle
	if labelStyle.Font.Size == 0 {
		labelStyle = plt.X.Tick.Label
	}
	labelStyle.XAlign = draw.XCenter
	labelStyle.YAlign = draw.YCenter

	r.plotGrid(c, center, scale, outer, labelStyle)

	for i, s := range r.Sectors {
		if s.Count == 0 {
			continue
		}
		radius := vg.Length(s.Count) * scale
		start := mathAngle(s.Start)
		sweep := -r.BinWidth * math.Pi / 180

		var p vg.Path
		p.Move(center)
		p.Line(compassPoint(center, radius, s.Start))
		p.Arc(center, radius, start, sweep)
		p.Close()

		if i < len(r.Colors) && r.Colors[i] != nil {
			c.SetColor(r.Colors[i])
			c.Fill(p)
		}
		c.SetLineStyle(r.EdgeStyle)
		c.Stroke(p)
	}
}

func (r *RosePlotter) plotGrid(c draw.Canvas, center vg.Point, scale, outer vg.Length, labelStyle text.Style) {
	c.SetLineStyle(r.GridStyle)
	for _, ring := range r.Rings {
		radius := vg.Length(ring) * scale
		var p vg.Path
		p.Move(vg.Point{X: center.X + radius, Y: center.Y})
		p.Arc(center, radius, 0, 2*math.Pi)
		p.Close()
		c.Stroke(p)
	}

	for b := 0; b < 360; b += spokeStep {
		c.StrokeLine2(r.GridStyle, center.X, center.Y,
			compassPoint(center, outer, float64(b)).X, compassPoint(center, outer, float64(b)).Y)
		c.FillText(labelStyle, compassPoint(center, outer+labelStyle.Font.Size*1.6, float64(b)), strconv.Itoa(b)+"°")
	}

	// Count labels sit between the first two spokes.
	for _, ring := range r.Rings {
		pt := compassPoint(center, vg.Length(ring)*scale, spokeStep/2)
		c.FillText(labelStyle, pt, strconv.FormatFloat(ring, 'f', -1, 64))
	}
}

//Personal.AI order the ending
