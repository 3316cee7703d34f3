// Package render draws rose diagrams with gonum/plot and encodes them as
// PNG images.
package render

import (
	"bytes"
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/turtacn/GeoRose/internal/domain/rose"
	"github.com/turtacn/GeoRose/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRose/pkg/errors"
)

const (
	DefaultSizeInches = 10.0
	DefaultDPI        = 300

	LegendLabel = "Average Dip (°)"
)

// Options controls the output figure.
type Options struct {
	WidthInches  float64
	HeightInches float64
	DPI          int
}

// Renderer turns a rose.Diagram into a PNG figure: the rose on the left
// and a vertical color bar on the right.
type Renderer struct {
	width  vg.Length
	height vg.Length
	dpi    int
	logger logging.Logger
}

func NewRenderer(opts Options, logger logging.Logger) *Renderer {
	if opts.WidthInches <= 0 {
		opts.WidthInches = DefaultSizeInches
	}
	if opts.HeightInches <= 0 {
		opts.HeightInches = DefaultSizeInches
	}
	if opts.DPI <= 0 {
		opts.DPI = DefaultDPI
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Renderer{
		width:  vg.Length(opts.WidthInches) * vg.Inch,
		height: vg.Length(opts.HeightInches) * vg.Inch,
		dpi:    opts.DPI,
		logger: logger,
	}
}

// PixelSize is the size of the encoded image.
func (r *Renderer) PixelSize() (w, h int) {
	dpi := float64(r.dpi)
	return int(float64(r.width/vg.Inch)*dpi + 0.5), int(float64(r.height/vg.Inch)*dpi + 0.5)
}

// Plot builds the rose plot and its legend plot for d.
func (r *Renderer) Plot(d *rose.Diagram) (rosePlot, legend *plot.Plot, err error) {
	cm, err := ColorMapFor(d.Palette)
	if err != nil {
		return nil, nil, err
	}
	colors, err := SectorColors(d, cm)
	if err != nil {
		return nil, nil, err
	}

	rosePlot = plot.New()
	rosePlot.Title.Text = d.DisplayTitle()
	rosePlot.Title.TextStyle.Font.Size = vg.Points(16)
	rosePlot.Title.Padding = vg.Points(20)
	rosePlot.HideAxes()
	rosePlot.Add(NewRosePlotter(d, colors))

	legendMap, err := ColorMapFor(d.Palette)
	if err != nil {
		return nil, nil, err
	}
	lo, hi := d.LegendMin, d.LegendMax
	if hi <= lo {
		hi = lo + 1
	}
	legendMap.SetMin(lo)
	legendMap.SetMax(hi)

	legend = plot.New()
	legend.HideX()
	legend.Y.Label.Text = LegendLabel
	legend.Y.Label.TextStyle.Font.Size = vg.Points(12)
	legend.Add(&plotter.ColorBar{ColorMap: legendMap, Vertical: true})

	return rosePlot, legend, nil
}

// Render draws d and writes it to w as PNG.
func (r *Renderer) Render(d *rose.Diagram, w io.Writer) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.New(errors.ErrCodeRenderFailed, "failed to draw diagram").WithDetail(fmt.Sprint(rec))
		}
	}()

	rosePlot, legend, err := r.Plot(d)
	if err != nil {
		return err
	}

	img := vgimg.NewWith(vgimg.UseWH(r.width, r.height), vgimg.UseDPI(r.dpi))
	dc := draw.New(img)

	legendWidth := r.width * 0.14
	legendPad := r.height * 0.2
	rosePlot.Draw(draw.Crop(dc, 0, -legendWidth, 0, 0))
	legend.Draw(draw.Crop(dc, r.width-legendWidth, -vg.Points(12), legendPad, -legendPad))

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return errors.Wrap(err, errors.ErrCodeRenderFailed, "failed to encode png")
	}
	return nil
}

// RenderPNG is Render into a byte slice.
func (r *Renderer) RenderPNG(d *rose.Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(d, &buf); err != nil {
		return nil, err
	}
	r.logger.Debug("diagram rendered",
		logging.String("title", d.Title),
		logging.Int("sectors", len(d.Sectors)),
		logging.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

//Personal.AI order the ending
