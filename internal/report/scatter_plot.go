package report

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/user/refindex_go/internal/parser"
	"github.com/user/refindex_go/internal/series"
)

// Fixed figure text.
const (
	DefaultTitle  = "Wavelength vs Refractive index"
	DefaultXLabel = "Wavelength"
	DefaultYLabel = "Refractive index"
)

// axisPadding is the fraction of each data span added around the points.
const axisPadding = 0.05

// ErrNoMeasurements is returned when asked to plot an empty list.
var ErrNoMeasurements = errors.New("no measurements to plot")

// SupportedFormats lists the image formats a Figure can be rendered to.
var SupportedFormats = []string{"png", "svg", "pdf", "jpg", "jpeg", "tif", "tiff", "eps"}

// PlotOptions controls figure text and size.
type PlotOptions struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
}

// DefaultPlotOptions returns the fixed labels and a 9x4.5 inch canvas.
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{
		Title:  DefaultTitle,
		XLabel: DefaultXLabel,
		YLabel: DefaultYLabel,
		Width:  9 * vg.Inch,
		Height: 4.5 * vg.Inch,
	}
}

// withDefaults fills zero fields from DefaultPlotOptions.
func (o PlotOptions) withDefaults() PlotOptions {
	def := DefaultPlotOptions()
	if o.Title == "" {
		o.Title = def.Title
	}
	if o.XLabel == "" {
		o.XLabel = def.XLabel
	}
	if o.YLabel == "" {
		o.YLabel = def.YLabel
	}
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	return o
}

// Figure is a rendered-on-demand plot with a single scatter subplot.
type Figure struct {
	Plot    *plot.Plot
	Scatter *plotter.Scatter
	Extent  series.Extent
	Options PlotOptions
}

// NewScatterFigure builds a scatter plot of wavelength (x) against refractive
// index (y). Points keep the order of measurements.
func NewScatterFigure(measurements []parser.Measurement, opts PlotOptions) (*Figure, error) {
	if len(measurements) == 0 {
		return nil, ErrNoMeasurements
	}
	opts = opts.withDefaults()

	s := series.Split(measurements)
	extent, err := s.Bounds()
	if err != nil {
		return nil, err
	}

	pts := make(plotter.XYs, s.Len())
	for i := range pts {
		pts[i].X = s.X[i]
		pts[i].Y = s.Y[i]
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %w", err)
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(3)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter)

	padded := extent.Padded(axisPadding)
	p.X.Min, p.X.Max = padded.MinX, padded.MaxX
	p.Y.Min, p.Y.Max = padded.MinY, padded.MaxY

	return &Figure{
		Plot:    p,
		Scatter: scatter,
		Extent:  extent,
		Options: opts,
	}, nil
}

// XData returns the plotted x values in order.
func (f *Figure) XData() []float64 {
	out := make([]float64, len(f.Scatter.XYs))
	for i, xy := range f.Scatter.XYs {
		out[i] = xy.X
	}
	return out
}

// YData returns the plotted y values in order.
func (f *Figure) YData() []float64 {
	out := make([]float64, len(f.Scatter.XYs))
	for i, xy := range f.Scatter.XYs {
		out[i] = xy.Y
	}
	return out
}

// IsSupportedFormat reports whether format names a renderable image type.
func IsSupportedFormat(format string) bool {
	format = strings.ToLower(format)
	for _, f := range SupportedFormats {
		if f == format {
			return true
		}
	}
	return false
}

// FormatFromPath returns the image format implied by the file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !IsSupportedFormat(ext) {
		return "", fmt.Errorf("unsupported image format %q: must be one of %v", ext, SupportedFormats)
	}
	return ext, nil
}

// Render writes the figure to w in the given format.
func (f *Figure) Render(w io.Writer, format string) error {
	if !IsSupportedFormat(format) {
		return fmt.Errorf("unsupported image format %q: must be one of %v", format, SupportedFormats)
	}
	writer, err := f.Plot.WriterTo(f.Options.Width, f.Options.Height, strings.ToLower(format))
	if err != nil {
		return fmt.Errorf("failed to create plot writer: %w", err)
	}
	if _, err := writer.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

// PNG renders the figure into PNG bytes.
func (f *Figure) PNG() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := f.Render(buf, "png"); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save renders the figure to path, picking the format from its extension.
func (f *Figure) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create plot file: %w", err)
	}
	if err := f.Render(file, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
