// Package plot renders scatter plots of two dataset columns.
package plot

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/sheetstat/internal/dataset"
)

// Default figure size: 10x7 inches at 150 dpi.
const (
	DefaultWidth  = 1500
	DefaultHeight = 1050
	DefaultDPI    = 150
)

// Format selects the image encoding used by Render.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case PNG, "":
		return PNG, nil
	case SVG:
		return SVG, nil
	default:
		return "", fmt.Errorf("unsupported plot format %q (use png or svg)", s)
	}
}

// Point is one plotted row.
type Point struct {
	X, Y float64
}

// Figure is a single plotting surface. Scatter repopulates it in place, so a
// caller holding the figure keeps the same value across redraws.
type Figure struct {
	Width  int
	Height int

	x, y   string
	bg     drawing.Color
	points []Point
}

// NewFigure returns an empty figure of the given pixel size.
func NewFigure(width, height int) *Figure {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Figure{Width: width, Height: height, bg: drawing.ColorWhite}
}

// ScatterPlot builds a default-size figure plotting fieldY against fieldX.
func ScatterPlot(ds *dataset.Dataset, fieldX, fieldY string, bg drawing.Color) (*Figure, error) {
	f := NewFigure(DefaultWidth, DefaultHeight)
	if err := f.Scatter(ds, fieldX, fieldY, bg); err != nil {
		return nil, err
	}
	return f, nil
}

// Scatter clears the figure and plots one point per row where both fields
// have a value. On error the figure is left as it was.
func (f *Figure) Scatter(ds *dataset.Dataset, fieldX, fieldY string, bg drawing.Color) error {
	xs, err := column(ds, fieldX)
	if err != nil {
		return err
	}
	ys, err := column(ds, fieldY)
	if err != nil {
		return err
	}
	points := make([]Point, 0, len(xs))
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		points = append(points, Point{X: xs[i], Y: ys[i]})
	}
	if len(points) == 0 {
		return fmt.Errorf("plot %s vs %s: %w", fieldY, fieldX, ErrNoPoints)
	}
	f.Clear()
	f.x, f.y, f.bg = fieldX, fieldY, bg
	f.points = points
	return nil
}

func column(ds *dataset.Dataset, field string) ([]float64, error) {
	kind, ok := ds.Kind(field)
	if !ok {
		return nil, &FieldNotFoundError{Field: field}
	}
	if kind != dataset.Numeric {
		return nil, fmt.Errorf("%q (%s): %w", field, kind, ErrNotNumeric)
	}
	return ds.Floats(field)
}

// Clear removes the plotted data and labels.
func (f *Figure) Clear() {
	f.x, f.y = "", ""
	f.points = nil
}

// Empty reports whether the figure holds no plot.
func (f *Figure) Empty() bool {
	return len(f.points) == 0
}

// Title is "<y> vs <x>", or empty for a cleared figure.
func (f *Figure) Title() string {
	if f.Empty() {
		return ""
	}
	return fmt.Sprintf("%s vs %s", f.y, f.x)
}

// Fields returns the x and y field names.
func (f *Figure) Fields() (x, y string) {
	return f.x, f.y
}

// Background returns the fill colour of the figure and its plotting area.
func (f *Figure) Background() drawing.Color {
	return f.bg
}

// Points returns a copy of the plotted points in row order.
func (f *Figure) Points() []Point {
	return append([]Point(nil), f.points...)
}

// Chart builds the go-chart description of the figure.
func (f *Figure) Chart() chart.Chart {
	xs := make([]float64, len(f.points))
	ys := make([]float64, len(f.points))
	for i, p := range f.points {
		xs[i], ys[i] = p.X, p.Y
	}
	surface := chart.Style{FillColor: f.bg}
	return chart.Chart{
		Title:      f.Title(),
		TitleStyle: chart.Shown(),
		Width:      f.Width,
		Height:     f.Height,
		DPI:        DefaultDPI,
		Background: chart.Style{
			FillColor: f.bg,
			Padding:   chart.Box{Top: 48, Left: 24, Right: 24, Bottom: 24},
		},
		Canvas: surface,
		XAxis: chart.XAxis{
			Name:      f.x,
			NameStyle: chart.Shown(),
			Style:     chart.Shown(),
			Range:     paddedRange(xs),
		},
		YAxis: chart.YAxis{
			Name:      f.y,
			NameStyle: chart.Shown(),
			Style:     chart.Shown(),
			Range:     paddedRange(ys),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    f.Title(),
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    chart.ColorBlue,
				},
			},
		},
	}
}

// Render encodes the figure as an image.
func (f *Figure) Render(w io.Writer, format Format) error {
	if f.Empty() {
		return fmt.Errorf("render: %w", ErrNoPoints)
	}
	ch := f.Chart()
	provider := chart.PNG
	if format == SVG {
		provider = chart.SVG
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render %s: %w", f.Title(), err)
	}
	return nil
}

// paddedRange spans vals with a 5% margin, widening a zero-width span so a
// single point or a constant column still renders.
func paddedRange(vals []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if len(vals) == 0 {
		lo, hi = 0, 1
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(lo)*0.05, 1)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
