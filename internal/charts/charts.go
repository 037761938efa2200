package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/i474232898/fuel-price-dashboard/internal/fuel"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no data to chart")

const (
	width  = 12 * vg.Inch
	height = 6 * vg.Inch
	format = "png"
)

var (
	histogramColor = color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 255}
	trendColor     = color.RGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 255}
)

// Histogram draws the price distribution as one bar per bin.
func Histogram(bins []fuel.HistogramBin) ([]byte, error) {
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Average published price distribution (%.0f - %.0f)", bins[0].Lower, bins[len(bins)-1].Upper)
	p.X.Label.Text = "Price (COP)"
	p.Y.Label.Text = "Records"

	values := make(plotter.Values, len(bins))
	labels := make([]string, len(bins))
	for i, b := range bins {
		values[i] = float64(b.Count)
		// Label every fifth bin to keep the axis readable.
		if i%5 == 0 {
			labels[i] = fmt.Sprintf("%.0f", b.Lower)
		}
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return nil, err
	}
	bars.Color = histogramColor
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalX(labels...)

	return render(p)
}

// Trend draws the monthly mean price series.
func Trend(series []fuel.MonthlyMean) ([]byte, error) {
	if len(series) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Average published price over time"
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "Mean price (COP)"

	points := make(plotter.XYs, len(series))
	labels := make([]string, len(series))
	for i, m := range series {
		points[i].X = float64(i)
		points[i].Y = m.MeanPrice
		labels[i] = m.Month
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, err
	}
	line.Color = trendColor
	line.Width = vg.Points(2)

	p.Add(line)
	p.Add(plotter.NewGrid())
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = -1

	return render(p)
}

// BoxPlot draws one box per region, regions ordered by name.
func BoxPlot(distribution map[string][]float64) ([]byte, error) {
	regions := make([]string, 0, len(distribution))
	for region, prices := range distribution {
		if len(prices) > 0 {
			regions = append(regions, region)
		}
	}
	if len(regions) == 0 {
		return nil, ErrNoData
	}
	sort.Strings(regions)

	p := plot.New()
	p.Title.Text = "Price distribution by department"
	p.Y.Label.Text = "Price (COP)"

	for i, region := range regions {
		box, err := plotter.NewBoxPlot(vg.Points(14), float64(i), plotter.Values(distribution[region]))
		if err != nil {
			return nil, fmt.Errorf("boxplot %s: %w", region, err)
		}
		p.Add(box)
	}
	p.NominalX(regions...)
	p.X.Tick.Label.Rotation = 1.2
	p.X.Tick.Label.XAlign = -1

	return render(p)
}

func render(p *plot.Plot) ([]byte, error) {
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
