// Package chart renders bar and trend views as PNG or SVG images.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/gyeh/statehealth/internal/model"
)

// ErrNoData is returned when a view has nothing to draw.
var ErrNoData = errors.New("chart: no data to render")

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts "png" or "svg", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case PNG, SVG:
		return f, nil
	}
	return "", fmt.Errorf("unsupported chart format %q (want png or svg)", s)
}

// ContentType is the MIME type for f.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() gochart.RendererProvider {
	if f == SVG {
		return gochart.SVG
	}
	return gochart.PNG
}

// Options controls image size, format and labelling.
type Options struct {
	Format    Format
	Width     int
	Height    int
	Title     string
	Indicator model.Indicator
}

func (o Options) withDefaults() Options {
	if o.Format == "" {
		o.Format = PNG
	}
	if o.Width <= 0 {
		o.Width = 1024
	}
	if o.Height <= 0 {
		o.Height = 512
	}
	return o
}

// yRange spans zero to a little above the largest value.
func yRange(top float64) *gochart.ContinuousRange {
	if top <= 0 || math.IsNaN(top) {
		top = 1
	}
	return &gochart.ContinuousRange{Min: 0, Max: top * 1.1}
}

// RenderBar draws one bar per point, in the given order.
func RenderBar(w io.Writer, points []model.BarPoint, opts Options) error {
	if len(points) == 0 {
		return ErrNoData
	}
	opts = opts.withDefaults()

	bars := make([]gochart.Value, len(points))
	var top float64
	for i, p := range points {
		bars[i] = gochart.Value{
			Label: p.State,
			Value: p.Value,
			Style: gochart.Style{
				FillColor:   gochart.GetDefaultColor(i),
				StrokeColor: gochart.GetDefaultColor(i),
			},
		}
		top = max(top, p.Value)
	}

	barWidth := (opts.Width - 100) / len(points) * 2 / 3
	if barWidth < 4 {
		barWidth = 4
	}
	if barWidth > 80 {
		barWidth = 80
	}

	bc := gochart.BarChart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      gochart.Style{TextRotationDegrees: rotation(len(points))},
		YAxis: gochart.YAxis{
			Name:  opts.Indicator.AxisLabel(),
			Range: yRange(top),
		},
		Bars: bars,
	}
	if err := bc.Render(opts.Format.provider(), w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}

// rotation tilts state labels once they would overlap.
func rotation(n int) float64 {
	if n > 8 {
		return 45
	}
	return 0
}

// RenderTrend draws one line per series with a legend.
func RenderTrend(w io.Writer, series []model.TrendSeries, opts Options) error {
	if len(series) == 0 {
		return ErrNoData
	}
	opts = opts.withDefaults()

	var (
		out          []gochart.Series
		top          float64
		minYr, maxYr = math.MaxInt, math.MinInt
	)
	for i, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j] = float64(p.Year)
			ys[j] = p.Value
			top = max(top, p.Value)
			minYr = min(minYr, p.Year)
			maxYr = max(maxYr, p.Year)
		}
		color := gochart.GetDefaultColor(i)
		out = append(out, gochart.ContinuousSeries{
			Name:    s.State,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    3,
			},
		})
	}
	if len(out) == 0 {
		return ErrNoData
	}

	// A single year would collapse the x range.
	lo, hi := float64(minYr), float64(maxYr)
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	var ticks []gochart.Tick
	for y := int(lo); y <= int(hi); y++ {
		ticks = append(ticks, gochart.Tick{Value: float64(y), Label: fmt.Sprint(y)})
	}

	c := gochart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  "Year",
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Name:  opts.Indicator.AxisLabel(),
			Range: yRange(top),
		},
		Series: out,
	}
	c.Elements = []gochart.Renderable{gochart.Legend(&c)}

	if err := c.Render(opts.Format.provider(), w); err != nil {
		return fmt.Errorf("render trend chart: %w", err)
	}
	return nil
}
