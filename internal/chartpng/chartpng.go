// Package chartpng renders the diagnostics charts as PNG images using the
// active theme's colours.
package chartpng

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/altinukshini/schedviz/internal/diagnostics"
	"github.com/altinukshini/schedviz/internal/present"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 480

	HeuristicFile   = "heuristic_chart.png"
	ExplorationFile = "exploration_chart.png"
)

// ErrNoData is returned for charts in their no-data state.
var ErrNoData = errors.New("chart has no data")

func color(hex string) drawing.Color {
	if hex == "" {
		return drawing.ColorTransparent
	}
	return drawing.ColorFromHex(hex)
}

func frame(opts present.Options) (title, background, canvas, axis, grid chart.Style) {
	title = chart.Style{FontColor: color(opts.TitleColor), FontSize: 14}
	background = chart.Style{
		FillColor: color(opts.Background),
		Padding:   chart.Box{Top: 48, Left: 16, Right: 24, Bottom: 16},
	}
	canvas = chart.Style{FillColor: color(opts.Background)}
	axis = chart.Style{FontColor: color(opts.TickColor), StrokeColor: color(opts.GridColor)}
	grid = chart.Style{StrokeColor: color(opts.GridColor), StrokeWidth: 1}
	return
}

// Heuristic draws one line per series against the 1-based step number.
func Heuristic(w io.Writer, c diagnostics.HeuristicChart, opts present.Options, width, height int) error {
	if c.NoData || len(c.Series) == 0 {
		return ErrNoData
	}
	titleStyle, bg, canvas, axis, grid := frame(opts)

	lo, hi := math.Inf(1), math.Inf(-1)
	var series []chart.Series
	for _, s := range c.Series {
		xs := make([]float64, len(c.Labels))
		for i, l := range c.Labels {
			xs[i] = float64(l)
		}
		ys := append([]float64(nil), s.Values...)
		for _, v := range ys {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		// go-chart needs two x values to build a range.
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color(s.Color),
				StrokeWidth: 2,
				DotColor:    color(s.Color),
				DotWidth:    2,
			},
		})
	}
	// A flat series has no y delta; widen it so the axis can be drawn.
	var yRange chart.Range
	if lo == hi {
		yRange = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}

	ch := chart.Chart{
		Title:      opts.Title,
		TitleStyle: titleStyle,
		Width:      width,
		Height:     height,
		Background: bg,
		Canvas:     canvas,
		XAxis: chart.XAxis{
			Name:           "Step",
			NameStyle:      axis,
			Style:          axis,
			GridMajorStyle: grid,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:           "Value",
			NameStyle:      axis,
			Style:          axis,
			GridMajorStyle: grid,
			Range:          yRange,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch, chart.Style{
		FillColor:   color(opts.Background),
		FontColor:   color(opts.LegendColor),
		StrokeColor: color(opts.GridColor),
	})}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render heuristic chart: %w", err)
	}
	return nil
}

// Exploration draws one bar per level in bound order.
func Exploration(w io.Writer, c diagnostics.ExplorationChart, opts present.Options, width, height int) error {
	if c.NoData || len(c.Bars) == 0 {
		return ErrNoData
	}
	titleStyle, bg, canvas, axis, _ := frame(opts)

	const barWidth, barSpacing = 40, 16
	width = max(width, len(c.Bars)*(barWidth+barSpacing)+120)

	bars := make([]chart.Value, 0, len(c.Bars))
	for _, b := range c.Bars {
		bars = append(bars, chart.Value{
			Label: b.Label,
			Value: float64(b.Count),
			Style: chart.Style{
				FillColor:   color(diagnostics.ExplorationColor),
				StrokeColor: color(diagnostics.ExplorationBorder),
				StrokeWidth: 1,
			},
		})
	}

	bc := chart.BarChart{
		Title:      opts.Title,
		TitleStyle: titleStyle,
		Width:      width,
		Height:     height,
		Background: bg,
		Canvas:     canvas,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		XAxis:      axis,
		YAxis: chart.YAxis{
			Style: axis,
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(1, float64(c.MaxCount()))},
		},
		Bars: bars,
	}
	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render exploration chart: %w", err)
	}
	return nil
}
