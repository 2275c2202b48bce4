package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	"burnoutlens/internal/report"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrEmptyChart is returned when the group has no valid burnout level to plot.
var ErrEmptyChart = errors.New("no valid burnout levels to chart")

const (
	DefaultWidth  = 1000
	DefaultHeight = 500
)

// levelColors runs from green (level 1) to dark red (level 5).
var levelColors = []string{"4CAF50", "FFEB3B", "FF9800", "F44336", "B71C1C"}

// Renderer draws the burnout level distribution as a PNG bar chart
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer creates a renderer; non-positive sizes fall back to the defaults.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Renderer{Width: width, Height: height}
}

// RenderDistribution writes one bar per level labelled "count (pct%)".
func (r *Renderer) RenderDistribution(d report.Distribution, w io.Writer) error {
	if d.Empty() {
		return ErrEmptyChart
	}

	maxCount := 0
	bars := make([]gochart.Value, 0, len(d.Levels))
	for i, lc := range d.Levels {
		if lc.Count > maxCount {
			maxCount = lc.Count
		}
		color := drawing.ColorFromHex(levelColors[i%len(levelColors)])
		bars = append(bars, gochart.Value{
			Value: float64(lc.Count),
			Label: fmt.Sprintf("%s: %s", lc.Level, lc.BarLabel()),
			Style: gochart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
		})
	}

	bc := gochart.BarChart{
		Title:      d.Title(),
		Width:      r.Width,
		Height:     r.Height,
		BarWidth:   r.Width / (2 * len(bars)),
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 24}},
		XAxis:      gochart.Style{FontSize: 9},
		YAxis: gochart.YAxis{
			Name:  "Count",
			Range: &gochart.ContinuousRange{Min: 0, Max: yMax(maxCount)},
		},
		Bars: bars,
	}
	if err := bc.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render distribution chart: %w", err)
	}
	return nil
}

// yMax leaves headroom above the tallest bar.
func yMax(maxCount int) float64 {
	return math.Ceil(float64(maxCount)*1.15) + 1
}
