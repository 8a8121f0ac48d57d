package chart

import (
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"spatialviz/ports"
)

// LinePlot draws one line per series with a legend, e.g. the Ripley-K
// statistic versus distance per cluster label.
func (f *FigureAdapter) LinePlot(spec ports.LinePlotSpec) error {
	if len(spec.Series) == 0 {
		return fmt.Errorf("line plot has no series")
	}

	series := make([]chart.Series, 0, len(spec.Series))
	for i, s := range spec.Series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("series %q has %d x values and %d y values", s.Name, len(s.X), len(s.Y))
		}
		color := chart.GetDefaultColor(i)
		if s.Color != "" {
			c, err := parseHexColor(s.Color)
			if err != nil {
				return err
			}
			color = c
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.X,
			YValues: s.Y,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2.0,
			},
		})
	}

	ch := chart.Chart{
		Width:  f.config.Width,
		Height: f.config.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 16, Left: 12, Right: 12, Bottom: 16},
		},
		XAxis:  chart.XAxis{Name: spec.XLabel},
		YAxis:  chart.YAxis{Name: spec.YLabel},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	img, err := renderChart(ch)
	if err != nil {
		return err
	}
	f.addTile(img)
	return nil
}

// parseHexColor parses "#1f77b4" or "1f77b4" style colors
func parseHexColor(hex string) (drawing.Color, error) {
	trimmed := strings.TrimPrefix(hex, "#")
	if len(trimmed) != 6 {
		return drawing.Color{}, fmt.Errorf("invalid hex color %q", hex)
	}
	return drawing.ColorFromHex(trimmed), nil
}
