package chart

import (
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"spatialviz/ports"
)

// StripPlot draws side-by-side horizontal strip panels sharing the
// cluster row axis. Each panel is rendered as a dot-only series against
// categorical row ticks; panels after the first suppress the row axis.
func (f *FigureAdapter) StripPlot(spec ports.StripPlotSpec) error {
	if len(spec.Panels) == 0 {
		return fmt.Errorf("strip plot has no panels")
	}
	rows := len(spec.RowLabels)
	if rows == 0 {
		return fmt.Errorf("strip plot has no row labels")
	}

	panelWidth := f.config.Width / len(spec.Panels)
	tiles := make([]image.Image, 0, len(spec.Panels))
	for i, panel := range spec.Panels {
		if len(panel.Values) != rows {
			return fmt.Errorf("panel %q has %d values for %d rows", panel.Label, len(panel.Values), rows)
		}
		img, err := f.renderStripPanel(spec, panel, panelWidth, i)
		if err != nil {
			return err
		}
		tiles = append(tiles, img)
	}

	// Compose the panels left-to-right into one figure tile
	out := image.NewRGBA(image.Rect(0, 0, panelWidth*len(tiles), f.config.Height))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	x := 0
	for _, tile := range tiles {
		b := tile.Bounds()
		draw.Draw(out, image.Rect(x, 0, x+b.Dx(), b.Dy()), tile, b.Min, draw.Over)
		x += b.Dx()
	}
	f.addTile(out)
	return nil
}

func (f *FigureAdapter) renderStripPanel(spec ports.StripPlotSpec, panel ports.StripPanel, width, index int) (image.Image, error) {
	rows := len(spec.RowLabels)

	// Row i sits at y=i; half-a-row padding keeps edge points inside
	ys := make([]float64, rows)
	ticks := make([]chart.Tick, 0, rows+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i, label := range spec.RowLabels {
		ys[i] = float64(i)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: label})
	}
	ticks = append(ticks, chart.Tick{Value: float64(rows) - 0.5})

	xRange, err := paddedRange(panel.Values)
	if err != nil {
		return nil, err
	}

	dotStyle := chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    spec.MarkerSize,
		DotColor:    chart.GetDefaultColor(index),
	}

	yAxis := chart.YAxis{
		Name:  spec.RowAxisTitle,
		Ticks: ticks,
		Range: &chart.ContinuousRange{Min: -0.5, Max: float64(rows) - 0.5},
	}
	if spec.HorizontalGrid {
		yAxis.GridMajorStyle = chart.Style{
			StrokeColor: chart.ColorLightGray,
			StrokeWidth: 1.0,
		}
	}
	if !panel.ShowRowLabels {
		yAxis.Name = ""
		yAxis.Style = chart.Hidden()
	}

	ch := chart.Chart{
		Width:  width,
		Height: f.config.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 16, Left: 12, Right: 12, Bottom: 16},
		},
		XAxis: chart.XAxis{
			// go-chart draws axis names on one line
			Name:  strings.ReplaceAll(panel.Label, "\n", " "),
			Range: xRange,
		},
		YAxis: yAxis,
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    panel.Label,
				XValues: panel.Values,
				YValues: ys,
				Style:   dotStyle,
			},
		},
	}
	if spec.HideSpines {
		ch.Canvas = chart.Style{
			StrokeColor: drawing.ColorTransparent,
			StrokeWidth: chart.Disabled,
		}
	}
	return renderChart(ch)
}

// paddedRange computes an x range with a small margin so points at the
// extremes stay visible
func paddedRange(values []float64) (*chart.ContinuousRange, error) {
	min, err := stats.Min(values)
	if err != nil {
		return nil, fmt.Errorf("axis range: %w", err)
	}
	max, err := stats.Max(values)
	if err != nil {
		return nil, fmt.Errorf("axis range: %w", err)
	}
	pad := (max - min) * 0.08
	if pad == 0 {
		pad = 0.5
		if max != 0 {
			pad = max * 0.08
		}
	}
	return &chart.ContinuousRange{Min: min - pad, Max: max + pad}, nil
}
