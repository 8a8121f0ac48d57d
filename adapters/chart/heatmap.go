package chart

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/mat"

	"spatialviz/ports"
)

// heat-matrix layout margins in pixels
const (
	heatMarginLeft   = 90
	heatMarginTop    = 70
	heatMarginBottom = 24
	colorBarWidth    = 22
	colorBarGap      = 28
	colorBarLabels   = 64
)

// HeatMatrix draws the interaction matrix as a cell grid with a
// vertical color bar. go-chart has no native matrix plot, so the cells,
// ticks, and bar are drawn directly with its raster renderer and
// embedded font.
func (f *FigureAdapter) HeatMatrix(spec ports.HeatMatrixSpec) error {
	matrix := spec.Matrix
	if matrix == nil {
		return fmt.Errorf("heat matrix spec has no matrix")
	}
	if err := matrix.Validate(); err != nil {
		return err
	}
	n := matrix.Dim()
	if n == 0 {
		return fmt.Errorf("heat matrix is empty")
	}

	width := f.config.Width
	height := f.config.Height
	r, err := chart.PNG(width, height)
	if err != nil {
		return fmt.Errorf("heat matrix renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("heat matrix font: %w", err)
	}
	r.SetFont(font)
	r.SetFontColor(chart.ColorBlack)
	fontSize := spec.TickFontSize
	if fontSize <= 0 {
		fontSize = 8
	}
	r.SetFontSize(fontSize)

	marginRight := 24
	if spec.ColorBar {
		marginRight = colorBarGap + colorBarWidth + colorBarLabels
	}
	gridW := width - heatMarginLeft - marginRight
	gridH := height - heatMarginTop - heatMarginBottom
	cell := gridW / n
	if gridH/n < cell {
		cell = gridH / n
	}
	if cell < 1 {
		return fmt.Errorf("heat matrix with %d labels does not fit a %dx%d figure", n, width, height)
	}

	lo, hi := mat.Min(matrix.Counts), mat.Max(matrix.Counts)
	span := hi - lo

	// Cells
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			t := 0.5
			if span > 0 {
				t = (matrix.Counts.At(i, j) - lo) / span
			}
			x0 := heatMarginLeft + j*cell
			y0 := heatMarginTop + i*cell
			fillRect(r, x0, y0, x0+cell, y0+cell, viridis(t))
		}
	}

	// Tick labels: rows on the left, columns on top, both in the
	// supplied label order
	for i, label := range matrix.Labels {
		box := r.MeasureText(label)
		ty := heatMarginTop + i*cell + cell/2 + box.Height()/2
		r.Text(label, heatMarginLeft-box.Width()-6, ty)

		tx := heatMarginLeft + i*cell + cell/2 - box.Width()/2
		r.Text(label, tx, heatMarginTop-8)
	}

	if spec.ColorBar {
		f.drawColorBar(r, lo, hi, heatMarginLeft+n*cell+colorBarGap, heatMarginTop, n*cell)
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return fmt.Errorf("heat matrix save: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return fmt.Errorf("heat matrix decode: %w", err)
	}
	f.addTile(img)
	return nil
}

// drawColorBar draws the vertical color scale with min/max/mid labels,
// max at the top
func (f *FigureAdapter) drawColorBar(r chart.Renderer, lo, hi float64, x, y, barHeight int) {
	if barHeight < 2 {
		return
	}
	for step := 0; step < barHeight; step++ {
		t := 1.0 - float64(step)/float64(barHeight-1)
		fillRect(r, x, y+step, x+colorBarWidth, y+step+1, viridis(t))
	}

	labels := []struct {
		value float64
		pos   int
	}{
		{hi, y},
		{(hi + lo) / 2, y + barHeight/2},
		{lo, y + barHeight},
	}
	for _, l := range labels {
		text := fmt.Sprintf("%.4g", l.value)
		box := r.MeasureText(text)
		r.Text(text, x+colorBarWidth+6, l.pos+box.Height()/2)
	}
}

// fillRect fills an axis-aligned rectangle
func fillRect(r chart.Renderer, x0, y0, x1, y1 int, color drawing.Color) {
	r.SetFillColor(color)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	r.Fill()
}
