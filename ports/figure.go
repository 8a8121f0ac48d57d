package ports

import (
	"io"

	"spatialviz/domain/dataset"
)

// StripPanel is one horizontal categorical-scatter panel: one value per
// cluster row on the shared row axis.
type StripPanel struct {
	// Label is the two-line metric label shown under the panel
	Label string
	// Values holds one point per cluster row
	Values []float64
	// ShowRowLabels keeps the row-axis title and tick labels; only the
	// first panel of a strip plot sets this
	ShowRowLabels bool
}

// StripPlotSpec describes a row of side-by-side strip panels sharing the
// cluster row axis.
type StripPlotSpec struct {
	// RowLabels is the shared row axis, one label per cluster
	RowLabels []string
	// RowAxisTitle labels the shared row axis (e.g. "cluster")
	RowAxisTitle string
	Panels       []StripPanel
	// MarkerSize is the point diameter in pixels
	MarkerSize float64
	// HideSpines strips the plot-box border on all four sides
	HideSpines bool
	// HorizontalGrid keeps only horizontal gridlines
	HorizontalGrid bool
}

// HeatMatrixSpec describes a single heat-matrix image with a color bar
// and matching tick labels on both axes.
type HeatMatrixSpec struct {
	Matrix *dataset.InteractionMatrix
	// ColorBar adds a vertical color scale next to the matrix
	ColorBar bool
	// TickFontSize is the point size of the axis tick labels
	TickFontSize float64
}

// LineSeries is one line of a line plot. Color is a hex color ("#1f77b4"
// style); empty means the renderer's default cycle.
type LineSeries struct {
	Name  string
	X     []float64
	Y     []float64
	Color string
}

// LinePlotSpec describes a single line plot, one series per cluster
// label, ordered as supplied.
type LinePlotSpec struct {
	XLabel string
	YLabel string
	// HueLabel names the grouping column shown in the legend title
	HueLabel string
	Series   []LineSeries
}

// Figure is the rendering port: a stateful drawing context owned by the
// caller. Each call draws into the current figure; the caller decides
// when to start a fresh figure and where its pixels go. Implementations
// delegate the actual rasterization to a generic plotting library.
type Figure interface {
	// StripPlot draws side-by-side strip panels into the current figure
	StripPlot(spec StripPlotSpec) error
	// HeatMatrix draws a heat-matrix with optional color bar
	HeatMatrix(spec HeatMatrixSpec) error
	// LinePlot draws a multi-series line plot
	LinePlot(spec LinePlotSpec) error
}

// FigureWriter is implemented by figure adapters that can materialize
// the current figure as a PNG and reset for the next one.
type FigureWriter interface {
	Figure
	// WritePNG encodes the current figure
	WritePNG(w io.Writer) error
	// Reset discards the current figure
	Reset()
}
