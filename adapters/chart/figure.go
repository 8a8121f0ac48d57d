// Package chart implements the figure rendering port on top of
// go-chart. One adapter instance owns one "current figure": each port
// call appends a rendered image tile, WritePNG composes the tiles, and
// Reset starts the next figure. This mirrors the process-wide
// current-figure state of classic plotting libraries while keeping the
// lifecycle with the caller.
package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"spatialviz/ports"
)

// Config holds figure geometry defaults
type Config struct {
	// Width and Height bound a single plot tile in pixels
	Width  int
	Height int
}

// DefaultConfig returns the default figure geometry
func DefaultConfig() Config {
	return Config{Width: 1280, Height: 420}
}

// FigureAdapter renders plot specs with go-chart. Not safe for
// concurrent use; callers wanting parallel figures use one adapter each.
type FigureAdapter struct {
	config Config
	tiles  []image.Image
}

var _ ports.FigureWriter = (*FigureAdapter)(nil)

// NewFigureAdapter creates an adapter with an empty current figure
func NewFigureAdapter(config Config) *FigureAdapter {
	if config.Width <= 0 || config.Height <= 0 {
		config = DefaultConfig()
	}
	return &FigureAdapter{config: config}
}

// Reset discards the current figure
func (f *FigureAdapter) Reset() {
	f.tiles = nil
}

// addTile appends a rendered image to the current figure
func (f *FigureAdapter) addTile(img image.Image) {
	f.tiles = append(f.tiles, img)
}

// TileCount returns the number of plots drawn into the current figure
func (f *FigureAdapter) TileCount() int {
	return len(f.tiles)
}

// WritePNG composes the current figure tiles top-to-bottom and encodes
// the result
func (f *FigureAdapter) WritePNG(w io.Writer) error {
	if len(f.tiles) == 0 {
		return fmt.Errorf("current figure is empty")
	}
	width, height := 0, 0
	for _, tile := range f.tiles {
		b := tile.Bounds()
		if b.Dx() > width {
			width = b.Dx()
		}
		height += b.Dy()
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	y := 0
	for _, tile := range f.tiles {
		b := tile.Bounds()
		dst := image.Rect(0, y, b.Dx(), y+b.Dy())
		draw.Draw(out, dst, tile, b.Min, draw.Over)
		y += b.Dy()
	}
	return png.Encode(w, out)
}

// renderChart rasterizes one go-chart chart and decodes it back to an
// image tile
func renderChart(ch chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("chart decode: %w", err)
	}
	return img, nil
}
