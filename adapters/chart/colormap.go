package chart

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// viridisAnchors are evenly spaced control points of the viridis
// colormap; cell colors interpolate linearly between them.
var viridisAnchors = [][3]float64{
	{0.267, 0.005, 0.329},
	{0.283, 0.141, 0.458},
	{0.254, 0.265, 0.530},
	{0.207, 0.372, 0.553},
	{0.164, 0.471, 0.558},
	{0.128, 0.567, 0.551},
	{0.135, 0.659, 0.518},
	{0.267, 0.749, 0.441},
	{0.478, 0.821, 0.318},
	{0.741, 0.873, 0.150},
	{0.993, 0.906, 0.144},
}

// viridis maps t in [0,1] to a colormap color. Out-of-range values clamp.
func viridis(t float64) drawing.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	scaled := t * float64(len(viridisAnchors)-1)
	lo := int(scaled)
	if lo >= len(viridisAnchors)-1 {
		lo = len(viridisAnchors) - 2
	}
	frac := scaled - float64(lo)
	a, b := viridisAnchors[lo], viridisAnchors[lo+1]
	return drawing.Color{
		R: uint8(255 * (a[0] + (b[0]-a[0])*frac)),
		G: uint8(255 * (a[1] + (b[1]-a[1])*frac)),
		B: uint8(255 * (a[2] + (b[2]-a[2])*frac)),
		A: 255,
	}
}
