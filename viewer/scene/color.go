package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Palette for the rendered graph. Edge colors interpolate between the
// low and high weight hues; everything else is fixed.
var (
	DefaultNodeColor = rl.NewColor(235, 235, 245, 255)
	HighlightColor   = rl.NewColor(255, 200, 40, 255)
	NeutralLineColor = rl.NewColor(128, 128, 128, 255)

	lowWeightColor  = rl.NewColor(70, 130, 255, 255)
	highWeightColor = rl.NewColor(255, 90, 90, 255)
)

// WeightColor maps a link weight onto the low..high hue ramp given the
// snapshot-wide weight range. When min == max every edge takes the
// low-weight hue, so a single-weight snapshot never divides by zero.
func WeightColor(weight, min, max float64) rl.Color {
	if max <= min {
		return lowWeightColor
	}

	t := (weight - min) / (max - min)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	return rl.NewColor(
		lerpChannel(lowWeightColor.R, highWeightColor.R, t),
		lerpChannel(lowWeightColor.G, highWeightColor.G, t),
		lerpChannel(lowWeightColor.B, highWeightColor.B, t),
		255,
	)
}

func lerpChannel(from, to uint8, t float64) uint8 {
	return uint8(float64(from) + (float64(to)-float64(from))*t + 0.5)
}
