package sim

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	coldColor  = colorful.Color{R: 0, G: 0, B: 1}
	fastColor  = colorful.Color{R: 0, G: 1, B: 0}
	pressColor = colorful.Color{R: 1, G: 0, B: 0}
)

// VelocityColor ramps from blue at rest to green at the frame's top speed.
func VelocityColor(speed, peak float64) colorful.Color {
	return coldColor.BlendRgb(fastColor, ratio(speed, peak))
}

// PressureColor ramps from blue at zero to red at the frame's top pressure.
func PressureColor(pressure, peak float64) colorful.Color {
	return coldColor.BlendRgb(pressColor, ratio(pressure, peak))
}

func RandomTint(rng *rand.Rand) colorful.Color {
	return colorful.Color{R: rng.Float64(), G: rng.Float64(), B: rng.Float64()}
}

func ratio(x, peak float64) float64 {
	if peak <= 0 {
		return 0
	}
	return math.Min(math.Max(x/peak, 0), 1)
}
