package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ToRGBA gamma corrects (gamma 2) and quantizes a linear color to 8 bits per channel
func ToRGBA(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
		A: 255,
	}
}

// quantize maps a linear channel to [0, 255]. Negative and non-finite values become 0.
func quantize(c float64) uint8 {
	c = math.Sqrt(c)
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0
	}
	c = math.Max(0, math.Min(1, c))
	return uint8(min(255, int(256*c)))
}
