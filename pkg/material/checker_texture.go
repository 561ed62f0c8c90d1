package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CheckerTexture is a procedural 3D checker pattern driven by the hit point, not UV
type CheckerTexture struct {
	Odd  Texture
	Even Texture
}

// NewCheckerTexture creates a checker alternating between two solid colors
func NewCheckerTexture(odd, even core.Vec3) *CheckerTexture {
	return NewCheckerTextureFrom(NewSolidColor(odd), NewSolidColor(even))
}

// NewCheckerTextureFrom creates a checker alternating between two textures
func NewCheckerTextureFrom(odd, even Texture) *CheckerTexture {
	return &CheckerTexture{Odd: odd, Even: even}
}

// Evaluate picks the odd texture where sin(10x)·sin(10y)·sin(10z) is negative
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	sines := math.Sin(10*point.X) * math.Sin(10*point.Y) * math.Sin(10*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}
