package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// HittablePDF samples directions from a fixed origin toward a light shape
type HittablePDF struct {
	Shape  LightShape
	Origin core.Vec3
	// sampler feeds shapes whose density evaluation needs randomness
	sampler core.Sampler
}

// NewHittablePDF creates a PDF over directions from origin toward shape
func NewHittablePDF(shape LightShape, origin core.Vec3, sampler core.Sampler) *HittablePDF {
	return &HittablePDF{Shape: shape, Origin: origin, sampler: sampler}
}

// Value returns the shape's solid-angle density for direction
func (p *HittablePDF) Value(direction core.Vec3) float64 {
	return p.Shape.PDFValue(p.Origin, direction, p.sampler)
}

// Generate returns a direction toward a random point on the shape
func (p *HittablePDF) Generate(sampler core.Sampler) core.Vec3 {
	return p.Shape.Random(p.Origin, sampler)
}
