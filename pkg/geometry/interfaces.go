package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable is anything a ray can intersect. Hit returns the closest intersection with
// t in [tMin, tMax]. The sampler is the caller's job-local random stream, used only by
// primitives that need randomness to intersect (participating media).
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}

// LightShape is implemented by shapes that can be importance sampled from a point,
// typically area lights.
type LightShape interface {
	// PDFValue is the solid-angle density of sampling direction from origin toward the shape.
	PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64
	// Random returns a direction from origin toward a random point on the shape.
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// infinity is the open upper bound used for unbounded ray queries
var infinity = math.Inf(1)

// lightPDFValue converts an area hit into a solid-angle density: dist² / (|cos θ| · area)
func lightPDFValue(hit *material.HitRecord, direction core.Vec3, area float64) float64 {
	distanceSquared := hit.T * hit.T * direction.LengthSquared()
	cosine := direction.Dot(hit.Normal) / direction.Length()
	if cosine < 0 {
		cosine = -cosine
	}
	if cosine == 0 || area == 0 {
		return 0
	}
	return distanceSquared / (cosine * area)
}
