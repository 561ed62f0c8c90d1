package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Isotropic is the phase function of a participating medium: it scatters uniformly in all directions
type Isotropic struct {
	Albedo Texture
}

// NewIsotropic creates an isotropic phase function with a solid color
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// NewTexturedIsotropic creates an isotropic phase function with a texture
func NewTexturedIsotropic(albedo Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter sends the ray in a uniformly random direction. The direction is sampled exactly
// from the phase function, so it is carried as a specular ray weighted by albedo alone.
func (i *Isotropic) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	direction := core.SampleOnUnitSphere(sampler.Get2D())
	return ScatterRecord{
		SpecularRay: core.NewRay(hit.Point, direction, rayIn.Depth-1),
		IsSpecular:  true,
		Attenuation: i.Albedo.Evaluate(hit.UV, hit.Point),
	}, true
}

// ScatteringPDF returns the uniform sphere density 1/(4π)
func (i *Isotropic) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 1.0 / (4.0 * math.Pi)
}
