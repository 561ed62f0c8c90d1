package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// hitEpsilon keeps scattered rays from re-hitting the surface they leave
const hitEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing. Diffuse bounces draw
// their direction from an equal mixture of light sampling and the material's own PDF.
type PathTracingIntegrator struct{}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if ray.Depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := s.Hit(ray, hitEpsilon, math.Inf(1), sampler)
	if !isHit {
		return s.Background
	}

	colorEmitted := material.Emitted(hit.Material, hit)

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return colorEmitted
	}

	if scatter.IsSpecular {
		return colorEmitted.Add(pt.calculateSpecularColor(scatter, s, sampler))
	}
	return colorEmitted.Add(pt.calculateDiffuseColor(ray, scatter, hit, s, sampler))
}

// calculateSpecularColor follows the material's own ray, weighted by attenuation alone
func (pt *PathTracingIntegrator) calculateSpecularColor(scatter material.ScatterRecord, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	return scatter.Attenuation.MultiplyVec(pt.RayColor(scatter.SpecularRay, s, sampler))
}

// calculateDiffuseColor importance samples one scattered direction and weights the
// incoming light by attenuation · scattering pdf / sampling pdf
func (pt *PathTracingIntegrator) calculateDiffuseColor(ray core.Ray, scatter material.ScatterRecord, hit *material.HitRecord, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	pdf := pt.samplingPDF(scatter, hit, s, sampler)

	scattered := core.NewRay(hit.Point, pdf.Generate(sampler), ray.Depth-1)
	pdfValue := pdf.Value(scattered.Direction)

	// A zero or non-finite density would turn the estimate into Inf or NaN; drop the sample
	if !(pdfValue > 0) || math.IsInf(pdfValue, 0) {
		return core.Vec3{}
	}

	scatteringPDF := hit.Material.ScatteringPDF(ray, hit, scattered)
	if scatteringPDF <= 0 {
		return core.Vec3{}
	}

	incomingLight := pt.RayColor(scattered, s, sampler)
	return scatter.Attenuation.MultiplyVec(incomingLight).Multiply(scatteringPDF / pdfValue)
}

// samplingPDF mixes light sampling with the material PDF when the scene has lights
func (pt *PathTracingIntegrator) samplingPDF(scatter material.ScatterRecord, hit *material.HitRecord, s *scene.Scene, sampler core.Sampler) core.PDF {
	if !s.HasLights() {
		return scatter.PDF
	}
	lightPDF := geometry.NewHittablePDF(s.Lights, hit.Point, sampler)
	return core.NewMixturePDF(lightPDF, scatter.PDF)
}
