package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewRandomScene creates the random sphere field: a checkered ground, a grid of small
// diffuse, metal and glass spheres and three large feature spheres
func NewRandomScene(seed int64) *Scene {
	s := NewScene(geometry.DefaultCameraConfig(), SamplingConfig{
		Width:           1200,
		SamplesPerPixel: 10,
	}, SkyBackground)

	sampler := core.NewSeededSampler(seed)

	checker := material.NewCheckerTexture(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	ground := material.NewTexturedLambertian(checker)
	s.AddObject(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	glass := material.NewDielectric(1.5)
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var sphereMaterial material.Material
			switch {
			case chooseMat < 0.8:
				albedo := core.NewVec3(sampler.Get1D(), sampler.Get1D(), sampler.Get1D())
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.NewVec3(
					core.RandomRange(sampler, 0.5, 1),
					core.RandomRange(sampler, 0.5, 1),
					core.RandomRange(sampler, 0.5, 1),
				)
				sphereMaterial = material.NewMetal(albedo, core.RandomRange(sampler, 0, 0.5))
			default:
				sphereMaterial = glass
			}

			s.AddObject(geometry.NewSphere(center, 0.2, sphereMaterial))
		}
	}

	s.AddObjects([]geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	})

	return s
}
