package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const cornellBoxSize = 555.0

// cornellCameraConfig looks into the open side of the box
func cornellCameraConfig() geometry.CameraConfig {
	return geometry.CameraConfig{
		LookFrom:      core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:        core.NewVec3(278, 278, 0),    // Look at the center of the box
		VUp:           core.NewVec3(0, 1, 0),
		VFov:          40.0,
		AspectRatio:   1.0,
		Aperture:      0.0, // No depth of field for Cornell box
		FocusDistance: 10.0,
		MaxDepth:      50,
	}
}

// newCornellEnclosure creates the scene and the five walls of the box, without a light
func newCornellEnclosure(samplesPerPixel int) *Scene {
	s := NewScene(cornellCameraConfig(), SamplingConfig{
		Width:           600,
		SamplesPerPixel: samplesPerPixel,
	}, core.NewVec3(0, 0, 0)) // Black background

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	s.AddObjects([]geometry.Hittable{
		geometry.NewYZRect(0, cornellBoxSize, 0, cornellBoxSize, cornellBoxSize, green), // Left wall as seen from the camera
		geometry.NewYZRect(0, cornellBoxSize, 0, cornellBoxSize, 0, red),
		geometry.NewXZRect(0, cornellBoxSize, 0, cornellBoxSize, 0, white),              // Floor
		geometry.NewXZRect(0, cornellBoxSize, 0, cornellBoxSize, cornellBoxSize, white), // Ceiling
		geometry.NewXYRect(0, cornellBoxSize, 0, cornellBoxSize, cornellBoxSize, white), // Back wall
	})

	return s
}

// cornellBlocks returns the tall and short boxes, rotated and moved into place
func cornellBlocks(m material.Material) (tall, short geometry.Hittable) {
	tallBox := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), m)
	tall = geometry.NewTranslate(geometry.NewRotateY(tallBox, 15), core.NewVec3(265, 0, 295))

	shortBox := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), m)
	short = geometry.NewTranslate(geometry.NewRotateY(shortBox, -18), core.NewVec3(130, 0, 65))

	return tall, short
}

// NewCornellScene creates a classic Cornell box with two blocks and an area light
func NewCornellScene() *Scene {
	s := newCornellEnclosure(100)

	// Ceiling light, one unit below the ceiling, sampled directly by the integrator
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))
	s.AddLight(geometry.NewXZRect(213, 343, 227, 332, cornellBoxSize-1, light))

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	tall, short := cornellBlocks(white)
	s.AddObjects([]geometry.Hittable{tall, short})

	return s
}

// NewCornellSmokeScene replaces the blocks with black smoke and white fog
func NewCornellSmokeScene() *Scene {
	s := newCornellEnclosure(200)

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	s.AddLight(geometry.NewXZRect(113, 443, 127, 432, cornellBoxSize-1, light))

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	tall, short := cornellBlocks(white)
	s.AddObjects([]geometry.Hittable{
		geometry.NewConstantMedium(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMedium(short, 0.01, core.NewVec3(1, 1, 1)),
	})

	return s
}
