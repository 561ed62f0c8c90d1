package scene

import (
	"errors"
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrBVHAlreadyBuilt is returned when BuildBVH is called a second time
var ErrBVHAlreadyBuilt = errors.New("scene BVH already built")

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	Objects        []geometry.Hittable    // Objects in the scene, kept for the BVH build
	Lights         *geometry.HittableList // Shapes sampled directly by the integrator
	Background     core.Vec3              // Radiance returned by rays that miss everything
	SamplingConfig SamplingConfig
	CameraConfig   geometry.CameraConfig
	BVH            *geometry.BVH // Acceleration structure for ray-object intersection
}

// SamplingConfig contains the film settings a scene prefers
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
}

// NewScene creates an empty scene viewed through the given camera configuration
func NewScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig, background core.Vec3) *Scene {
	if samplingConfig.Height == 0 && cameraConfig.AspectRatio > 0 {
		samplingConfig.Height = clampHeight(samplingConfig.Width, cameraConfig.AspectRatio)
	}

	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		Objects:        make([]geometry.Hittable, 0),
		Lights:         geometry.NewHittableList(),
		Background:     background,
		SamplingConfig: samplingConfig,
		CameraConfig:   cameraConfig,
	}
}

// AddObject adds a single primitive to the scene
func (s *Scene) AddObject(object geometry.Hittable) {
	s.Objects = append(s.Objects, object)
}

// AddObjects adds a list of primitives to the scene
func (s *Scene) AddObjects(objects []geometry.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// AddLight adds a shape that is rendered and, when it implements geometry.LightShape,
// sampled as a light
func (s *Scene) AddLight(light geometry.Hittable) {
	s.AddObject(light)
	s.Lights.Add(light)
}

// HasLights reports whether any registered light can be importance sampled
func (s *Scene) HasLights() bool {
	return s.Lights != nil && s.Lights.LightCount() > 0
}

// BuildBVH builds the acceleration structure over the current object list.
// It must be called exactly once, after all objects have been added.
func (s *Scene) BuildBVH(seed int64) error {
	if s.BVH != nil {
		return ErrBVHAlreadyBuilt
	}
	s.BVH = geometry.NewBVH(s.Objects, rand.New(rand.NewSource(seed)))
	return nil
}

// Hit finds the closest intersection with the scene
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	if s.BVH != nil {
		return s.BVH.Hit(ray, tMin, tMax, sampler)
	}

	// Linear scan before the BVH is built
	var closest *material.HitRecord
	closestSoFar := tMax
	for _, object := range s.Objects {
		if hit, ok := object.Hit(ray, tMin, closestSoFar, sampler); ok {
			closestSoFar = hit.T
			closest = hit
		}
	}
	return closest, closest != nil
}

// BoundingBox returns the bounds of every object in the scene
func (s *Scene) BoundingBox() core.AABB {
	if s.BVH != nil {
		return s.BVH.BoundingBox()
	}
	if len(s.Objects) == 0 {
		return core.AABB{}
	}
	box := s.Objects[0].BoundingBox()
	for _, object := range s.Objects[1:] {
		box = box.Union(object.BoundingBox())
	}
	return box
}

// SetWidth changes the film width, keeping the camera's aspect ratio
func (s *Scene) SetWidth(width int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = clampHeight(width, s.CameraConfig.AspectRatio)
}

// SetMaxDepth changes the bounce budget carried by camera rays
func (s *Scene) SetMaxDepth(depth int) {
	s.CameraConfig.MaxDepth = depth
	s.Camera = geometry.NewCamera(s.CameraConfig)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}

// SkyBackground is the constant sky color used by the open-air scenes
var SkyBackground = core.NewVec3(0.70, 0.80, 1.00)

// clampHeight keeps the film at least one pixel tall
func clampHeight(width int, aspect float64) int {
	return int(math.Max(1, float64(width)/aspect))
}
