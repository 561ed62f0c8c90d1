package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// HittableList is a flat collection of objects scanned linearly
type HittableList struct {
	Objects []Hittable
}

// NewHittableList creates a list from the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends an object to the list
func (l *HittableList) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the closest hit across all objects, narrowing tMax as it scans
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, ok := object.Hit(ray, tMin, closestSoFar, sampler); ok {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of all object boxes
func (l *HittableList) BoundingBox() core.AABB {
	if len(l.Objects) == 0 {
		return core.AABB{}
	}
	box := l.Objects[0].BoundingBox()
	for _, object := range l.Objects[1:] {
		box = box.Union(object.BoundingBox())
	}
	return box
}

// LightCount returns the number of objects that can be importance sampled
func (l *HittableList) LightCount() int {
	return len(l.lightShapes())
}

// lightShapes returns the members implementing LightShape. Other members are never
// sampled and carry no weight in the density.
func (l *HittableList) lightShapes() []LightShape {
	var lights []LightShape
	for _, object := range l.Objects {
		if light, ok := object.(LightShape); ok {
			lights = append(lights, light)
		}
	}
	return lights
}

// PDFValue averages the densities of all light-capable objects in the list
func (l *HittableList) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	lights := l.lightShapes()
	if len(lights) == 0 {
		return 0
	}
	weight := 1.0 / float64(len(lights))
	sum := 0.0
	for _, light := range lights {
		sum += weight * light.PDFValue(origin, direction, sampler)
	}
	return sum
}

// Random picks one light-capable object uniformly and samples a direction toward it.
// Callers check LightCount first; an empty set returns an arbitrary direction.
func (l *HittableList) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	lights := l.lightShapes()
	if len(lights) == 0 {
		return core.NewVec3(1, 0, 0)
	}
	index := min(int(sampler.Get1D()*float64(len(lights))), len(lights)-1)
	return lights[index].Random(origin, sampler)
}
