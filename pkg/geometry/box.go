package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Box represents an axis-aligned box made up of 6 rectangles
type Box struct {
	Min      core.Vec3         // Minimum corner
	Max      core.Vec3         // Maximum corner
	Material material.Material // Material for all faces
	faces    [6]*AARect        // The 6 rectangle faces
}

// NewBox creates a new box spanning the corners p0 and p1
func NewBox(p0, p1 core.Vec3, material material.Material) *Box {
	box := &Box{
		Min:      p0,
		Max:      p1,
		Material: material,
	}

	box.faces[0] = NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p1.Z, material) // front
	box.faces[1] = NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p0.Z, material) // back
	box.faces[2] = NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p1.Y, material) // top
	box.faces[3] = NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p0.Y, material) // bottom
	box.faces[4] = NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p1.X, material) // right
	box.faces[5] = NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p0.X, material) // left

	return box
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestT := tMax

	for _, face := range b.faces {
		if hit, isHit := face.Hit(ray, tMin, closestT, sampler); isHit {
			closestT = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of the face boxes, so it carries their padding
func (b *Box) BoundingBox() core.AABB {
	box := b.faces[0].BoundingBox()
	for _, face := range b.faces[1:] {
		box = box.Union(face.BoundingBox())
	}
	return box
}
