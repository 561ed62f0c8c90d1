package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// boxPadding keeps the bounding box of a flat rectangle from having zero thickness
const boxPadding = 0.001

// AARect is an axis-aligned rectangle lying in the plane Axis(K) = Plane and spanning
// [A0, A1] × [B0, B1] on the two remaining axes.
type AARect struct {
	A0, A1   float64
	B0, B1   float64
	Plane    float64
	Material material.Material

	axisA, axisB, axisK int
	normal              core.Vec3
}

// NewXYRect creates a rectangle in the plane z = k with normal +Z
func NewXYRect(x0, x1, y0, y1, k float64, material material.Material) *AARect {
	return newAARect(0, 1, 2, x0, x1, y0, y1, k, material)
}

// NewXZRect creates a rectangle in the plane y = k with normal +Y
func NewXZRect(x0, x1, z0, z1, k float64, material material.Material) *AARect {
	return newAARect(0, 2, 1, x0, x1, z0, z1, k, material)
}

// NewYZRect creates a rectangle in the plane x = k with normal +X
func NewYZRect(y0, y1, z0, z1, k float64, material material.Material) *AARect {
	return newAARect(1, 2, 0, y0, y1, z0, z1, k, material)
}

func newAARect(axisA, axisB, axisK int, a0, a1, b0, b1, k float64, material material.Material) *AARect {
	var n [3]float64
	n[axisK] = 1

	return &AARect{
		A0: a0, A1: a1,
		B0: b0, B1: b1,
		Plane:    k,
		Material: material,
		axisA:    axisA,
		axisB:    axisB,
		axisK:    axisK,
		normal:   core.NewVec3(n[0], n[1], n[2]),
	}
}

// Hit tests if a ray intersects with the rectangle
func (r *AARect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	dirK := ray.Direction.Axis(r.axisK)
	if dirK == 0 {
		return nil, false
	}

	t := (r.Plane - ray.Origin.Axis(r.axisK)) / dirK
	if t < tMin || t > tMax {
		return nil, false
	}

	a := ray.Origin.Axis(r.axisA) + t*ray.Direction.Axis(r.axisA)
	b := ray.Origin.Axis(r.axisB) + t*ray.Direction.Axis(r.axisB)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		UV:       core.NewVec2((a-r.A0)/(r.A1-r.A0), (b-r.B0)/(r.B1-r.B0)),
		Material: r.Material,
	}
	hitRecord.SetFaceNormal(ray, r.normal)

	return hitRecord, true
}

// BoundingBox returns the rectangle's box, padded along the plane axis
func (r *AARect) BoundingBox() core.AABB {
	return core.NewAABB(
		r.point(r.A0, r.B0, r.Plane-boxPadding),
		r.point(r.A1, r.B1, r.Plane+boxPadding),
	)
}

// Area returns the surface area of the rectangle
func (r *AARect) Area() float64 {
	return (r.A1 - r.A0) * (r.B1 - r.B0)
}

// PDFValue returns the solid-angle density of sampling direction toward the rectangle
func (r *AARect) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	hit, ok := r.Hit(core.NewRay(origin, direction, 1), 0.001, infinity, sampler)
	if !ok {
		return 0
	}
	return lightPDFValue(hit, direction, r.Area())
}

// Random returns a direction from origin toward a uniformly chosen point on the rectangle
func (r *AARect) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	sample := sampler.Get2D()
	target := r.point(
		r.A0+sample.X*(r.A1-r.A0),
		r.B0+sample.Y*(r.B1-r.B0),
		r.Plane,
	)
	return target.Subtract(origin)
}

// point assembles a world-space point from in-plane coordinates and the plane offset
func (r *AARect) point(a, b, k float64) core.Vec3 {
	var p [3]float64
	p[r.axisA] = a
	p[r.axisB] = b
	p[r.axisK] = k
	return core.NewVec3(p[0], p[1], p[2])
}
