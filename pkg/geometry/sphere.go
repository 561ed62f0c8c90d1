package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape. A negative radius keeps the same surface but flips
// the outward normal inward, which is how hollow glass shells are modelled.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// NewHollowSphere creates an inward-facing sphere of the given (positive) radius
func NewHollowSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	return NewSphere(center, -math.Abs(radius), material)
}

// Inverted reports whether the sphere's normals point inward
func (s *Sphere) Inverted() bool {
	return s.Radius < 0
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Dividing by the signed radius flips the normal of hollow spheres
	outwardNormal := hitRecord.Point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)
	hitRecord.UV = sphereUV(outwardNormal)

	return hitRecord, true
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u runs around the Y axis from X=-1, v runs from the -Y pole to the +Y pole.
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi

	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	r := math.Abs(s.Radius)
	radius := core.NewVec3(r, r, r)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// PDFValue returns the solid-angle density of sampling direction toward the sphere from
// origin: uniform over the cone the sphere subtends, or over all directions from inside
func (s *Sphere) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	if _, ok := s.Hit(core.NewRay(origin, direction, 1), 0.001, infinity, sampler); !ok {
		return 0
	}

	radiusSquared := s.Radius * s.Radius
	distanceSquared := s.Center.Subtract(origin).LengthSquared()
	if distanceSquared <= radiusSquared {
		return 1 / (4 * math.Pi)
	}

	cosThetaMax := math.Sqrt(1 - radiusSquared/distanceSquared)
	solidAngle := 2 * math.Pi * (1 - cosThetaMax)
	if solidAngle <= 0 {
		return 0
	}
	return 1 / solidAngle
}

// Random returns a direction from origin toward a uniformly chosen point of the visible cone
func (s *Sphere) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	direction := s.Center.Subtract(origin)
	distanceSquared := direction.LengthSquared()
	radiusSquared := s.Radius * s.Radius
	if distanceSquared <= radiusSquared {
		return core.SampleOnUnitSphere(sampler.Get2D())
	}

	onb := core.NewONBFromW(direction)
	return onb.Local(randomToSphere(radiusSquared, distanceSquared, sampler.Get2D()))
}

// randomToSphere samples a direction in the local frame (+Z toward the center) uniformly
// over the cone subtended by a sphere
func randomToSphere(radiusSquared, distanceSquared float64, sample core.Vec2) core.Vec3 {
	cosThetaMax := math.Sqrt(1 - radiusSquared/distanceSquared)
	z := 1 + sample.Y*(cosThetaMax-1)
	sinTheta := math.Sqrt(math.Max(0, 1-z*z))

	phi := 2 * math.Pi * sample.X
	return core.NewVec3(math.Cos(phi)*sinTheta, math.Sin(phi)*sinTheta, z)
}
