package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Triangle is a single face of a TriangleMesh
type Triangle struct {
	Mesh       *TriangleMesh
	V0, V1, V2 int // vertex indices into the mesh
}

// NewTriangle creates the face-th triangle of mesh
func NewTriangle(mesh *TriangleMesh, face int) *Triangle {
	return &Triangle{
		Mesh: mesh,
		V0:   mesh.Indices[face*3],
		V1:   mesh.Indices[face*3+1],
		V2:   mesh.Indices[face*3+2],
	}
}

// Hit tests ray intersection with the watertight shear-and-permute algorithm, which
// never reports a miss through the shared edge of two adjacent triangles.
func (tri *Triangle) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	p0 := tri.Mesh.Vertices[tri.V0]
	p1 := tri.Mesh.Vertices[tri.V1]
	p2 := tri.Mesh.Vertices[tri.V2]

	// Translate vertices into ray space
	p0t := p0.Subtract(ray.Origin)
	p1t := p1.Subtract(ray.Origin)
	p2t := p2.Subtract(ray.Origin)

	// Permute so the dominant direction component is z
	kz := ray.Direction.Abs().MaxDimension()
	kx := (kz + 1) % 3
	ky := (kx + 1) % 3
	d := ray.Direction.Permute(kx, ky, kz)
	p0t = p0t.Permute(kx, ky, kz)
	p1t = p1t.Permute(kx, ky, kz)
	p2t = p2t.Permute(kx, ky, kz)

	// Shear so the ray points down +z
	sx := -d.X / d.Z
	sy := -d.Y / d.Z
	sz := 1.0 / d.Z
	p0t.X += sx * p0t.Z
	p0t.Y += sy * p0t.Z
	p1t.X += sx * p1t.Z
	p1t.Y += sy * p1t.Z
	p2t.X += sx * p2t.Z
	p2t.Y += sy * p2t.Z

	// Edge functions
	e0 := p1t.X*p2t.Y - p1t.Y*p2t.X
	e1 := p2t.X*p0t.Y - p2t.Y*p0t.X
	e2 := p0t.X*p1t.Y - p0t.Y*p1t.X

	if (e0 < 0 || e1 < 0 || e2 < 0) && (e0 > 0 || e1 > 0 || e2 > 0) {
		return nil, false
	}
	det := e0 + e1 + e2
	if det == 0 {
		return nil, false
	}

	// Scaled distance, compared against the interval without dividing by det
	p0t.Z *= sz
	p1t.Z *= sz
	p2t.Z *= sz
	tScaled := e0*p0t.Z + e1*p1t.Z + e2*p2t.Z
	if det < 0 && (tScaled >= tMin*det || tScaled < tMax*det) {
		return nil, false
	}
	if det > 0 && (tScaled <= tMin*det || tScaled > tMax*det) {
		return nil, false
	}

	invDet := 1.0 / det
	b0 := e0 * invDet
	b1 := e1 * invDet
	b2 := e2 * invDet
	t := tScaled * invDet

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    p0.Multiply(b0).Add(p1.Multiply(b1)).Add(p2.Multiply(b2)),
		UV:       tri.interpolateUV(b0, b1, b2),
		Material: tri.Mesh.Material,
	}
	hitRecord.SetFaceNormal(ray, tri.normal(b0, b1, b2))

	return hitRecord, true
}

// normal returns the shading normal for the given barycentric weights
func (tri *Triangle) normal(b0, b1, b2 float64) core.Vec3 {
	mesh := tri.Mesh
	if mesh.Smooth {
		n := mesh.Normals[tri.V0].Multiply(b0).
			Add(mesh.Normals[tri.V1].Multiply(b1)).
			Add(mesh.Normals[tri.V2].Multiply(b2))
		if n.LengthSquared() > 0 {
			return n.Normalize()
		}
	}
	p0 := mesh.Vertices[tri.V0]
	p1 := mesh.Vertices[tri.V1]
	p2 := mesh.Vertices[tri.V2]
	return p0.Subtract(p2).Cross(p1.Subtract(p2)).Normalize()
}

func (tri *Triangle) interpolateUV(b0, b1, b2 float64) core.Vec2 {
	uvs := tri.Mesh.UVs
	if uvs == nil {
		return core.Vec2{}
	}
	return core.NewVec2(
		b0*uvs[tri.V0].X+b1*uvs[tri.V1].X+b2*uvs[tri.V2].X,
		b0*uvs[tri.V0].Y+b1*uvs[tri.V1].Y+b2*uvs[tri.V2].Y,
	)
}

// BoundingBox returns the axis-aligned bounding box for this triangle, padded on flat axes
func (tri *Triangle) BoundingBox() core.AABB {
	box := core.NewAABBFromPoints(
		tri.Mesh.Vertices[tri.V0],
		tri.Mesh.Vertices[tri.V1],
		tri.Mesh.Vertices[tri.V2],
	)
	pad := core.Vec3{}
	size := box.Size()
	if size.X < boxPadding {
		pad.X = boxPadding
	}
	if size.Y < boxPadding {
		pad.Y = boxPadding
	}
	if size.Z < boxPadding {
		pad.Z = boxPadding
	}
	return core.NewAABB(box.Min.Subtract(pad), box.Max.Add(pad))
}

// Area returns the surface area of the triangle
func (tri *Triangle) Area() float64 {
	p0 := tri.Mesh.Vertices[tri.V0]
	p1 := tri.Mesh.Vertices[tri.V1]
	p2 := tri.Mesh.Vertices[tri.V2]
	return 0.5 * p1.Subtract(p0).Cross(p2.Subtract(p0)).Length()
}

// PDFValue returns the solid-angle density of sampling direction toward a uniform point
// on the triangle, using the geometric (unshaded) normal
func (tri *Triangle) PDFValue(origin, direction core.Vec3, sampler core.Sampler) float64 {
	hit, ok := tri.Hit(core.NewRay(origin, direction, 1), 0.001, infinity, sampler)
	if !ok {
		return 0
	}

	area := tri.Area()
	normal := tri.geometricNormal()
	cosine := math.Abs(direction.Dot(normal)) / direction.Length()
	if cosine == 0 || area == 0 {
		return 0
	}
	distanceSquared := hit.T * hit.T * direction.LengthSquared()
	return distanceSquared / (cosine * area)
}

// Random returns a direction from origin toward a uniformly distributed point on the triangle
func (tri *Triangle) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	p0 := tri.Mesh.Vertices[tri.V0]
	p1 := tri.Mesh.Vertices[tri.V1]
	p2 := tri.Mesh.Vertices[tri.V2]

	sample := sampler.Get2D()
	su := math.Sqrt(sample.X)
	b0 := 1 - su
	b1 := sample.Y * su

	point := p0.Multiply(b0).Add(p1.Multiply(b1)).Add(p2.Multiply(1 - b0 - b1))
	return point.Subtract(origin)
}

func (tri *Triangle) geometricNormal() core.Vec3 {
	p0 := tri.Mesh.Vertices[tri.V0]
	p1 := tri.Mesh.Vertices[tri.V1]
	p2 := tri.Mesh.Vertices[tri.V2]
	return p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()
}
