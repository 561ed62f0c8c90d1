package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// TriangleMesh holds the shared vertex data for a set of triangles. Triangles reference
// it by index so large meshes keep one copy of their attributes.
type TriangleMesh struct {
	Vertices []core.Vec3
	Normals  []core.Vec3 // per-vertex normals, nil if the mesh has none
	UVs      []core.Vec2 // per-vertex texture coordinates, nil if the mesh has none
	Indices  []int       // three vertex indices per triangle
	Material material.Material
	Smooth   bool // interpolate vertex normals instead of using the face normal
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Normals []core.Vec3 // Optional per-vertex normals
	UVs     []core.Vec2 // Optional per-vertex texture coordinates
	Smooth  bool        // Shade with interpolated normals (requires Normals)
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// Each group of 3 indices forms a triangle. options can be nil for a flat mesh.
func NewTriangleMesh(vertices []core.Vec3, indices []int, material material.Material, options *TriangleMeshOptions) *TriangleMesh {
	if len(indices)%3 != 0 {
		panic("Face indices must be a multiple of 3")
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(vertices) {
			panic(fmt.Sprintf("Face index %d out of bounds for %d vertices", idx, len(vertices)))
		}
	}

	mesh := &TriangleMesh{
		Vertices: vertices,
		Indices:  indices,
		Material: material,
	}

	if options != nil {
		if options.Normals != nil && len(options.Normals) != len(vertices) {
			panic("Number of normals must match number of vertices")
		}
		if options.UVs != nil && len(options.UVs) != len(vertices) {
			panic("Number of texture coordinates must match number of vertices")
		}
		mesh.Normals = options.Normals
		mesh.UVs = options.UVs
		mesh.Smooth = options.Smooth && options.Normals != nil
	}

	return mesh
}

// GetTriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) GetTriangleCount() int {
	return len(tm.Indices) / 3
}

// Triangles returns one primitive per face, all sharing this mesh
func (tm *TriangleMesh) Triangles() []*Triangle {
	triangles := make([]*Triangle, tm.GetTriangleCount())
	for i := range triangles {
		triangles[i] = NewTriangle(tm, i)
	}
	return triangles
}

// Hittables returns the mesh triangles as scene primitives
func (tm *TriangleMesh) Hittables() []Hittable {
	triangles := tm.Triangles()
	hittables := make([]Hittable, len(triangles))
	for i, tri := range triangles {
		hittables[i] = tri
	}
	return hittables
}
