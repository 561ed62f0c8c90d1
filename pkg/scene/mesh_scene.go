package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// meshFitSize is the largest extent of a mesh placed inside the enclosure
const meshFitSize = 330.0

// NewMeshScene loads a PLY or glTF mesh, fits it to the floor of a lit Cornell-style
// enclosure and adds its triangles to the scene
func NewMeshScene(opts Options) (*Scene, error) {
	if opts.MeshPath == "" {
		return nil, errors.New("mesh scene requires a mesh file")
	}

	meshMaterial := material.NewLambertian(core.NewVec3(0.8, 0.5, 0.3))
	mesh, err := LoadMesh(opts.MeshPath, loaders.MeshOptions{
		Material: meshMaterial,
		Smooth:   true,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	s := newCornellEnclosure(100)

	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))
	s.AddLight(geometry.NewXZRect(213, 343, 227, 332, cornellBoxSize-1, light))

	fitted := fitMeshToFloor(mesh, core.NewVec3(cornellBoxSize/2, 0, cornellBoxSize/2), meshFitSize)
	s.AddObjects(fitted.Hittables())

	return s, nil
}

// LoadMesh picks the loader from the file extension
func LoadMesh(path string, options loaders.MeshOptions) (*geometry.TriangleMesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ply":
		return loaders.LoadPLYMesh(path, options)
	case ".gltf", ".glb":
		return loaders.LoadGLTFMesh(path, options)
	default:
		return nil, fmt.Errorf("%w: mesh extension %q", loaders.ErrUnsupportedFormat, ext)
	}
}

// fitMeshToFloor returns a copy of the mesh uniformly scaled so its largest extent is
// size, with the bottom of its bounds centered on floorCenter
func fitMeshToFloor(mesh *geometry.TriangleMesh, floorCenter core.Vec3, size float64) *geometry.TriangleMesh {
	bounds := core.NewAABBFromPoints(mesh.Vertices...)
	extent := bounds.Size()
	largest := max(extent.X, extent.Y, extent.Z)

	scale := 1.0
	if largest > 0 {
		scale = size / largest
	}

	center := bounds.Center()
	anchor := core.NewVec3(center.X, bounds.Min.Y, center.Z)

	vertices := make([]core.Vec3, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		vertices[i] = v.Subtract(anchor).Multiply(scale).Add(floorCenter)
	}

	return geometry.NewTriangleMesh(vertices, mesh.Indices, mesh.Material, &geometry.TriangleMeshOptions{
		Normals: mesh.Normals,
		UVs:     mesh.UVs,
		Smooth:  mesh.Smooth,
	})
}
