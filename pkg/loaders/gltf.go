package loaders

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/qmuntal/gltf"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// LoadGLTFMesh loads every triangle primitive of a glTF or GLB file into one
// triangle mesh. Primitives of other modes (points, lines, strips) are skipped.
func LoadGLTFMesh(filename string, options MeshOptions) (*geometry.TriangleMesh, error) {
	startTime := time.Now()

	doc, err := gltf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open glTF file: %w", err)
	}

	var vertices, normals []core.Vec3
	var uvs []core.Vec2
	var faces []int
	allNormals, allUVs := true, true

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}

			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := readVec3Accessor(doc, posIdx)
			if err != nil {
				return nil, fmt.Errorf("mesh %q positions: %w", m.Name, err)
			}

			var primNormals []core.Vec3
			if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
				primNormals, err = readVec3Accessor(doc, normIdx)
				if err != nil {
					return nil, fmt.Errorf("mesh %q normals: %w", m.Name, err)
				}
			}

			var primUVs []core.Vec2
			if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
				primUVs, err = readVec2Accessor(doc, uvIdx)
				if err != nil {
					return nil, fmt.Errorf("mesh %q uvs: %w", m.Name, err)
				}
			}

			baseVertex := len(vertices)
			vertices = append(vertices, positions...)

			allNormals = allNormals && len(primNormals) == len(positions)
			if allNormals {
				normals = append(normals, primNormals...)
			}
			allUVs = allUVs && len(primUVs) == len(positions)
			if allUVs {
				// glTF puts v=0 at the top of the image
				for _, uv := range primUVs {
					uvs = append(uvs, core.NewVec2(uv.X, 1.0-uv.Y))
				}
			}

			if prim.Indices != nil {
				indices, err := readIndices(doc, *prim.Indices)
				if err != nil {
					return nil, fmt.Errorf("mesh %q indices: %w", m.Name, err)
				}
				if len(indices)%3 != 0 {
					return nil, fmt.Errorf("%w: mesh %q has %d indices", ErrUnsupportedFace, m.Name, len(indices))
				}
				for _, index := range indices {
					faces = append(faces, baseVertex+index)
				}
			} else {
				// Non-indexed: consecutive vertex triples
				for i := 0; i+2 < len(positions); i += 3 {
					faces = append(faces, baseVertex+i, baseVertex+i+1, baseVertex+i+2)
				}
			}
		}
	}

	if len(faces) == 0 {
		return nil, fmt.Errorf("%w: %s has no triangle primitives", ErrUnsupportedFormat, filename)
	}
	if !allNormals {
		normals = nil
	}
	if !allUVs {
		uvs = nil
	}

	mesh, err := buildMesh(vertices, faces, normals, uvs, options)
	if err != nil {
		return nil, fmt.Errorf("invalid mesh in %s: %w", filename, err)
	}

	if options.Logger != nil {
		options.Logger.Printf("Loaded glTF mesh %s: %d vertices, %d triangles in %v\n",
			filename, len(vertices), mesh.GetTriangleCount(), time.Since(startTime))
	}
	return mesh, nil
}

// readVec3Accessor reads float VEC3 data from a glTF accessor
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]core.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("%w: expected float VEC3 accessor", ErrUnsupportedFormat)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]core.Vec3, accessor.Count)
	for i := range result {
		offset := i * stride
		result[i] = core.NewVec3(
			readFloat32(data[offset:]),
			readFloat32(data[offset+4:]),
			readFloat32(data[offset+8:]),
		)
	}
	return result, nil
}

// readVec2Accessor reads float VEC2 data from a glTF accessor
func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]core.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("%w: expected float VEC2 accessor", ErrUnsupportedFormat)
	}

	data, stride, err := accessorBytes(doc, accessor, 8)
	if err != nil {
		return nil, err
	}

	result := make([]core.Vec2, accessor.Count)
	for i := range result {
		offset := i * stride
		result[i] = core.NewVec2(readFloat32(data[offset:]), readFloat32(data[offset+4:]))
	}
	return result, nil
}

// readIndices reads unsigned SCALAR index data from a glTF accessor
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("%w: expected SCALAR index accessor", ErrUnsupportedFormat)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("%w: index component type %v", ErrUnsupportedFormat, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		offset := i * stride
		switch size {
		case 1:
			result[i] = int(data[offset])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[offset:]))
		default:
			result[i] = int(binary.LittleEndian.Uint32(data[offset:]))
		}
	}
	return result, nil
}

// accessorBytes returns the accessor's slice of its buffer and the element stride
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elementSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer %d has no data", bufferView.Buffer)
	}

	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elementSize
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	end := start
	if accessor.Count > 0 {
		end = start + (accessor.Count-1)*stride + elementSize
	}
	if start < 0 || end > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor range [%d, %d) exceeds buffer of %d bytes", start, end, len(buffer.Data))
	}

	return buffer.Data[start:end], stride, nil
}

// readFloat32 reads a little-endian float32
func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
