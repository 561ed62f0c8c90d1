package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	// ErrUnsupportedFace is returned for faces that are neither triangles nor quads
	ErrUnsupportedFace = errors.New("unsupported face vertex count")
	// ErrUnsupportedFormat is returned for unknown file encodings or property types
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is an element declaration ("vertex", "face", ...) with its properties
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the vertex and face data loaded from a PLY file
type PLYData struct {
	Vertices  []core.Vec3 // Vertex positions (x, y, z)
	Faces     []int       // Triangle indices (3 per triangle), quads already split
	Normals   []core.Vec3 // Per-vertex normals (nx, ny, nz), nil if not present
	TexCoords []core.Vec2 // Per-vertex texture coordinates (u, v), nil if not present
}

// LoadPLY loads a PLY file and returns the raw vertex and face data
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY file %s: %w", filename, err)
	}
	return data, nil
}

// ReadPLY parses PLY data from r
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReaderSize(r, 1024*1024)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		values = &asciiValueReader{reader: reader}
	case "binary_little_endian":
		values = &binaryValueReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValueReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: PLY encoding %q", ErrUnsupportedFormat, header.Format)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			err = readVertices(values, element, data)
		case "face":
			err = readFaces(values, element, data)
		default:
			err = skipElement(values, element)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s data: %w", element.Name, err)
		}
	}

	return data, nil
}

// parsePLYHeader parses the PLY header, leaving reader positioned at the payload
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	magic, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}
	if strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("%w: missing ply magic number", ErrUnsupportedFormat)
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("error reading header: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) >= 3 {
				header.Format = parts[1]
				header.Version = parts[2]
			}
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element definition: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element: %q", line)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Properties = append(current.Properties, prop)
		default:
			return nil, fmt.Errorf("unexpected header line: %q", line)
		}
	}

	if header.Format == "" {
		return nil, fmt.Errorf("missing format line")
	}
	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	prop := PLYProperty{}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		prop.IsList = true
		prop.ListType = parts[1]
		prop.DataType = parts[2]
		prop.Name = parts[3]
	} else {
		prop.Type = parts[0]
		prop.Name = parts[1]
	}

	return prop, nil
}

// readVertices reads positions plus optional normals and texture coordinates
func readVertices(values plyValueReader, element PLYElement, data *PLYData) error {
	hasNormals, hasUVs := false, false
	for _, prop := range element.Properties {
		switch prop.Name {
		case "nx", "ny", "nz":
			hasNormals = true
		case "u", "s", "v", "t":
			hasUVs = true
		}
	}

	data.Vertices = make([]core.Vec3, 0, element.Count)
	if hasNormals {
		data.Normals = make([]core.Vec3, 0, element.Count)
	}
	if hasUVs {
		data.TexCoords = make([]core.Vec2, 0, element.Count)
	}

	for i := 0; i < element.Count; i++ {
		var position, normal core.Vec3
		var uv core.Vec2

		for _, prop := range element.Properties {
			if prop.IsList {
				if err := skipList(values, prop); err != nil {
					return err
				}
				continue
			}

			value, err := values.readValue(prop.Type)
			if err != nil {
				return fmt.Errorf("vertex %d property %s: %w", i, prop.Name, err)
			}

			switch prop.Name {
			case "x":
				position.X = value
			case "y":
				position.Y = value
			case "z":
				position.Z = value
			case "nx":
				normal.X = value
			case "ny":
				normal.Y = value
			case "nz":
				normal.Z = value
			case "u", "s":
				uv.X = value
			case "v", "t":
				uv.Y = value
			}
		}

		data.Vertices = append(data.Vertices, position)
		if hasNormals {
			data.Normals = append(data.Normals, normal)
		}
		if hasUVs {
			data.TexCoords = append(data.TexCoords, uv)
		}
	}

	return nil
}

// readFaces reads vertex index lists, splitting quads into two triangles
func readFaces(values plyValueReader, element PLYElement, data *PLYData) error {
	data.Faces = make([]int, 0, element.Count*3)

	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if !prop.IsList || (prop.Name != "vertex_indices" && prop.Name != "vertex_index") {
				if err := skipProperty(values, prop); err != nil {
					return fmt.Errorf("face %d property %s: %w", i, prop.Name, err)
				}
				continue
			}

			count, err := values.readValue(prop.ListType)
			if err != nil {
				return fmt.Errorf("face %d vertex count: %w", i, err)
			}
			if count < 0 {
				return fmt.Errorf("face %d has negative vertex count", i)
			}

			indices := make([]int, int(count))
			for j := range indices {
				index, err := values.readValue(prop.DataType)
				if err != nil {
					return fmt.Errorf("face %d index %d: %w", i, j, err)
				}
				indices[j] = int(index)
			}

			switch len(indices) {
			case 3:
				data.Faces = append(data.Faces, indices[0], indices[1], indices[2])
			case 4:
				data.Faces = append(data.Faces,
					indices[0], indices[1], indices[2],
					indices[0], indices[2], indices[3])
			default:
				return fmt.Errorf("%w: face %d has %d vertices (only triangles and quads are supported)",
					ErrUnsupportedFace, i, len(indices))
			}
		}
	}

	return nil
}

// skipElement consumes every instance of an element nothing reads
func skipElement(values plyValueReader, element PLYElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if err := skipProperty(values, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

// skipProperty consumes one scalar or list property value
func skipProperty(values plyValueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipList(values, prop)
	}
	_, err := values.readValue(prop.Type)
	return err
}

func skipList(values plyValueReader, prop PLYProperty) error {
	count, err := values.readValue(prop.ListType)
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("negative list length for %s", prop.Name)
	}
	for i := 0; i < int(count); i++ {
		if _, err := values.readValue(prop.DataType); err != nil {
			return err
		}
	}
	return nil
}

// plyValueReader reads one typed scalar from the payload as a float64
type plyValueReader interface {
	readValue(dataType string) (float64, error)
}

// asciiValueReader reads whitespace-separated tokens
type asciiValueReader struct {
	reader *bufio.Reader
}

func (a *asciiValueReader) readValue(dataType string) (float64, error) {
	if getTypeSize(dataType) == 0 {
		return 0, fmt.Errorf("%w: data type %q", ErrUnsupportedFormat, dataType)
	}

	var token strings.Builder
	for {
		c, err := a.reader.ReadByte()
		if err != nil {
			if err == io.EOF && token.Len() > 0 {
				break
			}
			return 0, err
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			if token.Len() > 0 {
				break
			}
			continue
		}
		token.WriteByte(c)
	}

	value, err := strconv.ParseFloat(token.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, token.String())
	}
	return value, nil
}

// binaryValueReader decodes fixed-size values in the file's byte order
type binaryValueReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryValueReader) readValue(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("%w: data type %q", ErrUnsupportedFormat, dataType)
	}

	raw := b.buf[:size]
	if _, err := io.ReadFull(b.reader, raw); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(raw[0])), nil
	case "uchar", "uint8":
		return float64(raw[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(raw))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(raw)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(raw))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(raw)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(raw))), nil
	default: // double, float64
		return math.Float64frombits(b.order.Uint64(raw)), nil
	}
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}

// MeshOptions controls how loaded mesh data becomes scene geometry
type MeshOptions struct {
	Material material.Material
	Smooth   bool        // Interpolate vertex normals when the file has them
	Scale    float64     // Uniform scale applied to positions, 0 means 1
	Logger   core.Logger // Optional, receives a summary line after loading
}

// LoadPLYMesh loads a PLY file into a triangle mesh whose triangles share its data
func LoadPLYMesh(filename string, options MeshOptions) (*geometry.TriangleMesh, error) {
	startTime := time.Now()

	data, err := LoadPLY(filename)
	if err != nil {
		return nil, err
	}

	mesh, err := buildMesh(data.Vertices, data.Faces, data.Normals, data.TexCoords, options)
	if err != nil {
		return nil, fmt.Errorf("invalid mesh in %s: %w", filename, err)
	}

	if options.Logger != nil {
		options.Logger.Printf("Loaded PLY mesh %s: %d vertices, %d triangles in %v\n",
			filename, len(data.Vertices), mesh.GetTriangleCount(), time.Since(startTime))
	}
	return mesh, nil
}

// buildMesh scales positions, validates indices and constructs the shared mesh
func buildMesh(vertices []core.Vec3, faces []int, normals []core.Vec3, uvs []core.Vec2, options MeshOptions) (*geometry.TriangleMesh, error) {
	scale := options.Scale
	if scale == 0 {
		scale = 1
	}

	scaled := make([]core.Vec3, len(vertices))
	for i, v := range vertices {
		scaled[i] = v.Multiply(scale)
	}

	for i, index := range faces {
		if index < 0 || index >= len(vertices) {
			return nil, fmt.Errorf("face index %d at position %d out of range for %d vertices", index, i, len(vertices))
		}
	}

	if len(normals) != len(vertices) {
		normals = nil
	}
	if len(uvs) != len(vertices) {
		uvs = nil
	}

	return geometry.NewTriangleMesh(scaled, faces, options.Material, &geometry.TriangleMeshOptions{
		Normals: normals,
		UVs:     uvs,
		Smooth:  options.Smooth,
	}), nil
}
