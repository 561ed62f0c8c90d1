package loaders

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// createTestPLY writes a binary PLY square made of two triangles
func createTestPLY(t *testing.T, filename string, order binary.ByteOrder, includeNormals bool, includeColors bool) {
	var buf bytes.Buffer

	buf.WriteString("ply\n")
	if order == binary.BigEndian {
		buf.WriteString("format binary_big_endian 1.0\n")
	} else {
		buf.WriteString("format binary_little_endian 1.0\n")
	}
	buf.WriteString("comment generated by test\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")

	if includeNormals {
		buf.WriteString("property float nx\n")
		buf.WriteString("property float ny\n")
		buf.WriteString("property float nz\n")
	}

	if includeColors {
		buf.WriteString("property uchar red\n")
		buf.WriteString("property uchar green\n")
		buf.WriteString("property uchar blue\n")
	}

	buf.WriteString("element face 2\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	vertices := []struct {
		x, y, z    float32
		nx, ny, nz float32
		r, g, b    uint8
	}{
		{0.0, 0.0, 0.0, 0.0, 0.0, 1.0, 255, 0, 0},
		{1.0, 0.0, 0.0, 0.0, 0.0, 1.0, 0, 255, 0},
		{1.0, 1.0, 0.0, 0.0, 0.0, 1.0, 0, 0, 255},
		{0.0, 1.0, 0.0, 0.0, 0.0, 1.0, 255, 255, 0},
	}

	for _, v := range vertices {
		binary.Write(&buf, order, v.x)
		binary.Write(&buf, order, v.y)
		binary.Write(&buf, order, v.z)

		if includeNormals {
			binary.Write(&buf, order, v.nx)
			binary.Write(&buf, order, v.ny)
			binary.Write(&buf, order, v.nz)
		}

		if includeColors {
			binary.Write(&buf, order, v.r)
			binary.Write(&buf, order, v.g)
			binary.Write(&buf, order, v.b)
		}
	}

	faces := []struct {
		count      uint8
		v1, v2, v3 int32
	}{
		{3, 0, 1, 2},
		{3, 0, 2, 3},
	}

	for _, f := range faces {
		binary.Write(&buf, order, f.count)
		binary.Write(&buf, order, f.v1)
		binary.Write(&buf, order, f.v2)
		binary.Write(&buf, order, f.v3)
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to create test PLY file: %v", err)
	}
}

func writeTextFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadPLY_Binary(t *testing.T) {
	tests := []struct {
		name  string
		order binary.ByteOrder
	}{
		{"little endian", binary.LittleEndian},
		{"big endian", binary.BigEndian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := filepath.Join(t.TempDir(), "square.ply")
			createTestPLY(t, filename, tt.order, false, false)

			data, err := LoadPLY(filename)
			if err != nil {
				t.Fatalf("Failed to load PLY: %v", err)
			}

			if len(data.Vertices) != 4 {
				t.Fatalf("Expected 4 vertices, got %d", len(data.Vertices))
			}
			if data.Vertices[2] != core.NewVec3(1, 1, 0) {
				t.Errorf("Expected vertex 2 at (1,1,0), got %v", data.Vertices[2])
			}

			expectedFaces := []int{0, 1, 2, 0, 2, 3}
			if len(data.Faces) != len(expectedFaces) {
				t.Fatalf("Expected %d face indices, got %d", len(expectedFaces), len(data.Faces))
			}
			for i, idx := range expectedFaces {
				if data.Faces[i] != idx {
					t.Errorf("Face index %d: expected %d, got %d", i, idx, data.Faces[i])
				}
			}

			if data.Normals != nil || data.TexCoords != nil {
				t.Error("Expected no normals or texture coordinates")
			}
		})
	}
}

func TestLoadPLY_WithNormalsAndIgnoredColors(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "normals.ply")
	createTestPLY(t, filename, binary.LittleEndian, true, true)

	data, err := LoadPLY(filename)
	if err != nil {
		t.Fatalf("Failed to load PLY: %v", err)
	}

	if len(data.Normals) != 4 {
		t.Fatalf("Expected 4 normals, got %d", len(data.Normals))
	}
	for i, n := range data.Normals {
		if n != core.NewVec3(0, 0, 1) {
			t.Errorf("Normal %d: expected (0,0,1), got %v", i, n)
		}
	}
	// Color properties must be consumed without shifting the face data
	if len(data.Faces) != 6 || data.Faces[5] != 3 {
		t.Errorf("Unexpected faces after color properties: %v", data.Faces)
	}
}

func TestLoadPLY_ASCIIWithQuadAndTexCoords(t *testing.T) {
	path := writeTextFile(t, "quad.ply", strings.Join([]string{
		"ply",
		"format ascii 1.0",
		"element vertex 4",
		"property float x",
		"property float y",
		"property float z",
		"property float s",
		"property float t",
		"element face 1",
		"property list uchar uint vertex_index",
		"end_header",
		"0 0 0 0 0",
		"2 0 0 1 0",
		"2 2 0 1 1",
		"0 2 0 0 1",
		"4 0 1 2 3",
		"",
	}, "\n"))

	data, err := LoadPLY(path)
	if err != nil {
		t.Fatalf("Failed to load ASCII PLY: %v", err)
	}

	expectedFaces := []int{0, 1, 2, 0, 2, 3}
	for i, idx := range expectedFaces {
		if data.Faces[i] != idx {
			t.Errorf("Face index %d: expected %d, got %d", i, idx, data.Faces[i])
		}
	}
	if len(data.TexCoords) != 4 || data.TexCoords[2] != core.NewVec2(1, 1) {
		t.Errorf("Unexpected texture coordinates: %v", data.TexCoords)
	}
	if data.Vertices[1] != core.NewVec3(2, 0, 0) {
		t.Errorf("Expected vertex 1 at (2,0,0), got %v", data.Vertices[1])
	}
}

func TestLoadPLY_SkipsUnknownElements(t *testing.T) {
	path := writeTextFile(t, "extra.ply", strings.Join([]string{
		"ply",
		"format ascii 1.0",
		"element vertex 3",
		"property float x",
		"property float y",
		"property float z",
		"element edge 1",
		"property int vertex1",
		"property int vertex2",
		"element face 1",
		"property list uchar int vertex_indices",
		"end_header",
		"0 0 0",
		"1 0 0",
		"0 1 0",
		"0 1",
		"3 2 1 0",
	}, "\n"))

	data, err := LoadPLY(path)
	if err != nil {
		t.Fatalf("Failed to load PLY: %v", err)
	}
	if len(data.Faces) != 3 || data.Faces[0] != 2 || data.Faces[2] != 0 {
		t.Errorf("Unexpected faces: %v", data.Faces)
	}
}

func TestLoadPLY_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{
			name: "pentagon face",
			content: strings.Join([]string{
				"ply", "format ascii 1.0",
				"element vertex 5", "property float x", "property float y", "property float z",
				"element face 1", "property list uchar int vertex_indices", "end_header",
				"0 0 0", "1 0 0", "1 1 0", "0 1 0", "0 2 0",
				"5 0 1 2 3 4", "",
			}, "\n"),
			target: ErrUnsupportedFace,
		},
		{
			name: "unknown encoding",
			content: strings.Join([]string{
				"ply", "format binary_middle_endian 1.0",
				"element vertex 0", "property float x", "end_header", "",
			}, "\n"),
			target: ErrUnsupportedFormat,
		},
		{
			name:    "not a ply file",
			content: "solid cube\nendsolid\n",
			target:  ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTextFile(t, "bad.ply", tt.content)
			_, err := LoadPLY(path)
			if err == nil {
				t.Fatal("Expected error")
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("Expected error wrapping %v, got %v", tt.target, err)
			}
		})
	}
}

func TestLoadPLY_TruncatedPayload(t *testing.T) {
	path := writeTextFile(t, "short.ply", strings.Join([]string{
		"ply", "format ascii 1.0",
		"element vertex 3", "property float x", "property float y", "property float z",
		"end_header",
		"0 0 0", "1 0",
	}, "\n"))

	if _, err := LoadPLY(path); err == nil {
		t.Error("Expected error for truncated payload")
	}
}

func TestLoadPLY_NonExistentFile(t *testing.T) {
	_, err := LoadPLY("nonexistent.ply")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped not-exist error, got %v", err)
	}
}

func TestLoadPLYMesh(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "mesh.ply")
	createTestPLY(t, filename, binary.LittleEndian, true, false)
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	logger := &recordingLogger{}

	mesh, err := LoadPLYMesh(filename, MeshOptions{Material: mat, Smooth: true, Scale: 3, Logger: logger})
	if err != nil {
		t.Fatalf("Failed to load mesh: %v", err)
	}

	if mesh.GetTriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.GetTriangleCount())
	}
	if mesh.Vertices[2] != core.NewVec3(3, 3, 0) {
		t.Errorf("Expected scaled vertex (3,3,0), got %v", mesh.Vertices[2])
	}
	if !mesh.Smooth || mesh.Material != mat {
		t.Error("Expected smooth mesh with the given material")
	}
	for _, tri := range mesh.Triangles() {
		if tri.Mesh != mesh {
			t.Error("Triangles should share the loaded mesh")
		}
	}
	if len(logger.lines) != 1 {
		t.Errorf("Expected one log line, got %d", len(logger.lines))
	}
}

func TestLoadPLYMesh_IndexOutOfRange(t *testing.T) {
	path := writeTextFile(t, "range.ply", strings.Join([]string{
		"ply", "format ascii 1.0",
		"element vertex 3", "property float x", "property float y", "property float z",
		"element face 1", "property list uchar int vertex_indices", "end_header",
		"0 0 0", "1 0 0", "0 1 0",
		"3 0 1 7", "",
	}, "\n"))

	if _, err := LoadPLYMesh(path, MeshOptions{}); err == nil {
		t.Error("Expected error for out of range face index")
	}
}

func TestGetTypeSize(t *testing.T) {
	tests := []struct {
		dataType string
		expected int
	}{
		{"float", 4},
		{"float32", 4},
		{"int", 4},
		{"uint32", 4},
		{"double", 8},
		{"float64", 8},
		{"short", 2},
		{"ushort", 2},
		{"char", 1},
		{"uchar", 1},
		{"bogus", 0},
	}

	for _, tt := range tests {
		if got := getTypeSize(tt.dataType); got != tt.expected {
			t.Errorf("getTypeSize(%s) = %d, expected %d", tt.dataType, got, tt.expected)
		}
	}
}

func TestBinaryValueReader_Types(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, int8(-3))
	binary.Write(&buf, binary.BigEndian, uint16(65000))
	binary.Write(&buf, binary.BigEndian, int32(-70000))
	binary.Write(&buf, binary.BigEndian, float64(math.Pi))

	reader := &binaryValueReader{reader: bufio.NewReader(&buf), order: binary.BigEndian}
	expected := []struct {
		dataType string
		value    float64
	}{
		{"char", -3},
		{"ushort", 65000},
		{"int", -70000},
		{"double", math.Pi},
	}
	for _, e := range expected {
		got, err := reader.readValue(e.dataType)
		if err != nil {
			t.Fatalf("Reading %s: %v", e.dataType, err)
		}
		if got != e.value {
			t.Errorf("Expected %s value %f, got %f", e.dataType, e.value, got)
		}
	}
}

// recordingLogger keeps every formatted line
type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Printf(format string, args ...interface{}) {
	r.lines = append(r.lines, format)
}
