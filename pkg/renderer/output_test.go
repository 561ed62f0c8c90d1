package renderer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 128, B: 0, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	return img
}

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, testImage()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "P3\n2 1\n255\n255 128 0\n1 2 3\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestSaveImage_PNGRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	img := testImage()

	if err := SaveImage(img, path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open saved image: %v", err)
	}
	defer file.Close()

	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("Expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
	for x := 0; x < 2; x++ {
		r1, g1, b1, _ := decoded.At(x, 0).RGBA()
		r2, g2, b2, _ := img.At(x, 0).RGBA()
		if r1 != r2 || g1 != g2 || b1 != b2 {
			t.Errorf("Pixel %d changed in round trip", x)
		}
	}
}

func TestSaveImage_PPM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ppm")
	if err := SaveImage(testImage(), path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("P3\n2 1\n255\n")) {
		t.Errorf("Unexpected PPM header: %q", data)
	}
}

func TestSaveImage_Errors(t *testing.T) {
	dir := t.TempDir()

	if err := SaveImage(testImage(), filepath.Join(dir, "out.bmp")); err == nil {
		t.Error("Expected error for unsupported extension")
	}
	if err := SaveImage(nil, filepath.Join(dir, "out.png")); err == nil {
		t.Error("Expected error for nil image")
	}
	if _, err := os.Stat(filepath.Join(dir, "out.png")); !os.IsNotExist(err) {
		t.Error("No file should be written for a nil image")
	}
}

func TestWriteFile_RemovesPartialOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.ppm")
	errDiskFull := errors.New("disk full")

	err := writeFile(path, func(w io.Writer) error {
		if _, err := io.WriteString(w, "P3\n2 1\n255\n"); err != nil {
			return err
		}
		return errDiskFull
	})
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("Expected the write error, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Partially written file should be removed")
	}
}
