package renderer

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
)

// SaveImage writes the image to path. The format is chosen by extension: .png or .ppm.
func SaveImage(img image.Image, path string) error {
	if img == nil {
		return errors.New("no image to save")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		if err := gg.SavePNG(path, img); err != nil {
			return fmt.Errorf("failed to save PNG %s: %w", path, err)
		}
		return nil
	case ".ppm":
		return writeFile(path, func(w io.Writer) error {
			return WritePPM(w, img)
		})
	default:
		return fmt.Errorf("unsupported output format %q (use .png or .ppm)", ext)
	}
}

// writeFile creates path and fills it with write. A failed write removes the file.
func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := write(file); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// WritePPM writes the image as plain-text PPM (P3), rows top to bottom
func WritePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	out := bufio.NewWriter(w)

	fmt.Fprintf(out, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			fmt.Fprintf(out, "%d %d %d\n", r>>8, g>>8, b>>8)
		}
	}

	return out.Flush()
}
