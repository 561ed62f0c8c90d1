package renderer

import (
	"errors"
	"fmt"
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrIncompleteImage is returned when the collector did not receive every pixel
var ErrIncompleteImage = errors.New("incomplete image")

// PixelResult is the averaged linear color of one pixel
type PixelResult struct {
	X, Y  int
	Color core.Vec3
}

// PixelCollector assembles pixel results arriving in any order into an image
type PixelCollector struct {
	width, height int
	image         *image.RGBA
	seen          []bool
	received      int
	progress      *ProgressReporter
}

// NewPixelCollector creates a collector expecting exactly width·height results
func NewPixelCollector(width, height int, progress *ProgressReporter) *PixelCollector {
	return &PixelCollector{
		width:    width,
		height:   height,
		image:    image.NewRGBA(image.Rect(0, 0, width, height)),
		seen:     make([]bool, width*height),
		progress: progress,
	}
}

// Collect receives results until the channel is closed. The image is returned only when
// every pixel arrived exactly once.
func (pc *PixelCollector) Collect(results <-chan PixelResult) (*image.RGBA, error) {
	var firstErr error

	// Keep draining after an error so producers never block
	for result := range results {
		if firstErr != nil {
			continue
		}
		firstErr = pc.add(result)
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if expected := pc.width * pc.height; pc.received != expected {
		return nil, fmt.Errorf("%w: received %d of %d pixels", ErrIncompleteImage, pc.received, expected)
	}
	return pc.image, nil
}

// add writes one result into the image
func (pc *PixelCollector) add(result PixelResult) error {
	if result.X < 0 || result.X >= pc.width || result.Y < 0 || result.Y >= pc.height {
		return fmt.Errorf("pixel (%d, %d) outside %dx%d image", result.X, result.Y, pc.width, pc.height)
	}

	index := result.Y*pc.width + result.X
	if pc.seen[index] {
		return fmt.Errorf("pixel (%d, %d) received twice", result.X, result.Y)
	}
	pc.seen[index] = true
	pc.received++

	pc.image.SetRGBA(result.X, result.Y, ToRGBA(result.Color))
	if pc.progress != nil {
		pc.progress.Add(1)
	}
	return nil
}
