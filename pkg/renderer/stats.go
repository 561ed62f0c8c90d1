package renderer

import (
	"image"
	"time"

	"github.com/df07/go-pathtracer/pkg/geometry"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels   int               // Total number of pixels rendered
	TotalSamples  int               // Total number of camera samples taken
	TilesRendered int               // Number of tiles completed
	Elapsed       time.Duration     // Wall time of the render
	BVH           geometry.BVHStats // Shape of the scene's acceleration structure
}

// Add accumulates the counters of another (tile) result
func (rs *RenderStats) Add(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	rs.TilesRendered += other.TilesRendered
}

// SamplesPerSecond returns the camera sample throughput
func (rs RenderStats) SamplesPerSecond() float64 {
	if rs.Elapsed <= 0 {
		return 0
	}
	return float64(rs.TotalSamples) / rs.Elapsed.Seconds()
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an 8-bit image, in [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += 0.2126*float64(c.R)/255 + 0.7152*float64(c.G)/255 + 0.0722*float64(c.B)/255
		}
	}
	return total / float64(pixels)
}
