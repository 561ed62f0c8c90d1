package renderer

import (
	"context"
	"fmt"
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene           *scene.Scene
	integrator      integrator.Integrator
	width, height   int
	samplesPerPixel int
}

// NewTileRenderer creates a new tile renderer for an image of the given size
func NewTileRenderer(s *scene.Scene, integratorInst integrator.Integrator, width, height, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		scene:           s,
		integrator:      integratorInst,
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
	}
}

// RenderTile samples every pixel of the tile and sends one result per pixel to out
func (tr *TileRenderer) RenderTile(ctx context.Context, tile *Tile, out chan<- PixelResult) (RenderStats, error) {
	bounds := tile.Bounds
	if bounds.Empty() || !bounds.In(image.Rect(0, 0, tr.width, tr.height)) {
		return RenderStats{}, fmt.Errorf("tile %d bounds %v outside %dx%d image", tile.ID, bounds, tr.width, tr.height)
	}

	stats := RenderStats{}
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			result := PixelResult{X: i, Y: j, Color: tr.samplePixel(i, j, tile.Sampler)}

			select {
			case out <- result:
			case <-ctx.Done():
				return stats, ctx.Err()
			}

			stats.TotalPixels++
			stats.TotalSamples += tr.samplesPerPixel
		}
	}

	stats.TilesRendered = 1
	return stats, nil
}

// samplePixel averages samplesPerPixel jittered camera rays through pixel (i, j).
// Row 0 is the top of the image.
func (tr *TileRenderer) samplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	camera := tr.scene.Camera
	uScale := float64(max(tr.width-1, 1))
	vScale := float64(max(tr.height-1, 1))

	colorAccum := core.Vec3{}
	for sample := 0; sample < tr.samplesPerPixel; sample++ {
		u := (float64(i) + sampler.Get1D()) / uScale
		v := (float64(j) + sampler.Get1D()) / vScale

		ray := camera.GetRayUpperLeft(u, v, sampler)
		colorAccum = colorAccum.Add(tr.integrator.RayColor(ray, tr.scene, sampler))
	}

	return colorAccum.Multiply(1.0 / float64(tr.samplesPerPixel))
}
