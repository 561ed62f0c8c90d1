package renderer

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Config controls image size, sampling and parallelism of a render
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Camera rays averaged per pixel
	TileSize        int   // Edge length of a square work tile
	NumWorkers      int   // Number of parallel workers (0 = auto-detect)
	Seed            int64 // Base seed; tile i uses Seed+i
}

// DefaultConfig returns sensible defaults for rendering
func DefaultConfig() Config {
	return Config{
		Width:           1200,
		Height:          800,
		SamplesPerPixel: 10,
		TileSize:        32,
		NumWorkers:      runtime.NumCPU(),
		Seed:            42,
	}
}

// Renderer renders a scene to an 8-bit image by splitting it into tiles
type Renderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
}

// NewRenderer creates a new renderer. A nil logger writes to stdout.
func NewRenderer(s *scene.Scene, integratorInst integrator.Integrator, config Config, logger core.Logger) *Renderer {
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Renderer{
		scene:      s,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}
}

// Render produces the full image. No image is returned if any tile fails or the context
// is cancelled.
func (r *Renderer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	cfg := r.config
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.SamplesPerPixel <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid render size %dx%d at %d spp", cfg.Width, cfg.Height, cfg.SamplesPerPixel)
	}

	start := time.Now()
	tiles := NewTileGrid(cfg.Width, cfg.Height, cfg.TileSize, cfg.Seed)
	r.logger.Printf("Rendering %dx%d at %d spp: %d tiles on %d workers\n",
		cfg.Width, cfg.Height, cfg.SamplesPerPixel, len(tiles), cfg.NumWorkers)

	results := make(chan PixelResult, cfg.TileSize*cfg.TileSize*cfg.NumWorkers)
	progress := NewProgressReporter(r.logger, cfg.Width*cfg.Height)
	tileRenderer := NewTileRenderer(r.scene, r.integrator, cfg.Width, cfg.Height, cfg.SamplesPerPixel)
	pool := NewWorkerPool(ctx, tileRenderer, results, cfg.NumWorkers)

	var stats RenderStats
	var poolErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i, tile := range tiles {
			pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
		}
		stats, poolErr = pool.Wait()
		close(results)
	}()

	collector := NewPixelCollector(cfg.Width, cfg.Height, progress)
	img, collectErr := collector.Collect(results)
	<-done

	if poolErr != nil {
		return nil, stats, fmt.Errorf("render failed: %w", poolErr)
	}
	if collectErr != nil {
		return nil, stats, collectErr
	}
	progress.Finish()

	stats.Elapsed = time.Since(start)
	if r.scene.BVH != nil {
		stats.BVH = r.scene.BVH.Stats()
	}

	r.logger.Printf("Render complete in %v: %d samples (%.0f samples/sec)\n",
		stats.Elapsed.Round(time.Millisecond), stats.TotalSamples, stats.SamplesPerSecond())
	if r.scene.BVH != nil {
		r.logger.Printf("BVH: %d nodes, %d leaves, max depth %d, avg depth %.1f\n",
			stats.BVH.TotalNodes, stats.BVH.LeafNodes, stats.BVH.MaxDepth, stats.BVH.AvgDepth)
	}
	return img, stats, nil
}
