package renderer

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int
}

// WorkerPool runs tile tasks on a bounded number of goroutines. The first task error
// cancels the remaining tasks and is returned by Wait.
type WorkerPool struct {
	renderer   *TileRenderer
	output     chan<- PixelResult
	group      *errgroup.Group
	parent     context.Context
	ctx        context.Context
	numWorkers int

	mu    sync.Mutex
	stats RenderStats
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(ctx context.Context, renderer *TileRenderer, output chan<- PixelResult, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(numWorkers)

	return &WorkerPool{
		renderer:   renderer,
		output:     output,
		group:      group,
		parent:     ctx,
		ctx:        groupCtx,
		numWorkers: numWorkers,
	}
}

// SubmitTask submits a tile task to the worker pool. It blocks while all workers are busy
// and drops the task once the pool has failed.
func (wp *WorkerPool) SubmitTask(task TileTask) {
	if wp.ctx.Err() != nil {
		return
	}

	wp.group.Go(func() error {
		stats, err := wp.renderer.RenderTile(wp.ctx, task.Tile, wp.output)
		if err != nil {
			return err
		}

		wp.mu.Lock()
		wp.stats.Add(stats)
		wp.mu.Unlock()
		return nil
	})
}

// Wait blocks until every submitted task has finished and returns the merged statistics.
// Cancellation of the parent context is reported even when no task observed it.
func (wp *WorkerPool) Wait() (RenderStats, error) {
	err := wp.group.Wait()
	if err == nil {
		err = wp.parent.Err()
	}

	wp.mu.Lock()
	defer wp.mu.Unlock()
	return wp.stats, err
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}
