package renderer

import (
	"context"
	"sync"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile *Tile
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TileID int
	Stats  TileStats
	Error  error
}

// WorkerPool manages parallel tile rendering. The scene, photon map and
// integrator are shared read-only; each worker owns its sampler.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID          int
	renderer    *TileRenderer
	sampler     *core.RandomSampler
	seed        uint64
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a pool able to queue every tile of a frame without
// blocking
func NewWorkerPool(tr *TileRenderer, numTiles, numWorkers int, seed uint64) *WorkerPool {
	numWorkers = max(1, numWorkers)
	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, numTiles),
		resultQueue: make(chan TileResult, numTiles),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    tr,
			sampler:     core.NewRandomSampler(seed, 0),
			seed:        seed,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}
	return wp
}

// Start begins all workers. Tasks taken after ctx is done are reported with
// its error instead of being rendered.
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop waits for queued tasks to drain and shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if err := ctx.Err(); err != nil {
			w.resultQueue <- TileResult{TileID: task.Tile.ID, Error: err}
			continue
		}

		// Lens samples depend only on the tile, not on which worker drew it
		w.sampler.Reseed(w.seed, uint64(task.Tile.ID))
		stats := w.renderer.RenderTileBounds(task.Tile.Bounds, w.sampler)
		w.resultQueue <- TileResult{TileID: task.Tile.ID, Stats: stats}
	}
}
