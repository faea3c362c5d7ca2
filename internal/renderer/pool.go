package renderer

import (
	"context"
	"sync"

	"github.com/vk/scaffgo/internal/ctxlog"
	"github.com/vk/scaffgo/internal/planner"
)

// pool is a bounded worker pool for rendering independent plan items.
type pool struct {
	workers int

	mu       sync.Mutex
	firstErr error
}

func newPool(workers int) *pool {
	return &pool{workers: workers}
}

// run feeds items to the workers and blocks until all complete. The first
// error cancels the shared context, draining the remaining work unrendered.
func (p *pool) run(ctx context.Context, items []*planner.Item, render func(*planner.Item) error) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan *planner.Item)
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go p.worker(runCtx, jobs, &wg, cancel, render, i)
	}

feed:
	for _, item := range items {
		select {
		case jobs <- item:
		case <-runCtx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.firstErr != nil {
		return p.firstErr
	}
	return ctx.Err()
}

// worker is the processing loop for a single concurrent worker.
func (p *pool) worker(ctx context.Context, jobs chan *planner.Item, wg *sync.WaitGroup, cancel context.CancelFunc, render func(*planner.Item) error, workerID int) {
	defer wg.Done()
	logger := ctxlog.FromContext(ctx)

	for item := range jobs {
		if ctx.Err() != nil {
			continue
		}
		logger.Debug("Worker picked up artifact.", "workerID", workerID, "path", item.Artifact.Path)
		if err := render(item); err != nil {
			logger.Error("Artifact render failed.", "workerID", workerID, "path", item.Artifact.Path, "error", err)
			p.fail(err)
			cancel()
			continue
		}
	}
}

// fail records the first error observed across the pool.
func (p *pool) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.firstErr == nil {
		p.firstErr = err
	}
}
