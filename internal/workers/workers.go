package workers

import (
	"context"
	"sync"
)

// Workers runs a fixed set of workers, each on its own goroutine.
type Workers struct {
	workers []Worker

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorkers groups ws. Nothing runs until Start is called.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Start stops any previous run and launches every worker with a context
// derived from ctx.
func (w *Workers) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func(worker Worker) {
			defer w.wg.Done()
			worker.Run(runCtx)
		}(worker)
	}
	w.mu.Unlock()
}

// Stop cancels the running workers and blocks until all of them have
// returned. Safe to call when nothing is running.
func (w *Workers) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
