package shading

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
)

// Dispatcher evaluates the stages over many invocations in parallel. Every invocation
// writes only its own output slot, so results equal sequential evaluation.
type Dispatcher interface {
	// Vertices runs VertexStage for every vertex.
	//
	// Parameters:
	//   - ctx: checked before each batch starts
	//   - cfg: the stage configuration
	//   - u: the uniforms bound for the draw
	//   - in: object-space vertices
	//   - out: destination, len(out) must equal len(in)
	//
	// Returns:
	//   - error: ctx.Err() if cancelled, or a length mismatch
	Vertices(ctx context.Context, cfg *Config, u *Uniforms, in []model.GPUVertex, out []Interpolants) error

	// Fragments runs FragmentStage for every interpolated fragment.
	//
	// Parameters:
	//   - ctx: checked before each batch starts
	//   - cfg: the stage configuration
	//   - u: the uniforms bound for the draw
	//   - in: interpolated fragment inputs
	//   - out: destination colors, len(out) must equal len(in)
	//
	// Returns:
	//   - error: ctx.Err() if cancelled, or a length mismatch
	Fragments(ctx context.Context, cfg *Config, u *Uniforms, in []Interpolants, out []common.Vec4) error

	// Workers returns the configured parallelism.
	Workers() int

	// Close stops the worker pool. Later calls evaluate inline on the caller's goroutine.
	// Safe to call more than once.
	Close()
}

type dispatcherImpl struct {
	workers   int
	batchSize int
	nextID    int
	mu        *sync.Mutex   // guards nextID, lanes and closed
	inflight  *sync.RWMutex // shared by parallel runs, exclusive in Close
	lanes     []worker.DynamicWorkerPool
	closed    bool
}

var _ Dispatcher = &dispatcherImpl{}

// NewDispatcher creates a Dispatcher backed by single-worker pools, one per worker. The
// pools start on the first workload large enough to split and run until Close.
//
// Parameters:
//   - options: functional options to configure the dispatcher
//
// Returns:
//   - Dispatcher: the newly created dispatcher
func NewDispatcher(options ...DispatcherOption) Dispatcher {
	d := &dispatcherImpl{
		workers:   max(runtime.NumCPU()-1, 1),
		batchSize: 1024,
		mu:        &sync.Mutex{},
		inflight:  &sync.RWMutex{},
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// startedLanes returns the worker lanes, starting them if needed, or nil once closed.
// A pool's Stop only reliably reaches its worker when the pool has exactly one.
func (d *dispatcherImpl) startedLanes() []worker.DynamicWorkerPool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	if d.lanes == nil {
		d.lanes = make([]worker.DynamicWorkerPool, d.workers)
		for i := range d.lanes {
			d.lanes[i] = worker.NewDynamicWorkerPool(1, 256, 1*time.Second)
		}
		common.Logger().Debug("shading workers started", "workers", d.workers)
	}
	return d.lanes
}

func (d *dispatcherImpl) Close() {
	d.inflight.Lock()
	defer d.inflight.Unlock()
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	for _, lane := range d.lanes {
		lane.Stop()
	}
	d.lanes = nil
}

func (d *dispatcherImpl) Workers() int {
	return d.workers
}

func (d *dispatcherImpl) Vertices(ctx context.Context, cfg *Config, u *Uniforms, in []model.GPUVertex, out []Interpolants) error {
	if len(in) != len(out) {
		return fmt.Errorf("shading: %d vertices but %d output slots", len(in), len(out))
	}
	return d.run(ctx, len(in), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = VertexStage(cfg, u, in[i])
		}
	})
}

func (d *dispatcherImpl) Fragments(ctx context.Context, cfg *Config, u *Uniforms, in []Interpolants, out []common.Vec4) error {
	if len(in) != len(out) {
		return fmt.Errorf("shading: %d fragments but %d output slots", len(in), len(out))
	}
	return d.run(ctx, len(in), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = FragmentStage(cfg, u, &in[i])
		}
	})
}

// run splits [0, n) into batches and deals them round-robin to the worker lanes behind a
// WaitGroup barrier. Small workloads run inline. A batch that has started always completes.
func (d *dispatcherImpl) run(ctx context.Context, n int, fn func(lo, hi int)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n <= d.batchSize || d.workers == 1 {
		fn(0, n)
		return nil
	}

	d.inflight.RLock()
	defer d.inflight.RUnlock()
	lanes := d.startedLanes()
	if lanes == nil {
		fn(0, n)
		return nil
	}

	batches := (n + d.batchSize - 1) / d.batchSize
	common.Logger().Debug("shading dispatch", "invocations", n, "batches", batches, "workers", d.workers)

	var wg sync.WaitGroup
	for b, lo := 0, 0; lo < n; b, lo = b+1, lo+d.batchSize {
		if ctx.Err() != nil {
			break
		}
		hi := min(lo+d.batchSize, n)

		wg.Add(1)
		lanes[b%len(lanes)].SubmitTask(worker.Task{
			ID: d.taskID(),
			Do: func() (any, error) {
				defer wg.Done()
				if ctx.Err() != nil {
					return nil, nil
				}
				fn(lo, hi)
				return nil, nil
			},
		})
	}
	wg.Wait()
	return ctx.Err()
}

func (d *dispatcherImpl) taskID() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	return d.nextID
}
