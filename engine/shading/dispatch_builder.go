package shading

// DispatcherOption is a functional option for configuring a Dispatcher.
type DispatcherOption func(*dispatcherImpl)

// WithWorkers sets the number of pool workers. Values below 1 are ignored.
//
// Parameters:
//   - n: worker count
//
// Returns:
//   - DispatcherOption: functional option to set the worker count
func WithWorkers(n int) DispatcherOption {
	return func(d *dispatcherImpl) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithBatchSize sets how many invocations one pool task evaluates. Values below 1 are ignored.
//
// Parameters:
//   - n: invocations per task
//
// Returns:
//   - DispatcherOption: functional option to set the batch size
func WithBatchSize(n int) DispatcherOption {
	return func(d *dispatcherImpl) {
		if n > 0 {
			d.batchSize = n
		}
	}
}
