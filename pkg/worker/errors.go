package worker

import "errors"

// Sentinel errors for pool lifecycle and backpressure. These stay
// plain stdlib errors rather than the engine's classified errors:
// every one of them is either a programming error or a backpressure
// signal, and neither belongs in the resolution error taxonomy.
var (
	// ErrPoolNotStarted indicates Submit was called before Start
	ErrPoolNotStarted = errors.New("worker pool not started")

	// ErrPoolStopped indicates the pool has been stopped
	ErrPoolStopped = errors.New("worker pool stopped")

	// ErrPoolAlreadyStarted indicates Start was called twice
	ErrPoolAlreadyStarted = errors.New("worker pool already started")

	// ErrQueueFull indicates the work queue is at capacity
	ErrQueueFull = errors.New("worker pool queue full")

	// ErrNilProcessor indicates a nil processor function was provided
	ErrNilProcessor = errors.New("processor function cannot be nil")

	// ErrStopTimeout indicates workers did not finish within the
	// shutdown timeout
	ErrStopTimeout = errors.New("timeout waiting for workers to stop")
)
