// Package worker provides a generic bounded worker pool for fanning
// out independent per-session work. Sessions share no mutable state
// (the registry and alias index are read-only once built), so
// extraction and graph builds for separate sessions parallelize
// freely; within a session, processing stays sequential because
// deictic resolution depends on speaker-turn order.
//
// The pool uses a non-blocking Submit with a bounded queue: a full
// queue returns ErrQueueFull rather than blocking the caller, which
// makes overload visible to batch orchestration instead of hiding it
// in latency. Statistics are always tracked with atomics; Prometheus
// metrics are opt-in through the engine's metric registry.
//
// Basic usage:
//
//	pool := worker.NewPool[Session](
//	    4,   // workers
//	    64,  // queue size
//	    func(ctx context.Context, s Session) error {
//	        return process(ctx, s)
//	    },
//	)
//	if err := pool.Start(ctx); err != nil {
//	    return err
//	}
//	defer pool.Stop(10 * time.Second)
//
// Lifecycle guarantees: Start can only be called once, Submit fails
// before Start or after Stop, and Stop drains queued work before
// returning (or ErrStopTimeout if workers do not finish in time).
package worker
