// Package session orchestrates batch processing: it fans independent
// sessions out across a worker pool, runs extraction and graph
// construction for each, and collects per-session results without
// letting one failed session abort the batch.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/caribdigital/graphhansard/errors"
	"github.com/caribdigital/graphhansard/graph"
	"github.com/caribdigital/graphhansard/mention"
	"github.com/caribdigital/graphhansard/metric"
	"github.com/caribdigital/graphhansard/pkg/worker"
	"github.com/caribdigital/graphhansard/registry"
)

// Session is one unit of batch work: a session's transcript segments
// plus the sitting date used for temporal alias resolution.
type Session struct {
	ID       string            `json:"id"`
	Date     registry.ISODate  `json:"date"`
	Segments []mention.Segment `json:"segments"`
}

// Result carries everything one session produced. Err is set when the
// session failed; the rest of the batch is unaffected.
type Result struct {
	SessionID  string
	Graph      *graph.SessionGraph
	Records    []mention.Record
	Unresolved []mention.Unresolved
	Err        error
}

// Runner processes batches of sessions concurrently. Within each
// session, extraction stays sequential; across sessions, the registry
// and alias index are read-only shared state, so workers need no
// locking.
type Runner struct {
	extractor   *mention.Extractor
	builder     *graph.Builder
	workers     int
	stopTimeout time.Duration
	logger      *slog.Logger
	metrics     *metric.MetricsRegistry
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets the parallel session count.
func WithWorkers(n int) Option {
	return func(r *Runner) { r.workers = n }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithMetricsRegistry attaches the registry used for worker pool
// metrics.
func WithMetricsRegistry(reg *metric.MetricsRegistry) Option {
	return func(r *Runner) { r.metrics = reg }
}

// WithStopTimeout bounds how long Run waits for in-flight sessions
// during shutdown.
func WithStopTimeout(d time.Duration) Option {
	return func(r *Runner) { r.stopTimeout = d }
}

// NewRunner creates a batch runner over an extractor and builder pair
// built from the same registry snapshot.
func NewRunner(extractor *mention.Extractor, builder *graph.Builder, opts ...Option) *Runner {
	r := &Runner{
		extractor:   extractor,
		builder:     builder,
		workers:     4,
		stopTimeout: 10 * time.Minute,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes every session and returns one Result per input, in
// input order. A session that fails records its error in its Result;
// sessions left unprocessed by context cancellation record the context
// error.
func (r *Runner) Run(ctx context.Context, sessions []Session) []Result {
	results := make([]Result, len(sessions))
	done := make([]atomic.Bool, len(sessions))

	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := r.newPool(sessions, results, done)
	if err := pool.Start(workCtx); err != nil {
		for i := range results {
			results[i] = Result{SessionID: sessions[i].ID, Err: err}
		}
		return results
	}

	for i := range sessions {
		if err := pool.Submit(i); err != nil {
			results[i] = Result{SessionID: sessions[i].ID, Err: err}
			done[i].Store(true)
		}
	}

	if err := pool.Stop(r.stopTimeout); err != nil {
		// Cancel in-flight workers and wait once more; slots stay
		// untouched until the pool has actually drained.
		r.logger.Warn("session pool shutdown timed out, cancelling workers", "error", err)
		cancel()
		if err := pool.Stop(r.stopTimeout); err != nil {
			return r.abandon(sessions, results, done)
		}
	}

	for i := range results {
		if !done[i].Load() && results[i].Err == nil {
			err := ctx.Err()
			if err == nil {
				err = errors.WrapRecoverable(worker.ErrStopTimeout,
					"Runner", "Run", "session abandoned at shutdown")
			}
			results[i] = Result{SessionID: sessions[i].ID, Err: err}
		}
	}
	return results
}

// abandon builds the batch outcome when workers could not be drained
// even after cancellation. Only slots whose done flag is set are read;
// the rest report the shutdown failure without touching memory a stuck
// worker might still write.
func (r *Runner) abandon(sessions []Session, results []Result, done []atomic.Bool) []Result {
	out := make([]Result, len(sessions))
	for i := range sessions {
		if done[i].Load() {
			out[i] = results[i]
			continue
		}
		out[i] = Result{
			SessionID: sessions[i].ID,
			Err: errors.WrapRecoverable(worker.ErrStopTimeout,
				"Runner", "Run", "session abandoned at shutdown"),
		}
	}
	return out
}

// newPool builds the index-based worker pool. Each worker writes only
// its own result slot and publishes it through the slot's done flag,
// so the results slice needs no locking.
func (r *Runner) newPool(sessions []Session, results []Result, done []atomic.Bool) *worker.Pool[int] {
	var opts []worker.Option[int]
	if r.metrics != nil {
		opts = append(opts, worker.WithMetricsRegistry[int](r.metrics, "session_runner"))
	}

	queueSize := len(sessions)
	if queueSize == 0 {
		queueSize = 1
	}

	return worker.NewPool(r.workers, queueSize, func(_ context.Context, i int) error {
		res := r.process(sessions[i])
		results[i] = res
		done[i].Store(true)
		return res.Err
	}, opts...)
}

// process runs one session end to end. A panic inside extraction or
// graph construction becomes that session's error instead of taking
// down the batch.
func (r *Runner) process(sess Session) (result Result) {
	result.SessionID = sess.ID

	defer func() {
		if rec := recover(); rec != nil {
			result.Err = errors.WrapRecoverable(
				fmt.Errorf("panic: %v", rec),
				"Runner", "process", "session processing")
			r.logger.Error("session processing panicked",
				"session_id", sess.ID,
				"panic", rec)
		}
	}()

	if sess.ID == "" {
		result.Err = errors.WrapInvalid(errors.ErrInvalidData, "Runner", "process", "session id is empty")
		return result
	}

	records, unresolved := r.extractor.Extract(sess.ID, sess.Segments, sess.Date)
	result.Records = records
	result.Unresolved = unresolved
	result.Graph = r.builder.BuildSessionGraph(records, sess.ID, sess.Date)

	r.logger.Debug("session processed",
		"session_id", sess.ID,
		"mentions", len(records),
		"unresolved", len(unresolved),
		"edges", result.Graph.EdgeCount)
	return result
}
