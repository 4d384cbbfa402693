package resolver

import (
	"log/slog"

	"github.com/caribdigital/graphhansard/config"
	"github.com/caribdigital/graphhansard/metric"
	"github.com/caribdigital/graphhansard/registry"
)

// strategy is one stage of the resolution cascade. attempt returns false
// to pass the input to the next stage.
type strategy interface {
	attempt(normalized string, in Input) (Result, bool)
}

// Resolver runs the resolution cascade over an immutable alias index.
type Resolver struct {
	index   *registry.AliasIndex
	cfg     config.ResolverConfig
	chain   []strategy
	metrics *metric.Metrics
	logger  *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithMetrics enables resolution outcome counters.
func WithMetrics(m *metric.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// New creates a Resolver over the given index. The cascade order is fixed:
// exact, fuzzy, coreference; the first stage to succeed short-circuits.
func New(index *registry.AliasIndex, cfg config.ResolverConfig, opts ...Option) *Resolver {
	r := &Resolver{
		index:  index,
		cfg:    cfg,
		logger: slog.Default(),
		chain: []strategy{
			&exactStrategy{index: index},
			&fuzzyStrategy{index: index, threshold: cfg.FuzzyThreshold},
			&coreferenceStrategy{cfg: cfg},
		},
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps raw mention text to a canonical entity id. It never returns
// an error: failure to resolve is a regular outcome carried in the Result.
func (r *Resolver) Resolve(in Input) Result {
	text := in.RawText
	if r.cfg.NormalizeDialect {
		text = NormalizeDialect(text)
	}
	normalized := registry.Normalize(text)

	for _, s := range r.chain {
		res, ok := s.attempt(normalized, in)
		if !ok {
			continue
		}
		r.observe(res)
		return res
	}

	res := Result{Confidence: 0.0, Method: MethodUnresolved}
	r.observe(res)
	r.logger.Debug("mention unresolved",
		"raw_text", in.RawText,
		"reference_date", string(in.ReferenceDate))
	return res
}

func (r *Resolver) observe(res Result) {
	if r.metrics == nil {
		return
	}
	r.metrics.ResolutionsTotal.WithLabelValues(res.Method.String()).Inc()
	if res.CollisionWarning != "" {
		r.metrics.CollisionWarnings.Inc()
	}
}
