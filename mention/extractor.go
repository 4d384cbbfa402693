package mention

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/caribdigital/graphhansard/config"
	"github.com/caribdigital/graphhansard/metric"
	"github.com/caribdigital/graphhansard/registry"
	"github.com/caribdigital/graphhansard/resolver"
)

// Extractor scans speaker-attributed transcript segments for references
// to other members and resolves each one through the alias resolver.
// Extraction within one session is sequential: deictic resolution
// depends on the ordered history of prior speaker turns. Separate
// sessions may be extracted concurrently with separate Extractor calls.
type Extractor struct {
	reg      *registry.Registry
	resolver *resolver.Resolver
	cfg      config.ExtractorConfig
	metrics  *metric.Metrics
	logger   *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the structured logger used for skip and audit events.
func WithLogger(logger *slog.Logger) Option {
	return func(x *Extractor) { x.logger = logger }
}

// WithMetrics attaches core engine metrics.
func WithMetrics(m *metric.Metrics) Option {
	return func(x *Extractor) { x.metrics = m }
}

// NewExtractor creates an extractor bound to a registry snapshot and a
// resolver built from the same snapshot.
func NewExtractor(reg *registry.Registry, res *resolver.Resolver, cfg config.ExtractorConfig, opts ...Option) *Extractor {
	x := &Extractor{
		reg:      reg,
		resolver: res,
		cfg:      cfg,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Extract processes one session's segments in order and returns the
// mention records plus the unresolved-mention review log. Malformed
// segments are skipped and logged; they never abort the batch.
func (x *Extractor) Extract(sessionID string, segments []Segment, referenceDate registry.ISODate) ([]Record, []Unresolved) {
	var (
		records    []Record
		unresolved []Unresolved
		history    []resolver.SpeakerTurn
	)

	for i, seg := range segments {
		if reason := malformed(seg); reason != "" {
			x.logger.Warn("skipping malformed segment",
				"session_id", sessionID,
				"segment_index", i,
				"reason", reason)
			if x.metrics != nil {
				x.metrics.SegmentsSkipped.Inc()
			}
			continue
		}

		speaker := x.turnFor(seg.SpeakerEntityID)
		sentences := sentenceSpans(seg.Text)

		for _, sp := range findSpans(seg.Text) {
			raw := seg.Text[sp.start:sp.end]
			res := x.resolver.Resolve(resolver.Input{
				RawText:        raw,
				ReferenceDate:  referenceDate,
				Speaker:        speaker,
				SpeakerContext: history,
			})

			ctx := contextWindow(seg.Text, sentences, sp, x.cfg.ContextSentences)
			rec := Record{
				ID:                   uuid.NewString(),
				SessionID:            sessionID,
				SourceEntityID:       seg.SpeakerEntityID,
				TargetEntityID:       res.EntityID,
				RawText:              raw,
				ResolutionMethod:     res.Method,
				ResolutionConfidence: res.Confidence,
				CollisionWarning:     res.CollisionWarning,
				StartTime:            seg.StartTime,
				EndTime:              seg.EndTime,
				ContextWindow:        ctx,
				SegmentIndex:         i,
				IsSelfReference:      res.Resolved() && res.EntityID == seg.SpeakerEntityID,
			}
			records = append(records, rec)

			if x.metrics != nil {
				x.metrics.MentionsExtracted.WithLabelValues(res.Method.String()).Inc()
			}
			if !res.Resolved() {
				unresolved = append(unresolved, Unresolved{
					RawText:       raw,
					ContextWindow: ctx,
					SessionID:     sessionID,
					SegmentIndex:  i,
					Timestamp:     seg.StartTime,
				})
				if x.metrics != nil {
					x.metrics.UnresolvedMentions.Inc()
				}
				x.logger.Debug("unresolved mention",
					"session_id", sessionID,
					"segment_index", i,
					"raw_text", raw)
			}
		}

		if speaker != nil {
			if len(history) == 0 || history[len(history)-1].EntityID != speaker.EntityID {
				history = append(history, *speaker)
			}
		}
	}

	return records, unresolved
}

// turnFor builds the speaker-turn entry for a segment's speaker,
// carrying the affiliation when the registry knows the entity.
func (x *Extractor) turnFor(entityID string) *resolver.SpeakerTurn {
	if entityID == "" {
		return nil
	}
	turn := &resolver.SpeakerTurn{EntityID: entityID}
	if e := x.reg.Entity(entityID); e != nil {
		turn.Affiliation = e.Affiliation
	}
	return turn
}

func malformed(seg Segment) string {
	switch {
	case strings.TrimSpace(seg.Text) == "":
		return "empty text"
	case seg.StartTime < 0:
		return "negative start time"
	case seg.EndTime < seg.StartTime:
		return "end time before start time"
	}
	return ""
}

// contextWindow returns the sentences covering the span plus n
// sentences of context on each side, whitespace-collapsed.
func contextWindow(text string, sentences [][2]int, sp span, n int) string {
	if len(sentences) == 0 {
		return strings.Join(strings.Fields(text), " ")
	}

	first, last := 0, len(sentences)-1
	for i, s := range sentences {
		if sp.start >= s[0] && sp.start < s[1] {
			first = i
		}
		if sp.end > s[0] && sp.end <= s[1] {
			last = i
		}
	}

	lo := first - n
	if lo < 0 {
		lo = 0
	}
	hi := last + n
	if hi > len(sentences)-1 {
		hi = len(sentences) - 1
	}

	window := text[sentences[lo][0]:sentences[hi][1]]
	return strings.Join(strings.Fields(window), " ")
}
