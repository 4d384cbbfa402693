package resolver

import (
	"regexp"

	"github.com/caribdigital/graphhansard/config"
)

// deicticClass describes which speaker-context filter a deictic pattern
// implies.
type deicticClass int

const (
	// classRecency resolves to the most recent prior speaker.
	classRecency deicticClass = iota
	// classSameParty implies the referent shares the speaker's affiliation.
	classSameParty
	// classOppositeParty implies the referent sits across the aisle.
	classOppositeParty
)

// Patterns operate on dialect-normalized, lowercased text.
var deicticPatterns = []struct {
	re    *regexp.Regexp
	class deicticClass
}{
	{regexp.MustCompile(`\b(?:member|gentleman|lady) who (?:just )?spoke\b`), classRecency},
	{regexp.MustCompile(`\bprevious speaker\b`), classRecency},
	{regexp.MustCompile(`\blast speaker\b`), classRecency},
	{regexp.MustCompile(`\bmy honou?rable friend\b`), classSameParty},
	{regexp.MustCompile(`\bmy colleague\b`), classSameParty},
	{regexp.MustCompile(`\b(?:member|gentleman|lady|friend)s? opposite\b`), classOppositeParty},
	{regexp.MustCompile(`\bother side of (?:the|this) house\b`), classOppositeParty},
}

// IsDeictic reports whether text is an anaphoric reference resolvable only
// from speaker context, not by name or title.
func IsDeictic(text string) bool {
	_, ok := classifyDeictic(NormalizeDialect(text))
	return ok
}

func classifyDeictic(normalized string) (deicticClass, bool) {
	for _, p := range deicticPatterns {
		if p.re.MatchString(normalized) {
			return p.class, true
		}
	}
	return 0, false
}

// coreferenceStrategy resolves deictic references against a bounded window
// of prior speaker turns. Window size and the precedence between
// affiliation filtering and recency are configuration, not guesses.
type coreferenceStrategy struct {
	cfg config.ResolverConfig
}

func (s *coreferenceStrategy) attempt(normalized string, in Input) (Result, bool) {
	class, ok := classifyDeictic(normalized)
	if !ok {
		return Result{}, false
	}

	history := in.SpeakerContext
	if len(history) > s.cfg.SpeakerWindow {
		history = history[len(history)-s.cfg.SpeakerWindow:]
	}
	if len(history) == 0 {
		return Result{}, false
	}

	target := s.selectTurn(class, in.Speaker, history)
	if target == nil {
		return Result{}, false
	}

	return Result{
		EntityID:   target.EntityID,
		Confidence: s.cfg.CoreferenceConfidence,
		Method:     MethodCoreference,
	}, true
}

func (s *coreferenceStrategy) selectTurn(class deicticClass, speaker *SpeakerTurn, history []SpeakerTurn) *SpeakerTurn {
	// Affiliation-relative patterns degrade to recency when the current
	// speaker is unknown.
	if speaker == nil {
		class = classRecency
	}

	matches := func(turn SpeakerTurn) bool {
		switch class {
		case classSameParty:
			return turn.Affiliation == speaker.Affiliation
		case classOppositeParty:
			return turn.Affiliation != speaker.Affiliation
		default:
			return true
		}
	}

	notSelf := func(turn SpeakerTurn) bool {
		return speaker == nil || turn.EntityID != speaker.EntityID
	}

	switch s.cfg.FilterPrecedence {
	case config.RecencyFirst:
		for i := len(history) - 1; i >= 0; i-- {
			if !notSelf(history[i]) {
				continue
			}
			if matches(history[i]) {
				return &history[i]
			}
			// Most recent distinct speaker fails the filter: unresolved
			return nil
		}
		return nil

	default: // config.AffiliationFirst
		for i := len(history) - 1; i >= 0; i-- {
			if notSelf(history[i]) && matches(history[i]) {
				return &history[i]
			}
		}
		// Filter emptied the window: fall back to pure recency
		for i := len(history) - 1; i >= 0; i-- {
			if notSelf(history[i]) {
				return &history[i]
			}
		}
		return nil
	}
}
