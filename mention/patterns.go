package mention

import (
	"regexp"
	"sort"
)

// Structural patterns locate role, office, constituency, and
// honorific+name references in running text. Capitalization bounds the
// variable tails: "Minister of Works said" stops at the lowercase verb.
// Dialect spellings seen in House transcripts (da, Memba) are folded in
// so span detection does not depend on prior text normalization.
var structuralPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:[Tt]he\s+)?(?:[Rr]ight\s+)?(?:[Hh]onourable\s+)?[Pp]rime [Mm]inister\b`),
	regexp.MustCompile(`\b(?:[Tt]he\s+)?[Dd]eputy [Pp]rime [Mm]inister\b`),
	regexp.MustCompile(`\b(?:[Tt]he\s+)?[Ll]eader of the [Oo]pposition\b`),
	regexp.MustCompile(`\b(?:M[rs]\.?|Mrs\.?|Madam)\s+Speaker\b`),
	regexp.MustCompile(`\b(?:[Tt]he\s+)?[Mm]inister of\s+[A-Z][a-z]+(?:(?:,\s+|\s+and\s+|\s+)[A-Z][a-z]+)*`),
	regexp.MustCompile(`\b(?:[Tt]he\s+|[Dd]a\s+)?(?:[Hh]onourable\s+)?[Mm]emb(?:er|a) for\s+[A-Z][\w'.]*(?:(?:,\s+|\s+and\s+|\s+)[A-Z][\w'.]*)*`),
	regexp.MustCompile(`\b(?:[Tt]he\s+)?(?:Honourable|Hon\.?|Dr\.?|Mr\.?|Mrs\.?|Ms\.?)\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+`),
}

// Deictic patterns locate anaphoric references whose target depends on
// the speaker-turn history rather than the alias index.
var deicticPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:the\s+|da\s+)?(?:honourable\s+)?(?:member|memba|gentleman|lady)\s+who\s+(?:just\s+)?spoke\b`),
	regexp.MustCompile(`(?i)\b(?:the\s+|da\s+)?(?:previous|last)\s+speaker\b`),
	regexp.MustCompile(`(?i)\bmy\s+honou?rable\s+(?:friend|colleague)\b`),
	regexp.MustCompile(`(?i)\bmy\s+colleague\b`),
	regexp.MustCompile(`(?i)\b(?:the\s+|da\s+)?(?:honourable\s+)?(?:member|memba|gentleman|lady|friends?)\s+opposite\b`),
	regexp.MustCompile(`(?i)\b(?:the\s+|da\s+)?other\s+side\s+of\s+the\s+house\b`),
}

// span is one candidate mention located in a segment's text.
type span struct {
	start   int
	end     int
	deictic bool
}

func (s span) overlaps(other span) bool {
	return s.start < other.end && other.start < s.end
}

// findSpans runs both pattern sets over the text and deduplicates
// overlapping hits, preferring the longest match; ties go to the
// earlier span, then to the structural one.
func findSpans(text string) []span {
	var all []span
	for _, p := range structuralPatterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			all = append(all, span{start: loc[0], end: loc[1]})
		}
	}
	for _, p := range deicticPatterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			all = append(all, span{start: loc[0], end: loc[1], deictic: true})
		}
	}

	sort.Slice(all, func(i, j int) bool {
		li, lj := all[i].end-all[i].start, all[j].end-all[j].start
		if li != lj {
			return li > lj
		}
		if all[i].start != all[j].start {
			return all[i].start < all[j].start
		}
		return !all[i].deictic && all[j].deictic
	})

	var kept []span
	for _, cand := range all {
		conflict := false
		for _, k := range kept {
			if cand.overlaps(k) {
				conflict = true
				break
			}
		}
		if !conflict {
			kept = append(kept, cand)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].start < kept[j].start })
	return kept
}

var sentenceBoundary = regexp.MustCompile(`[.!?]+(?:\s+|$)`)

// sentenceSpans splits text into sentence byte ranges, boundaries
// inclusive of their terminal punctuation.
func sentenceSpans(text string) [][2]int {
	var out [][2]int
	prev := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		out = append(out, [2]int{prev, loc[1]})
		prev = loc[1]
	}
	if prev < len(text) {
		out = append(out, [2]int{prev, len(text)})
	}
	return out
}
