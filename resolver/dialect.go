package resolver

import (
	"strings"
)

// thStopping maps Bahamian Creole TH-stopped forms to Standard English so
// mentions like "da Memba for Cat Island" match registry aliases.
var thStopping = map[string]string{
	"da":      "the",
	"dat":     "that",
	"dem":     "them",
	"dey":     "they",
	"dis":     "this",
	"dere":    "there",
	"den":     "then",
	"dese":    "these",
	"dose":    "those",
	"memba":   "member",
	"membas":  "members",
	"memba's": "member's",
}

// vowelShifts covers common local renderings of constituency names.
var vowelShifts = map[string]string{
	"englaston": "englerston",
	"carmikle":  "carmichael",
	"killarny":  "killarney",
}

// NormalizeDialect rewrites Creole word forms to their standard spellings.
// Case is irrelevant downstream (alias normalization lowercases), so the
// output is lowercase.
func NormalizeDialect(text string) string {
	fields := strings.Fields(strings.ToLower(text))
	for i, f := range fields {
		if std, ok := thStopping[f]; ok {
			fields[i] = std
			continue
		}
		if std, ok := vowelShifts[f]; ok {
			fields[i] = std
		}
	}
	return strings.Join(fields, " ")
}
