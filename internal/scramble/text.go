package scramble

import (
	"strings"

	"github.com/rivo/uniseg"
)

// DefaultText is shown when neither an override nor raw text is available.
const DefaultText = "Hello, World!"

// NormalizeText collapses every whitespace run (newlines, tabs, unicode
// spaces) into a single space and trims both ends.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// ResolveTargetText returns the first candidate that is not blank, in the
// order override, raw, fallback.
func ResolveTargetText(override, raw, fallback string) string {
	for _, candidate := range []string{override, raw} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return fallback
}

// clusters splits s into user-perceived characters so that combining marks
// and emoji sequences settle as a single unit.
func clusters(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
