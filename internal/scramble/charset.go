package scramble

import (
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
)

// Rand is the random source used to draw scramble characters.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newClockRand() Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// Charset is the palette unsettled positions are drawn from. Each entry is a
// single grapheme cluster.
type Charset []string

const (
	CharsetAlphanumeric = "alphanumeric"
	CharsetLower        = "lower"
	CharsetSpecial      = "special"
	CharsetBlocks       = "blocks"
	CharsetGlitch       = "glitch"
)

const (
	alphanumericChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	lowerChars        = "abcdefghijklmnopqrstuvwxyz"
	specialChars      = "!@#$%^&*()_+=-[]{}|;:,./<>?~⧞§¶¤←↑→↓≈≠≤≥±÷×"
	blockChars        = "░▒▓█"
)

var namedCharsets = map[string]string{
	CharsetAlphanumeric: alphanumericChars,
	CharsetLower:        lowerChars,
	CharsetSpecial:      specialChars,
	CharsetBlocks:       blockChars,
	CharsetGlitch:       alphanumericChars + blockChars,
}

// DefaultCharset is used when nothing else is configured.
var DefaultCharset = CharsetFromString(alphanumericChars)

// CharsetFromString builds a charset out of the clusters of s.
func CharsetFromString(s string) Charset {
	return Charset(clusters(s))
}

// LookupCharset resolves a predefined charset by name.
func LookupCharset(name string) (Charset, bool) {
	chars, ok := namedCharsets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return CharsetFromString(chars), true
}

// CharsetNames returns the predefined charset names in sorted order.
func CharsetNames() []string {
	names := make([]string, 0, len(namedCharsets))
	for name := range namedCharsets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns the closest of candidates to name, or "" when nothing
// matches at all.
func Suggest(name string, candidates []string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

// Pick draws one entry uniformly with replacement.
func (c Charset) Pick(r Rand) string {
	if len(c) == 0 {
		return ""
	}
	return c[r.IntN(len(c))]
}
