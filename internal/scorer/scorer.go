// Package scorer provides the interchangeable query/chunk similarity strategies.
package scorer

import (
	"strings"

	"manualrag/internal/domain"
)

const (
	TypeTokenOverlap = "token_overlap"
	TypeCharJaccard  = "char_jaccard"

	// DefaultType is the strategy used when none is configured.
	DefaultType = TypeTokenOverlap
)

// Types lists the names accepted by New.
func Types() []string {
	return []string{TypeTokenOverlap, TypeCharJaccard}
}

// New returns the scorer registered under name. An empty name selects DefaultType.
func New(name string) (domain.Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case TypeTokenOverlap, "":
		return TokenOverlap{}, nil
	case TypeCharJaccard:
		return CharJaccard{}, nil
	default:
		return nil, domain.NewConfigurationError("scorer", "unknown type %q (want one of %s)", name, strings.Join(Types(), ", "))
	}
}

// TokenOverlap counts how many whitespace-separated query words occur in the
// text. Repeated query words count once per occurrence.
type TokenOverlap struct{}

func (TokenOverlap) Name() string { return TypeTokenOverlap }

func (TokenOverlap) Score(query, text string) float64 {
	queryWords := strings.Fields(query)
	if len(queryWords) == 0 {
		return 0
	}
	textWords := strings.Fields(text)
	set := make(map[string]struct{}, len(textWords))
	for _, w := range textWords {
		set[w] = struct{}{}
	}
	score := 0
	for _, w := range queryWords {
		if _, ok := set[w]; ok {
			score++
		}
	}
	return float64(score)
}

// CharJaccard compares the sets of characters of query and text:
// |A ∩ B| / max(|A|, |B|). Two empty inputs score 0.
type CharJaccard struct{}

func (CharJaccard) Name() string { return TypeCharJaccard }

func (CharJaccard) Score(query, text string) float64 {
	a := runeSet(query)
	b := runeSet(text)
	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	if denom == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	inter := 0
	for r := range a {
		if _, ok := b[r]; ok {
			inter++
		}
	}
	return float64(inter) / float64(denom)
}

func runeSet(s string) map[rune]struct{} {
	m := make(map[rune]struct{}, len(s))
	for _, r := range s {
		m[r] = struct{}{}
	}
	return m
}
