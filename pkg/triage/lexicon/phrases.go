package lexicon

import (
	"github.com/coregx/ahocorasick"
)

// phraseMatcher finds weighted phrases in raw text with a single
// Aho-Corasick pass instead of one substring search per phrase.
type phraseMatcher struct {
	ac       *ahocorasick.Automaton
	patterns []string // pattern index -> phrase text
}

func newPhraseMatcher(phrases []string) (*phraseMatcher, error) {
	m := &phraseMatcher{}

	seen := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		m.patterns = append(m.patterns, p)
	}
	if len(m.patterns) == 0 {
		return m, nil
	}

	automaton, err := ahocorasick.NewBuilder().
		AddStrings(m.patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, err
	}
	m.ac = automaton

	return m, nil
}

// match returns every phrase occurring in text at least once.
func (m *phraseMatcher) match(text string) map[string]struct{} {
	found := make(map[string]struct{})
	if m == nil || m.ac == nil || text == "" {
		return found
	}

	for _, hit := range m.ac.FindAllOverlapping([]byte(text)) {
		if hit.PatternID < 0 || hit.PatternID >= len(m.patterns) {
			continue
		}
		found[m.patterns[hit.PatternID]] = struct{}{}
	}
	return found
}
