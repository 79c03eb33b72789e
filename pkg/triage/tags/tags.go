// Package tags pulls the keywords a report mentions out as free-form tags.
package tags

import (
	"github.com/cognicore/triage/pkg/triage/ingest"
	"github.com/cognicore/triage/pkg/triage/lexicon"
)

// DefaultLimit is the number of tags kept when no limit is configured.
const DefaultLimit = 5

// Extractor collects keyword tokens from any category.
type Extractor struct {
	lex   *lexicon.Lexicon
	limit int
}

// New creates an extractor keeping at most limit tags. A limit of zero or
// less means DefaultLimit.
func New(lex *lexicon.Lexicon, limit int) *Extractor {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Extractor{lex: lex, limit: limit}
}

// Limit returns the maximum number of tags Extract returns.
func (e *Extractor) Limit() int {
	return e.limit
}

// Extract returns distinct keyword tokens in first-seen order, truncated to
// the limit. The result is never nil.
func (e *Extractor) Extract(title, description string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, tok := range ingest.Tokenize(ingest.FullText(title, description)) {
		if len(out) == e.limit {
			break
		}
		if _, dup := seen[tok]; dup || !e.lex.IsKeyword(tok) {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
