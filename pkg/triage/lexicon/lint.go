package lexicon

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/triage/pkg/triage/ingest"
	"github.com/orsinium-labs/stopwords"
)

// FindingKind classifies a lint finding.
type FindingKind string

const (
	// FindingShortWord: the word is shorter than ingest.MinTokenLen and can never match a token.
	FindingShortWord FindingKind = "short_word"
	// FindingUnmatchedPhrase: a multi-word entry with no phrase weight, so only token matching applies and it never fires.
	FindingUnmatchedPhrase FindingKind = "unmatched_phrase"
	// FindingNonWord: the word contains characters the tokenizer splits on.
	FindingNonWord FindingKind = "non_word"
	// FindingOrphanWeight: a single-word weight override for a word missing from the keyword list.
	FindingOrphanWeight FindingKind = "orphan_weight"
	// FindingStopword: the word is a common English stopword and will fire on most text.
	FindingStopword FindingKind = "stopword"
	// FindingOverlap: the word is listed in more than one priority tier or sentiment class; only the first counts.
	FindingOverlap FindingKind = "overlap"
)

// Finding is one lint result. Findings never make a lexicon invalid; they
// point at entries that cannot fire or fire in surprising ways.
type Finding struct {
	Kind    FindingKind `json:"kind"`
	Table   string      `json:"table"` // "category:<name>", "priority:<tier>" or "sentiment:<class>"
	Word    string      `json:"word"`
	Message string      `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s %s %q: %s", f.Kind, f.Table, f.Word, f.Message)
}

var englishStopwords = stopwords.MustGet("en")

// Lint audits the lexicon for dead or suspicious entries. Findings are sorted
// by table, then word, then kind.
func (l *Lexicon) Lint() []Finding {
	var out []Finding
	src := l.source

	for _, c := range src.Categories {
		table := "category:" + c.Name
		phraseWeighted := make(map[string]bool)
		for k := range c.Weights {
			if strings.Contains(k, " ") {
				phraseWeighted[k] = true
			}
		}
		listed := make(map[string]bool, len(c.Keywords))
		for _, kw := range c.Keywords {
			listed[kw] = true
			out = append(out, lintWord(table, kw, phraseWeighted[kw])...)
		}
		for k := range c.Weights {
			if strings.Contains(k, " ") || listed[k] {
				continue
			}
			out = append(out, Finding{
				Kind:    FindingOrphanWeight,
				Table:   table,
				Word:    k,
				Message: "weight override has no effect because the word is not a keyword",
			})
		}
	}

	out = append(out, lintSets("priority", tierNames(), src.Priority)...)
	out = append(out, lintSets("sentiment", classNames(), src.Sentiment)...)

	sort.Slice(out, func(i, j int) bool {
		if out[i].Table != out[j].Table {
			return out[i].Table < out[j].Table
		}
		if out[i].Word != out[j].Word {
			return out[i].Word < out[j].Word
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

func lintSets(kind string, order []string, sets map[string]WordSet) []Finding {
	var out []Finding
	firstIn := make(map[string]string)
	for _, name := range order {
		set, ok := sets[name]
		if !ok {
			continue
		}
		table := kind + ":" + name
		for _, w := range set.Words {
			out = append(out, lintWord(table, w, false)...)
			if prev, dup := firstIn[w]; dup && prev != name {
				out = append(out, Finding{
					Kind:    FindingOverlap,
					Table:   table,
					Word:    w,
					Message: fmt.Sprintf("also listed under %s:%s, which takes precedence", kind, prev),
				})
				continue
			}
			firstIn[w] = name
		}
	}
	return out
}

func lintWord(table, word string, phraseWeighted bool) []Finding {
	switch {
	case strings.Contains(word, " "):
		if phraseWeighted {
			return nil
		}
		return []Finding{{
			Kind:    FindingUnmatchedPhrase,
			Table:   table,
			Word:    word,
			Message: "multi-word entry is only matched as a token and can never fire",
		}}
	case len(word) < ingest.MinTokenLen:
		return []Finding{{
			Kind:    FindingShortWord,
			Table:   table,
			Word:    word,
			Message: fmt.Sprintf("tokens shorter than %d characters are discarded", ingest.MinTokenLen),
		}}
	case !ingest.IsWordToken(word):
		return []Finding{{
			Kind:    FindingNonWord,
			Table:   table,
			Word:    word,
			Message: "the tokenizer splits this word, so it can never match whole",
		}}
	case englishStopwords.Contains(word):
		return []Finding{{
			Kind:    FindingStopword,
			Table:   table,
			Word:    word,
			Message: "common English stopword",
		}}
	}
	return nil
}

func tierNames() []string {
	names := make([]string, len(TierOrder))
	for i, t := range TierOrder {
		names[i] = string(t)
	}
	return names
}

func classNames() []string {
	names := make([]string, len(ClassOrder))
	for i, c := range ClassOrder {
		names[i] = string(c)
	}
	return names
}
