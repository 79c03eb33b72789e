// Package classify assigns a report to one lexicon category by weighted
// keyword and phrase matching.
package classify

import (
	"math"

	"github.com/cognicore/triage/pkg/triage/ingest"
	"github.com/cognicore/triage/pkg/triage/lexicon"
)

const (
	// MaxConfidence caps the reported confidence.
	MaxConfidence = 0.95
	// ConfidenceFloor is added to the winner's share of the total score.
	ConfidenceFloor = 0.3
	// NoSignalConfidence is reported when no category scored at all.
	NoSignalConfidence = 0.5
)

// Classifier scores text against every category of a lexicon.
type Classifier struct {
	lex *lexicon.Lexicon
}

// New creates a classifier over lex.
func New(lex *lexicon.Lexicon) *Classifier {
	return &Classifier{lex: lex}
}

// Result is the outcome of classifying one report.
type Result struct {
	Category   string
	Confidence float64
	Score      float64            // winning category's score
	Scores     map[string]float64 // every category, zero included
	Hits       map[string][]Hit   // matches per category, in scan order
}

// Hit records one scoring match.
type Hit struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
	Phrase bool    `json:"phrase,omitempty"`
}

// Classify scores title and description against each category.
//
// Token matches add each keyword's weight on every occurrence. Phrase matches
// add the phrase weight once when the raw lower-cased text contains it; the two
// passes are independent, so a phrase and its words can both score. The highest
// score wins, ties going to the earlier category. A zero winning score falls back
// to the catch-all category.
func (c *Classifier) Classify(title, description string) Result {
	text := ingest.FullText(title, description)
	tokens := ingest.Tokenize(text)
	matched := c.lex.MatchPhrases(text)

	names := c.lex.Categories()
	res := Result{
		Scores: make(map[string]float64, len(names)),
		Hits:   make(map[string][]Hit),
	}

	best, bestScore, total := "", 0.0, 0.0
	for i, name := range names {
		score := 0.0
		for _, tok := range tokens {
			if w, ok := c.lex.KeywordWeight(name, tok); ok {
				score += w
				res.Hits[name] = append(res.Hits[name], Hit{Term: tok, Weight: w})
			}
		}
		for _, p := range c.lex.Phrases(name) {
			if _, ok := matched[p.Text]; ok {
				score += p.Weight
				res.Hits[name] = append(res.Hits[name], Hit{Term: p.Text, Weight: p.Weight, Phrase: true})
			}
		}

		res.Scores[name] = score
		total += score
		if i == 0 || score > bestScore {
			best, bestScore = name, score
		}
	}

	res.Score = bestScore
	res.Category = best
	if bestScore <= 0 {
		res.Category = c.lex.CatchAll()
	}
	res.Confidence = confidence(bestScore, total)

	return res
}

func confidence(best, total float64) float64 {
	if total <= 0 {
		return NoSignalConfidence
	}
	return round2(math.Min(MaxConfidence, best/total+ConfidenceFloor))
}

// round2 rounds x to two decimal places, halves away from zero.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
