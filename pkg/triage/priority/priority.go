// Package priority grades the urgency of a report from tiered keywords and a
// handful of surface heuristics.
package priority

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/triage/pkg/triage/ingest"
	"github.com/cognicore/triage/pkg/triage/lexicon"
)

// Level is an urgency tier.
type Level string

const (
	High   Level = "High"
	Medium Level = "Medium"
	Low    Level = "Low"
)

// Score thresholds, inclusive.
const (
	HighThreshold   = 5.0
	MediumThreshold = 2.0
)

// LongDescription is the description length above which a report scores extra.
const LongDescription = 300

// Rank orders levels for listings: High=1, Medium=2, Low=3. Unknown levels sort last.
func (l Level) Rank() int {
	switch l {
	case High:
		return 1
	case Medium:
		return 2
	case Low:
		return 3
	}
	return 4
}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return High, nil
	case "medium":
		return Medium, nil
	case "low":
		return Low, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Signal is one contribution to the priority score.
type Signal struct {
	Source string  `json:"source"` // "high", "medium", "low" or "heuristic"
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// Result is the detector's verdict.
type Result struct {
	Level   Level
	Score   float64
	Signals []Signal
}

// Detector scores reports against a lexicon's priority tiers.
type Detector struct {
	lex *lexicon.Lexicon
}

// New creates a detector over lex.
func New(lex *lexicon.Lexicon) *Detector {
	return &Detector{lex: lex}
}

// Detect scores title and description. Each token adds the weight of the first
// tier that lists it. Heuristics over the lower-cased text then add on top and
// may fire together; "week" also matches inside "weeks", so both duration
// rules fire on the same word.
func (d *Detector) Detect(title, description string) Result {
	text := ingest.FullText(title, description)

	var res Result
	for _, tok := range ingest.Tokenize(text) {
		tier, w, ok := d.lex.PriorityTier(tok)
		if !ok {
			continue
		}
		res.Score += w
		res.Signals = append(res.Signals, Signal{Source: string(tier), Term: tok, Weight: w})
	}

	heuristic := func(term string, w float64) {
		res.Score += w
		res.Signals = append(res.Signals, Signal{Source: "heuristic", Term: term, Weight: w})
	}
	if strings.Contains(text, "days") || strings.Contains(text, "weeks") {
		heuristic("duration", 1)
	}
	if strings.Contains(text, "3 days") || strings.Contains(text, "week") || strings.Contains(text, "long time") {
		heuristic("long duration", 2)
	}
	bangs := strings.Count(text, "!")
	if bangs > 0 {
		heuristic("exclamation", 1)
	}
	if bangs > 2 {
		heuristic("repeated exclamation", 2)
	}
	// Counted in characters, not bytes.
	if utf8.RuneCountInString(description) > LongDescription {
		heuristic("long description", 1)
	}

	res.Level = levelFor(res.Score)
	return res
}

func levelFor(score float64) Level {
	switch {
	case score >= HighThreshold:
		return High
	case score >= MediumThreshold:
		return Medium
	}
	return Low
}
