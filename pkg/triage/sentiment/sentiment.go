// Package sentiment scores the polarity of a report with intensifier-aware
// word weights and maps it onto five fixed bands.
package sentiment

import (
	"math"

	"github.com/cognicore/triage/pkg/triage/ingest"
	"github.com/cognicore/triage/pkg/triage/lexicon"
)

// Normalizer divides the raw sum before clamping to [-1, 1].
const Normalizer = 5.0

// Label names a sentiment band.
type Label string

const (
	VeryNegative Label = "Very Negative"
	Negative     Label = "Negative"
	Neutral      Label = "Neutral"
	Positive     Label = "Positive"
	VeryPositive Label = "Very Positive"
)

// Band is one slice of the normalized score range. Upper is inclusive.
type Band struct {
	Upper   float64
	Label   Label
	Urgency string
	Emoji   string
}

// Bands in ascending order. The last band catches everything above the others.
var Bands = []Band{
	{-0.6, VeryNegative, "High Urgency", "😡"},
	{-0.2, Negative, "Medium Urgency", "😞"},
	{0.2, Neutral, "Normal", "😐"},
	{0.6, Positive, "Low Urgency", "🙂"},
	{math.Inf(1), VeryPositive, "Minimal Urgency", "😊"},
}

// Contribution is the score one token added.
type Contribution struct {
	Term        string  `json:"term"`
	Weight      float64 `json:"weight"`
	Intensified bool    `json:"intensified,omitempty"`
}

// Result is the analyzer's verdict.
type Result struct {
	Score         float64 // normalized, rounded to 2 places
	Raw           float64 // sum before normalization
	Label         Label
	Urgency       string
	Emoji         string
	Contributions []Contribution
}

// Analyzer scores text against a lexicon's sentiment classes.
type Analyzer struct {
	lex *lexicon.Lexicon
}

// New creates an analyzer over lex.
func New(lex *lexicon.Lexicon) *Analyzer {
	return &Analyzer{lex: lex}
}

// Analyze sweeps the tokens of title and description left to right. An
// intensifier scores nothing and scales only the token right after it; any
// other token clears the flag, so consecutive intensifiers do not stack.
func (a *Analyzer) Analyze(title, description string) Result {
	var res Result
	boost := a.lex.IntensifierMultiplier()
	intensified := false

	for _, tok := range ingest.Tokenize(ingest.FullText(title, description)) {
		class, ok := a.lex.SentimentClass(tok)
		switch {
		case ok && (class == lexicon.ClassNegative || class == lexicon.ClassPositive):
			w := a.lex.ClassWeight(class)
			if intensified {
				w *= boost
			}
			res.Raw += w
			res.Contributions = append(res.Contributions, Contribution{Term: tok, Weight: w, Intensified: intensified})
			intensified = false
		case ok && class == lexicon.ClassIntensifier:
			intensified = true
		default:
			intensified = false
		}
	}

	norm := math.Max(-1, math.Min(1, res.Raw/Normalizer))
	b := BandFor(norm)
	res.Score = round2(norm)
	res.Label, res.Urgency, res.Emoji = b.Label, b.Urgency, b.Emoji
	return res
}

// BandFor returns the band containing a normalized score.
func BandFor(score float64) Band {
	for _, b := range Bands {
		if score <= b.Upper {
			return b
		}
	}
	return Bands[len(Bands)-1]
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
