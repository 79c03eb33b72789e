// Package triage analyzes free-text reports into a category, routing
// department, priority, sentiment and tags.
//
// Every stage is a transparent rule over a lexicon: scores come from keyword
// and phrase matches plus fixed heuristics, and Explain shows which matches
// produced a verdict. An Engine is read-only after New and safe for
// concurrent use.
package triage

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cognicore/triage/pkg/triage/classify"
	"github.com/cognicore/triage/pkg/triage/lexicon"
	"github.com/cognicore/triage/pkg/triage/priority"
	"github.com/cognicore/triage/pkg/triage/sentiment"
	"github.com/cognicore/triage/pkg/triage/tags"
)

// Engine runs all analysis stages over one lexicon.
type Engine struct {
	lex        *lexicon.Lexicon
	classifier *classify.Classifier
	detector   *priority.Detector
	analyzer   *sentiment.Analyzer
	extractor  *tags.Extractor
	log        *zap.Logger
}

// Options configures an Engine. The zero value uses the built-in lexicon,
// tags.DefaultLimit and a no-op logger.
type Options struct {
	Lexicon  *lexicon.Lexicon
	TagLimit int
	Logger   *zap.Logger
}

// New creates an Engine.
func New(opts Options) *Engine {
	lex := opts.Lexicon
	if lex == nil {
		lex = lexicon.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		lex:        lex,
		classifier: classify.New(lex),
		detector:   priority.New(lex),
		analyzer:   sentiment.New(lex),
		extractor:  tags.New(lex, opts.TagLimit),
		log:        log,
	}
}

// Lexicon returns the lexicon the engine analyzes with.
func (e *Engine) Lexicon() *lexicon.Lexicon {
	return e.lex
}

// Result is the assessment of one report.
type Result struct {
	Category     string         `json:"category"`
	Confidence   float64        `json:"confidence"`
	Priority     priority.Level `json:"priority"`
	Sentiment    Sentiment      `json:"sentiment"`
	AssignedDept string         `json:"assigned_dept"`
	Tags         []string       `json:"tags"`
}

// Sentiment is the polarity part of a Result.
type Sentiment struct {
	Score   float64         `json:"score"`
	Label   sentiment.Label `json:"label"`
	Emoji   string          `json:"emoji"`
	Urgency string          `json:"urgency"`
}

// TagString joins tags with commas, the form stored alongside reports.
func (r Result) TagString() string {
	return strings.Join(r.Tags, ",")
}

// Trace records the evidence behind a Result.
type Trace struct {
	Scores                 map[string]float64        `json:"scores"`
	Hits                   map[string][]classify.Hit `json:"hits,omitempty"`
	PriorityScore          float64                   `json:"priority_score"`
	PrioritySignals        []priority.Signal         `json:"priority_signals,omitempty"`
	SentimentRaw           float64                   `json:"sentiment_raw"`
	SentimentContributions []sentiment.Contribution  `json:"sentiment_contributions,omitempty"`
}

// Analyze assesses a report. It never fails: empty text yields the catch-all
// category at 0.5 confidence, Low priority, Neutral sentiment and no tags.
func (e *Engine) Analyze(title, description string) Result {
	res, _ := e.Explain(title, description)
	return res
}

// Explain is Analyze plus the matches and signals that produced the result.
func (e *Engine) Explain(title, description string) (Result, Trace) {
	cls := e.classifier.Classify(title, description)
	pri := e.detector.Detect(title, description)
	sen := e.analyzer.Analyze(title, description)
	tg := e.extractor.Extract(title, description)

	// Validated lexicons route every category.
	dept, _ := e.lex.Department(cls.Category)

	res := Result{
		Category:   cls.Category,
		Confidence: cls.Confidence,
		Priority:   pri.Level,
		Sentiment: Sentiment{
			Score:   sen.Score,
			Label:   sen.Label,
			Emoji:   sen.Emoji,
			Urgency: sen.Urgency,
		},
		AssignedDept: dept,
		Tags:         tg,
	}
	tr := Trace{
		Scores:                 cls.Scores,
		Hits:                   cls.Hits,
		PriorityScore:          pri.Score,
		PrioritySignals:        pri.Signals,
		SentimentRaw:           sen.Raw,
		SentimentContributions: sen.Contributions,
	}

	e.log.Debug("analyzed report",
		zap.String("category", res.Category),
		zap.Float64("confidence", res.Confidence),
		zap.String("priority", string(res.Priority)),
		zap.Float64("priority_score", pri.Score),
		zap.String("sentiment", string(res.Sentiment.Label)),
		zap.Strings("tags", res.Tags),
	)
	return res, tr
}

var defaultEngine = sync.OnceValue(func() *Engine {
	return New(Options{})
})

// Analyze assesses a report with the built-in lexicon.
func Analyze(title, description string) Result {
	return defaultEngine().Analyze(title, description)
}
