package lexicon

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/triage/pkg/triage/internalerr"
)

// Lexicon is the read-only vocabulary behind every analysis stage:
//   - categories in tie-break order, each with keywords, weight overrides and phrases
//   - the category to department routing table
//   - three priority tiers (high, medium, low) with a scalar weight each
//   - three sentiment classes (negative, positive, intensifier)
//
// A Lexicon is built once and never mutated, so any number of goroutines may
// share one without locking. Accessors hand out copies.
type Lexicon struct {
	categories  []category
	index       map[string]int // category name -> position in categories
	catchAll    string
	departments map[string]string
	keywords    map[string]struct{} // union of all category keywords

	tierWeights map[Tier]float64
	tierOf      map[string]Tier // word -> first tier listing it

	classWeights map[Class]float64
	classOf      map[string]Class // word -> first class listing it

	phrases *phraseMatcher
	source  Source
}

type category struct {
	name     string
	keywords []string           // declaration order, deduplicated
	weights  map[string]float64 // keyword -> scoring weight
	phrases  []Phrase           // sorted by text
}

// Phrase is a multi-word entry matched by substring against raw text.
type Phrase struct {
	Text   string
	Weight float64
}

// Tier names a priority bucket.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// TierOrder is the order tiers are checked when a word appears in several.
var TierOrder = []Tier{TierHigh, TierMedium, TierLow}

// Class names a sentiment bucket.
type Class string

const (
	ClassNegative    Class = "negative"
	ClassPositive    Class = "positive"
	ClassIntensifier Class = "intensifier"
)

// ClassOrder is the order classes are checked when a word appears in several.
var ClassOrder = []Class{ClassNegative, ClassPositive, ClassIntensifier}

// DefaultKeywordWeight is the score of a keyword without an override.
const DefaultKeywordWeight = 1.0

// New builds a Lexicon from its serializable form. All words are lower-cased.
// The source is validated first; see Validate.
func New(src Source) (*Lexicon, error) {
	src = src.normalized()
	if err := src.Validate(); err != nil {
		return nil, err
	}

	lex := &Lexicon{
		index:        make(map[string]int, len(src.Categories)),
		catchAll:     src.CatchAll,
		departments:  make(map[string]string, len(src.Departments)),
		keywords:     make(map[string]struct{}),
		tierWeights:  make(map[Tier]float64, len(TierOrder)),
		tierOf:       make(map[string]Tier),
		classWeights: make(map[Class]float64, len(ClassOrder)),
		classOf:      make(map[string]Class),
		source:       src.clone(),
	}

	var allPhrases []string
	for _, cs := range src.Categories {
		cat := category{
			name:    cs.Name,
			weights: make(map[string]float64, len(cs.Keywords)),
		}
		for _, kw := range cs.Keywords {
			if _, dup := cat.weights[kw]; dup {
				continue
			}
			w, ok := cs.Weights[kw]
			if !ok || w == 0 {
				w = DefaultKeywordWeight
			}
			cat.keywords = append(cat.keywords, kw)
			cat.weights[kw] = w
			lex.keywords[kw] = struct{}{}
		}
		for text, w := range cs.Weights {
			if strings.Contains(text, " ") {
				cat.phrases = append(cat.phrases, Phrase{Text: text, Weight: w})
				allPhrases = append(allPhrases, text)
			}
		}
		sort.Slice(cat.phrases, func(i, j int) bool {
			return cat.phrases[i].Text < cat.phrases[j].Text
		})

		lex.index[cat.name] = len(lex.categories)
		lex.categories = append(lex.categories, cat)
	}

	for name, dept := range src.Departments {
		lex.departments[name] = dept
	}

	for _, tier := range TierOrder {
		set, ok := src.Priority[string(tier)]
		if !ok {
			continue
		}
		lex.tierWeights[tier] = set.Weight
		for _, w := range set.Words {
			if _, taken := lex.tierOf[w]; !taken {
				lex.tierOf[w] = tier
			}
		}
	}

	for _, class := range ClassOrder {
		set, ok := src.Sentiment[string(class)]
		if !ok {
			continue
		}
		lex.classWeights[class] = set.Weight
		for _, w := range set.Words {
			if _, taken := lex.classOf[w]; !taken {
				lex.classOf[w] = class
			}
		}
	}

	matcher, err := newPhraseMatcher(allPhrases)
	if err != nil {
		return nil, fmt.Errorf("compile phrases: %w", err)
	}
	lex.phrases = matcher

	return lex, nil
}

// Categories returns category names in tie-break order.
func (l *Lexicon) Categories() []string {
	names := make([]string, len(l.categories))
	for i, c := range l.categories {
		names[i] = c.name
	}
	return names
}

// CatchAll returns the category used when nothing matches.
func (l *Lexicon) CatchAll() string {
	return l.catchAll
}

// HasCategory reports whether name is a known category.
func (l *Lexicon) HasCategory(name string) bool {
	_, ok := l.index[name]
	return ok
}

// Keywords returns a category's single-word keywords in declaration order.
func (l *Lexicon) Keywords(name string) []string {
	i, ok := l.index[name]
	if !ok {
		return nil
	}
	return append([]string(nil), l.categories[i].keywords...)
}

// KeywordWeight returns the score token earns for a category, and whether the
// token is one of that category's keywords at all.
func (l *Lexicon) KeywordWeight(name, token string) (float64, bool) {
	i, ok := l.index[name]
	if !ok {
		return 0, false
	}
	w, ok := l.categories[i].weights[token]
	return w, ok
}

// Phrases returns a category's weighted phrases sorted by text.
func (l *Lexicon) Phrases(name string) []Phrase {
	i, ok := l.index[name]
	if !ok {
		return nil
	}
	return append([]Phrase(nil), l.categories[i].phrases...)
}

// MatchPhrases returns the set of phrases, across all categories, that occur
// somewhere in text. text must already be lower-cased.
func (l *Lexicon) MatchPhrases(text string) map[string]struct{} {
	return l.phrases.match(text)
}

// IsKeyword reports whether token is a keyword of any category.
func (l *Lexicon) IsKeyword(token string) bool {
	_, ok := l.keywords[token]
	return ok
}

// Department returns the routing department for a category.
func (l *Lexicon) Department(name string) (string, bool) {
	d, ok := l.departments[name]
	return d, ok
}

// PriorityTier returns the tier a word belongs to and that tier's weight.
func (l *Lexicon) PriorityTier(word string) (Tier, float64, bool) {
	tier, ok := l.tierOf[word]
	if !ok {
		return "", 0, false
	}
	return tier, l.tierWeights[tier], true
}

// TierWeight returns the scalar weight of a priority tier.
func (l *Lexicon) TierWeight(t Tier) float64 {
	return l.tierWeights[t]
}

// SentimentClass returns the sentiment class a word belongs to, if any.
func (l *Lexicon) SentimentClass(word string) (Class, bool) {
	c, ok := l.classOf[word]
	return c, ok
}

// ClassWeight returns the scalar weight of a sentiment class.
func (l *Lexicon) ClassWeight(c Class) float64 {
	return l.classWeights[c]
}

// IntensifierMultiplier is the factor applied to the sentiment word right
// after an intensifier.
func (l *Lexicon) IntensifierMultiplier() float64 {
	return 1 + l.classWeights[ClassIntensifier]
}

// Source returns a copy of the normalized tables this lexicon was built from.
func (l *Lexicon) Source() Source {
	return l.source.clone()
}

// Stats returns counts describing the lexicon contents.
func (l *Lexicon) Stats() Stats {
	st := Stats{
		Categories:     len(l.categories),
		Keywords:       len(l.keywords),
		PriorityWords:  len(l.tierOf),
		SentimentWords: len(l.classOf),
	}
	for _, c := range l.categories {
		st.Phrases += len(c.phrases)
	}
	return st
}

// Stats holds statistics about lexicon contents.
type Stats struct {
	Categories     int // Number of categories, catch-all included
	Keywords       int // Distinct keywords across all categories
	Phrases        int // Weighted phrases, counted per category
	PriorityWords  int // Distinct words in any priority tier
	SentimentWords int // Distinct words in any sentiment class
}

// Validate checks that the source describes a usable lexicon: at least one
// category, unique non-empty names, a catch-all that is one of them, a
// department for every category, and only known tier and class names.
func (s Source) Validate() error {
	if len(s.Categories) == 0 {
		return fmt.Errorf("%w: no categories", internalerr.ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(s.Categories))
	for _, c := range s.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: category with empty name", internalerr.ErrInvalidConfig)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: category %q declared twice: %w", internalerr.ErrInvalidConfig, c.Name, internalerr.ErrDuplicate)
		}
		seen[c.Name] = struct{}{}

		if d := strings.TrimSpace(s.Departments[c.Name]); d == "" {
			return fmt.Errorf("%w: no department for category %q", internalerr.ErrInvalidConfig, c.Name)
		}
	}

	if s.CatchAll == "" {
		return fmt.Errorf("%w: catch_all not set", internalerr.ErrInvalidConfig)
	}
	if _, ok := seen[s.CatchAll]; !ok {
		return fmt.Errorf("%w: catch_all %q is not a category", internalerr.ErrInvalidConfig, s.CatchAll)
	}

	for name := range s.Priority {
		if !knownTier(Tier(name)) {
			return fmt.Errorf("%w: priority tier %q: %w", internalerr.ErrInvalidConfig, name, internalerr.ErrUnknownName)
		}
	}
	for name := range s.Sentiment {
		if !knownClass(Class(name)) {
			return fmt.Errorf("%w: sentiment class %q: %w", internalerr.ErrInvalidConfig, name, internalerr.ErrUnknownName)
		}
	}

	return nil
}

func knownTier(t Tier) bool {
	for _, k := range TierOrder {
		if k == t {
			return true
		}
	}
	return false
}

func knownClass(c Class) bool {
	for _, k := range ClassOrder {
		if k == c {
			return true
		}
	}
	return false
}
