// Package digest aggregates analysis results into summary counts, the way a
// dashboard reports on a queue of submitted reports.
package digest

import (
	"crypto/rand"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/triage/pkg/triage"
	"github.com/cognicore/triage/pkg/triage/priority"
)

// TopTagLimit bounds Digest.TopTags.
const TopTagLimit = 10

// Count is one bucket of a breakdown.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Digest summarizes every result added to an Aggregator.
type Digest struct {
	ID             string    `json:"id"`
	GeneratedAt    time.Time `json:"generated_at"`
	Total          int       `json:"total"`
	HighPriority   int       `json:"high_priority"`
	MeanConfidence float64   `json:"mean_confidence"`
	MeanSentiment  float64   `json:"mean_sentiment"`
	ByCategory     []Count   `json:"by_category"`
	ByPriority     []Count   `json:"by_priority"`
	BySentiment    []Count   `json:"by_sentiment"`
	ByDepartment   []Count   `json:"by_department"`
	TopTags        []Count   `json:"top_tags"`
}

// Aggregator accumulates results. It is safe for concurrent use.
type Aggregator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time

	total         int
	confidenceSum float64
	sentimentSum  float64
	category      map[string]int
	priority      map[string]int
	sentiment     map[string]int
	department    map[string]int
	tags          map[string]int
}

// New creates an empty aggregator.
func New() *Aggregator {
	return &Aggregator{
		entropy:    ulid.Monotonic(rand.Reader, 0),
		now:        time.Now,
		category:   make(map[string]int),
		priority:   make(map[string]int),
		sentiment:  make(map[string]int),
		department: make(map[string]int),
		tags:       make(map[string]int),
	}
}

// Add counts one result.
func (a *Aggregator) Add(r triage.Result) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total++
	a.confidenceSum += r.Confidence
	a.sentimentSum += r.Sentiment.Score
	a.category[r.Category]++
	a.priority[string(r.Priority)]++
	a.sentiment[string(r.Sentiment.Label)]++
	a.department[r.AssignedDept]++
	for _, t := range r.Tags {
		a.tags[t]++
	}
}

// Total returns the number of results added so far.
func (a *Aggregator) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// Snapshot builds a digest of everything added so far. Each snapshot gets a
// fresh ULID; later snapshots sort after earlier ones.
func (a *Aggregator) Snapshot() Digest {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	d := Digest{
		ID:           ulid.MustNew(ulid.Timestamp(now), a.entropy).String(),
		GeneratedAt:  now.UTC(),
		Total:        a.total,
		HighPriority: a.priority[string(priority.High)],
		ByCategory:   counts(a.category, 0),
		ByPriority:   counts(a.priority, 0),
		BySentiment:  counts(a.sentiment, 0),
		ByDepartment: counts(a.department, 0),
		TopTags:      counts(a.tags, TopTagLimit),
	}
	if a.total > 0 {
		d.MeanConfidence = round2(a.confidenceSum / float64(a.total))
		d.MeanSentiment = round2(a.sentimentSum / float64(a.total))
	}
	return d
}

// counts sorts a histogram by count descending, then name. limit <= 0 keeps all.
func counts(m map[string]int, limit int) []Count {
	out := make([]Count, 0, len(m))
	for name, n := range m {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
