package digest

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/oklog/ulid/v2"

	"github.com/cognicore/triage/pkg/triage"
)

func TestSnapshot(t *testing.T) {
	agg := New()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	agg.now = func() time.Time { return fixed }

	e := triage.New(triage.Options{})
	for _, r := range [][2]string{
		{"URGENT", "This is an emergency, water flooding the hostel room immediately!!!"},
		{"Hostel mess", "the food in the mess is terrible"},
		{"Bus late", "the shuttle driver is late"},
		{"", ""},
	} {
		agg.Add(e.Analyze(r[0], r[1]))
	}

	d := agg.Snapshot()

	if d.Total != 4 || agg.Total() != 4 {
		t.Fatalf("Total = %d, want 4", d.Total)
	}
	if !d.GeneratedAt.Equal(fixed) {
		t.Errorf("GeneratedAt = %v, want %v", d.GeneratedAt, fixed)
	}
	id, err := ulid.Parse(d.ID)
	if err != nil {
		t.Fatalf("ID %q is not a ULID: %v", d.ID, err)
	}
	if got := ulid.Time(id.Time()); !got.Equal(fixed) {
		t.Errorf("ULID time = %v, want %v", got, fixed)
	}

	wantCategory := []Count{{"Hostel", 2}, {"Others", 1}, {"Transport", 1}}
	if diff := cmp.Diff(wantCategory, d.ByCategory); diff != "" {
		t.Errorf("ByCategory mismatch (-want +got):\n%s", diff)
	}
	wantDept := []Count{{"Hostel Management", 2}, {"Student Affairs Office", 1}, {"Transport Department", 1}}
	if diff := cmp.Diff(wantDept, d.ByDepartment); diff != "" {
		t.Errorf("ByDepartment mismatch (-want +got):\n%s", diff)
	}
	if d.HighPriority != 1 {
		t.Errorf("HighPriority = %d, want 1", d.HighPriority)
	}
	if len(d.TopTags) == 0 || d.TopTags[0].Name != "hostel" {
		t.Errorf("TopTags = %v, want hostel first", d.TopTags)
	}
}

func TestSnapshotMeans(t *testing.T) {
	agg := New()
	agg.Add(triage.Result{Confidence: 0.95, Sentiment: triage.Sentiment{Score: -0.4}})
	agg.Add(triage.Result{Confidence: 0.5, Sentiment: triage.Sentiment{Score: 0.2}})
	agg.Add(triage.Result{Confidence: 0.8, Sentiment: triage.Sentiment{Score: 0}})

	d := agg.Snapshot()
	if d.MeanConfidence != 0.75 {
		t.Errorf("MeanConfidence = %v, want 0.75", d.MeanConfidence)
	}
	if d.MeanSentiment != -0.07 {
		t.Errorf("MeanSentiment = %v, want -0.07", d.MeanSentiment)
	}
}

func TestSnapshotEmpty(t *testing.T) {
	d := New().Snapshot()
	if d.Total != 0 || d.MeanConfidence != 0 || d.MeanSentiment != 0 {
		t.Errorf("unexpected empty digest %+v", d)
	}
	if d.ByCategory == nil || d.TopTags == nil {
		t.Error("breakdowns should be empty, not nil")
	}
}

func TestSnapshotIDsIncrease(t *testing.T) {
	agg := New()
	prev := agg.Snapshot().ID
	for i := 0; i < 5; i++ {
		next := agg.Snapshot().ID
		if next <= prev {
			t.Fatalf("ID %s not after %s", next, prev)
		}
		prev = next
	}
}

func TestCounts(t *testing.T) {
	m := map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}

	want := []Count{{"c", 5}, {"a", 2}, {"b", 2}, {"d", 1}}
	if diff := cmp.Diff(want, counts(m, 0)); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
	if got := counts(m, 2); len(got) != 2 || got[1].Name != "a" {
		t.Errorf("counts(limit 2) = %v", got)
	}
}

func TestTopTagLimit(t *testing.T) {
	agg := New()
	for i := 0; i < TopTagLimit+5; i++ {
		agg.Add(triage.Result{Tags: []string{fmt.Sprintf("tag%02d", i)}})
	}
	if got := len(agg.Snapshot().TopTags); got != TopTagLimit {
		t.Errorf("TopTags has %d entries, want %d", got, TopTagLimit)
	}
}

func TestAddConcurrent(t *testing.T) {
	agg := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				agg.Add(triage.Result{Category: "Hostel"})
			}
		}()
	}
	wg.Wait()

	d := agg.Snapshot()
	if d.Total != 800 || d.ByCategory[0].Count != 800 {
		t.Errorf("got total %d, category %v", d.Total, d.ByCategory)
	}
}
