package triage

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cognicore/triage/pkg/triage/classify"
	"github.com/cognicore/triage/pkg/triage/priority"
	"github.com/cognicore/triage/pkg/triage/sentiment"
)

func TestAnalyzeExamples(t *testing.T) {
	tests := []struct {
		name        string
		title, desc string
		want        Result
	}{
		{
			name: "empty",
			want: Result{
				Category:     "Others",
				Confidence:   0.5,
				Priority:     priority.Low,
				Sentiment:    Sentiment{Score: 0, Label: sentiment.Neutral, Emoji: "😐", Urgency: "Normal"},
				AssignedDept: "Student Affairs Office",
				Tags:         []string{},
			},
		},
		{
			name:  "hostel flooding",
			title: "URGENT",
			desc:  "This is an emergency, water flooding the hostel room immediately!!!",
			want: Result{
				Category:     "Hostel",
				Confidence:   0.95,
				Priority:     priority.High,
				Sentiment:    Sentiment{Score: -0.4, Label: sentiment.Negative, Emoji: "😞", Urgency: "Medium Urgency"},
				AssignedDept: "Hostel Management",
				Tags:         []string{"emergency", "water", "hostel", "room"},
			},
		},
		{
			name:  "minor suggestion",
			title: "minor suggestion",
			desc:  "It would be nice to have better lighting sometimes",
			want: Result{
				Category:     "Others",
				Confidence:   0.5,
				Priority:     priority.Low,
				Sentiment:    Sentiment{Score: 0.2, Label: sentiment.Neutral, Emoji: "😐", Urgency: "Normal"},
				AssignedDept: "Student Affairs Office",
				Tags:         []string{},
			},
		},
		{
			name:  "exam clash",
			title: "Exam clash",
			desc:  "Two exams scheduled on the same date, this is a serious problem",
			want: Result{
				Category:     "Exams",
				Confidence:   0.95,
				Priority:     priority.Medium,
				Sentiment:    Sentiment{Score: -0.2, Label: sentiment.Negative, Emoji: "😞", Urgency: "Medium Urgency"},
				AssignedDept: "Examination Cell",
				Tags:         []string{"exam", "clash", "date"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.title, tt.desc)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Analyze mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	e := New(Options{})
	title, desc := "Bus late again", "The shuttle driver has been extremely late for weeks!!"

	first := e.Analyze(title, desc)
	for i := 0; i < 20; i++ {
		if diff := cmp.Diff(first, e.Analyze(title, desc)); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
	if diff := cmp.Diff(first, Analyze(title, desc)); diff != "" {
		t.Errorf("package Analyze differs from engine (-engine +package):\n%s", diff)
	}
}

func TestAnalyzeInvariants(t *testing.T) {
	e := New(Options{})
	inputs := [][2]string{
		{"", ""},
		{"!!!!", "????"},
		{"hostel hostel hostel", strings.Repeat("very terrible ", 50)},
		{"Lab", "library lab projector wifi internet building classroom exam fee"},
		{"Great", "really excellent helpful staff, thankful and happy"},
		{"Ragging", "students are harassed in the hostel block, unsafe and dangerous"},
		{"", strings.Repeat("the bus is late ", 40)},
	}

	for _, in := range inputs {
		r := e.Analyze(in[0], in[1])

		if r.Confidence != classify.NoSignalConfidence && (r.Confidence < 0 || r.Confidence > classify.MaxConfidence) {
			t.Errorf("%q: confidence %v out of range", in[0], r.Confidence)
		}
		if r.Sentiment.Score < -1 || r.Sentiment.Score > 1 {
			t.Errorf("%q: sentiment %v out of range", in[0], r.Sentiment.Score)
		}
		switch r.Priority {
		case priority.High, priority.Medium, priority.Low:
		default:
			t.Errorf("%q: unexpected priority %q", in[0], r.Priority)
		}
		if len(r.Tags) > 5 {
			t.Errorf("%q: %d tags", in[0], len(r.Tags))
		}
		seen := make(map[string]bool)
		for _, tag := range r.Tags {
			if seen[tag] {
				t.Errorf("%q: duplicate tag %q", in[0], tag)
			}
			seen[tag] = true
		}
		if r.AssignedDept == "" {
			t.Errorf("%q: no department for %s", in[0], r.Category)
		}
	}
}

func TestExplainTraceMatchesResult(t *testing.T) {
	e := New(Options{})
	res, tr := e.Explain("Wifi down", "internet broken in the building for days")

	if res.Category != "Infrastructure" {
		t.Fatalf("Category = %s, want Infrastructure", res.Category)
	}
	best := 0.0
	for _, s := range tr.Scores {
		if s > best {
			best = s
		}
	}
	if tr.Scores[res.Category] != best {
		t.Errorf("winner score %v is not the maximum %v", tr.Scores[res.Category], best)
	}
	if len(tr.Hits["Infrastructure"]) == 0 {
		t.Error("expected hits for Infrastructure")
	}

	sum := 0.0
	for _, s := range tr.PrioritySignals {
		sum += s.Weight
	}
	if sum != tr.PriorityScore {
		t.Errorf("priority signals sum to %v, score is %v", sum, tr.PriorityScore)
	}

	raw := 0.0
	for _, c := range tr.SentimentContributions {
		raw += c.Weight
	}
	if raw != tr.SentimentRaw {
		t.Errorf("sentiment contributions sum to %v, raw is %v", raw, tr.SentimentRaw)
	}
}

func TestTagLimitOption(t *testing.T) {
	e := New(Options{TagLimit: 2})
	got := e.Analyze("bus hostel wifi exam", "")
	if diff := cmp.Diff([]string{"bus", "hostel"}, got.Tags); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}
}

func TestResultJSON(t *testing.T) {
	data, err := json.Marshal(Analyze("", ""))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`"category":"Others"`,
		`"confidence":0.5`,
		`"priority":"Low"`,
		`"label":"Neutral"`,
		`"assigned_dept":"Student Affairs Office"`,
		`"tags":[]`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("JSON %s missing %s", data, want)
		}
	}
}

func TestTagString(t *testing.T) {
	r := Result{Tags: []string{"bus", "late", "driver"}}
	if got := r.TagString(); got != "bus,late,driver" {
		t.Errorf("TagString() = %q", got)
	}
	if got := (Result{}).TagString(); got != "" {
		t.Errorf("empty TagString() = %q", got)
	}
}

func TestAnalyzeLogsAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := New(Options{Logger: zap.New(core)})

	e.Analyze("hostel", "water")

	entries := logs.FilterMessage("analyzed report").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	if entries[0].Level != zapcore.DebugLevel {
		t.Errorf("logged at %s, want debug", entries[0].Level)
	}
	if got := entries[0].ContextMap()["category"]; got != "Hostel" {
		t.Errorf("logged category %v, want Hostel", got)
	}
}
