package sentiment

import (
	"strings"
	"testing"

	"github.com/cognicore/triage/pkg/triage/lexicon"
	"github.com/google/go-cmp/cmp"
)

func TestAnalyze(t *testing.T) {
	a := New(lexicon.Default())

	tests := []struct {
		name        string
		title, desc string
		score       float64
		label       Label
	}{
		{"empty", "", "", 0, Neutral},
		{"one negative word", "bad", "", -0.2, Negative},
		{"one positive word", "", "good", 0.2, Neutral},
		{"intensified negative", "", "extremely bad", -0.3, Negative},
		{"three negatives", "terrible", "awful and useless", -0.6, VeryNegative},
		{"positive band", "", "great and helpful service", 0.4, Positive},
		{"clamped", "worst", "bad terrible horrible awful disgusting pathetic", -1, VeryNegative},
		{"clamped positive", "", "good great excellent wonderful amazing helpful", 1, VeryPositive},
		{"mixed cancels", "good", "bad", 0, Neutral},
		{"hostel flooding", "URGENT", "This is an emergency, water flooding the hostel room immediately!!!", -0.4, Negative},
		{"minor suggestion", "minor suggestion", "It would be nice to have better lighting sometimes", 0.2, Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.title, tt.desc)
			if got.Score != tt.score {
				t.Errorf("Score = %v, want %v (contributions %v)", got.Score, tt.score, got.Contributions)
			}
			if got.Label != tt.label {
				t.Errorf("Label = %q, want %q", got.Label, tt.label)
			}
		})
	}
}

func TestIntensifierScalesNextWord(t *testing.T) {
	a := New(lexicon.Default())

	plain := a.Analyze("", "bad")
	boosted := a.Analyze("", "extremely bad")
	if len(plain.Contributions) != 1 || len(boosted.Contributions) != 1 {
		t.Fatalf("expected one contribution each, got %v and %v", plain.Contributions, boosted.Contributions)
	}
	if got, want := boosted.Contributions[0].Weight, plain.Contributions[0].Weight*1.5; got != want {
		t.Errorf("intensified weight = %v, want %v", got, want)
	}
	if !boosted.Contributions[0].Intensified {
		t.Error("contribution should be marked intensified")
	}
}

func TestIntensifierScope(t *testing.T) {
	a := New(lexicon.Default())

	tests := []struct {
		name string
		text string
		want []Contribution
	}{
		{"applies to next token only", "very bad bad", []Contribution{
			{Term: "bad", Weight: -1.5, Intensified: true},
			{Term: "bad", Weight: -1},
		}},
		{"cleared by neutral word", "very slow bad", []Contribution{
			{Term: "bad", Weight: -1},
		}},
		{"consecutive intensifiers do not stack", "really very bad", []Contribution{
			{Term: "bad", Weight: -1.5, Intensified: true},
		}},
		{"positive words too", "really good", []Contribution{
			{Term: "good", Weight: 1.5, Intensified: true},
		}},
		{"short tokens are dropped, not neutral", "very is bad", []Contribution{
			{Term: "bad", Weight: -1.5, Intensified: true},
		}},
		{"trailing intensifier adds nothing", "bad very", []Contribution{
			{Term: "bad", Weight: -1},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze("", tt.text)
			if diff := cmp.Diff(tt.want, got.Contributions); diff != "" {
				t.Errorf("Contributions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		score   float64
		label   Label
		urgency string
	}{
		{-1, VeryNegative, "High Urgency"},
		{-0.6, VeryNegative, "High Urgency"},
		{-0.59, Negative, "Medium Urgency"},
		{-0.2, Negative, "Medium Urgency"},
		{0, Neutral, "Normal"},
		{0.2, Neutral, "Normal"},
		{0.21, Positive, "Low Urgency"},
		{0.6, Positive, "Low Urgency"},
		{0.61, VeryPositive, "Minimal Urgency"},
		{1, VeryPositive, "Minimal Urgency"},
	}
	for _, tt := range tests {
		b := BandFor(tt.score)
		if b.Label != tt.label || b.Urgency != tt.urgency {
			t.Errorf("BandFor(%v) = %s/%s, want %s/%s", tt.score, b.Label, b.Urgency, tt.label, tt.urgency)
		}
		if b.Emoji == "" {
			t.Errorf("BandFor(%v) has no emoji", tt.score)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	a := New(lexicon.Default())
	inputs := []string{
		strings.Repeat("extremely terrible ", 40),
		strings.Repeat("really excellent ", 40),
		"", "nothing to see here",
	}
	for _, in := range inputs {
		got := a.Analyze(in, in)
		if got.Score < -1 || got.Score > 1 {
			t.Errorf("score %v out of [-1, 1]", got.Score)
		}
	}
}
