package normalize

import (
	"math"
	"testing"

	"github.com/ppiankov/truthlens/internal/model"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "bare object",
			input: `{"label": "Fake"}`,
			want:  `{"label": "Fake"}`,
			ok:    true,
		},
		{
			name:  "fenced json",
			input: "```json\n{\"label\": \"Trusted\"}\n```",
			want:  `{"label": "Trusted"}`,
			ok:    true,
		},
		{
			name:  "fenced without language",
			input: "```\n{\"label\": \"Biased\"}\n```",
			want:  `{"label": "Biased"}`,
			ok:    true,
		},
		{
			name:  "object with surrounding prose",
			input: "Here is my analysis:\n{\"label\": \"Fake\", \"confidence\": 0.9}\nLet me know if you need more.",
			want:  `{"label": "Fake", "confidence": 0.9}`,
			ok:    true,
		},
		{
			name:  "nested object",
			input: `{"a": {"b": 1}, "c": 2}`,
			want:  `{"a": {"b": 1}, "c": 2}`,
			ok:    true,
		},
		{
			name:  "brace inside string",
			input: `{"reasoning": "uses } and { freely", "label": "Trusted"}`,
			want:  `{"reasoning": "uses } and { freely", "label": "Trusted"}`,
			ok:    true,
		},
		{
			name:  "no object",
			input: "I cannot analyze this article.",
			ok:    false,
		},
		{
			name:  "unbalanced",
			input: `{"label": "Fake"`,
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.input)
			if ok != tt.ok {
				t.Fatalf("ExtractJSON ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ExtractJSON = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCandidate(t *testing.T) {
	text := "```json\n{\"label\": \"Fake\", \"confidence\": 0.92, \"keywords\": [\"shocking\"]}\n```"
	c, err := ParseCandidate(text)
	if err != nil {
		t.Fatalf("ParseCandidate failed: %v", err)
	}
	if c.Label != "Fake" {
		t.Errorf("label = %q, want Fake", c.Label)
	}
	if conf, ok := c.Confidence.(float64); !ok || conf != 0.92 {
		t.Errorf("confidence = %v, want 0.92", c.Confidence)
	}
	if len(c.Keywords) != 1 || c.Keywords[0] != "shocking" {
		t.Errorf("keywords = %v", c.Keywords)
	}

	if _, err := ParseCandidate("no json here"); err == nil {
		t.Error("expected error for text without JSON")
	}
}

func TestNormalize_Totality(t *testing.T) {
	tests := []struct {
		name           string
		candidate      Candidate
		wantLabel      model.Label
		wantConfidence float64
	}{
		{
			name:           "well formed",
			candidate:      Candidate{Label: "Fake", Confidence: 0.9},
			wantLabel:      model.LabelFake,
			wantConfidence: 0.9,
		},
		{
			name:           "empty candidate",
			candidate:      Candidate{},
			wantLabel:      model.LabelBiased,
			wantConfidence: 0.5,
		},
		{
			name:           "missing confidence",
			candidate:      Candidate{Label: "Trusted"},
			wantLabel:      model.LabelBiased,
			wantConfidence: 0.5,
		},
		{
			name:           "missing label",
			candidate:      Candidate{Confidence: 0.8},
			wantLabel:      model.LabelBiased,
			wantConfidence: 0.5,
		},
		{
			name:           "string confidence",
			candidate:      Candidate{Label: "Trusted", Confidence: "0.85"},
			wantLabel:      model.LabelTrusted,
			wantConfidence: 0.85,
		},
		{
			name:           "garbage string confidence",
			candidate:      Candidate{Label: "Trusted", Confidence: "very high"},
			wantLabel:      model.LabelBiased,
			wantConfidence: 0.5,
		},
		{
			name:           "confidence above one clamps",
			candidate:      Candidate{Label: "Fake", Confidence: 1.7},
			wantLabel:      model.LabelFake,
			wantConfidence: 1,
		},
		{
			name:           "negative confidence clamps",
			candidate:      Candidate{Label: "Fake", Confidence: -0.2},
			wantLabel:      model.LabelFake,
			wantConfidence: 0,
		},
		{
			name:           "synonym label",
			candidate:      Candidate{Label: "misinformation", Confidence: 0.75},
			wantLabel:      model.LabelFake,
			wantConfidence: 0.75,
		},
		{
			name:           "unknown label maps to biased",
			candidate:      Candidate{Label: "satire", Confidence: 0.6},
			wantLabel:      model.LabelBiased,
			wantConfidence: 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.candidate)

			if got.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", got.Label, tt.wantLabel)
			}
			if math.Abs(got.Confidence-tt.wantConfidence) > 1e-9 {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}

			// Invariants hold for every input.
			if got.Confidence < 0 || got.Confidence > 1 {
				t.Errorf("confidence %v out of range", got.Confidence)
			}
			for _, p := range []float64{got.Probabilities.Fake, got.Probabilities.Biased, got.Probabilities.Trusted} {
				if p < 0 || p > 1 {
					t.Errorf("probability %v out of range", p)
				}
			}
			if got.Keywords == nil || got.RedFlags == nil || got.CredibilityIndicators == nil {
				t.Error("slices must never be nil")
			}
			if len(got.Keywords) > model.MaxKeywords {
				t.Errorf("keywords length %d exceeds cap", len(got.Keywords))
			}
			if got.Reasoning == "" {
				t.Error("reasoning must not be empty")
			}
		})
	}
}

func TestSkewProbabilities(t *testing.T) {
	tests := []struct {
		name       string
		label      model.Label
		confidence float64
		want       model.Probabilities
	}{
		{
			name:       "fake winner",
			label:      model.LabelFake,
			confidence: 0.9,
			want:       model.Probabilities{Fake: 0.9, Biased: 0.07, Trusted: 0.03},
		},
		{
			name:       "biased winner",
			label:      model.LabelBiased,
			confidence: 0.6,
			want:       model.Probabilities{Fake: 0.12, Biased: 0.6, Trusted: 0.28},
		},
		{
			name:       "trusted winner",
			label:      model.LabelTrusted,
			confidence: 0.8,
			want:       model.Probabilities{Fake: 0.04, Biased: 0.06, Trusted: 0.8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SkewProbabilities(tt.label, tt.confidence)
			if math.Abs(got.Fake-tt.want.Fake) > 1e-9 ||
				math.Abs(got.Biased-tt.want.Biased) > 1e-9 ||
				math.Abs(got.Trusted-tt.want.Trusted) > 1e-9 {
				t.Errorf("SkewProbabilities = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalize_ProviderProbabilitiesPreserved(t *testing.T) {
	c := Candidate{
		Label:      "Fake",
		Confidence: 0.7,
		Probabilities: &model.Probabilities{
			Fake:    0.7,
			Biased:  0.2,
			Trusted: 0.1,
		},
	}
	got := Normalize(c)
	if got.Probabilities.Fake != 0.7 || got.Probabilities.Biased != 0.2 || got.Probabilities.Trusted != 0.1 {
		t.Errorf("probabilities = %+v, want provider values preserved", got.Probabilities)
	}
}

func TestFallback(t *testing.T) {
	got := Fallback()

	if got.Label != model.LabelBiased {
		t.Errorf("label = %q, want %q", got.Label, model.LabelBiased)
	}
	if got.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5", got.Confidence)
	}
	want := model.Probabilities{Fake: 0.3, Biased: 0.5, Trusted: 0.2}
	if got.Probabilities != want {
		t.Errorf("probabilities = %+v, want %+v", got.Probabilities, want)
	}
	if got.Reasoning != "Unable to complete analysis" {
		t.Errorf("reasoning = %q", got.Reasoning)
	}
	if got.Keywords == nil || len(got.Keywords) != 0 {
		t.Errorf("keywords = %v, want empty non-nil", got.Keywords)
	}
}

func TestDedupeTruncate(t *testing.T) {
	in := []string{"clickbait", "clickbait", "  shocking  ", "", "secret", "exposed", "hoax", "scam", "conspiracy", "miracle", "unbelievable", "banned"}
	got := dedupeTruncate(in, model.MaxKeywords)

	if len(got) != model.MaxKeywords {
		t.Fatalf("length = %d, want %d", len(got), model.MaxKeywords)
	}
	if got[0] != "clickbait" || got[1] != "shocking" {
		t.Errorf("unexpected ordering: %v", got)
	}
	seen := make(map[string]bool)
	for _, k := range got {
		if seen[k] {
			t.Errorf("duplicate %q survived", k)
		}
		seen[k] = true
	}
}
