package model

import (
	"strings"
	"time"
)

// Bounds on collection fields of AnalysisResult. Providers can return
// arbitrarily long lists; these caps keep the response and any persisted
// history small.
const (
	MaxKeywords        = 8
	MaxSimilarArticles = 3
)

// Label is the closed set of credibility verdicts
type Label string

const (
	LabelTrusted Label = "Trusted"
	LabelBiased  Label = "Biased"
	LabelFake    Label = "Fake"
)

// ParseLabel coerces an arbitrary provider label onto the closed set.
// Unrecognized values map to Biased, the deliberately uncertain middle,
// so a misbehaving provider can never introduce a fourth verdict.
func ParseLabel(raw string) Label {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "fake", "false", "fabricated", "misinformation", "unreliable":
		return LabelFake
	case "trusted", "true", "credible", "reliable", "real":
		return LabelTrusted
	default:
		return LabelBiased
	}
}

// Probabilities holds the per-label likelihood estimates. Providers
// estimate each independently, so the values are clamped to [0,1] but
// need not sum to 1.
type Probabilities struct {
	Fake    float64 `json:"fake"`
	Biased  float64 `json:"biased"`
	Trusted float64 `json:"trusted"`
}

// SimilarArticle is a cross-referenced article attached during result
// enrichment.
type SimilarArticle struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
}

// AnalysisResult is the canonical analysis output. Every field is always
// populated: absent data becomes an empty slice, a zero probability or a
// generic reasoning string, never null.
type AnalysisResult struct {
	Label                 Label            `json:"label"`
	Confidence            float64          `json:"confidence"`
	Probabilities         Probabilities    `json:"probabilities"`
	Keywords              []string         `json:"keywords"`
	Reasoning             string           `json:"reasoning"`
	RedFlags              []string         `json:"red_flags"`
	CredibilityIndicators []string         `json:"credibility_indicators"`
	SimilarArticles       []SimilarArticle `json:"similarArticles,omitempty"`
	Timestamp             time.Time        `json:"timestamp"`
}

// AnalysisRecord pairs one AnalysisResult with the input that produced
// it. Records live in the history store until the user clears them.
type AnalysisRecord struct {
	ID        string         `json:"id"`
	Input     string         `json:"input"`
	Result    AnalysisResult `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}
