package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/truthlens/internal/model"
	"github.com/ppiankov/truthlens/internal/normalize"
)

// Fixed indicator lists for the local heuristic. Matching is
// case-insensitive substring search over the lowercased text.
var (
	suspiciousTerms = []string{
		"shocking", "unbelievable", "doctors hate", "secret",
		"miracle cure", "they don't want you to know", "click here",
		"amazing discovery", "scientists discover", "breakthrough",
		"revolutionary", "banned", "suppressed", "hidden truth",
		"exposed", "revealed",
	}
	hedgingTerms = []string{
		"allegedly", "reportedly", "sources say", "rumored", "claims",
		"controversial", "disputed", "unconfirmed", "speculation",
	}
	credibleTerms = []string{
		"according to", "study shows", "research indicates",
		"data reveals", "official statement", "confirmed by",
		"peer-reviewed", "published in",
	}
)

// Heuristic is the terminal fallback provider. It scores the text
// against the three fixed indicator lists, calls no external service
// and never fails.
type Heuristic struct {
	bases map[model.Label]float64
	bonus float64
	max   float64
}

// NewHeuristic creates the keyword heuristic from configuration.
func NewHeuristic(cfg model.HeuristicConfig) *Heuristic {
	bases := map[model.Label]float64{
		model.LabelFake:    defaultBase(cfg.FakeBase, 0.7),
		model.LabelBiased:  defaultBase(cfg.BiasedBase, 0.6),
		model.LabelTrusted: defaultBase(cfg.TrustedBase, 0.7),
	}
	bonus := cfg.Bonus
	if bonus == 0 {
		bonus = 0.35
	}
	max := cfg.MaxConfidence
	if max == 0 {
		max = 0.95
	}
	return &Heuristic{bases: bases, bonus: bonus, max: max}
}

func defaultBase(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

// Name returns the provider name
func (p *Heuristic) Name() string { return "heuristic" }

// Analyze labels the text by the indicator list with the highest match
// count. Ties break in the fixed precedence Fake > Biased > Trusted;
// with no matches at all the verdict is Biased at base confidence.
// Confidence starts from the winning label's base and adds a bonus
// proportional to the winning list's share of all matches, capped.
func (p *Heuristic) Analyze(ctx context.Context, in Input) (normalize.Candidate, error) {
	lower := strings.ToLower(in.Title + " " + in.Text)

	suspicious := matchTerms(lower, suspiciousTerms)
	hedging := matchTerms(lower, hedgingTerms)
	credible := matchTerms(lower, credibleTerms)
	total := len(suspicious) + len(hedging) + len(credible)

	var label model.Label
	var winning int
	switch {
	case len(suspicious) > 0 && len(suspicious) >= len(hedging) && len(suspicious) >= len(credible):
		label = model.LabelFake
		winning = len(suspicious)
	case len(hedging) > 0 && len(hedging) >= len(credible):
		label = model.LabelBiased
		winning = len(hedging)
	case len(credible) > 0:
		label = model.LabelTrusted
		winning = len(credible)
	default:
		label = model.LabelBiased
	}

	confidence := p.bases[label]
	if total > 0 {
		confidence += float64(winning) / float64(total) * p.bonus
	}
	if confidence > p.max {
		confidence = p.max
	}

	keywords := make([]string, 0, total)
	keywords = append(keywords, suspicious...)
	keywords = append(keywords, hedging...)
	keywords = append(keywords, credible...)

	return normalize.Candidate{
		Label:      string(label),
		Confidence: confidence,
		Reasoning: fmt.Sprintf(
			"Keyword analysis found %d suspicious, %d hedging and %d credibility indicators",
			len(suspicious), len(hedging), len(credible)),
		Keywords: keywords,
		RedFlags: suspicious,
	}, nil
}

func matchTerms(lower string, terms []string) []string {
	var matched []string
	for _, term := range terms {
		if strings.Contains(lower, term) {
			matched = append(matched, term)
		}
	}
	return matched
}
