package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/ppiankov/truthlens/internal/model"
)

// Residual probability skew. When a label wins with confidence c, the
// remaining mass (1-c) splits across the other two labels with these
// fixed ratios. The constants are tuning policy preserved for parity
// with the reference behavior, not a law of the domain.
const (
	fakeResidualBiased  = 0.7
	fakeResidualTrusted = 0.3
	biasedResidualFake  = 0.3
	biasedResidualTrust = 0.7
	trustedResidualFake = 0.2
	trustedResidualBias = 0.3
)

// Normalize coerces a raw provider candidate into a canonical
// AnalysisResult. It is total: any malformed, partial or empty candidate
// still yields a fully populated result satisfying the invariants
// (label in the closed set, confidence and probabilities in [0,1],
// at most MaxKeywords keywords).
func Normalize(c Candidate) (res model.AnalysisResult) {
	defer func() {
		if recover() != nil {
			res = Fallback()
		}
	}()

	confidence, ok := coerceConfidence(c.Confidence)
	label := model.ParseLabel(c.Label)
	if strings.TrimSpace(c.Label) == "" || !ok {
		// No parseable verdict: report deliberate uncertainty rather
		// than false precision in either direction.
		label = model.LabelBiased
		confidence = 0.5
	}
	confidence = clamp01(confidence)

	var probabilities model.Probabilities
	if c.Probabilities != nil {
		probabilities = model.Probabilities{
			Fake:    clamp01(c.Probabilities.Fake),
			Biased:  clamp01(c.Probabilities.Biased),
			Trusted: clamp01(c.Probabilities.Trusted),
		}
	} else {
		probabilities = SkewProbabilities(label, confidence)
	}

	reasoning := strings.TrimSpace(c.Reasoning)
	if reasoning == "" {
		reasoning = "AI analysis completed"
	}

	return model.AnalysisResult{
		Label:                 label,
		Confidence:            confidence,
		Probabilities:         probabilities,
		Keywords:              dedupeTruncate(c.Keywords, model.MaxKeywords),
		Reasoning:             reasoning,
		RedFlags:              dedupeTruncate(c.RedFlags, model.MaxKeywords),
		CredibilityIndicators: dedupeTruncate(c.CredibilityIndicators, model.MaxKeywords),
	}
}

// Fallback is the "analysis unavailable" result: uncertain label,
// mid-range confidence, empty collections.
func Fallback() model.AnalysisResult {
	return model.AnalysisResult{
		Label:      model.LabelBiased,
		Confidence: 0.5,
		Probabilities: model.Probabilities{
			Fake:    0.3,
			Biased:  0.5,
			Trusted: 0.2,
		},
		Keywords:              []string{},
		Reasoning:             "Unable to complete analysis",
		RedFlags:              []string{},
		CredibilityIndicators: []string{},
	}
}

// SkewProbabilities derives a probability distribution from a bare
// label/confidence pair. The winning label takes the confidence; the
// residual splits with a fixed asymmetric ratio depending on which
// label won.
func SkewProbabilities(label model.Label, confidence float64) model.Probabilities {
	residual := 1 - confidence
	switch label {
	case model.LabelFake:
		return model.Probabilities{
			Fake:    confidence,
			Biased:  residual * fakeResidualBiased,
			Trusted: residual * fakeResidualTrusted,
		}
	case model.LabelBiased:
		return model.Probabilities{
			Fake:    residual * biasedResidualFake,
			Biased:  confidence,
			Trusted: residual * biasedResidualTrust,
		}
	default:
		return model.Probabilities{
			Fake:    residual * trustedResidualFake,
			Biased:  residual * trustedResidualBias,
			Trusted: confidence,
		}
	}
}

// coerceConfidence accepts the numeric shapes JSON decoding can
// produce, plus numeric strings like "0.85".
func coerceConfidence(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil && !math.IsNaN(f)
	default:
		return 0, false
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// dedupeTruncate removes duplicates and empty entries preserving order,
// then caps the slice. The result is never nil so it marshals as [].
func dedupeTruncate(items []string, max int) []string {
	out := make([]string, 0, max)
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
		if len(out) == max {
			break
		}
	}
	return out
}
