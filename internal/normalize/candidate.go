package normalize

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/truthlens/internal/model"
)

// Candidate is an unvalidated, provider-shaped result object before
// normalization. Confidence is left untyped because providers return it
// both as a number and as a numeric string.
type Candidate struct {
	Label                 string               `json:"label"`
	Confidence            interface{}          `json:"confidence"`
	Reasoning             string               `json:"reasoning"`
	Keywords              []string             `json:"keywords"`
	RedFlags              []string             `json:"red_flags"`
	CredibilityIndicators []string             `json:"credibility_indicators"`
	Probabilities         *model.Probabilities `json:"probabilities"`
}

// Generative models wrap their JSON answer in markdown code fences more
// often than not.
var fencePattern = regexp.MustCompile("```(?:json)?\n?|\n?```")

// ExtractJSON locates the first balanced {...} block in free-form text,
// after stripping any code fencing. Braces inside JSON strings are
// ignored. The second return value is false when no balanced block
// exists.
func ExtractJSON(text string) (string, bool) {
	cleaned := fencePattern.ReplaceAllString(text, "")

	start := strings.IndexByte(cleaned, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(cleaned); i++ {
		ch := cleaned[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return cleaned[start : i+1], true
			}
		}
	}
	return "", false
}

// ParseCandidate extracts and decodes the JSON object embedded in a
// generative model's free-text response. A response with no extractable
// object is a provider failure, not a normalization job.
func ParseCandidate(text string) (Candidate, error) {
	raw, ok := ExtractJSON(text)
	if !ok {
		return Candidate{}, fmt.Errorf("no JSON object in response")
	}

	var c Candidate
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Candidate{}, fmt.Errorf("decode candidate: %w", err)
	}
	return c, nil
}
