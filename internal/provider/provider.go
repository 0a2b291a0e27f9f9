package provider

import (
	"context"

	"github.com/ppiankov/truthlens/internal/normalize"
)

// Input is the analyzable content handed to a provider. Title is empty
// when the input was raw text rather than a resolved article.
type Input struct {
	Text  string
	Title string
}

// Provider is a single external (or local) service capable of producing
// a credibility candidate from text. Implementations either return a
// candidate ready for normalization or fail with *Error; they never
// normalize themselves. Adding a provider to the fallback chain means
// adding one implementation, not touching the orchestrator.
type Provider interface {
	// Name returns the provider name for logging and diagnostics
	Name() string

	// Analyze produces a raw credibility candidate for the input
	Analyze(ctx context.Context, in Input) (normalize.Candidate, error)
}
