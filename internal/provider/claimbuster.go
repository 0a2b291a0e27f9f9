package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/truthlens/internal/model"
	"github.com/ppiankov/truthlens/internal/normalize"
)

// ClaimBuster scores individual claims in the text through an external
// claim-scoring service and collapses the per-claim scores into a
// single verdict.
type ClaimBuster struct {
	baseURL     string
	fakeAbove   float64
	biasedAbove float64
	httpClient  *http.Client
}

type claimBusterResponse struct {
	Results []struct {
		Text  string  `json:"text"`
		Score float64 `json:"score"`
	} `json:"results"`
}

// NewClaimBuster creates the claim-scoring provider from configuration.
func NewClaimBuster(cfg model.ProviderConfig) *ClaimBuster {
	baseURL := cfg.ClaimScoringBaseURL
	if baseURL == "" {
		baseURL = "https://idir.uta.edu/claimbuster/api/v2"
	}
	fakeAbove := cfg.FakeAbove
	if fakeAbove == 0 {
		fakeAbove = 0.7
	}
	biasedAbove := cfg.BiasedAbove
	if biasedAbove == 0 {
		biasedAbove = 0.4
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &ClaimBuster{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		fakeAbove:   fakeAbove,
		biasedAbove: biasedAbove,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name
func (p *ClaimBuster) Name() string { return "claimbuster" }

// Analyze averages the per-claim scores into a scalar in [0,1] and maps
// it to a label by threshold. The upper bounds are exclusive: a score of
// exactly fakeAbove maps to Biased and exactly biasedAbove to Trusted.
// Confidence represents certainty about the assigned label, so for
// Trusted it is 1-score rather than the raw fake-likelihood.
func (p *ClaimBuster) Analyze(ctx context.Context, in Input) (normalize.Candidate, error) {
	endpoint := p.baseURL + "/score/text/" + url.PathEscape(in.Text)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return normalize.Candidate{}, newError(p.Name(), KindTransport, fmt.Errorf("create request: %w", err))
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return normalize.Candidate{}, newError(p.Name(), KindTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return normalize.Candidate{}, newError(p.Name(), KindTransport, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return normalize.Candidate{}, newError(p.Name(), KindTransport, fmt.Errorf("read body: %w", err))
	}

	var apiResp claimBusterResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return normalize.Candidate{}, newError(p.Name(), KindMalformed, fmt.Errorf("decode response: %w", err))
	}

	// Averaging over zero claims would make the confidence NaN.
	if len(apiResp.Results) == 0 {
		return normalize.Candidate{}, newError(p.Name(), KindMalformed, fmt.Errorf("no claims scored"))
	}

	var sum float64
	keywords := make([]string, 0, len(apiResp.Results))
	for _, claim := range apiResp.Results {
		sum += claim.Score
		keywords = append(keywords, truncateClaim(claim.Text))
	}
	avg := sum / float64(len(apiResp.Results))

	var label model.Label
	confidence := avg
	switch {
	case avg > p.fakeAbove:
		label = model.LabelFake
	case avg > p.biasedAbove:
		label = model.LabelBiased
	default:
		label = model.LabelTrusted
		confidence = 1 - avg
	}

	return normalize.Candidate{
		Label:      string(label),
		Confidence: confidence,
		Reasoning:  fmt.Sprintf("Averaged claim score %.2f over %d claims", avg, len(apiResp.Results)),
		Keywords:   keywords,
		Probabilities: &model.Probabilities{
			Fake:    avg,
			Biased:  math.Abs(0.5 - avg),
			Trusted: 1 - avg,
		},
	}, nil
}

// truncateClaim trims a claim text to a short keyword-sized prefix.
func truncateClaim(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > 50 {
		text = text[:50]
	}
	return text
}
