package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/truthlens/internal/model"
	"github.com/ppiankov/truthlens/internal/normalize"
)

// Gemini is the primary generative-model provider. It talks to the
// generateContent endpoint directly over JSON.
type Gemini struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float32
	httpClient  *http.Client
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float32 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float32 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NewGemini creates the Gemini provider from configuration.
func NewGemini(cfg model.ProviderConfig) (*Gemini, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, newError("gemini", KindConfiguration, fmt.Errorf("API key is required"))
	}

	baseURL := cfg.GeminiBaseURL
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	modelName := cfg.GeminiModel
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}

	return &Gemini{
		apiKey:      cfg.GeminiAPIKey,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		model:       modelName,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

// Name returns the provider name
func (p *Gemini) Name() string { return "gemini" }

// Analyze sends the analysis prompt to the generative endpoint and
// extracts the JSON candidate from the free-text answer.
func (p *Gemini) Analyze(ctx context.Context, in Input) (normalize.Candidate, error) {
	apiReq := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: BuildPrompt(in.Title, in.Text)}}},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:     p.temperature,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: p.maxTokens,
		},
	}

	payload, err := json.Marshal(apiReq)
	if err != nil {
		return normalize.Candidate{}, newError(p.Name(), KindMalformed, fmt.Errorf("marshal request: %w", err))
	}

	url := fmt.Sprintf("%s/v1/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return normalize.Candidate{}, newError(p.Name(), KindTransport, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return normalize.Candidate{}, newError(p.Name(), KindTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return normalize.Candidate{}, newError(p.Name(), KindTransport, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return normalize.Candidate{}, newError(p.Name(), KindTransport, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return normalize.Candidate{}, newError(p.Name(), KindMalformed, fmt.Errorf("decode response: %w", err))
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return normalize.Candidate{}, newError(p.Name(), KindMalformed, fmt.Errorf("no candidates in response"))
	}

	candidate, err := normalize.ParseCandidate(apiResp.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return normalize.Candidate{}, newError(p.Name(), KindMalformed, err)
	}
	return candidate, nil
}
