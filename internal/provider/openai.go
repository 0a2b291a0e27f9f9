package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/truthlens/internal/model"
	"github.com/ppiankov/truthlens/internal/normalize"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenAI is the secondary AI provider. A Kind tag in configuration
// selects the backing service (OpenAI proper or an OpenAI-compatible
// OpenRouter deployment) instead of sniffing the key prefix.
type OpenAI struct {
	client      *openai.Client
	name        string
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewOpenAI creates the secondary AI provider from configuration.
func NewOpenAI(cfg model.ProviderConfig) (*OpenAI, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, newError("openai", KindConfiguration, fmt.Errorf("API key is required"))
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	name := "openai"
	modelName := cfg.OpenAIModel

	switch cfg.OpenAIKind {
	case model.OpenAIKindOpenRouter:
		name = "openrouter"
		clientConfig.BaseURL = openRouterBaseURL
		if modelName == "" {
			modelName = "qwen/qwen-2.5-72b-instruct"
		}
	default:
		if modelName == "" {
			modelName = openai.GPT3Dot5Turbo
		}
	}
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}

	return &OpenAI{
		client:      openai.NewClientWithConfig(clientConfig),
		name:        name,
		model:       modelName,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		timeout:     timeout,
	}, nil
}

// Name returns the provider name
func (p *OpenAI) Name() string { return p.name }

// Analyze runs the analysis prompt through the chat completions API and
// extracts the JSON candidate from the answer.
func (p *OpenAI) Analyze(ctx context.Context, in Input) (normalize.Candidate, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(in.Title, in.Text),
			},
		},
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return normalize.Candidate{}, newError(p.Name(), KindTransport, err)
	}
	if len(resp.Choices) == 0 {
		return normalize.Candidate{}, newError(p.Name(), KindMalformed, fmt.Errorf("no choices in response"))
	}

	candidate, err := normalize.ParseCandidate(resp.Choices[0].Message.Content)
	if err != nil {
		return normalize.Candidate{}, newError(p.Name(), KindMalformed, err)
	}
	return candidate, nil
}
