package model

import "time"

// OpenAIKind selects which OpenAI-compatible backend the secondary AI
// provider talks to. An explicit tag replaces sniffing the key prefix.
type OpenAIKind string

const (
	OpenAIKindOpenAI     OpenAIKind = "openai"
	OpenAIKindOpenRouter OpenAIKind = "openrouter"
)

// Config is the complete TruthLens configuration. It is built once at
// startup and passed by value; nothing mutates it afterwards.
type Config struct {
	Providers ProviderConfig  `yaml:"providers"`
	HTTP      HTTPConfig      `yaml:"http"`
	Scrape    ScrapeConfig    `yaml:"scrape"`
	Cache     CacheConfig     `yaml:"cache"`
	Heuristic HeuristicConfig `yaml:"heuristic"`
	History   HistoryConfig   `yaml:"history"`
	Server    ServerConfig    `yaml:"server"`
	LogLevel  string          `yaml:"log_level"`
}

// ProviderConfig holds credentials and tuning for the external
// providers. An empty API key disables that provider in the fallback
// chain without error.
type ProviderConfig struct {
	GeminiAPIKey  string `yaml:"gemini_api_key"`
	GeminiBaseURL string `yaml:"gemini_base_url"`
	GeminiModel   string `yaml:"gemini_model"`

	OpenAIAPIKey  string     `yaml:"openai_api_key"`
	OpenAIKind    OpenAIKind `yaml:"openai_kind"`
	OpenAIBaseURL string     `yaml:"openai_base_url"`
	OpenAIModel   string     `yaml:"openai_model"`

	ClaimScoringEnabled bool   `yaml:"claim_scoring_enabled"`
	ClaimScoringBaseURL string `yaml:"claim_scoring_base_url"`
	// Claim-score label thresholds. Upper bounds are exclusive: a score
	// of exactly FakeAbove maps to Biased and exactly BiasedAbove to
	// Trusted.
	FakeAbove   float64 `yaml:"fake_above"`
	BiasedAbove float64 `yaml:"biased_above"`

	NewsAPIKey     string `yaml:"newsapi_key"`
	NewsAPIBaseURL string `yaml:"newsapi_base_url"`

	// FreeTierOnly drops the metered generative providers from the
	// chain, leaving claim scoring and the local heuristic.
	FreeTierOnly bool `yaml:"free_tier_only"`

	// Generative tuning. Low temperature favors terse, deterministic
	// output.
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`

	Timeout time.Duration `yaml:"timeout"`
}

// HTTPConfig configures outbound content fetching.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	MaxRedirects int           `yaml:"max_redirects"`
}

// ScrapeConfig configures the generic fetch-and-extract step of the
// content resolver.
type ScrapeConfig struct {
	Enabled         bool    `yaml:"enabled"`
	RespectRobots   bool    `yaml:"respect_robots"`
	RatePerDomain   float64 `yaml:"rate_per_domain"`
	Burst           int     `yaml:"burst"`
	MaxContentChars int     `yaml:"max_content_chars"`
}

// CacheConfig configures caching of resolved URL content.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// HeuristicConfig tunes the local keyword heuristic. Confidence is the
// winning label's base plus share*bonus, capped at max. Fake and
// Trusted verdicts start higher than Biased: a strong signal either way
// is more informative than hedged language.
type HeuristicConfig struct {
	FakeBase      float64 `yaml:"fake_base"`
	BiasedBase    float64 `yaml:"biased_base"`
	TrustedBase   float64 `yaml:"trusted_base"`
	Bonus         float64 `yaml:"bonus"`
	MaxConfidence float64 `yaml:"max_confidence"`
}

// HistoryConfig configures server-side persistence of analysis records.
type HistoryConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Path       string `yaml:"path"`
	MaxEntries int    `yaml:"max_entries"`
}

// ServerConfig configures the HTTP analysis server.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultConfig returns sensible defaults. Remote providers stay
// disabled until their credentials are supplied; the keyword heuristic
// alone still produces valid results.
func DefaultConfig() Config {
	return Config{
		Providers: ProviderConfig{
			GeminiBaseURL:       "https://generativelanguage.googleapis.com",
			GeminiModel:         "gemini-2.0-flash",
			OpenAIKind:          OpenAIKindOpenAI,
			ClaimScoringEnabled: true,
			ClaimScoringBaseURL: "https://idir.uta.edu/claimbuster/api/v2",
			FakeAbove:           0.7,
			BiasedAbove:         0.4,
			NewsAPIBaseURL:      "https://newsapi.org/v2",
			MaxTokens:           500,
			Temperature:         0.3,
			Timeout:             10 * time.Second,
		},
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "TruthLens/1.0 (+https://github.com/ppiankov/truthlens)",
			MaxBodyBytes: 2_000_000,
			MaxRedirects: 3,
		},
		Scrape: ScrapeConfig{
			Enabled:         true,
			RespectRobots:   true,
			RatePerDomain:   1,
			Burst:           3,
			MaxContentChars: 5000,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             15 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Heuristic: HeuristicConfig{
			FakeBase:      0.7,
			BiasedBase:    0.6,
			TrustedBase:   0.7,
			Bonus:         0.35,
			MaxConfidence: 0.95,
		},
		History: HistoryConfig{
			Enabled:    false,
			Path:       "history.json",
			MaxEntries: 100,
		},
		Server: ServerConfig{
			Addr:            ":3001",
			RequestTimeout:  60 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		LogLevel: "info",
	}
}
