package analyzer

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/truthlens/internal/cache"
	"github.com/ppiankov/truthlens/internal/fetch"
	"github.com/ppiankov/truthlens/internal/model"
	"github.com/ppiankov/truthlens/internal/news"
	"github.com/ppiankov/truthlens/internal/normalize"
	"github.com/ppiankov/truthlens/internal/provider"
	"github.com/ppiankov/truthlens/internal/resolver"
)

// Analyzer drives one analysis end to end: resolve content, walk the
// provider fallback chain, normalize the winning candidate, enrich with
// similar articles. Provider calls cost money, so the chain is strictly
// sequential: a later provider runs only after the earlier one failed.
type Analyzer struct {
	chain      []provider.Provider
	resolver   *resolver.Resolver
	newsClient *news.Client // nil disables enrichment
	log        *logrus.Logger
}

// New builds an Analyzer from configuration. Providers missing their
// credential are left out of the chain; the keyword heuristic is always
// present as the terminal fallback, so the chain can never be empty.
func New(cfg model.Config, log *logrus.Logger) *Analyzer {
	if log == nil {
		log = logrus.New()
	}

	var chain []provider.Provider
	if cfg.Providers.GeminiAPIKey != "" && !cfg.Providers.FreeTierOnly {
		if p, err := provider.NewGemini(cfg.Providers); err == nil {
			chain = append(chain, p)
		} else {
			log.WithError(err).Warn("gemini provider disabled")
		}
	}
	if cfg.Providers.OpenAIAPIKey != "" && !cfg.Providers.FreeTierOnly {
		if p, err := provider.NewOpenAI(cfg.Providers); err == nil {
			chain = append(chain, p)
		} else {
			log.WithError(err).Warn("openai provider disabled")
		}
	}
	if cfg.Providers.ClaimScoringEnabled {
		chain = append(chain, provider.NewClaimBuster(cfg.Providers))
	}
	chain = append(chain, provider.NewHeuristic(cfg.Heuristic))

	var newsClient *news.Client
	if cfg.Providers.NewsAPIKey != "" {
		newsClient = news.NewClient(cfg.Providers.NewsAPIKey, cfg.Providers.NewsAPIBaseURL, cfg.Providers.Timeout)
	}

	var contentCache cache.Cache
	if cfg.Cache.Enabled {
		contentCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	fetcher := fetch.NewFetcher(fetch.Options{
		Timeout:       cfg.HTTP.Timeout,
		UserAgent:     cfg.HTTP.UserAgent,
		MaxBytes:      cfg.HTTP.MaxBodyBytes,
		MaxRedirects:  cfg.HTTP.MaxRedirects,
		RatePerDomain: cfg.Scrape.RatePerDomain,
		Burst:         cfg.Scrape.Burst,
		RespectRobots: cfg.Scrape.RespectRobots,
	})

	return &Analyzer{
		chain: chain,
		resolver: resolver.New(resolver.Options{
			NewsClient:    newsClient,
			Fetcher:       fetcher,
			ScrapeEnabled: cfg.Scrape.Enabled,
			MaxChars:      cfg.Scrape.MaxContentChars,
			Cache:         contentCache,
			CacheTTL:      cfg.Cache.TTL,
			Log:           log,
		}),
		newsClient: newsClient,
		log:        log,
	}
}

// Analyze resolves the input and produces a credibility verdict. The
// only error it can return is a failure to resolve URL content; every
// provider failure is absorbed by the fallback chain.
func (a *Analyzer) Analyze(ctx context.Context, input string) (model.AnalysisResult, error) {
	content, err := a.resolver.Resolve(ctx, input)
	if err != nil {
		return model.AnalysisResult{}, err
	}
	return a.analyzeContent(ctx, content), nil
}

func (a *Analyzer) analyzeContent(ctx context.Context, content *resolver.Content) model.AnalysisResult {
	in := provider.Input{Text: content.Text, Title: content.Title}

	var candidate normalize.Candidate
	for _, p := range a.chain {
		c, err := p.Analyze(ctx, in)
		if err != nil {
			a.log.WithError(err).Warnf("%s provider failed, trying next", p.Name())
			continue
		}
		a.log.Debugf("%s provider produced a candidate", p.Name())
		candidate = c
		break
	}
	// The heuristic is terminal and never fails, so by this point the
	// candidate is set.

	result := normalize.Normalize(candidate)
	result.Timestamp = time.Now().UTC()

	if a.newsClient != nil && content.Title != "" {
		result.SimilarArticles = a.similarArticles(ctx, content.Title)
	}
	return result
}

// similarArticles cross-references the title against a news search.
// Enrichment failure never invalidates the primary result; it degrades
// to no similar articles.
func (a *Analyzer) similarArticles(ctx context.Context, title string) []model.SimilarArticle {
	articles, err := a.newsClient.SearchSimilar(ctx, title, model.MaxSimilarArticles)
	if err != nil {
		a.log.WithError(err).Warn("similar-article enrichment failed")
		return nil
	}

	if len(articles) > model.MaxSimilarArticles {
		articles = articles[:model.MaxSimilarArticles]
	}
	similar := make([]model.SimilarArticle, 0, len(articles))
	for _, article := range articles {
		similar = append(similar, model.SimilarArticle{
			Title:       article.Title,
			Source:      article.Source.Name,
			URL:         article.URL,
			PublishedAt: article.PublishedAt,
		})
	}
	return similar
}
