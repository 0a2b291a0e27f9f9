package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/truthlens/internal/cache"
	"github.com/ppiankov/truthlens/internal/fetch"
	"github.com/ppiankov/truthlens/internal/news"
)

var urlPattern = regexp.MustCompile(`^https?://\S+$`)

// IsURL reports whether the trimmed input looks like an http(s) URL.
func IsURL(input string) bool {
	return urlPattern.MatchString(strings.TrimSpace(input))
}

// Content is the analyzable text resolved from user input. SourceURL is
// set only when the input was a URL.
type Content struct {
	Text      string `json:"text"`
	Title     string `json:"title"`
	SourceURL string `json:"source_url,omitempty"`
}

// Resolver turns user input (raw text or a URL) into analyzable
// content. URL content is resolved by a news-search lookup first, then
// a generic fetch-and-extract; when both fail the request fails, since
// analyzing a bare URL string as article text would produce meaningless
// results.
type Resolver struct {
	newsClient    *news.Client // nil when NewsAPI is not configured
	fetcher       *fetch.Fetcher
	scrapeEnabled bool
	maxChars      int
	contentCache  cache.Cache // nil disables caching
	cacheTTL      time.Duration
	log           *logrus.Logger
}

// Options configures a Resolver.
type Options struct {
	NewsClient    *news.Client
	Fetcher       *fetch.Fetcher
	ScrapeEnabled bool
	MaxChars      int
	Cache         cache.Cache
	CacheTTL      time.Duration
	Log           *logrus.Logger
}

// New creates a Resolver.
func New(opts Options) *Resolver {
	log := opts.Log
	if log == nil {
		log = logrus.New()
	}
	return &Resolver{
		newsClient:    opts.NewsClient,
		fetcher:       opts.Fetcher,
		scrapeEnabled: opts.ScrapeEnabled,
		maxChars:      opts.MaxChars,
		contentCache:  opts.Cache,
		cacheTTL:      opts.CacheTTL,
		log:           log,
	}
}

// Resolve decides whether the input is a URL and obtains analyzable
// content accordingly. Raw text passes through with an empty title.
func (r *Resolver) Resolve(ctx context.Context, input string) (*Content, error) {
	input = strings.TrimSpace(input)
	if !IsURL(input) {
		return &Content{Text: input}, nil
	}
	return r.resolveURL(ctx, input)
}

func (r *Resolver) resolveURL(ctx context.Context, rawURL string) (*Content, error) {
	if r.contentCache != nil {
		if data, found := r.contentCache.Get(cache.Key(rawURL)); found {
			var content Content
			if err := json.Unmarshal(data, &content); err == nil {
				return &content, nil
			}
		}
	}

	if r.newsClient != nil {
		if content, err := r.fromNewsSearch(ctx, rawURL); err == nil {
			r.store(rawURL, content)
			return content, nil
		} else {
			r.log.WithError(err).Debug("news-search content lookup failed")
		}
	}

	if r.scrapeEnabled {
		if content, err := r.fromScrape(ctx, rawURL); err == nil {
			r.store(rawURL, content)
			return content, nil
		} else {
			r.log.WithError(err).Debug("scrape content lookup failed")
		}
	}

	return nil, fmt.Errorf("resolve %s: unable to fetch article content from any source", rawURL)
}

func (r *Resolver) fromNewsSearch(ctx context.Context, rawURL string) (*Content, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}

	article, err := r.newsClient.TopByDomain(ctx, parsed.Hostname())
	if err != nil {
		return nil, err
	}

	text := article.Content
	if text == "" {
		text = article.Description
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("article for %s has no content", parsed.Hostname())
	}

	return &Content{
		Text:      text,
		Title:     article.Title,
		SourceURL: rawURL,
	}, nil
}

func (r *Resolver) fromScrape(ctx context.Context, rawURL string) (*Content, error) {
	result, err := r.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	article, err := fetch.ExtractArticle(result.HTML, result.FinalURL, r.maxChars)
	if err != nil {
		return nil, err
	}

	return &Content{
		Text:      article.Content,
		Title:     article.Title,
		SourceURL: rawURL,
	}, nil
}

func (r *Resolver) store(rawURL string, content *Content) {
	if r.contentCache == nil {
		return
	}
	data, err := json.Marshal(content)
	if err != nil {
		return
	}
	if err := r.contentCache.Set(cache.Key(rawURL), data, r.cacheTTL); err != nil {
		r.log.WithError(err).Debug("cache resolved content")
	}
}
