package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://newsapi.org/v2"

// Client is a minimal NewsAPI client covering the two calls TruthLens
// needs: article lookup by domain and similar-article search.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a NewsAPI client. baseURL overrides the production
// endpoint when non-empty.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Article is a single NewsAPI result.
type Article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
}

type searchResponse struct {
	Status   string    `json:"status"`
	Articles []Article `json:"articles"`
}

// TopByDomain returns the most recent indexed article for a domain.
// NewsAPI cannot fetch a specific URL's content, but an article from the
// same domain is a usable stand-in for domain-level credibility.
func (c *Client) TopByDomain(ctx context.Context, domain string) (*Article, error) {
	query := url.Values{
		"domains":  {domain},
		"pageSize": {"1"},
	}
	articles, err := c.everything(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("no articles found for domain %s", domain)
	}
	return &articles[0], nil
}

// SearchSimilar returns up to n articles matching the query, most
// relevant first.
func (c *Client) SearchSimilar(ctx context.Context, query string, n int) ([]Article, error) {
	if n <= 0 {
		n = 3
	}
	values := url.Values{
		"q":        {query},
		"sortBy":   {"relevancy"},
		"pageSize": {strconv.Itoa(n)},
	}
	return c.everything(ctx, values)
}

func (c *Client) everything(ctx context.Context, values url.Values) ([]Article, error) {
	values.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + "/everything?" + values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi error (status %d): %s", resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return searchResp.Articles, nil
}
