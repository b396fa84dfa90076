package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"marketcheck/internal/domain"
)

// Client queries the Google Custom Search JSON API.
type Client struct {
	baseURL  string
	apiKey   string
	engineID string
	client   *http.Client
}

// Config configures the Custom Search client. API credentials are read from
// the environment variables named by APIKeyEnv and EngineIDEnv.
type Config struct {
	BaseURL     string
	APIKeyEnv   string
	EngineIDEnv string
	Timeout     time.Duration
}

// NewClient creates a Custom Search client from the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	engineID := os.Getenv(cfg.EngineIDEnv)
	if engineID == "" {
		return nil, fmt.Errorf("missing search engine ID in env %s", cfg.EngineIDEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.googleapis.com/customsearch/v1"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		apiKey:   key,
		engineID: engineID,
		client:   &http.Client{Timeout: t},
	}, nil
}

// Name returns the identifier of this search provider.
func (c *Client) Name() string { return "google" }

// Search issues a single GET to the Custom Search endpoint and maps the
// response items. Fields the API omits default to the empty string. A
// non-success status is returned as an error, not masked.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error) {
	if maxResults <= 0 {
		maxResults = 10
	}
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("search failed (status %d): %s", resp.StatusCode, string(body))
	}

	var out struct {
		Items []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
			Link    string `json:"link"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(out.Items))
	for _, item := range out.Items {
		results = append(results, domain.SearchResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
	}
	return results, nil
}
