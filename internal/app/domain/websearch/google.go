// Package websearch provides destination web search: Google Custom
// Search when credentials are configured, a link-only fallback when not.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/WUZhiyun112/travelplanner/internal/app/models"
)

const defaultGoogleEndpoint = "https://www.googleapis.com/customsearch/v1"

// GoogleClient calls the Google Custom Search JSON API.
type GoogleClient struct {
	apiKey   string
	engineID string
	endpoint string
	http     *http.Client
	log      *zap.Logger
}

// NewGoogleClient builds a client. Empty credentials produce an
// unconfigured client; callers check Configured before searching.
func NewGoogleClient(apiKey, engineID string, log *zap.Logger) *GoogleClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &GoogleClient{
		apiKey:   apiKey,
		engineID: engineID,
		endpoint: defaultGoogleEndpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
}

// Configured reports whether both credentials are present.
func (g *GoogleClient) Configured() bool {
	return g.apiKey != "" && g.engineID != ""
}

// Search returns up to num live results for the query.
func (g *GoogleClient) Search(ctx context.Context, query string, num int) ([]models.SearchResult, error) {
	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("cx", g.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(num))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Items []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
			Link    string `json:"link"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}

	results := make([]models.SearchResult, 0, len(payload.Items))
	for _, item := range payload.Items {
		results = append(results, models.SearchResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
	}

	g.log.Debug("Google search complete",
		zap.String("query", query),
		zap.Int("results", len(results)),
	)
	return results, nil
}
