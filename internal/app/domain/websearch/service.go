package websearch

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/WUZhiyun112/travelplanner/internal/app/models"
)

const (
	// maxDestinationResults caps the merged destination lookup.
	maxDestinationResults = 10
	// resultsPerQuery is how many hits each canned query contributes.
	resultsPerQuery = 3
)

// Service answers search queries, caching by query text. Without Google
// credentials it degrades to a single link-only result pointing at a
// search-engine URL.
type Service struct {
	google *GoogleClient
	cache  *cache.Cache
	log    *zap.Logger
}

func NewService(google *GoogleClient, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		google: google,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
		log:    log,
	}
}

// UsingAPI reports whether live search is available.
func (s *Service) UsingAPI() bool {
	return s.google.Configured()
}

// Search returns results for a free-text query. The degraded fallback
// never fails: it always yields exactly one link-only result.
func (s *Service) Search(ctx context.Context, query string, num int) ([]models.SearchResult, error) {
	if !s.google.Configured() {
		return []models.SearchResult{linkOnlyResult(query)}, nil
	}

	key := "search:" + query
	if cached, found := s.cache.Get(key); found {
		s.log.Debug("Search cache hit", zap.String("query", query))
		return cached.([]models.SearchResult), nil
	}

	results, err := s.google.Search(ctx, query, num)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, results)
	return results, nil
}

// DestinationInfo gathers background material for plan generation: a few
// canned queries per destination, merged, deduplicated by link and
// capped. Failures of individual queries are logged and skipped; plan
// generation works fine with partial or empty material.
func (s *Service) DestinationInfo(ctx context.Context, destination, preferences string) []models.SearchResult {
	if !s.google.Configured() {
		return nil
	}

	queries := []string{
		fmt.Sprintf("%s travel guide attractions", destination),
		fmt.Sprintf("%s restaurants food recommendations", destination),
		fmt.Sprintf("%s hotels where to stay", destination),
	}
	if preferences != "" {
		queries = append(queries, fmt.Sprintf("%s %s", destination, preferences))
	}

	seen := make(map[string]bool)
	var merged []models.SearchResult
	for _, q := range queries {
		results, err := s.Search(ctx, q, resultsPerQuery)
		if err != nil {
			s.log.Warn("Destination query failed",
				zap.String("query", q),
				zap.Error(err),
			)
			continue
		}
		for _, r := range results {
			if seen[r.Link] {
				continue
			}
			seen[r.Link] = true
			merged = append(merged, r)
			if len(merged) >= maxDestinationResults {
				return merged
			}
		}
	}
	return merged
}

// linkOnlyResult is the no-credentials fallback: a clickable search URL
// instead of a live result.
func linkOnlyResult(query string) models.SearchResult {
	return models.SearchResult{
		Title:      fmt.Sprintf("Search the web for: %s", query),
		Snippet:    "Open the link below to view search results in your browser.",
		Link:       "https://www.google.com/search?q=" + url.QueryEscape(query),
		IsLinkOnly: true,
	}
}
