// Package client is the typed HTTP client for the plan and search
// endpoints. It owns error classification: deadline expiry, non-2xx
// statuses and application-level failure flags each map to a distinct
// error so callers can pick the right user message.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/WUZhiyun112/travelplanner/internal/app/models"
)

// Client talks to a travelplanner server.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the server at baseURL. The client keeps a
// cookie jar so session cookies behave like a same-origin browser call.
func New(baseURL string, log *zap.Logger, opts ...Option) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{
			Jar: jar,
			// No client-level timeout: each call's deadline comes from
			// its context so actions can use different budgets.
		},
		log: log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GeneratePlan submits an itinerary request. The fields are sent exactly
// as given; the server performs the required-field check.
func (c *Client) GeneratePlan(ctx context.Context, req models.ItineraryRequest) (*models.ItineraryResponse, error) {
	var resp models.ItineraryResponse
	if err := c.postJSON(ctx, "/api/generate-plan", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &ApplicationError{Message: resp.Error, Detail: resp.Detail}
	}
	return &resp, nil
}

// Search runs a free-text search. The query is passed through untrimmed;
// callers decide their own validation policy.
func (c *Client) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	var resp models.SearchResponse
	if err := c.postJSON(ctx, "/api/search", models.SearchRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &ApplicationError{Message: resp.Error}
	}
	return &resp, nil
}

// RecentPlans fetches the latest stored plans. The list is empty when
// the server runs with history disabled.
func (c *Client) RecentPlans(ctx context.Context) ([]models.PlanRecord, error) {
	var resp struct {
		Success bool                `json:"success"`
		Plans   []models.PlanRecord `json:"plans"`
		Error   string              `json:"error"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/plans/recent", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &ApplicationError{Message: resp.Error}
	}
	return resp.Plans, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			c.log.Warn("Request deadline exceeded",
				zap.String("path", path),
				zap.Duration("elapsed", time.Since(start)),
			)
			return fmt.Errorf("%w: %s", ErrTimeout, path)
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody+1))
		c.log.Warn("Request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		// The server sends its user-facing error text with non-2xx
		// statuses; surface it when the body is a well-formed failure
		// payload, otherwise fall back to status plus truncated body.
		var failure struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(raw, &failure); err == nil && failure.Error != "" {
			return &ApplicationError{Message: failure.Error, Detail: failure.Detail}
		}
		return &TransportError{StatusCode: resp.StatusCode, Body: truncateBody(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	c.log.Debug("Request complete",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
