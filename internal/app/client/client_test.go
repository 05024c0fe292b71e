package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WUZhiyun112/travelplanner/internal/app/models"
)

func TestGeneratePlan(t *testing.T) {
	t.Run("it posts the form fields and decodes the plan", func(t *testing.T) {
		var got models.ItineraryRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/generate-plan", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			json.NewEncoder(w).Encode(models.ItineraryResponse{
				Success: true,
				Plan:    "## Trip Overview\nA short plan.",
				References: []models.Reference{
					{Title: "Guide", Link: "https://example.com"},
				},
			})
		}))
		defer srv.Close()

		c := New(srv.URL, nil)
		resp, err := c.GeneratePlan(context.Background(), models.ItineraryRequest{
			Days:        "3",
			Destination: "Lisbon",
			Budget:      "mid-range",
		})
		require.NoError(t, err)

		assert.Equal(t, models.FlexString("3"), got.Days)
		assert.Equal(t, "Lisbon", got.Destination)
		assert.Contains(t, resp.Plan, "Trip Overview")
		require.Len(t, resp.References, 1)
	})

	t.Run("it returns an application error when success is false", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(models.ItineraryResponse{
				Success: false,
				Error:   "Please provide the trip length and destination.",
				Detail:  "days empty",
			})
		}))
		defer srv.Close()

		c := New(srv.URL, nil)
		_, err := c.GeneratePlan(context.Background(), models.ItineraryRequest{})

		var appErr *ApplicationError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Please provide the trip length and destination.", appErr.Message)
		assert.Equal(t, "days empty", appErr.Detail)
	})

	t.Run("it surfaces the error field of a non-2xx failure payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusGatewayTimeout)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   "Plan generation took too long. Please try again.",
			})
		}))
		defer srv.Close()

		c := New(srv.URL, nil)
		_, err := c.GeneratePlan(context.Background(), models.ItineraryRequest{Days: "2", Destination: "Rome"})

		var appErr *ApplicationError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Plan generation took too long. Please try again.", appErr.Message)
	})

	t.Run("it returns a transport error with a truncated body for other statuses", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(strings.Repeat("x", 500)))
		}))
		defer srv.Close()

		c := New(srv.URL, nil)
		_, err := c.GeneratePlan(context.Background(), models.ItineraryRequest{Days: "2", Destination: "Rome"})

		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
		assert.True(t, strings.HasSuffix(transportErr.Body, "..."))
		assert.LessOrEqual(t, len(transportErr.Body), maxErrorBody+3)
	})

	t.Run("it maps a fired deadline to the timeout error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Drain the body so the server notices the client disconnect;
			// with an unread body it never cancels r.Context() and Close hangs.
			io.Copy(io.Discard, r.Body)
			<-r.Context().Done()
		}))
		defer srv.Close()

		c := New(srv.URL, nil)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := c.GeneratePlan(ctx, models.ItineraryRequest{Days: "2", Destination: "Rome"})
		require.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("it reports plain cancellation as a request failure, not a timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.Copy(io.Discard, r.Body)
			<-r.Context().Done()
		}))
		defer srv.Close()

		c := New(srv.URL, nil)
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		_, err := c.GeneratePlan(ctx, models.ItineraryRequest{Days: "2", Destination: "Rome"})
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrTimeout))
	})
}

func TestSearch(t *testing.T) {
	t.Run("it decodes results and the api flag", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/search", r.URL.Path)
			var req models.SearchRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "tokyo food", req.Query)

			json.NewEncoder(w).Encode(models.SearchResponse{
				Success:  true,
				UsingAPI: false,
				Results: []models.SearchResult{
					{Title: "Search the web for: tokyo food", Link: "https://www.google.com/search?q=tokyo+food", IsLinkOnly: true},
				},
			})
		}))
		defer srv.Close()

		c := New(srv.URL, nil)
		resp, err := c.Search(context.Background(), "tokyo food")
		require.NoError(t, err)

		assert.False(t, resp.UsingAPI)
		require.Len(t, resp.Results, 1)
		assert.True(t, resp.Results[0].IsLinkOnly)
	})

	t.Run("it returns an application error on a failure flag", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(models.SearchResponse{Success: false, Error: "Search failed. Please try again later."})
		}))
		defer srv.Close()

		c := New(srv.URL, nil)
		_, err := c.Search(context.Background(), "tokyo")

		var appErr *ApplicationError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Search failed. Please try again later.", appErr.Message)
	})
}

func TestRecentPlans(t *testing.T) {
	t.Run("it fetches stored plans", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/plans/recent", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"plans": []map[string]any{
					{"destination": "Kyoto", "days": "4"},
				},
			})
		}))
		defer srv.Close()

		c := New(srv.URL, nil)
		plans, err := c.RecentPlans(context.Background())
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, "Kyoto", plans[0].Destination)
	})
}
