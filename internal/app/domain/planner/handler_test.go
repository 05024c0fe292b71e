package planner

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WUZhiyun112/travelplanner/internal/app/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postGenerate(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.POST("/api/generate-plan", h.GeneratePlan)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-plan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGeneratePlanHandler(t *testing.T) {
	newHandler := func(gen Generator, debug bool) *Handler {
		return NewHandler(NewService(gen, nil, nil, 0, nil), debug, nil)
	}

	t.Run("it generates a plan", func(t *testing.T) {
		h := newHandler(&fakeGenerator{plan: "## Trip Overview\nA plan."}, false)

		w := postGenerate(t, h, `{"days": "3", "destination": "Lisbon"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp models.ItineraryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Contains(t, resp.Plan, "Trip Overview")
	})

	t.Run("it accepts a numeric days field", func(t *testing.T) {
		gen := &fakeGenerator{plan: "A plan."}
		h := newHandler(gen, false)

		w := postGenerate(t, h, `{"days": 3, "destination": "Lisbon"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, gen.prompts, 1)
		assert.Contains(t, gen.prompts[0], "3-day travel plan")
	})

	t.Run("it rejects a non-json body", func(t *testing.T) {
		h := newHandler(&fakeGenerator{}, false)

		w := postGenerate(t, h, "not json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp models.ItineraryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "The request body must be JSON.", resp.Error)
	})

	t.Run("it rejects missing required fields", func(t *testing.T) {
		h := newHandler(&fakeGenerator{}, false)

		for _, body := range []string{
			`{"destination": "Lisbon"}`,
			`{"days": "3"}`,
			`{}`,
		} {
			w := postGenerate(t, h, body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)

			var resp models.ItineraryResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Please provide the trip length and destination.", resp.Error)
		}
	})

	t.Run("it hides internal detail outside debug mode", func(t *testing.T) {
		h := newHandler(&fakeGenerator{err: errors.New("provider exploded at line 42")}, false)

		w := postGenerate(t, h, `{"days": "3", "destination": "Lisbon"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var resp models.ItineraryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Plan generation failed. Please try again later.", resp.Error)
		assert.Empty(t, resp.Detail)
	})

	t.Run("it includes the detail field in debug mode", func(t *testing.T) {
		h := newHandler(&fakeGenerator{err: errors.New("provider exploded")}, true)

		w := postGenerate(t, h, `{"days": "3", "destination": "Lisbon"}`)

		var resp models.ItineraryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "provider exploded", resp.Detail)
	})
}

func TestClassifyGenerationError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"auth failure", errors.New("401 Unauthorized"), http.StatusUnauthorized, "The configured API key is invalid or expired."},
		{"rate limit", errors.New("429 too many requests"), http.StatusTooManyRequests, "Too many requests to the plan generator. Please try again shortly."},
		{"rate limit text", errors.New("provider rate limit hit"), http.StatusTooManyRequests, "Too many requests to the plan generator. Please try again shortly."},
		{"deadline", errors.New("context deadline exceeded"), http.StatusGatewayTimeout, "The plan generator took too long. Please try again."},
		{"connection", errors.New("connection refused"), http.StatusBadGateway, "Could not reach the plan generator. Please check the server's network."},
		{"unknown", errors.New("something odd"), http.StatusInternalServerError, "Plan generation failed. Please try again later."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, message := classifyGenerationError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, message)
		})
	}
}

func TestRecentPlansHandler(t *testing.T) {
	t.Run("it returns an empty list without history", func(t *testing.T) {
		h := NewHandler(NewService(&fakeGenerator{}, nil, nil, 0, nil), false, nil)

		router := gin.New()
		router.GET("/api/plans/recent", h.RecentPlans)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/plans/recent", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Success bool                `json:"success"`
			Plans   []models.PlanRecord `json:"plans"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotNil(t, resp.Plans)
		assert.Empty(t, resp.Plans)
	})
}
