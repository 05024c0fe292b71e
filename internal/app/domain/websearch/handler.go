package websearch

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/WUZhiyun112/travelplanner/internal/app/models"
	"github.com/WUZhiyun112/travelplanner/internal/observability"
)

// Handler exposes the search endpoint.
type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

// Search handles POST /api/search.
func (h *Handler) Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.SearchResponse{
			Results: []models.SearchResult{},
			Error:   "The request body must be JSON.",
		})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, models.SearchResponse{
			Results: []models.SearchResult{},
			Error:   "Please enter a search term.",
		})
		return
	}

	h.log.Info("Search request", zap.String("query", query))

	results, err := h.svc.Search(c.Request.Context(), query, 10)
	if err != nil {
		h.log.Error("Search failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.SearchResponse{
			Results: []models.SearchResult{},
			Error:   "Search failed. Please try again later.",
		})
		return
	}
	if results == nil {
		results = []models.SearchResult{}
	}

	observability.Get().SearchRequestsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.Bool("using_api", h.svc.UsingAPI())),
	)
	c.JSON(http.StatusOK, models.SearchResponse{
		Success:  true,
		Results:  results,
		UsingAPI: h.svc.UsingAPI(),
	})
}
