package planner

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/WUZhiyun112/travelplanner/internal/app/models"
	"github.com/WUZhiyun112/travelplanner/internal/observability"
)

// Handler exposes the plan endpoints.
type Handler struct {
	svc   *Service
	log   *zap.Logger
	debug bool
}

// NewHandler wires the handler. With debug on, failure responses include
// the internal detail field; production deployments keep it off so
// internals only reach the log.
func NewHandler(svc *Service, debug bool, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log, debug: debug}
}

// GeneratePlan handles POST /api/generate-plan.
func (h *Handler) GeneratePlan(c *gin.Context) {
	var req models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ItineraryResponse{
			Error: "The request body must be JSON.",
		})
		return
	}

	h.log.Info("Plan request",
		zap.String("destination", req.Destination),
		zap.String("days", req.Days.String()),
	)

	if req.Days.String() == "" || req.Destination == "" {
		c.JSON(http.StatusBadRequest, models.ItineraryResponse{
			Error: "Please provide the trip length and destination.",
		})
		return
	}

	plan, refs, err := h.svc.GeneratePlan(c.Request.Context(), req)
	if err != nil {
		status, message := classifyGenerationError(err)
		h.log.Error("Plan generation failed",
			zap.String("destination", req.Destination),
			zap.Error(err),
		)
		countPlanRequest(c, status)
		resp := models.ItineraryResponse{Error: message}
		if h.debug {
			resp.Detail = err.Error()
		}
		c.JSON(status, resp)
		return
	}

	countPlanRequest(c, http.StatusOK)
	c.JSON(http.StatusOK, models.ItineraryResponse{
		Success:    true,
		Plan:       plan,
		References: refs,
	})
}

// RecentPlans handles GET /api/plans/recent.
func (h *Handler) RecentPlans(c *gin.Context) {
	plans, err := h.svc.RecentPlans(c.Request.Context(), 20)
	if err != nil {
		h.log.Error("Failed to load plan history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Could not load plan history.",
		})
		return
	}
	if plans == nil {
		plans = []models.PlanRecord{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"plans":   plans,
	})
}

func countPlanRequest(c *gin.Context, status int) {
	observability.Get().PlanRequestsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("status", strconv.Itoa(status))),
	)
}

// classifyGenerationError maps provider failures to a status code and a
// user-facing message. Raw provider errors never reach the response body
// outside debug mode.
func classifyGenerationError(err error) (int, string) {
	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "401") || strings.Contains(lower, "unauthorized"):
		return http.StatusUnauthorized, "The configured API key is invalid or expired."
	case strings.Contains(msg, "429") || strings.Contains(lower, "rate limit"):
		return http.StatusTooManyRequests, "Too many requests to the plan generator. Please try again shortly."
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded"):
		return http.StatusGatewayTimeout, "The plan generator took too long. Please try again."
	case strings.Contains(lower, "connection"):
		return http.StatusBadGateway, "Could not reach the plan generator. Please check the server's network."
	default:
		return http.StatusInternalServerError, "Plan generation failed. Please try again later."
	}
}
