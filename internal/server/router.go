package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/WUZhiyun112/travelplanner/internal/app/domain/planner"
	"github.com/WUZhiyun112/travelplanner/internal/app/domain/websearch"
	"github.com/WUZhiyun112/travelplanner/internal/pkg/config"
	"github.com/WUZhiyun112/travelplanner/internal/pkg/middleware"
)

// SetupRouter configures the Gin router with all middleware and routes.
func SetupRouter(cfg *config.Config, dbPool *pgxpool.Pool, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("travelplanner"))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())

	google := websearch.NewGoogleClient(cfg.Google.APIKey, cfg.Google.SearchEngineID, logger)
	searchSvc := websearch.NewService(google, logger)
	searchHandler := websearch.NewHandler(searchSvc, logger)

	llm := planner.NewDeepSeekGenerator(cfg.DeepSeek.APIKey, cfg.DeepSeek.BaseURL, cfg.DeepSeek.Model, logger)
	var repo planner.Repository
	if dbPool != nil {
		repo = planner.NewPostgresRepository(dbPool, logger)
	}
	planSvc := planner.NewService(llm, searchSvc, repo, cfg.PlanTimeout, logger)
	planHandler := planner.NewHandler(planSvc, cfg.Debug, logger)

	api := r.Group("/api")
	{
		api.POST("/generate-plan", planHandler.GeneratePlan)
		api.POST("/search", searchHandler.Search)
		api.GET("/plans/recent", planHandler.RecentPlans)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
