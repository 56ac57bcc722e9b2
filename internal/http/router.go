package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/cybertech-18/lakshpath-backend/internal/http/handlers"
	httpMW "github.com/cybertech-18/lakshpath-backend/internal/http/middleware"
	"github.com/cybertech-18/lakshpath-backend/internal/observability"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	AssessmentHandler *httpH.AssessmentHandler
	MilestoneHandler  *httpH.MilestoneHandler
	UserHandler       *httpH.UserHandler
	HealthHandler     *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		if cfg.AssessmentHandler != nil {
			api.POST("/assessments", cfg.AssessmentHandler.Submit)
		}

		if cfg.MilestoneHandler != nil {
			api.PATCH("/milestones/:id/status", cfg.MilestoneHandler.UpdateStatus)
		}

		if cfg.UserHandler != nil {
			api.GET("/users/:id/plan", cfg.UserHandler.GetPlan)
			api.GET("/users/:id/insights", cfg.UserHandler.ListInsights)
			api.GET("/users/:id/progress", cfg.UserHandler.GetProgress)
		}
	}

	return r
}
