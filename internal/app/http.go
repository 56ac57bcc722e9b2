package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cybertech-18/lakshpath-backend/internal/http"
	httpH "github.com/cybertech-18/lakshpath-backend/internal/http/handlers"
	"github.com/cybertech-18/lakshpath-backend/internal/observability"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Assessment *httpH.AssessmentHandler
	Milestone  *httpH.MilestoneHandler
	User       *httpH.UserHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(dbPinger(db)),
		Assessment: httpH.NewAssessmentHandler(s.Assessment),
		Milestone:  httpH.NewMilestoneHandler(s.Milestone),
		User:       httpH.NewUserHandler(s.Plan, s.Insight, s.Progress),
	}
}

func wireRouter(log *logger.Logger, cfg Config, h Handlers, m *observability.Metrics) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:               log,
		Metrics:           m,
		ServiceName:       cfg.ServiceName,
		CORSOrigins:       cfg.CORSOrigins,
		HealthHandler:     h.Health,
		AssessmentHandler: h.Assessment,
		MilestoneHandler:  h.Milestone,
		UserHandler:       h.User,
	})
}

func dbPinger(db *gorm.DB) httpH.Pinger {
	if db == nil {
		return nil
	}
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
