package app

import (
	"gorm.io/gorm"

	"github.com/cybertech-18/lakshpath-backend/internal/data/aggregates"
	"github.com/cybertech-18/lakshpath-backend/internal/modules/scoring"
	"github.com/cybertech-18/lakshpath-backend/internal/observability"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
	"github.com/cybertech-18/lakshpath-backend/internal/services"
)

type Services struct {
	Assessment services.AssessmentService
	Milestone  services.MilestoneService
	Plan       services.CareerPlanService
	Insight    services.InsightService
	Progress   services.ProgressService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients, m *observability.Metrics) Services {
	log.Info("Wiring services...")

	plans := aggregates.NewCareerPlanAggregate(aggregates.CareerPlanAggregateDeps{
		Base:        aggregates.BaseDeps{DB: db, Log: log},
		QuizResults: r.QuizResults,
		Matches:     r.Matches,
		Roadmaps:    r.Roadmaps,
		Milestones:  r.Milestones,
		Goals:       r.Goals,
		Insights:    r.Insights,
	})

	gateway := services.NewAIGateway(log, c.Gemini, cfg.AI, m)
	enrichment := services.NewEnrichmentCoordinator(log, gateway, m)

	return Services{
		Assessment: services.NewAssessmentService(log, services.AssessmentServiceDeps{
			Users:      r.Users,
			Scorer:     scoring.NewDefaultScorer(),
			Enrichment: enrichment,
			Plans:      plans,
			Metrics:    m,
			MatchLimit: cfg.CareerMatchLimit,
		}),
		Milestone: services.NewMilestoneService(log, services.MilestoneServiceDeps{
			Milestones:  r.Milestones,
			Roadmaps:    r.Roadmaps,
			QuizResults: r.QuizResults,
			Matches:     r.Matches,
			Goals:       r.Goals,
			Users:       r.Users,
			Plans:       plans,
			Enrichment:  enrichment,
			Notifier:    wireNotifier(log, c),
			Metrics:     m,
		}),
		Plan: services.NewCareerPlanService(log, services.CareerPlanServiceDeps{
			Users:       r.Users,
			QuizResults: r.QuizResults,
			Matches:     r.Matches,
			Roadmaps:    r.Roadmaps,
			Goals:       r.Goals,
		}),
		Insight: services.NewInsightService(log, r.Insights),
		Progress: services.NewProgressService(log, services.ProgressServiceDeps{
			Users:       r.Users,
			QuizResults: r.QuizResults,
			Roadmaps:    r.Roadmaps,
		}),
	}
}

// wireNotifier always logs; goal events also go to redis when a bus exists.
func wireNotifier(log *logger.Logger, c Clients) services.Notifier {
	ln := services.NewLogNotifier(log)
	if c.Bus == nil {
		return ln
	}
	return services.NewMultiNotifier(ln, services.NewBusNotifier(c.Bus))
}
