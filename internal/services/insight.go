package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/cybertech-18/lakshpath-backend/internal/data/repos"
	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/apierr"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/dbctx"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

const (
	DefaultInsightLimit = 20
	MaxInsightLimit     = 100
)

type InsightService interface {
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Insight, error)
}

type insightService struct {
	log      *logger.Logger
	insights repos.InsightRepo
}

func NewInsightService(log *logger.Logger, insights repos.InsightRepo) InsightService {
	return &insightService{log: log.With("service", "InsightService"), insights: insights}
}

// ClampInsightLimit maps non-positive limits to the default and caps the rest.
func ClampInsightLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultInsightLimit
	case limit > MaxInsightLimit:
		return MaxInsightLimit
	default:
		return limit
	}
}

func (s *insightService) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Insight, error) {
	if userID == uuid.Nil {
		return nil, apierr.Validation("user id is required")
	}
	rows, err := s.insights.ListByUser(dbctx.Context{Ctx: ctx}, userID, ClampInsightLimit(limit))
	if err != nil {
		return nil, apierr.Persistence("insight.list_for_user", err)
	}
	if rows == nil {
		rows = []*types.Insight{}
	}
	return rows, nil
}
