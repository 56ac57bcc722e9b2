package services

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/cybertech-18/lakshpath-backend/internal/data/repos"
	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/apierr"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/dbctx"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

const (
	TrendInsufficientHistory = "insufficient_history"
	TrendImproving           = "improving"
	TrendDeclining           = "declining"
	TrendSteady              = "steady"

	trendEpsilon = 0.01
)

type MilestoneProgress struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Ratio     float64 `json:"ratio"`
}

// ProgressReport compares the two newest assessments. RecentImprovement is nil
// until there are at least two snapshots.
type ProgressReport struct {
	State             string            `json:"state"`
	Snapshots         int               `json:"snapshots"`
	LatestAverage     *float64          `json:"latest_average"`
	RecentImprovement *float64          `json:"recent_improvement"`
	Milestones        MilestoneProgress `json:"milestones"`
}

type ProgressService interface {
	Trend(ctx context.Context, userID uuid.UUID) (*ProgressReport, error)
}

type ProgressServiceDeps struct {
	Users       repos.UserRepo
	QuizResults repos.QuizResultRepo
	Roadmaps    repos.RoadmapRepo
}

type progressService struct {
	log  *logger.Logger
	deps ProgressServiceDeps
}

func NewProgressService(log *logger.Logger, deps ProgressServiceDeps) ProgressService {
	return &progressService{log: log.With("service", "ProgressService"), deps: deps}
}

func (s *progressService) Trend(ctx context.Context, userID uuid.UUID) (*ProgressReport, error) {
	const op = "progress.trend"
	if userID == uuid.Nil {
		return nil, apierr.Validation("user id is required")
	}
	dbc := dbctx.Context{Ctx: ctx}

	u, err := s.deps.Users.GetByID(dbc, userID)
	if err != nil {
		return nil, apierr.Persistence(op, err)
	}
	if u == nil {
		return nil, apierr.NotFound("user %s not found", userID)
	}

	snaps, err := s.deps.QuizResults.ListByUser(dbc, userID, 0)
	if err != nil {
		return nil, apierr.Persistence(op, err)
	}
	out := CompareSnapshots(snaps)

	rm, err := s.deps.Roadmaps.GetLatestByUser(dbc, userID)
	if err != nil {
		return nil, apierr.Persistence(op, err)
	}
	if rm != nil {
		out.Milestones = CompletionOf(rm.Milestones)
	}
	return out, nil
}

// CompareSnapshots expects snaps newest first.
func CompareSnapshots(snaps []*types.QuizResult) *ProgressReport {
	out := &ProgressReport{State: TrendInsufficientHistory, Snapshots: len(snaps)}
	if len(snaps) == 0 {
		return out
	}
	latest := round2(snaps[0].AverageSkill())
	out.LatestAverage = &latest
	if len(snaps) < 2 {
		return out
	}
	delta := round2(snaps[0].AverageSkill() - snaps[1].AverageSkill())
	out.RecentImprovement = &delta
	switch {
	case math.Abs(delta) < trendEpsilon:
		out.State = TrendSteady
	case delta > 0:
		out.State = TrendImproving
	default:
		out.State = TrendDeclining
	}
	return out
}

func CompletionOf(ms []*types.Milestone) MilestoneProgress {
	var p MilestoneProgress
	for _, m := range ms {
		if m == nil {
			continue
		}
		p.Total++
		if m.Status == types.MilestoneStatusCompleted {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Ratio = round2(float64(p.Completed) / float64(p.Total))
	}
	return p
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
