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

// CareerPlan is the read model of a user's most recent submission.
type CareerPlan struct {
	User          *types.User                    `json:"user"`
	QuizResult    *types.QuizResult              `json:"quiz_result"`
	CareerMatches []*types.CareerMatch           `json:"career_matches"`
	Roadmap       *types.Roadmap                 `json:"roadmap,omitempty"`
	GoalContracts map[string]*types.GoalContract `json:"goal_contracts"`
}

type CareerPlanService interface {
	GetLatestPlan(ctx context.Context, userID uuid.UUID) (*CareerPlan, error)
}

type CareerPlanServiceDeps struct {
	Users       repos.UserRepo
	QuizResults repos.QuizResultRepo
	Matches     repos.CareerMatchRepo
	Roadmaps    repos.RoadmapRepo
	Goals       repos.GoalContractRepo
}

type careerPlanService struct {
	log  *logger.Logger
	deps CareerPlanServiceDeps
}

func NewCareerPlanService(log *logger.Logger, deps CareerPlanServiceDeps) CareerPlanService {
	return &careerPlanService{log: log.With("service", "CareerPlanService"), deps: deps}
}

func (s *careerPlanService) GetLatestPlan(ctx context.Context, userID uuid.UUID) (*CareerPlan, error) {
	const op = "career_plan.get_latest"
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

	quizzes, err := s.deps.QuizResults.ListByUser(dbc, userID, 1)
	if err != nil {
		return nil, apierr.Persistence(op, err)
	}
	if len(quizzes) == 0 {
		return nil, apierr.NotFound("user %s has no assessment", userID)
	}
	q := quizzes[0]

	matches, err := s.deps.Matches.ListByQuizResult(dbc, q.ID)
	if err != nil {
		return nil, apierr.Persistence(op, err)
	}
	rm, err := s.deps.Roadmaps.GetLatestByUser(dbc, userID)
	if err != nil {
		return nil, apierr.Persistence(op, err)
	}

	goals := map[string]*types.GoalContract{}
	if rm != nil && len(rm.Milestones) > 0 {
		ids := make([]uuid.UUID, 0, len(rm.Milestones))
		for _, m := range rm.Milestones {
			ids = append(ids, m.ID)
		}
		rows, err := s.deps.Goals.ListByMilestoneIDs(dbc, ids)
		if err != nil {
			return nil, apierr.Persistence(op, err)
		}
		for _, g := range rows {
			if g != nil && g.MilestoneID != nil {
				goals[g.MilestoneID.String()] = g
			}
		}
	}

	return &CareerPlan{
		User:          u,
		QuizResult:    q,
		CareerMatches: matches,
		Roadmap:       rm,
		GoalContracts: goals,
	}, nil
}
