package aggregates

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cybertech-18/lakshpath-backend/internal/data/repos"
	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/apierr"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/dbctx"
)

// PlanGraph is everything one assessment submission persists. IDs and foreign
// keys are assigned by CommitPlan.
type PlanGraph struct {
	QuizResult *types.QuizResult
	Matches    []*types.CareerMatch
	Roadmap    *types.Roadmap
	Milestones []*types.Milestone
	// Goal, when set, is bound to the first milestone.
	Goal     *types.GoalContract
	Insights []*types.Insight
}

type CareerPlanAggregate interface {
	// CommitPlan writes the whole graph in one transaction. On failure nothing
	// is persisted.
	CommitPlan(ctx context.Context, graph *PlanGraph) error
	// CreateGoalContract inserts goal (and its audit insight) unless a contract
	// already exists for goal.MilestoneID, in which case the existing one is
	// returned with created=false.
	CreateGoalContract(ctx context.Context, goal *types.GoalContract, insight *types.Insight) (*types.GoalContract, bool, error)
}

type CareerPlanAggregateDeps struct {
	Base BaseDeps

	QuizResults repos.QuizResultRepo
	Matches     repos.CareerMatchRepo
	Roadmaps    repos.RoadmapRepo
	Milestones  repos.MilestoneRepo
	Goals       repos.GoalContractRepo
	Insights    repos.InsightRepo
}

type careerPlanAggregate struct {
	deps CareerPlanAggregateDeps
}

func NewCareerPlanAggregate(deps CareerPlanAggregateDeps) CareerPlanAggregate {
	deps.Base = deps.Base.withDefaults()
	deps.Base.Log = deps.Base.Log.With("aggregate", "CareerPlanAggregate")
	return &careerPlanAggregate{deps: deps}
}

func (a *careerPlanAggregate) CommitPlan(ctx context.Context, graph *PlanGraph) error {
	const op = "career_plan.commit"
	if err := validateGraph(graph); err != nil {
		return err
	}
	q := graph.QuizResult
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	for i, m := range graph.Matches {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		m.QuizResultID = q.ID
		m.UserID = q.UserID
		m.Rank = i + 1
	}
	rm := graph.Roadmap
	if rm.ID == uuid.Nil {
		rm.ID = uuid.New()
	}
	rm.UserID = q.UserID
	rm.QuizResultID = q.ID
	for i, m := range graph.Milestones {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		m.RoadmapID = rm.ID
		m.Position = i
	}
	if graph.Goal != nil && len(graph.Milestones) > 0 {
		first := graph.Milestones[0].ID
		graph.Goal.MilestoneID = &first
		graph.Goal.UserID = q.UserID
	}
	for _, in := range graph.Insights {
		in.UserID = q.UserID
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if _, err := a.deps.QuizResults.Create(dbc, []*types.QuizResult{q}); err != nil {
			return fmt.Errorf("create quiz result: %w", err)
		}
		if _, err := a.deps.Matches.Create(dbc, graph.Matches); err != nil {
			return fmt.Errorf("create career matches: %w", err)
		}
		if _, err := a.deps.Roadmaps.Create(dbc, []*types.Roadmap{rm}); err != nil {
			return fmt.Errorf("create roadmap: %w", err)
		}
		if len(graph.Milestones) > 0 {
			if _, err := a.deps.Milestones.Create(dbc, graph.Milestones); err != nil {
				return fmt.Errorf("create milestones: %w", err)
			}
		}
		if graph.Goal != nil && graph.Goal.MilestoneID != nil {
			if _, err := a.deps.Goals.Create(dbc, []*types.GoalContract{graph.Goal}); err != nil {
				return fmt.Errorf("create goal contract: %w", err)
			}
		}
		if len(graph.Insights) > 0 {
			if _, err := a.deps.Insights.Create(dbc, graph.Insights); err != nil {
				return fmt.Errorf("create insights: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return apierr.Persistence(op, err)
	}
	rm.Milestones = graph.Milestones
	return nil
}

func (a *careerPlanAggregate) CreateGoalContract(ctx context.Context, goal *types.GoalContract, insight *types.Insight) (*types.GoalContract, bool, error) {
	const op = "career_plan.create_goal"
	if goal == nil || goal.MilestoneID == nil || *goal.MilestoneID == uuid.Nil {
		return nil, false, apierr.Validation("goal contract requires a milestone id")
	}
	milestoneID := *goal.MilestoneID
	readCtx := dbctx.Context{Ctx: ctx}

	existing, err := a.deps.Goals.GetByMilestoneID(readCtx, milestoneID)
	if err != nil {
		return nil, false, apierr.Persistence(op, err)
	}
	if existing != nil {
		return existing, false, nil
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if _, err := a.deps.Goals.Create(dbc, []*types.GoalContract{goal}); err != nil {
			return err
		}
		if insight != nil {
			insight.UserID = goal.UserID
			if _, err := a.deps.Insights.Create(dbc, []*types.Insight{insight}); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		return goal, true, nil
	}
	if !apierr.IsKind(err, apierr.KindConflict) {
		return nil, false, apierr.Persistence(op, err)
	}

	// Lost a race with another writer; the aborted transaction is gone, so read
	// the winner outside of it.
	existing, rerr := a.deps.Goals.GetByMilestoneID(readCtx, milestoneID)
	if rerr != nil {
		return nil, false, apierr.Persistence(op, rerr)
	}
	if existing == nil {
		return nil, false, apierr.Persistence(op, errors.Join(err, errors.New("conflicting goal contract not found")))
	}
	a.deps.Base.Log.Debug("goal contract already existed", "milestone_id", milestoneID.String())
	return existing, false, nil
}

func validateGraph(g *PlanGraph) error {
	switch {
	case g == nil:
		return apierr.Validation("plan graph is required")
	case g.QuizResult == nil:
		return apierr.Validation("plan graph requires a quiz result")
	case g.QuizResult.UserID == uuid.Nil:
		return apierr.Validation("plan graph requires a user id")
	case len(g.Matches) == 0:
		return apierr.Validation("plan graph requires at least one career match")
	case g.Roadmap == nil:
		return apierr.Validation("plan graph requires a roadmap")
	}
	for i, m := range g.Matches {
		if m == nil {
			return apierr.Validation("career match %d is nil", i)
		}
	}
	for i, m := range g.Milestones {
		if m == nil {
			return apierr.Validation("milestone %d is nil", i)
		}
	}
	for i, in := range g.Insights {
		if in == nil {
			return apierr.Validation("insight %d is nil", i)
		}
	}
	return nil
}
