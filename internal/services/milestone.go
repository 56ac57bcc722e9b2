package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/cybertech-18/lakshpath-backend/internal/data/aggregates"
	"github.com/cybertech-18/lakshpath-backend/internal/data/repos"
	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
	"github.com/cybertech-18/lakshpath-backend/internal/observability"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/apierr"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/dbctx"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

type MilestoneUpdateResult struct {
	Milestone     *types.Milestone    `json:"milestone"`
	NextMilestone *types.Milestone    `json:"next_milestone,omitempty"`
	GoalContract  *types.GoalContract `json:"goal_contract,omitempty"`
	GoalCreated   bool                `json:"goal_created"`
}

// MilestoneService owns the PENDING -> IN_PROGRESS -> COMPLETED lifecycle.
// Completing a milestone ensures the next one has exactly one goal contract.
type MilestoneService interface {
	UpdateStatus(ctx context.Context, milestoneID uuid.UUID, status string) (*MilestoneUpdateResult, error)
}

type MilestoneServiceDeps struct {
	Milestones  repos.MilestoneRepo
	Roadmaps    repos.RoadmapRepo
	QuizResults repos.QuizResultRepo
	Matches     repos.CareerMatchRepo
	Goals       repos.GoalContractRepo
	Users       repos.UserRepo
	Plans       aggregates.CareerPlanAggregate
	Enrichment  EnrichmentCoordinator
	Notifier    Notifier
	Metrics     *observability.Metrics
	Now         func() time.Time
}

type milestoneService struct {
	log  *logger.Logger
	deps MilestoneServiceDeps
}

func NewMilestoneService(log *logger.Logger, deps MilestoneServiceDeps) MilestoneService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &milestoneService{log: log.With("service", "MilestoneService"), deps: deps}
}

func (s *milestoneService) UpdateStatus(ctx context.Context, milestoneID uuid.UUID, status string) (*MilestoneUpdateResult, error) {
	const op = "milestone.update_status"
	status = strings.ToUpper(strings.TrimSpace(status))
	if !types.IsMilestoneStatus(status) {
		return nil, apierr.Validation("unknown milestone status %q", status)
	}
	if milestoneID == uuid.Nil {
		return nil, apierr.Validation("milestone id is required")
	}

	ctx, span := observability.Tracer().Start(ctx, "milestone.update_status")
	defer span.End()
	span.SetAttributes(attribute.String("milestone.status", status))

	dbc := dbctx.Context{Ctx: ctx}
	m, err := s.deps.Milestones.GetByID(dbc, milestoneID)
	if err != nil {
		return nil, apierr.Persistence(op, err)
	}
	if m == nil {
		return nil, apierr.NotFound("milestone %s not found", milestoneID)
	}
	if !types.CanTransition(m.Status, status) {
		return nil, apierr.Validation("cannot move milestone from %s to %s", m.Status, status)
	}

	if m.Status != status {
		var completedAt *time.Time
		if status == types.MilestoneStatusCompleted {
			now := s.deps.Now().UTC()
			completedAt = &now
		}
		if err := s.deps.Milestones.UpdateStatus(dbc, m.ID, status, completedAt); err != nil {
			return nil, apierr.Persistence(op, err)
		}
		s.log.Info("milestone status updated", "milestone_id", m.ID.String(), "from", m.Status, "to", status)
		m.Status = status
		m.CompletedAt = completedAt
	}

	out := &MilestoneUpdateResult{Milestone: m}
	if status != types.MilestoneStatusCompleted {
		return out, nil
	}

	// The status change is committed; nothing in the cascade can undo it.
	next, goal, created, err := s.cascade(ctx, m)
	if err != nil {
		s.deps.Metrics.IncCascade("failed")
		s.log.Warn("goal cascade failed", "milestone_id", m.ID.String(), "error", err)
		return out, nil
	}
	out.NextMilestone = next
	out.GoalContract = goal
	out.GoalCreated = created
	switch {
	case next == nil:
		s.deps.Metrics.IncCascade("terminal")
	case created:
		s.deps.Metrics.IncCascade("created")
	default:
		s.deps.Metrics.IncCascade("existing")
	}
	return out, nil
}

func (s *milestoneService) cascade(ctx context.Context, completed *types.Milestone) (*types.Milestone, *types.GoalContract, bool, error) {
	const op = "milestone.cascade"
	dbc := dbctx.Context{Ctx: ctx}

	next, err := s.deps.Milestones.GetNext(dbc, completed.RoadmapID, completed.Position)
	if err != nil {
		return nil, nil, false, apierr.Persistence(op, err)
	}
	if next == nil {
		return nil, nil, false, nil
	}

	existing, err := s.deps.Goals.GetByMilestoneID(dbc, next.ID)
	if err != nil {
		return nil, nil, false, apierr.Persistence(op, err)
	}
	if existing != nil {
		return next, existing, false, nil
	}

	rm, err := s.deps.Roadmaps.GetByID(dbc, completed.RoadmapID)
	if err != nil {
		return nil, nil, false, apierr.Persistence(op, err)
	}
	if rm == nil {
		return nil, nil, false, apierr.NotFound("roadmap %s not found", completed.RoadmapID)
	}

	in := GoalCriteriaInput{
		MilestoneTitle:       next.Title,
		MilestoneDescription: next.Description,
		Duration:             next.Duration,
		Tier:                 TierBeginner,
	}
	if q, qerr := s.deps.QuizResults.GetByID(dbc, rm.QuizResultID); qerr == nil && q != nil {
		in.FieldOfInterest = q.FieldOfInterest
		in.Tier = SeniorityTier(q.AverageSkill())
		if s.deps.Matches != nil {
			if ms, merr := s.deps.Matches.ListByQuizResult(dbc, q.ID); merr == nil && len(ms) > 0 {
				in.CareerTitle = ms[0].Title
			}
		}
	}
	theme := LookupTheme(in.FieldOfInterest)

	var criteria *Enrichment[GoalCriteria]
	if s.deps.Enrichment != nil {
		criteria = s.deps.Enrichment.CraftGoalCriteria(ctx, in)
	}

	var payload *GoalCriteria
	var insight *types.Insight
	if criteria != nil {
		payload = criteria.Payload
		insight = newInsight(types.InsightTypeGoalContract, criteria.Payload.SuccessCriteria, criteria, map[string]any{
			"stage":              StageGoalCriteria,
			"milestone_position": next.Position,
			"trigger":            "milestone_completed",
		})
	}
	goal := newGoalContract(rm.UserID, next, payload, theme, s.deps.Now().UTC())

	saved, created, err := s.deps.Plans.CreateGoalContract(ctx, goal, insight)
	if err != nil {
		return nil, nil, false, err
	}
	if created {
		s.log.Info("goal contract created",
			"milestone_id", next.ID.String(),
			"goal_id", saved.ID.String(),
			"ai", criteria != nil,
		)
		s.notify(ctx, rm.UserID, saved)
	}
	return next, saved, created, nil
}

func (s *milestoneService) notify(ctx context.Context, userID uuid.UUID, goal *types.GoalContract) {
	if s.deps.Notifier == nil {
		return
	}
	var user *types.User
	if s.deps.Users != nil {
		u, err := s.deps.Users.GetByID(dbctx.Context{Ctx: ctx}, userID)
		if err != nil {
			s.log.Warn("notification user lookup failed", "user_id", userID.String(), "error", err)
		}
		user = u
	}
	if user == nil {
		user = &types.User{ID: userID}
	}
	if err := s.deps.Notifier.Send(ctx, user, goal, goal.Tone); err != nil {
		s.log.Warn("goal notification failed", "goal_id", goal.ID.String(), "error", err)
	}
}
