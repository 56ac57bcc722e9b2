package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"

	"github.com/cybertech-18/lakshpath-backend/internal/data/aggregates"
	"github.com/cybertech-18/lakshpath-backend/internal/data/repos"
	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
	"github.com/cybertech-18/lakshpath-backend/internal/modules/scoring"
	"github.com/cybertech-18/lakshpath-backend/internal/observability"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/apierr"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/dbctx"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

const (
	DefaultCareerMatchLimit = 3
	MinCareerMatchLimit     = 3
	MaxCareerMatchLimit     = 5

	RoadmapSourceAI       = "ai"
	RoadmapSourceFallback = "fallback"
)

type SubmitInput struct {
	Answers scoring.Answers
	UserID  *uuid.UUID
	Email   string
	Name    string
	Demo    bool
}

type UserIdentity struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type ScoreView struct {
	Skills            scoring.SkillRatings `json:"skills"`
	AverageSkill      float64              `json:"average_skill"`
	Tier              string               `json:"tier"`
	FieldOfInterest   string               `json:"field_of_interest"`
	DomainInterests   map[string]float64   `json:"domain_interests"`
	EducationLevel    string               `json:"education_level,omitempty"`
	WorkStyle         string               `json:"work_style,omitempty"`
	Motivation        string               `json:"motivation,omitempty"`
	SalaryExpectation string               `json:"salary_expectation,omitempty"`
	Strengths         []string             `json:"strengths"`
	Weaknesses        []string             `json:"weaknesses"`
}

type AIPayloads struct {
	CareerExplanation *CareerExplanation `json:"career_explanation"`
	Roadmap           *RoadmapPlan       `json:"roadmap"`
	GoalCriteria      *GoalCriteria      `json:"goal_criteria"`
}

type AssessmentResult struct {
	User          UserIdentity         `json:"user"`
	QuizResultID  uuid.UUID            `json:"quiz_result_id"`
	Scores        ScoreView            `json:"scores"`
	CareerMatches []*types.CareerMatch `json:"career_matches"`
	Roadmap       *types.Roadmap       `json:"roadmap"`
	GoalContract  *types.GoalContract  `json:"goal_contract"`
	AI            AIPayloads           `json:"ai"`
}

// AssessmentService turns raw answers into a persisted career plan.
type AssessmentService interface {
	Submit(ctx context.Context, in SubmitInput) (*AssessmentResult, error)
}

type AssessmentServiceDeps struct {
	Users      repos.UserRepo
	Scorer     scoring.Scorer
	Enrichment EnrichmentCoordinator
	Plans      aggregates.CareerPlanAggregate
	Metrics    *observability.Metrics
	MatchLimit int
	// Now defaults to time.Now.
	Now func() time.Time
}

type assessmentService struct {
	log  *logger.Logger
	deps AssessmentServiceDeps
}

func NewAssessmentService(log *logger.Logger, deps AssessmentServiceDeps) AssessmentService {
	deps.MatchLimit = ClampMatchLimit(deps.MatchLimit)
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &assessmentService{
		log:  log.With("service", "AssessmentService"),
		deps: deps,
	}
}

// ClampMatchLimit bounds the number of persisted career matches to 3..5.
func ClampMatchLimit(n int) int {
	if n <= 0 {
		return DefaultCareerMatchLimit
	}
	if n < MinCareerMatchLimit {
		return MinCareerMatchLimit
	}
	if n > MaxCareerMatchLimit {
		return MaxCareerMatchLimit
	}
	return n
}

// ValidateAnswers checks the input shape only; content is the scorer's job.
func ValidateAnswers(answers scoring.Answers) error {
	if answers == nil {
		return apierr.Validation("answers are required")
	}
	if len(answers) == 0 {
		return apierr.Validation("answers must not be empty")
	}
	for k := range answers {
		if strings.TrimSpace(k) == "" {
			return apierr.Validation("answers contain an empty question id")
		}
	}
	return nil
}

func (s *assessmentService) Submit(ctx context.Context, in SubmitInput) (*AssessmentResult, error) {
	ctx, span := observability.Tracer().Start(ctx, "assessment.submit")
	defer span.End()

	res, err := s.submit(ctx, in)
	if err != nil {
		kind := string(apierr.KindOf(err))
		if kind == "" {
			kind = string(apierr.KindInternal)
		}
		s.deps.Metrics.IncSubmission(kind)
		span.SetAttributes(attribute.String("submission.error_kind", kind))
		if apierr.IsKind(err, apierr.KindPersistence) || kind == string(apierr.KindInternal) {
			s.log.Error("assessment submission failed", "kind", kind, "error", err)
		}
		return nil, err
	}
	s.deps.Metrics.IncSubmission("ok")
	return res, nil
}

func (s *assessmentService) submit(ctx context.Context, in SubmitInput) (*AssessmentResult, error) {
	if err := ValidateAnswers(in.Answers); err != nil {
		return nil, err
	}

	user, err := s.resolveUser(ctx, in)
	if err != nil {
		return nil, err
	}

	scored, err := s.deps.Scorer.Compute(in.Answers)
	if err != nil {
		return nil, apierr.Validation("invalid answers: %v", err)
	}
	if len(scored.RankedCareers) == 0 {
		return nil, apierr.NoMatches("no careers matched the submitted answers")
	}
	careers := scored.RankedCareers
	if len(careers) > s.deps.MatchLimit {
		careers = careers[:s.deps.MatchLimit]
	}

	avg := scored.Scores.Skills.Average()
	strengths, weaknesses := StrengthsAndWeaknesses(scored.Scores.Skills)
	profile := &ProfileSummary{
		Name:         user.Name,
		Scores:       scored.Scores,
		AverageSkill: avg,
		Tier:         SeniorityTier(avg),
		Strengths:    strengths,
		Weaknesses:   weaknesses,
	}

	enriched, err := s.deps.Enrichment.Enrich(ctx, profile, careers)
	if err != nil {
		return nil, err
	}

	now := s.deps.Now().UTC()
	graph := s.buildGraph(user, profile, careers, enriched, now)
	if err := s.deps.Plans.CommitPlan(ctx, graph); err != nil {
		return nil, err
	}

	s.log.Info("assessment committed",
		"user_id", user.ID.String(),
		"quiz_result_id", graph.QuizResult.ID.String(),
		"matches", len(graph.Matches),
		"milestones", len(graph.Milestones),
		"roadmap_source", graph.Roadmap.Source,
		"goal", graph.Goal != nil,
		"insights", len(graph.Insights),
	)
	return assembleResult(user, profile, graph, enriched), nil
}

func (s *assessmentService) buildGraph(user *types.User, p *ProfileSummary, careers []scoring.RankedCareer, e *EnrichmentResult, now time.Time) *aggregates.PlanGraph {
	sc := p.Scores
	domains := datatypes.JSONMap{}
	for k, v := range sc.DomainInterests {
		domains[k] = v
	}
	graph := &aggregates.PlanGraph{
		QuizResult: &types.QuizResult{
			ID:                 uuid.New(),
			UserID:             user.ID,
			TechnicalScore:     sc.Skills.Technical,
			CommunicationScore: sc.Skills.Communication,
			AnalyticalScore:    sc.Skills.Analytical,
			CreativityScore:    sc.Skills.Creativity,
			FieldOfInterest:    sc.FieldOfInterest,
			DomainInterests:    domains,
			EducationLevel:     sc.EducationLevel,
			WorkStyle:          sc.WorkStyle,
			Motivation:         sc.Motivation,
			SalaryExpectation:  sc.SalaryExpectation,
			Strengths:          datatypes.JSONSlice[string](p.Strengths),
			Weaknesses:         datatypes.JSONSlice[string](p.Weaknesses),
		},
	}
	for _, c := range careers {
		graph.Matches = append(graph.Matches, &types.CareerMatch{
			Title:       c.Title,
			MatchScore:  c.MatchScore,
			Description: c.Description,
			AvgSalary:   c.AvgSalary,
			GrowthRate:  c.GrowthRate,
			KeySkills:   datatypes.JSONSlice[string](c.KeySkills),
		})
	}

	draft := e.Draft
	top := careers[0]
	rm := &types.Roadmap{
		ID:            uuid.New(),
		Title:         firstNonEmpty(draft.Title, top.Title+" Roadmap"),
		TotalDuration: firstNonEmpty(draft.TotalDuration, "6 months"),
		Summary:       draft.Summary,
		Source:        RoadmapSourceFallback,
	}
	if !e.UsedFallback && e.Roadmap != nil {
		rm.Source = RoadmapSourceAI
		if raw, err := json.Marshal(e.Roadmap.Payload); err == nil {
			rm.AIPlan = datatypes.JSON(raw)
		}
	}
	graph.Roadmap = rm
	graph.Milestones = MilestoneDrafts(draft)

	theme := LookupTheme(sc.FieldOfInterest)
	if e.GoalCriteria != nil && len(graph.Milestones) > 0 {
		first := graph.Milestones[0]
		first.ID = uuid.New()
		graph.Goal = newGoalContract(user.ID, first, e.GoalCriteria.Payload, theme, now)
	}

	if e.Explanation != nil {
		graph.Insights = append(graph.Insights, newInsight(types.InsightTypeCareerExplanation, e.Explanation.Payload.Summary, e.Explanation, map[string]any{
			"stage":   StageExplanation,
			"careers": len(careers),
		}))
	}
	if e.Roadmap != nil {
		graph.Insights = append(graph.Insights, newInsight(types.InsightTypeRoadmap, e.Roadmap.Payload.Title, e.Roadmap, map[string]any{
			"stage":      StageRoadmap,
			"career":     top.Title,
			"milestones": len(e.Roadmap.Payload.Milestones),
		}))
	}
	if graph.Goal != nil {
		graph.Insights = append(graph.Insights, newInsight(types.InsightTypeGoalContract, graph.Goal.SuccessCriteria, e.GoalCriteria, map[string]any{
			"stage":              StageGoalCriteria,
			"milestone_position": 0,
		}))
	}
	return graph
}

// MilestoneDrafts converts a roadmap plan into milestone rows: contiguous
// positions from zero, the first IN_PROGRESS and the rest PENDING.
func MilestoneDrafts(plan RoadmapPlan) []*types.Milestone {
	out := make([]*types.Milestone, 0, len(plan.Milestones))
	for i, step := range plan.Milestones {
		status := types.MilestoneStatusPending
		if i == 0 {
			status = types.MilestoneStatusInProgress
		}
		out = append(out, &types.Milestone{
			Position:    i,
			Title:       step.Title,
			Description: step.Description,
			Duration:    step.Duration,
			Status:      status,
			Resources:   datatypes.JSONSlice[string](append([]string{}, step.Resources...)),
		})
	}
	return out
}

type skillRule struct {
	strength string
	weakness string
	rating   func(scoring.SkillRatings) int
}

var skillRules = []skillRule{
	{"Technical problem solving", "Hands-on technical depth", func(s scoring.SkillRatings) int { return s.Technical }},
	{"Clear communication", "Narrative confidence", func(s scoring.SkillRatings) int { return s.Communication }},
	{"Analytical reasoning", "Structured problem decomposition", func(s scoring.SkillRatings) int { return s.Analytical }},
	{"Creative ideation", "Divergent thinking", func(s scoring.SkillRatings) int { return s.Creativity }},
}

// StrengthsAndWeaknesses applies one rule per skill axis: a rating of 4 or
// more is a strength, anything lower a named weakness.
func StrengthsAndWeaknesses(s scoring.SkillRatings) (strengths, weaknesses []string) {
	strengths, weaknesses = []string{}, []string{}
	for _, r := range skillRules {
		if r.rating(s) >= 4 {
			strengths = append(strengths, r.strength)
		} else {
			weaknesses = append(weaknesses, r.weakness)
		}
	}
	return strengths, weaknesses
}

func (s *assessmentService) resolveUser(ctx context.Context, in SubmitInput) (*types.User, error) {
	const op = "assessment.resolve_user"
	dbc := dbctx.Context{Ctx: ctx}

	if in.UserID != nil && *in.UserID != uuid.Nil {
		u, err := s.deps.Users.GetByID(dbc, *in.UserID)
		if err != nil {
			return nil, apierr.Persistence(op, err)
		}
		if u != nil {
			return u, nil
		}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email != "" {
		u, err := s.deps.Users.GetByEmail(dbc, email)
		if err != nil {
			return nil, apierr.Persistence(op, err)
		}
		if u != nil {
			return u, nil
		}
	}

	u := &types.User{ID: uuid.New(), Role: types.RoleUser}
	if in.UserID != nil && *in.UserID != uuid.Nil {
		u.ID = *in.UserID
	}
	if in.Demo {
		u.Role = types.RoleDemo
	}
	u.Email = email
	if u.Email == "" {
		u.Email = fmt.Sprintf("guest-%s@lakshpath.local", u.ID.String()[:8])
	}
	u.Name = strings.TrimSpace(in.Name)
	if u.Name == "" {
		u.Name = "Guest Learner"
		if in.Demo {
			u.Name = "Demo Learner"
		}
	}

	if _, err := s.deps.Users.Create(dbc, []*types.User{u}); err != nil {
		if !aggregates.IsUniqueViolation(err) {
			return nil, apierr.Persistence(op, err)
		}
		// A concurrent submission with the same email won the insert.
		existing, gerr := s.deps.Users.GetByEmail(dbc, u.Email)
		if gerr != nil {
			return nil, apierr.Persistence(op, gerr)
		}
		if existing == nil {
			return nil, apierr.Persistence(op, err)
		}
		return existing, nil
	}
	s.log.Info("user created", "user_id", u.ID.String(), "demo", u.IsDemo())
	return u, nil
}

func assembleResult(user *types.User, p *ProfileSummary, g *aggregates.PlanGraph, e *EnrichmentResult) *AssessmentResult {
	rm := g.Roadmap
	sort.SliceStable(rm.Milestones, func(i, j int) bool { return rm.Milestones[i].Position < rm.Milestones[j].Position })
	out := &AssessmentResult{
		User:         UserIdentity{ID: user.ID, Name: user.Name, Email: user.Email},
		QuizResultID: g.QuizResult.ID,
		Scores: ScoreView{
			Skills:            p.Scores.Skills,
			AverageSkill:      p.AverageSkill,
			Tier:              p.Tier,
			FieldOfInterest:   p.Scores.FieldOfInterest,
			DomainInterests:   p.Scores.DomainInterests,
			EducationLevel:    p.Scores.EducationLevel,
			WorkStyle:         p.Scores.WorkStyle,
			Motivation:        p.Scores.Motivation,
			SalaryExpectation: p.Scores.SalaryExpectation,
			Strengths:         p.Strengths,
			Weaknesses:        p.Weaknesses,
		},
		CareerMatches: g.Matches,
		Roadmap:       rm,
		GoalContract:  g.Goal,
	}
	if e.Explanation != nil {
		out.AI.CareerExplanation = e.Explanation.Payload
	}
	if e.Roadmap != nil {
		out.AI.Roadmap = e.Roadmap.Payload
	}
	if e.GoalCriteria != nil {
		out.AI.GoalCriteria = e.GoalCriteria.Payload
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
