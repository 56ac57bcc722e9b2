package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/cybertech-18/lakshpath-backend/internal/data/aggregates"
	"github.com/cybertech-18/lakshpath-backend/internal/data/repos"
	"github.com/cybertech-18/lakshpath-backend/internal/data/repos/testutil"
	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
	"github.com/cybertech-18/lakshpath-backend/internal/modules/scoring"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/apierr"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

type testStack struct {
	db    *gorm.DB
	log   *logger.Logger
	users repos.UserRepo
	plans aggregates.CareerPlanAggregate
	deps  aggregates.CareerPlanAggregateDeps
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	deps := aggregates.CareerPlanAggregateDeps{
		Base:        aggregates.BaseDeps{DB: db, Log: log},
		QuizResults: repos.NewQuizResultRepo(db, log),
		Matches:     repos.NewCareerMatchRepo(db, log),
		Roadmaps:    repos.NewRoadmapRepo(db, log),
		Milestones:  repos.NewMilestoneRepo(db, log),
		Goals:       repos.NewGoalContractRepo(db, log),
		Insights:    repos.NewInsightRepo(db, log),
	}
	return &testStack{
		db:    db,
		log:   log,
		users: repos.NewUserRepo(db, log),
		plans: aggregates.NewCareerPlanAggregate(deps),
		deps:  deps,
	}
}

func (s *testStack) assessment(gw AIGateway) AssessmentService {
	return NewAssessmentService(s.log, AssessmentServiceDeps{
		Users:      s.users,
		Scorer:     scoring.NewDefaultScorer(),
		Enrichment: NewEnrichmentCoordinator(s.log, gw, nil),
		Plans:      s.plans,
		Now:        func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) },
	})
}

func (s *testStack) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	if err := s.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func scenarioAnswers() scoring.Answers {
	return scoring.Answers{
		"technical":         5,
		"communication":     2,
		"analytical":        4,
		"creativity":        2,
		"field_of_interest": "technology",
		"education_level":   "Bachelor's",
	}
}

func TestSubmit_FullEnrichment(t *testing.T) {
	st := newTestStack(t)
	gw := newStageGateway(map[string]string{
		StageExplanation:  explanationJSON,
		StageRoadmap:      roadmapJSON,
		StageGoalCriteria: goalJSON,
	})
	res, err := st.assessment(gw).Submit(context.Background(), SubmitInput{
		Answers: scenarioAnswers(),
		Email:   "Asha@Example.com",
		Name:    "Asha",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	wantStrengths := []string{"Technical problem solving", "Analytical reasoning"}
	wantWeaknesses := []string{"Narrative confidence", "Divergent thinking"}
	if !reflect.DeepEqual(res.Scores.Strengths, wantStrengths) {
		t.Fatalf("strengths want=%v got=%v", wantStrengths, res.Scores.Strengths)
	}
	if !reflect.DeepEqual(res.Scores.Weaknesses, wantWeaknesses) {
		t.Fatalf("weaknesses want=%v got=%v", wantWeaknesses, res.Scores.Weaknesses)
	}
	if res.Scores.AverageSkill != 3.25 || res.Scores.Tier != TierBeginner {
		t.Fatalf("want average=3.25 tier=beginner got=%v %s", res.Scores.AverageSkill, res.Scores.Tier)
	}

	if got := st.count(t, &types.CareerMatch{}); got != int64(len(res.CareerMatches)) {
		t.Fatalf("persisted matches=%d response matches=%d", got, len(res.CareerMatches))
	}
	for i := 1; i < len(res.CareerMatches); i++ {
		if res.CareerMatches[i].MatchScore > res.CareerMatches[0].MatchScore {
			t.Fatalf("first match must have the highest score")
		}
	}
	if len(res.CareerMatches) != DefaultCareerMatchLimit {
		t.Fatalf("want=%d matches got=%d", DefaultCareerMatchLimit, len(res.CareerMatches))
	}

	if res.Roadmap.Source != RoadmapSourceAI || len(res.Roadmap.Milestones) != 2 {
		t.Fatalf("unexpected roadmap %+v", res.Roadmap)
	}
	if res.GoalContract == nil || res.GoalContract.MilestoneID == nil || *res.GoalContract.MilestoneID != res.Roadmap.Milestones[0].ID {
		t.Fatalf("goal contract should bind to the first milestone")
	}
	if want := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC); !res.GoalContract.EndDate.Equal(want) {
		t.Fatalf("want end=%v got=%v", want, res.GoalContract.EndDate)
	}
	if got := st.count(t, &types.Insight{}); got != 3 {
		t.Fatalf("want=3 insights got=%d", got)
	}
	if res.AI.CareerExplanation == nil || res.AI.Roadmap == nil || res.AI.GoalCriteria == nil {
		t.Fatalf("all AI payloads expected")
	}
	if res.User.Email != "asha@example.com" || res.User.Name != "Asha" {
		t.Fatalf("unexpected user %+v", res.User)
	}
}

func TestSubmit_RoadmapFailureUsesFallback(t *testing.T) {
	st := newTestStack(t)
	gw := newStageGateway(map[string]string{StageExplanation: explanationJSON})
	res, err := st.assessment(gw).Submit(context.Background(), SubmitInput{Answers: scenarioAnswers()})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	ms := res.Roadmap.Milestones
	if len(ms) == 0 {
		t.Fatalf("fallback roadmap must have milestones")
	}
	if ms[0].Status != types.MilestoneStatusInProgress {
		t.Fatalf("first milestone want=IN_PROGRESS got=%s", ms[0].Status)
	}
	for i, m := range ms[1:] {
		if m.Status != types.MilestoneStatusPending {
			t.Fatalf("milestone %d want=PENDING got=%s", i+1, m.Status)
		}
		if m.Position != i+1 {
			t.Fatalf("want position=%d got=%d", i+1, m.Position)
		}
	}
	if res.Roadmap.Source != RoadmapSourceFallback {
		t.Fatalf("want fallback source got=%s", res.Roadmap.Source)
	}
	if res.GoalContract != nil || st.count(t, &types.GoalContract{}) != 0 {
		t.Fatalf("no goal contract without goal criteria")
	}
	if res.AI.Roadmap != nil || res.AI.GoalCriteria != nil || res.AI.CareerExplanation == nil {
		t.Fatalf("unexpected ai payloads %+v", res.AI)
	}
	if got := st.count(t, &types.Milestone{}); got != int64(len(ms)) {
		t.Fatalf("persisted milestones=%d response=%d", got, len(ms))
	}
}

func TestSubmit_ValidationAndNoMatches(t *testing.T) {
	st := newTestStack(t)
	svc := st.assessment(newStageGateway(nil))

	if _, err := svc.Submit(context.Background(), SubmitInput{}); !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("missing answers: want validation got=%v", err)
	}
	if _, err := svc.Submit(context.Background(), SubmitInput{Answers: scoring.Answers{"technical": 9}}); !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("malformed answers: want validation got=%v", err)
	}
	_, err := svc.Submit(context.Background(), SubmitInput{Answers: scoring.Answers{
		"technical": 1, "communication": 1, "analytical": 1, "creativity": 1,
	}})
	if !apierr.IsKind(err, apierr.KindNoMatches) {
		t.Fatalf("want no_matches got=%v", err)
	}
	if got := st.count(t, &types.QuizResult{}); got != 0 {
		t.Fatalf("failed submissions must not persist quiz results, got=%d", got)
	}
}

func TestSubmit_ResolvesExistingUser(t *testing.T) {
	st := newTestStack(t)
	svc := st.assessment(newStageGateway(nil))
	ctx := context.Background()

	first, err := svc.Submit(ctx, SubmitInput{Answers: scenarioAnswers(), Email: "same@example.com"})
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	second, err := svc.Submit(ctx, SubmitInput{Answers: scenarioAnswers(), Email: " SAME@example.com "})
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if first.User.ID != second.User.ID {
		t.Fatalf("same email should resolve to the same user")
	}
	id := first.User.ID
	third, err := svc.Submit(ctx, SubmitInput{Answers: scenarioAnswers(), UserID: &id})
	if err != nil {
		t.Fatalf("third Submit: %v", err)
	}
	if third.User.ID != id {
		t.Fatalf("lookup by id failed")
	}
	if got := st.count(t, &types.User{}); got != 1 {
		t.Fatalf("want=1 user got=%d", got)
	}
}

func TestSubmit_DemoUser(t *testing.T) {
	st := newTestStack(t)
	res, err := st.assessment(newStageGateway(nil)).Submit(context.Background(), SubmitInput{Answers: scenarioAnswers(), Demo: true})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	u, err := st.users.GetByID(ctxDBC(), res.User.ID)
	if err != nil || u == nil {
		t.Fatalf("load user: %v", err)
	}
	if !u.IsDemo() || u.Email == "" {
		t.Fatalf("want demo user with placeholder email got=%+v", u)
	}
}

type failingPlans struct {
	aggregates.CareerPlanAggregate
}

func (failingPlans) CommitPlan(context.Context, *aggregates.PlanGraph) error {
	return apierr.Persistence("career_plan.commit", errors.New("connection lost"))
}

func TestSubmit_PersistenceFailureIsFatal(t *testing.T) {
	st := newTestStack(t)
	svc := NewAssessmentService(st.log, AssessmentServiceDeps{
		Users:      st.users,
		Scorer:     scoring.NewDefaultScorer(),
		Enrichment: NewEnrichmentCoordinator(st.log, newStageGateway(nil), nil),
		Plans:      failingPlans{},
	})
	_, err := svc.Submit(context.Background(), SubmitInput{Answers: scenarioAnswers()})
	if !apierr.IsKind(err, apierr.KindPersistence) {
		t.Fatalf("want persistence got=%v", err)
	}
}

func TestClampMatchLimit(t *testing.T) {
	cases := map[int]int{0: 3, -1: 3, 1: 3, 3: 3, 4: 4, 5: 5, 9: 5}
	for in, want := range cases {
		if got := ClampMatchLimit(in); got != want {
			t.Fatalf("ClampMatchLimit(%d): want=%d got=%d", in, want, got)
		}
	}
}

func TestStrengthsAndWeaknesses_AllStrong(t *testing.T) {
	s, w := StrengthsAndWeaknesses(scoring.SkillRatings{Technical: 4, Communication: 4, Analytical: 5, Creativity: 4})
	if len(s) != 4 || len(w) != 0 {
		t.Fatalf("want 4 strengths 0 weaknesses got=%v %v", s, w)
	}
}
