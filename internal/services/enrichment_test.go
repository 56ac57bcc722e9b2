package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/cybertech-18/lakshpath-backend/internal/modules/scoring"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/apierr"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

// stageGateway answers per stage; stages without a reply fail upstream.
type stageGateway struct {
	mu      sync.Mutex
	replies map[string]string
	prompts map[string]string
	calls   map[string]int
}

func newStageGateway(replies map[string]string) *stageGateway {
	return &stageGateway{replies: replies, prompts: map[string]string{}, calls: map[string]int{}}
}

func (g *stageGateway) Call(_ context.Context, prompt string, opts CallOptions) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls[opts.Stage]++
	g.prompts[opts.Stage] = prompt
	raw, ok := g.replies[opts.Stage]
	if !ok {
		return "", apierr.Upstream("ai."+opts.Stage, errors.New("429 quota exhausted"))
	}
	return raw, nil
}

const (
	explanationJSON = `{"summary":"You like building things","careers":[{"title":"Software Engineer","why":"strong technical score"}]}`
	roadmapJSON     = "```json\n" + `{"title":"SWE Path","total_duration":"4 months","milestones":[{"title":"Learn Go","description":"basics","duration":"2 weeks"},{"title":"Build API","duration":"1 month"}]}` + "\n```"
	goalJSON        = `{"title":"Learn Go","success_criteria":"Finish the tour and write 3 programs","nudges":["Code 30 minutes daily"],"tone":"focused"}`
)

func testProfile() *ProfileSummary {
	return &ProfileSummary{
		Scores: scoring.Scores{
			Skills:          scoring.SkillRatings{Technical: 5, Communication: 2, Analytical: 4, Creativity: 2},
			FieldOfInterest: "technology",
		},
		AverageSkill: 3.25,
		Tier:         TierBeginner,
	}
}

func testCareers() []scoring.RankedCareer {
	return []scoring.RankedCareer{
		{Title: "Software Engineer", Domain: "technology", MatchScore: 90, KeySkills: []string{"Go", "SQL", "Testing", "Docker"}},
		{Title: "Data Analyst", Domain: "data", MatchScore: 70},
	}
}

func TestEnrich_AllStagesSucceed(t *testing.T) {
	gw := newStageGateway(map[string]string{
		StageExplanation:  explanationJSON,
		StageRoadmap:      roadmapJSON,
		StageGoalCriteria: goalJSON,
	})
	res, err := NewEnrichmentCoordinator(logger.Nop(), gw, nil).Enrich(context.Background(), testProfile(), testCareers())
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if res.Explanation == nil || res.Roadmap == nil || res.GoalCriteria == nil {
		t.Fatalf("expected all stages, got %+v", res)
	}
	if res.UsedFallback {
		t.Fatalf("should not use fallback")
	}
	if res.Draft.Title != "SWE Path" || len(res.Draft.Milestones) != 2 {
		t.Fatalf("unexpected draft %+v", res.Draft)
	}
	if !strings.Contains(gw.prompts[StageGoalCriteria], "Learn Go") {
		t.Fatalf("goal prompt should target the first AI milestone: %q", gw.prompts[StageGoalCriteria])
	}
	if res.Roadmap.Raw != roadmapJSON || res.Roadmap.Prompt == "" {
		t.Fatalf("enrichment should keep prompt and raw response")
	}
}

func TestEnrich_RoadmapFailureFallsBack(t *testing.T) {
	gw := newStageGateway(map[string]string{
		StageExplanation:  explanationJSON,
		StageGoalCriteria: goalJSON,
	})
	res, err := NewEnrichmentCoordinator(logger.Nop(), gw, nil).Enrich(context.Background(), testProfile(), testCareers())
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if res.Roadmap != nil || !res.UsedFallback {
		t.Fatalf("want fallback roadmap")
	}
	if res.Explanation == nil {
		t.Fatalf("roadmap failure must not cancel the explanation")
	}
	if want := "Foundations of Software Engineer"; res.Draft.Milestones[0].Title != want {
		t.Fatalf("want first milestone=%q got=%q", want, res.Draft.Milestones[0].Title)
	}
	if res.GoalCriteria == nil || !strings.Contains(gw.prompts[StageGoalCriteria], "Foundations of Software Engineer") {
		t.Fatalf("goal criteria should run on the fallback draft")
	}
}

func TestEnrich_MalformedStagesAreAbsorbed(t *testing.T) {
	gw := newStageGateway(map[string]string{
		StageExplanation:  "I cannot help with that",
		StageRoadmap:      `{"title":"empty","milestones":[]}`,
		StageGoalCriteria: `{"nudges":["x"]}`,
	})
	res, err := NewEnrichmentCoordinator(logger.Nop(), gw, nil).Enrich(context.Background(), testProfile(), testCareers())
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if res.Explanation != nil || res.Roadmap != nil || res.GoalCriteria != nil {
		t.Fatalf("malformed stages should be nil: %+v", res)
	}
	if !res.UsedFallback || len(res.Draft.Milestones) < 2 {
		t.Fatalf("fallback roadmap expected")
	}
	for _, stage := range []string{StageExplanation, StageRoadmap, StageGoalCriteria} {
		if gw.calls[stage] != 1 {
			t.Fatalf("stage %s: malformed output must not be retried, calls=%d", stage, gw.calls[stage])
		}
	}
}

func TestEnrich_RejectsProgrammerErrors(t *testing.T) {
	c := NewEnrichmentCoordinator(logger.Nop(), newStageGateway(nil), nil)
	if _, err := c.Enrich(context.Background(), nil, testCareers()); !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("nil profile: want validation got=%v", err)
	}
	if _, err := c.Enrich(context.Background(), testProfile(), nil); !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("no careers: want validation got=%v", err)
	}
}

func TestFallbackRoadmap(t *testing.T) {
	plan := FallbackRoadmap(scoring.RankedCareer{Title: "UX Designer", KeySkills: []string{"Research", "Wireframing", "Prototyping", "Testing"}})
	if len(plan.Milestones) != 5 {
		t.Fatalf("want=5 milestones got=%d", len(plan.Milestones))
	}
	if plan.Milestones[1].Title != "Build Research proficiency" {
		t.Fatalf("unexpected skill milestone %q", plan.Milestones[1].Title)
	}
	if err := plan.Validate(); err != nil {
		t.Fatalf("fallback must validate: %v", err)
	}
	bare := FallbackRoadmap(scoring.RankedCareer{Title: "Analyst"})
	if len(bare.Milestones) != 2 {
		t.Fatalf("want=2 milestones without key skills got=%d", len(bare.Milestones))
	}
}

func TestSeniorityTier(t *testing.T) {
	if SeniorityTier(4) != TierIntermediate || SeniorityTier(3.99) != TierBeginner {
		t.Fatalf("tier threshold is 4")
	}
}
