package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/cybertech-18/lakshpath-backend/internal/modules/scoring"
	"github.com/cybertech-18/lakshpath-backend/internal/observability"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/apierr"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

const (
	StageExplanation  = "career_explanation"
	StageRoadmap      = "roadmap"
	StageGoalCriteria = "goal_criteria"
)

// EnrichmentCoordinator runs the optional AI stages of a submission. Stage
// failures are logged and surface only as nil results.
type EnrichmentCoordinator interface {
	// Enrich fails only on programmer-error input (nil profile, no careers).
	Enrich(ctx context.Context, profile *ProfileSummary, careers []scoring.RankedCareer) (*EnrichmentResult, error)
	// CraftGoalCriteria returns nil when the model call or parse fails.
	CraftGoalCriteria(ctx context.Context, in GoalCriteriaInput) *Enrichment[GoalCriteria]
}

type enrichmentCoordinator struct {
	log     *logger.Logger
	ai      AIGateway
	metrics *observability.Metrics
}

func NewEnrichmentCoordinator(log *logger.Logger, ai AIGateway, metrics *observability.Metrics) EnrichmentCoordinator {
	return &enrichmentCoordinator{
		log:     log.With("service", "EnrichmentCoordinator"),
		ai:      ai,
		metrics: metrics,
	}
}

var (
	temperatureExplanation  = 0.7
	temperatureRoadmap      = 0.4
	temperatureGoalCriteria = 0.5
)

func (c *enrichmentCoordinator) Enrich(ctx context.Context, profile *ProfileSummary, careers []scoring.RankedCareer) (*EnrichmentResult, error) {
	if err := profile.validate(); err != nil {
		return nil, apierr.Validation("enrichment: %v", err)
	}
	if len(careers) == 0 {
		return nil, apierr.Validation("enrichment: at least one career is required")
	}
	ctx, span := observability.Tracer().Start(ctx, "enrichment.enrich")
	defer span.End()

	top := careers[0]
	out := &EnrichmentResult{}

	// Explanation and roadmap are independent. Neither goroutine returns an
	// error, so one failing never cancels the other.
	var g errgroup.Group
	g.Go(func() error {
		out.Explanation = runStage[CareerExplanation](ctx, c, StageExplanation, explanationPrompt(profile, careers), temperatureExplanation)
		return nil
	})
	g.Go(func() error {
		out.Roadmap = runStage[RoadmapPlan](ctx, c, StageRoadmap, roadmapPrompt(profile, top), temperatureRoadmap)
		return nil
	})
	_ = g.Wait()

	if out.Roadmap != nil {
		out.Draft = *out.Roadmap.Payload
	} else {
		out.Draft = FallbackRoadmap(top)
		out.UsedFallback = true
		c.metrics.IncEnrichment(StageRoadmap, "fallback")
		c.log.Info("using fallback roadmap", "career", top.Title, "milestones", len(out.Draft.Milestones))
	}

	if len(out.Draft.Milestones) > 0 {
		first := out.Draft.Milestones[0]
		out.GoalCriteria = c.CraftGoalCriteria(ctx, GoalCriteriaInput{
			FieldOfInterest:      profile.Scores.FieldOfInterest,
			CareerTitle:          top.Title,
			Tier:                 profile.Tier,
			MilestoneTitle:       first.Title,
			MilestoneDescription: first.Description,
			Duration:             first.Duration,
		})
	}

	span.SetAttributes(
		attribute.Bool("enrichment.explanation", out.Explanation != nil),
		attribute.Bool("enrichment.roadmap", out.Roadmap != nil),
		attribute.Bool("enrichment.goal_criteria", out.GoalCriteria != nil),
		attribute.Bool("enrichment.fallback", out.UsedFallback),
	)
	return out, nil
}

func (c *enrichmentCoordinator) CraftGoalCriteria(ctx context.Context, in GoalCriteriaInput) *Enrichment[GoalCriteria] {
	theme := LookupTheme(in.FieldOfInterest)
	return runStage[GoalCriteria](ctx, c, StageGoalCriteria, goalCriteriaPrompt(in, theme), temperatureGoalCriteria)
}

func runStage[T any](ctx context.Context, c *enrichmentCoordinator, stage, prompt string, temperature float64) *Enrichment[T] {
	if c.ai == nil {
		c.metrics.IncEnrichment(stage, "skipped")
		return nil
	}
	temp := temperature
	raw, err := c.ai.Call(ctx, prompt, CallOptions{JSONMode: true, Temperature: &temp, Stage: stage})
	if err != nil {
		c.stageFailed(stage, err)
		return nil
	}
	payload, err := ParseJSON[T](raw)
	if err != nil {
		c.stageFailed(stage, err)
		return nil
	}
	c.metrics.IncEnrichment(stage, "ok")
	return &Enrichment[T]{Payload: payload, Prompt: prompt, Raw: raw}
}

func (c *enrichmentCoordinator) stageFailed(stage string, err error) {
	kind := apierr.KindOf(err)
	if kind == "" {
		kind = apierr.KindInternal
	}
	c.metrics.IncEnrichment(stage, string(kind))
	c.log.Warn("enrichment stage failed", "stage", stage, "kind", string(kind), "error", err)
}

// FallbackRoadmap derives a deterministic roadmap from a career match. It
// always yields at least two milestones.
func FallbackRoadmap(top scoring.RankedCareer) RoadmapPlan {
	title := top.Title
	if title == "" {
		title = "Career"
	}
	steps := []RoadmapStep{{
		Title:       "Foundations of " + title,
		Description: fmt.Sprintf("Learn the core concepts, vocabulary and tools every %s relies on.", title),
		Duration:    "1 month",
	}}
	skills := top.KeySkills
	if len(skills) > 3 {
		skills = skills[:3]
	}
	for _, s := range skills {
		steps = append(steps, RoadmapStep{
			Title:       "Build " + s + " proficiency",
			Description: fmt.Sprintf("Practice %s through guided exercises and one small project.", s),
			Duration:    "1 month",
			Resources:   []string{s + " official documentation"},
		})
	}
	steps = append(steps, RoadmapStep{
		Title:       "Portfolio and job readiness",
		Description: fmt.Sprintf("Ship a portfolio project, polish your resume and rehearse %s interviews.", title),
		Duration:    "2 months",
	})
	return RoadmapPlan{
		Title:         title + " Roadmap",
		TotalDuration: "6 months",
		Summary:       fmt.Sprintf("A step-by-step path from fundamentals to job readiness as a %s.", title),
		Milestones:    steps,
	}
}
