package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cybertech-18/lakshpath-backend/internal/modules/scoring"
)

const (
	TierBeginner     = "beginner"
	TierIntermediate = "intermediate"

	maxRoadmapMilestones = 12
)

// ProfileSummary is the learner context every enrichment prompt is built from.
type ProfileSummary struct {
	Name         string
	Scores       scoring.Scores
	AverageSkill float64
	Tier         string
	Strengths    []string
	Weaknesses   []string
}

func (p *ProfileSummary) validate() error {
	if p == nil {
		return errors.New("profile summary is required")
	}
	if p.Tier == "" {
		return errors.New("profile tier is required")
	}
	return nil
}

// SeniorityTier maps the average skill rating onto the enrichment tier.
func SeniorityTier(avg float64) string {
	if avg >= 4 {
		return TierIntermediate
	}
	return TierBeginner
}

type CareerReason struct {
	Title     string `json:"title"`
	Why       string `json:"why"`
	FirstStep string `json:"first_step,omitempty"`
}

type CareerExplanation struct {
	Summary string         `json:"summary"`
	Careers []CareerReason `json:"careers"`
}

func (e *CareerExplanation) Validate() error {
	e.Summary = strings.TrimSpace(e.Summary)
	kept := e.Careers[:0]
	for _, c := range e.Careers {
		c.Title = strings.TrimSpace(c.Title)
		if c.Title == "" {
			continue
		}
		kept = append(kept, c)
	}
	e.Careers = kept
	if e.Summary == "" && len(e.Careers) == 0 {
		return errors.New("explanation has neither summary nor careers")
	}
	return nil
}

type RoadmapStep struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Resources   []string `json:"resources,omitempty"`
}

type RoadmapPlan struct {
	Title         string        `json:"title"`
	TotalDuration string        `json:"total_duration"`
	Summary       string        `json:"summary,omitempty"`
	Milestones    []RoadmapStep `json:"milestones"`
}

func (p *RoadmapPlan) Validate() error {
	p.Title = strings.TrimSpace(p.Title)
	p.TotalDuration = strings.TrimSpace(p.TotalDuration)
	if len(p.Milestones) == 0 {
		return errors.New("roadmap has no milestones")
	}
	if len(p.Milestones) > maxRoadmapMilestones {
		p.Milestones = p.Milestones[:maxRoadmapMilestones]
	}
	for i := range p.Milestones {
		m := &p.Milestones[i]
		m.Title = strings.TrimSpace(m.Title)
		m.Duration = strings.TrimSpace(m.Duration)
		if m.Title == "" {
			return fmt.Errorf("milestone %d has no title", i)
		}
	}
	return nil
}

type GoalCriteria struct {
	Title           string   `json:"title,omitempty"`
	Description     string   `json:"description,omitempty"`
	SuccessCriteria string   `json:"success_criteria"`
	Nudges          []string `json:"nudges,omitempty"`
	Tone            string   `json:"tone,omitempty"`
}

func (g *GoalCriteria) Validate() error {
	g.SuccessCriteria = strings.TrimSpace(g.SuccessCriteria)
	if g.SuccessCriteria == "" {
		return errors.New("goal criteria missing success_criteria")
	}
	return nil
}

// Enrichment is one successful AI stage: the parsed payload plus the exact
// prompt and raw response, kept for the insight audit log.
type Enrichment[T any] struct {
	Payload *T
	Prompt  string
	Raw     string
}

type EnrichmentResult struct {
	Explanation  *Enrichment[CareerExplanation]
	Roadmap      *Enrichment[RoadmapPlan]
	GoalCriteria *Enrichment[GoalCriteria]
	// Draft is the roadmap milestones are built from: the AI plan when it
	// succeeded, the deterministic fallback otherwise.
	Draft        RoadmapPlan
	UsedFallback bool
}

// GoalCriteriaInput describes the milestone a goal contract is crafted for.
type GoalCriteriaInput struct {
	FieldOfInterest      string
	CareerTitle          string
	Tier                 string
	MilestoneTitle       string
	MilestoneDescription string
	Duration             string
}
