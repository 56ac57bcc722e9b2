package services

import (
	"fmt"
	"strings"

	"github.com/cybertech-18/lakshpath-backend/internal/modules/scoring"
)

func explanationPrompt(p *ProfileSummary, careers []scoring.RankedCareer) string {
	var b strings.Builder
	b.WriteString("Explain why these careers fit the learner.\n")
	writeProfile(&b, p)
	b.WriteString("Careers (ranked):\n")
	for i, c := range careers {
		fmt.Fprintf(&b, "%d. %s (match %.0f%%): %s\n", i+1, c.Title, c.MatchScore, c.Description)
	}
	b.WriteString(`Return JSON: {"summary": string, "careers": [{"title": string, "why": string, "first_step": string}]}`)
	return b.String()
}

func roadmapPrompt(p *ProfileSummary, top scoring.RankedCareer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a month-by-month learning roadmap to become a %s at %s level.\n", top.Title, p.Tier)
	writeProfile(&b, p)
	if len(top.KeySkills) > 0 {
		fmt.Fprintf(&b, "Key skills for the role: %s\n", strings.Join(top.KeySkills, ", "))
	}
	b.WriteString("Use 3 to 6 milestones. Durations are short labels such as \"1 month\" or \"2 weeks\".\n")
	b.WriteString(`Return JSON: {"title": string, "total_duration": string, "summary": string, "milestones": [{"title": string, "description": string, "duration": string, "resources": [string]}]}`)
	return b.String()
}

func goalCriteriaPrompt(in GoalCriteriaInput, theme DomainTheme) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a goal contract for the milestone %q", in.MilestoneTitle)
	if in.CareerTitle != "" {
		fmt.Fprintf(&b, " on the path to %s", in.CareerTitle)
	}
	b.WriteString(".\n")
	if in.MilestoneDescription != "" {
		fmt.Fprintf(&b, "Milestone details: %s\n", in.MilestoneDescription)
	}
	if in.Duration != "" {
		fmt.Fprintf(&b, "Time box: %s\n", in.Duration)
	}
	if in.Tier != "" {
		fmt.Fprintf(&b, "Learner level: %s\n", in.Tier)
	}
	fmt.Fprintf(&b, "Tone: %s. %s\n", theme.Tone, theme.AIHook)
	b.WriteString("Success criteria must be concrete and checkable. Give at most 3 short daily nudges.\n")
	b.WriteString(`Return JSON: {"title": string, "description": string, "success_criteria": string, "nudges": [string], "tone": string}`)
	return b.String()
}

func writeProfile(b *strings.Builder, p *ProfileSummary) {
	s := p.Scores
	fmt.Fprintf(b, "Skills (1-5): technical %d, communication %d, analytical %d, creativity %d (average %.2f)\n",
		s.Skills.Technical, s.Skills.Communication, s.Skills.Analytical, s.Skills.Creativity, p.AverageSkill)
	if s.FieldOfInterest != "" {
		fmt.Fprintf(b, "Field of interest: %s\n", s.FieldOfInterest)
	}
	if s.EducationLevel != "" {
		fmt.Fprintf(b, "Education: %s\n", s.EducationLevel)
	}
	if s.WorkStyle != "" {
		fmt.Fprintf(b, "Work style: %s\n", s.WorkStyle)
	}
	if s.Motivation != "" {
		fmt.Fprintf(b, "Motivation: %s\n", s.Motivation)
	}
	if len(p.Strengths) > 0 {
		fmt.Fprintf(b, "Strengths: %s\n", strings.Join(p.Strengths, ", "))
	}
	if len(p.Weaknesses) > 0 {
		fmt.Fprintf(b, "Growth areas: %s\n", strings.Join(p.Weaknesses, ", "))
	}
}
