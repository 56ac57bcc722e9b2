package services

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
	"github.com/cybertech-18/lakshpath-backend/internal/pkg/orderedset"
)

const (
	MaxNudges           = 5
	defaultDurationWeek = 4
	insightSource       = "gemini"
)

var firstIntRE = regexp.MustCompile(`\d+`)

// ParseDurationWeeks reads the first integer in a free-text duration. Month
// durations are converted at four weeks per month; anything without a number
// counts as four weeks.
func ParseDurationWeeks(duration string) int {
	d := strings.ToLower(strings.TrimSpace(duration))
	if d == "" {
		return defaultDurationWeek
	}
	tok := firstIntRE.FindString(d)
	if tok == "" {
		return defaultDurationWeek
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n <= 0 {
		return defaultDurationWeek
	}
	if strings.Contains(d, "month") {
		n *= 4
	}
	return n
}

// MergeNudges keeps AI nudges first, then theme nudges, deduplicated and capped.
func MergeNudges(ai []string, theme []string) []string {
	set := orderedset.New[string](MaxNudges)
	for _, group := range [][]string{ai, theme} {
		for _, n := range group {
			if n = strings.TrimSpace(n); n != "" {
				set.Add(n)
			}
		}
	}
	return set.Values()
}

// newGoalContract builds an ACTIVE contract for milestone. criteria may be nil,
// in which case the milestone and theme supply every field.
func newGoalContract(userID uuid.UUID, m *types.Milestone, criteria *GoalCriteria, theme DomainTheme, now time.Time) *types.GoalContract {
	g := &types.GoalContract{
		UserID:      userID,
		Title:       m.Title,
		Description: m.Description,
		StartDate:   now,
		EndDate:     now.AddDate(0, 0, ParseDurationWeeks(m.Duration)*7),
		Status:      types.GoalStatusActive,
		Tone:        theme.Tone,
	}
	if m.ID != uuid.Nil {
		id := m.ID
		g.MilestoneID = &id
	}
	var aiNudges []string
	if criteria != nil {
		if t := strings.TrimSpace(criteria.Title); t != "" {
			g.Title = t
		}
		if d := strings.TrimSpace(criteria.Description); d != "" {
			g.Description = d
		}
		g.SuccessCriteria = criteria.SuccessCriteria
		if tone := strings.TrimSpace(criteria.Tone); tone != "" {
			g.Tone = tone
		}
		aiNudges = criteria.Nudges
	}
	if g.SuccessCriteria == "" {
		g.SuccessCriteria = "Complete \"" + m.Title + "\" and summarise what you learned."
	}
	g.Nudges = datatypes.JSONSlice[string](MergeNudges(aiNudges, theme.Nudges))
	return g
}

// newInsight records one successful AI stage. Metadata carries the parsed
// payload so history views need not re-parse the raw response.
func newInsight[T any](typ, summary string, e *Enrichment[T], extra map[string]any) *types.Insight {
	meta := datatypes.JSONMap{}
	if e.Payload != nil {
		if raw, err := json.Marshal(e.Payload); err == nil {
			var parsed map[string]any
			if json.Unmarshal(raw, &parsed) == nil {
				meta["payload"] = parsed
			}
		}
	}
	for k, v := range extra {
		meta[k] = v
	}
	return &types.Insight{
		Source:   insightSource,
		Type:     typ,
		Prompt:   e.Prompt,
		Response: e.Raw,
		Summary:  strings.TrimSpace(summary),
		Metadata: meta,
	}
}
