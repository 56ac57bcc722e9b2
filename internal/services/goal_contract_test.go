package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
)

func TestParseDurationWeeks(t *testing.T) {
	cases := map[string]int{
		"3 months":       12,
		"2 weeks":        2,
		"":               4,
		"Ongoing":        4,
		"1 Month":        4,
		"6-8 weeks":      6,
		"about 10 weeks": 10,
		"0 weeks":        4,
	}
	for in, want := range cases {
		if got := ParseDurationWeeks(in); got != want {
			t.Fatalf("ParseDurationWeeks(%q): want=%d got=%d", in, want, got)
		}
	}
}

func TestMergeNudges(t *testing.T) {
	got := MergeNudges(
		[]string{"Code daily", " Code daily ", "", "Read docs"},
		[]string{"Read docs", "Ask for feedback", "Ship small", "Rest well", "Extra"},
	)
	want := []string{"Code daily", "Read docs", "Ask for feedback", "Ship small", "Rest well"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want=%v got=%v", want, got)
	}
	if got := MergeNudges(nil, LookupTheme("").Nudges); len(got) == 0 {
		t.Fatalf("theme nudges should fill in when AI gave none")
	}
}

func TestNewGoalContract(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := &types.Milestone{ID: uuid.New(), Title: "Build API", Description: "REST basics", Duration: "3 months"}
	theme := LookupTheme("technology")

	fallback := newGoalContract(uuid.New(), m, nil, theme, now)
	if fallback.Title != "Build API" || fallback.SuccessCriteria == "" || fallback.Status != types.GoalStatusActive {
		t.Fatalf("unexpected fallback goal %+v", fallback)
	}
	if want := now.AddDate(0, 0, 84); !fallback.EndDate.Equal(want) {
		t.Fatalf("want end=%v got=%v", want, fallback.EndDate)
	}
	if fallback.MilestoneID == nil || *fallback.MilestoneID != m.ID {
		t.Fatalf("goal should bind to milestone")
	}
	if fallback.Tone != theme.Tone || len(fallback.Nudges) == 0 {
		t.Fatalf("fallback should use theme tone and nudges")
	}

	ai := newGoalContract(uuid.New(), m, &GoalCriteria{Title: "Ship the API", SuccessCriteria: "3 endpoints live", Nudges: []string{"Write one handler"}, Tone: "bold"}, theme, now)
	if ai.Title != "Ship the API" || ai.SuccessCriteria != "3 endpoints live" || ai.Tone != "bold" {
		t.Fatalf("unexpected ai goal %+v", ai)
	}
	if ai.Nudges[0] != "Write one handler" || len(ai.Nudges) > MaxNudges {
		t.Fatalf("unexpected nudges %v", ai.Nudges)
	}
}
