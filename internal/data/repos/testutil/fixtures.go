package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:    uuid.New(),
		Email: email,
		Name:  "Test User",
		Role:  types.RoleUser,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedQuizResult(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, field string) *types.QuizResult {
	tb.Helper()
	q := &types.QuizResult{
		ID:                 uuid.New(),
		UserID:             userID,
		TechnicalScore:     4,
		CommunicationScore: 3,
		AnalyticalScore:    4,
		CreativityScore:    3,
		FieldOfInterest:    field,
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed quiz result: %v", err)
	}
	return q
}

// SeedRoadmap creates a roadmap with n milestones; position 0 starts
// IN_PROGRESS, the rest PENDING.
func SeedRoadmap(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, quizResultID uuid.UUID, n int) (*types.Roadmap, []*types.Milestone) {
	tb.Helper()
	rm := &types.Roadmap{
		ID:            uuid.New(),
		UserID:        userID,
		QuizResultID:  quizResultID,
		Title:         "roadmap",
		TotalDuration: "6 months",
		Source:        "fallback",
	}
	if err := tx.WithContext(ctx).Omit("Milestones").Create(rm).Error; err != nil {
		tb.Fatalf("seed roadmap: %v", err)
	}
	ms := make([]*types.Milestone, 0, n)
	for i := 0; i < n; i++ {
		status := types.MilestoneStatusPending
		if i == 0 {
			status = types.MilestoneStatusInProgress
		}
		m := &types.Milestone{
			ID:          uuid.New(),
			RoadmapID:   rm.ID,
			Position:    i,
			Title:       fmt.Sprintf("milestone %d", i),
			Description: "do the work",
			Duration:    "2 weeks",
			Status:      status,
		}
		if err := tx.WithContext(ctx).Create(m).Error; err != nil {
			tb.Fatalf("seed milestone: %v", err)
		}
		ms = append(ms, m)
	}
	return rm, ms
}
