package domain

import (
	"github.com/cybertech-18/lakshpath-backend/internal/domain/career"
	"github.com/cybertech-18/lakshpath-backend/internal/domain/user"
)

const (
	RoleUser = user.RoleUser
	RoleDemo = user.RoleDemo

	MilestoneStatusPending    = career.MilestoneStatusPending
	MilestoneStatusInProgress = career.MilestoneStatusInProgress
	MilestoneStatusCompleted  = career.MilestoneStatusCompleted

	GoalStatusActive    = career.GoalStatusActive
	GoalStatusCompleted = career.GoalStatusCompleted
	GoalStatusAbandoned = career.GoalStatusAbandoned

	InsightTypeCareerExplanation = career.InsightTypeCareerExplanation
	InsightTypeRoadmap           = career.InsightTypeRoadmap
	InsightTypeGoalContract      = career.InsightTypeGoalContract
	InsightTypeMicroTasks        = career.InsightTypeMicroTasks
)

type User = user.User

type QuizResult = career.QuizResult
type CareerMatch = career.CareerMatch
type Roadmap = career.Roadmap
type Milestone = career.Milestone
type GoalContract = career.GoalContract
type Insight = career.Insight

// AllModels lists every persisted model in migration order.
func AllModels() []any {
	return []any{
		&User{},
		&QuizResult{},
		&CareerMatch{},
		&Roadmap{},
		&Milestone{},
		&GoalContract{},
		&Insight{},
	}
}

func IsMilestoneStatus(s string) bool { return career.IsMilestoneStatus(s) }

func CanTransition(from, to string) bool { return career.CanTransition(from, to) }
