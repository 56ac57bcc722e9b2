package app

import (
	"gorm.io/gorm"

	"github.com/cybertech-18/lakshpath-backend/internal/data/repos"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

type Repos struct {
	Users       repos.UserRepo
	QuizResults repos.QuizResultRepo
	Matches     repos.CareerMatchRepo
	Roadmaps    repos.RoadmapRepo
	Milestones  repos.MilestoneRepo
	Goals       repos.GoalContractRepo
	Insights    repos.InsightRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Users:       repos.NewUserRepo(db, log),
		QuizResults: repos.NewQuizResultRepo(db, log),
		Matches:     repos.NewCareerMatchRepo(db, log),
		Roadmaps:    repos.NewRoadmapRepo(db, log),
		Milestones:  repos.NewMilestoneRepo(db, log),
		Goals:       repos.NewGoalContractRepo(db, log),
		Insights:    repos.NewInsightRepo(db, log),
	}
}
