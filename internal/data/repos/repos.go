package repos

import (
	"gorm.io/gorm"

	"github.com/cybertech-18/lakshpath-backend/internal/data/repos/career"
	"github.com/cybertech-18/lakshpath-backend/internal/data/repos/user"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type QuizResultRepo = career.QuizResultRepo
type CareerMatchRepo = career.CareerMatchRepo
type RoadmapRepo = career.RoadmapRepo
type MilestoneRepo = career.MilestoneRepo
type GoalContractRepo = career.GoalContractRepo
type InsightRepo = career.InsightRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewQuizResultRepo(db *gorm.DB, baseLog *logger.Logger) QuizResultRepo {
	return career.NewQuizResultRepo(db, baseLog)
}
func NewCareerMatchRepo(db *gorm.DB, baseLog *logger.Logger) CareerMatchRepo {
	return career.NewCareerMatchRepo(db, baseLog)
}
func NewRoadmapRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapRepo {
	return career.NewRoadmapRepo(db, baseLog)
}
func NewMilestoneRepo(db *gorm.DB, baseLog *logger.Logger) MilestoneRepo {
	return career.NewMilestoneRepo(db, baseLog)
}
func NewGoalContractRepo(db *gorm.DB, baseLog *logger.Logger) GoalContractRepo {
	return career.NewGoalContractRepo(db, baseLog)
}
func NewInsightRepo(db *gorm.DB, baseLog *logger.Logger) InsightRepo {
	return career.NewInsightRepo(db, baseLog)
}
