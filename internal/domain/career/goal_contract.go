package career

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	GoalStatusActive    = "ACTIVE"
	GoalStatusCompleted = "COMPLETED"
	GoalStatusAbandoned = "ABANDONED"
)

// GoalContract binds to at most one milestone. The unique index on
// milestone_id is what guarantees a single contract per milestone.
type GoalContract struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	MilestoneID     *uuid.UUID                  `gorm:"type:uuid;uniqueIndex:idx_goal_contract_milestone" json:"milestone_id,omitempty"`
	Title           string                      `gorm:"column:title;not null" json:"title"`
	Description     string                      `gorm:"column:description;type:text" json:"description"`
	SuccessCriteria string                      `gorm:"column:success_criteria;type:text" json:"success_criteria"`
	StartDate       time.Time                   `gorm:"column:start_date;not null" json:"start_date"`
	EndDate         time.Time                   `gorm:"column:end_date;not null" json:"end_date"`
	Status          string                      `gorm:"column:status;not null;index" json:"status"`
	Nudges          datatypes.JSONSlice[string] `gorm:"column:nudges" json:"nudges"`
	Tone            string                      `gorm:"column:tone" json:"tone,omitempty"`
	CreatedAt       time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"not null" json:"updated_at"`
}

func (GoalContract) TableName() string { return "goal_contract" }

func (g *GoalContract) BeforeCreate(*gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Status == "" {
		g.Status = GoalStatusActive
	}
	return nil
}
