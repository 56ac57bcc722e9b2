package career

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	InsightTypeCareerExplanation = "CAREER_EXPLANATION"
	InsightTypeRoadmap           = "ROADMAP"
	InsightTypeGoalContract      = "GOAL_CONTRACT"
	InsightTypeMicroTasks        = "MICRO_TASKS"
)

// Insight is an append-only audit record of one AI interaction.
type Insight struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_insight_user_created,priority:1" json:"user_id"`
	Source    string            `gorm:"column:source;not null" json:"source"`
	Type      string            `gorm:"column:type;not null;index" json:"type"`
	Prompt    string            `gorm:"column:prompt;type:text" json:"prompt"`
	Response  string            `gorm:"column:response;type:text" json:"response"`
	Summary   string            `gorm:"column:summary;type:text" json:"summary"`
	Metadata  datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;index:idx_insight_user_created,priority:2" json:"created_at"`
}

func (Insight) TableName() string { return "insight" }

func (i *Insight) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
