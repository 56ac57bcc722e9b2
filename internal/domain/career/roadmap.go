package career

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MilestoneStatusPending    = "PENDING"
	MilestoneStatusInProgress = "IN_PROGRESS"
	MilestoneStatusCompleted  = "COMPLETED"
)

type Roadmap struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	QuizResultID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_result_id"`
	Title         string         `gorm:"column:title;not null" json:"title"`
	TotalDuration string         `gorm:"column:total_duration" json:"total_duration"`
	Summary       string         `gorm:"column:summary;type:text" json:"summary,omitempty"`
	AIPlan        datatypes.JSON `gorm:"column:ai_plan" json:"ai_plan,omitempty"`
	Source        string         `gorm:"column:source;not null" json:"source"` // ai|fallback

	Milestones []*Milestone `gorm:"foreignKey:RoadmapID;references:ID" json:"milestones,omitempty"`

	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Roadmap) TableName() string { return "roadmap" }

func (r *Roadmap) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Milestone positions are zero-based and contiguous within a roadmap. They are
// assigned once at creation and never renumbered.
type Milestone struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	RoadmapID   uuid.UUID                   `gorm:"type:uuid;not null;index:idx_milestone_position,unique,priority:1" json:"roadmap_id"`
	Position    int                         `gorm:"column:position;not null;index:idx_milestone_position,unique,priority:2" json:"position"`
	Title       string                      `gorm:"column:title;not null" json:"title"`
	Description string                      `gorm:"column:description;type:text" json:"description"`
	Duration    string                      `gorm:"column:duration" json:"duration"`
	Status      string                      `gorm:"column:status;not null;index" json:"status"`
	Resources   datatypes.JSONSlice[string] `gorm:"column:resources" json:"resources"`
	CompletedAt *time.Time                  `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time                   `gorm:"not null" json:"updated_at"`
}

func (Milestone) TableName() string { return "milestone" }

func (m *Milestone) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = MilestoneStatusPending
	}
	return nil
}

// IsMilestoneStatus reports whether s is one of the known statuses.
func IsMilestoneStatus(s string) bool {
	switch s {
	case MilestoneStatusPending, MilestoneStatusInProgress, MilestoneStatusCompleted:
		return true
	default:
		return false
	}
}

// CanTransition reports whether a milestone may move from -> to. Staying in
// place is allowed; moving back to PENDING never is.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case MilestoneStatusPending:
		return to == MilestoneStatusInProgress || to == MilestoneStatusCompleted
	case MilestoneStatusInProgress:
		return to == MilestoneStatusCompleted
	default:
		return false
	}
}
