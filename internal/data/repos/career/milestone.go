package career

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/dbctx"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

type MilestoneRepo interface {
	Create(dbc dbctx.Context, rows []*types.Milestone) ([]*types.Milestone, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Milestone, error)
	ListByRoadmap(dbc dbctx.Context, roadmapID uuid.UUID) ([]*types.Milestone, error)
	// GetNext returns the lowest-positioned milestone after position, or nil.
	GetNext(dbc dbctx.Context, roadmapID uuid.UUID, position int) (*types.Milestone, error)
	UpdateStatus(dbc dbctx.Context, id uuid.UUID, status string, completedAt *time.Time) error
}

type milestoneRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMilestoneRepo(db *gorm.DB, baseLog *logger.Logger) MilestoneRepo {
	return &milestoneRepo{db: db, log: baseLog.With("repo", "MilestoneRepo")}
}

func (r *milestoneRepo) Create(dbc dbctx.Context, rows []*types.Milestone) ([]*types.Milestone, error) {
	if len(rows) == 0 {
		return []*types.Milestone{}, nil
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *milestoneRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Milestone, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Milestone
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *milestoneRepo) ListByRoadmap(dbc dbctx.Context, roadmapID uuid.UUID) ([]*types.Milestone, error) {
	var out []*types.Milestone
	if roadmapID == uuid.Nil {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("roadmap_id = ?", roadmapID).
		Order("position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *milestoneRepo) GetNext(dbc dbctx.Context, roadmapID uuid.UUID, position int) (*types.Milestone, error) {
	var out []*types.Milestone
	if err := dbc.Conn(r.db).
		Where("roadmap_id = ? AND position > ?", roadmapID, position).
		Order("position ASC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *milestoneRepo) UpdateStatus(dbc dbctx.Context, id uuid.UUID, status string, completedAt *time.Time) error {
	return dbc.Conn(r.db).
		Model(&types.Milestone{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"completed_at": completedAt,
			"updated_at":   time.Now().UTC(),
		}).Error
}
