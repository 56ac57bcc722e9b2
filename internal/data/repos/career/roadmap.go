package career

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/dbctx"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

type RoadmapRepo interface {
	// Create inserts roadmap rows only; milestones are written through MilestoneRepo.
	Create(dbc dbctx.Context, rows []*types.Roadmap) ([]*types.Roadmap, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Roadmap, error)
	// GetLatestByUser preloads milestones ordered by position.
	GetLatestByUser(dbc dbctx.Context, userID uuid.UUID) (*types.Roadmap, error)
}

type roadmapRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoadmapRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapRepo {
	return &roadmapRepo{db: db, log: baseLog.With("repo", "RoadmapRepo")}
}

func (r *roadmapRepo) Create(dbc dbctx.Context, rows []*types.Roadmap) ([]*types.Roadmap, error) {
	if len(rows) == 0 {
		return []*types.Roadmap{}, nil
	}
	if err := dbc.Conn(r.db).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *roadmapRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Roadmap, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Roadmap
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *roadmapRepo) GetLatestByUser(dbc dbctx.Context, userID uuid.UUID) (*types.Roadmap, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var out []*types.Roadmap
	if err := dbc.Conn(r.db).
		Preload("Milestones", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}
