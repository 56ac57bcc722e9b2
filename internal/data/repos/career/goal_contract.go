package career

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/dbctx"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

type GoalContractRepo interface {
	Create(dbc dbctx.Context, rows []*types.GoalContract) ([]*types.GoalContract, error)
	GetByMilestoneID(dbc dbctx.Context, milestoneID uuid.UUID) (*types.GoalContract, error)
	ListByMilestoneIDs(dbc dbctx.Context, milestoneIDs []uuid.UUID) ([]*types.GoalContract, error)
	CountByMilestoneID(dbc dbctx.Context, milestoneID uuid.UUID) (int64, error)
}

type goalContractRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGoalContractRepo(db *gorm.DB, baseLog *logger.Logger) GoalContractRepo {
	return &goalContractRepo{db: db, log: baseLog.With("repo", "GoalContractRepo")}
}

func (r *goalContractRepo) Create(dbc dbctx.Context, rows []*types.GoalContract) ([]*types.GoalContract, error) {
	if len(rows) == 0 {
		return []*types.GoalContract{}, nil
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *goalContractRepo) GetByMilestoneID(dbc dbctx.Context, milestoneID uuid.UUID) (*types.GoalContract, error) {
	if milestoneID == uuid.Nil {
		return nil, nil
	}
	var out []*types.GoalContract
	if err := dbc.Conn(r.db).Where("milestone_id = ?", milestoneID).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *goalContractRepo) ListByMilestoneIDs(dbc dbctx.Context, milestoneIDs []uuid.UUID) ([]*types.GoalContract, error) {
	var out []*types.GoalContract
	if len(milestoneIDs) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).Where("milestone_id IN ?", milestoneIDs).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *goalContractRepo) CountByMilestoneID(dbc dbctx.Context, milestoneID uuid.UUID) (int64, error) {
	var n int64
	err := dbc.Conn(r.db).Model(&types.GoalContract{}).Where("milestone_id = ?", milestoneID).Count(&n).Error
	return n, err
}
