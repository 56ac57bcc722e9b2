package career

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/dbctx"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

type CareerMatchRepo interface {
	Create(dbc dbctx.Context, rows []*types.CareerMatch) ([]*types.CareerMatch, error)
	// ListByQuizResult returns matches in rank order (best first).
	ListByQuizResult(dbc dbctx.Context, quizResultID uuid.UUID) ([]*types.CareerMatch, error)
	CountByQuizResult(dbc dbctx.Context, quizResultID uuid.UUID) (int64, error)
}

type careerMatchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCareerMatchRepo(db *gorm.DB, baseLog *logger.Logger) CareerMatchRepo {
	return &careerMatchRepo{db: db, log: baseLog.With("repo", "CareerMatchRepo")}
}

func (r *careerMatchRepo) Create(dbc dbctx.Context, rows []*types.CareerMatch) ([]*types.CareerMatch, error) {
	if len(rows) == 0 {
		return []*types.CareerMatch{}, nil
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *careerMatchRepo) ListByQuizResult(dbc dbctx.Context, quizResultID uuid.UUID) ([]*types.CareerMatch, error) {
	var out []*types.CareerMatch
	if quizResultID == uuid.Nil {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("quiz_result_id = ?", quizResultID).
		Order("rank ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *careerMatchRepo) CountByQuizResult(dbc dbctx.Context, quizResultID uuid.UUID) (int64, error) {
	var n int64
	err := dbc.Conn(r.db).Model(&types.CareerMatch{}).Where("quiz_result_id = ?", quizResultID).Count(&n).Error
	return n, err
}
