package career

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/dbctx"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

type QuizResultRepo interface {
	Create(dbc dbctx.Context, rows []*types.QuizResult) ([]*types.QuizResult, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.QuizResult, error)
	// ListByUser returns newest first. limit <= 0 means no limit.
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.QuizResult, error)
}

type quizResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizResultRepo(db *gorm.DB, baseLog *logger.Logger) QuizResultRepo {
	return &quizResultRepo{db: db, log: baseLog.With("repo", "QuizResultRepo")}
}

func (r *quizResultRepo) Create(dbc dbctx.Context, rows []*types.QuizResult) ([]*types.QuizResult, error) {
	if len(rows) == 0 {
		return []*types.QuizResult{}, nil
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *quizResultRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.QuizResult, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.QuizResult
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *quizResultRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.QuizResult, error) {
	var out []*types.QuizResult
	if userID == uuid.Nil {
		return out, nil
	}
	q := dbc.Conn(r.db).Where("user_id = ?", userID).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
