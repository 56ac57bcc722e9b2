package career

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/cybertech-18/lakshpath-backend/internal/domain"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/dbctx"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

// InsightRepo has no update or delete: insights are write-once.
type InsightRepo interface {
	Create(dbc dbctx.Context, rows []*types.Insight) ([]*types.Insight, error)
	// ListByUser returns newest first.
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.Insight, error)
}

type insightRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInsightRepo(db *gorm.DB, baseLog *logger.Logger) InsightRepo {
	return &insightRepo{db: db, log: baseLog.With("repo", "InsightRepo")}
}

func (r *insightRepo) Create(dbc dbctx.Context, rows []*types.Insight) ([]*types.Insight, error) {
	if len(rows) == 0 {
		return []*types.Insight{}, nil
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *insightRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.Insight, error) {
	var out []*types.Insight
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
