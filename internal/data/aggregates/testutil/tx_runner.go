package testutil

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/cybertech-18/lakshpath-backend/internal/data/aggregates"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/dbctx"
)

// InjectedTxRunner wraps an optional real database and lets tests inject
// failures at begin, before the body runs, or at commit time. When DB is set
// the body runs inside a real transaction that is rolled back on any injected
// failure.
type InjectedTxRunner struct {
	mu sync.Mutex

	DB *gorm.DB

	FailBegin      error
	FailBeforeBody error
	FailCommit     error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin := r.FailBegin
	failBeforeBody := r.FailBeforeBody
	failCommit := r.FailCommit
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}
	if failBeforeBody != nil {
		r.rollback()
		return failBeforeBody
	}
	if fn == nil {
		r.commit()
		return nil
	}

	if r.DB == nil {
		if err := fn(dbctx.Context{Ctx: ctx}); err != nil {
			r.rollback()
			return err
		}
		if failCommit != nil {
			r.rollback()
			return failCommit
		}
		r.commit()
		return nil
	}

	tx := r.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := fn(dbctx.Context{Ctx: ctx, Tx: tx}); err != nil {
		_ = tx.Rollback().Error
		r.rollback()
		return err
	}
	if failCommit != nil {
		_ = tx.Rollback().Error
		r.rollback()
		return failCommit
	}
	if err := tx.Commit().Error; err != nil {
		r.rollback()
		return err
	}
	r.commit()
	return nil
}

func (r *InjectedTxRunner) commit() {
	r.mu.Lock()
	r.CommitCalls++
	r.mu.Unlock()
}

func (r *InjectedTxRunner) rollback() {
	r.mu.Lock()
	r.RollbackCalls++
	r.mu.Unlock()
}
