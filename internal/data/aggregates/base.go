package aggregates

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cybertech-18/lakshpath-backend/internal/platform/apierr"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/dbctx"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

type BaseDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Runner TxRunner
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return d
}

func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "aggregate.write"
	}
	err := MapError(op, deps.Runner.InTx(ctx, fn))
	if err != nil {
		deps.Log.Debug("aggregate write failed",
			"op", op,
			"kind", string(apierr.KindOf(err)),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return err
	}
	deps.Log.Debug("aggregate write committed", "op", op, "duration_ms", time.Since(start).Milliseconds())
	return nil
}
