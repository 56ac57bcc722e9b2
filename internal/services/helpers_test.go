package services

import (
	"context"

	"github.com/cybertech-18/lakshpath-backend/internal/platform/dbctx"
)

func ctxDBC() dbctx.Context {
	return dbctx.Context{Ctx: context.Background()}
}
