package aggregates

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/cybertech-18/lakshpath-backend/internal/platform/apierr"
)

// MapError maps infrastructure failures onto apierr kinds. Errors that already
// carry a non-internal kind pass through unchanged.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var tagged *apierr.Error
	if errors.As(err, &tagged) && tagged.Kind != apierr.KindInternal {
		return err
	}
	if IsUniqueViolation(err) {
		return apierr.Wrap(apierr.KindConflict, op, err)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierr.Wrap(apierr.KindNotFound, op, err)
	}
	return apierr.Wrap(apierr.KindPersistence, op, err)
}

// IsUniqueViolation recognises duplicate-key failures from gorm's translated
// error, a raw Postgres error, or SQLite's message text.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.TrimSpace(pgErr.Code) == "23505" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint failed")
}
