package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"madalto-backend/internal/domain"
)

// translateErr maps driver errors onto the domain sentinels so callers
// never inspect lib/pq internals.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return domain.Conflictf("%s", pqErr.Detail)
		case "23503": // foreign_key_violation
			return domain.Validationf("%s", pqErr.Detail)
		}
	}
	return err
}
