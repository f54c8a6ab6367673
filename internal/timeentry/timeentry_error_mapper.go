package timeentry

import (
	"errors"
	"strings"

	timeentryerrors "go-timeclock/internal/timeentry/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueEntryConstraint = "uq_time_entries_employee_type_ts"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == uniqueEntryConstraint {
			return timeentryerrors.ErrDuplicateEntry
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueEntryConstraint) {
		return timeentryerrors.ErrDuplicateEntry
	}

	return err
}
