package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the repositories translate into domain outcomes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func isUniqueViolation(err error) bool {
	return pgErrCode(err) == codeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrCode(err) == codeForeignKeyViolation
}

func isCheckViolation(err error) bool {
	return pgErrCode(err) == codeCheckViolation
}

// constraintName returns the violated constraint's name, if the error is a
// postgres constraint violation.
func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
