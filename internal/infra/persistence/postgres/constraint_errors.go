package postgres

import (
	"strings"

	domainerrors "brewshare/internal/domain/errors"
	"brewshare/internal/domain/repository"
	"brewshare/internal/infra/persistence/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Helper functions for PostgreSQL error checking
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// violatedConstraint returns the constraint name of a PostgreSQL error, or "".
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}

	return ""
}

// accountDuplicateError maps a unique violation on accounts to the matching repository sentinel.
// Without a constraint name the message text is inspected.
func accountDuplicateError(err error) error {
	constraint := violatedConstraint(err)
	if constraint == "" {
		constraint = err.Error()
	}

	switch {
	case strings.Contains(constraint, model.AccountUsernameIndex):
		return repository.ErrDuplicateUsername
	case strings.Contains(constraint, model.AccountEmailIndex):
		return repository.ErrDuplicateEmail
	default:
		return domainerrors.NewDatabaseExecuteError(err, "unexpected unique constraint violation")
	}
}
