package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	domainerrors "brewshare/internal/domain/errors"
	"brewshare/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueConstraintViolation(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintViolation(errors.Wrap(&pgconn.PgError{Code: pgUniqueViolation}, "insert")))
	assert.False(t, isUniqueConstraintViolation(&pgconn.PgError{Code: pgForeignKeyViolation}))
	assert.False(t, isUniqueConstraintViolation(errors.New("connection reset")))
}

func TestIsForeignKeyConstraintViolation(t *testing.T) {
	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))
	assert.True(t, isForeignKeyConstraintViolation(&pgconn.PgError{Code: pgForeignKeyViolation}))
	assert.False(t, isForeignKeyConstraintViolation(&pgconn.PgError{Code: pgUniqueViolation}))
}

func TestAccountDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "username constraint",
			err:  &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_accounts_username"},
			want: repository.ErrDuplicateUsername,
		},
		{
			name: "email constraint",
			err:  &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_accounts_email"},
			want: repository.ErrDuplicateEmail,
		},
		{
			name: "constraint named only in message",
			err:  errors.New(`duplicate key value violates unique constraint "idx_accounts_email"`),
			want: repository.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(accountDuplicateError(tt.err), tt.want))
		})
	}
}

func TestAccountDuplicateError_UnknownConstraintIsServerFault(t *testing.T) {
	err := accountDuplicateError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "accounts_pkey"})

	assert.Equal(t, domainerrors.KindServerFault, domainerrors.KindOf(err))
	assert.False(t, errors.Is(err, repository.ErrDuplicateUsername))
}

func TestLogPoolWait(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	prev := sql.DBStats{WaitCount: 3, WaitDuration: time.Second}
	logPoolWait(context.Background(), logger, prev, prev)
	assert.Zero(t, buf.Len())

	cur := sql.DBStats{WaitCount: 5, WaitDuration: time.Second + 200*time.Millisecond}
	logPoolWait(context.Background(), logger, prev, cur)
	assert.Contains(t, buf.String(), "Postgres pool wait detected")
}
