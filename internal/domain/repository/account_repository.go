package repository

import (
	"context"

	"brewshare/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateUsername is returned when a write collides with an existing username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateEmail is returned when a write collides with an existing email.
	ErrDuplicateEmail = errors.New("email already exists")
)

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Create persists a new account.
	// Returns ErrDuplicateUsername or ErrDuplicateEmail on a uniqueness violation.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUsername retrieves an account by its exact username.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// FindByEmail retrieves an account by its exact email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByIdentifier retrieves an account whose username or email equals identifier.
	// A username match takes precedence over an email match.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.Account, error)

	// Update replaces the stored account with the given one.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes an account by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
