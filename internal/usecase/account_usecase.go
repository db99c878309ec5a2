// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"brewshare/internal/domain/entity"

	"github.com/google/uuid"
)

// AccountUsecase defines the interface for account registration, login and self-management.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterAccountInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)
	GetByUsername(ctx context.Context, username string) (*entity.Account, error)
	UpdateAccount(ctx context.Context, callerID, targetID uuid.UUID, input *UpdateAccountInput) (*entity.Account, error)
	DeleteAccount(ctx context.Context, callerID, targetID uuid.UUID) error
}

// --- Input DTOs ---

// RegisterAccountInput defines the data required to create an account.
type RegisterAccountInput struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
}

// LoginInput defines the data required to log in.
// Login matches either the username or the email of an account.
type LoginInput struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateAccountInput carries the fields to change. Nil fields are left untouched.
type UpdateAccountInput struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=1,max=64"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,maxbytes=72"`
}

// IsEmpty reports whether the patch changes nothing.
func (in *UpdateAccountInput) IsEmpty() bool {
	return in == nil || (in.Username == nil && in.Email == nil && in.Password == nil)
}

// --- Output DTOs ---

// AuthOutput is returned by registration and login.
type AuthOutput struct {
	Account   *entity.Account
	Token     string
	ExpiresIn time.Duration
}
