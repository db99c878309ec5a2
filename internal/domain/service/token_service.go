package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by access tokens.
type Claims struct {
	AccountID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateToken creates a signed access token for the given account.
	GenerateToken(accountID uuid.UUID) (string, error)

	// ValidateToken checks the validity of a token string.
	// Returns ErrTokenExpired for expired tokens and ErrTokenInvalid otherwise.
	ValidateToken(tokenString string) (*Claims, error)

	// TokenTTL returns the configured lifetime of access tokens.
	TokenTTL() time.Duration
}
