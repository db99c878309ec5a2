// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered member of the brewing community.
// Username and Email are each globally unique.
type Account struct {
	ID           uuid.UUID // Opaque unique identifier, generated at registration.
	Username     string    // Public handle, also accepted as a login identifier.
	Email        string    // Contact email, also accepted as a login identifier.
	PasswordHash string    // Salted hash of the most recently set password. Never serialised.
	CreatedAt    time.Time // Set once at registration.
	UpdatedAt    time.Time // Timestamp of the last modification.
}

// NewAccount builds a fresh account with a time-ordered ID.
// passwordHash must already be the output of a PasswordHasher.
func NewAccount(username, email, passwordHash string) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Clone returns a copy that shares no memory with a.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	cloned := *a

	return &cloned
}

// WithPasswordHash returns a copy of the account carrying a new password hash.
// It is the only way a stored hash changes after registration.
func (a *Account) WithPasswordHash(hash string) *Account {
	cloned := a.Clone()
	cloned.PasswordHash = hash

	return cloned
}

// Redacted returns a copy with the password hash cleared, safe to hand outside the usecase layer.
func (a *Account) Redacted() *Account {
	if a == nil {
		return nil
	}

	return a.WithPasswordHash("")
}
