package repository

import (
	"context"

	"brewshare/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrPostNotFound is returned when no post matches the lookup.
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines the interface for post persistence operations.
type PostRepository interface {
	// Create persists a new post.
	Create(ctx context.Context, post *entity.Post) error

	// FindByID retrieves a post by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)

	// List returns every post, newest first.
	List(ctx context.Context) ([]*entity.Post, error)

	// ListByCreator returns the posts authored by creatorID, newest first.
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*entity.Post, error)

	// Update replaces the stored post with the given one.
	Update(ctx context.Context, post *entity.Post) error
}
