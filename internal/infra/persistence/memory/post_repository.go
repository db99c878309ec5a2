package memory

import (
	"bytes"
	"context"
	"slices"

	"brewshare/internal/domain/entity"
	"brewshare/internal/domain/repository"

	"github.com/google/uuid"
)

type postRepository struct {
	store *Store
}

// NewPostRepository returns a PostRepository backed by store.
func NewPostRepository(store *Store) repository.PostRepository {
	return &postRepository{store: store}
}

func (repo *postRepository) Create(_ context.Context, post *entity.Post) error {
	s := repo.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts[post.ID] = post.Clone()

	return nil
}

func (repo *postRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Post, error) {
	s := repo.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}

	return post.Clone(), nil
}

func (repo *postRepository) List(_ context.Context) ([]*entity.Post, error) {
	return repo.collect(func(*entity.Post) bool { return true }), nil
}

func (repo *postRepository) ListByCreator(_ context.Context, creatorID uuid.UUID) ([]*entity.Post, error) {
	return repo.collect(func(p *entity.Post) bool { return p.CreatorID == creatorID }), nil
}

func (repo *postRepository) Update(_ context.Context, post *entity.Post) error {
	s := repo.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[post.ID]; !ok {
		return repository.ErrPostNotFound
	}
	s.posts[post.ID] = post.Clone()

	return nil
}

// collect returns matching posts newest first, ties broken by descending ID.
func (repo *postRepository) collect(match func(*entity.Post) bool) []*entity.Post {
	s := repo.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]*entity.Post, 0, len(s.posts))
	for _, post := range s.posts {
		if match(post) {
			posts = append(posts, post.Clone())
		}
	}

	slices.SortFunc(posts, func(a, b *entity.Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return bytes.Compare(b.ID[:], a.ID[:])
	})

	return posts
}
