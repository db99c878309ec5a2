package postgres

import (
	"context"

	"brewshare/internal/domain/entity"
	domainerrors "brewshare/internal/domain/errors"
	"brewshare/internal/domain/repository"
	"brewshare/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// postRepository implements the repository.PostRepository interface using GORM.
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository is the constructor for postRepository.
func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &postRepository{db: db}
}

// Create persists a new post.
func (repo *postRepository) Create(ctx context.Context, post *entity.Post) error {
	if err := repo.db.WithContext(ctx).Create(model.FromPostDomain(post)).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAccountNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create post")
	}

	return nil
}

// FindByID retrieves a single post by its unique ID.
func (repo *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var postM model.PostModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).Take(&postM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find post")
	}

	return model.ToPostDomain(&postM), nil
}

// List returns every post, newest first.
func (repo *postRepository) List(ctx context.Context) ([]*entity.Post, error) {
	return repo.list(repo.db.WithContext(ctx))
}

// ListByCreator returns the posts authored by creatorID, newest first.
func (repo *postRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*entity.Post, error) {
	return repo.list(repo.db.WithContext(ctx).Where("creator_id = ?", creatorID))
}

// Update saves the mutable columns of the post.
func (repo *postRepository) Update(ctx context.Context, post *entity.Post) error {
	postM := model.FromPostDomain(post)

	result := repo.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("id = ?", postM.ID).
		Select("type", "title", "content", "recipe", "updated_at").
		Updates(postM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

func (repo *postRepository) list(query *gorm.DB) ([]*entity.Post, error) {
	var postMs []model.PostModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&postMs).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list posts")
	}

	posts := make([]*entity.Post, 0, len(postMs))
	for i := range postMs {
		posts = append(posts, model.ToPostDomain(&postMs[i]))
	}

	return posts, nil
}
