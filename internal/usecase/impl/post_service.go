package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "brewshare/internal/delivery/context"
	"brewshare/internal/domain/entity"
	domainerrors "brewshare/internal/domain/errors"
	"brewshare/internal/domain/repository"
	"brewshare/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// postService implements the PostUsecase interface.
type postService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
	now       func() time.Time
}

// PostServiceParams holds dependencies for PostService, injected by Fx.
type PostServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewPostService is the constructor for postService.
func NewPostService(params PostServiceParams) usecase.PostUsecase {
	return &postService{
		txManager: params.TxManager,
		logger:    params.Logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *postService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreatePost stores a new post owned by creatorID.
func (srv *postService) CreatePost(ctx context.Context, creatorID uuid.UUID, input *usecase.CreatePostInput) (*entity.Post, error) {
	srv.log(ctx).Info("Creating post", slog.Any("creatorID", creatorID), slog.String("type", input.Type.String()))

	if !input.Type.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown post type")
	}
	if input.Type == entity.PostTypeRecipe && input.Recipe == nil {
		return nil, errors.WithStack(domainerrors.ErrRecipeRequired)
	}

	recipe := input.Recipe.ToEntity()
	if recipe != nil && !recipe.IsComplete() {
		return nil, errors.WithStack(domainerrors.ErrRecipeIncomplete)
	}

	post := entity.NewPost(creatorID, input.Type, input.Title, input.Content, recipe)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.AccountRepo().FindByID(ctx, creatorID); err != nil {
			return mapAccountLookupError(err)
		}

		if err := repoFactory.PostRepo().Create(ctx, post); err != nil {
			return errors.Wrap(err, "failed to create post")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Post creation failed", slog.Any("creatorID", creatorID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute post creation transaction")
	}

	srv.log(ctx).Debug("Post created", slog.Any("postID", post.ID))

	return post, nil
}

// ListPosts returns every post, newest first.
func (srv *postService) ListPosts(ctx context.Context) ([]*entity.Post, error) {
	var posts []*entity.Post
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.PostRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list posts")
		}
		posts = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	return posts, nil
}

// GetPost returns a single post.
func (srv *postService) GetPost(ctx context.Context, postID uuid.UUID) (*entity.Post, error) {
	var post *entity.Post
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.PostRepo().FindByID(ctx, postID)
		if err != nil {
			return mapPostLookupError(err)
		}
		post = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get post")
	}

	return post, nil
}

// ListPostsByCreator returns the posts authored by creatorID, newest first.
// An unknown creator yields an empty list.
func (srv *postService) ListPostsByCreator(ctx context.Context, creatorID uuid.UUID) ([]*entity.Post, error) {
	var posts []*entity.Post
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.PostRepo().ListByCreator(ctx, creatorID)
		if err != nil {
			return errors.Wrap(err, "failed to list posts by creator")
		}
		posts = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts by creator")
	}

	return posts, nil
}

// UpdatePost applies a partial update to a post owned by the caller.
func (srv *postService) UpdatePost(
	ctx context.Context,
	callerID, postID uuid.UUID,
	input *usecase.UpdatePostInput,
) (*entity.Post, error) {
	srv.log(ctx).Info("Updating post", slog.Any("postID", postID), slog.Any("callerID", callerID))

	if input.Type != nil && !input.Type.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown post type")
	}

	var updated *entity.Post
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.PostRepo()

		current, err := postRepo.FindByID(ctx, postID)
		if err != nil {
			return mapPostLookupError(err)
		}

		if !current.IsOwnedBy(callerID) {
			return errors.Wrap(domainerrors.ErrForbidden, "post belongs to another account")
		}

		next, err := applyPostPatch(current, input, srv.now())
		if err != nil {
			return err
		}

		if err := postRepo.Update(ctx, next); err != nil {
			return mapPostLookupError(err)
		}
		updated = next

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Post update failed", slog.Any("postID", postID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute post update transaction")
	}

	return updated, nil
}

// mapPostLookupError turns repository sentinels into application errors.
func mapPostLookupError(err error) error {
	if errors.Is(err, repository.ErrPostNotFound) {
		return errors.WithStack(domainerrors.ErrPostNotFound)
	}

	return errors.Wrap(err, "failed to load post")
}
