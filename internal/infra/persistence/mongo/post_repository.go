package mongo

import (
	"context"

	"brewshare/internal/domain/entity"
	domainerrors "brewshare/internal/domain/errors"
	"brewshare/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// postRepository implements repository.PostRepository on the posts collection.
type postRepository struct {
	coll *mongo.Collection
	sess mongo.Session
}

// NewPostRepository returns a post repository outside any session.
func NewPostRepository(db *mongo.Database) repository.PostRepository {
	return &postRepository{coll: db.Collection(postsCollection)}
}

// Create persists a new post.
func (repo *postRepository) Create(ctx context.Context, post *entity.Post) error {
	ctx = bindSession(ctx, repo.sess)

	if _, err := repo.coll.InsertOne(ctx, fromPostDomain(post)); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create post")
	}

	return nil
}

// FindByID retrieves a single post by its unique ID.
func (repo *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	ctx = bindSession(ctx, repo.sess)

	var doc postDocument
	if err := repo.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrPostNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find post")
	}

	return toPostDomain(&doc)
}

// List returns every post, newest first.
func (repo *postRepository) List(ctx context.Context) ([]*entity.Post, error) {
	return repo.find(ctx, bson.D{})
}

// ListByCreator returns the posts authored by creatorID, newest first.
func (repo *postRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*entity.Post, error) {
	return repo.find(ctx, bson.D{{Key: "creator", Value: creatorID.String()}})
}

// Update replaces the stored post document.
func (repo *postRepository) Update(ctx context.Context, post *entity.Post) error {
	ctx = bindSession(ctx, repo.sess)

	doc := fromPostDomain(post)
	result, err := repo.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, doc)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update post")
	}
	if result.MatchedCount == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

func (repo *postRepository) find(ctx context.Context, filter bson.D) ([]*entity.Post, error) {
	ctx = bindSession(ctx, repo.sess)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list posts")
	}

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode posts")
	}

	posts := make([]*entity.Post, 0, len(docs))
	for i := range docs {
		post, err := toPostDomain(&docs[i])
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, nil
}
