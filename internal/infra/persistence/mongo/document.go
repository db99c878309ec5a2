package mongo

import (
	"time"

	"brewshare/internal/domain/entity"
	"brewshare/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// accountDocument is the stored shape of an account in the users collection.
type accountDocument struct {
	ID        string    `bson:"_id"`
	Username  string    `bson:"username"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// postDocument is the stored shape of a post in the posts collection.
type postDocument struct {
	ID        string                `bson:"_id"`
	Creator   string                `bson:"creator"`
	Type      string                `bson:"type"`
	Title     string                `bson:"title"`
	Content   string                `bson:"content"`
	Recipe    *model.RecipeDocument `bson:"recipe,omitempty"`
	CreatedAt time.Time             `bson:"createdAt"`
	UpdatedAt time.Time             `bson:"updatedAt"`
}

func fromAccountDomain(account *entity.Account) *accountDocument {
	return &accountDocument{
		ID:        account.ID.String(),
		Username:  account.Username,
		Email:     account.Email,
		Password:  account.PasswordHash,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

func toAccountDomain(doc *accountDocument) (*entity.Account, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "account %q has a malformed id", doc.ID)
	}

	return &entity.Account{
		ID:           id,
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.Password,
		CreatedAt:    doc.CreatedAt.UTC(),
		UpdatedAt:    doc.UpdatedAt.UTC(),
	}, nil
}

func fromPostDomain(post *entity.Post) *postDocument {
	return &postDocument{
		ID:        post.ID.String(),
		Creator:   post.CreatorID.String(),
		Type:      post.Type.String(),
		Title:     post.Title,
		Content:   post.Content,
		Recipe:    model.FromRecipeDomain(post.Recipe),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func toPostDomain(doc *postDocument) (*entity.Post, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "post %q has a malformed id", doc.ID)
	}
	creatorID, err := uuid.Parse(doc.Creator)
	if err != nil {
		return nil, errors.Wrapf(err, "post %q has a malformed creator", doc.ID)
	}

	return &entity.Post{
		ID:        id,
		CreatorID: creatorID,
		Type:      entity.PostType(doc.Type),
		Title:     doc.Title,
		Content:   doc.Content,
		Recipe:    model.ToRecipeDomain(doc.Recipe),
		CreatedAt: doc.CreatedAt.UTC(),
		UpdatedAt: doc.UpdatedAt.UTC(),
	}, nil
}
