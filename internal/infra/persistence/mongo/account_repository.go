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

// accountRepository implements repository.AccountRepository on the users collection.
type accountRepository struct {
	coll *mongo.Collection
	sess mongo.Session
}

// NewAccountRepository returns an account repository outside any session.
func NewAccountRepository(db *mongo.Database) repository.AccountRepository {
	return &accountRepository{coll: db.Collection(usersCollection)}
}

// Create persists a new account.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	ctx = bindSession(ctx, repo.sess)

	if _, err := repo.coll.InsertOne(ctx, fromAccountDomain(account)); err != nil {
		return accountWriteError(err, "failed to create account")
	}

	return nil
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return repo.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

// FindByUsername retrieves a single account by its username.
func (repo *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	return repo.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

// FindByEmail retrieves a single account by its email.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return repo.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// FindByIdentifier retrieves the account whose username or email equals identifier.
// When two accounts match, the one holding it as username wins.
func (repo *accountRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.Account, error) {
	ctx = bindSession(ctx, repo.sess)

	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: identifier}},
		bson.D{{Key: "email", Value: identifier}},
	}}}

	cursor, err := repo.coll.Find(ctx, filter, options.Find().SetLimit(2))
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account by identifier")
	}

	var docs []accountDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode accounts")
	}
	if len(docs) == 0 {
		return nil, repository.ErrAccountNotFound
	}

	chosen := &docs[0]
	for i := range docs {
		if docs[i].Username == identifier {
			chosen = &docs[i]

			break
		}
	}

	return toAccountDomain(chosen)
}

// Update replaces the stored account document.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	ctx = bindSession(ctx, repo.sess)

	doc := fromAccountDomain(account)
	result, err := repo.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, doc)
	if err != nil {
		return accountWriteError(err, "failed to update account")
	}
	if result.MatchedCount == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// Delete removes an account by its ID.
func (repo *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx = bindSession(ctx, repo.sess)

	result, err := repo.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete account")
	}
	if result.DeletedCount == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

func (repo *accountRepository) findOne(ctx context.Context, filter bson.D) (*entity.Account, error) {
	ctx = bindSession(ctx, repo.sess)

	var doc accountDocument
	if err := repo.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account")
	}

	return toAccountDomain(&doc)
}
