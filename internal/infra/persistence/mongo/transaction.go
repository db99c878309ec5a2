package mongo

import (
	"context"

	"brewshare/internal/domain/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoTransactionManager implements repository.TransactionManager.
// Without transactions enabled the callback runs directly against the database.
type mongoTransactionManager struct {
	store *Store
}

// mongoRepositoryFactory hands out repositories that join sess when it is set.
type mongoRepositoryFactory struct {
	db   *mongo.Database
	sess mongo.Session
}

// AccountRepo creates an account repository bound to the current session.
func (f *mongoRepositoryFactory) AccountRepo() repository.AccountRepository {
	return &accountRepository{coll: f.db.Collection(usersCollection), sess: f.sess}
}

// PostRepo creates a post repository bound to the current session.
func (f *mongoRepositoryFactory) PostRepo() repository.PostRepository {
	return &postRepository{coll: f.db.Collection(postsCollection), sess: f.sess}
}

// NewTransactionManager is the constructor for mongoTransactionManager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &mongoTransactionManager{store: store}
}

// Execute runs fn inside a session transaction when transactions are enabled.
func (tm *mongoTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if !tm.store.Transactions {
		return fn(&mongoRepositoryFactory{db: tm.store.DB})
	}

	sess, err := tm.store.Client.StartSession()
	if err != nil {
		return errors.Wrap(err, "failed to start MongoDB session")
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(_ mongo.SessionContext) (any, error) {
		return nil, fn(&mongoRepositoryFactory{db: tm.store.DB, sess: sess})
	})

	return err
}

// bindSession attaches sess to ctx so driver calls join the transaction.
func bindSession(ctx context.Context, sess mongo.Session) context.Context {
	if sess == nil {
		return ctx
	}

	return mongo.NewSessionContext(ctx, sess)
}
