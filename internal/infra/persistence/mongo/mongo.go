// Package mongo implements the persistence layer on MongoDB.
package mongo

import (
	"context"
	"log/slog"

	"brewshare/config"
	"brewshare/internal/domain/lifecycle"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

// Collection and index names.
const (
	usersCollection = "users"
	postsCollection = "posts"

	usernameIndex = "username_unique"
	emailIndex    = "email_unique"
	creatorIndex  = "creator"
)

// Store bundles the client with the selected database.
type Store struct {
	Client       *mongo.Client
	DB           *mongo.Database
	Transactions bool
}

// Open connects to MongoDB and registers lifecycle hooks that verify the
// connection, ensure indexes and disconnect on shutdown.
func Open(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetConnectTimeout(cfg.Mongo.ConnectTimeout)

	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	store := &Store{
		Client:       client,
		DB:           client.Database(cfg.Mongo.Database),
		Transactions: cfg.Mongo.Transactions,
	}

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx, nil); err != nil {
				return errors.Wrap(err, "failed to ping MongoDB")
			}

			if err := EnsureIndexes(ctx, store.DB); err != nil {
				return err
			}

			logger.Info("Connected to MongoDB",
				slog.String("database", cfg.Mongo.Database),
				slog.Bool("transactions", cfg.Mongo.Transactions),
			)

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			ctx, cancel := context.WithTimeout(stopCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return errors.Wrap(client.Disconnect(ctx), "failed to disconnect MongoDB")
		},
	})

	return store, nil
}

// EnsureIndexes creates the unique and lookup indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName(usernameIndex).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(emailIndex).SetUnique(true),
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to create users indexes")
	}

	_, err = db.Collection(postsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "creator", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName(creatorIndex),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create posts indexes")
	}

	return nil
}
