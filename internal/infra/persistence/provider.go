// Package persistence selects and wires the configured storage driver.
package persistence

import (
	"log/slog"

	"brewshare/config"
	"brewshare/internal/domain/constants"
	"brewshare/internal/domain/repository"
	"brewshare/internal/infra/persistence/memory"
	"brewshare/internal/infra/persistence/mongo"
	"brewshare/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the storage provider, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// Result exposes the transaction manager of the selected driver.
type Result struct {
	fx.Out

	TxManager repository.TransactionManager
}

// New opens the storage driver named by storage.driver.
func New(params Params) (Result, error) {
	driver := params.Config.Storage.Driver
	logger := params.Logger.With(slog.String("driver", driver))

	switch driver {
	case constants.StorageDriverPostgres:
		db, err := postgres.Open(params.Lc, params.Config, logger)
		if err != nil {
			return Result{}, err
		}
		logger.Info("Using PostgreSQL storage")

		return Result{TxManager: postgres.NewTransactionManager(db)}, nil

	case constants.StorageDriverMongo:
		store, err := mongo.Open(params.Lc, params.Config, logger)
		if err != nil {
			return Result{}, err
		}
		logger.Info("Using MongoDB storage")

		return Result{TxManager: mongo.NewTransactionManager(store)}, nil

	case constants.StorageDriverMemory, "":
		logger.Warn("Using in-memory storage; data is lost on restart")

		return Result{TxManager: memory.NewTransactionManager(memory.NewStore())}, nil

	default:
		return Result{}, errors.Errorf("unknown storage driver: %s", driver)
	}
}

// Module provides the persistence FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
