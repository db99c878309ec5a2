package persistence

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"brewshare/config"
	"brewshare/internal/domain/constants"
	"brewshare/internal/domain/entity"
	"brewshare/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestNew_MemoryDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: constants.StorageDriverMemory}}

	result, err := New(Params{
		Lc:     fxtest.NewLifecycle(t),
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	require.NotNil(t, result.TxManager)

	ctx := context.Background()
	err = result.TxManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.AccountRepo().Create(ctx, entity.NewAccount("alice", "a@x.com", "hash"))
	})
	assert.NoError(t, err)
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "sqlite"}}

	_, err := New(Params{
		Lc:     fxtest.NewLifecycle(t),
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	assert.ErrorContains(t, err, "unknown storage driver")
}
