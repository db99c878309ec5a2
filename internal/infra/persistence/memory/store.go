// Package memory implements the persistence layer in process memory.
// It enforces the same uniqueness rules as the database drivers and is used
// for local development and tests.
package memory

import (
	"context"
	"maps"
	"sync"

	"brewshare/internal/domain/entity"
	"brewshare/internal/domain/repository"

	"github.com/google/uuid"
)

// Store holds every account and post. All access goes through mu.
type Store struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*entity.Account
	posts    map[uuid.UUID]*entity.Post

	// txMu serialises transactions so a snapshot can be restored on failure.
	txMu sync.Mutex
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[uuid.UUID]*entity.Account),
		posts:    make(map[uuid.UUID]*entity.Post),
	}
}

type snapshot struct {
	accounts map[uuid.UUID]*entity.Account
	posts    map[uuid.UUID]*entity.Post
}

// Stored values are never mutated in place, so copying the maps is enough.
func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return snapshot{accounts: maps.Clone(s.accounts), posts: maps.Clone(s.posts)}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = snap.accounts
	s.posts = snap.posts
}

// memoryTransactionManager implements repository.TransactionManager.
type memoryTransactionManager struct {
	store *Store
}

// NewTransactionManager is the constructor for memoryTransactionManager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &memoryTransactionManager{store: store}
}

// Execute runs fn with exclusive access, undoing its writes if it fails or panics.
func (tm *memoryTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.txMu.Lock()
	defer tm.store.txMu.Unlock()

	snap := tm.store.snapshot()
	committed := false
	defer func() {
		if !committed {
			tm.store.restore(snap)
		}
	}()

	if err := fn(&memoryRepositoryFactory{store: tm.store}); err != nil {
		return err
	}
	committed = true

	return nil
}

type memoryRepositoryFactory struct {
	store *Store
}

// AccountRepo returns an account repository backed by the store.
func (f *memoryRepositoryFactory) AccountRepo() repository.AccountRepository {
	return NewAccountRepository(f.store)
}

// PostRepo returns a post repository backed by the store.
func (f *memoryRepositoryFactory) PostRepo() repository.PostRepository {
	return NewPostRepository(f.store)
}
