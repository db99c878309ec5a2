package memory

import (
	"context"

	"brewshare/internal/domain/entity"
	"brewshare/internal/domain/repository"

	"github.com/google/uuid"
)

type accountRepository struct {
	store *Store
}

// NewAccountRepository returns an AccountRepository backed by store.
func NewAccountRepository(store *Store) repository.AccountRepository {
	return &accountRepository{store: store}
}

func (repo *accountRepository) Create(_ context.Context, account *entity.Account) error {
	s := repo.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUniqueLocked(account); err != nil {
		return err
	}
	s.accounts[account.ID] = account.Clone()

	return nil
}

func (repo *accountRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	s := repo.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return account.Clone(), nil
}

func (repo *accountRepository) FindByUsername(_ context.Context, username string) (*entity.Account, error) {
	return repo.findFirst(func(a *entity.Account) bool { return a.Username == username })
}

func (repo *accountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	return repo.findFirst(func(a *entity.Account) bool { return a.Email == email })
}

// FindByIdentifier prefers a username match over an email match.
func (repo *accountRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.Account, error) {
	account, err := repo.FindByUsername(ctx, identifier)
	if err == nil {
		return account, nil
	}

	return repo.FindByEmail(ctx, identifier)
}

func (repo *accountRepository) Update(_ context.Context, account *entity.Account) error {
	s := repo.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	if err := s.checkUniqueLocked(account); err != nil {
		return err
	}
	s.accounts[account.ID] = account.Clone()

	return nil
}

func (repo *accountRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := repo.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(s.accounts, id)

	return nil
}

func (repo *accountRepository) findFirst(match func(*entity.Account) bool) (*entity.Account, error) {
	s := repo.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.accounts {
		if match(account) {
			return account.Clone(), nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

// checkUniqueLocked reports a collision with any other account, username before email.
// The caller holds mu.
func (s *Store) checkUniqueLocked(account *entity.Account) error {
	emailTaken := false
	for id, existing := range s.accounts {
		if id == account.ID {
			continue
		}
		if existing.Username == account.Username {
			return repository.ErrDuplicateUsername
		}
		emailTaken = emailTaken || existing.Email == account.Email
	}
	if emailTaken {
		return repository.ErrDuplicateEmail
	}

	return nil
}
