package postgres

import (
	"context"

	"brewshare/internal/domain/entity"
	domainerrors "brewshare/internal/domain/errors"
	"brewshare/internal/domain/repository"
	"brewshare/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create persists a new account.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := model.FromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return accountDuplicateError(err)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	return nil
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByUsername retrieves a single account by its username.
func (repo *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	return repo.findOne(ctx, "username = ?", username)
}

// FindByEmail retrieves a single account by its email.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return repo.findOne(ctx, "email = ?", email)
}

// FindByIdentifier retrieves the account whose username or email equals identifier.
// When two accounts match, the one holding it as username wins.
func (repo *accountRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN username = ? THEN 0 ELSE 1 END",
			Vars:               []any{identifier},
			WithoutParentheses: true,
		}}).
		Take(&accountM).Error
	if err != nil {
		return nil, accountLookupError(err)
	}

	return model.ToAccountDomain(&accountM), nil
}

// Update saves every column of the account.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := model.FromAccountDomain(account)

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", accountM.ID).
		Select("username", "email", "password_hash", "updated_at").
		Updates(accountM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return accountDuplicateError(result.Error)
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// Delete removes an account by its ID.
func (repo *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.AccountModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

func (repo *accountRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).Where(query, args...).Take(&accountM).Error; err != nil {
		return nil, accountLookupError(err)
	}

	return model.ToAccountDomain(&accountM), nil
}

func accountLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrAccountNotFound
	}

	return domainerrors.NewDatabaseExecuteError(err, "failed to find account")
}
