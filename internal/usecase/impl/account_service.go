// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "brewshare/internal/delivery/context"
	"brewshare/internal/domain/entity"
	domainerrors "brewshare/internal/domain/errors"
	"brewshare/internal/domain/repository"
	"brewshare/internal/domain/service"
	"brewshare/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an account after checking that both the username and the email are free.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterAccountInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	var registered *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		if err := srv.ensureAvailable(ctx, accountRepo, uuid.Nil, &input.Username, &input.Email); err != nil {
			return err
		}

		hashedPassword, err := srv.hashPassword(ctx, input.Password)
		if err != nil {
			return err
		}

		account := entity.NewAccount(input.Username, input.Email, hashedPassword)
		if err := accountRepo.Create(ctx, account); err != nil {
			return mapAccountWriteError(err, "failed to create account during registration")
		}
		registered = account

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	token, err := srv.tokenService.GenerateToken(registered.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token after registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", registered.ID))

	return &usecase.AuthOutput{Account: registered.Redacted(), Token: token, ExpiresIn: srv.tokenService.TokenTTL()}, nil
}

// Login authenticates by username or email and issues a token.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login")

	var account *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.AccountRepo().FindByIdentifier(ctx, input.Login)
		if err != nil {
			return mapAccountLookupError(err)
		}
		account = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "login failed")
	}

	// Check password outside transaction (hashing is CPU-bound).
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.Any("accountID", account.ID), slog.Any("error", domainerrors.ErrInvalidPassword))

		return nil, errors.Wrap(domainerrors.ErrInvalidPassword, "login failed")
	}

	token, err := srv.tokenService.GenerateToken(account.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token during login")
	}

	srv.log(ctx).Debug("Account logged in successfully", slog.Any("accountID", account.ID))

	return &usecase.AuthOutput{Account: account.Redacted(), Token: token, ExpiresIn: srv.tokenService.TokenTTL()}, nil
}

// GetProfile returns the caller's own account.
func (srv *accountService) GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	var account *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.AccountRepo().FindByID(ctx, accountID)
		if err != nil {
			return mapAccountLookupError(err)
		}
		account = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get profile")
	}

	return account.Redacted(), nil
}

// GetByUsername returns the account with the given username.
func (srv *accountService) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var account *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.AccountRepo().FindByUsername(ctx, username)
		if err != nil {
			return mapAccountLookupError(err)
		}
		account = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get account by username")
	}

	return account.Redacted(), nil
}

// UpdateAccount applies a partial update to the caller's own account.
func (srv *accountService) UpdateAccount(
	ctx context.Context,
	callerID, targetID uuid.UUID,
	input *usecase.UpdateAccountInput,
) (*entity.Account, error) {
	srv.log(ctx).Info("Updating account", slog.Any("accountID", targetID))

	if callerID != targetID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "cannot modify another account")
	}
	if input.IsEmpty() {
		return srv.GetProfile(ctx, targetID)
	}

	var updated *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		current, err := accountRepo.FindByID(ctx, targetID)
		if err != nil {
			return mapAccountLookupError(err)
		}

		var newUsername, newEmail *string
		if input.Username != nil && *input.Username != current.Username {
			newUsername = input.Username
		}
		if input.Email != nil && *input.Email != current.Email {
			newEmail = input.Email
		}
		if err := srv.ensureAvailable(ctx, accountRepo, current.ID, newUsername, newEmail); err != nil {
			return err
		}

		next := current.Clone()
		if newUsername != nil {
			next.Username = *newUsername
		}
		if newEmail != nil {
			next.Email = *newEmail
		}
		if input.Password != nil {
			hashedPassword, err := srv.hashPassword(ctx, *input.Password)
			if err != nil {
				return err
			}
			next = next.WithPasswordHash(hashedPassword)
		}
		next.UpdatedAt = time.Now().UTC()

		if err := accountRepo.Update(ctx, next); err != nil {
			return mapAccountWriteError(err, "failed to update account")
		}
		updated = next

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Account update failed", slog.Any("accountID", targetID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute account update transaction")
	}

	return updated.Redacted(), nil
}

// DeleteAccount removes the caller's own account.
func (srv *accountService) DeleteAccount(ctx context.Context, callerID, targetID uuid.UUID) error {
	srv.log(ctx).Info("Deleting account", slog.Any("accountID", targetID))

	if callerID != targetID {
		return errors.Wrap(domainerrors.ErrForbidden, "cannot delete another account")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.AccountRepo().Delete(ctx, targetID); err != nil {
			return mapAccountLookupError(err)
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete account")
	}

	return nil
}

// hashPassword passes input rejections from the hasher through and reports anything else as a server fault.
func (srv *accountService) hashPassword(ctx context.Context, password string) (string, error) {
	hashed, err := srv.hasher.Hash(password)
	if err == nil {
		return hashed, nil
	}
	if domainerrors.KindOf(err) == domainerrors.KindValidationFailure {
		return "", errors.WithStack(err)
	}
	srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

	return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
}

// ensureAvailable checks that username and email (when non-nil) are not held by an account
// other than selfID. Both lookups always run; a username clash is reported first.
func (srv *accountService) ensureAvailable(
	ctx context.Context,
	accountRepo repository.AccountRepository,
	selfID uuid.UUID,
	username, email *string,
) error {
	usernameTaken, err := isTaken(ctx, selfID, username, accountRepo.FindByUsername)
	if err != nil {
		return errors.Wrap(err, "failed to check username availability")
	}
	emailTaken, err := isTaken(ctx, selfID, email, accountRepo.FindByEmail)
	if err != nil {
		return errors.Wrap(err, "failed to check email availability")
	}

	switch {
	case usernameTaken:
		return errors.WithStack(domainerrors.ErrUsernameTaken)
	case emailTaken:
		return errors.WithStack(domainerrors.ErrEmailTaken)
	default:
		return nil
	}
}

func isTaken(
	ctx context.Context,
	selfID uuid.UUID,
	value *string,
	find func(context.Context, string) (*entity.Account, error),
) (bool, error) {
	if value == nil {
		return false, nil
	}

	existing, err := find(ctx, *value)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return existing.ID != selfID, nil
}

// mapAccountLookupError turns repository sentinels into application errors.
func mapAccountLookupError(err error) error {
	if errors.Is(err, repository.ErrAccountNotFound) {
		return errors.WithStack(domainerrors.ErrAccountNotFound)
	}

	return errors.Wrap(err, "failed to load account")
}

// mapAccountWriteError treats store-level uniqueness violations as the same conflict
// the pre-checks would have reported.
func mapAccountWriteError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		return errors.WithStack(domainerrors.ErrUsernameTaken)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return errors.WithStack(domainerrors.ErrEmailTaken)
	case errors.Is(err, repository.ErrAccountNotFound):
		return errors.WithStack(domainerrors.ErrAccountNotFound)
	default:
		return errors.Wrap(err, message)
	}
}
