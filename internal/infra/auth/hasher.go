package auth

import (
	"brewshare/config"
	"brewshare/internal/domain/constants"
	"brewshare/internal/domain/service"

	"github.com/pkg/errors"
)

// NewPasswordHasher selects the hasher named by auth.hasher.
func NewPasswordHasher(cfg *config.Config) (service.PasswordHasher, error) {
	if cfg.Auth == nil {
		return NewBcryptHasher(0), nil
	}

	switch cfg.Auth.Hasher {
	case "", constants.HasherBcrypt:
		return NewBcryptHasher(cfg.Auth.BcryptCost), nil
	case constants.HasherArgon2id:
		return NewArgon2Hasher(), nil
	default:
		return nil, errors.Errorf("unsupported password hasher: %s", cfg.Auth.Hasher)
	}
}
