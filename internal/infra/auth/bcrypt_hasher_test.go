package auth

import (
	"strings"
	"testing"

	"brewshare/config"
	"brewshare/internal/domain/constants"
	domainerrors "brewshare/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	password := "longenough1"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEqual(t, password, hash)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("wrong-password", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasher(customCost)

	hash, err := hasher.Hash("longenough1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, customCost, cost)
}

func TestBcryptHasher_OverlongPasswordIsValidationFailure(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	_, err := hasher.Hash(strings.Repeat("é", 40))

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr), "got %v", err)
	assert.True(t, validationErr.HasField("password"))
	assert.Equal(t, domainerrors.KindValidationFailure, domainerrors.KindOf(err))
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(99).(*bcryptHasher)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}

func TestArgon2Hasher_HashAndCheck(t *testing.T) {
	hasher := &argon2Hasher{params: argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}}

	hash, err := hasher.Hash("longenough1")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$v=19$m=1024,t=1,p=1$")

	assert.True(t, hasher.Check("longenough1", hash))
	assert.False(t, hasher.Check("longenough2", hash))

	again, err := hasher.Hash("longenough1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}

func TestArgon2Hasher_RejectsMalformedHash(t *testing.T) {
	hasher := NewArgon2Hasher()

	for _, encoded := range []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=1$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$garbage$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
	} {
		assert.False(t, hasher.Check("password", encoded), encoded)
	}
}

func TestNewPasswordHasher(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{Hasher: constants.HasherArgon2id}}
	hasher, err := NewPasswordHasher(cfg)
	require.NoError(t, err)
	assert.IsType(t, &argon2Hasher{}, hasher)

	cfg.Auth = &config.AuthConfig{Hasher: constants.HasherBcrypt, BcryptCost: 5}
	hasher, err = NewPasswordHasher(cfg)
	require.NoError(t, err)
	assert.Equal(t, 5, hasher.(*bcryptHasher).cost)

	cfg.Auth.Hasher = "md5"
	_, err = NewPasswordHasher(cfg)
	assert.Error(t, err)
}
