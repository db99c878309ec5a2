package auth

import (
	"testing"
	"time"

	"brewshare/config"
	domainerrors "brewshare/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: 24 * time.Hour}}
	cfg.SecretKey.Access = secret

	return cfg
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	accountID := uuid.New()
	token, err := tokenService.GenerateToken(accountID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tokenService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, accountID.String(), claims.Subject)
	assert.WithinDuration(t, claims.IssuedAt.Add(24*time.Hour), claims.ExpiresAt.Time, time.Second)
	assert.Equal(t, 24*time.Hour, tokenService.TokenTTL())
}

func TestJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(newTestConfig(""))
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig("secret-one"))
	require.NoError(t, err)

	_, err = tokenService.ValidateToken("clearly-not-a-jwt-token-format")
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))

	other, err := NewJWTService(newTestConfig("secret-two"))
	require.NoError(t, err)
	foreign, err := other.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = tokenService.ValidateToken(foreign)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("secret"))
	require.NoError(t, err)
	impl := svc.(*jwtService)

	issued := time.Now().Add(-48 * time.Hour)
	impl.now = func() time.Time { return issued }
	token, err := impl.GenerateToken(uuid.New())
	require.NoError(t, err)

	impl.now = time.Now
	_, err = impl.ValidateToken(token)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestJWTService_RejectsUnexpectedSigningMethod(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("secret"))
	require.NoError(t, err)

	claims := jwt.MapClaims{"sub": uuid.NewString(), "exp": time.Now().Add(time.Hour).Unix()}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(unsigned)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}
