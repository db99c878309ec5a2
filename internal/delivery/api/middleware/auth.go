package middleware

import (
	"strings"

	deliverycontext "brewshare/internal/delivery/context"
	domainerrors "brewshare/internal/domain/errors"
	"brewshare/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const bearerScheme = "Bearer"

// AuthMiddleware authenticates requests carrying an access token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and records the caller's account ID.
// A missing token is answered with 401; a malformed or expired one with 400.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
		if authHeader == "" {
			return domainerrors.ErrTokenMissing
		}

		scheme, tokenString, _ := strings.Cut(authHeader, " ")
		if !strings.EqualFold(scheme, bearerScheme) {
			return domainerrors.ErrTokenInvalid.WrapMessage("authorization header is not a bearer token")
		}

		tokenString = strings.TrimSpace(tokenString)
		if tokenString == "" {
			return domainerrors.ErrTokenMissing
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return errors.WithStack(err)
		}

		deliverycontext.SetAccountID(c, claims.AccountID)

		return next(c)
	}
}

// GetAccountID returns the caller recorded by Authenticate.
func GetAccountID(c echo.Context) (uuid.UUID, bool) {
	return deliverycontext.GetAccountID(c)
}
