// Package handler contains the HTTP handlers for the API.
package handler

import (
	"log/slog"
	"net/http"

	"brewshare/internal/delivery/api/middleware"
	"brewshare/internal/delivery/api/response"
	domainerrors "brewshare/internal/domain/errors"
	"brewshare/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	Logger    *slog.Logger
}

// AccountHandler serves the /api/users routes.
type AccountHandler struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		accountUC: params.AccountUC,
		logger:    params.Logger,
	}
}

// Register handles account creation and returns the new account with a token.
func (h *AccountHandler) Register(c echo.Context) error {
	var req usecase.RegisterAccountInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.accountUC.Register(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newAuthResponse(output))
}

// Login handles login by username or email.
func (h *AccountHandler) Login(c echo.Context) error {
	var req usecase.LoginInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.accountUC.Login(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAuthResponse(output))
}

// GetProfile returns the authenticated caller's account.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrTokenMissing)
	}

	account, err := h.accountUC.GetProfile(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountResponse(account))
}

// GetByUsername returns the account registered under :username.
func (h *AccountHandler) GetByUsername(c echo.Context) error {
	account, err := h.accountUC.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountResponse(account))
}

// UpdateAccount applies a partial update to the caller's own account.
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	callerID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrTokenMissing)
	}

	targetID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrAccountNotFound)
	}

	var req usecase.UpdateAccountInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account update input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	account, err := h.accountUC.UpdateAccount(c.Request().Context(), callerID, targetID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountResponse(account))
}

// DeleteAccount removes the caller's own account.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	callerID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrTokenMissing)
	}

	targetID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrAccountNotFound)
	}

	if err := h.accountUC.DeleteAccount(c.Request().Context(), callerID, targetID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}
