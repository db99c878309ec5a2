// Package errors defines the application error taxonomy shared by every layer.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies an application error independently of its transport mapping.
type Kind int

const (
	KindServerFault Kind = iota
	KindValidationFailure
	KindConflict
	KindNotFound
	KindForbidden
	KindUnauthorized
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidationFailure:
		return "ValidationFailure"
	case KindConflict:
		return "Conflict"
	case KindNotFound:
		return "NotFound"
	case KindForbidden:
		return "Forbidden"
	case KindUnauthorized:
		return "Unauthorized"
	default:
		return "ServerFault"
	}
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Taxonomy bucket
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() any      // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   any
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the taxonomy bucket
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() any {
	return e.details
}

// Is matches any BaseError carrying the same error code, so copies made by
// WithDetails still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details any) *BaseError {
	cloned := *e
	cloned.details = details

	return &cloned
}

// Predefined error types
var (
	// Account-related errors
	ErrUsernameTaken = NewBaseError(
		KindConflict,
		http.StatusBadRequest,
		"USERNAME_TAKEN",
		"A user with this username already exists",
	)

	ErrEmailTaken = NewBaseError(
		KindConflict,
		http.StatusBadRequest,
		"EMAIL_TAKEN",
		"A user with this email already exists",
	)

	ErrAccountNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"user does not exist",
	)

	ErrInvalidPassword = NewBaseError(
		KindUnauthorized,
		http.StatusBadRequest,
		"INVALID_PASSWORD",
		"Invalid password",
	)

	ErrPasswordHashFailed = NewBaseError(
		KindServerFault,
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Server error",
	)

	// Token-related errors
	ErrTokenMissing = NewBaseError(
		KindUnauthorized,
		http.StatusUnauthorized,
		"TOKEN_MISSING",
		"Unauthorized access, no token provided",
	)

	ErrTokenInvalid = NewBaseError(
		KindUnauthorized,
		http.StatusBadRequest,
		"TOKEN_INVALID",
		"Invalid token.",
	)

	ErrTokenExpired = NewBaseError(
		KindUnauthorized,
		http.StatusBadRequest,
		"TOKEN_EXPIRED",
		"Token has expired.",
	)

	// Post-related errors
	ErrPostNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"POST_NOT_FOUND",
		"Post not found.",
	)

	ErrRecipeRequired = NewBaseError(
		KindValidationFailure,
		http.StatusBadRequest,
		"RECIPE_REQUIRED",
		"A recipe post must include a recipe",
	)

	ErrRecipeIncomplete = NewBaseError(
		KindValidationFailure,
		http.StatusBadRequest,
		"RECIPE_INCOMPLETE",
		"Recipe is missing required fields",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		KindValidationFailure,
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
	)

	// General errors
	ErrInternalError = NewBaseError(
		KindServerFault,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Server error",
	)

	ErrForbidden = NewBaseError(
		KindForbidden,
		http.StatusForbidden,
		"FORBIDDEN",
		"You do not have permission to modify this resource",
	)

	ErrTransactionFailed = NewBaseError(
		KindServerFault,
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Server error",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface.
// The wrapped cause is kept for logs and never reaches the client.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, e.details).Error()
}

// Unwrap exposes the driver error for errors.Is/As.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Kind returns the taxonomy bucket
func (e *DatabaseExecuteError) Kind() Kind {
	return KindServerFault
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Server error"
}

// Details returns nothing: database internals are never exposed.
func (e *DatabaseExecuteError) Details() any {
	return nil
}

// KindOf returns the kind of the first AppError in err's chain, or KindServerFault.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindServerFault
}
