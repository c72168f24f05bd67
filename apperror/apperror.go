// Package apperror defines the application's error taxonomy. Services return
// typed errors from this package and the HTTP layer maps them to status codes
// and a uniform JSON envelope, so no failure is silently swallowed or leaked
// with more detail than intended.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorizes an application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// DatabaseError represents a failure of the persistence layer.
	DatabaseError
	// ConfigError represents an error in application configuration.
	ConfigError
	// AuthError represents an authentication failure (bad credentials or a
	// bad/expired/malformed token). Always surfaced as a generic denial.
	AuthError
	// ForbiddenError represents an authorization failure: the caller is
	// authenticated but may not act on the resource.
	ForbiddenError
	// NotFoundError represents a missing resource.
	NotFoundError
	// ValidationError represents invalid input.
	ValidationError
	// BadRequestError represents a malformed request.
	BadRequestError
	// InternalError represents an unexpected server-side failure.
	InternalError
	// ConflictError represents a conflict with existing state, e.g. a
	// duplicate user identifier at registration.
	ConflictError
	// MigrationError represents a failure while applying schema migrations.
	MigrationError
)

// AppError carries an error category, a user-facing message, and an optional
// underlying cause kept for logs only.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error category to an HTTP status code.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case DatabaseError, ConfigError, InternalError, MigrationError:
		return http.StatusInternalServerError
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates an AppError with an explicit type.
func NewAppError(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{Type: errType, Message: message, Err: underlying}
}

// NewDatabaseError creates a DatabaseError.
func NewDatabaseError(message string, underlying error) *AppError {
	return NewAppError(DatabaseError, message, underlying)
}

// NewConfigError creates a ConfigError.
func NewConfigError(message string, underlying error) *AppError {
	return NewAppError(ConfigError, message, underlying)
}

// NewAuthError creates an AuthError.
func NewAuthError(message string, underlying error) *AppError {
	return NewAppError(AuthError, message, underlying)
}

// NewForbiddenError creates a ForbiddenError.
func NewForbiddenError(message string, underlying error) *AppError {
	return NewAppError(ForbiddenError, message, underlying)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(message string, underlying error) *AppError {
	return NewAppError(NotFoundError, message, underlying)
}

// NewValidationError creates a ValidationError.
func NewValidationError(message string, underlying error) *AppError {
	return NewAppError(ValidationError, message, underlying)
}

// NewBadRequestError creates a BadRequestError.
func NewBadRequestError(message string, underlying error) *AppError {
	return NewAppError(BadRequestError, message, underlying)
}

// NewInternalError creates an InternalError.
func NewInternalError(message string, underlying error) *AppError {
	return NewAppError(InternalError, message, underlying)
}

// NewConflictError creates a ConflictError.
func NewConflictError(message string, underlying error) *AppError {
	return NewAppError(ConflictError, message, underlying)
}

// NewMigrationError creates a MigrationError.
func NewMigrationError(message string, underlying error) *AppError {
	return NewAppError(MigrationError, message, underlying)
}

// ErrorResponse is the JSON envelope returned to API clients. Only the
// user-facing message is serialized, never the underlying cause.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToResponse converts an AppError to its client-facing representation.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// FromError attempts to interpret err as an *AppError.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError reports whether err is an AuthError.
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsForbidden reports whether err is a ForbiddenError.
func IsForbidden(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ForbiddenError
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}
