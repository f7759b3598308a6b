package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrAlreadyExists        = errors.New("resource already exists")
	ErrInvalidInput         = errors.New("invalid input")
	ErrBadRequest           = errors.New("bad request")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrNonceInvalid         = errors.New("invalid, expired, or already used nonce")
	ErrSignatureInvalid     = errors.New("invalid wallet signature")
	ErrWalletExists         = errors.New("wallet already linked to this account")
	ErrAnonymousAuthDisabled = errors.New("anonymous sign-ins are disabled")
)

// Error codes returned in HTTP responses
const (
	CodeBadRequest           = "BAD_REQUEST"
	CodeInvalidInput         = "BAD_REQUEST"
	CodeNotFound             = "NOT_FOUND"
	CodeConflict             = "CONFLICT"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeInternalError        = "INTERNAL_ERROR"
	CodeNonceInvalid         = "NONCE_INVALID"
	CodeNonceStorageFailed   = "NONCE_STORAGE_FAILED"
	CodeSignatureInvalid     = "SIGNATURE_INVALID"
	CodeAnonymousAuthDisabled = "ANONYMOUS_AUTH_DISABLED"
	CodeAuthFailed           = "AUTH_FAILED"
	CodeProfileError         = "PROFILE_ERROR"
	CodeWalletExists         = "WALLET_EXISTS"
	CodeWalletLinkFailed     = "WALLET_LINK_FAILED"
)

// AppError represents an application error with HTTP status and a stable code.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithHint attaches an actionable hint to the error
func (e *AppError) WithHint(hint string) *AppError {
	e.Hint = hint
	return e
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// InternalServerError creates an internal error with a visible message
func InternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, message, nil)
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeBadRequest,
		Message: message,
		Err:     err,
	}
}
