package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyExists       = errors.New("resource already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTokenExpired        = errors.New("token expired")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrCurrencyMismatch    = errors.New("currency mismatch")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrKYCRequired         = errors.New("kyc verification required")
	ErrInvalidPin          = errors.New("invalid transfer pin")
	ErrFeeRequired         = errors.New("network fee required")
	ErrFeeRuleChanged      = errors.New("network fee rule changed")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrMaintenance         = errors.New("maintenance mode")
	ErrSnapshotNotFound    = errors.New("snapshot not found")
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int         `json:"-"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

// Unwrap exposes the sentinel so callers can use errors.Is.
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

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "NOT_FOUND", message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "BAD_REQUEST", message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, "FORBIDDEN", message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, "CONFLICT", message, ErrAlreadyExists)
}

func TokenExpired(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "TOKEN_EXPIRED", message, ErrTokenExpired)
}

func InvalidCredentials(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "INVALID_CREDENTIALS", message, ErrInvalidCredentials)
}

func InsufficientFunds(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", message, ErrInsufficientFunds)
}

func CurrencyMismatch(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, "CURRENCY_MISMATCH", message, ErrCurrencyMismatch)
}

func UnsupportedCurrency(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "UNSUPPORTED_CURRENCY", message, ErrUnsupportedCurrency)
}

func KYCRequired(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, "KYC_REQUIRED", message, ErrKYCRequired)
}

func InvalidPin(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, "INVALID_PIN", message, ErrInvalidPin)
}

func InvalidTransition(message string) *AppError {
	return NewAppError(http.StatusConflict, "INVALID_TRANSITION", message, ErrInvalidTransition)
}

func Maintenance(message string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, "MAINTENANCE", message, ErrMaintenance)
}

// FeeRequired carries the fee rule the caller has to acknowledge before retrying.
func FeeRequired(message string, details interface{}) *AppError {
	e := NewAppError(http.StatusPaymentRequired, "FEE_REQUIRED", message, ErrFeeRequired)
	e.Details = details
	return e
}

func FeeRuleChanged(message string, details interface{}) *AppError {
	e := NewAppError(http.StatusConflict, "FEE_RULE_CHANGED", message, ErrFeeRuleChanged)
	e.Details = details
	return e
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", err)
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
		Err:     err,
	}
}

// FromError maps bare sentinel errors onto an AppError.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return NotFound(err.Error())
	case errors.Is(err, ErrAlreadyExists):
		return Conflict(err.Error())
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrBadRequest):
		return BadRequest(err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return InvalidCredentials(err.Error())
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTokenExpired):
		return Unauthorized(err.Error())
	case errors.Is(err, ErrForbidden):
		return Forbidden(err.Error())
	case errors.Is(err, ErrInsufficientFunds):
		return InsufficientFunds(err.Error())
	case errors.Is(err, ErrCurrencyMismatch):
		return CurrencyMismatch(err.Error())
	case errors.Is(err, ErrUnsupportedCurrency):
		return UnsupportedCurrency(err.Error())
	case errors.Is(err, ErrKYCRequired):
		return KYCRequired(err.Error())
	case errors.Is(err, ErrInvalidPin):
		return InvalidPin(err.Error())
	case errors.Is(err, ErrInvalidTransition):
		return InvalidTransition(err.Error())
	case errors.Is(err, ErrMaintenance):
		return Maintenance(err.Error())
	default:
		return InternalError(err)
	}
}
