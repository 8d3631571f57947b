package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrUnauthorized            = errors.New("unauthorized access")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrInvalidUserRole         = errors.New("invalid user role")
	ErrInvalidInput            = errors.New("invalid input data")
	ErrTokenExpired            = errors.New("token has expired")
	ErrTokenInvalid            = errors.New("token is invalid")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// Error codes returned to API clients
const (
	CodeOutOfBounds          = "OUT_OF_BOUNDS"
	CodeSlotConflict         = "SLOT_CONFLICT"
	CodeDeviceNotFound       = "DEVICE_NOT_FOUND"
	CodeInvalidSize          = "INVALID_SIZE"
	CodeDeviceAlreadyPlaced  = "DEVICE_ALREADY_PLACED"
	CodeRackNotFound         = "RACK_NOT_FOUND"
	CodeRackAlreadyExists    = "RACK_ALREADY_EXISTS"
	CodeVersionConflict      = "VERSION_CONFLICT"
	CodeValidation           = "VALIDATION_ERROR"
	CodeDeviceDecommissioned = "DEVICE_DECOMMISSIONED"
	CodeNotFound             = "NOT_FOUND"
	CodeInvalidTransition    = "INVALID_STATUS_TRANSITION"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeRateLimited          = "RATE_LIMITED"
	CodeInternal             = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail attaches a key/value pair that is echoed to the client
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AsAppError extracts an *AppError from err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
