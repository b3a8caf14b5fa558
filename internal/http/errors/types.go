// Package errors defines the HTTP error vocabulary. Controllers map
// service sentinels onto these; WriteError renders them in the API's
// response envelope.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the standard application error carried up to the edge.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // original cause, logged but never exposed
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError.
func New(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// FromError coerces any error into an AppError; unknown errors become a
// generic 500 that keeps the cause for the logs.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrInternal.WithCause(err)
}

// WithDetail returns a copy carrying extra client-facing detail.
func (e *AppError) WithDetail(detail string) *AppError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// WithCause returns a copy carrying the original error.
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// 400 Bad Request

var (
	ErrInvalidJSON = &AppError{
		Code:       "INVALID_JSON",
		Message:    "Request body is not valid JSON.",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrValidation = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "One or more fields are invalid.",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrMissingTempToken = &AppError{
		Code:       "MISSING_TEMP_TOKEN",
		Message:    "The tempToken query parameter is required.",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrUnsupportedProvider = &AppError{
		Code:       "UNSUPPORTED_PROVIDER",
		Message:    "Unknown or disabled login provider.",
		HTTPStatus: http.StatusBadRequest,
	}
)

// 401 Unauthorized

var (
	ErrInvalidCredentials = &AppError{
		Code:       "INVALID_CREDENTIALS",
		Message:    "Invalid email or password.",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrInvalidOTP = &AppError{
		Code:       "INVALID_OTP",
		Message:    "The code is incorrect.",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrOTPExpired = &AppError{
		Code:       "OTP_EXPIRED",
		Message:    "The code has expired, request a new one.",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrInvalidState = &AppError{
		Code:       "INVALID_STATE",
		Message:    "The OAuth state does not match.",
		HTTPStatus: http.StatusUnauthorized,
	}
)

// 403 Forbidden

var (
	ErrNoLocalCredential = &AppError{
		Code:       "NO_LOCAL_CREDENTIAL",
		Message:    "This account has no password login; sign in with your provider or set a password first.",
		HTTPStatus: http.StatusForbidden,
	}
)

// 404 Not Found

var (
	ErrUserNotFound = &AppError{
		Code:       "USER_NOT_FOUND",
		Message:    "No account exists for that email.",
		HTTPStatus: http.StatusNotFound,
	}

	ErrOTPNotFound = &AppError{
		Code:       "OTP_NOT_FOUND",
		Message:    "No code was issued for that email.",
		HTTPStatus: http.StatusNotFound,
	}

	ErrTempTokenNotFound = &AppError{
		Code:       "TEMP_TOKEN_NOT_FOUND",
		Message:    "The temp token does not exist.",
		HTTPStatus: http.StatusNotFound,
	}
)

// 409 Conflict

var (
	ErrEmailAlreadyInUse = &AppError{
		Code:       "EMAIL_ALREADY_IN_USE",
		Message:    "An account already exists for that email.",
		HTTPStatus: http.StatusConflict,
	}

	ErrOTPNotUsable = &AppError{
		Code:       "OTP_NOT_USABLE",
		Message:    "The code is not in a usable state, request a new one.",
		HTTPStatus: http.StatusConflict,
	}

	ErrPurposeMismatch = &AppError{
		Code:       "PURPOSE_MISMATCH",
		Message:    "The temp token belongs to a different flow.",
		HTTPStatus: http.StatusConflict,
	}
)

// 422 Unprocessable Entity

var (
	ErrPasswordMismatch = &AppError{
		Code:       "PASSWORD_MISMATCH",
		Message:    "Password and confirmation do not match.",
		HTTPStatus: http.StatusUnprocessableEntity,
	}
)

// 429 Too Many Requests

var (
	ErrRateLimited = &AppError{
		Code:       "RATE_LIMITED",
		Message:    "Too many codes requested for this email, try again later.",
		HTTPStatus: http.StatusTooManyRequests,
	}
)

// 500+

var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_SERVER_ERROR",
		Message:    "An internal error occurred.",
		HTTPStatus: http.StatusInternalServerError,
	}

	ErrUpstreamProvider = &AppError{
		Code:       "UPSTREAM_PROVIDER_ERROR",
		Message:    "The login provider could not be reached.",
		HTTPStatus: http.StatusBadGateway,
	}
)
