package auth

import (
	"errors"

	httperrors "github.com/dropDatabas3/signet/internal/http/errors"
	svc "github.com/dropDatabas3/signet/internal/http/services/auth"
)

// mapServiceError translates service sentinels into the HTTP error
// vocabulary. Unknown errors fall through as 500 with the cause kept
// for the logs.
func mapServiceError(err error) *httperrors.AppError {
	switch {
	case errors.Is(err, svc.ErrUserExists):
		return httperrors.ErrEmailAlreadyInUse
	case errors.Is(err, svc.ErrUserNotFound):
		return httperrors.ErrUserNotFound
	case errors.Is(err, svc.ErrInvalidCode):
		return httperrors.ErrInvalidOTP
	case errors.Is(err, svc.ErrOTPNotFound):
		return httperrors.ErrOTPNotFound
	case errors.Is(err, svc.ErrOTPNotActive):
		return httperrors.ErrOTPNotUsable
	case errors.Is(err, svc.ErrOTPExpired):
		return httperrors.ErrOTPExpired
	case errors.Is(err, svc.ErrTempTokenNotFound):
		return httperrors.ErrTempTokenNotFound
	case errors.Is(err, svc.ErrTempTokenNotUsable):
		return httperrors.ErrOTPNotUsable
	case errors.Is(err, svc.ErrPurposeMismatch):
		return httperrors.ErrPurposeMismatch
	case errors.Is(err, svc.ErrNoLocalCredential):
		return httperrors.ErrNoLocalCredential
	case errors.Is(err, svc.ErrInvalidCredentials):
		return httperrors.ErrInvalidCredentials
	case errors.Is(err, svc.ErrPasswordMismatch):
		return httperrors.ErrPasswordMismatch
	case errors.Is(err, svc.ErrRateLimited):
		return httperrors.ErrRateLimited
	default:
		return httperrors.ErrInternal.WithCause(err)
	}
}
