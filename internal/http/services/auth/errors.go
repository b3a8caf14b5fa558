package auth

import "errors"

// Sentinel errors the controllers translate into HTTP responses.
var (
	ErrInvalidCode         = errors.New("invalid otp code")
	ErrOTPNotActive        = errors.New("otp is not active")
	ErrOTPExpired          = errors.New("otp has expired")
	ErrOTPNotFound         = errors.New("no otp found for this email")
	ErrTempTokenNotFound   = errors.New("temp token not found")
	ErrTempTokenNotUsable  = errors.New("temp token is not in a verified state")
	ErrPurposeMismatch     = errors.New("temp token was issued for a different flow")
	ErrUserExists          = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrNoLocalCredential   = errors.New("account has no password login")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrRateLimited         = errors.New("too many otp requests")
)
