package repository

import (
	"context"
	"time"
)

// OTPStatus is the lifecycle state of a one-time passcode record.
//
// Transitions: Active → Verified → Completed. Expired is reachable from
// Active and Verified. Records are never deleted.
type OTPStatus string

const (
	OTPStatusActive    OTPStatus = "active"
	OTPStatusVerified  OTPStatus = "verified"
	OTPStatusCompleted OTPStatus = "completed"
	OTPStatusExpired   OTPStatus = "expired"
)

// OTPPurpose tags why the code was issued.
type OTPPurpose string

const (
	OTPPurposeRegister       OTPPurpose = "register"
	OTPPurposeSetPassword    OTPPurpose = "set_password"
	OTPPurposeForgotPassword OTPPurpose = "forgot_password"
)

// OTP is a single-use verification record bound to an email address.
// TempToken is set only on the transition to Verified and is unique
// across all records.
type OTP struct {
	ID        string
	Email     string
	Code      string
	Purpose   OTPPurpose
	Status    OTPStatus
	TempToken *string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the record is past its expiry at the given time.
func (o *OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// OTPRepository defines operations on OTP records. The Mark* methods are
// conditional: they only advance from the expected prior status and return
// ErrInvalidState when the record is no longer there, which makes every
// transition safe to race.
type OTPRepository interface {
	// LatestByEmail returns the most recently created OTP for an email,
	// regardless of status. Returns ErrNotFound if none exists.
	LatestByEmail(ctx context.Context, email string) (*OTP, error)

	// GetByTempToken finds an OTP by its temp token.
	// Returns ErrNotFound if absent.
	GetByTempToken(ctx context.Context, token string) (*OTP, error)

	// Create inserts a new OTP record.
	Create(ctx context.Context, otp *OTP) error

	// ExpireActive marks every Active OTP for the email as Expired.
	ExpireActive(ctx context.Context, email string) error

	// MarkVerified transitions Active → Verified and stores the temp token.
	MarkVerified(ctx context.Context, id, tempToken string) error

	// MarkCompleted transitions Verified → Completed.
	MarkCompleted(ctx context.Context, id string) error

	// MarkExpired transitions Active or Verified → Expired.
	MarkExpired(ctx context.Context, id string) error
}
