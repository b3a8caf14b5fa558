// Package auth holds the account-lifecycle services: one-time codes,
// registration, password login, password set/reset and social linking.
// Controllers stay thin; every business rule lives here.
package auth

import (
	"context"

	"github.com/dropDatabas3/signet/internal/domain/repository"
	"github.com/dropDatabas3/signet/internal/oauth"
)

// OTPService drives the one-time code lifecycle. A code is issued for a
// purpose, verified into a temp token, and finally consumed by the
// operation the purpose belongs to.
type OTPService interface {
	// Issue expires any active code for the email, stores a fresh one
	// and sends it out. Notification failures are absorbed.
	Issue(ctx context.Context, email string, purpose repository.OTPPurpose) error

	// Verify checks the submitted code and returns a temp token the
	// caller uses to finish the flow.
	Verify(ctx context.Context, email, code string) (string, error)

	// Consume resolves a temp token into its verified OTP row without
	// completing it. The caller marks it completed inside its own
	// transaction. The OTP's purpose must be one of the given purposes.
	Consume(ctx context.Context, tempToken string, purposes ...repository.OTPPurpose) (*repository.OTP, error)
}

// RegisterService covers the two-step signup flow.
type RegisterService interface {
	// Register starts a signup by sending a code to the address.
	Register(ctx context.Context, email string) error

	// CompleteRegistration creates the account after OTP verification
	// and signs the first session token.
	CompleteRegistration(ctx context.Context, tempToken string, in CompleteRegistrationInput) (*repository.User, string, error)
}

// CompleteRegistrationInput carries the profile submitted with a
// verified temp token.
type CompleteRegistrationInput struct {
	Name            string
	Password        string
	ConfirmPassword string
}

// LoginService authenticates local credentials and signs sessions.
type LoginService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// PasswordService covers the set-password and forgot-password flows.
// Both end in SetPassword; they differ only in the purpose of the code
// that was issued.
type PasswordService interface {
	Forgot(ctx context.Context, email string) error
	RequestSetPassword(ctx context.Context, email string) error

	// SetPassword stores the new credential and signs a session token
	// so the client is logged in right away.
	SetPassword(ctx context.Context, tempToken, password, confirm string) (string, error)
}

// SocialService reconciles third-party profiles into local accounts.
type SocialService interface {
	// Reconcile finds or creates the user and identity for a profile
	// and returns a signed session token.
	Reconcile(ctx context.Context, profile *oauth.Profile) (string, error)
}

// Services bundles the auth services for the controllers.
type Services struct {
	OTP      OTPService
	Register RegisterService
	Login    LoginService
	Password PasswordService
	Social   SocialService
}
