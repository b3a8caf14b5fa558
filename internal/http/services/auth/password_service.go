package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/signet/internal/domain/repository"
	jwtx "github.com/dropDatabas3/signet/internal/jwt"
	"github.com/dropDatabas3/signet/internal/observability/logger"
	"github.com/dropDatabas3/signet/internal/security/password"
	"github.com/dropDatabas3/signet/internal/store"
)

// PasswordDeps contains the dependencies for the password service.
type PasswordDeps struct {
	Store  store.Store
	OTP    OTPService
	Hasher password.Hasher
	Issuer *jwtx.Issuer
	Now    func() time.Time // nil = time.Now
}

type passwordService struct {
	deps PasswordDeps
}

// NewPasswordService builds the set/reset password service.
func NewPasswordService(deps PasswordDeps) PasswordService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &passwordService{deps: deps}
}

// Forgot starts a password reset for an account that already has a
// local credential.
func (s *passwordService) Forgot(ctx context.Context, emailAddr string) error {
	return s.request(ctx, emailAddr, repository.OTPPurposeForgotPassword)
}

// RequestSetPassword starts adding a password to a social-only account.
func (s *passwordService) RequestSetPassword(ctx context.Context, emailAddr string) error {
	return s.request(ctx, emailAddr, repository.OTPPurposeSetPassword)
}

func (s *passwordService) request(ctx context.Context, emailAddr string, purpose repository.OTPPurpose) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.password"),
		logger.Op("request"),
		logger.Purpose(string(purpose)),
	)

	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))

	if _, err := s.deps.Store.Users().GetByEmail(ctx, emailAddr); err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if err := s.deps.OTP.Issue(ctx, emailAddr, purpose); err != nil {
		return err
	}
	log.Info("password otp issued", logger.Email(emailAddr))
	return nil
}

func (s *passwordService) SetPassword(ctx context.Context, tempToken, pass, confirm string) (string, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.password"),
		logger.Op("SetPassword"),
	)

	if pass != confirm {
		return "", ErrPasswordMismatch
	}

	otp, err := s.deps.OTP.Consume(ctx, tempToken,
		repository.OTPPurposeSetPassword, repository.OTPPurposeForgotPassword)
	if err != nil {
		return "", err
	}

	hash, err := s.deps.Hasher.Hash(pass)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	now := s.deps.Now()
	var user *repository.User
	err = s.deps.Store.WithTx(ctx, func(tx store.Repos) error {
		user, err = tx.Users().GetByEmail(ctx, otp.Email)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			return err
		}

		// A social-only account gains its local identity the first
		// time it sets a password.
		_, err = tx.Identities().GetByUserAndProvider(ctx, user.ID, repository.ProviderLocal)
		if repository.IsNotFound(err) {
			err = tx.Identities().Create(ctx, &repository.Identity{
				ID:             uuid.NewString(),
				UserID:         user.ID,
				Provider:       repository.ProviderLocal,
				ProviderUserID: user.ID,
				CreatedAt:      now,
			})
		}
		if err != nil {
			return err
		}

		return tx.OTPs().MarkCompleted(ctx, otp.ID)
	})
	if err != nil {
		if repository.IsInvalidState(err) {
			return "", ErrTempTokenNotUsable
		}
		return "", err
	}

	identities, err := s.deps.Store.Identities().ListByUser(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("list identities: %w", err)
	}
	token, err := s.deps.Issuer.Sign(user, identities)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}

	log.Info("password updated", logger.UserID(user.ID), logger.Purpose(string(otp.Purpose)))
	return token, nil
}
