package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/signet/internal/domain/repository"
	jwtx "github.com/dropDatabas3/signet/internal/jwt"
	"github.com/dropDatabas3/signet/internal/metrics"
	"github.com/dropDatabas3/signet/internal/observability/logger"
	"github.com/dropDatabas3/signet/internal/security/password"
	"github.com/dropDatabas3/signet/internal/store"
)

// RegisterDeps contains the dependencies for the register service.
type RegisterDeps struct {
	Store  store.Store
	OTP    OTPService
	Hasher password.Hasher
	Issuer *jwtx.Issuer
	Now    func() time.Time // nil = time.Now
}

type registerService struct {
	deps RegisterDeps
}

// NewRegisterService builds the signup service.
func NewRegisterService(deps RegisterDeps) RegisterService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &registerService{deps: deps}
}

func (s *registerService) Register(ctx context.Context, emailAddr string) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.register"),
		logger.Op("Register"),
	)

	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))

	// Reject taken addresses before any code goes out.
	_, err := s.deps.Store.Users().GetByEmail(ctx, emailAddr)
	switch {
	case err == nil:
		return ErrUserExists
	case !repository.IsNotFound(err):
		return fmt.Errorf("lookup user: %w", err)
	}

	if err := s.deps.OTP.Issue(ctx, emailAddr, repository.OTPPurposeRegister); err != nil {
		return err
	}
	log.Info("registration otp issued", logger.Email(emailAddr))
	return nil
}

func (s *registerService) CompleteRegistration(ctx context.Context, tempToken string, in CompleteRegistrationInput) (*repository.User, string, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.register"),
		logger.Op("CompleteRegistration"),
	)

	if in.Password != in.ConfirmPassword {
		return nil, "", ErrPasswordMismatch
	}

	// Consuming happens before the account transaction: if the tx
	// fails, the token stays verified and the client can retry.
	otp, err := s.deps.OTP.Consume(ctx, tempToken, repository.OTPPurposeRegister)
	if err != nil {
		return nil, "", err
	}

	hash, err := s.deps.Hasher.Hash(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := s.deps.Now()
	user := &repository.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        otp.Email,
		PasswordHash: hash,
		CreatedAt:    now,
	}
	local := repository.Identity{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		Provider:       repository.ProviderLocal,
		ProviderUserID: user.ID,
		CreatedAt:      now,
	}

	err = s.deps.Store.WithTx(ctx, func(tx store.Repos) error {
		_, err := tx.Users().GetByEmail(ctx, otp.Email)
		switch {
		case err == nil:
			return ErrUserExists
		case !repository.IsNotFound(err):
			return err
		}

		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		if err := tx.Identities().Create(ctx, &local); err != nil {
			return err
		}
		// Completing the OTP inside the tx makes a concurrent replay
		// of the same temp token roll one of the two back.
		return tx.OTPs().MarkCompleted(ctx, otp.ID)
	})
	if err != nil {
		if repository.IsConflict(err) {
			return nil, "", ErrUserExists
		}
		if repository.IsInvalidState(err) {
			return nil, "", ErrTempTokenNotUsable
		}
		return nil, "", err
	}
	metrics.AccountsCreated.WithLabelValues(repository.ProviderLocal).Inc()

	token, err := s.deps.Issuer.Sign(user, []repository.Identity{local})
	if err != nil {
		return nil, "", fmt.Errorf("sign session: %w", err)
	}

	log.Info("account created", logger.UserID(user.ID), logger.Email(user.Email))
	return user, token, nil
}
