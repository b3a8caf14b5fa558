package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/signet/internal/domain/repository"
	"github.com/dropDatabas3/signet/internal/email"
	"github.com/dropDatabas3/signet/internal/metrics"
	"github.com/dropDatabas3/signet/internal/observability/logger"
	"github.com/dropDatabas3/signet/internal/rate"
	tokens "github.com/dropDatabas3/signet/internal/security/token"
	"github.com/dropDatabas3/signet/internal/store"
)

// OTPDeps contains the dependencies for the OTP service.
type OTPDeps struct {
	Store   store.Store
	Sender  email.Sender
	Limiter *rate.Limiter
	TTL     time.Duration
	Now     func() time.Time // nil = time.Now
}

type otpService struct {
	deps OTPDeps
}

// NewOTPService builds the OTP lifecycle service.
func NewOTPService(deps OTPDeps) OTPService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.TTL <= 0 {
		deps.TTL = 5 * time.Minute
	}
	return &otpService{deps: deps}
}

func (s *otpService) Issue(ctx context.Context, emailAddr string, purpose repository.OTPPurpose) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.otp"),
		logger.Op("Issue"),
		logger.Purpose(string(purpose)),
	)

	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))
	if !s.deps.Limiter.Allow(emailAddr) {
		log.Warn("otp issuance throttled", logger.Email(emailAddr))
		return ErrRateLimited
	}

	code, err := tokens.GenerateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	now := s.deps.Now()
	otp := &repository.OTP{
		ID:        uuid.NewString(),
		Email:     emailAddr,
		Code:      code,
		Purpose:   purpose,
		Status:    repository.OTPStatusActive,
		ExpiresAt: now.Add(s.deps.TTL),
		CreatedAt: now,
	}

	// Expiring the previous code and inserting the new one happen in
	// one transaction so there is never more than one active code.
	err = s.deps.Store.WithTx(ctx, func(tx store.Repos) error {
		if err := tx.OTPs().ExpireActive(ctx, emailAddr); err != nil {
			return err
		}
		return tx.OTPs().Create(ctx, otp)
	})
	if err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	metrics.OTPIssued.WithLabelValues(string(purpose)).Inc()

	// The code is already persisted; a failed email must not undo that.
	if err := s.deps.Sender.SendOTP(ctx, emailAddr, code); err != nil {
		metrics.EmailSendFailures.Inc()
		log.Error("otp email delivery failed", logger.Email(emailAddr), logger.Err(err))
	}

	log.Info("otp issued", logger.OTPID(otp.ID))
	return nil
}

func (s *otpService) Verify(ctx context.Context, emailAddr, code string) (string, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.otp"),
		logger.Op("Verify"),
	)

	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))

	otp, err := s.deps.Store.OTPs().LatestByEmail(ctx, emailAddr)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", ErrOTPNotFound
		}
		return "", fmt.Errorf("load otp: %w", err)
	}

	// Order matters: a wrong code reads the same whether or not the
	// row has meanwhile expired.
	if otp.Code != code {
		return "", ErrInvalidCode
	}
	if otp.Status != repository.OTPStatusActive {
		return "", ErrOTPNotActive
	}
	if otp.Expired(s.deps.Now()) {
		s.lazyExpire(ctx, otp.ID)
		return "", ErrOTPExpired
	}

	tempToken, err := tokens.GenerateTempToken()
	if err != nil {
		return "", fmt.Errorf("generate temp token: %w", err)
	}
	if err := s.deps.Store.OTPs().MarkVerified(ctx, otp.ID, tempToken); err != nil {
		if repository.IsInvalidState(err) {
			return "", ErrOTPNotActive
		}
		return "", fmt.Errorf("mark verified: %w", err)
	}
	metrics.OTPVerified.Inc()

	log.Info("otp verified", logger.OTPID(otp.ID), logger.Purpose(string(otp.Purpose)))
	return tempToken, nil
}

func (s *otpService) Consume(ctx context.Context, tempToken string, purposes ...repository.OTPPurpose) (*repository.OTP, error) {
	otp, err := s.deps.Store.OTPs().GetByTempToken(ctx, strings.TrimSpace(tempToken))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrTempTokenNotFound
		}
		return nil, fmt.Errorf("load otp by temp token: %w", err)
	}

	if otp.Status != repository.OTPStatusVerified {
		return nil, ErrTempTokenNotUsable
	}
	if otp.Expired(s.deps.Now()) {
		s.lazyExpire(ctx, otp.ID)
		return nil, ErrOTPExpired
	}
	ok := false
	for _, p := range purposes {
		if otp.Purpose == p {
			ok = true
			break
		}
	}
	if !ok {
		return nil, ErrPurposeMismatch
	}
	return otp, nil
}

// lazyExpire persists the expired status found during a read. Failure
// is tolerable; the row stays unusable either way.
func (s *otpService) lazyExpire(ctx context.Context, id string) {
	if err := s.deps.Store.OTPs().MarkExpired(ctx, id); err != nil && !repository.IsInvalidState(err) {
		logger.From(ctx).Warn("lazy otp expiry failed",
			logger.Component("auth.otp"), logger.OTPID(id), logger.Err(err))
	}
}
