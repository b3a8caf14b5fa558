package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/signet/internal/domain/repository"
	jwtx "github.com/dropDatabas3/signet/internal/jwt"
	"github.com/dropDatabas3/signet/internal/metrics"
	"github.com/dropDatabas3/signet/internal/observability/logger"
	"github.com/dropDatabas3/signet/internal/security/password"
	"github.com/dropDatabas3/signet/internal/store"
)

// LoginDeps contains the dependencies for the login service.
type LoginDeps struct {
	Store  store.Store
	Hasher password.Hasher
	Issuer *jwtx.Issuer
}

type loginService struct {
	deps LoginDeps
}

// NewLoginService builds the password login service.
func NewLoginService(deps LoginDeps) LoginService {
	return &loginService{deps: deps}
}

func (s *loginService) Login(ctx context.Context, emailAddr, pass string) (string, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Login"),
	)

	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))

	user, err := s.deps.Store.Users().GetByEmail(ctx, emailAddr)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	// Social-only accounts carry an empty hash; that sentinel must
	// never reach the bcrypt comparison.
	if !user.HasLocalCredential() {
		return "", ErrNoLocalCredential
	}
	if !s.deps.Hasher.Verify(pass, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	identities, err := s.deps.Store.Identities().ListByUser(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("list identities: %w", err)
	}

	token, err := s.deps.Issuer.Sign(user, identities)
	if err != nil {
		return "", err
	}
	metrics.Logins.WithLabelValues("password").Inc()

	log.Info("login ok", logger.UserID(user.ID))
	return token, nil
}
