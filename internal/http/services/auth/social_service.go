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
	"github.com/dropDatabas3/signet/internal/oauth"
	"github.com/dropDatabas3/signet/internal/observability/logger"
	"github.com/dropDatabas3/signet/internal/store"
)

// SocialDeps contains the dependencies for the social service.
type SocialDeps struct {
	Store  store.Store
	Issuer *jwtx.Issuer
	Now    func() time.Time // nil = time.Now
}

type socialService struct {
	deps SocialDeps
}

// NewSocialService builds the third-party reconciliation service.
func NewSocialService(deps SocialDeps) SocialService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &socialService{deps: deps}
}

func (s *socialService) Reconcile(ctx context.Context, profile *oauth.Profile) (string, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.social"),
		logger.Op("Reconcile"),
		logger.Provider(profile.Provider),
	)

	emailAddr := strings.TrimSpace(strings.ToLower(profile.Email))
	if emailAddr == "" {
		return "", fmt.Errorf("social profile has no email")
	}

	user, created, err := s.reconcile(ctx, profile, emailAddr)
	if repository.IsConflict(err) {
		// Two first logins raced; the loser retries once and finds the
		// rows the winner committed.
		user, created, err = s.reconcile(ctx, profile, emailAddr)
	}
	if err != nil {
		return "", err
	}
	if created {
		metrics.AccountsCreated.WithLabelValues(profile.Provider).Inc()
	}

	identities, err := s.deps.Store.Identities().ListByUser(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("list identities: %w", err)
	}

	token, err := s.deps.Issuer.Sign(user, identities)
	if err != nil {
		return "", err
	}
	metrics.Logins.WithLabelValues(profile.Provider).Inc()

	log.Info("social login ok", logger.UserID(user.ID), logger.Bool("created", created))
	return token, nil
}

// reconcile finds or creates the user and identity rows for a profile
// in one transaction. It reports whether a new account was created.
func (s *socialService) reconcile(ctx context.Context, profile *oauth.Profile, emailAddr string) (*repository.User, bool, error) {
	now := s.deps.Now()
	var (
		user    *repository.User
		created bool
	)
	err := s.deps.Store.WithTx(ctx, func(tx store.Repos) error {
		created = false
		u, err := tx.Users().GetByEmail(ctx, emailAddr)
		switch {
		case repository.IsNotFound(err):
			u = &repository.User{
				ID:        uuid.NewString(),
				Name:      profile.Name,
				Email:     emailAddr,
				CreatedAt: now,
			}
			if err := tx.Users().Create(ctx, u); err != nil {
				return err
			}
			created = true
		case err != nil:
			return err
		}

		_, err = tx.Identities().GetByUserAndProvider(ctx, u.ID, profile.Provider)
		if repository.IsNotFound(err) {
			err = tx.Identities().Create(ctx, &repository.Identity{
				ID:             uuid.NewString(),
				UserID:         u.ID,
				Provider:       profile.Provider,
				ProviderUserID: profile.ProviderUserID,
				CreatedAt:      now,
			})
		}
		if err != nil {
			return err
		}

		user = u
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return user, created, nil
}
