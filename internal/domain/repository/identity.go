package repository

import (
	"context"
	"time"
)

// Known identity providers.
const (
	ProviderLocal     = "local"
	ProviderGoogle    = "google"
	ProviderGithub    = "github"
	ProviderMicrosoft = "microsoft"
)

// Identity links a user to one login method. At most one identity exists
// per (UserID, Provider) pair. For ProviderLocal the ProviderUserID equals
// the owning user id; the row records that a password has been set.
type Identity struct {
	ID             string
	UserID         string
	Provider       string
	ProviderUserID string
	CreatedAt      time.Time
}

// IdentityRepository defines operations on auth identities.
type IdentityRepository interface {
	// GetByUserAndProvider finds the identity for a (user, provider) pair.
	// Returns ErrNotFound if absent.
	GetByUserAndProvider(ctx context.Context, userID, provider string) (*Identity, error)

	// ListByUser returns all identities linked to a user, oldest first.
	ListByUser(ctx context.Context, userID string) ([]Identity, error)

	// Create inserts a new identity. Returns ErrConflict if the
	// (user, provider) pair already exists.
	Create(ctx context.Context, ident *Identity) error
}
