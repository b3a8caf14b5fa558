// Package store defines the transactional storage contract the services
// depend on. Adapters live in subpackages (pg, memory).
package store

import (
	"context"

	"github.com/dropDatabas3/signet/internal/domain/repository"
)

// Repos groups the per-record repositories.
type Repos interface {
	Users() repository.UserRepository
	Identities() repository.IdentityRepository
	OTPs() repository.OTPRepository
}

// Store is a transactional record store. Calls made directly on the
// Store's repositories auto-commit; multi-statement sequences must go
// through WithTx so they apply atomically.
type Store interface {
	Repos

	// WithTx runs fn inside a single transaction. If fn returns an
	// error the transaction rolls back and the error is returned
	// unchanged; otherwise the transaction commits.
	WithTx(ctx context.Context, fn func(tx Repos) error) error

	// Ping verifies connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying resources.
	Close()
}
