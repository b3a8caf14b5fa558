// Package memory implements store.Store on in-process maps. It backs the
// service tests and the dev mode; transactions are modeled by mutating a
// deep copy of the state and swapping it in on commit, so a failed
// transaction leaves no partial writes behind.
package memory

import (
	"context"
	"sync"

	"github.com/dropDatabas3/signet/internal/domain/repository"
	"github.com/dropDatabas3/signet/internal/store"
)

type state struct {
	users      map[string]repository.User
	identities map[string]repository.Identity
	otps       map[string]repository.OTP
}

func newState() *state {
	return &state{
		users:      map[string]repository.User{},
		identities: map[string]repository.Identity{},
		otps:       map[string]repository.OTP{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.identities {
		c.identities[k] = v
	}
	for k, v := range s.otps {
		c.otps[k] = v
	}
	return c
}

// Store is the in-memory adapter. The mutex serializes transactions,
// which gives the same isolation the services get from the database.
type Store struct {
	mu sync.Mutex
	st *state
}

var _ store.Store = (*Store)(nil)

// New returns an empty in-memory store.
func New() *Store {
	return &Store{st: newState()}
}

func (s *Store) Users() repository.UserRepository {
	return lockedUsers{s}
}

func (s *Store) Identities() repository.IdentityRepository {
	return lockedIdentities{s}
}

func (s *Store) OTPs() repository.OTPRepository {
	return lockedOTPs{s}
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(txRepos{work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() {}

// txRepos operates on the working copy; the store mutex is already held
// by WithTx.
type txRepos struct{ st *state }

func (t txRepos) Users() repository.UserRepository         { return userOps{t.st} }
func (t txRepos) Identities() repository.IdentityRepository { return identityOps{t.st} }
func (t txRepos) OTPs() repository.OTPRepository            { return otpOps{t.st} }

// locked* wrap the state ops with the store mutex for auto-commit calls.

type lockedUsers struct{ s *Store }

func (l lockedUsers) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return userOps{l.s.st}.GetByEmail(ctx, email)
}

func (l lockedUsers) GetByID(ctx context.Context, id string) (*repository.User, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return userOps{l.s.st}.GetByID(ctx, id)
}

func (l lockedUsers) Create(ctx context.Context, u *repository.User) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return userOps{l.s.st}.Create(ctx, u)
}

func (l lockedUsers) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return userOps{l.s.st}.UpdatePasswordHash(ctx, userID, hash)
}

type lockedIdentities struct{ s *Store }

func (l lockedIdentities) GetByUserAndProvider(ctx context.Context, userID, provider string) (*repository.Identity, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return identityOps{l.s.st}.GetByUserAndProvider(ctx, userID, provider)
}

func (l lockedIdentities) ListByUser(ctx context.Context, userID string) ([]repository.Identity, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return identityOps{l.s.st}.ListByUser(ctx, userID)
}

func (l lockedIdentities) Create(ctx context.Context, ident *repository.Identity) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return identityOps{l.s.st}.Create(ctx, ident)
}

type lockedOTPs struct{ s *Store }

func (l lockedOTPs) LatestByEmail(ctx context.Context, email string) (*repository.OTP, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return otpOps{l.s.st}.LatestByEmail(ctx, email)
}

func (l lockedOTPs) GetByTempToken(ctx context.Context, token string) (*repository.OTP, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return otpOps{l.s.st}.GetByTempToken(ctx, token)
}

func (l lockedOTPs) Create(ctx context.Context, otp *repository.OTP) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return otpOps{l.s.st}.Create(ctx, otp)
}

func (l lockedOTPs) ExpireActive(ctx context.Context, email string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return otpOps{l.s.st}.ExpireActive(ctx, email)
}

func (l lockedOTPs) MarkVerified(ctx context.Context, id, tempToken string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return otpOps{l.s.st}.MarkVerified(ctx, id, tempToken)
}

func (l lockedOTPs) MarkCompleted(ctx context.Context, id string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return otpOps{l.s.st}.MarkCompleted(ctx, id)
}

func (l lockedOTPs) MarkExpired(ctx context.Context, id string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return otpOps{l.s.st}.MarkExpired(ctx, id)
}
