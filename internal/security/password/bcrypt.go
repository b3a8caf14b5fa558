// Package password hashes and verifies local credentials with bcrypt.
//
// The empty string is reserved as the "no local credential" sentinel on
// user records: Verify rejects it before any bcrypt comparison, so no
// submitted password can ever match an account that never set one.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the cost factor the service has always used.
const DefaultCost = 10

// Hasher hashes and verifies passwords with a configurable cost.
type Hasher struct {
	Cost int
}

// NewHasher returns a Hasher, falling back to DefaultCost for out-of-range
// values.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return Hasher{Cost: cost}
}

// Hash returns the bcrypt digest of plain.
func (h Hasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("password: empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plain matches digest. The empty-digest sentinel
// never verifies.
func (h Hasher) Verify(plain, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
