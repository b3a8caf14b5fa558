// Package jwt issues and parses the signed session tokens handed out
// after a successful authentication.
package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/signet/internal/domain/repository"
)

// SessionTTL is the validity window of a session token.
const SessionTTL = 72 * time.Hour

var (
	ErrInvalidToken = errors.New("jwt: invalid token")
	ErrExpiredToken = errors.New("jwt: token expired")
)

// IdentityClaim is one linked login method carried in the session claims.
type IdentityClaim struct {
	Provider       string `json:"provider"`
	ProviderUserID string `json:"providerUserId"`
}

// SessionClaims is the claims bundle for a session token.
type SessionClaims struct {
	UserID     string          `json:"id"`
	Email      string          `json:"email"`
	Identities []IdentityClaim `json:"identities"`
	jwtv5.RegisteredClaims
}

// Issuer signs and verifies session tokens with an HMAC secret.
type Issuer struct {
	Secret []byte
	Iss    string
	TTL    time.Duration
}

// NewIssuer builds an Issuer. A zero ttl falls back to SessionTTL.
func NewIssuer(secret []byte, iss string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &Issuer{Secret: secret, Iss: iss, TTL: ttl}
}

// Sign issues a session token for the user and their linked identities.
func (i *Issuer) Sign(user *repository.User, identities []repository.Identity) (string, error) {
	now := time.Now().UTC()

	claims := SessionClaims{
		UserID:     user.ID,
		Email:      user.Email,
		Identities: make([]IdentityClaim, 0, len(identities)),
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    i.Iss,
			Subject:   user.ID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(i.TTL)),
		},
	}
	for _, ident := range identities {
		claims.Identities = append(claims.Identities, IdentityClaim{
			Provider:       ident.Provider,
			ProviderUserID: ident.ProviderUserID,
		})
	}

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := tk.SignedString(i.Secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, nil
}

// Parse verifies a session token and returns its claims.
func (i *Issuer) Parse(token string) (*SessionClaims, error) {
	var claims SessionClaims
	tk, err := jwtv5.ParseWithClaims(token, &claims, func(t *jwtv5.Token) (any, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return i.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !tk.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
