package jwt

import (
	"testing"
	"time"

	"github.com/dropDatabas3/signet/internal/domain/repository"
)

func testUser() *repository.User {
	return &repository.User{ID: "u-1", Name: "Ada", Email: "ada@example.com"}
}

func TestSignAndParse(t *testing.T) {
	iss := NewIssuer([]byte("test-secret"), "signet-test", time.Hour)

	identities := []repository.Identity{
		{UserID: "u-1", Provider: repository.ProviderLocal, ProviderUserID: "u-1"},
		{UserID: "u-1", Provider: repository.ProviderGoogle, ProviderUserID: "g-123"},
	}
	tok, err := iss.Sign(testUser(), identities)
	if err != nil {
		t.Fatalf("Sign err: %v", err)
	}

	claims, err := iss.Parse(tok)
	if err != nil {
		t.Fatalf("Parse err: %v", err)
	}
	if claims.UserID != "u-1" || claims.Email != "ada@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if len(claims.Identities) != 2 {
		t.Fatalf("expected 2 identities, got %d", len(claims.Identities))
	}
	if claims.Identities[1].Provider != repository.ProviderGoogle || claims.Identities[1].ProviderUserID != "g-123" {
		t.Fatalf("identity claim mismatch: %+v", claims.Identities[1])
	}
	if claims.Issuer != "signet-test" || claims.Subject != "u-1" {
		t.Fatalf("registered claims mismatch: %+v", claims.RegisteredClaims)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewIssuer([]byte("secret-a"), "signet", time.Hour).Sign(testUser(), nil)
	if err != nil {
		t.Fatalf("Sign err: %v", err)
	}
	if _, err := NewIssuer([]byte("secret-b"), "signet", time.Hour).Parse(tok); err == nil {
		t.Fatalf("token signed with another secret parsed")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	iss := NewIssuer([]byte("test-secret"), "signet", -time.Minute)
	tok, err := iss.Sign(testUser(), nil)
	if err != nil {
		t.Fatalf("Sign err: %v", err)
	}
	if _, err := iss.Parse(tok); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	iss := NewIssuer([]byte("test-secret"), "signet", time.Hour)
	if _, err := iss.Parse("not.a.token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
