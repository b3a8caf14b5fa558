package oauth

import (
	"errors"
	"strings"
	"testing"
)

func TestRegistry(t *testing.T) {
	g := NewGoogle("cid", "secret", "http://localhost/cb")
	reg := NewRegistry(g, NewGithub("cid2", "secret2", "http://localhost/cb"))

	got, err := reg.Get("google")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.Name() != "google" {
		t.Fatalf("wrong provider %q", got.Name())
	}

	if _, err := reg.Get("facebook"); !errors.Is(err, ErrUnsupportedProvider) {
		t.Fatalf("expected ErrUnsupportedProvider, got %v", err)
	}

	if n := len(reg.Names()); n != 2 {
		t.Fatalf("expected 2 names, got %d", n)
	}
}

func TestAuthCodeURLCarriesState(t *testing.T) {
	g := NewGoogle("my-client", "secret", "http://localhost/cb")
	u := g.AuthCodeURL("state-xyz")
	if !strings.Contains(u, "state=state-xyz") {
		t.Fatalf("state missing from %q", u)
	}
	if !strings.Contains(u, "client_id=my-client") {
		t.Fatalf("client id missing from %q", u)
	}
	if !strings.Contains(u, "accounts.google.com") {
		t.Fatalf("unexpected endpoint in %q", u)
	}
}
