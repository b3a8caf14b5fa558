// Package oauth holds the third-party login adapters. Each provider
// exchanges an authorization code for a normalized profile; everything
// past that point (linking, session issuance) is provider-agnostic.
package oauth

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnsupportedProvider indicates an unknown provider tag.
var ErrUnsupportedProvider = errors.New("oauth: unsupported provider")

// Profile is the normalized identity a provider returns after a
// successful code exchange.
type Profile struct {
	Provider       string
	ProviderUserID string
	Email          string
	Name           string
}

// Provider is one third-party login method.
type Provider interface {
	// Name returns the provider tag ("google", "github", "microsoft").
	Name() string

	// AuthCodeURL builds the authorization redirect URL for a state.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for a normalized profile.
	Exchange(ctx context.Context, code string) (*Profile, error)
}

// Registry selects providers by tag.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds a registry from the given providers.
func NewRegistry(providers ...Provider) *Registry {
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the provider for a tag, or ErrUnsupportedProvider.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, name)
	}
	return p, nil
}

// Names lists the registered provider tags.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.providers))
	for name := range r.providers {
		out = append(out, name)
	}
	return out
}
