package oauth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/dropDatabas3/signet/internal/domain/repository"
)

const (
	githubUserURL   = "https://api.github.com/user"
	githubEmailsURL = "https://api.github.com/user/emails"
)

// Github implements Provider over GitHub's OAuth2 endpoints. GitHub has
// no ID token, so the profile comes from two API calls: /user, plus
// /user/emails when the public email is hidden.
type Github struct {
	cfg oauth2.Config

	UserURL   string
	EmailsURL string
}

// NewGithub builds the GitHub adapter.
func NewGithub(clientID, clientSecret, redirectURL string) *Github {
	return &Github{
		cfg: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		UserURL:   githubUserURL,
		EmailsURL: githubEmailsURL,
	}
}

func (g *Github) Name() string { return repository.ProviderGithub }

func (g *Github) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

func (g *Github) Exchange(ctx context.Context, code string) (*Profile, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("github: code exchange: %w", err)
	}
	client := g.cfg.Client(ctx, tok)

	var user struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := fetchJSON(ctx, client, g.UserURL, &user); err != nil {
		return nil, fmt.Errorf("github: user: %w", err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("github: user response missing id")
	}

	emailAddr := user.Email
	if emailAddr == "" {
		emailAddr, err = g.primaryEmail(ctx, client)
		if err != nil {
			return nil, err
		}
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}

	return &Profile{
		Provider:       repository.ProviderGithub,
		ProviderUserID: strconv.FormatInt(user.ID, 10),
		Email:          emailAddr,
		Name:           name,
	}, nil
}

// primaryEmail fetches the verified primary address for accounts whose
// public email is hidden.
func (g *Github) primaryEmail(ctx context.Context, client *http.Client) (string, error) {
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := fetchJSON(ctx, client, g.EmailsURL, &emails); err != nil {
		return "", fmt.Errorf("github: emails: %w", err)
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email, nil
		}
	}
	return "", fmt.Errorf("github: no verified email on account")
}
