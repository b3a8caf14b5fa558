package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/dropDatabas3/signet/internal/domain/repository"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Google implements Provider over Google's OAuth2/OIDC endpoints.
type Google struct {
	cfg oauth2.Config

	// UserInfoURL can be overridden in tests.
	UserInfoURL string
}

// NewGoogle builds the Google adapter.
func NewGoogle(clientID, clientSecret, redirectURL string) *Google {
	return &Google{
		cfg: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		UserInfoURL: googleUserInfoURL,
	}
}

func (g *Google) Name() string { return repository.ProviderGoogle }

func (g *Google) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

func (g *Google) Exchange(ctx context.Context, code string) (*Profile, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google: code exchange: %w", err)
	}

	var info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := fetchJSON(ctx, g.cfg.Client(ctx, tok), g.UserInfoURL, &info); err != nil {
		return nil, fmt.Errorf("google: userinfo: %w", err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, fmt.Errorf("google: userinfo missing id or email")
	}

	return &Profile{
		Provider:       repository.ProviderGoogle,
		ProviderUserID: info.ID,
		Email:          info.Email,
		Name:           info.Name,
	}, nil
}

func fetchJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
