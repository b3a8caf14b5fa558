package oauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"

	"github.com/dropDatabas3/signet/internal/domain/repository"
)

const microsoftGraphMeURL = "https://graph.microsoft.com/v1.0/me"

// Microsoft implements Provider over the Azure AD v2 endpoints with the
// multi-tenant "common" authority, so both personal and work/school
// accounts can sign in.
type Microsoft struct {
	cfg oauth2.Config

	GraphMeURL string
}

// NewMicrosoft builds the Microsoft adapter.
func NewMicrosoft(clientID, clientSecret, redirectURL string) *Microsoft {
	return &Microsoft{
		cfg: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile", "User.Read"},
			Endpoint:     microsoft.AzureADEndpoint("common"),
		},
		GraphMeURL: microsoftGraphMeURL,
	}
}

func (m *Microsoft) Name() string { return repository.ProviderMicrosoft }

func (m *Microsoft) AuthCodeURL(state string) string {
	return m.cfg.AuthCodeURL(state)
}

func (m *Microsoft) Exchange(ctx context.Context, code string) (*Profile, error) {
	tok, err := m.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("microsoft: code exchange: %w", err)
	}

	var me struct {
		ID                string `json:"id"`
		DisplayName       string `json:"displayName"`
		Mail              string `json:"mail"`
		UserPrincipalName string `json:"userPrincipalName"`
	}
	if err := fetchJSON(ctx, m.cfg.Client(ctx, tok), m.GraphMeURL, &me); err != nil {
		return nil, fmt.Errorf("microsoft: graph me: %w", err)
	}
	if me.ID == "" {
		return nil, fmt.Errorf("microsoft: graph response missing id")
	}

	// Personal accounts often have no Mail attribute; the UPN is the
	// sign-in address in that case.
	emailAddr := me.Mail
	if emailAddr == "" {
		emailAddr = me.UserPrincipalName
	}
	if emailAddr == "" {
		return nil, fmt.Errorf("microsoft: no email on account")
	}

	return &Profile{
		Provider:       repository.ProviderMicrosoft,
		ProviderUserID: me.ID,
		Email:          emailAddr,
		Name:           me.DisplayName,
	}, nil
}
