package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	httperrors "github.com/dropDatabas3/signet/internal/http/errors"
	svc "github.com/dropDatabas3/signet/internal/http/services/auth"
	"github.com/dropDatabas3/signet/internal/oauth"
	"github.com/dropDatabas3/signet/internal/observability/logger"
)

const (
	stateCookieName = "signet_oauth_state"
	stateCookieTTL  = 10 * time.Minute
)

// SocialController handles the third-party login redirect and callback.
type SocialController struct {
	service   svc.SocialService
	providers *oauth.Registry

	// redirectURL is the SPA address that receives the session token in
	// the URL fragment after a successful callback.
	redirectURL string
}

func NewSocialController(service svc.SocialService, providers *oauth.Registry, redirectURL string) *SocialController {
	return &SocialController{service: service, providers: providers, redirectURL: redirectURL}
}

// Start handles GET /v1/auth/{provider}: it plants the state cookie and
// sends the browser to the provider's consent screen.
func (c *SocialController) Start(w http.ResponseWriter, r *http.Request) {
	log := logger.From(r.Context()).With(logger.Layer("controller"), logger.Op("SocialStart"))

	provider, err := c.providers.Get(chi.URLParam(r, "provider"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrUnsupportedProvider)
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Debug("social flow started", logger.Provider(provider.Name()))
	http.Redirect(w, r, provider.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// Callback handles GET /v1/auth/{provider}/callback: it validates the
// state, exchanges the code, reconciles the account and hands the
// session token to the SPA in the URL fragment.
func (c *SocialController) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("SocialCallback"))

	provider, err := c.providers.Get(chi.URLParam(r, "provider"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrUnsupportedProvider)
		return
	}

	q := r.URL.Query()
	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != q.Get("state") {
		httperrors.WriteError(w, httperrors.ErrInvalidState)
		return
	}
	// The state is single use.
	http.SetCookie(w, &http.Cookie{
		Name: stateCookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true,
	})

	code := q.Get("code")
	if code == "" {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("code query parameter is required"))
		return
	}

	profile, err := provider.Exchange(ctx, code)
	if err != nil {
		log.Error("provider exchange failed", logger.Provider(provider.Name()), logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrUpstreamProvider.WithCause(err))
		return
	}

	token, err := c.service.Reconcile(ctx, profile)
	if err != nil {
		log.Error("social reconcile failed", logger.Provider(provider.Name()), logger.Err(err))
		if errors.Is(err, svc.ErrUserExists) {
			httperrors.WriteError(w, httperrors.ErrEmailAlreadyInUse)
			return
		}
		httperrors.WriteError(w, httperrors.ErrInternal.WithCause(err))
		return
	}

	// The fragment keeps the token out of server logs on the SPA side.
	http.Redirect(w, r, c.redirectURL+"#token="+token, http.StatusTemporaryRedirect)
}
