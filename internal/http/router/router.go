// Package router assembles the HTTP surface of the service.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authctl "github.com/dropDatabas3/signet/internal/http/controllers/auth"
	"github.com/dropDatabas3/signet/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/signet/internal/http/errors"
	"github.com/dropDatabas3/signet/internal/http/middlewares"
	"github.com/dropDatabas3/signet/internal/store"
)

// Deps carries what the router needs to mount every route.
type Deps struct {
	Auth  *authctl.Controllers
	Store store.Store
}

// New builds the chi router with the common middleware stack.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(func(next http.Handler) http.Handler {
		return middlewares.Chain(next,
			middlewares.WithRequestID(),
			middlewares.WithRecover(),
			middlewares.WithAccessLog(),
		)
	})

	r.Get("/healthz", healthz(d.Store))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/register", d.Auth.Register.Register)
		r.Post("/verify-otp", d.Auth.OTP.Verify)
		r.Post("/complete-profile", d.Auth.Register.CompleteProfile)
		r.Post("/login", d.Auth.Login.Login)
		r.Post("/forgot", d.Auth.Password.Forgot)
		r.Post("/request-set-password", d.Auth.Password.RequestSetPassword)
		r.Post("/set-password", d.Auth.Password.SetPassword)
		r.Post("/logout", d.Auth.Logout.Logout)

		r.Get("/{provider}", d.Auth.Social.Start)
		r.Get("/{provider}/callback", d.Auth.Social.Callback)
	})

	return r
}

func healthz(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			httperrors.WriteError(w, httperrors.New(
				http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Storage is unreachable.").WithCause(err))
			return
		}
		auth.Respond(w, http.StatusOK, "ok", nil)
	}
}
