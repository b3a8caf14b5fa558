// Package auth contains the HTTP controllers of the auth API.
package auth

import (
	"encoding/json"
	"net/http"

	httperrors "github.com/dropDatabas3/signet/internal/http/errors"
	svc "github.com/dropDatabas3/signet/internal/http/services/auth"
	"github.com/dropDatabas3/signet/internal/oauth"
)

// Controllers groups the controllers of the auth domain.
type Controllers struct {
	Register *RegisterController
	OTP      *OTPController
	Login    *LoginController
	Password *PasswordController
	Social   *SocialController
	Logout   *LogoutController
}

// NewControllers builds the auth controller aggregate.
func NewControllers(s svc.Services, providers *oauth.Registry, redirectURL string) *Controllers {
	return &Controllers{
		Register: NewRegisterController(s.Register),
		OTP:      NewOTPController(s.OTP),
		Login:    NewLoginController(s.Login),
		Password: NewPasswordController(s.Password),
		Social:   NewSocialController(s.Social, providers, redirectURL),
		Logout:   NewLogoutController(),
	}
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON.WithCause(err))
		return false
	}
	return true
}
