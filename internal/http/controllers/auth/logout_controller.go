package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/signet/internal/http/dto/auth"
)

// LogoutController handles POST /v1/auth/logout. Sessions are stateless
// JWTs, so logout is a client-side discard; the endpoint exists so
// clients have a uniform place to call.
type LogoutController struct{}

func NewLogoutController() *LogoutController {
	return &LogoutController{}
}

func (c *LogoutController) Logout(w http.ResponseWriter, r *http.Request) {
	dto.Respond(w, http.StatusOK, "Logged out", nil)
}
