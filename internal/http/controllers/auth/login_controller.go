package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/signet/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/signet/internal/http/errors"
	svc "github.com/dropDatabas3/signet/internal/http/services/auth"
	"github.com/dropDatabas3/signet/internal/observability/logger"
)

// LoginController handles password logins.
type LoginController struct {
	service svc.LoginService
}

func NewLoginController(service svc.LoginService) *LoginController {
	return &LoginController{service: service}
}

// Login handles POST /v1/auth/login.
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Login"))

	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail(err.Error()))
		return
	}

	token, err := c.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		log.Warn("login failed", logger.Err(err))
		httperrors.WriteError(w, mapServiceError(err))
		return
	}

	dto.Respond(w, http.StatusOK, "Login successful", dto.TokenData{Token: token})
}
