package auth

import (
	"context"
	"net/http"

	dto "github.com/dropDatabas3/signet/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/signet/internal/http/errors"
	svc "github.com/dropDatabas3/signet/internal/http/services/auth"
	"github.com/dropDatabas3/signet/internal/observability/logger"
)

// PasswordController handles the forgot and set-password endpoints.
type PasswordController struct {
	service svc.PasswordService
}

func NewPasswordController(service svc.PasswordService) *PasswordController {
	return &PasswordController{service: service}
}

// Forgot handles POST /v1/auth/forgot.
func (c *PasswordController) Forgot(w http.ResponseWriter, r *http.Request) {
	c.request(w, r, "Forgot", c.service.Forgot)
}

// RequestSetPassword handles POST /v1/auth/request-set-password.
func (c *PasswordController) RequestSetPassword(w http.ResponseWriter, r *http.Request) {
	c.request(w, r, "RequestSetPassword", c.service.RequestSetPassword)
}

// request is the shared body of the two OTP-requesting endpoints.
func (c *PasswordController) request(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context, email string) error) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op(op))

	var req dto.EmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail(err.Error()))
		return
	}

	if err := fn(ctx, req.Email); err != nil {
		log.Warn("password otp request failed", logger.Err(err))
		httperrors.WriteError(w, mapServiceError(err))
		return
	}

	dto.Respond(w, http.StatusOK, "OTP sent to your email", nil)
}

// SetPassword handles POST /v1/auth/set-password?tempToken=...
func (c *PasswordController) SetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("SetPassword"))

	tempToken := r.URL.Query().Get("tempToken")
	if tempToken == "" {
		httperrors.WriteError(w, httperrors.ErrMissingTempToken)
		return
	}

	var req dto.SetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail(err.Error()))
		return
	}

	token, err := c.service.SetPassword(ctx, tempToken, req.Password, req.ConfirmPassword)
	if err != nil {
		log.Warn("set password failed", logger.Err(err))
		httperrors.WriteError(w, mapServiceError(err))
		return
	}

	dto.Respond(w, http.StatusOK, "Password updated", dto.TokenData{Token: token})
}
