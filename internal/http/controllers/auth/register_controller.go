package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/signet/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/signet/internal/http/errors"
	svc "github.com/dropDatabas3/signet/internal/http/services/auth"
	"github.com/dropDatabas3/signet/internal/observability/logger"
)

// RegisterController handles the two signup endpoints.
type RegisterController struct {
	service svc.RegisterService
}

func NewRegisterController(service svc.RegisterService) *RegisterController {
	return &RegisterController{service: service}
}

// Register handles POST /v1/auth/register.
func (c *RegisterController) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Register"))

	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail(err.Error()))
		return
	}

	if err := c.service.Register(ctx, req.Email); err != nil {
		log.Warn("register failed", logger.Err(err))
		httperrors.WriteError(w, mapServiceError(err))
		return
	}

	dto.Respond(w, http.StatusOK, "OTP sent to your email", nil)
}

// CompleteProfile handles POST /v1/auth/complete-profile?tempToken=...
func (c *RegisterController) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("CompleteProfile"))

	tempToken := r.URL.Query().Get("tempToken")
	if tempToken == "" {
		httperrors.WriteError(w, httperrors.ErrMissingTempToken)
		return
	}

	var req dto.CompleteProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail(err.Error()))
		return
	}

	user, token, err := c.service.CompleteRegistration(ctx, tempToken, svc.CompleteRegistrationInput{
		Name:            req.Name,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		log.Warn("complete profile failed", logger.Err(err))
		httperrors.WriteError(w, mapServiceError(err))
		return
	}

	dto.Respond(w, http.StatusCreated, "Account created", dto.AccountData{
		User: dto.UserData{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
		Token: token,
	})
}
