package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/signet/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/signet/internal/http/errors"
	svc "github.com/dropDatabas3/signet/internal/http/services/auth"
	"github.com/dropDatabas3/signet/internal/observability/logger"
)

// OTPController handles code verification.
type OTPController struct {
	service svc.OTPService
}

func NewOTPController(service svc.OTPService) *OTPController {
	return &OTPController{service: service}
}

// Verify handles POST /v1/auth/verify-otp.
func (c *OTPController) Verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("VerifyOTP"))

	var req dto.VerifyOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail(err.Error()))
		return
	}

	tempToken, err := c.service.Verify(ctx, req.Email, req.OTP)
	if err != nil {
		log.Warn("otp verification failed", logger.Err(err))
		httperrors.WriteError(w, mapServiceError(err))
		return
	}

	dto.Respond(w, http.StatusOK, "OTP verified", dto.VerifyOTPData{TempToken: tempToken})
}
