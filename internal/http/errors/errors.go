package errors

import (
	"encoding/json"
	"net/http"
)

// errorResponse mirrors the success envelope so clients parse one shape.
type errorResponse struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
}

// WriteError renders err as the API's error envelope. Non-AppError
// values come out as a generic 500.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Status:     "error",
		StatusCode: appErr.HTTPStatus,
		Code:       appErr.Code,
		Message:    appErr.Message,
		Detail:     appErr.Detail,
	})
}
