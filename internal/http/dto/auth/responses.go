package auth

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform success wrapper of the API.
type Envelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

// Respond writes a success envelope.
func Respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{
		Status:     "success",
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// VerifyOTPData carries the temp token minted on verification.
type VerifyOTPData struct {
	TempToken string `json:"tempToken"`
}

// TokenData carries a signed session token.
type TokenData struct {
	Token string `json:"token"`
}

// UserData is the public projection of a user record.
type UserData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AccountData is returned when a registration completes: the new user
// plus their first session token.
type AccountData struct {
	User  UserData `json:"user"`
	Token string   `json:"token"`
}
