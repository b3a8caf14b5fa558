// Package auth holds the request and response shapes of the auth API.
package auth

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minPasswordLen = 6
	maxPasswordLen = 100
	minNameLen     = 2
	maxNameLen     = 100
	otpCodeLen     = 6
)

type RegisterRequest struct {
	Email string `json:"email"`
}

func (r *RegisterRequest) Validate() error {
	return checkEmail(r.Email)
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (r *VerifyOTPRequest) Validate() error {
	if err := checkEmail(r.Email); err != nil {
		return err
	}
	if len(r.OTP) != otpCodeLen {
		return fmt.Errorf("otp must be %d digits", otpCodeLen)
	}
	return nil
}

type CompleteProfileRequest struct {
	Name            string `json:"name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r *CompleteProfileRequest) Validate() error {
	if err := checkName(r.Name); err != nil {
		return err
	}
	return checkPassword(r.Password, r.ConfirmPassword)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if err := checkEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

type EmailRequest struct {
	Email string `json:"email"`
}

func (r *EmailRequest) Validate() error {
	return checkEmail(r.Email)
}

type SetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r *SetPasswordRequest) Validate() error {
	return checkPassword(r.Password, r.ConfirmPassword)
}

func checkEmail(v string) error {
	if !emailRe.MatchString(strings.TrimSpace(v)) {
		return fmt.Errorf("email is not a valid address")
	}
	return nil
}

func checkName(v string) error {
	n := len(strings.TrimSpace(v))
	if n < minNameLen || n > maxNameLen {
		return fmt.Errorf("name must be between %d and %d characters", minNameLen, maxNameLen)
	}
	return nil
}

func checkPassword(pass, confirm string) error {
	if len(pass) < minPasswordLen || len(pass) > maxPasswordLen {
		return fmt.Errorf("password must be between %d and %d characters", minPasswordLen, maxPasswordLen)
	}
	if pass != confirm {
		return fmt.Errorf("password and confirmation do not match")
	}
	return nil
}
