package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	authctl "github.com/dropDatabas3/signet/internal/http/controllers/auth"
	"github.com/dropDatabas3/signet/internal/http/router"
	svc "github.com/dropDatabas3/signet/internal/http/services/auth"
	jwtx "github.com/dropDatabas3/signet/internal/jwt"
	"github.com/dropDatabas3/signet/internal/oauth"
	"github.com/dropDatabas3/signet/internal/security/password"
	"github.com/dropDatabas3/signet/internal/store/memory"
)

type captureSender struct {
	mu   sync.Mutex
	last string
}

func (c *captureSender) SendOTP(_ context.Context, _, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = code
	return nil
}

func (c *captureSender) code() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"statusCode"`
	Code       string          `json:"code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) (*httptest.Server, *captureSender) {
	t.Helper()

	st := memory.New()
	sender := &captureSender{}
	hasher := password.NewHasher(4)
	issuer := jwtx.NewIssuer([]byte("test-secret"), "signet-test", time.Hour)

	otpSvc := svc.NewOTPService(svc.OTPDeps{Store: st, Sender: sender, TTL: 5 * time.Minute})
	services := svc.Services{
		OTP:      otpSvc,
		Register: svc.NewRegisterService(svc.RegisterDeps{Store: st, OTP: otpSvc, Hasher: hasher, Issuer: issuer}),
		Login:    svc.NewLoginService(svc.LoginDeps{Store: st, Hasher: hasher, Issuer: issuer}),
		Password: svc.NewPasswordService(svc.PasswordDeps{Store: st, OTP: otpSvc, Hasher: hasher, Issuer: issuer}),
		Social:   svc.NewSocialService(svc.SocialDeps{Store: st, Issuer: issuer}),
	}

	handler := router.New(router.Deps{
		Auth:  authctl.NewControllers(services, oauth.NewRegistry(), "http://app.example/login"),
		Store: st,
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, sender
}

func postJSON(t *testing.T, url string, body any) (*http.Response, envelope) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Equal(t, resp.StatusCode, env.StatusCode)
	return resp, env
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	srv, sender := newTestServer(t)

	resp, env := postJSON(t, srv.URL+"/v1/auth/register", map[string]string{"email": "ada@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "success", env.Status)

	resp, env = postJSON(t, srv.URL+"/v1/auth/verify-otp", map[string]string{
		"email": "ada@example.com", "otp": sender.code(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var verify struct {
		TempToken string `json:"tempToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &verify))
	require.Len(t, verify.TempToken, 12)

	resp, env = postJSON(t, srv.URL+"/v1/auth/complete-profile?tempToken="+verify.TempToken, map[string]string{
		"name": "Ada Lovelace", "password": "hunter22", "confirmPassword": "hunter22",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.User.ID)
	require.Equal(t, "ada@example.com", created.User.Email)
	require.NotEmpty(t, created.Token)

	resp, env = postJSON(t, srv.URL+"/v1/auth/login", map[string]string{
		"email": "ada@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)
}

func TestValidationError(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := postJSON(t, srv.URL+"/v1/auth/register", map[string]string{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "error", env.Status)
	require.Equal(t, "VALIDATION_FAILED", env.Code)
}

func TestLoginErrorMapping(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := postJSON(t, srv.URL+"/v1/auth/login", map[string]string{
		"email": "nobody@example.com", "password": "whatever",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "USER_NOT_FOUND", env.Code)
}

func TestVerifyWrongCodeMapping(t *testing.T) {
	srv, sender := newTestServer(t)

	_, _ = postJSON(t, srv.URL+"/v1/auth/register", map[string]string{"email": "ada@example.com"})
	probe := "000000"
	if sender.code() == probe {
		probe = "000001"
	}
	resp, env := postJSON(t, srv.URL+"/v1/auth/verify-otp", map[string]string{
		"email": "ada@example.com", "otp": probe,
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "INVALID_OTP", env.Code)
}

func TestUnknownProvider(t *testing.T) {
	srv, _ := newTestServer(t)

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Get(srv.URL + "/v1/auth/facebook")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestMissingTempToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := postJSON(t, srv.URL+"/v1/auth/complete-profile", map[string]string{
		"name": "Ada", "password": "hunter22", "confirmPassword": "hunter22",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "MISSING_TEMP_TOKEN", env.Code)
}
