package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/signet/internal/domain/repository"
	svc "github.com/dropDatabas3/signet/internal/http/services/auth"
	"github.com/dropDatabas3/signet/internal/security/password"
)

type passwordFixture struct {
	*registerFixture
	password svc.PasswordService
}

func newPasswordFixture(t *testing.T) *passwordFixture {
	t.Helper()
	base := newRegisterFixture(t)
	return &passwordFixture{
		registerFixture: base,
		password: svc.NewPasswordService(svc.PasswordDeps{
			Store:  base.store,
			OTP:    base.svc,
			Hasher: password.NewHasher(4),
			Issuer: base.issuer,
			Now:    func() time.Time { return base.now },
		}),
	}
}

func TestForgotFlow(t *testing.T) {
	ctx := context.Background()
	f := newPasswordFixture(t)
	f.signUp(t, "ada@example.com")

	require.NoError(t, f.password.Forgot(ctx, "ada@example.com"))
	tempToken, err := f.svc.Verify(ctx, "ada@example.com", f.sender.last("ada@example.com"))
	require.NoError(t, err)

	token, err := f.password.SetPassword(ctx, tempToken, "new-secret", "new-secret")
	require.NoError(t, err)

	user, err := f.store.Users().GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.True(t, password.NewHasher(4).Verify("new-secret", user.PasswordHash))
	require.False(t, password.NewHasher(4).Verify("hunter22", user.PasswordHash))

	// The reset ends logged in.
	claims, err := f.issuer.Parse(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
}

func TestForgotUnknownUser(t *testing.T) {
	f := newPasswordFixture(t)
	require.ErrorIs(t, f.password.Forgot(context.Background(), "nobody@example.com"), svc.ErrUserNotFound)
}

func TestSetPasswordCreatesLocalIdentity(t *testing.T) {
	ctx := context.Background()
	f := newPasswordFixture(t)

	// Social-only account: no hash, no local identity.
	require.NoError(t, f.store.Users().Create(ctx, &repository.User{
		ID: "u-social", Name: "Grace", Email: "grace@example.com",
	}))
	require.NoError(t, f.store.Identities().Create(ctx, &repository.Identity{
		ID: "i-g", UserID: "u-social", Provider: repository.ProviderGoogle, ProviderUserID: "g-1",
	}))

	require.NoError(t, f.password.RequestSetPassword(ctx, "grace@example.com"))
	tempToken, err := f.svc.Verify(ctx, "grace@example.com", f.sender.last("grace@example.com"))
	require.NoError(t, err)
	_, err = f.password.SetPassword(ctx, tempToken, "fresh-pass", "fresh-pass")
	require.NoError(t, err)

	ident, err := f.store.Identities().GetByUserAndProvider(ctx, "u-social", repository.ProviderLocal)
	require.NoError(t, err)
	require.Equal(t, "u-social", ident.ProviderUserID)

	user, err := f.store.Users().GetByID(ctx, "u-social")
	require.NoError(t, err)
	require.True(t, user.HasLocalCredential())
}

func TestSetPasswordAcceptsBothPurposes(t *testing.T) {
	ctx := context.Background()
	f := newPasswordFixture(t)
	f.signUp(t, "ada@example.com")

	// A token minted for the set-password purpose works too; the two
	// entry points share the completion endpoint.
	require.NoError(t, f.password.RequestSetPassword(ctx, "ada@example.com"))
	tempToken, err := f.svc.Verify(ctx, "ada@example.com", f.sender.last("ada@example.com"))
	require.NoError(t, err)
	_, err = f.password.SetPassword(ctx, tempToken, "another-pass", "another-pass")
	require.NoError(t, err)
}

func TestSetPasswordRejectsRegisterToken(t *testing.T) {
	ctx := context.Background()
	f := newPasswordFixture(t)

	require.NoError(t, f.register.Register(ctx, "ada@example.com"))
	tempToken, err := f.svc.Verify(ctx, "ada@example.com", f.sender.last("ada@example.com"))
	require.NoError(t, err)

	_, err = f.password.SetPassword(ctx, tempToken, "new-secret", "new-secret")
	require.ErrorIs(t, err, svc.ErrPurposeMismatch)
}

func TestSetPasswordMismatch(t *testing.T) {
	f := newPasswordFixture(t)
	_, err := f.password.SetPassword(context.Background(), "tok", "one", "two")
	require.ErrorIs(t, err, svc.ErrPasswordMismatch)
}

func TestSetPasswordTokenReplay(t *testing.T) {
	ctx := context.Background()
	f := newPasswordFixture(t)
	f.signUp(t, "ada@example.com")

	require.NoError(t, f.password.Forgot(ctx, "ada@example.com"))
	tempToken, err := f.svc.Verify(ctx, "ada@example.com", f.sender.last("ada@example.com"))
	require.NoError(t, err)

	_, err = f.password.SetPassword(ctx, tempToken, "new-secret", "new-secret")
	require.NoError(t, err)
	_, err = f.password.SetPassword(ctx, tempToken, "evil-secret", "evil-secret")
	require.ErrorIs(t, err, svc.ErrTempTokenNotUsable)
}
