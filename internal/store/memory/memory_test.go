package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/signet/internal/domain/repository"
	"github.com/dropDatabas3/signet/internal/store"
)

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := New()

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Repos) error {
		if err := tx.Users().Create(ctx, &repository.User{ID: "u-1", Email: "a@example.com"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected tx error, got %v", err)
	}

	if _, err := st.Users().GetByEmail(ctx, "a@example.com"); !repository.IsNotFound(err) {
		t.Fatalf("rolled-back user is visible: %v", err)
	}
}

func TestWithTxCommits(t *testing.T) {
	ctx := context.Background()
	st := New()

	err := st.WithTx(ctx, func(tx store.Repos) error {
		return tx.Users().Create(ctx, &repository.User{ID: "u-1", Email: "a@example.com"})
	})
	if err != nil {
		t.Fatalf("tx err: %v", err)
	}

	u, err := st.Users().GetByEmail(ctx, "A@Example.com")
	if err != nil {
		t.Fatalf("GetByEmail err: %v", err)
	}
	if u.ID != "u-1" {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestUserEmailConflictIgnoresDeleted(t *testing.T) {
	ctx := context.Background()
	st := New()

	if err := st.Users().Create(ctx, &repository.User{ID: "u-1", Email: "a@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := st.Users().Create(ctx, &repository.User{ID: "u-2", Email: "A@EXAMPLE.COM"}); !repository.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// A soft-deleted row frees the address for reuse.
	now := time.Now()
	st.st.users["u-1"] = repository.User{ID: "u-1", Email: "a@example.com", DeletedAt: &now}
	if err := st.Users().Create(ctx, &repository.User{ID: "u-3", Email: "a@example.com"}); err != nil {
		t.Fatalf("create after soft delete: %v", err)
	}
	if _, err := st.Users().GetByID(ctx, "u-1"); !repository.IsNotFound(err) {
		t.Fatalf("soft-deleted user still readable: %v", err)
	}
}

func TestIdentityUniquePerUserAndProvider(t *testing.T) {
	ctx := context.Background()
	st := New()

	ident := &repository.Identity{ID: "i-1", UserID: "u-1", Provider: repository.ProviderGoogle, ProviderUserID: "g-1"}
	if err := st.Identities().Create(ctx, ident); err != nil {
		t.Fatalf("create: %v", err)
	}
	dup := &repository.Identity{ID: "i-2", UserID: "u-1", Provider: repository.ProviderGoogle, ProviderUserID: "g-2"}
	if err := st.Identities().Create(ctx, dup); !repository.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestOTPTransitions(t *testing.T) {
	ctx := context.Background()
	st := New()

	otp := &repository.OTP{
		ID: "o-1", Email: "a@example.com", Code: "123456",
		Purpose: repository.OTPPurposeRegister, Status: repository.OTPStatusActive,
		ExpiresAt: time.Now().Add(5 * time.Minute), CreatedAt: time.Now(),
	}
	if err := st.OTPs().Create(ctx, otp); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Completed is only reachable from Verified.
	if err := st.OTPs().MarkCompleted(ctx, "o-1"); !repository.IsInvalidState(err) {
		t.Fatalf("expected invalid state, got %v", err)
	}

	if err := st.OTPs().MarkVerified(ctx, "o-1", "tok-1"); err != nil {
		t.Fatalf("mark verified: %v", err)
	}
	if err := st.OTPs().MarkVerified(ctx, "o-1", "tok-2"); !repository.IsInvalidState(err) {
		t.Fatalf("double verify: expected invalid state, got %v", err)
	}

	got, err := st.OTPs().GetByTempToken(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get by temp token: %v", err)
	}
	if got.ID != "o-1" || got.Status != repository.OTPStatusVerified {
		t.Fatalf("unexpected otp %+v", got)
	}

	if err := st.OTPs().MarkCompleted(ctx, "o-1"); err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	if err := st.OTPs().MarkExpired(ctx, "o-1"); !repository.IsInvalidState(err) {
		t.Fatalf("expire completed: expected invalid state, got %v", err)
	}
}

func TestExpireActiveLeavesOtherStatuses(t *testing.T) {
	ctx := context.Background()
	st := New()

	mk := func(id string, status repository.OTPStatus, created time.Time) {
		if err := st.OTPs().Create(ctx, &repository.OTP{
			ID: id, Email: "a@example.com", Code: "111111",
			Purpose: repository.OTPPurposeRegister, Status: status,
			ExpiresAt: created.Add(5 * time.Minute), CreatedAt: created,
		}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	base := time.Now()
	mk("o-1", repository.OTPStatusActive, base)
	mk("o-2", repository.OTPStatusCompleted, base.Add(time.Second))
	mk("o-3", repository.OTPStatusActive, base.Add(2*time.Second))

	if err := st.OTPs().ExpireActive(ctx, "a@example.com"); err != nil {
		t.Fatalf("expire active: %v", err)
	}

	latest, err := st.OTPs().LatestByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ID != "o-3" || latest.Status != repository.OTPStatusExpired {
		t.Fatalf("unexpected latest %+v", latest)
	}
	if st.st.otps["o-2"].Status != repository.OTPStatusCompleted {
		t.Fatalf("completed otp was touched")
	}
}

func TestCreateLeavesTempTokenUnset(t *testing.T) {
	ctx := context.Background()
	st := New()

	// Token uniqueness applies only once a token is assigned; any
	// number of fresh rows coexist without one.
	for _, id := range []string{"o-1", "o-2", "o-3"} {
		if err := st.OTPs().Create(ctx, &repository.OTP{
			ID: id, Email: id + "@example.com", Code: "222222",
			Purpose: repository.OTPPurposeRegister, Status: repository.OTPStatusActive,
			ExpiresAt: time.Now().Add(5 * time.Minute), CreatedAt: time.Now(),
		}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	latest, err := st.OTPs().LatestByEmail(ctx, "o-1@example.com")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.TempToken != nil {
		t.Fatalf("fresh otp carries a temp token: %q", *latest.TempToken)
	}
	if _, err := st.OTPs().GetByTempToken(ctx, ""); !repository.IsNotFound(err) {
		t.Fatalf("unassigned token resolved: %v", err)
	}
}

func TestMarkVerifiedRejectsDuplicateTempToken(t *testing.T) {
	ctx := context.Background()
	st := New()

	for _, id := range []string{"o-1", "o-2"} {
		if err := st.OTPs().Create(ctx, &repository.OTP{
			ID: id, Email: id + "@example.com", Code: "111111",
			Purpose: repository.OTPPurposeRegister, Status: repository.OTPStatusActive,
			ExpiresAt: time.Now().Add(5 * time.Minute), CreatedAt: time.Now(),
		}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	if err := st.OTPs().MarkVerified(ctx, "o-1", "tok"); err != nil {
		t.Fatalf("mark verified: %v", err)
	}
	if err := st.OTPs().MarkVerified(ctx, "o-2", "tok"); !repository.IsConflict(err) {
		t.Fatalf("expected conflict on duplicate temp token, got %v", err)
	}
}
