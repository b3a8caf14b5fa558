package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/dropDatabas3/signet/internal/domain/repository"
)

// userOps, identityOps, and otpOps implement the repository interfaces
// directly against a state. They do no locking; callers hold the mutex.

type userOps struct{ st *state }

func (o userOps) GetByEmail(_ context.Context, email string) (*repository.User, error) {
	for _, u := range o.st.users {
		if u.DeletedAt == nil && strings.EqualFold(u.Email, email) {
			cp := u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (o userOps) GetByID(_ context.Context, id string) (*repository.User, error) {
	u, ok := o.st.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, repository.ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (o userOps) Create(_ context.Context, u *repository.User) error {
	for _, existing := range o.st.users {
		if existing.DeletedAt == nil && strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrConflict
		}
	}
	o.st.users[u.ID] = *u
	return nil
}

func (o userOps) UpdatePasswordHash(_ context.Context, userID, hash string) error {
	u, ok := o.st.users[userID]
	if !ok || u.DeletedAt != nil {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	o.st.users[userID] = u
	return nil
}

type identityOps struct{ st *state }

func (o identityOps) GetByUserAndProvider(_ context.Context, userID, provider string) (*repository.Identity, error) {
	for _, ident := range o.st.identities {
		if ident.UserID == userID && ident.Provider == provider {
			cp := ident
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (o identityOps) ListByUser(_ context.Context, userID string) ([]repository.Identity, error) {
	var out []repository.Identity
	for _, ident := range o.st.identities {
		if ident.UserID == userID {
			out = append(out, ident)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (o identityOps) Create(_ context.Context, ident *repository.Identity) error {
	for _, existing := range o.st.identities {
		if existing.UserID == ident.UserID && existing.Provider == ident.Provider {
			return repository.ErrConflict
		}
	}
	o.st.identities[ident.ID] = *ident
	return nil
}

type otpOps struct{ st *state }

func (o otpOps) LatestByEmail(_ context.Context, email string) (*repository.OTP, error) {
	var latest *repository.OTP
	for id := range o.st.otps {
		otp := o.st.otps[id]
		if !strings.EqualFold(otp.Email, email) {
			continue
		}
		if latest == nil || otp.CreatedAt.After(latest.CreatedAt) {
			cp := otp
			latest = &cp
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	return latest, nil
}

func (o otpOps) GetByTempToken(_ context.Context, token string) (*repository.OTP, error) {
	for id := range o.st.otps {
		otp := o.st.otps[id]
		if otp.TempToken != nil && *otp.TempToken == token {
			cp := otp
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (o otpOps) Create(_ context.Context, otp *repository.OTP) error {
	o.st.otps[otp.ID] = *otp
	return nil
}

func (o otpOps) ExpireActive(_ context.Context, email string) error {
	for id, otp := range o.st.otps {
		if strings.EqualFold(otp.Email, email) && otp.Status == repository.OTPStatusActive {
			otp.Status = repository.OTPStatusExpired
			o.st.otps[id] = otp
		}
	}
	return nil
}

func (o otpOps) MarkVerified(_ context.Context, id, tempToken string) error {
	otp, ok := o.st.otps[id]
	if !ok {
		return repository.ErrNotFound
	}
	if otp.Status != repository.OTPStatusActive {
		return repository.ErrInvalidState
	}
	for otherID, other := range o.st.otps {
		if otherID != id && other.TempToken != nil && *other.TempToken == tempToken {
			return repository.ErrConflict
		}
	}
	otp.Status = repository.OTPStatusVerified
	otp.TempToken = &tempToken
	o.st.otps[id] = otp
	return nil
}

func (o otpOps) MarkCompleted(_ context.Context, id string) error {
	otp, ok := o.st.otps[id]
	if !ok {
		return repository.ErrNotFound
	}
	if otp.Status != repository.OTPStatusVerified {
		return repository.ErrInvalidState
	}
	otp.Status = repository.OTPStatusCompleted
	o.st.otps[id] = otp
	return nil
}

func (o otpOps) MarkExpired(_ context.Context, id string) error {
	otp, ok := o.st.otps[id]
	if !ok {
		return repository.ErrNotFound
	}
	if otp.Status != repository.OTPStatusActive && otp.Status != repository.OTPStatusVerified {
		return repository.ErrInvalidState
	}
	otp.Status = repository.OTPStatusExpired
	o.st.otps[id] = otp
	return nil
}
