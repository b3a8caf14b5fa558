package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/signet/internal/domain/repository"
)

type otpRepo struct {
	q querier
}

const otpColumns = `id, email, code, purpose, status, temp_token, expires_at, created_at`

func scanOTP(row pgx.Row) (*repository.OTP, error) {
	var o repository.OTP
	err := row.Scan(&o.ID, &o.Email, &o.Code, &o.Purpose, &o.Status, &o.TempToken, &o.ExpiresAt, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *otpRepo) LatestByEmail(ctx context.Context, email string) (*repository.OTP, error) {
	return scanOTP(r.q.QueryRow(ctx, `
		SELECT `+otpColumns+`
		FROM otp
		WHERE lower(email) = lower($1)
		ORDER BY created_at DESC
		LIMIT 1`,
		email,
	))
}

func (r *otpRepo) GetByTempToken(ctx context.Context, token string) (*repository.OTP, error) {
	return scanOTP(r.q.QueryRow(ctx, `
		SELECT `+otpColumns+`
		FROM otp
		WHERE temp_token = $1`,
		token,
	))
}

func (r *otpRepo) Create(ctx context.Context, otp *repository.OTP) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO otp (id, email, code, purpose, status, temp_token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		otp.ID, otp.Email, otp.Code, otp.Purpose, otp.Status, otp.TempToken, otp.ExpiresAt, otp.CreatedAt,
	)
	return mapError(err)
}

func (r *otpRepo) ExpireActive(ctx context.Context, email string) error {
	_, err := r.q.Exec(ctx, `
		UPDATE otp SET status = $2
		WHERE lower(email) = lower($1) AND status = $3`,
		email, repository.OTPStatusExpired, repository.OTPStatusActive,
	)
	return err
}

func (r *otpRepo) MarkVerified(ctx context.Context, id, tempToken string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE otp SET status = $2, temp_token = $3
		WHERE id = $1 AND status = $4`,
		id, repository.OTPStatusVerified, tempToken, repository.OTPStatusActive,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrInvalidState
	}
	return nil
}

func (r *otpRepo) MarkCompleted(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE otp SET status = $2
		WHERE id = $1 AND status = $3`,
		id, repository.OTPStatusCompleted, repository.OTPStatusVerified,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrInvalidState
	}
	return nil
}

func (r *otpRepo) MarkExpired(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE otp SET status = $2
		WHERE id = $1 AND status IN ($3, $4)`,
		id, repository.OTPStatusExpired, repository.OTPStatusActive, repository.OTPStatusVerified,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrInvalidState
	}
	return nil
}
