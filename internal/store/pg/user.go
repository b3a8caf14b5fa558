package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/signet/internal/domain/repository"
)

type userRepo struct {
	q querier
}

const userColumns = `id, name, email, password_hash, created_at, deleted_at`

func scanUser(row pgx.Row) (*repository.User, error) {
	var u repository.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	return scanUser(r.q.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM app_user
		WHERE lower(email) = lower($1) AND deleted_at IS NULL`,
		email,
	))
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	return scanUser(r.q.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM app_user
		WHERE id = $1 AND deleted_at IS NULL`,
		id,
	))
}

func (r *userRepo) Create(ctx context.Context, u *repository.User) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO app_user (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt,
	)
	return mapError(err)
}

func (r *userRepo) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE app_user SET password_hash = $2
		WHERE id = $1 AND deleted_at IS NULL`,
		userID, hash,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
