package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/signet/internal/domain/repository"
)

type identityRepo struct {
	q querier
}

func (r *identityRepo) GetByUserAndProvider(ctx context.Context, userID, provider string) (*repository.Identity, error) {
	var ident repository.Identity
	err := r.q.QueryRow(ctx, `
		SELECT id, user_id, provider, provider_user_id, created_at
		FROM auth_identity
		WHERE user_id = $1 AND provider = $2`,
		userID, provider,
	).Scan(&ident.ID, &ident.UserID, &ident.Provider, &ident.ProviderUserID, &ident.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ident, nil
}

func (r *identityRepo) ListByUser(ctx context.Context, userID string) ([]repository.Identity, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, provider, provider_user_id, created_at
		FROM auth_identity
		WHERE user_id = $1
		ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.Identity
	for rows.Next() {
		var ident repository.Identity
		if err := rows.Scan(&ident.ID, &ident.UserID, &ident.Provider, &ident.ProviderUserID, &ident.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ident)
	}
	return out, rows.Err()
}

func (r *identityRepo) Create(ctx context.Context, ident *repository.Identity) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO auth_identity (id, user_id, provider, provider_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		ident.ID, ident.UserID, ident.Provider, ident.ProviderUserID, ident.CreatedAt,
	)
	return mapError(err)
}
