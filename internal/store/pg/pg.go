// Package pg implements store.Store on PostgreSQL using pgxpool.
package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dropDatabas3/signet/internal/domain/repository"
	"github.com/dropDatabas3/signet/internal/store"
	"github.com/dropDatabas3/signet/migrations/postgres"
)

// Config tunes the connection pool.
type Config struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Store is the PostgreSQL adapter.
type Store struct {
	pool *pgxpool.Pool
}

var _ store.Store = (*Store)(nil)

// New opens a pool against the configured DSN.
func New(ctx context.Context, cfg Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg: parse DSN: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	} else {
		poolCfg.MaxConns = 10
	}
	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	} else {
		poolCfg.MinConns = 2
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pg: connect: %w", err)
	}
	return &Store{pool: pool}, nil
}

// RunMigrations applies the embedded goose migrations. It opens a
// separate database/sql connection because goose drives *sql.DB.
func RunMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("pg: open for migrations: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("pg: migrate: %w", err)
	}
	return nil
}

func (s *Store) Users() repository.UserRepository {
	return &userRepo{q: s.pool}
}

func (s *Store) Identities() repository.IdentityRepository {
	return &identityRepo{q: s.pool}
}

func (s *Store) OTPs() repository.OTPRepository {
	return &otpRepo{q: s.pool}
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Repos) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pg: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(txRepos{tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("pg: commit: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}

// txRepos binds the repositories to an open transaction.
type txRepos struct{ q querier }

func (t txRepos) Users() repository.UserRepository          { return &userRepo{q: t.q} }
func (t txRepos) Identities() repository.IdentityRepository { return &identityRepo{q: t.q} }
func (t txRepos) OTPs() repository.OTPRepository            { return &otpRepo{q: t.q} }

// mapError converts driver errors into the repository sentinels.
// 23505 is unique_violation.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repository.ErrConflict
	}
	return err
}
