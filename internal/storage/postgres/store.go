// Package postgres implements the storage contracts on top of a pgx
// connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/go-task-manager/internal/storage"
)

type Store struct {
	pool *pgxpool.Pool
}

var _ storage.Store = (*Store)(nil)

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const migrateQuery = `
CREATE TABLE IF NOT EXISTS users (
    id         UUID PRIMARY KEY,
    name       VARCHAR(50)  NOT NULL,
    email      TEXT         NOT NULL UNIQUE,
    password   TEXT         NOT NULL,
    role       TEXT         NOT NULL DEFAULT 'user',
    is_active  BOOLEAN      NOT NULL DEFAULT TRUE,
    avatar     TEXT         NOT NULL DEFAULT '',
    last_login TIMESTAMPTZ,
    created_at TIMESTAMPTZ  NOT NULL,
    updated_at TIMESTAMPTZ  NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_users_created ON users (created_at);

CREATE TABLE IF NOT EXISTS tasks (
    id           UUID PRIMARY KEY,
    user_id      UUID         NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    title        VARCHAR(100) NOT NULL,
    description  VARCHAR(500) NOT NULL DEFAULT '',
    status       TEXT         NOT NULL DEFAULT 'pending',
    priority     TEXT         NOT NULL DEFAULT 'medium',
    due_date     TIMESTAMPTZ,
    tags         TEXT[]       NOT NULL DEFAULT '{}',
    completed_at TIMESTAMPTZ,
    created_at   TIMESTAMPTZ  NOT NULL,
    updated_at   TIMESTAMPTZ  NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_user_status ON tasks (user_id, status);
CREATE INDEX IF NOT EXISTS idx_tasks_user_created ON tasks (user_id, created_at DESC);
`

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, migrateQuery); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func translateError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return storage.ErrDuplicateEmail
	}
	return err
}
