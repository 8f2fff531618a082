package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/storage"
)

const userColumns = `id,
       name,
       email,
       password,
       role,
       is_active,
       avatar,
       last_login,
       created_at,
       updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := new(models.User)
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.IsActive,
		&user.Avatar,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	const insertUserQuery = `
INSERT INTO users (id,
                   name,
                   email,
                   password,
                   role,
                   is_active,
                   avatar,
                   last_login,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	_, err := s.pool.Exec(
		ctx,
		insertUserQuery,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		string(user.Role),
		user.IsActive,
		user.Avatar,
		user.LastLogin,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", translateError(err))
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const selectUserByIDQuery = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
`
	user, err := scanUser(s.pool.QueryRow(ctx, selectUserByIDQuery, id))
	if err != nil {
		return nil, fmt.Errorf("failed to select user by id: %w", translateError(err))
	}
	return user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const selectUserByEmailQuery = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
`
	user, err := scanUser(s.pool.QueryRow(ctx, selectUserByEmailQuery, email))
	if err != nil {
		return nil, fmt.Errorf("failed to select user by email: %w", translateError(err))
	}
	return user, nil
}

func (s *Store) ListUsers(ctx context.Context, filter models.UserFilter, page models.Pagination) ([]*models.User, int64, error) {
	const countUsersQuery = `
SELECT COUNT(*)
FROM users
WHERE ($1::boolean IS NULL OR is_active = $1)
`
	var total int64
	if err := s.pool.QueryRow(ctx, countUsersQuery, filter.Active).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	const selectUsersQuery = `
SELECT ` + userColumns + `
FROM users
WHERE ($1::boolean IS NULL OR is_active = $1)
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`
	rows, err := s.pool.Query(ctx, selectUsersQuery, filter.Active, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to select users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0, page.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate over users: %w", err)
	}
	return users, total, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	const updateUserQuery = `
UPDATE users
SET name = $1,
    email = $2,
    password = $3,
    role = $4,
    is_active = $5,
    avatar = $6,
    last_login = $7,
    updated_at = $8
WHERE id = $9
`
	tag, err := s.pool.Exec(
		ctx,
		updateUserQuery,
		user.Name,
		user.Email,
		user.Password,
		string(user.Role),
		user.IsActive,
		user.Avatar,
		user.LastLogin,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	const touchLastLoginQuery = `
UPDATE users
SET last_login = $1,
    updated_at = $1
WHERE id = $2
`
	tag, err := s.pool.Exec(ctx, touchLastLoginQuery, at, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	const deleteUserQuery = `
DELETE FROM users
WHERE id = $1
`
	tag, err := s.pool.Exec(ctx, deleteUserQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) UserStats(ctx context.Context, since time.Time) (*models.UserStats, error) {
	const userStatsQuery = `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE is_active),
       COUNT(*) FILTER (WHERE NOT is_active),
       COUNT(*) FILTER (WHERE role = $1),
       COUNT(*) FILTER (WHERE created_at >= $2)
FROM users
`
	var stats models.UserStats
	err := s.pool.QueryRow(
		ctx,
		userStatsQuery,
		string(models.RoleAdmin),
		since,
	).Scan(
		&stats.TotalUsers,
		&stats.ActiveUsers,
		&stats.InactiveUsers,
		&stats.AdminUsers,
		&stats.RecentUsers,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	return &stats, nil
}
