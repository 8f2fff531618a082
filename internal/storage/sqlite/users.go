package sqlite

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/storage"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(newUserRecord(user)).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", translateError(err))
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var record userRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get user: %w", translateError(err))
	}
	return record.toModel(), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var record userRecord
	if err := s.db.WithContext(ctx).First(&record, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", translateError(err))
	}
	return record.toModel(), nil
}

func (s *Store) ListUsers(ctx context.Context, filter models.UserFilter, page models.Pagination) ([]*models.User, int64, error) {
	query := s.db.WithContext(ctx).Model(&userRecord{})
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var records []userRecord
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*models.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].toModel())
	}
	return users, total, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	result := s.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("id = ?", user.ID).
		Select("name", "email", "password", "role", "is_active", "avatar", "last_login", "updated_at").
		Updates(newUserRecord(user))
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update user: %w", translateError(err))
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_login": at,
			"updated_at": at,
		})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&userRecord{}, "id = ?", id)
		if err := result.Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if result.RowsAffected == 0 {
			return storage.ErrNotFound
		}

		if err := tx.Delete(&taskRecord{}, "user_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete user tasks: %w", err)
		}
		return nil
	})
}

func (s *Store) UserStats(ctx context.Context, since time.Time) (*models.UserStats, error) {
	var stats models.UserStats
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{dst: &stats.TotalUsers},
		{dst: &stats.ActiveUsers, query: "is_active = ?", args: []any{true}},
		{dst: &stats.InactiveUsers, query: "is_active = ?", args: []any{false}},
		{dst: &stats.AdminUsers, query: "role = ?", args: []any{string(models.RoleAdmin)}},
		{dst: &stats.RecentUsers, query: "created_at >= ?", args: []any{since}},
	}

	for _, c := range counts {
		q := s.db.WithContext(ctx).Model(&userRecord{})
		if c.query != "" {
			q = q.Where(c.query, c.args...)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("failed to count users: %w", err)
		}
	}
	return &stats, nil
}
