// Package sqlite implements the storage contracts on top of GORM and SQLite.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/storage"
)

const MemoryDSN = ":memory:"

type Store struct {
	db *gorm.DB
}

var _ storage.Store = (*Store)(nil)

// Open connects to the database at path and migrates the schema.
// Use MemoryDSN for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty database path")
	}
	if path != MemoryDSN {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	// SQLite serializes writers anyway, and an in-memory database
	// exists only for the connection that created it.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	s := &Store{db: db}
	if err = s.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&userRecord{}, &taskRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type taskRecord struct {
	ID          string     `gorm:"primaryKey;type:text"`
	UserID      string     `gorm:"not null;type:text;index:idx_tasks_user_status,priority:1;index:idx_tasks_user_created,priority:1"`
	Title       string     `gorm:"not null;size:100"`
	Description string     `gorm:"not null;size:500;default:''"`
	Status      string     `gorm:"not null;type:text;index:idx_tasks_user_status,priority:2"`
	Priority    string     `gorm:"not null;type:text"`
	DueDate     *time.Time
	Tags        []string `gorm:"serializer:json;not null"`
	CompletedAt *time.Time
	CreatedAt   time.Time `gorm:"index:idx_tasks_user_created,priority:2"`
	UpdatedAt   time.Time
}

func (taskRecord) TableName() string {
	return "tasks"
}

func newTaskRecord(t *models.Task) *taskRecord {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return &taskRecord{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Tags:        tags,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (r *taskRecord) toModel() *models.Task {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return &models.Task{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Status:      models.Status(r.Status),
		Priority:    models.Priority(r.Priority),
		DueDate:     r.DueDate,
		Tags:        tags,
		CompletedAt: r.CompletedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type userRecord struct {
	ID        string `gorm:"primaryKey;type:text"`
	Name      string `gorm:"not null;size:50"`
	Email     string `gorm:"uniqueIndex;not null;type:text"`
	Password  string `gorm:"not null;type:text"`
	Role      string `gorm:"not null;type:text;default:'user'"`
	IsActive  bool   `gorm:"not null"`
	Avatar    string `gorm:"not null;type:text;default:''"`
	LastLogin *time.Time
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (userRecord) TableName() string {
	return "users"
}

func newUserRecord(u *models.User) *userRecord {
	return &userRecord{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		Avatar:    u.Avatar,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *userRecord) toModel() *models.User {
	return &models.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Role:      models.Role(r.Role),
		IsActive:  r.IsActive,
		Avatar:    r.Avatar,
		LastLogin: r.LastLogin,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return storage.ErrDuplicateEmail
	default:
		return err
	}
}
