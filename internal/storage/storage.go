// Package storage declares the persistence contracts shared by the
// postgres and sqlite backends.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// TaskRepository stores tasks. Every method except CreateTask is
// scoped to ownerID: a task owned by someone else is reported as
// ErrNotFound, exactly like a missing one.
type TaskRepository interface {
	ListTasks(ctx context.Context, ownerID string, filter models.TaskFilter, page models.Pagination) ([]*models.Task, int64, error)
	GetTask(ctx context.Context, ownerID, id string) (*models.Task, error)
	CreateTask(ctx context.Context, task *models.Task) error
	// UpdateTask overwrites the mutable fields of the task matching
	// task.ID and task.UserID.
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, ownerID, id string) error
	TaskStats(ctx context.Context, ownerID string) (*models.TaskStats, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, filter models.UserFilter, page models.Pagination) ([]*models.User, int64, error)
	UpdateUser(ctx context.Context, user *models.User) error
	// TouchLastLogin sets only last_login and updated_at.
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	// DeleteUser removes the user together with all of their tasks.
	DeleteUser(ctx context.Context, id string) error
	// UserStats counts accounts; RecentUsers counts those created at or after since.
	UserStats(ctx context.Context, since time.Time) (*models.UserStats, error)
}

type Store interface {
	TaskRepository
	UserRepository

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// SortGroups orders grouped counts by the declared order of keys. Keys
// with no rows are omitted.
func SortGroups[T ~string](keys []T, counts map[string]int64) []models.GroupCount {
	groups := make([]models.GroupCount, 0, len(counts))
	for _, k := range keys {
		if n, ok := counts[string(k)]; ok {
			groups = append(groups, models.GroupCount{ID: string(k), Count: n})
		}
	}
	return groups
}
