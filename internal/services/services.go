package services

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrSelfDeactivation   = errors.New("cannot deactivate own account")
	ErrSelfDeletion       = errors.New("cannot delete own account")
)

type AuthService interface {
	// Register creates an active account with the user role and
	// issues a token for it.
	//
	// It returns ErrUserAlreadyExists if the email is taken.
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)

	// Login verifies the email and password and issues a token.
	//
	// It returns ErrInvalidCredentials for an unknown email, a wrong
	// password and a disabled account alike.
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)

	// Authenticate resolves a bearer token to its account.
	//
	// It returns ErrUnauthenticated if the token is invalid or its
	// subject no longer exists, and ErrAccountDisabled if the account
	// is inactive.
	Authenticate(ctx context.Context, token string) (*models.User, error)

	// UpdateProfile changes the caller's own name, email or avatar.
	//
	// It returns ErrDuplicateEmail if the new email belongs to
	// another account.
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*models.User, error)

	// CreateAdmin creates an active account with the admin role.
	CreateAdmin(ctx context.Context, params RegisterParams) (*models.User, error)
}

type TaskService interface {
	ListTasks(ctx context.Context, ownerID string, filter models.TaskFilter, page models.Pagination) (*TaskPage, error)

	// GetTask returns ErrTaskNotFound both for a missing task and for
	// a task owned by another account.
	GetTask(ctx context.Context, ownerID, id string) (*models.Task, error)

	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// UpdateTask changes only the supplied fields.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	DeleteTask(ctx context.Context, ownerID, id string) error

	GetTaskStats(ctx context.Context, ownerID string) (*models.TaskStats, error)
}

type UserService interface {
	ListUsers(ctx context.Context, filter models.UserFilter, page models.Pagination) (*UserPage, error)
	GetUser(ctx context.Context, id string) (*models.User, error)

	// UpdateUser returns ErrSelfDeactivation if the actor tries to
	// deactivate their own account and ErrDuplicateEmail on an email
	// collision.
	UpdateUser(ctx context.Context, params UpdateUserParams) (*models.User, error)

	// DeleteUser returns ErrSelfDeletion if actorID equals id.
	DeleteUser(ctx context.Context, actorID, id string) error

	// GetUserStats counts accounts; recent ones are those registered
	// within RecentUsersWindow.
	GetUserStats(ctx context.Context) (*models.UserStats, error)
}

const RecentUsersWindow = 30 * 24 * time.Hour

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// UpdateProfileParams holds optional fields. Nil leaves the field unchanged.
type UpdateProfileParams struct {
	UserID string
	Name   *string
	Email  *string
	Avatar *string
}

type CreateTaskParams struct {
	UserID      string
	Title       string
	Description string
	// Zero Status and Priority fall back to pending and medium.
	Status   models.Status
	Priority models.Priority
	DueDate  *time.Time
	Tags     []string
}

// UpdateTaskParams holds optional fields. Nil leaves the field unchanged.
type UpdateTaskParams struct {
	ID          string
	UserID      string
	Title       *string
	Description *string
	Status      *models.Status
	Priority    *models.Priority
	// DueDate is applied only if SetDueDate is true; a nil DueDate
	// then clears it.
	SetDueDate bool
	DueDate    *time.Time
	Tags       *[]string
}

// UpdateUserParams holds optional fields. Nil leaves the field unchanged.
type UpdateUserParams struct {
	ActorID  string
	ID       string
	Name     *string
	Email    *string
	Role     *models.Role
	IsActive *bool
}

type TaskPage struct {
	Tasks []*models.Task
	Total int64
	Page  models.Pagination
}

type UserPage struct {
	Users []*models.User
	Total int64
	Page  models.Pagination
}
