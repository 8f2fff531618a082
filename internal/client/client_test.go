package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/adanyl0v/go-task-manager/internal/delivery/http/v1"
	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/services"
	"github.com/adanyl0v/go-task-manager/internal/storage/sqlite"
)

type testEnv struct {
	baseURL string
	auth    services.AuthService
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := sqlite.Open(context.Background(), sqlite.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := zerolog.Nop()
	auth := services.NewAuthService(logger, store, "test", []byte("client-test-key"), time.Hour)
	h := v1.New(logger, auth, services.NewTaskService(logger, store), services.NewUserService(logger, store))

	router := gin.New()
	v1.RegisterRoutes(router, h)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testEnv{baseURL: srv.URL + "/api", auth: auth}
}

func requireAPIError(t *testing.T, err error, code int) *APIError {
	t.Helper()
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "expected *APIError, got %v", err)
	assert.Equal(t, code, apiErr.StatusCode)
	return apiErr
}

func TestClient_AuthFlow(t *testing.T) {
	env := setupServer(t)
	ctx := context.Background()
	c := New(env.baseURL)

	_, err := c.Me(ctx)
	apiErr := requireAPIError(t, err, http.StatusUnauthorized)
	assert.Equal(t, "Not authorized to access this route", apiErr.Message)

	registered, err := c.Register(ctx, RegisterRequest{
		Name:     "Jane Doe",
		Email:    "Jane@Example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, registered.Token, c.Token())
	assert.Equal(t, "jane@example.com", registered.User.Email)
	assert.Equal(t, models.RoleUser, registered.User.Role)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, me.ID)

	name := "Jane Smith"
	updated, err := c.UpdateProfile(ctx, ProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "jane@example.com", updated.Email)

	c.Logout()
	assert.Empty(t, c.Token())

	_, err = c.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "wrong-password"})
	apiErr = requireAPIError(t, err, http.StatusUnauthorized)
	assert.Equal(t, "Invalid credentials", apiErr.Message)

	loggedIn, err := c.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, loggedIn.Token, c.Token())
	require.NotNil(t, loggedIn.User.LastLogin)
}

func TestClient_ValidationError(t *testing.T) {
	env := setupServer(t)
	c := New(env.baseURL)

	_, err := c.Register(context.Background(), RegisterRequest{Name: "J", Email: "nope", Password: "123"})
	apiErr := requireAPIError(t, err, http.StatusBadRequest)
	require.NotEmpty(t, apiErr.Fields)

	fields := make(map[string]string, len(apiErr.Fields))
	for _, f := range apiErr.Fields {
		fields[f.Field] = f.Message
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Contains(t, apiErr.Error(), "password")
	assert.Empty(t, c.Token())
}

func TestClient_TaskLifecycle(t *testing.T) {
	env := setupServer(t)
	ctx := context.Background()
	c := New(env.baseURL)

	_, err := c.Register(ctx, RegisterRequest{Name: "Owner", Email: "owner@example.com", Password: "secret1"})
	require.NoError(t, err)

	due := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)
	task, err := c.CreateTask(ctx, TaskInput{
		Title:   "  Write report  ",
		DueDate: &due,
		Tags:    []string{"work"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	require.NotNil(t, task.DueDate)
	assert.True(t, due.Equal(*task.DueDate))

	status := models.StatusCompleted
	task, err = c.UpdateTask(ctx, task.ID, TaskPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, task.Status)
	assert.NotNil(t, task.CompletedAt)
	assert.NotNil(t, task.DueDate)

	task, err = c.ClearDueDate(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, task.DueDate)

	got, err := c.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)

	stats, err := c.TaskStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalTasks)
	assert.Equal(t, []models.GroupCount{{ID: "completed", Count: 1}}, stats.StatusStats)

	require.NoError(t, c.DeleteTask(ctx, task.ID))

	_, err = c.GetTask(ctx, task.ID)
	apiErr := requireAPIError(t, err, http.StatusNotFound)
	assert.Equal(t, "Task not found", apiErr.Message)
}

func TestClient_ListTasksPagination(t *testing.T) {
	env := setupServer(t)
	ctx := context.Background()
	c := New(env.baseURL)

	_, err := c.Register(ctx, RegisterRequest{Name: "Owner", Email: "owner@example.com", Password: "secret1"})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		priority := models.PriorityLow
		if i%2 == 0 {
			priority = models.PriorityHigh
		}
		_, err := c.CreateTask(ctx, TaskInput{Title: "task", Priority: priority})
		require.NoError(t, err)
	}

	list, err := c.ListTasks(ctx, TaskQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Count)
	assert.EqualValues(t, 5, list.Total)
	require.NotNil(t, list.Pagination.Next)
	assert.Equal(t, PageLink{Page: 2, Limit: 2}, *list.Pagination.Next)
	assert.Nil(t, list.Pagination.Prev)

	list, err = c.ListTasks(ctx, TaskQuery{Priority: models.PriorityHigh})
	require.NoError(t, err)
	assert.EqualValues(t, 3, list.Total)
	for _, task := range list.Items {
		assert.Equal(t, models.PriorityHigh, task.Priority)
	}

	_, err = c.ListTasks(ctx, TaskQuery{Limit: 500})
	apiErr := requireAPIError(t, err, http.StatusBadRequest)
	require.Len(t, apiErr.Fields, 1)
	assert.Equal(t, "limit", apiErr.Fields[0].Field)
}

func TestClient_AdminEndpoints(t *testing.T) {
	env := setupServer(t)
	ctx := context.Background()

	_, err := env.auth.CreateAdmin(ctx, services.RegisterParams{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	member := New(env.baseURL)
	registered, err := member.Register(ctx, RegisterRequest{Name: "Member", Email: "member@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = member.ListUsers(ctx, UserQuery{})
	requireAPIError(t, err, http.StatusForbidden)

	admin := New(env.baseURL)
	_, err = admin.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "secret1"})
	require.NoError(t, err)

	users, err := admin.ListUsers(ctx, UserQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, users.Total)

	inactive := false
	user, err := admin.UpdateUser(ctx, registered.User.ID, UserPatch{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	users, err = admin.ListUsers(ctx, UserQuery{Active: &inactive})
	require.NoError(t, err)
	require.Len(t, users.Items, 1)
	assert.Equal(t, registered.User.ID, users.Items[0].ID)

	_, err = member.Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized)

	stats, err := admin.UserStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.InactiveUsers)
	assert.EqualValues(t, 1, stats.AdminUsers)

	require.NoError(t, admin.DeleteUser(ctx, registered.User.ID))
	_, err = admin.GetUser(ctx, registered.User.ID)
	apiErr := requireAPIError(t, err, http.StatusNotFound)
	assert.Equal(t, "User not found", apiErr.Message)
}
