package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/services"
	"github.com/adanyl0v/go-task-manager/internal/storage/sqlite"
)

type testServer struct {
	router *gin.Engine
	store  *sqlite.Store
	auth   services.AuthService
}

func setupTestServer(t *testing.T, checks ...HealthCheck) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := sqlite.Open(context.Background(), sqlite.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := zerolog.Nop()
	auth := services.NewAuthService(logger, store, "test", []byte("test-signing-key"), time.Hour)
	h := New(
		logger,
		auth,
		services.NewTaskService(logger, store),
		services.NewUserService(logger, store),
		checks...,
	)

	router := gin.New()
	RegisterRoutes(router, h)
	return &testServer{router: router, store: store, auth: auth}
}

type testResponse struct {
	Code int
	Body map[string]any
	Raw  string
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) testResponse {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	resp := testResponse{Code: w.Code, Raw: w.Body.String()}
	if json.Valid(w.Body.Bytes()) {
		_ = json.Unmarshal(w.Body.Bytes(), &resp.Body)
	}
	return resp
}

func (s *testServer) register(t *testing.T, email string) (string, string) {
	t.Helper()

	resp := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Raw)
	token, _ := resp.Body["token"].(string)
	data, _ := resp.Body["data"].(map[string]any)
	id, _ := data["_id"].(string)
	return token, id
}

func (s *testServer) registerAdmin(t *testing.T, email string) (string, string) {
	t.Helper()

	_, err := s.auth.CreateAdmin(context.Background(), services.RegisterParams{
		Name:     "Admin",
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)

	resp := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Raw)
	data, _ := resp.Body["data"].(map[string]any)
	return resp.Body["token"].(string), data["_id"].(string)
}

func (s *testServer) createTask(t *testing.T, token string, body gin.H) map[string]any {
	t.Helper()

	resp := s.do(t, http.MethodPost, "/api/tasks", token, body)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Raw)
	data, _ := resp.Body["data"].(map[string]any)
	return data
}

func fieldsOf(body map[string]any) []string {
	var fields []string
	errs, _ := body["errors"].([]any)
	for _, e := range errs {
		if m, ok := e.(map[string]any); ok {
			fields = append(fields, fmt.Sprint(m["field"]))
		}
	}
	return fields
}

func TestAuth_RegisterLoginMe(t *testing.T) {
	s := setupTestServer(t)

	token, id := s.register(t, "Alice@Example.com")

	resp := s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	data := resp.Body["data"].(map[string]any)
	assert.Equal(t, id, data["_id"])
	assert.Equal(t, "alice@example.com", data["email"])
	assert.Equal(t, "user", data["role"])
	assert.NotContains(t, data, "password")

	resp = s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Again", "email": "alice@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "User already exists", resp.Body["error"])

	resp = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "alice@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, resp.Body["token"])
	assert.NotNil(t, resp.Body["data"].(map[string]any)["lastLogin"])
}

func TestAuth_RegisterValidation(t *testing.T) {
	s := setupTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "A", "email": "not-an-email", "password": "123",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, false, resp.Body["success"])
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fieldsOf(resp.Body))
}

func TestAuth_LoginFailuresLookAlike(t *testing.T) {
	s := setupTestServer(t)
	_, id := s.register(t, "bob@example.com")

	wrong := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "bob@example.com", "password": "nope"})
	unknown := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "ghost@example.com", "password": "secret123"})

	user, err := s.store.GetUserByID(context.Background(), id)
	require.NoError(t, err)
	user.IsActive = false
	require.NoError(t, s.store.UpdateUser(context.Background(), user))
	disabled := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "bob@example.com", "password": "secret123"})

	for _, resp := range []testResponse{wrong, unknown, disabled} {
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.JSONEq(t, `{"success":false,"error":"Invalid credentials"}`, resp.Raw)
	}
}

func TestAuth_UpdateProfile(t *testing.T) {
	s := setupTestServer(t)
	token, _ := s.register(t, "carol@example.com")
	s.register(t, "dave@example.com")

	resp := s.do(t, http.MethodPut, "/api/auth/profile", token, gin.H{"name": " Carol C ", "avatar": "https://example.com/c.png"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Raw)
	data := resp.Body["data"].(map[string]any)
	assert.Equal(t, "Carol C", data["name"])
	assert.Equal(t, "https://example.com/c.png", data["avatar"])

	resp = s.do(t, http.MethodPut, "/api/auth/profile", token, gin.H{"email": "DAVE@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Email already exists", resp.Body["error"])
}

func TestCredentialVerifier(t *testing.T) {
	s := setupTestServer(t)
	token, id := s.register(t, "erin@example.com")

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic " + token},
		{name: "no token", header: "Bearer "},
		{name: "garbage token", header: "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"success":false,"error":"Not authorized to access this route"}`, w.Body.String())
		})
	}

	user, err := s.store.GetUserByID(context.Background(), id)
	require.NoError(t, err)
	user.IsActive = false
	require.NoError(t, s.store.UpdateUser(context.Background(), user))

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPut, "/api/auth/profile"},
		{http.MethodGet, "/api/tasks"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodGet, "/api/tasks/user/stats"},
		{http.MethodGet, "/api/tasks/" + uuid.NewString()},
		{http.MethodPut, "/api/tasks/" + uuid.NewString()},
		{http.MethodDelete, "/api/tasks/" + uuid.NewString()},
		{http.MethodGet, "/api/users"},
	} {
		resp := s.do(t, route.method, route.path, token, gin.H{})
		assert.Equal(t, http.StatusUnauthorized, resp.Code, "%s %s", route.method, route.path)
		assert.Equal(t, notAuthorizedMessage, resp.Body["error"])
	}
}

func TestTasks_LifecycleScenario(t *testing.T) {
	s := setupTestServer(t)
	token, _ := s.register(t, "frank@example.com")

	task := s.createTask(t, token, gin.H{"title": "Write spec", "priority": "high"})
	assert.Equal(t, "pending", task["status"])
	assert.Equal(t, "high", task["priority"])
	assert.Nil(t, task["completedAt"])
	assert.Equal(t, "", task["description"])
	assert.Equal(t, []any{}, task["tags"])
	id := task["_id"].(string)

	resp := s.do(t, http.MethodPut, "/api/tasks/"+id, token, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Raw)
	data := resp.Body["data"].(map[string]any)
	assert.Equal(t, "completed", data["status"])
	assert.NotNil(t, data["completedAt"])
	assert.Equal(t, "Write spec", data["title"])
	assert.Equal(t, "high", data["priority"])

	resp = s.do(t, http.MethodGet, "/api/tasks/user/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Raw)
	stats := resp.Body["data"].(map[string]any)
	assert.Contains(t, stats["statusStats"], map[string]any{"_id": "completed", "count": float64(1)})
	assert.Equal(t, float64(1), stats["totalTasks"])

	resp = s.do(t, http.MethodPut, "/api/tasks/"+id, token, gin.H{"status": "pending"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Nil(t, resp.Body["data"].(map[string]any)["completedAt"])

	resp = s.do(t, http.MethodDelete, "/api/tasks/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"success":true,"message":"Task deleted successfully"}`, resp.Raw)

	resp = s.do(t, http.MethodGet, "/api/tasks/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Task not found", resp.Body["error"])
}

func TestTasks_CreateCompleted(t *testing.T) {
	s := setupTestServer(t)
	token, _ := s.register(t, "gina@example.com")

	task := s.createTask(t, token, gin.H{
		"title":       "  Done already ",
		"description": " notes ",
		"status":      "completed",
		"dueDate":     "2026-11-01",
		"tags":        []string{" work ", "home"},
	})
	assert.Equal(t, "Done already", task["title"])
	assert.Equal(t, "notes", task["description"])
	assert.Equal(t, "medium", task["priority"])
	assert.NotNil(t, task["completedAt"])
	assert.Equal(t, "2026-11-01T00:00:00Z", task["dueDate"])
	assert.Equal(t, []any{"work", "home"}, task["tags"])
}

func TestTasks_Validation(t *testing.T) {
	s := setupTestServer(t)
	token, _ := s.register(t, "hank@example.com")
	id := s.createTask(t, token, gin.H{"title": "Valid"})["_id"].(string)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		field  string
	}{
		{name: "missing title", method: http.MethodPost, path: "/api/tasks", body: gin.H{"priority": "high"}, field: "title"},
		{name: "blank title", method: http.MethodPost, path: "/api/tasks", body: gin.H{"title": "   "}, field: "title"},
		{name: "empty body", method: http.MethodPost, path: "/api/tasks", body: "", field: "title"},
		{name: "long title", method: http.MethodPost, path: "/api/tasks", body: gin.H{"title": string(bytes.Repeat([]byte("x"), 101))}, field: "title"},
		{name: "long description", method: http.MethodPost, path: "/api/tasks", body: gin.H{"title": "t", "description": string(bytes.Repeat([]byte("x"), 501))}, field: "description"},
		{name: "bad status", method: http.MethodPost, path: "/api/tasks", body: gin.H{"title": "t", "status": "done"}, field: "status"},
		{name: "bad priority", method: http.MethodPost, path: "/api/tasks", body: gin.H{"title": "t", "priority": "urgent"}, field: "priority"},
		{name: "bad due date", method: http.MethodPost, path: "/api/tasks", body: gin.H{"title": "t", "dueDate": "tomorrow"}, field: "dueDate"},
		{name: "numeric due date", method: http.MethodPost, path: "/api/tasks", body: gin.H{"title": "t", "dueDate": 42}, field: "dueDate"},
		{name: "tags not array", method: http.MethodPut, path: "/api/tasks/" + id, body: gin.H{"tags": "x"}, field: "tags"},
		{name: "tags of numbers", method: http.MethodPost, path: "/api/tasks", body: gin.H{"title": "t", "tags": []int{1}}, field: "tags"},
		{name: "update blank title", method: http.MethodPut, path: "/api/tasks/" + id, body: gin.H{"title": " "}, field: "title"},
		{name: "update bad status", method: http.MethodPut, path: "/api/tasks/" + id, body: gin.H{"status": ""}, field: "status"},
		{name: "malformed id", method: http.MethodGet, path: "/api/tasks/not-a-uuid", body: nil, field: "id"},
		{name: "malformed id on update", method: http.MethodPut, path: "/api/tasks/123", body: gin.H{"title": "t"}, field: "id"},
		{name: "malformed id on delete", method: http.MethodDelete, path: "/api/tasks/123", body: nil, field: "id"},
		{name: "list bad status", method: http.MethodGet, path: "/api/tasks?status=archived", body: nil, field: "status"},
		{name: "list bad page", method: http.MethodGet, path: "/api/tasks?page=0", body: nil, field: "page"},
		{name: "list bad limit", method: http.MethodGet, path: "/api/tasks?limit=101", body: nil, field: "limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(t, tt.method, tt.path, token, tt.body)
			require.Equal(t, http.StatusBadRequest, resp.Code, resp.Raw)
			assert.Equal(t, false, resp.Body["success"])
			assert.Contains(t, fieldsOf(resp.Body), tt.field)
		})
	}

	resp := s.do(t, http.MethodGet, "/api/tasks/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Valid", resp.Body["data"].(map[string]any)["title"])
}

func TestTasks_PartialUpdate(t *testing.T) {
	s := setupTestServer(t)
	token, _ := s.register(t, "ivy@example.com")
	task := s.createTask(t, token, gin.H{
		"title":       "Original",
		"description": "keep me",
		"dueDate":     "2026-12-01T10:00:00Z",
		"tags":        []string{"a"},
	})
	id := task["_id"].(string)

	resp := s.do(t, http.MethodPut, "/api/tasks/"+id, token, gin.H{"title": "Renamed"})
	require.Equal(t, http.StatusOK, resp.Code)
	data := resp.Body["data"].(map[string]any)
	assert.Equal(t, "Renamed", data["title"])
	assert.Equal(t, "keep me", data["description"])
	assert.Equal(t, "2026-12-01T10:00:00Z", data["dueDate"])
	assert.Equal(t, []any{"a"}, data["tags"])

	resp = s.do(t, http.MethodPut, "/api/tasks/"+id, token, `{"dueDate":null,"tags":[]}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Raw)
	data = resp.Body["data"].(map[string]any)
	assert.Nil(t, data["dueDate"])
	assert.Equal(t, []any{}, data["tags"])
	assert.Equal(t, "Renamed", data["title"])
}

func TestTasks_OwnerScoping(t *testing.T) {
	s := setupTestServer(t)
	owner, _ := s.register(t, "jack@example.com")
	intruder, _ := s.register(t, "kate@example.com")

	id := s.createTask(t, owner, gin.H{"title": "Private"})["_id"].(string)
	missing := uuid.NewString()

	for _, target := range []string{id, missing} {
		get := s.do(t, http.MethodGet, "/api/tasks/"+target, intruder, nil)
		put := s.do(t, http.MethodPut, "/api/tasks/"+target, intruder, gin.H{"title": "Mine now"})
		del := s.do(t, http.MethodDelete, "/api/tasks/"+target, intruder, nil)
		for _, resp := range []testResponse{get, put, del} {
			assert.Equal(t, http.StatusNotFound, resp.Code)
			assert.JSONEq(t, `{"success":false,"error":"Task not found"}`, resp.Raw)
		}
	}

	resp := s.do(t, http.MethodGet, "/api/tasks", intruder, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, float64(0), resp.Body["total"])

	resp = s.do(t, http.MethodGet, "/api/tasks/"+id, owner, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Private", resp.Body["data"].(map[string]any)["title"])
}

func TestTasks_ListPagination(t *testing.T) {
	s := setupTestServer(t)
	token, _ := s.register(t, "leo@example.com")

	for i := 0; i < 7; i++ {
		priority := "low"
		if i%2 == 0 {
			priority = "high"
		}
		s.createTask(t, token, gin.H{"title": fmt.Sprintf("task %d", i), "priority": priority})
	}

	resp := s.do(t, http.MethodGet, "/api/tasks?page=2&limit=3", token, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Raw)
	assert.Equal(t, float64(3), resp.Body["count"])
	assert.Equal(t, float64(7), resp.Body["total"])
	assert.Equal(t, map[string]any{
		"next": map[string]any{"page": float64(3), "limit": float64(3)},
		"prev": map[string]any{"page": float64(1), "limit": float64(3)},
	}, resp.Body["pagination"])

	resp = s.do(t, http.MethodGet, "/api/tasks?page=3&limit=3", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, float64(1), resp.Body["count"])
	assert.NotContains(t, resp.Body["pagination"], "next")

	resp = s.do(t, http.MethodGet, "/api/tasks?priority=high", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, float64(4), resp.Body["total"])
	assert.Equal(t, map[string]any{}, resp.Body["pagination"])
	for _, item := range resp.Body["data"].([]any) {
		assert.Equal(t, "high", item.(map[string]any)["priority"])
	}

	resp = s.do(t, http.MethodGet, "/api/tasks?status=completed", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []any{}, resp.Body["data"])
}

func TestTasks_ListFarPages(t *testing.T) {
	s := setupTestServer(t)
	token, _ := s.register(t, "lena@example.com")
	s.createTask(t, token, gin.H{"title": "a"})
	s.createTask(t, token, gin.H{"title": "b"})

	resp := s.do(t, http.MethodGet, "/api/tasks?page=1000000&limit=100", token, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Raw)
	assert.Equal(t, []any{}, resp.Body["data"])
	assert.Equal(t, float64(2), resp.Body["total"])
	assert.NotContains(t, resp.Body["pagination"], "next")

	for _, path := range []string{
		"/api/tasks?page=100000000000000000&limit=100",
		"/api/tasks?page=9223372036854775807",
	} {
		resp = s.do(t, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusBadRequest, resp.Code, resp.Raw)
		assert.Equal(t, []string{"page"}, fieldsOf(resp.Body), path)
		assert.NotContains(t, resp.Body, "data")
	}

	adminToken, _ := s.registerAdmin(t, "root@example.com")
	resp = s.do(t, http.MethodGet, "/api/users?page=100000000000000000&limit=100", adminToken, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Raw)
	assert.Equal(t, []string{"page"}, fieldsOf(resp.Body))
}

func TestUsers_RequireAdmin(t *testing.T) {
	s := setupTestServer(t)
	token, id := s.register(t, "mia@example.com")

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/users/admin/stats"},
		{http.MethodGet, "/api/users/" + id},
		{http.MethodPut, "/api/users/" + id},
		{http.MethodDelete, "/api/users/" + id},
	} {
		resp := s.do(t, route.method, route.path, token, gin.H{})
		assert.Equal(t, http.StatusForbidden, resp.Code, "%s %s", route.method, route.path)
		assert.Equal(t, "User role user is not authorized to access this route", resp.Body["error"])
	}
}

func TestUsers_AdminOperations(t *testing.T) {
	s := setupTestServer(t)
	adminToken, adminID := s.registerAdmin(t, "root@example.com")
	_, memberID := s.register(t, "nina@example.com")
	s.register(t, "omar@example.com")

	resp := s.do(t, http.MethodPut, "/api/users/"+adminID, adminToken, gin.H{"isActive": false})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "You cannot deactivate your own account", resp.Body["error"])
	resp = s.do(t, http.MethodGet, "/api/users/"+adminID, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, true, resp.Body["data"].(map[string]any)["isActive"])

	resp = s.do(t, http.MethodDelete, "/api/users/"+adminID, adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "You cannot delete your own account", resp.Body["error"])

	resp = s.do(t, http.MethodPut, "/api/users/"+memberID, adminToken, gin.H{"email": "omar@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Email already exists", resp.Body["error"])

	resp = s.do(t, http.MethodPut, "/api/users/"+memberID, adminToken, gin.H{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, fieldsOf(resp.Body), "role")

	resp = s.do(t, http.MethodPut, "/api/users/"+memberID, adminToken, gin.H{"isActive": "nope"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, fieldsOf(resp.Body), "isActive")

	resp = s.do(t, http.MethodPut, "/api/users/"+memberID, adminToken, gin.H{"isActive": false, "name": "Nina N"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Raw)
	data := resp.Body["data"].(map[string]any)
	assert.Equal(t, false, data["isActive"])
	assert.Equal(t, "Nina N", data["name"])

	resp = s.do(t, http.MethodGet, "/api/users?active=false", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, float64(1), resp.Body["total"])

	resp = s.do(t, http.MethodGet, "/api/users?active=maybe", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, fieldsOf(resp.Body), "active")

	resp = s.do(t, http.MethodGet, "/api/users/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, map[string]any{
		"totalUsers":    float64(3),
		"activeUsers":   float64(2),
		"inactiveUsers": float64(1),
		"adminUsers":    float64(1),
		"recentUsers":   float64(3),
	}, resp.Body["data"])

	resp = s.do(t, http.MethodGet, "/api/users/not-a-uuid", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = s.do(t, http.MethodDelete, "/api/users/"+memberID, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"success":true,"message":"User deleted successfully"}`, resp.Raw)

	resp = s.do(t, http.MethodGet, "/api/users/"+memberID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHealth(t *testing.T) {
	var storeErr error
	s := setupTestServer(t,
		HealthCheck{Name: "database", Critical: true, Ping: func(context.Context) error { return storeErr }},
		HealthCheck{Name: "redis", Ping: func(context.Context) error { return errors.New("down") }},
	)

	resp := s.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "OK", resp.Body["status"])

	resp = s.do(t, http.MethodGet, "/api/health/ping", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "pong", resp.Raw)

	resp = s.do(t, http.MethodGet, "/api/health/detailed", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, map[string]any{"database": "OK", "redis": "ERROR"}, resp.Body["checks"])

	storeErr = errors.New("connection refused")
	resp = s.do(t, http.MethodGet, "/api/health/detailed", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Equal(t, "ERROR", resp.Body["status"])
}

func TestPaginationLinks(t *testing.T) {
	tests := []struct {
		name  string
		page  models.Pagination
		total int64
		want  pagination
	}{
		{name: "single page", page: models.NewPagination(1, 10), total: 5, want: pagination{}},
		{name: "first of many", page: models.NewPagination(1, 10), total: 25, want: pagination{Next: &pageLink{Page: 2, Limit: 10}}},
		{name: "exact boundary", page: models.NewPagination(2, 10), total: 20, want: pagination{Prev: &pageLink{Page: 1, Limit: 10}}},
		{name: "middle", page: models.NewPagination(2, 5), total: 11, want: pagination{
			Next: &pageLink{Page: 3, Limit: 5},
			Prev: &pageLink{Page: 1, Limit: 5},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newPagination(tt.page, tt.total))
		})
	}
}
