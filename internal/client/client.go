// Package client is a typed REST client for the task manager API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

const DefaultTimeout = 10 * time.Second

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, strings.Join(parts, "; "))
}

type errorBody struct {
	Error  string       `json:"error"`
	Errors []FieldError `json:"errors"`
}

type PageLink struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageLink `json:"next,omitempty"`
	Prev *PageLink `json:"prev,omitempty"`
}

type envelope[T any] struct {
	Success    bool       `json:"success"`
	Token      string     `json:"token"`
	Message    string     `json:"message"`
	Count      int        `json:"count"`
	Total      int64      `json:"total"`
	Pagination Pagination `json:"pagination"`
	Data       T          `json:"data"`
}

type List[T any] struct {
	Items      []T
	Count      int
	Total      int64
	Pagination Pagination
}

type Client struct {
	http *resty.Client

	mu    sync.RWMutex
	token string
}

type Option func(*resty.Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *resty.Client) {
		c.SetTimeout(timeout)
	}
}

// New creates a client for the API mounted at baseURL, e.g.
// http://localhost:5000/api.
func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(DefaultTimeout).
		SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(rc)
	}
	return &Client{http: rc}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func send[T any](ctx context.Context, c *Client, method, path string, body any, query map[string]string) (*envelope[T], error) {
	var (
		out     envelope[T]
		errBody errorBody
	)
	req := c.request(ctx).
		SetResult(&out).
		SetError(&errBody)
	if body != nil {
		req.SetBody(body)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("failed to %s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr := &APIError{
			StatusCode: resp.StatusCode(),
			Message:    errBody.Error,
			Fields:     errBody.Errors,
		}
		if apiErr.Message == "" && len(apiErr.Fields) == 0 {
			apiErr.Message = http.StatusText(resp.StatusCode())
		}
		return nil, apiErr
	}
	return &out, nil
}

func toList[T any](env *envelope[[]T]) *List[T] {
	return &List[T]{
		Items:      env.Data,
		Count:      env.Count,
		Total:      env.Total,
		Pagination: env.Pagination,
	}
}

type AuthResult struct {
	Token string
	User  *models.User
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and keeps its token for later calls.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	env, err := send[*models.User](ctx, c, http.MethodPost, "/auth/register", req, nil)
	if err != nil {
		return nil, err
	}
	c.SetToken(env.Token)
	return &AuthResult{Token: env.Token, User: env.Data}, nil
}

// Login verifies credentials and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	env, err := send[*models.User](ctx, c, http.MethodPost, "/auth/login", req, nil)
	if err != nil {
		return nil, err
	}
	c.SetToken(env.Token)
	return &AuthResult{Token: env.Token, User: env.Data}, nil
}

// Logout forgets the token. The server keeps no session.
func (c *Client) Logout() {
	c.SetToken("")
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	env, err := send[*models.User](ctx, c, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

type ProfileUpdate struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error) {
	env, err := send[*models.User](ctx, c, http.MethodPut, "/auth/profile", update, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}
