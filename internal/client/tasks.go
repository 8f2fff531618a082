package client

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

// TaskQuery holds list parameters. Zero values are not sent.
type TaskQuery struct {
	Status   models.Status
	Priority models.Priority
	Page     int
	Limit    int
}

func (q TaskQuery) params() map[string]string {
	params := make(map[string]string)
	if q.Status != "" {
		params["status"] = string(q.Status)
	}
	if q.Priority != "" {
		params["priority"] = string(q.Priority)
	}
	if q.Page > 0 {
		params["page"] = strconv.Itoa(q.Page)
	}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	return params
}

type TaskInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Status      models.Status   `json:"status,omitempty"`
	Priority    models.Priority `json:"priority,omitempty"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
}

// TaskPatch holds the fields to change; nil fields are omitted.
type TaskPatch struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Status      *models.Status   `json:"status,omitempty"`
	Priority    *models.Priority `json:"priority,omitempty"`
	DueDate     *time.Time       `json:"dueDate,omitempty"`
	Tags        *[]string        `json:"tags,omitempty"`
}

func (c *Client) ListTasks(ctx context.Context, query TaskQuery) (*List[*models.Task], error) {
	env, err := send[[]*models.Task](ctx, c, http.MethodGet, "/tasks", nil, query.params())
	if err != nil {
		return nil, err
	}
	return toList(env), nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*models.Task, error) {
	env, err := send[*models.Task](ctx, c, http.MethodGet, "/tasks/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) CreateTask(ctx context.Context, input TaskInput) (*models.Task, error) {
	env, err := send[*models.Task](ctx, c, http.MethodPost, "/tasks", input, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*models.Task, error) {
	env, err := send[*models.Task](ctx, c, http.MethodPut, "/tasks/"+id, patch, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ClearDueDate removes a task's due date.
func (c *Client) ClearDueDate(ctx context.Context, id string) (*models.Task, error) {
	body := map[string]any{"dueDate": nil}
	env, err := send[*models.Task](ctx, c, http.MethodPut, "/tasks/"+id, body, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, err := send[any](ctx, c, http.MethodDelete, "/tasks/"+id, nil, nil)
	return err
}

func (c *Client) TaskStats(ctx context.Context) (*models.TaskStats, error) {
	env, err := send[*models.TaskStats](ctx, c, http.MethodGet, "/tasks/user/stats", nil, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}
