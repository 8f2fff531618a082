package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

type UserQuery struct {
	Active *bool
	Page   int
	Limit  int
}

func (q UserQuery) params() map[string]string {
	params := make(map[string]string)
	if q.Active != nil {
		params["active"] = strconv.FormatBool(*q.Active)
	}
	if q.Page > 0 {
		params["page"] = strconv.Itoa(q.Page)
	}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	return params
}

type UserPatch struct {
	Name     *string      `json:"name,omitempty"`
	Email    *string      `json:"email,omitempty"`
	Role     *models.Role `json:"role,omitempty"`
	IsActive *bool        `json:"isActive,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context, query UserQuery) (*List[*models.User], error) {
	env, err := send[[]*models.User](ctx, c, http.MethodGet, "/users", nil, query.params())
	if err != nil {
		return nil, err
	}
	return toList(env), nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	env, err := send[*models.User](ctx, c, http.MethodGet, "/users/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	env, err := send[*models.User](ctx, c, http.MethodPut, "/users/"+id, patch, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := send[any](ctx, c, http.MethodDelete, "/users/"+id, nil, nil)
	return err
}

func (c *Client) UserStats(ctx context.Context) (*models.UserStats, error) {
	env, err := send[*models.UserStats](ctx, c, http.MethodGet, "/users/admin/stats", nil, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}
