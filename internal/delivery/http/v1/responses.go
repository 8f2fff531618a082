package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

type dataResponse[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	Data    *models.User `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type pageLink struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type pagination struct {
	Next *pageLink `json:"next,omitempty"`
	Prev *pageLink `json:"prev,omitempty"`
}

func newPagination(page models.Pagination, total int64) pagination {
	var p pagination
	if page.HasNext(total) {
		p.Next = &pageLink{Page: page.Page + 1, Limit: page.Limit}
	}
	if page.HasPrev() {
		p.Prev = &pageLink{Page: page.Page - 1, Limit: page.Limit}
	}
	return p
}

type listResponse[T any] struct {
	Success    bool       `json:"success"`
	Count      int        `json:"count"`
	Total      int64      `json:"total"`
	Pagination pagination `json:"pagination"`
	Data       []T        `json:"data"`
}

func newListResponse[T any](items []T, total int64, page models.Pagination) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{
		Success:    true,
		Count:      len(items),
		Total:      total,
		Pagination: newPagination(page, total),
		Data:       items,
	}
}

func respondData[T any](c *gin.Context, code int, data T) {
	c.JSON(code, dataResponse[T]{Success: true, Data: data})
}
