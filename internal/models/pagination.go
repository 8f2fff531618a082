package models

import "math"

const (
	DefaultPage      = 1
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type Pagination struct {
	Page  int
	Limit int
}

// MaxPage is the highest page whose end offset fits in an int.
func MaxPage(limit int) int {
	if limit < 1 {
		limit = DefaultPageLimit
	}
	return math.MaxInt / limit
}

func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if maxPage := MaxPage(limit); page > maxPage {
		page = maxPage
	}
	return Pagination{Page: page, Limit: limit}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Pagination) HasNext(total int64) bool {
	return int64(p.Offset()+p.Limit) < total
}

func (p Pagination) HasPrev() bool {
	return p.Page > 1
}
