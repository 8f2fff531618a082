package store

import (
	"slices"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

type Pagination struct {
	Page    int
	Limit   int
	Total   int64
	HasNext bool
	HasPrev bool
}

type TaskFilters struct {
	Status   models.Status
	Priority models.Priority
	Search   string
}

type TaskState struct {
	Tasks      []*models.Task
	Stats      *models.TaskStats
	IsLoading  bool
	Error      string
	Pagination Pagination
	Filters    TaskFilters
}

func NewTaskState() TaskState {
	return TaskState{
		Tasks: []*models.Task{},
		Pagination: Pagination{
			Page:  models.DefaultPage,
			Limit: models.DefaultPageLimit,
		},
	}
}

func (s TaskState) Pending() TaskState {
	s.IsLoading = true
	s.Error = ""
	return s
}

func (s TaskState) Rejected(msg string) TaskState {
	s.IsLoading = false
	s.Error = msg
	return s
}

// Fetched replaces the task list with one page of results.
func (s TaskState) Fetched(tasks []*models.Task, total int64, hasNext, hasPrev bool) TaskState {
	s.IsLoading = false
	s.Tasks = slices.Clone(tasks)
	s.Pagination.Total = total
	s.Pagination.HasNext = hasNext
	s.Pagination.HasPrev = hasPrev
	return s
}

// Created puts a new task at the head of the list.
func (s TaskState) Created(task *models.Task) TaskState {
	tasks := make([]*models.Task, 0, len(s.Tasks)+1)
	tasks = append(tasks, task)
	s.Tasks = append(tasks, s.Tasks...)
	return s
}

// Updated replaces the task with the same ID. Unknown tasks are ignored.
func (s TaskState) Updated(task *models.Task) TaskState {
	i := slices.IndexFunc(s.Tasks, func(t *models.Task) bool { return t.ID == task.ID })
	if i < 0 {
		return s
	}
	s.Tasks = slices.Clone(s.Tasks)
	s.Tasks[i] = task
	return s
}

func (s TaskState) Deleted(id string) TaskState {
	s.Tasks = slices.DeleteFunc(slices.Clone(s.Tasks), func(t *models.Task) bool { return t.ID == id })
	return s
}

func (s TaskState) StatsLoaded(stats *models.TaskStats) TaskState {
	s.Stats = stats
	return s
}

// SetFilters merges non-empty fields into the current filters.
func (s TaskState) SetFilters(f TaskFilters) TaskState {
	if f.Status != "" {
		s.Filters.Status = f.Status
	}
	if f.Priority != "" {
		s.Filters.Priority = f.Priority
	}
	if f.Search != "" {
		s.Filters.Search = f.Search
	}
	return s
}

func (s TaskState) ClearFilters() TaskState {
	s.Filters = TaskFilters{}
	return s
}

// SetPage merges a positive page and limit into the pagination.
func (s TaskState) SetPage(page, limit int) TaskState {
	if page > 0 {
		s.Pagination.Page = page
	}
	if limit > 0 {
		s.Pagination.Limit = limit
	}
	return s
}

func (s TaskState) ClearError() TaskState {
	s.Error = ""
	return s
}
