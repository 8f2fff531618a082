package models

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every task status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid status: %q", s)
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every task priority in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	default:
		return "", fmt.Errorf("invalid priority: %q", s)
	}
}

const (
	TaskTitleMaxLength       = 100
	TaskDescriptionMaxLength = 500
)

type Task struct {
	ID          string     `json:"_id"`
	UserID      string     `json:"user"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// SetStatus changes the status and keeps CompletedAt consistent with it:
// CompletedAt is set iff the status is StatusCompleted.
func (t *Task) SetStatus(status Status, now time.Time) {
	t.Status = status
	if status != StatusCompleted {
		t.CompletedAt = nil
		return
	}
	if t.CompletedAt == nil {
		completedAt := now
		t.CompletedAt = &completedAt
	}
}

// TaskFilter is a conjunction of optional exact matches.
// Zero values leave the term unconstrained.
type TaskFilter struct {
	Status   Status
	Priority Priority
}

type GroupCount struct {
	ID    string `json:"_id"`
	Count int64  `json:"count"`
}

type TaskStats struct {
	StatusStats   []GroupCount `json:"statusStats"`
	PriorityStats []GroupCount `json:"priorityStats"`
	TotalTasks    int64        `json:"totalTasks"`
}
