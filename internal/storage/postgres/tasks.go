package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/storage"
)

const taskColumns = `id,
       user_id,
       title,
       description,
       status,
       priority,
       due_date,
       tags,
       completed_at,
       created_at,
       updated_at`

func scanTask(row pgx.Row) (*models.Task, error) {
	task := new(models.Task)
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.Tags,
		&task.CompletedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}
	return task, nil
}

func (s *Store) ListTasks(ctx context.Context, ownerID string, filter models.TaskFilter, page models.Pagination) ([]*models.Task, int64, error) {
	const countTasksQuery = `
SELECT COUNT(*)
FROM tasks
WHERE user_id = $1
  AND ($2::text = '' OR status = $2)
  AND ($3::text = '' OR priority = $3)
`
	var total int64
	err := s.pool.QueryRow(
		ctx,
		countTasksQuery,
		ownerID,
		string(filter.Status),
		string(filter.Priority),
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	const selectTasksQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE user_id = $1
  AND ($2::text = '' OR status = $2)
  AND ($3::text = '' OR priority = $3)
ORDER BY created_at DESC, id DESC
LIMIT $4 OFFSET $5
`
	rows, err := s.pool.Query(
		ctx,
		selectTasksQuery,
		ownerID,
		string(filter.Status),
		string(filter.Priority),
		page.Limit,
		page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0, page.Limit)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate over tasks: %w", err)
	}
	return tasks, total, nil
}

func (s *Store) GetTask(ctx context.Context, ownerID, id string) (*models.Task, error) {
	const selectTaskQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE id = $1 AND user_id = $2
`
	task, err := scanTask(s.pool.QueryRow(ctx, selectTaskQuery, id, ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to select task: %w", translateError(err))
	}
	return task, nil
}

func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (id,
                   user_id,
                   title,
                   description,
                   status,
                   priority,
                   due_date,
                   tags,
                   completed_at,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`
	_, err := s.pool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		task.DueDate,
		nonNilTags(task.Tags),
		task.CompletedAt,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (s *Store) UpdateTask(ctx context.Context, task *models.Task) error {
	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    status = $3,
    priority = $4,
    due_date = $5,
    tags = $6,
    completed_at = $7,
    updated_at = $8
WHERE id = $9 AND user_id = $10
`
	tag, err := s.pool.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		task.DueDate,
		nonNilTags(task.Tags),
		task.CompletedAt,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, ownerID, id string) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND user_id = $2
`
	tag, err := s.pool.Exec(ctx, deleteTaskQuery, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) TaskStats(ctx context.Context, ownerID string) (*models.TaskStats, error) {
	const groupByStatusQuery = `
SELECT status, COUNT(*)
FROM tasks
WHERE user_id = $1
GROUP BY status
`
	byStatus, err := s.groupTasks(ctx, groupByStatusQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to group tasks by status: %w", err)
	}

	const groupByPriorityQuery = `
SELECT priority, COUNT(*)
FROM tasks
WHERE user_id = $1
GROUP BY priority
`
	byPriority, err := s.groupTasks(ctx, groupByPriorityQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to group tasks by priority: %w", err)
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	return &models.TaskStats{
		StatusStats:   storage.SortGroups(models.Statuses, byStatus),
		PriorityStats: storage.SortGroups(models.Priorities, byPriority),
		TotalTasks:    total,
	}, nil
}

func (s *Store) groupTasks(ctx context.Context, query, ownerID string) (map[string]int64, error) {
	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			key   string
			count int64
		)
		if err = rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
