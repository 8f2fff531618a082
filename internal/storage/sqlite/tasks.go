package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/storage"
)

func (s *Store) ownedTasks(ctx context.Context, ownerID string) *gorm.DB {
	return s.db.WithContext(ctx).Model(&taskRecord{}).Where("user_id = ?", ownerID)
}

func (s *Store) ListTasks(ctx context.Context, ownerID string, filter models.TaskFilter, page models.Pagination) ([]*models.Task, int64, error) {
	query := s.ownedTasks(ctx, ownerID)
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", string(filter.Priority))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	var records []taskRecord
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*models.Task, 0, len(records))
	for i := range records {
		tasks = append(tasks, records[i].toModel())
	}
	return tasks, total, nil
}

func (s *Store) GetTask(ctx context.Context, ownerID, id string) (*models.Task, error) {
	var record taskRecord
	if err := s.ownedTasks(ctx, ownerID).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to get task: %w", translateError(err))
	}
	return record.toModel(), nil
}

func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	if err := s.db.WithContext(ctx).Create(newTaskRecord(task)).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (s *Store) UpdateTask(ctx context.Context, task *models.Task) error {
	record := newTaskRecord(task)
	result := s.ownedTasks(ctx, task.UserID).
		Where("id = ?", task.ID).
		Select("title", "description", "status", "priority", "due_date", "tags", "completed_at", "updated_at").
		Updates(record)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, ownerID, id string) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&taskRecord{})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type groupRow struct {
	GroupKey string
	Count    int64
}

func (s *Store) TaskStats(ctx context.Context, ownerID string) (*models.TaskStats, error) {
	byStatus, err := s.groupTasks(ctx, ownerID, "status")
	if err != nil {
		return nil, err
	}
	byPriority, err := s.groupTasks(ctx, ownerID, "priority")
	if err != nil {
		return nil, err
	}

	var total int64
	if err = s.ownedTasks(ctx, ownerID).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	return &models.TaskStats{
		StatusStats:   storage.SortGroups(models.Statuses, byStatus),
		PriorityStats: storage.SortGroups(models.Priorities, byPriority),
		TotalTasks:    total,
	}, nil
}

// column is always a constant from TaskStats, never user input.
func (s *Store) groupTasks(ctx context.Context, ownerID, column string) (map[string]int64, error) {
	var rows []groupRow
	err := s.ownedTasks(ctx, ownerID).
		Select(column + " AS group_key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group tasks by %s: %w", column, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.GroupKey] = r.Count
	}
	return counts, nil
}
