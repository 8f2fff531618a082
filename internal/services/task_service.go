package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/storage"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	tasks  storage.TaskRepository
}

func NewTaskService(
	logger zerolog.Logger,
	tasks storage.TaskRepository,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		tasks:  tasks,
	}
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, ownerID string, filter models.TaskFilter, page models.Pagination) (*TaskPage, error) {
	tasks, total, err := s.tasks.ListTasks(ctx, ownerID, filter, page)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", ownerID).
			Msg("failed to list tasks")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Int64("total", total).
		Str("user_id", ownerID).
		Msg("listed tasks")

	return &TaskPage{Tasks: tasks, Total: total, Page: page}, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, ownerID, id string) (*models.Task, error) {
	task, err := s.tasks.GetTask(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug().
				Str("task_id", id).
				Str("user_id", ownerID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to get task")
		return nil, err
	}
	return task, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task id")
		return nil, err
	}

	status := params.Status
	if status == "" {
		status = models.StatusPending
	}
	priority := params.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	now := time.Now()
	task := &models.Task{
		ID:          taskUUID.String(),
		UserID:      params.UserID,
		Title:       strings.TrimSpace(params.Title),
		Description: strings.TrimSpace(params.Description),
		Priority:    priority,
		DueDate:     params.DueDate,
		Tags:        normalizeTags(params.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	task.SetStatus(status, now)

	err = s.tasks.CreateTask(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", task.UserID).
			Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().
		Str("operation", "create_task").
		Str("task_id", task.ID).
		Str("actor_id", task.UserID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	task, err := s.GetTask(ctx, params.UserID, params.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if params.Title != nil {
		task.Title = strings.TrimSpace(*params.Title)
	}
	if params.Description != nil {
		task.Description = strings.TrimSpace(*params.Description)
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}
	if params.SetDueDate {
		task.DueDate = params.DueDate
	}
	if params.Tags != nil {
		task.Tags = normalizeTags(*params.Tags)
	}
	if params.Status != nil {
		task.SetStatus(*params.Status, now)
	}
	task.UpdatedAt = now

	err = s.tasks.UpdateTask(ctx, task)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug().
				Str("task_id", params.ID).
				Str("user_id", params.UserID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Str("operation", "update_task").
		Str("task_id", task.ID).
		Str("actor_id", params.UserID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, ownerID, id string) error {
	err := s.tasks.DeleteTask(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug().
				Str("task_id", id).
				Str("user_id", ownerID).
				Msg("task not found")
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Str("operation", "delete_task").
		Str("task_id", id).
		Str("actor_id", ownerID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) GetTaskStats(ctx context.Context, ownerID string) (*models.TaskStats, error) {
	stats, err := s.tasks.TaskStats(ctx, ownerID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", ownerID).
			Msg("failed to aggregate task stats")
		return nil, err
	}
	return stats, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, strings.TrimSpace(tag))
	}
	return out
}
