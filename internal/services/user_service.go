package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/storage"
)

type userServiceImpl struct {
	logger zerolog.Logger
	users  storage.UserRepository
}

func NewUserService(
	logger zerolog.Logger,
	users storage.UserRepository,
) UserService {
	return &userServiceImpl{
		logger: logger,
		users:  users,
	}
}

func (s *userServiceImpl) ListUsers(ctx context.Context, filter models.UserFilter, page models.Pagination) (*UserPage, error) {
	users, total, err := s.users.ListUsers(ctx, filter, page)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to list users")
		return nil, err
	}
	return &UserPage{Users: users, Total: total, Page: page}, nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to get user")
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, params UpdateUserParams) (*models.User, error) {
	if params.IsActive != nil && !*params.IsActive && params.ID == params.ActorID {
		s.logger.Warn().
			Str("actor_id", params.ActorID).
			Msg("attempt to deactivate own account")
		return nil, ErrSelfDeactivation
	}

	user, err := s.GetUser(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		user.Name = strings.TrimSpace(*params.Name)
	}
	if params.Email != nil {
		user.Email = NormalizeEmail(*params.Email)
	}
	if params.Role != nil {
		user.Role = *params.Role
	}
	if params.IsActive != nil {
		user.IsActive = *params.IsActive
	}
	user.UpdatedAt = time.Now()

	err = s.users.UpdateUser(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicateEmail):
			return nil, ErrDuplicateEmail
		case errors.Is(err, storage.ErrNotFound):
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", params.ID).
			Msg("failed to update user")
		return nil, err
	}

	s.logger.Info().
		Str("operation", "update_user").
		Str("user_id", user.ID).
		Str("actor_id", params.ActorID).
		Msg("updated user")
	return user, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, actorID, id string) error {
	if actorID == id {
		s.logger.Warn().
			Str("actor_id", actorID).
			Msg("attempt to delete own account")
		return ErrSelfDeletion
	}

	err := s.users.DeleteUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to delete user")
		return err
	}

	s.logger.Info().
		Str("operation", "delete_user").
		Str("user_id", id).
		Str("actor_id", actorID).
		Msg("deleted user")
	return nil
}

func (s *userServiceImpl) GetUserStats(ctx context.Context) (*models.UserStats, error) {
	stats, err := s.users.UserStats(ctx, time.Now().Add(-RecentUsersWindow))
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to count users")
		return nil, err
	}
	return stats, nil
}
