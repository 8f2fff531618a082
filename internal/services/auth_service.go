package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/storage"
)

type authServiceImpl struct {
	logger            zerolog.Logger
	users             storage.UserRepository
	jwtIssuer         string
	jwtSigningKey     []byte
	jwtAccessTokenTTL time.Duration
}

func NewAuthService(
	logger zerolog.Logger,
	users storage.UserRepository,
	jwtIssuer string,
	jwtSigningKey []byte,
	jwtAccessTokenTTL time.Duration,
) AuthService {
	return &authServiceImpl{
		logger:            logger,
		users:             users,
		jwtIssuer:         jwtIssuer,
		jwtSigningKey:     jwtSigningKey,
		jwtAccessTokenTTL: jwtAccessTokenTTL,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	user, err := s.createUser(ctx, params, models.RoleUser)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.generateAccessToken(user.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to generate access token")
		return nil, err
	}

	s.logger.Info().
		Str("operation", "register").
		Str("user_id", user.ID).
		Str("actor_id", user.ID).
		Msg("registered user")
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *authServiceImpl) CreateAdmin(ctx context.Context, params RegisterParams) (*models.User, error) {
	user, err := s.createUser(ctx, params, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("operation", "create_admin").
		Str("user_id", user.ID).
		Msg("created admin")
	return user, nil
}

func (s *authServiceImpl) createUser(ctx context.Context, params RegisterParams, role models.Role) (*models.User, error) {
	passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user id")
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        userUUID.String(),
		Name:      strings.TrimSpace(params.Name),
		Email:     NormalizeEmail(params.Email),
		Password:  passwordHash,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			s.logger.Warn().
				Str("email", user.Email).
				Msg("user already exists")
			return nil, ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Str("email", user.Email).
			Msg("failed to create user")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("created user")
	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	email := NormalizeEmail(params.Email)
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn().
				Str("email", email).
				Msg("user not found")
			return nil, ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Str("email", email).
			Msg("failed to get user by email")
		return nil, err
	}

	match, err := argon2id.ComparePasswordAndHash(params.Password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to compare password")
		return nil, err
	}
	if !match {
		s.logger.Warn().
			Str("user_id", user.ID).
			Msg("password mismatch")
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.logger.Warn().
			Str("user_id", user.ID).
			Msg("login attempt on disabled account")
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	err = s.users.TouchLastLogin(ctx, user.ID, now)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to update last login")
		return nil, err
	}
	user.LastLogin = &now
	user.UpdatedAt = now

	token, expiresAt, err := s.generateAccessToken(user.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to generate access token")
		return nil, err
	}

	s.logger.Info().
		Str("operation", "login").
		Str("user_id", user.ID).
		Str("actor_id", user.ID).
		Msg("logged in")
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.parseAccessToken(token)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Msg("invalid access token")
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn().
				Str("user_id", claims.Subject).
				Msg("token subject not found")
			return nil, ErrUnauthenticated
		}

		s.logger.Error().
			Err(err).
			Str("user_id", claims.Subject).
			Msg("failed to get user by id")
		return nil, err
	}

	if !user.IsActive {
		s.logger.Warn().
			Str("user_id", user.ID).
			Msg("account disabled")
		return nil, ErrAccountDisabled
	}
	return user, nil
}

func (s *authServiceImpl) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, params.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", params.UserID).
			Msg("failed to get user by id")
		return nil, err
	}

	if params.Name != nil {
		user.Name = strings.TrimSpace(*params.Name)
	}
	if params.Email != nil {
		user.Email = NormalizeEmail(*params.Email)
	}
	if params.Avatar != nil {
		user.Avatar = strings.TrimSpace(*params.Avatar)
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
			Str("user_id", user.ID).
			Msg("failed to update profile")
		return nil, err
	}

	s.logger.Info().
		Str("operation", "update_profile").
		Str("user_id", user.ID).
		Str("actor_id", user.ID).
		Msg("updated profile")
	return user, nil
}

func (s *authServiceImpl) parseAccessToken(token string) (*jwt.RegisteredClaims, error) {
	t, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.jwtSigningKey, nil
		},
		jwt.WithIssuer(s.jwtIssuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := t.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

func (s *authServiceImpl) generateAccessToken(userID string) (string, time.Time, error) {
	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate id: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(s.jwtAccessTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        tokenUUID.String(),
		Issuer:    s.jwtIssuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString(s.jwtSigningKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
