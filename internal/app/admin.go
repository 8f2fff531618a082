package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/adanyl0v/go-task-manager/internal/config"
	"github.com/adanyl0v/go-task-manager/internal/services"
)

var ErrAdminExists = errors.New("an account with this email already exists")

type adminParams struct {
	Name     string `validate:"required,min=2,max=50"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=6,max=255"`
}

// CreateAdmin creates an active admin account in the configured store.
func CreateAdmin(ctx context.Context, name, email, password string) (string, error) {
	params := adminParams{
		Name:     strings.TrimSpace(name),
		Email:    services.NormalizeEmail(email),
		Password: password,
	}
	if err := validator.New().Struct(params); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return "", fmt.Errorf("invalid %s: failed %q rule", strings.ToLower(verrs[0].Field()), verrs[0].Tag())
		}
		return "", err
	}

	cfg := config.Global().JWT
	authService := services.NewAuthService(
		globalLogger,
		globalStore,
		cfg.Issuer,
		[]byte(cfg.SigningKey),
		cfg.AccessTokenTTL,
	)

	user, err := authService.CreateAdmin(ctx, services.RegisterParams{
		Name:     params.Name,
		Email:    params.Email,
		Password: params.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			return "", ErrAdminExists
		}
		return "", err
	}
	return user.ID, nil
}
