package v1

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/services"
)

const userCtxKey = "user"

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Debug().Msg("authorization header required")
		abort(c, newUnauthorizedError())
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix || strings.TrimSpace(parts[1]) == "" {
		h.logger.Debug().Msg("invalid authorization header")
		abort(c, newUnauthorizedError())
		return
	}

	user, err := h.auth.Authenticate(c, strings.TrimSpace(parts[1]))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthenticated),
			errors.Is(err, services.ErrAccountDisabled):
			abort(c, newUnauthorizedError())
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to authenticate")
			abort(c, newServerError())
		}
		return
	}

	c.Set(userCtxKey, user)
	c.Next()
}

// RequireRole lets the request through only if the authenticated
// account has one of the roles. It must run after HandleAuthMiddleware.
func (h *handlerImpl) RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			abort(c, newUnauthorizedError())
			return
		}

		if !user.HasRole(roles...) {
			h.logger.Warn().
				Str("user_id", user.ID).
				Str("role", string(user.Role)).
				Str("path", c.FullPath()).
				Msg("role not authorized")
			abort(c, newForbiddenError(fmt.Sprintf(
				"User role %s is not authorized to access this route", user.Role)))
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userCtxKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

// mustCurrentUser aborts with 401 when no account is attached.
func (h *handlerImpl) mustCurrentUser(c *gin.Context) (*models.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		h.logger.Error().Msg("no user found in context")
		abort(c, newUnauthorizedError())
		return nil, false
	}
	return user, true
}
