package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/services"
)

const invalidCredentialsMessage = "Invalid credentials"

var authMessages = fieldMessages{
	"name":     "Name must be between 2 and 50 characters",
	"email":    "Please provide a valid email",
	"password": "Password must be at least 6 characters",
	"avatar":   "Avatar cannot exceed 2048 characters",
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=255"`
}

func (r *registerRequest) prepare(fieldMessages) []fieldError {
	trimPtr(&r.Name)
	r.Email = services.NormalizeEmail(r.Email)
	return nil
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req registerRequest
	if err, ok := h.bindJSON(c, &req, authMessages); !ok {
		abort(c, err)
		return
	}

	result, err := h.auth.Register(c, services.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			abort(c, newBadRequestError("User already exists"))
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to register user")
			abort(c, newServerError())
		}
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		Success: true,
		Token:   result.Token,
		Data:    result.User,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) prepare(fieldMessages) []fieldError {
	r.Email = services.NormalizeEmail(r.Email)
	return nil
}

var loginMessages = fieldMessages{
	"email":    "Please provide a valid email",
	"password": "Password is required",
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	if err, ok := h.bindJSON(c, &req, loginMessages); !ok {
		abort(c, err)
		return
	}

	result, err := h.auth.Login(c, services.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			abort(c, newAPIError(http.StatusUnauthorized, invalidCredentialsMessage))
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to login")
			abort(c, newServerError())
		}
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Success: true,
		Token:   result.Token,
		Data:    result.User,
	})
}

func (h *handlerImpl) HandleGetMe(c *gin.Context) {
	user, ok := h.mustCurrentUser(c)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name   *string `json:"name" validate:"omitnil,min=2,max=50"`
	Email  *string `json:"email" validate:"omitnil,email,max=255"`
	Avatar *string `json:"avatar" validate:"omitnil,max=2048"`
}

func (r *updateProfileRequest) prepare(fieldMessages) []fieldError {
	trimPtr(r.Name)
	trimPtr(r.Avatar)
	if r.Email != nil {
		*r.Email = services.NormalizeEmail(*r.Email)
	}
	return nil
}

func (h *handlerImpl) HandleUpdateProfile(c *gin.Context) {
	user, ok := h.mustCurrentUser(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err, ok := h.bindJSON(c, &req, authMessages); !ok {
		abort(c, err)
		return
	}

	updated, err := h.auth.UpdateProfile(c, services.UpdateProfileParams{
		UserID: user.ID,
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
	})
	if err != nil {
		h.abortUserError(c, err, "failed to update profile")
		return
	}
	respondData(c, http.StatusOK, updated)
}

// abortUserError maps account service errors to responses.
func (h *handlerImpl) abortUserError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		abort(c, newNotFoundError("User not found"))
	case errors.Is(err, services.ErrDuplicateEmail):
		abort(c, newBadRequestError("Email already exists"))
	case errors.Is(err, services.ErrSelfDeactivation):
		abort(c, newBadRequestError("You cannot deactivate your own account"))
	case errors.Is(err, services.ErrSelfDeletion):
		abort(c, newBadRequestError("You cannot delete your own account"))
	default:
		h.logger.Error().
			Err(err).
			Msg(msg)
		abort(c, newServerError())
	}
}
