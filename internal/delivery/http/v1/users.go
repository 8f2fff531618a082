package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/services"
)

const invalidUserIDMessage = "Invalid user ID"

var userMessages = fieldMessages{
	"name":     "Name must be between 2 and 50 characters",
	"email":    "Please provide a valid email",
	"role":     "Invalid role value",
	"isActive": "isActive must be a boolean value",
	"active":   "Active must be a boolean value",
}

type listUsersQuery struct {
	Active string `form:"active" validate:"omitempty,boolean"`
}

func (h *handlerImpl) HandleGetUsers(c *gin.Context) {
	var query listUsersQuery
	fields := h.bindQuery(c, &query, userMessages)
	page, pageFields := parsePage(c)
	if fields = append(fields, pageFields...); len(fields) > 0 {
		abort(c, newValidationError(fields))
		return
	}

	var filter models.UserFilter
	if query.Active != "" {
		active, _ := strconv.ParseBool(query.Active)
		filter.Active = &active
	}

	result, err := h.users.ListUsers(c, filter, page)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list users")
		abort(c, newServerError())
		return
	}

	c.JSON(http.StatusOK, newListResponse(result.Users, result.Total, result.Page))
}

func (h *handlerImpl) HandleGetUser(c *gin.Context) {
	id, ok := parseID(c, invalidUserIDMessage)
	if !ok {
		return
	}

	user, err := h.users.GetUser(c, id)
	if err != nil {
		h.abortUserError(c, err, "failed to get user")
		return
	}
	respondData(c, http.StatusOK, user)
}

type updateUserRequest struct {
	Name     *string `json:"name" validate:"omitnil,min=2,max=50"`
	Email    *string `json:"email" validate:"omitnil,email,max=255"`
	Role     *string `json:"role" validate:"omitnil,oneof=user admin"`
	IsActive *bool   `json:"isActive"`
}

func (r *updateUserRequest) prepare(fieldMessages) []fieldError {
	trimPtr(r.Name)
	if r.Email != nil {
		*r.Email = services.NormalizeEmail(*r.Email)
	}
	return nil
}

func (h *handlerImpl) HandleUpdateUser(c *gin.Context) {
	actor, ok := h.mustCurrentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, invalidUserIDMessage)
	if !ok {
		return
	}

	var req updateUserRequest
	if err, ok := h.bindJSON(c, &req, userMessages); !ok {
		abort(c, err)
		return
	}

	params := services.UpdateUserParams{
		ActorID:  actor.ID,
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		IsActive: req.IsActive,
	}
	if req.Role != nil {
		role, err := models.ParseRole(*req.Role)
		if err != nil {
			abort(c, newValidationError([]fieldError{{Field: "role", Message: userMessages.lookup("role")}}))
			return
		}
		params.Role = &role
	}

	user, err := h.users.UpdateUser(c, params)
	if err != nil {
		h.abortUserError(c, err, "failed to update user")
		return
	}
	respondData(c, http.StatusOK, user)
}

func (h *handlerImpl) HandleDeleteUser(c *gin.Context) {
	actor, ok := h.mustCurrentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, invalidUserIDMessage)
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c, actor.ID, id); err != nil {
		h.abortUserError(c, err, "failed to delete user")
		return
	}
	c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "User deleted successfully",
	})
}

func (h *handlerImpl) HandleGetUserStats(c *gin.Context) {
	stats, err := h.users.GetUserStats(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get user stats")
		abort(c, newServerError())
		return
	}
	respondData(c, http.StatusOK, stats)
}
