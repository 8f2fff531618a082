package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/services"
)

const invalidTaskIDMessage = "Invalid task ID"

var taskMessages = fieldMessages{
	"title":       "Title is required and must be between 1 and 100 characters",
	"description": "Description cannot exceed 500 characters",
	"status":      "Invalid status value",
	"priority":    "Invalid priority value",
	"dueDate":     "Invalid due date format",
	"tags":        "Tags must be an array",
}

var updateTaskMessages = fieldMessages{
	"title":       "Title must be between 1 and 100 characters",
	"description": taskMessages["description"],
	"status":      taskMessages["status"],
	"priority":    taskMessages["priority"],
	"dueDate":     taskMessages["dueDate"],
	"tags":        taskMessages["tags"],
}

type listTasksQuery struct {
	Status   string `form:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority string `form:"priority" validate:"omitempty,oneof=low medium high"`
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	user, ok := h.mustCurrentUser(c)
	if !ok {
		return
	}

	var query listTasksQuery
	fields := h.bindQuery(c, &query, taskMessages)
	page, pageFields := parsePage(c)
	if fields = append(fields, pageFields...); len(fields) > 0 {
		abort(c, newValidationError(fields))
		return
	}

	result, err := h.tasks.ListTasks(c, user.ID, models.TaskFilter{
		Status:   models.Status(query.Status),
		Priority: models.Priority(query.Priority),
	}, page)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to list tasks")
		abort(c, newServerError())
		return
	}

	c.JSON(http.StatusOK, newListResponse(result.Tasks, result.Total, result.Page))
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	user, ok := h.mustCurrentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, invalidTaskIDMessage)
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c, user.ID, id)
	if err != nil {
		h.abortTaskError(c, err, "failed to get task")
		return
	}
	respondData(c, http.StatusOK, task)
}

type createTaskRequest struct {
	Title       string       `json:"title" validate:"required,max=100"`
	Description string       `json:"description" validate:"max=500"`
	Status      string       `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority    string       `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     optionalDate `json:"dueDate"`
	Tags        []string     `json:"tags"`
}

func (r *createTaskRequest) prepare(messages fieldMessages) []fieldError {
	trimPtr(&r.Title)
	trimPtr(&r.Description)
	trimAll(r.Tags)

	var fields []fieldError
	if _, _, err := r.DueDate.resolve(); err != nil {
		fields = append(fields, fieldError{Field: "dueDate", Message: messages.lookup("dueDate")})
	}
	return fields
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	user, ok := h.mustCurrentUser(c)
	if !ok {
		return
	}

	var req createTaskRequest
	if err, ok := h.bindJSON(c, &req, taskMessages); !ok {
		abort(c, err)
		return
	}
	_, dueDate, _ := req.DueDate.resolve()

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.Status(req.Status),
		Priority:    models.Priority(req.Priority),
		DueDate:     dueDate,
		Tags:        req.Tags,
	})
	if err != nil {
		h.abortTaskError(c, err, "failed to create task")
		return
	}
	respondData(c, http.StatusCreated, task)
}

type updateTaskRequest struct {
	Title       *string      `json:"title" validate:"omitnil,min=1,max=100"`
	Description *string      `json:"description" validate:"omitnil,max=500"`
	Status      *string      `json:"status" validate:"omitnil,oneof=pending in-progress completed"`
	Priority    *string      `json:"priority" validate:"omitnil,oneof=low medium high"`
	DueDate     optionalDate `json:"dueDate"`
	Tags        *[]string    `json:"tags"`
}

func (r *updateTaskRequest) prepare(messages fieldMessages) []fieldError {
	trimPtr(r.Title)
	trimPtr(r.Description)
	if r.Tags != nil {
		trimAll(*r.Tags)
	}

	var fields []fieldError
	if _, _, err := r.DueDate.resolve(); err != nil {
		fields = append(fields, fieldError{Field: "dueDate", Message: messages.lookup("dueDate")})
	}
	return fields
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	user, ok := h.mustCurrentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, invalidTaskIDMessage)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err, ok := h.bindJSON(c, &req, updateTaskMessages); !ok {
		abort(c, err)
		return
	}
	setDueDate, dueDate, _ := req.DueDate.resolve()

	params := services.UpdateTaskParams{
		ID:          id,
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		SetDueDate:  setDueDate,
		DueDate:     dueDate,
		Tags:        req.Tags,
	}
	if req.Status != nil {
		status := models.Status(*req.Status)
		params.Status = &status
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		params.Priority = &priority
	}

	task, err := h.tasks.UpdateTask(c, params)
	if err != nil {
		h.abortTaskError(c, err, "failed to update task")
		return
	}
	respondData(c, http.StatusOK, task)
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	user, ok := h.mustCurrentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, invalidTaskIDMessage)
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(c, user.ID, id); err != nil {
		h.abortTaskError(c, err, "failed to delete task")
		return
	}
	c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "Task deleted successfully",
	})
}

func (h *handlerImpl) HandleGetTaskStats(c *gin.Context) {
	user, ok := h.mustCurrentUser(c)
	if !ok {
		return
	}

	stats, err := h.tasks.GetTaskStats(c, user.ID)
	if err != nil {
		h.abortTaskError(c, err, "failed to get task stats")
		return
	}
	if stats.StatusStats == nil {
		stats.StatusStats = []models.GroupCount{}
	}
	if stats.PriorityStats == nil {
		stats.PriorityStats = []models.GroupCount{}
	}
	respondData(c, http.StatusOK, stats)
}

func (h *handlerImpl) abortTaskError(c *gin.Context, err error, msg string) {
	if errors.Is(err, services.ErrTaskNotFound) {
		abort(c, newNotFoundError("Task not found"))
		return
	}

	h.logger.Error().
		Err(err).
		Msg(msg)
	abort(c, newServerError())
}
