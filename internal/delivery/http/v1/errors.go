package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	serverErrorMessage        = "Server error"
	notAuthorizedMessage      = "Not authorized to access this route"
	invalidRequestBodyMessage = "Invalid request body"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type apiError struct {
	Code    int
	Message string
	Fields  []fieldError
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	if len(err.Fields) > 0 {
		c.AbortWithStatusJSON(err.Code, gin.H{
			"success": false,
			"errors":  err.Fields,
		})
		return
	}
	c.AbortWithStatusJSON(err.Code, gin.H{
		"success": false,
		"error":   err.Message,
	})
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newValidationError(fields []fieldError) apiError {
	return apiError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Fields:  fields,
	}
}

func newUnauthorizedError() apiError {
	return newAPIError(http.StatusUnauthorized, notAuthorizedMessage)
}

func newForbiddenError(message string) apiError {
	return newAPIError(http.StatusForbidden, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newServerError() apiError {
	return newAPIError(http.StatusInternalServerError, serverErrorMessage)
}
