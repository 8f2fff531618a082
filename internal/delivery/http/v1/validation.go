package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

const defaultFieldMessage = "Invalid value"

// fieldMessages maps a JSON field name to the message reported for any
// failed rule on it.
type fieldMessages map[string]string

func (m fieldMessages) lookup(field string) string {
	if msg, ok := m[field]; ok {
		return msg
	}
	return defaultFieldMessage
}

// preparer is implemented by requests that trim their fields and check
// rules that struct tags cannot express.
type preparer interface {
	prepare(messages fieldMessages) []fieldError
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})
	return v
}

// bindJSON decodes, prepares and validates a request body. A JSON type
// mismatch is reported as an error on the offending field.
func (h *handlerImpl) bindJSON(c *gin.Context, req any, messages fieldMessages) (apiError, bool) {
	err := c.ShouldBindJSON(req)
	if err != nil && !errors.Is(err, io.EOF) {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return newValidationError([]fieldError{{
				Field:   typeErr.Field,
				Message: messages.lookup(typeErr.Field),
			}}), false
		}

		h.logger.Debug().
			Err(err).
			Msg("failed to bind request body")
		return newBadRequestError(invalidRequestBodyMessage), false
	}

	var fields []fieldError
	if p, ok := req.(preparer); ok {
		fields = p.prepare(messages)
	}
	fields = append(fields, h.validateStruct(req, messages)...)
	if len(fields) > 0 {
		return newValidationError(fields), false
	}
	return apiError{}, true
}

// bindQuery decodes and validates query parameters.
func (h *handlerImpl) bindQuery(c *gin.Context, req any, messages fieldMessages) []fieldError {
	if err := c.ShouldBindQuery(req); err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to bind query")
		return []fieldError{{Field: "query", Message: err.Error()}}
	}
	return h.validateStruct(req, messages)
}

func (h *handlerImpl) validateStruct(req any, messages fieldMessages) []fieldError {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []fieldError{{Message: err.Error()}}
	}

	fields := make([]fieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, fieldError{
			Field:   fe.Field(),
			Message: messages.lookup(fe.Field()),
		})
	}
	return fields
}

var pageMessages = fieldMessages{
	"page":  "Page must be a positive integer",
	"limit": "Limit must be between 1 and 100",
}

// parsePage reads the page and limit query parameters. Absent values
// fall back to the defaults; out of range values are rejected.
func parsePage(c *gin.Context) (models.Pagination, []fieldError) {
	var fields []fieldError
	page, limit := models.DefaultPage, models.DefaultPageLimit

	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fields = append(fields, fieldError{Field: "page", Message: pageMessages.lookup("page")})
		} else {
			page = n
		}
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > models.MaxPageLimit {
			fields = append(fields, fieldError{Field: "limit", Message: pageMessages.lookup("limit")})
		} else {
			limit = n
		}
	}
	if page > models.MaxPage(limit) {
		fields = append(fields, fieldError{Field: "page", Message: pageMessages.lookup("page")})
	}
	return models.NewPagination(page, limit), fields
}

// parseID rejects a path id that is not a UUID before any store access.
func parseID(c *gin.Context, message string) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abort(c, newValidationError([]fieldError{{Field: "id", Message: message}}))
		return "", false
	}
	return id.String(), true
}

var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

func parseDueDate(raw string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid due date: %q", raw)
}

// optionalDate keeps the raw dueDate so that an absent field, an
// explicit null and a value can be told apart.
type optionalDate json.RawMessage

func (d *optionalDate) UnmarshalJSON(b []byte) error {
	*d = append((*d)[:0], b...)
	return nil
}

// resolve reports whether the field was present and, if so, the parsed
// date, which is nil for null or an empty string.
func (d optionalDate) resolve() (set bool, value *time.Time, err error) {
	if len(d) == 0 {
		return false, nil, nil
	}
	if string(d) == "null" {
		return true, nil, nil
	}

	var raw string
	if err = json.Unmarshal(d, &raw); err != nil {
		return true, nil, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return true, nil, nil
	}

	t, err := parseDueDate(raw)
	if err != nil {
		return true, nil, err
	}
	return true, &t, nil
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func trimAll(ss []string) {
	for i := range ss {
		ss[i] = strings.TrimSpace(ss[i])
	}
}
