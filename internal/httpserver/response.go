package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"jerseyshop/internal/domain"
)

// envelope is the body of every API response.
type envelope struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, envelope{Success: true, Data: data, Message: message})
}

func respondPage[T any](c *gin.Context, page domain.Page[T]) {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	p := page.Pagination
	c.JSON(http.StatusOK, envelope{Success: true, Data: items, Pagination: &p})
}

// writeError maps an application error to its status and a safe message.
// Internal errors are logged with their cause and reported generically.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	code := domain.ErrorCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("op", domain.ErrorOp(err)),
			slog.String("path", c.Request.URL.Path),
			slog.String("request_id", requestIDFrom(c)),
			slog.Any("error", err),
		)
	}
	c.AbortWithStatusJSON(status, envelope{Success: false, Message: domain.ErrorMessage(err)})
}

func statusFor(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// bindJSON decodes the request body into dst and runs its binding rules.
// An empty body leaves dst untouched.
func bindJSON(c *gin.Context, op string, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return domain.Invalid(op, validationMessage(verrs))
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.Invalid(op, fmt.Sprintf("%s has the wrong type", typeErr.Field))
	}
	return domain.Invalid(op, "Invalid JSON body")
}

func validationMessage(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email address")
		case "url":
			msgs = append(msgs, field+" must be a valid URL")
		case "gt", "gte", "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "lt", "lte", "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", field, fe.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

var jsonFieldNames sync.Once

// useJSONFieldNames makes validation errors name fields as clients send them.
func useJSONFieldNames() {
	jsonFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
