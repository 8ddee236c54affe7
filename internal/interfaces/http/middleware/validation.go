package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stationery/backoffice/internal/interfaces/http/dto"
)

var setupValidatorOnce sync.Once

// SetupValidator makes gin's validator report fields by their JSON (or form) names
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				name, _, _ = strings.Cut(fld.Tag.Get("form"), ",")
			}
			return name
		})
	})
}

// FormatValidationErrors turns a binding error into a VALIDATION_ERROR response.
// Malformed JSON has no field details and reports the decoder's message.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return dto.NewValidationErrorResponse("Invalid request body: "+err.Error(), requestID, nil)
	}

	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   fieldPath(e),
			Message: validationMessage(e),
		})
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes a 400 validation error response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

// GetRequestID returns the request ID set by RequestID, falling back to the header
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDHeader)
}

// fieldPath drops the request struct name, so a bad investment line reads
// "investments[1].investor_id".
func fieldPath(e validator.FieldError) string {
	if _, path, ok := strings.Cut(e.Namespace(), "."); ok {
		return path
	}
	return e.Field()
}

func validationMessage(e validator.FieldError) string {
	unit := ""
	if e.Kind() == reflect.String {
		unit = " characters"
	} else if e.Kind() == reflect.Slice {
		unit = " entries"
	}

	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "uuid":
		return "Invalid UUID format"
	case "min":
		return fmt.Sprintf("Must be at least %s%s", e.Param(), unit)
	case "max":
		return fmt.Sprintf("Must be at most %s%s", e.Param(), unit)
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "gt", "gte", "lt", "lte":
		return fmt.Sprintf("Must be %s %s", comparisons[e.Tag()], e.Param())
	default:
		return "Invalid value"
	}
}

var comparisons = map[string]string{
	"gt":  "greater than",
	"gte": "at least",
	"lt":  "less than",
	"lte": "at most",
}
