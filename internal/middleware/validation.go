package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
)

// RegisterFormFieldNames makes validation errors report form field names
// instead of Go struct field names.
func RegisterFormFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
}

// BindForm binds and validates a submitted form into obj. Failures come
// back as validation errors carrying a readable message.
func BindForm(c *gin.Context, obj interface{}) error {
	err := c.ShouldBind(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperrors.NewValidationError(formatValidationError(verrs[0]))
	}
	return apperrors.NewValidationError("The submitted form could not be read.")
}

// humanizeField turns "confirm_password" into "Confirm password"
func humanizeField(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := humanizeField(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required."
	case "max":
		return field + " must be at most " + e.Param() + " characters."
	case "email":
		return field + " must be a valid email address."
	case "url":
		return field + " must be a valid URL."
	case "numeric":
		return field + " must be a number."
	case "oneof":
		return field + " must be one of: " + e.Param() + "."
	default:
		return field + " is invalid."
	}
}
