package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/hostel/internal/pkg/apperrors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the hostel rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON field names instead of Go field names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = validate.RegisterValidation("roomno", patternRule(CompiledPatterns.RoomNo.MatchString))
		_ = validate.RegisterValidation("studentid", patternRule(CompiledPatterns.StudentID.MatchString))
		_ = validate.RegisterValidation("contact", patternRule(CompiledPatterns.Contact.MatchString))
		_ = validate.RegisterValidation("username", patternRule(CompiledPatterns.Username.MatchString))
	})
	return validate
}

func patternRule(match func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return match(fl.Field().String())
	}
}

// Struct validates s and converts failures into an apperrors validation
// error whose message lists every offending field.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError(err.Error())
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, formatValidationError(e))
	}
	return apperrors.NewValidationError(strings.Join(messages, "; "))
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "gte":
		return e.Field() + " must be at least " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "eqfield":
		return e.Field() + " must match " + e.Param()
	case "lt":
		return e.Field() + " must be less than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "datetime":
		return e.Field() + " must be a date in YYYY-MM-DD format"
	case "roomno":
		return e.Field() + " must be a valid room number"
	case "studentid":
		return e.Field() + " must be a valid student ID"
	case "contact":
		return e.Field() + " must be a valid phone number"
	case "username":
		return e.Field() + " may only contain letters, digits, dots and underscores (3-50 characters)"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
