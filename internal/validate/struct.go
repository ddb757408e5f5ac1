package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"stylematch/internal/domain"
)

var (
	v     *validator.Validate
	vOnce sync.Once
)

// Validator returns the shared validator with the vocabulary tags
// ("category", "color") registered.
func Validator() *validator.Validate {
	vOnce.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			return domain.IsCategory(strings.ToLower(strings.TrimSpace(fl.Field().String())))
		})
		_ = v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
			_, ok := domain.CanonicalColor(strings.ToLower(strings.TrimSpace(fl.Field().String())))
			return ok
		})
	})
	return v
}

// Struct validates s and reports the first failing field as a
// *domain.ValidationError.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &domain.ValidationError{Msg: err.Error()}
	}
	fe := fieldErrs[0]
	return &domain.ValidationError{Field: lowerFirst(fe.Field()), Msg: message(fe)}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "category":
		return "must be one of: " + strings.Join(domain.Categories, ", ")
	case "color":
		return "must be one of: " + strings.Join(domain.Colors, ", ")
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
