package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/scoutline/scoutline-api/internal/domain/completion"
)

// Validator instance
var validate *validator.Validate

// ReviewStatuses are the identity review states an operator can set
var ReviewStatuses = []string{"pending", "in_review", "approved", "rejected"}

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Media categories are matched after canonicalization, so "Featured Headshot" passes
	validate.RegisterValidation("media_category", func(fl validator.FieldLevel) bool {
		return oneOf(completion.CanonicalStatus(fl.Field().String()), completion.MediaCategories)
	})

	validate.RegisterValidation("review_status", func(fl validator.FieldLevel) bool {
		return oneOf(completion.CanonicalStatus(fl.Field().String()), ReviewStatuses)
	})
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string)
	for _, err := range verrs {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "uuid":
			errors[field] = "Invalid identifier"
		case "media_category":
			errors[field] = "Invalid media category. Must be one of: " + strings.Join(completion.MediaCategories, ", ")
		case "review_status":
			errors[field] = "Invalid review status. Must be one of: " + strings.Join(ReviewStatuses, ", ")
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
