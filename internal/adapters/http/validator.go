package http

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// Plates are validated before upper-casing, so both cases are accepted here.
var plateRegexp = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

func newValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("plate", func(fl validator.FieldLevel) bool {
		return plateRegexp.MatchString(fl.Field().String())
	})

	return v
}

func ValidateStruct(payload any) map[string]string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, error := range validationErrors {
			fieldName := strings.ToLower(error.Field())
			switch error.Tag() {
			case "required":
				errors[fieldName] = fmt.Sprintf("The %s field is required.", error.Field())
			case "email":
				errors[fieldName] = fmt.Sprintf("The %s must be a valid email address.", error.Field())
			case "min":
				errors[fieldName] = fmt.Sprintf("The %s must be at least %s.", error.Field(), error.Param())
			case "max":
				errors[fieldName] = fmt.Sprintf("The %s must be at most %s.", error.Field(), error.Param())
			case "oneof":
				errors[fieldName] = fmt.Sprintf("The %s must be one of: %s.", error.Field(), error.Param())
			case "plate":
				errors[fieldName] = fmt.Sprintf("The %s must contain only letters, numbers and hyphens.", error.Field())
			default:
				errors[fieldName] = fmt.Sprintf("The %s field is invalid.", error.Field())
			}
		}
	}

	return errors
}
