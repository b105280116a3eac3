package model

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report json names so messages line up with the wire format.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// FormatValidationError converts validator errors to ErrorDetail
// This is a helper for Validate() methods to keep consistent error return types
func FormatValidationError(err error) *ErrorDetail {
	if err == nil {
		return nil
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		e := validationErrors[0]
		return &ErrorDetail{
			Code:    CodeBadRequest,
			Message: "Field validation for '" + e.Field() + "' failed on the '" + e.Tag() + "' tag",
		}
	}

	return &ErrorDetail{
		Code:    CodeBadRequest,
		Message: err.Error(),
	}
}
