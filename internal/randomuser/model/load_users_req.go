package model

import (
	"strconv"
	"strings"
)

// LoadUsersReq asks for Number new users to be fetched and stored.
type LoadUsersReq struct {
	Number *int `json:"number" validate:"required,min=0,max=1000"`
}

func (r *LoadUsersReq) Validate() error {
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// ParseLoadForm builds a LoadUsersReq from the `number` form value.
func ParseLoadForm(value string) (*LoadUsersReq, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, &ErrorDetail{Code: CodeBadRequest, Message: "This field is required."}
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, &ErrorDetail{Code: CodeBadRequest, Message: "Enter a whole number."}
	}

	req := &LoadUsersReq{Number: &n}
	if err := req.Validate(); err != nil {
		if n < 0 {
			return nil, &ErrorDetail{Code: CodeBadRequest, Message: "Ensure this value is greater than or equal to 0."}
		}
		if n > MaxLoadNumber {
			return nil, &ErrorDetail{Code: CodeBadRequest, Message: "Ensure this value is less than or equal to 1000."}
		}
		return nil, err
	}
	return req, nil
}
