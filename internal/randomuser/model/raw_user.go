package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RawUser is one element of the API's `results` array, as decoded.
type RawUser map[string]any

// InvalidRecordError rejects a single raw record. Details maps the offending
// field to a message.
type InvalidRecordError struct {
	Details map[string]string
}

func (e *InvalidRecordError) Error() string {
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Details[k])
	}
	return "invalid record: " + strings.Join(parts, "; ")
}

// IsInvalidRecord reports whether err rejects a single record.
func IsInvalidRecord(err error) bool {
	var ire *InvalidRecordError
	return errors.As(err, &ire)
}

// MapRawUser validates raw and flattens it into a User:
// name.first -> first_name, name.last -> last_name, picture.thumbnail -> picture.
// location is carried through untouched. A record either maps fully or is
// rejected with *InvalidRecordError.
func MapRawUser(raw RawUser) (*User, error) {
	details := map[string]string{}

	for _, field := range RequiredRawFields {
		if _, ok := raw[field]; !ok {
			details[field] = "This field is required."
		}
	}
	if len(details) > 0 {
		return nil, &InvalidRecordError{Details: details}
	}

	name := nestedObject(raw, FieldName, details, "first", "last")
	picture := nestedObject(raw, FieldPicture, details, "thumbnail")

	location, ok := raw[FieldLocation].(map[string]any)
	if !ok {
		details[FieldLocation] = "location must be an object"
	}

	user := &User{
		Gender:    stringValue(raw[FieldGender], FieldGender, details),
		Email:     stringValue(raw[FieldEmail], FieldEmail, details),
		Phone:     stringValue(raw[FieldPhone], FieldPhone, details),
		Location:  location,
		FirstName: nestedString(name, "first", "first_name", details),
		LastName:  nestedString(name, "last", "last_name", details),
		Picture:   nestedString(picture, "thumbnail", FieldPicture, details),
	}
	if len(details) > 0 {
		return nil, &InvalidRecordError{Details: details}
	}

	if err := GetValidator().Struct(user); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, &InvalidRecordError{Details: map[string]string{"record": err.Error()}}
		}
		for _, fe := range verrs {
			details[fe.Field()] = describeFieldError(fe)
		}
		return nil, &InvalidRecordError{Details: details}
	}

	return user, nil
}

func nestedObject(raw RawUser, field string, details map[string]string, keys ...string) map[string]any {
	nested, ok := raw[field].(map[string]any)
	if !ok {
		details[field] = fmt.Sprintf("Expected object with keys %v", keys)
		return nil
	}
	var missing []string
	for _, k := range keys {
		if _, ok := nested[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		details[field] = fmt.Sprintf("Missing keys: %v", missing)
		return nil
	}
	return nested
}

func nestedString(nested map[string]any, key, field string, details map[string]string) string {
	if nested == nil {
		return ""
	}
	return stringValue(nested[key], field, details)
}

func stringValue(v any, field string, details map[string]string) string {
	s, ok := v.(string)
	if !ok {
		details[field] = "must be a string"
		return ""
	}
	return strings.TrimSpace(s)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field may not be blank."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	default:
		return "failed on the '" + fe.Tag() + "' tag"
	}
}
