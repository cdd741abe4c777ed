package validators

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-user-service/models"
)

// Field names accepted by [UserValidator].
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldPassword  = "password"
)

var (
	registerFields = []string{FieldFirstName, FieldLastName, FieldEmail, FieldPassword}
	loginFields    = []string{FieldEmail, FieldPassword}
)

// UserValidator requires the fields of registration and login requests to be
// non-blank. Values are expected to be trimmed by the caller; whitespace-only
// values are rejected either way.
type UserValidator struct{}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *UserValidator) validateRegisterRequest(req models.RegisterRequest, fields ...string) error {
	values := map[string]string{
		FieldFirstName: req.FirstName,
		FieldLastName:  req.LastName,
		FieldEmail:     req.Email,
		FieldPassword:  req.Password,
	}

	return validateRequired(values, pickFields(registerFields, fields))
}

func (v *UserValidator) validateLoginRequest(req models.LoginRequest, fields ...string) error {
	values := map[string]string{
		FieldEmail:    req.Email,
		FieldPassword: req.Password,
	}

	return validateRequired(values, pickFields(loginFields, fields))
}

func pickFields(all, requested []string) []string {
	if len(requested) == 0 {
		return all
	}
	return requested
}

// validateRequired reports every blank field, not only the first one.
func validateRequired(values map[string]string, fields []string) error {
	var errs []error

	for _, field := range fields {
		value, known := values[field]
		if !known {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownField, field))
			continue
		}
		if strings.TrimSpace(value) == "" {
			errs = append(errs, emptyFieldError(field))
		}
	}

	return errors.Join(errs...)
}

func emptyFieldError(field string) error {
	switch field {
	case FieldFirstName:
		return ErrEmptyFirstName
	case FieldLastName:
		return ErrEmptyLastName
	case FieldEmail:
		return ErrEmptyEmail
	default:
		return ErrEmptyPassword
	}
}
