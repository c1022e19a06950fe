// Package validator adapts go-playground validation to echo's Validator hook.
package validator

import (
	domainerrors "prostore/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps the validator library for echo's c.Validate calls.
type echoValidator struct {
	validate *validator.Validate
}

// New creates the request validator installed on the echo server.
func New() *echoValidator {
	return &echoValidator{validate: validator.New()}
}

// Validate checks the bound request struct and maps failures to an AppError.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
