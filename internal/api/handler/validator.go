package handler

import (
	"github.com/blogql/blog-api/internal/pkg/validation"
)

// echoValidator lets Echo run the shared presence checks via c.Validate(req).
type echoValidator struct{}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	return validation.Struct(i)
}
