package services

import "errors"

// Sentinel errors the handlers translate to HTTP statuses.
var (
	ErrJobNotFound        = errors.New("job not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries field-level detail for a rejected request
// body. It is recoverable: handlers report it as a 400, never a fault.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
