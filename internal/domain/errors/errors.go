package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAlreadyVerified    = errors.New("payment already verified")
	ErrForbidden          = errors.New("actor not allowed")
	ErrNoUPIDetails       = errors.New("no seller UPI details")
)
