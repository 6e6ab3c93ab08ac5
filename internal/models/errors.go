package models

import "errors"

// Sentinel errors returned by the service layer. Handlers classify these
// with errors.Is to pick the HTTP status and client-facing message.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrEmailTaken         = errors.New("user with that email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")
)
