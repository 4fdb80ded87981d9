package domain

import "errors"

// Sentinel errors shared between repositories, usecases, and the HTTP
// boundary. Ownership mismatches surface as ErrNotFound on purpose so
// the API never reveals whether a record exists but belongs to someone
// else.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("invalid input")
)
