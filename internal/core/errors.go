package core

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("conflict")

	// ErrUnauthorized means the caller is authenticated but does not own the resource.
	ErrUnauthorized = errors.New("unauthorized")
)
