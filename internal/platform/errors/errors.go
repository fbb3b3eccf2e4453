package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrUnauthorized = errors.New("unauthorized")
)
