package services

import (
	"errors"

	"inkwell/app/repositories"
)

var (
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrUnknownEmail    = errors.New("email not registered")
	ErrInvalidPassword = errors.New("invalid password")
	ErrForbidden       = errors.New("admin role required")
	ErrNotFound        = repositories.ErrNotFound
	ErrDuplicateTitle  = errors.New("a post with this title already exists")
	ErrLoginRequired   = errors.New("login required")
	ErrInvalidSession  = errors.New("invalid session")
)
