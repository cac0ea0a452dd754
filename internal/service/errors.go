package service

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrForbidden       = errors.New("session belongs to another user")
	ErrInvalidFormat   = errors.New("unknown content format")
	ErrInvalidUserID   = errors.New("invalid user id")
)
