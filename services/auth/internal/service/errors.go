package service

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrConflict            = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrNotFound            = errors.New("user not found")
)
