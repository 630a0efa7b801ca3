package storage

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username taken")
	ErrAuthFailure       = errors.New("invalid credentials")
	ErrUnknownItem       = errors.New("unknown item")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrValidation        = errors.New("validation")
	ErrWriteFailure      = errors.New("storage write failed")
)
