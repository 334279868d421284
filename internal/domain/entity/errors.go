package entity

import "errors"

var (
	// ErrInvalidInput indicates an entity failed validation.
	ErrInvalidInput = errors.New("invalid entity input")
)
