package domain

import "errors"

var (
	// ErrValidation marks missing or malformed user input. The command is a no-op.
	ErrValidation = errors.New("invalid input")
	// ErrEmptyCollection marks a command that needs at least one line.
	ErrEmptyCollection = errors.New("empty collection")
	// ErrNotFound marks a stale id. Most commands swallow it.
	ErrNotFound = errors.New("not found")
)
