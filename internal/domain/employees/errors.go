package employees

import "errors"

var (
	ErrNotFound     = errors.New("employee not found")
	ErrEmailInUse   = errors.New("email already registered")
	ErrInvalidInput = errors.New("invalid employee input")
)
