package leads

import "errors"

var (
	ErrNotFound      = errors.New("lead not found")
	ErrInvalidInput  = errors.New("invalid lead")
	ErrInvalidStatus = errors.New("invalid lead status")
)
