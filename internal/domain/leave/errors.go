package leave

import "errors"

var (
	ErrNotFound      = errors.New("leave request not found")
	ErrInvalidRange  = errors.New("end date before start date")
	ErrInvalidInput  = errors.New("invalid leave request")
	ErrInvalidStatus = errors.New("invalid leave status")
)
