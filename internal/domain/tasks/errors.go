package tasks

import "errors"

var (
	ErrNotFound       = errors.New("task not found")
	ErrInvalidInput   = errors.New("invalid task input")
	ErrLeadRequired   = errors.New("crm tasks require a lead")
	ErrInvalidStatus  = errors.New("invalid task status")
	ErrNothingToClear = errors.New("no tasks selected")
)
