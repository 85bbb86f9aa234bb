package notifications

import "errors"

var (
	ErrNotFound         = errors.New("notification not found")
	ErrInvalidRecipient = errors.New("invalid recipient")
	ErrInvalidInput     = errors.New("invalid notification")
)
