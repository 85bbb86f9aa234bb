package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrWeakPassword       = errors.New("password too short")
	ErrNotPreRegistered   = errors.New("email not pre-registered")
	ErrNoEmployeeAccount  = errors.New("no employee account for email")
	ErrWrongPortal        = errors.New("account not allowed on portal")
	ErrInvalidPortal      = errors.New("unknown portal")
)
