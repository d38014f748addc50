package domain

import "errors"

var (
	ErrNoSession          = errors.New("no stored session")
	ErrSessionExpired     = errors.New("session expired")
	ErrTimeout            = errors.New("request timed out")
	ErrEmptyCredentials   = errors.New("login and password are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrRegistrationClosed = errors.New("registration is not available")
	ErrNoPaySystem        = errors.New("no pay system selected")
	ErrPaySystemDown      = errors.New("pay system is unavailable")
	ErrInvalidAmount      = errors.New("amount must be positive")
)
