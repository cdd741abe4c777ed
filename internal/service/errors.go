package service

import "errors"

var (
	// ErrInvalidDataProvided marks incomplete or blank request input.
	ErrInvalidDataProvided = errors.New("invalid data provided")
	// ErrWrongPassword is returned by Login when the password does not match.
	ErrWrongPassword = errors.New("wrong password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
)
