package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")

	// ErrNoSession is returned by protected calls made without a token.
	ErrNoSession = errors.New("no session, log in first")
	// ErrNoSessionCookie is returned when login succeeds without a token cookie.
	ErrNoSessionCookie = errors.New("server did not set a session cookie")
)
