package client

import "errors"

var (
	ErrNoCommand      = errors.New("no command given")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNothingToApply = errors.New("nothing to update, pass at least one field")
)
