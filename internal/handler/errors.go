package handler

import "errors"

// errNoHTTPAddress is returned by NewHandlers when the server configuration
// carries no HTTP address.
var errNoHTTPAddress = errors.New("server http address is empty")
