package server

import "errors"

// errNoHTTPHandler is returned by NewServer when there is nothing to serve
// or no address to listen on.
var errNoHTTPHandler = errors.New("http handler or listen address is not configured")
