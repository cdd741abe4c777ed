// Package server runs the HTTP transport of the account service.
//
// It owns the server lifecycle: startup, signal handling, graceful shutdown
// and release of the storage connections once in-flight requests are done.
package server
