package server

import "context"

// Server defines the lifecycle contract of the transport server.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT is received.
	RunServer()

	// Run serves until ctx is done and returns once the server has stopped
	// and its resources are released.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown()
}
