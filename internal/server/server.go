package server

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/handler"
	"github.com/MKhiriev/go-user-service/internal/logger"
)

type server struct {
	httpServer *httpServer
	closers    []io.Closer

	logger *logger.Logger
}

// NewServer builds the HTTP server. Every closer is closed after the server
// has shut down, in the given order.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger, closers ...io.Closer) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoHTTPHandler
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		closers:    closers,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.Run(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

// Run serves until ctx is cancelled or the listener fails, then shuts the
// server down gracefully and releases the closers.
func (s *server) Run(ctx context.Context) error {
	listener, err := s.httpServer.listen()
	if err != nil {
		return errors.Join(err, s.close())
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.serve(listener)
	}()

	select {
	case <-ctx.Done():
		s.Shutdown()
		err = <-serveErr
	case err = <-serveErr:
		s.Shutdown()
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return errors.Join(err, s.close())
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}

func (s *server) close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	s.closers = nil

	return errors.Join(errs...)
}
