package server

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/handler"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCloser struct {
	closed bool
	err    error
}

func (c *recordingCloser) Close() error {
	c.closed = true
	return c.err
}

func newTestServer(t *testing.T, address string, closers ...*recordingCloser) Server {
	t.Helper()

	cfg := config.StructuredConfig{Server: config.Server{HTTPAddress: address}}
	handlers, err := handler.NewHandlers(nil, cfg, logger.Nop())
	require.NoError(t, err)

	cs := make([]io.Closer, 0, len(closers))
	for _, c := range closers {
		cs = append(cs, c)
	}

	srv, err := NewServer(handlers, cfg.Server, logger.Nop(), cs...)
	require.NoError(t, err)
	return srv
}

func TestNewServer_NoHandlers(t *testing.T) {
	srv, err := NewServer(&handler.Handlers{}, config.Server{HTTPAddress: ":3000"}, logger.Nop())

	assert.Nil(t, srv)
	assert.ErrorIs(t, err, errNoHTTPHandler)
}

func TestServer_Run_StopsOnContextCancel(t *testing.T) {
	storage := &recordingCloser{}
	srv := newTestServer(t, "127.0.0.1:0", storage)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
	assert.True(t, storage.closed, "storages must be closed after shutdown")
}

func TestServer_Run_ListenError_ClosesStorages(t *testing.T) {
	storage := &recordingCloser{err: errors.New("close failed")}
	srv := newTestServer(t, "bad-address:-1", storage)

	err := srv.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
	assert.Contains(t, err.Error(), "close failed")
	assert.True(t, storage.closed)
}
