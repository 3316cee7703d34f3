package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/GeoRose/internal/config"
	"github.com/turtacn/GeoRose/internal/testutil"
)

func TestNewServer(t *testing.T) {
	mux := http.NewServeMux()
	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 8088, ReadTimeout: time.Second, WriteTimeout: 2 * time.Second}

	server := NewServer(cfg, mux, nil)
	require.NotNil(t, server)
	assert.Equal(t, "127.0.0.1:8088", server.Addr())
	assert.Equal(t, time.Second, server.httpServer.ReadTimeout)
	assert.Equal(t, 2*time.Second, server.httpServer.WriteTimeout)
	assert.Equal(t, 10*time.Second, server.shutdownTimeout)
	assert.Same(t, mux, server.Handler())
}

func TestServer_StartAndShutdown(t *testing.T) {
	logger := testutil.NewMockLogger()
	server := NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0}, http.NewServeMux(), logger)

	done := make(chan error, 1)
	go func() { done <- server.Start() }()

	// Shutdown before or after ListenAndServe starts; both end Start with nil.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, server.Shutdown(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, logger.HasMessage("info", "HTTP server stopped"))
}

//Personal.AI order the ending
