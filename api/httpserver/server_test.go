package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBaseServer(t *testing.T) *BaseServer {
	t.Helper()

	srv, err := New(&HTTPServerConfig{
		ListenAddr:               "127.0.0.1:0",
		Log:                      slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxConcurrentRequests:    4,
		DrainDuration:            time.Millisecond,
		GracefulShutdownDuration: time.Second,
	})
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func TestBaseServerLiveness(t *testing.T) {
	srv := setupBaseServer(t)

	w := get(t, srv.srv.Handler, "/livez")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBaseServerDrainCycle(t *testing.T) {
	srv := setupBaseServer(t)

	w := get(t, srv.srv.Handler, "/readyz")
	require.Equal(t, http.StatusOK, w.Code)

	w = get(t, srv.srv.Handler, "/drain")
	require.Equal(t, http.StatusOK, w.Code)

	w = get(t, srv.srv.Handler, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = get(t, srv.srv.Handler, "/undrain")
	require.Equal(t, http.StatusOK, w.Code)

	w = get(t, srv.srv.Handler, "/readyz")
	assert.Equal(t, http.StatusOK, w.Code)
}
