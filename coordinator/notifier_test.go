package coordinator

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPNotifierPostsPlainText(t *testing.T) {
	var (
		mu   sync.Mutex
		got  string
		path string
		ct   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		got = string(body)
		path = r.URL.Path
		ct = r.Header.Get("Content-Type")
		mu.Unlock()
	}))
	defer srv.Close()

	n := NewHTTPNotifier(time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	n.Notify(context.Background(), strings.TrimPrefix(srv.URL, "http://"), "Experiment is started!")

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "/notify", path)
	assert.Equal(t, "Experiment is started!", got)
	assert.Equal(t, "text/plain", ct)
}

func TestHTTPNotifierSwallowsFailures(t *testing.T) {
	n := NewHTTPNotifier(100*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// Nothing listens here; Notify must return without surfacing the error.
	n.Notify(context.Background(), "127.0.0.1:1", "hello")
}
