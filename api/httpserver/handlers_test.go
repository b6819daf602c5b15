package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urzavoge/zuev-1c/coordinator"
)

type recordedNotification struct {
	Address string
	Message string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []recordedNotification
}

func (n *recordingNotifier) Notify(_ context.Context, address, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, recordedNotification{Address: address, Message: message})
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func (n *recordingNotifier) messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.sent))
	for i, s := range n.sent {
		out[i] = s.Message
	}
	return out
}

func setupHandler(t *testing.T) (chi.Router, *recordingNotifier) {
	t.Helper()

	notifier := &recordingNotifier{}
	coord := coordinator.New(&coordinator.Config{
		Notifier: notifier,
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	handler := NewHandler(coord, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	return r, notifier
}

func doJSON(t *testing.T, router chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router chi.Router, socket string) int {
	t.Helper()

	w := doJSON(t, router, "POST", "/user/register", `{"socket": "`+socket+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp registerUserResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.ID
}

func TestHandlerRegisterUser(t *testing.T) {
	router, _ := setupHandler(t)

	assert.Equal(t, 0, registerUser(t, router, "9001"))
	assert.Equal(t, 1, registerUser(t, router, "9002"))
}

func TestHandlerRegisterUserMalformed(t *testing.T) {
	router, _ := setupHandler(t)

	w := doJSON(t, router, "POST", "/user/register", `{"socket": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerFullScenario(t *testing.T) {
	router, notifier := setupHandler(t)

	registerUser(t, router, "9001")
	registerUser(t, router, "9002")

	// Secrets may arrive as JSON strings or numbers; the reference admin
	// client sent numbers.
	w := doJSON(t, router, "POST", "/admin/start", `{"secret": "2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.Eventually(t, func() bool { return notifier.count() == 2 }, time.Second, 5*time.Millisecond)

	w = doJSON(t, router, "POST", "/user/predict", `{"id": 0, "pred": 5}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, "POST", "/user/predict", `{"id": 1, "pred": 7}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/user/get", `{"id": 0}`)
	require.Equal(t, http.StatusOK, w.Code)
	var preds getPredictionsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&preds))
	assert.Equal(t, "5 ", preds.Predictions)

	w = doJSON(t, router, "GET", "/admin/get", `{"secret": 4}`)
	require.Equal(t, http.StatusOK, w.Code)
	var waiters map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&waiters))
	assert.Equal(t, map[string]string{"0": "5 ", "1": "7 "}, waiters)

	w = doJSON(t, router, "POST", "/admin/stop", `{"secret": 6}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/admin/stat", `{"secret": 8}`)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Current map[string]string `json:"Current"`
		Old     map[string]string `json:"Old"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Empty(t, stats.Current)
	assert.Equal(t, map[string]string{"0": "5 ", "1": "7 "}, stats.Old)
}

func TestHandlerOddSecretRejected(t *testing.T) {
	router, _ := setupHandler(t)

	w := doJSON(t, router, "POST", "/admin/start", `{"secret": "3"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// The odd secret did not activate anything; a fresh even secret works.
	w = doJSON(t, router, "POST", "/admin/start", `{"secret": "2"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandlerStopIsWiredToStop(t *testing.T) {
	router, _ := setupHandler(t)

	// Stop without a session must fail, not behave like start.
	w := doJSON(t, router, "POST", "/admin/stop", `{"secret": "2"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "POST", "/admin/start", `{"secret": "2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, "POST", "/admin/stop", `{"secret": "4"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, "POST", "/admin/stop", `{"secret": "6"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerPredictWithoutSession(t *testing.T) {
	router, _ := setupHandler(t)
	registerUser(t, router, "9001")

	w := doJSON(t, router, "POST", "/user/predict", `{"id": 0, "pred": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerLateRegistrationRejected(t *testing.T) {
	router, _ := setupHandler(t)
	registerUser(t, router, "9001")

	w := doJSON(t, router, "POST", "/admin/start", `{"secret": "2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	late := registerUser(t, router, "9002")
	w = doJSON(t, router, "POST", "/user/predict", `{"id": 1, "pred": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, late)
}

func TestHandlerAnswerUser(t *testing.T) {
	router, notifier := setupHandler(t)
	registerUser(t, router, "9001")

	w := doJSON(t, router, "POST", "/admin/start", `{"secret": "2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", "/admin/answer", `{"secret": "4", "id": "0", "answer": "well done"}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.Eventually(t, func() bool { return notifier.count() >= 2 }, time.Second, 5*time.Millisecond)
	// Notification order across goroutines is not guaranteed.
	assert.Contains(t, notifier.messages(), "well done")
}

func TestHandlerNonNumericSecret(t *testing.T) {
	router, _ := setupHandler(t)

	w := doJSON(t, router, "POST", "/admin/start", `{"secret": "banana"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
